package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func interactive() {
	model, err := initialModel()
	if err != nil {
		fmt.Printf("Could not connect to drived: %v\n", err)
		os.Exit(1)
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	model.closers.Close()
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
