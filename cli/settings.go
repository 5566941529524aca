package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"pfeifer.dev/drived/params"
	ms "pfeifer.dev/drived/settings"
)

type settingsState int

const (
	showSettingsMenu settingsState = iota
	settingsExit
	settingsInput
	saveSettings
)

type settingsItem struct {
	title, desc string
	state       settingsState
	apply       func(s *ms.DriveSettings, value string) error
}

func (i settingsItem) Title() string       { return i.title }
func (i settingsItem) Description() string { return i.desc }
func (i settingsItem) FilterValue() string { return i.title }

type settingsModel struct {
	list         list.Model
	state        settingsState
	textInput    textinput.Model
	selectedItem settingsItem
	prompt       string
	values       ms.DriveSettings
	message      string
}

func floatSetting(field func(*ms.DriveSettings) *float64) func(*ms.DriveSettings, string) error {
	return func(s *ms.DriveSettings, value string) error {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return errors.Wrapf(err, "could not parse %q as a number", value)
		}
		*field(s) = v
		return nil
	}
}

func (m settingsModel) Update(msg tea.Msg, mm *uiModel) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && m.state == settingsInput {
			m.state = showSettingsMenu
			return m, nil
		}
		if msg.Type == tea.KeyEnter && m.state == showSettingsMenu {
			it := m.list.SelectedItem().(settingsItem)
			m.selectedItem = it
			m.state = it.state
			switch m.state {
			case settingsExit:
				m.state = showSettingsMenu
				mm.state = showMenu
			case settingsInput:
				m.prompt = m.selectedItem.Title()
				m.textInput.SetValue("")
				m.textInput.Focus()
			case saveSettings:
				m.state = showSettingsMenu
				m.message = m.save()
			}
			return m, nil
		}
		if msg.Type == tea.KeyEnter && m.state == settingsInput {
			m.state = showSettingsMenu
			m.message = m.applyInput()
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	if m.state == settingsInput {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// applyInput applies the typed value to a copy so a value that fails
// validation never reaches the pending settings.
func (m *settingsModel) applyInput() string {
	next := m.values
	if err := m.selectedItem.apply(&next, m.textInput.Value()); err != nil {
		return err.Error()
	}
	if err := next.Validate(); err != nil {
		return err.Error()
	}
	m.values = next
	return fmt.Sprintf("%s set to %s, save to keep it", m.selectedItem.Title(), m.textInput.Value())
}

func (m *settingsModel) save() string {
	m.values.Save()
	ms.Settings = m.values
	return "settings saved, they apply on the next start of drived"
}

func (m settingsModel) View() string {
	switch m.state {
	case settingsInput:
		return docStyle.Render(fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			m.prompt,
			m.textInput.View(),
			"(esc to cancel)",
		) + "\n")
	default:
		view := m.list.View()
		if m.message != "" {
			view += "\n" + m.message
		}
		return docStyle.Render(view)
	}
}

func settingsItems() []list.Item {
	return []list.Item{
		settingsItem{
			title: "Lookahead Window Size",
			desc:  "Number of waypoints published ahead of the vehicle",
			state: settingsInput,
			apply: func(s *ms.DriveSettings, value string) error {
				v, err := strconv.Atoi(value)
				if err != nil {
					return errors.Wrapf(err, "could not parse %q as a whole number", value)
				}
				s.WindowSize = v
				return nil
			},
		},
		settingsItem{
			title: "Waypoint Rate",
			desc:  "How often in Hz the lookahead window is republished",
			state: settingsInput,
			apply: floatSetting(func(s *ms.DriveSettings) *float64 { return &s.WaypointRate }),
		},
		settingsItem{
			title: "DBW Rate",
			desc:  "How often in Hz the dbw dispatcher consults the control law",
			state: settingsInput,
			apply: floatSetting(func(s *ms.DriveSettings) *float64 { return &s.DbwRate }),
		},
		settingsItem{
			title: "Max Sample Age",
			desc:  "Seconds after which a velocity sample counts as missing, 0 disables the check",
			state: settingsInput,
			apply: floatSetting(func(s *ms.DriveSettings) *float64 { return &s.MaxSampleAge }),
		},
		settingsItem{
			title: "Default Route Velocity",
			desc:  "Target velocity in m/s for route rows without one",
			state: settingsInput,
			apply: floatSetting(func(s *ms.DriveSettings) *float64 { return &s.DefaultRouteVelocity }),
		},
		settingsItem{
			title: "Set Log Level",
			desc:  "Modify how verbose logging will be for drived",
			state: settingsInput,
			apply: func(s *ms.DriveSettings, value string) error {
				s.LogLevel = value
				return nil
			},
		},
		settingsItem{
			title: "Save Settings",
			desc:  "Persists any updates to the settings across restarts",
			state: saveSettings,
		},
		settingsItem{
			title: "Return to Main Menu",
			desc:  "Exit settings configuration and return to the initial actions menu",
			state: settingsExit,
		},
	}
}

func getSettingsModel() settingsModel {
	m := settingsModel{
		list:      list.New(settingsItems(), list.NewDefaultDelegate(), 0, 0),
		textInput: textinput.New(),
	}
	m.values.Default()
	m.values.Load()
	m.list.Title = "Drived Settings"
	return m
}

func printSettings(w io.Writer) error {
	s := ms.DriveSettings{}
	s.Load()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not format settings")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func listParams(w io.Writer) error {
	names, err := params.GetParams()
	if err != nil {
		return err
	}
	for _, name := range names {
		data, err := params.GetParam(name)
		if err != nil {
			fmt.Fprintf(w, "%s: <%v>\n", name, err)
			continue
		}
		if !params.IsString(data) {
			fmt.Fprintf(w, "%s: <%d bytes>\n", name, len(data))
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", name, data)
	}
	return nil
}
