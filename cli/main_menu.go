package cli

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"pfeifer.dev/drived/cereal"
	"pfeifer.dev/drived/dbw"
	"pfeifer.dev/drived/route"
	"pfeifer.dev/drived/utils"
)

type mainState int

const (
	showMenu mainState = iota
	showSettings
	showOutput
	grantAuthority
	withholdAuthority
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type TickMsg time.Time

func tickEvery() tea.Cmd {
	return tea.Every(50*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type uiModel struct {
	list      list.Model
	state     mainState
	settings  settingsModel
	output    outputModel
	statusPub *cereal.StatusPublisher
	laneSub   cereal.Source[route.Route]
	cmdSub    cereal.Source[dbw.ActuatorCommand]
	statusSub cereal.Source[bool]
	closers   utils.Closers
	lastError error
}

type item struct {
	title, desc string
	state       mainState
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

func menuItems() []list.Item {
	return []list.Item{
		item{title: "Watch", desc: "Watch the lookahead window and actuator commands of drived", state: showOutput},
		item{title: "Grant Authority", desc: "Publish dbw enabled so drived starts emitting commands", state: grantAuthority},
		item{title: "Withhold Authority", desc: "Publish dbw disabled so drived stops emitting commands", state: withholdAuthority},
		item{title: "Settings", desc: "Edit the stored settings used on the next start of drived", state: showSettings},
	}
}

func initialModel() (m uiModel, err error) {
	defer func() {
		if err != nil {
			m.closers.Close()
		}
	}()

	statusPub, err := cereal.NewStatusPublisher(cereal.DBW_ENABLED)
	if err != nil {
		return m, err
	}
	m.closers.Add(statusPub)
	laneSub, err := cereal.NewSubscriber(cereal.FINAL_WAYPOINTS, cereal.LaneReader, true)
	if err != nil {
		return m, err
	}
	m.closers.Add(laneSub)
	cmdSub, err := cereal.NewSubscriber(cereal.VEHICLE_CMD, cereal.ActuatorsReader, true)
	if err != nil {
		return m, err
	}
	m.closers.Add(cmdSub)
	statusSub, err := cereal.NewSubscriber(cereal.DBW_ENABLED, cereal.DbwStatusReader, true)
	if err != nil {
		return m, err
	}
	m.closers.Add(statusSub)

	m.list = list.New(menuItems(), list.NewDefaultDelegate(), 0, 0)
	m.settings = getSettingsModel()
	m.statusPub = statusPub
	m.laneSub = laneSub
	m.cmdSub = cmdSub
	m.statusSub = statusSub
	m.list.Title = "Drived Actions"
	return m, nil
}

func (m uiModel) Init() tea.Cmd {
	return tickEvery()
}

func (m uiModel) setAuthority(enabled bool) uiModel {
	err := m.statusPub.PublishAuthority(enabled)
	m.lastError = errors.Wrap(err, "could not publish authority")
	utils.Logwe(m.lastError)
	return m
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEsc && m.state == showOutput {
			m.state = showMenu
			return m, nil
		}
		if msg.Type == tea.KeyEnter && m.state == showMenu && m.list.FilterState() != list.Filtering {
			it := m.list.SelectedItem().(item)
			switch it.state {
			case grantAuthority:
				return m.setAuthority(true), nil
			case withholdAuthority:
				return m.setAuthority(false), nil
			}
			m.state = it.state
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		m.settings, _ = m.settings.Update(msg, &m)
	case TickMsg:
		m.output = m.output.poll(m.laneSub, m.cmdSub, m.statusSub, time.Time(msg))
		return m, tickEvery()
	}

	var cmd tea.Cmd
	switch m.state {
	case showSettings:
		m.settings, cmd = m.settings.Update(msg, &m)
	case showOutput:
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m uiModel) View() string {
	switch m.state {
	case showSettings:
		return m.settings.View()
	case showOutput:
		return m.output.View()
	}
	view := m.list.View()
	if m.lastError != nil {
		view += "\n" + m.lastError.Error()
	}
	return docStyle.Render(view)
}
