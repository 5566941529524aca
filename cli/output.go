package cli

import (
	"fmt"
	"strings"
	"time"

	"pfeifer.dev/drived/cereal"
	"pfeifer.dev/drived/dbw"
	"pfeifer.dev/drived/route"
)

type outputModel struct {
	window      route.Route
	windowValid bool
	windowAt    time.Time
	cmd         dbw.ActuatorCommand
	cmdValid    bool
	cmdAt       time.Time
	enabled     bool
	enabledSeen bool
}

func (m outputModel) poll(lanes cereal.Source[route.Route], cmds cereal.Source[dbw.ActuatorCommand], status cereal.Source[bool], now time.Time) outputModel {
	if window, ok := lanes.Read(); ok {
		m.window = window
		m.windowValid = true
		m.windowAt = now
	}
	if cmd, ok := cmds.Read(); ok {
		m.cmd = cmd
		m.cmdValid = true
		m.cmdAt = now
	}
	if enabled, ok := status.Read(); ok {
		m.enabled = enabled
		m.enabledSeen = true
	}
	return m
}

func (m outputModel) View() string {
	var b strings.Builder
	authority := "unknown"
	if m.enabledSeen {
		authority = onOff(m.enabled)
	}
	fmt.Fprintf(&b, "authority: %s\n", authority)

	if m.windowValid {
		fmt.Fprintf(&b, "window: %d waypoints (at %s)\n", m.window.Len(), m.windowAt.Format(time.TimeOnly))
		if m.window.Len() > 0 {
			first := m.window[0]
			fmt.Fprintf(&b, "next waypoint: x %.2f y %.2f v %.2f\n", first.X, first.Y, first.Velocity)
			fmt.Fprintf(&b, "window length: %.1f m\n", m.window.Distance(0, m.window.Len()-1))
		}
	} else {
		b.WriteString("window: none received\n")
	}

	if m.cmdValid {
		fmt.Fprintf(&b, "throttle: %.3f\nbrake: %.1f\nsteer: %.3f (at %s)\n",
			m.cmd.Throttle, m.cmd.Brake, m.cmd.Steer, m.cmdAt.Format(time.TimeOnly))
	} else {
		b.WriteString("actuators: none received\n")
	}
	b.WriteString("\n(esc to return)")
	return docStyle.Render(b.String()) + "\n"
}
