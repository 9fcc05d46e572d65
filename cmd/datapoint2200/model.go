// model.go - bubbletea model driving a Machine
//
// Grounded on hejops-gone/cpu/debugger.go's model/Init/Update/View loop
// (one struct holding the CPU plus whatever redraw state the view needs,
// a switch over tea.KeyMsg in Update, lipgloss.JoinVertical/JoinHorizontal
// composing fixed-width panes in View). Generalized from debugger.go's
// single-step-per-keypress debugger into a free-running machine: a
// tea.Tick drives Machine.Update every frame, and keypresses are forwarded
// to the keyboard peripheral instead of single-stepping the CPU.

package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dp2200 "github.com/dp2200/emulator"
)

const frameMs = 16.0 // ~60Hz, matching the teacher's own frame-paced Update callers

type tickMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(frameMs*1e6, func(time.Time) tea.Msg { return tickMsg{} })
}

type model struct {
	machine *dp2200.Machine
	status  dp2200.RunStatus
	running bool
}

func newModel(m *dp2200.Machine) model {
	return model{machine: m, running: true}
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "ctrl+b":
			m.machine.ToggleBreakpoint(m.machine.ProgramCounter())
			return m, nil
		case "ctrl+r":
			m.running = true
			return m, tick()
		}
		if name, ok := keyName(msg); ok {
			m.machine.Keydown(name)
			m.machine.Keyup(name)
		}
		return m, nil

	case tickMsg:
		if !m.running {
			return m, nil
		}
		m.status = m.machine.Update(frameMs)
		if m.status != dp2200.Ok {
			m.running = false
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

var (
	screenStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(2)
)

func (m model) View() string {
	statusLine := fmt.Sprintf(
		"pc=0x%04x  bp=%v  status=%s\nctrl+r resume  ctrl+b toggle breakpoint  q quit",
		m.machine.ProgramCounter(), m.machine.IsBreakpoint(m.machine.ProgramCounter()), statusName(m.status),
	)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		screenStyle.Render(m.machine.GetScreen()),
		statusStyle.Render(statusLine),
	)
}

func statusName(s dp2200.RunStatus) string {
	switch s {
	case dp2200.Ok:
		return "running"
	case dp2200.BreakpointHit:
		return "breakpoint"
	case dp2200.Halted:
		return "halted"
	default:
		return "?"
	}
}
