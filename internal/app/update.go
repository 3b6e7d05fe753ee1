package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyxed/edcore/internal/layout"
)

// Update is the root bubbletea loop: window resizes reflow the layout
// tree, key events go through handleKey to the Editor's single
// DispatchKey funnel (keys consumed by an open help or output overlay,
// ctrl+c, and the help key never reach it, so the macro recorder does
// not see them), and the spinner ticks only while a macro is recording.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.ed.Layout.Resize(layout.Rect{W: msg.Width, H: msg.Height - reservedRows(m)})
		return m, nil

	case spinTickMsg:
		if !m.ed.Macros.IsRecording() {
			return m, nil
		}
		m.spinFrame++
		return m, spinTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// reservedRows is the screen height the tab line, status bar, and
// command line take up, left over for the window tree's own Resize.
func reservedRows(m *Model) int {
	rows := 2 // status bar + cmdline/result row
	if len(m.ed.Layout.Tabs()) > 1 {
		rows++
	}
	return rows
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.helpOpen {
		m.helpOpen = false
		return m, nil
	}
	if m.outputOpen {
		switch msg.String() {
		case "esc", "q", "enter":
			m.outputOpen = false
			m.output = nil
			return m, nil
		}
		vp := m.output.Viewport()
		var cmd tea.Cmd
		*vp, cmd = vp.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, Keys.CtrlC) {
		m.pending.reset()
		if m.mode != ModeNormal {
			m.mode = ModeNormal
		}
		return m, nil
	}

	if m.mode == ModeNormal && key.Matches(msg, Keys.Help) {
		m.helpOpen = true
		return m, nil
	}

	wasRecording := m.ed.Macros.IsRecording()
	m.statusMsg = ""

	if err := m.ed.DispatchKey(msg); err != nil {
		m.statusMsg = err.Error()
	}

	if m.quitting {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if !wasRecording && m.ed.Macros.IsRecording() {
		cmd = spinTick()
	}
	return m, cmd
}
