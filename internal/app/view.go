package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/nyxed/edcore/internal/capability"
	"github.com/nyxed/edcore/internal/layout"
	"github.com/nyxed/edcore/internal/ui"
)

// View composites the window/tab layout, status bar, and whatever
// overlay (help, output, command-line) is currently active, the way
// the teacher's own View layers a picker/confirm modal over its panel
// column via ui.OverlayCentered.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	m.scrollIntoView()

	body := m.ed.Layout.Render(m.currentWindowID(), m.leafContent)

	tabs := m.tabInfos()
	screen := lipgloss.JoinVertical(lipgloss.Left,
		ui.RenderTabLine(tabs, m.width),
		body,
		m.statusLine(),
	)

	if m.helpOpen {
		modal := ui.RenderHelpModal(m.width, m.height)
		return ui.OverlayCentered(screen, modal, m.width, m.height)
	}
	if m.outputOpen && m.output != nil {
		return ui.OverlayCentered(screen, m.output.Render(), m.width, m.height)
	}
	return screen
}

func (m *Model) currentWindowID() capability.WindowID {
	return m.ed.Layout.CurrentWindow().WindowID
}

// leafContent supplies one window's display lines: the shared buffer's
// text (scrolled to that window's own top_line/left_col) for ordinary
// windows, or the live terminal capture for a :terminal split.
func (m *Model) leafContent(id capability.WindowID) []string {
	if bufID, ok := m.termWindows[string(id)]; ok {
		if tb, ok := m.term.Get(bufID); ok {
			lines, err := tb.Capture()
			if err != nil {
				return []string{err.Error()}
			}
			return lines
		}
		return []string{"[terminal closed]"}
	}

	n := m.ed.Buffer.LineCount()
	top := m.ed.Terminal.GetWindowTopLine(id)
	left := m.ed.Terminal.GetWindowLeftCol(id)
	focused := id == m.currentWindowID()

	lines := make([]string, 0, n-top)
	for i := top; i < n; i++ {
		line, err := m.ed.Buffer.Line(i)
		if err != nil {
			break
		}
		runes := []rune(line)
		if left < len(runes) {
			runes = runes[left:]
		} else {
			runes = nil
		}
		text := string(runes)
		if focused && i == m.ed.Cursor.Line {
			text = highlightCol(text, m.ed.Cursor.Col-left)
		}
		lines = append(lines, text)
	}
	return lines
}

// highlightCol reverse-styles the rune at col (or a single trailing
// space, past end of line) so the cursor is visible. render.go's own
// clipLines works in raw rune counts, so this must stay a single
// visible cell wide: a reverse-video escape pair around one rune.
func highlightCol(line string, col int) string {
	runes := []rune(line)
	if col < 0 {
		col = 0
	}
	before, cell, after := string(runes), " ", ""
	if col < len(runes) {
		before = string(runes[:col])
		cell = string(runes[col])
		after = string(runes[col+1:])
	}
	return before + lipgloss.NewStyle().Reverse(true).Render(cell) + after
}

// scrollIntoView keeps the focused window's top_line covering the
// cursor, the minimal version of Vim's scrolloff handling.
func (m *Model) scrollIntoView() {
	id := m.currentWindowID()
	if _, isTerm := m.termWindows[string(id)]; isTerm {
		return
	}
	rects := m.ed.Layout.Rects()
	rect, ok := rects[id]
	if !ok || rect.H <= 0 {
		return
	}
	height := rect.H - 2 // PanelStyle border
	if height < 1 {
		height = 1
	}
	top := m.ed.Terminal.GetWindowTopLine(id)
	line := m.ed.Cursor.Line
	if line < top {
		top = line
	} else if line >= top+height {
		top = line - height + 1
	}
	if top < 0 {
		top = 0
	}
	m.ed.Terminal.SetWindowTopLine(id, top)
}

func (m *Model) tabInfos() []ui.TabInfo {
	tabs := m.ed.Layout.Tabs()
	out := make([]ui.TabInfo, len(tabs))
	for i, tab := range tabs {
		out[i] = ui.TabInfo{
			Index:       i,
			Label:       tab.Name,
			Active:      i == m.ed.Layout.TabIndex(),
			WindowCount: len(layout.Leaves(tab.Root)),
		}
	}
	return out
}

func (m *Model) statusLine() string {
	if m.mode == ModeCmdline {
		return m.cmdline.Render(m.width)
	}
	if reg, ok := m.ed.Macros.RecordingRegister(); ok {
		return ui.RenderStatusBarWithActivity(m.width, fmt.Sprintf("recording @%c", reg), m.spinFrame)
	}
	if m.statusMsg != "" {
		return ui.RenderResultBar(m.width, m.statusMsg)
	}
	info := ui.ModeInfo{
		Mode: m.mode.String(),
		Name: m.ed.Buffer.GetPath(),
	}
	if info.Name == "" {
		info.Name = "[No Name]"
	}
	return ui.RenderStatusBar(m.width, info, m.ed.Cursor.Line+1, m.ed.Cursor.Col+1)
}
