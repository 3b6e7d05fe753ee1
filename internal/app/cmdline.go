package app

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyxed/edcore/internal/registers"
	"github.com/nyxed/edcore/internal/search"
	"github.com/nyxed/edcore/internal/ui"
)

// handleCmdlineKey drives the embedded ui.CmdLine's textinput with the
// incoming key, submitting on Enter (either an ex-command line through
// Editor.ExecuteLine, or a /? search pattern) and cancelling on Esc.
func (m *Model) handleCmdlineKey(ev tea.KeyMsg) error {
	switch ev.Type {
	case tea.KeyEsc:
		m.closeCmdline()
		return nil

	case tea.KeyEnter:
		prompt := m.cmdline.Prompt
		line := m.cmdline.Value()
		m.closeCmdline()

		switch prompt {
		case '/', '?':
			return m.submitSearch(line, prompt == '?')
		default:
			return m.submitExCommand(line)
		}
	}

	input := m.cmdline.Input()
	var cmd tea.Cmd
	*input, cmd = input.Update(ev)
	_ = cmd
	return nil
}

func (m *Model) closeCmdline() {
	m.cmdline.Close()
	m.mode = ModeNormal
}

// submitSearch sets the pattern, runs it over the buffer, and moves the
// cursor to the nearest match per spec.md §4.C.
func (m *Model) submitSearch(pattern string, backward bool) error {
	if pattern == "" {
		return nil
	}
	m.ed.PushJump()
	m.ed.Search.SetPattern(pattern)
	if backward {
		m.ed.Search.SetDirection(search.Backward)
	} else {
		m.ed.Search.SetDirection(search.Forward)
	}
	cs := search.EffectiveCaseSensitive(pattern, m.ed.GlobalCaseSensitive())
	matches, err := m.ed.Buffer.Search(pattern, cs)
	if err != nil {
		m.statusMsg = err.Error()
		return nil
	}
	m.ed.Search.SetResults(matches, m.ed.Cursor.Line, m.ed.Cursor.Col)
	if mt, ok := m.ed.Search.Current(); ok {
		m.ed.Cursor.Line, m.ed.Cursor.Col = mt.Line, mt.Col
		m.clampCursor()
	} else {
		m.statusMsg = "E486: Pattern not found: " + pattern
	}
	return nil
}

// submitExCommand special-cases the introspection commands that only
// the mode layer can render (:registers, :marks, :jumps open an output
// overlay; the registers and marks builtins in
// internal/editor/builtins.go are no-ops, and there is no jumps
// builtin) and otherwise hands the line straight to the ex-command
// pipeline.
func (m *Model) submitExCommand(line string) error {
	switch line {
	case "registers", "reg":
		m.showOutput("Registers", m.formatRegisters())
		return nil
	case "marks":
		m.showOutput("Marks", m.formatMarks())
		return nil
	case "jumps":
		m.showOutput("Jumps", m.formatJumps())
		return nil
	}
	err := m.ed.ExecuteLine(line)
	if err != nil {
		err = m.quitIfLast(err)
	}
	if err != nil {
		m.statusMsg = err.Error()
		return nil
	}
	if m.ed.LastNotice != "" {
		m.statusMsg = m.ed.LastNotice
	}
	m.clampCursor()
	return nil
}

func (m *Model) showOutput(title string, lines []string) {
	overlay := ui.NewOutputOverlay(title, lines, m.width, m.height)
	m.output = &overlay
	m.outputOpen = true
}

// formatRegisters renders one line per non-empty register, sorted by
// name, in the style of Vim's `:registers` listing.
func (m *Model) formatRegisters() []string {
	all := m.ed.Registers.All()
	names := make([]rune, 0, len(all))
	for name, slot := range all {
		if !slot.IsEmpty() {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	lines := []string{"--- Registers ---"}
	for _, name := range names {
		slot := all[name]
		var preview string
		switch slot.Kind {
		case registers.LineWise, registers.BlockWise:
			preview = strings.Join(slot.Lines, "^J")
		case registers.MacroKeys:
			preview = fmt.Sprintf("<%d keys recorded>", len(slot.Keys))
		default:
			preview = slot.Text
		}
		preview = strings.ReplaceAll(preview, "\n", "^J")
		lines = append(lines, fmt.Sprintf("\"%c   %s", name, preview))
	}
	return lines
}

// formatMarks renders one line per set mark, sorted by name, in the
// style of Vim's `:marks` listing.
func (m *Model) formatMarks() []string {
	all := m.ed.Marks.All()
	names := make([]rune, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	lines := []string{" mark line  col file/text"}
	for _, name := range names {
		pos := all[name]
		lines = append(lines, fmt.Sprintf(" %-4c %-5d %-4d %s", name, pos.Line+1, pos.Col, pos.BufferID))
	}
	return lines
}

// formatJumps renders the jump list oldest-first, marking the entry the
// cursor would land on with `>`, in the style of Vim's `:jumps` listing.
func (m *Model) formatJumps() []string {
	entries, cursor := m.ed.Jumps.Entries()
	lines := []string{" jump line  col file/text"}
	for i, pos := range entries {
		marker := " "
		if i == cursor {
			marker = ">"
		}
		lines = append(lines, fmt.Sprintf("%s%3d  %-5d %-4d %s", marker, len(entries)-i, pos.Line+1, pos.Col, pos.BufferID))
	}
	return lines
}
