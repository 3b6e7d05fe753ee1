package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyxed/edcore/internal/editor"
	"github.com/nyxed/edcore/internal/marks"
)

// handleVisualKey extends the selection from m.visualAnchor to the
// cursor on any motion, and applies d/y/c/x/s over that span via the
// same applyOperator the operator-pending normal-mode commands use.
func (m *Model) handleVisualKey(ev tea.KeyMsg) error {
	if ev.Type == tea.KeyEsc {
		m.exitVisual()
		return nil
	}

	key := ev.String()

	switch key {
	case "v":
		if m.mode == ModeVisual {
			m.exitVisual()
		} else {
			m.mode = ModeVisual
		}
		return nil
	case "V":
		if m.mode == ModeVisualLine {
			m.exitVisual()
		} else {
			m.mode = ModeVisualLine
		}
		return nil
	}

	if res, ok := m.resolveMotion(key, m.pending.countOr(1)); ok {
		m.ed.Cursor = res.cursor
		m.clampCursor()
		m.pending.count = ""
		return nil
	}
	if key >= "1" && key <= "9" || (key == "0" && m.pending.hasCount()) {
		m.pending.count += key
		return nil
	}

	switch key {
	case "d", "x":
		return m.visualApply('d')
	case "y":
		err := m.visualApply('y')
		m.exitVisual()
		return err
	case "c", "s":
		return m.visualApply('c')
	case "\"":
		m.pending.lead = "\""
		return nil
	case "o":
		m.ed.Cursor, m.visualAnchor = m.visualAnchor, m.ed.Cursor
		return nil
	case "g":
		if m.pending.lead == "g" {
			m.pending.lead = ""
			m.ed.Cursor = editor.Cursor{Line: 0, Col: 0}
			m.clampCursor()
			return nil
		}
		m.pending.lead = "g"
		return nil
	}

	if m.pending.lead == "\"" {
		m.pending.lead = ""
		if r := soleRune(key); r != 0 {
			m.pending.register = r
		}
		return nil
	}

	return nil
}

// visualApply runs op over the span currently selected, linewise for
// ModeVisualLine and charwise-inclusive otherwise, then drops back to
// Normal mode (c leaves Insert active instead, same as applyOperator
// does for operator-pending c).
func (m *Model) visualApply(op rune) error {
	from, to := m.visualAnchor, m.ed.Cursor
	m.setVisualMarks(from, to)
	linewise := m.mode == ModeVisualLine
	err := m.applyOperator(op, from, to, linewise, !linewise)
	if op != 'c' {
		m.mode = ModeNormal
	}
	m.pending.reset()
	return err
}

// setVisualMarks records the selection just left to the `<`/`>` marks
// per spec.md §3 ("visual endpoints"), `<` always the earlier position
// regardless of which end the cursor or the anchor was on.
func (m *Model) setVisualMarks(from, to editor.Cursor) {
	lo, hi := from, to
	if hi.Line < lo.Line || (hi.Line == lo.Line && hi.Col < lo.Col) {
		lo, hi = hi, lo
	}
	m.ed.Marks.Set('<', marks.Position{BufferID: m.ed.BufferID, Line: lo.Line, Col: lo.Col})
	m.ed.Marks.Set('>', marks.Position{BufferID: m.ed.BufferID, Line: hi.Line, Col: hi.Col})
}
