package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyxed/edcore/internal/editor"
)

// handleInsertKey inserts typed runes at the cursor and tracks the
// keys typed since entering insert mode in e.LastInsert (enterInsert
// clears it). No normal-mode command in this package replays it.
func (m *Model) handleInsertKey(ev tea.KeyMsg) error {
	switch ev.Type {
	case tea.KeyEsc:
		if m.ed.Cursor.Col > 0 {
			m.ed.Cursor.Col--
		}
		m.exitInsert()
		return nil

	case tea.KeyEnter:
		idx := m.ed.Buffer.PositionToCharIdx(m.ed.Cursor.Line, m.ed.Cursor.Col)
		if err := m.ed.Buffer.Insert(idx, "\n"); err != nil {
			return err
		}
		m.ed.Cursor = editor.Cursor{Line: m.ed.Cursor.Line + 1, Col: 0}
		m.ed.LastInsert = append(m.ed.LastInsert, ev)
		return nil

	case tea.KeyBackspace:
		if m.ed.Cursor.Col == 0 && m.ed.Cursor.Line == 0 {
			return nil
		}
		idx := m.ed.Buffer.PositionToCharIdx(m.ed.Cursor.Line, m.ed.Cursor.Col)
		if idx == 0 {
			return nil
		}
		if err := m.ed.Buffer.Delete(idx-1, idx); err != nil {
			return err
		}
		if m.ed.Cursor.Col > 0 {
			m.ed.Cursor.Col--
		} else {
			m.ed.Cursor.Line--
			m.ed.Cursor.Col = len(m.lineRunes(m.ed.Cursor.Line))
		}
		m.ed.LastInsert = append(m.ed.LastInsert, ev)
		return nil

	case tea.KeyTab:
		return m.insertText(ev, "\t")

	case tea.KeyRunes, tea.KeySpace:
		text := string(ev.Runes)
		if ev.Type == tea.KeySpace {
			text = " "
		}
		return m.insertText(ev, text)
	}
	return nil
}

func (m *Model) insertText(ev tea.KeyMsg, text string) error {
	idx := m.ed.Buffer.PositionToCharIdx(m.ed.Cursor.Line, m.ed.Cursor.Col)
	if err := m.ed.Buffer.Insert(idx, text); err != nil {
		return err
	}
	m.ed.Cursor.Col += len([]rune(text))
	m.ed.LastInsert = append(m.ed.LastInsert, ev)
	return nil
}
