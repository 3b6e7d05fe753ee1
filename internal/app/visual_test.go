package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestVisualCharDeleteSelection(t *testing.T) {
	m := NewModel("", "hello world")
	press(t, m, "v")
	if m.mode != ModeVisual {
		t.Fatalf("mode after v = %v, want Visual", m.mode)
	}
	for i := 0; i < 4; i++ {
		press(t, m, "l")
	}
	press(t, m, "d")
	if m.mode != ModeNormal {
		t.Fatalf("mode after visual d = %v, want Normal", m.mode)
	}
	got, _ := m.ed.Buffer.Line(0)
	if got != " world" {
		t.Fatalf("line after visual delete = %q, want %q", got, " world")
	}
}

func TestVisualLineYankWholeLines(t *testing.T) {
	m := NewModel("", "one\ntwo\nthree")
	press(t, m, "V")
	press(t, m, "j")
	press(t, m, "y")
	if m.mode != ModeNormal {
		t.Fatalf("mode after visual-line y = %v, want Normal", m.mode)
	}
	slot, ok := m.ed.Registers.Get(m.ed.Registers.Default())
	if !ok || len(slot.Lines) != 2 || slot.Lines[0] != "one" || slot.Lines[1] != "two" {
		t.Fatalf("yanked lines = %+v", slot)
	}
	// yank must not mutate the buffer
	if m.ed.Buffer.LineCount() != 3 {
		t.Fatalf("line count after visual-line yank = %d, want 3", m.ed.Buffer.LineCount())
	}
}

func TestVisualEscCancelsSelection(t *testing.T) {
	m := NewModel("", "abcdef")
	press(t, m, "v")
	press(t, m, "l")
	if err := m.ed.DispatchKey(tea.KeyMsg{Type: tea.KeyEsc}); err != nil {
		t.Fatalf("esc: %v", err)
	}
	if m.mode != ModeNormal {
		t.Fatalf("mode after esc = %v, want Normal", m.mode)
	}
	got, _ := m.ed.Buffer.Line(0)
	if got != "abcdef" {
		t.Fatalf("buffer mutated by cancelled visual selection: %q", got)
	}
}

func TestVisualDeleteSetsAngleBracketMarks(t *testing.T) {
	m := NewModel("", "hello world")
	press(t, m, "v")
	for i := 0; i < 4; i++ {
		press(t, m, "l")
	}
	press(t, m, "d")
	if mk, err := m.ed.Marks.Get('<'); err != nil || mk.Col != 0 {
		t.Fatalf("'<' mark after visual delete = %+v, %v, want col 0", mk, err)
	}
	if mk, err := m.ed.Marks.Get('>'); err != nil || mk.Col != 4 {
		t.Fatalf("'>' mark after visual delete = %+v, %v, want col 4", mk, err)
	}
}

func TestVisualEscSetsAngleBracketMarks(t *testing.T) {
	m := NewModel("", "abcdef")
	press(t, m, "v")
	press(t, m, "l")
	press(t, m, "l")
	if err := m.ed.DispatchKey(tea.KeyMsg{Type: tea.KeyEsc}); err != nil {
		t.Fatalf("esc: %v", err)
	}
	if mk, err := m.ed.Marks.Get('<'); err != nil || mk.Col != 0 {
		t.Fatalf("'<' mark after esc-cancelled visual = %+v, %v, want col 0", mk, err)
	}
	if mk, err := m.ed.Marks.Get('>'); err != nil || mk.Col != 2 {
		t.Fatalf("'>' mark after esc-cancelled visual = %+v, %v, want col 2", mk, err)
	}
}

func TestVisualOSwapsAnchorAndCursor(t *testing.T) {
	m := NewModel("", "abcdef")
	press(t, m, "v")
	press(t, m, "l")
	press(t, m, "l")
	anchorBefore := m.visualAnchor
	cursorBefore := m.ed.Cursor
	press(t, m, "o")
	if m.ed.Cursor != anchorBefore || m.visualAnchor != cursorBefore {
		t.Fatalf("o did not swap anchor/cursor: anchor=%+v cursor=%+v", m.visualAnchor, m.ed.Cursor)
	}
}
