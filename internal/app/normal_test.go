package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *Model, s string) {
	t.Helper()
	if err := m.ed.DispatchKey(keyRunes(s)); err != nil {
		t.Fatalf("DispatchKey(%q): %v", s, err)
	}
}

func TestMotionsMoveCursor(t *testing.T) {
	m := NewModel("", "abc\ndef\nghi")

	press(t, m, "l")
	if m.ed.Cursor.Col != 1 {
		t.Fatalf("after l: col = %d, want 1", m.ed.Cursor.Col)
	}
	press(t, m, "j")
	if m.ed.Cursor.Line != 1 {
		t.Fatalf("after j: line = %d, want 1", m.ed.Cursor.Line)
	}
	press(t, m, "$")
	if m.ed.Cursor.Col != 2 {
		t.Fatalf("after $: col = %d, want 2", m.ed.Cursor.Col)
	}
	press(t, m, "0")
	if m.ed.Cursor.Col != 0 {
		t.Fatalf("after 0: col = %d, want 0", m.ed.Cursor.Col)
	}
}

func TestCountedMotion(t *testing.T) {
	m := NewModel("", "abcdefgh")
	press(t, m, "3")
	press(t, m, "l")
	if m.ed.Cursor.Col != 3 {
		t.Fatalf("3l: col = %d, want 3", m.ed.Cursor.Col)
	}
}

func TestGMotionGoesToLastLine(t *testing.T) {
	m := NewModel("", "a\nb\nc\nd")
	press(t, m, "G")
	if m.ed.Cursor.Line != 3 {
		t.Fatalf("G: line = %d, want 3", m.ed.Cursor.Line)
	}
}

func TestCountedGMotionGoesToLineN(t *testing.T) {
	m := NewModel("", "a\nb\nc\nd")
	press(t, m, "2")
	press(t, m, "G")
	if m.ed.Cursor.Line != 1 {
		t.Fatalf("2G: line = %d, want 1", m.ed.Cursor.Line)
	}
}

func TestGGMotionGoesToFirstLine(t *testing.T) {
	m := NewModel("", "a\nb\nc")
	press(t, m, "G")
	press(t, m, "g")
	press(t, m, "g")
	if m.ed.Cursor.Line != 0 {
		t.Fatalf("gg: line = %d, want 0", m.ed.Cursor.Line)
	}
}

func TestDwDeletesWord(t *testing.T) {
	m := NewModel("", "foo bar baz")
	press(t, m, "d")
	press(t, m, "w")
	got, _ := m.ed.Buffer.Line(0)
	if got != "bar baz" {
		t.Fatalf("dw: line = %q, want %q", got, "bar baz")
	}
	slot, ok := m.ed.Registers.Get(m.ed.Registers.Default())
	if !ok || slot.Text != "foo " {
		t.Fatalf("dw register: got %+v", slot)
	}
	if mk, err := m.ed.Marks.Get('['); err != nil || mk.Col != 0 {
		t.Fatalf("'[' mark after dw = %+v, %v, want col 0", mk, err)
	}
	if mk, err := m.ed.Marks.Get(']'); err != nil || mk.Col != 3 {
		t.Fatalf("']' mark after dw = %+v, %v, want col 3", mk, err)
	}
}

func TestDdDeletesLine(t *testing.T) {
	m := NewModel("", "one\ntwo\nthree")
	press(t, m, "d")
	press(t, m, "d")
	if m.ed.Buffer.LineCount() != 2 {
		t.Fatalf("dd: line count = %d, want 2", m.ed.Buffer.LineCount())
	}
	got, _ := m.ed.Buffer.Line(0)
	if got != "two" {
		t.Fatalf("dd: line 0 = %q, want two", got)
	}
}

func TestXDeletesCharUnderCursor(t *testing.T) {
	m := NewModel("", "abc")
	press(t, m, "x")
	got, _ := m.ed.Buffer.Line(0)
	if got != "bc" {
		t.Fatalf("x: line = %q, want bc", got)
	}
}

func TestYyThenPPastesLineBelow(t *testing.T) {
	m := NewModel("", "one\ntwo")
	press(t, m, "y")
	press(t, m, "y")
	press(t, m, "p")
	if m.ed.Buffer.LineCount() != 3 {
		t.Fatalf("yyp: line count = %d, want 3", m.ed.Buffer.LineCount())
	}
	got, _ := m.ed.Buffer.Line(1)
	if got != "one" {
		t.Fatalf("yyp: line 1 = %q, want one", got)
	}
}

func TestUndoRedo(t *testing.T) {
	m := NewModel("", "abc")
	press(t, m, "x")
	got, _ := m.ed.Buffer.Line(0)
	if got != "bc" {
		t.Fatalf("after x: %q", got)
	}
	press(t, m, "u")
	got, _ = m.ed.Buffer.Line(0)
	if got != "abc" {
		t.Fatalf("after u: %q, want abc", got)
	}
}

func TestRegisterPrefixYanksIntoNamedRegister(t *testing.T) {
	m := NewModel("", "hello world")
	press(t, m, "\"")
	press(t, m, "a")
	press(t, m, "y")
	press(t, m, "w")
	slot, ok := m.ed.Registers.Get('a')
	if !ok || slot.Text != "hello " {
		t.Fatalf("named register a: got %+v", slot)
	}
}

func TestMarkSetAndJump(t *testing.T) {
	m := NewModel("", "one\ntwo\nthree")
	press(t, m, "j")
	press(t, m, "m")
	press(t, m, "a")
	press(t, m, "g")
	press(t, m, "g")
	if m.ed.Cursor.Line != 0 {
		t.Fatalf("gg: line = %d, want 0", m.ed.Cursor.Line)
	}
	press(t, m, "'")
	press(t, m, "a")
	if m.ed.Cursor.Line != 1 {
		t.Fatalf("'a: line = %d, want 1", m.ed.Cursor.Line)
	}
}

func TestMacroRecordAndPlay(t *testing.T) {
	m := NewModel("", "a\na\na")

	// "qm" records into register m, "x" deletes the char under the
	// cursor, "j" moves down, then "q" stops recording.
	press(t, m, "q")
	press(t, m, "m")
	press(t, m, "x")
	press(t, m, "j")
	press(t, m, "q")

	if m.ed.Macros.IsRecording() {
		t.Fatalf("still recording after q")
	}

	line0, _ := m.ed.Buffer.Line(0)
	if line0 != "" {
		t.Fatalf("line 0 after recording = %q, want empty", line0)
	}
	if m.ed.Cursor.Line != 1 {
		t.Fatalf("cursor after recording: line = %d, want 1", m.ed.Cursor.Line)
	}

	// Replaying "@m" must re-apply the same x/j sequence from the new
	// cursor position without re-entering recording mode.
	press(t, m, "@")
	press(t, m, "m")

	line1, _ := m.ed.Buffer.Line(1)
	if line1 != "" {
		t.Fatalf("line 1 after @m = %q, want empty", line1)
	}
	if m.ed.Cursor.Line != 2 {
		t.Fatalf("cursor after @m: line = %d, want 2", m.ed.Cursor.Line)
	}
}

func TestEnterInsertAndEscReturnsToNormal(t *testing.T) {
	m := NewModel("", "abc")
	press(t, m, "i")
	if m.mode != ModeInsert {
		t.Fatalf("mode after i = %v, want Insert", m.mode)
	}
	press(t, m, "X")
	got, _ := m.ed.Buffer.Line(0)
	if got != "Xabc" {
		t.Fatalf("after insert X: %q", got)
	}
	if err := m.ed.DispatchKey(tea.KeyMsg{Type: tea.KeyEsc}); err != nil {
		t.Fatalf("esc: %v", err)
	}
	if m.mode != ModeNormal {
		t.Fatalf("mode after esc = %v, want Normal", m.mode)
	}
}
