// Package app is the external mode layer spec.md §2 keeps out of the
// core: a bubbletea Model/Update/View that turns raw key events into
// Normal/Insert/Visual/Command-line behavior and drives an
// *editor.Editor through its DispatchKey/ExecuteLine entry points.
//
// Grounded on the teacher's app.Model (owned, non-global Model state
// threaded through Update/View, message types named MsgXxx, commands
// as closures returning tea.Msg), reshaped around a single Editor
// aggregate instead of a worktree list.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyxed/edcore/internal/capability"
	"github.com/nyxed/edcore/internal/editor"
	"github.com/nyxed/edcore/internal/terminal"
	"github.com/nyxed/edcore/internal/ui"
)

// Mode is the active input mode. The core knows nothing about any of
// this; it only ever sees the DispatchKey/ExecuteLine calls this layer
// makes in response.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
	ModeVisualLine
	ModeCmdline
)

func (mo Mode) String() string {
	switch mo {
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeVisualLine:
		return "VISUAL LINE"
	case ModeCmdline:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

// pending accumulates a normal-mode command still being typed: a
// count, a `"x` register prefix, an operator (d/y/c) waiting for its
// motion, and a one-rune lead-in (g, Z, Ctrl-W, f/F/t/T, m, ', `, q, @)
// waiting for its target.
type pending struct {
	count    string
	register rune
	operator rune
	lead     string
}

func (p *pending) reset() { *p = pending{} }

func (p *pending) hasCount() bool { return p.count != "" }

func (p *pending) countOr(def int) int {
	if p.count == "" {
		return def
	}
	n := 0
	for _, r := range p.count {
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return def
	}
	return n
}

// Model is the root bubbletea model.
type Model struct {
	ed      *editor.Editor
	term    *terminal.Registry
	mode    Mode
	pending pending

	visualAnchor editor.Cursor
	lastFind     rune // last f/F/t/T target, for `;`/`,`
	lastFindKey  string

	cmdline ui.CmdLine

	width, height int
	ready         bool

	helpOpen   bool
	output     *ui.OutputOverlay
	outputOpen bool

	termCounter int
	termWindows map[string]string

	spinFrame int
	statusMsg string

	quitting bool
}

// NewModel builds a Model over a fresh in-memory buffer seeded with
// content, the production realization of capability.Buffer/Terminal/
// Clipboard (no real OS resource is needed for single-process window
// bookkeeping, per the layout manager's own design).
func NewModel(path, content string) *Model {
	buf := capability.NewMemBuffer(content)
	buf.SetPath(path)
	buf.SetName(path)

	m := &Model{
		mode:    ModeNormal,
		cmdline: ui.NewCmdLine(),
		term:    terminal.NewRegistry(),
	}
	// m satisfies capability.KeyDispatcher; the Editor needs the
	// pointer before it exists, so we hand it m itself and only read
	// m.ed (assigned next) once a key actually arrives.
	m.ed = editor.New(buf, capability.NewMemTerminal(), capability.NewMemClipboard(), m, "buf1")
	registerHostCommands(m)
	return m
}

func (m *Model) Init() tea.Cmd { return nil }

// Close terminates any :terminal buffer processes and their tmux
// server. Safe to call even if :terminal was never used.
func (m *Model) Close() {
	m.term.CloseAll()
}

// ExecuteLine runs an ex-command line against the underlying editor,
// for callers outside the bubbletea loop (main's init-script sourcing).
func (m *Model) ExecuteLine(line string) error {
	return m.ed.ExecuteLine(line)
}

// DispatchKey implements capability.KeyDispatcher: the single funnel
// both live key events and macro replay/`:normal` feed through.
func (m *Model) DispatchKey(ev tea.KeyMsg) error {
	switch m.mode {
	case ModeInsert:
		return m.handleInsertKey(ev)
	case ModeVisual, ModeVisualLine:
		return m.handleVisualKey(ev)
	case ModeCmdline:
		return m.handleCmdlineKey(ev)
	default:
		return m.handleNormalModeKey(ev)
	}
}

func (m *Model) enterInsert() {
	m.mode = ModeInsert
	m.ed.LastInsert = nil
	m.pending.reset()
}

func (m *Model) exitInsert() {
	m.ed.OnInsertModeExit()
	m.mode = ModeNormal
}

func (m *Model) enterVisual(line bool) {
	m.visualAnchor = m.ed.Cursor
	if line {
		m.mode = ModeVisualLine
	} else {
		m.mode = ModeVisual
	}
	m.pending.reset()
}

func (m *Model) exitVisual() {
	m.setVisualMarks(m.visualAnchor, m.ed.Cursor)
	m.mode = ModeNormal
	m.pending.reset()
}

// spinTickMsg drives the macro-recording status spinner.
type spinTickMsg struct{}

func spinTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg { return spinTickMsg{} })
}

func (m *Model) clampCursor() {
	n := m.ed.Buffer.LineCount()
	if m.ed.Cursor.Line >= n {
		m.ed.Cursor.Line = n - 1
	}
	if m.ed.Cursor.Line < 0 {
		m.ed.Cursor.Line = 0
	}
	line := m.currentLine()
	maxCol := len([]rune(line))
	if m.mode != ModeInsert && maxCol > 0 {
		maxCol--
	}
	if m.ed.Cursor.Col > maxCol {
		m.ed.Cursor.Col = maxCol
	}
	if m.ed.Cursor.Col < 0 {
		m.ed.Cursor.Col = 0
	}
}

func (m *Model) currentLine() string {
	s, err := m.ed.Buffer.Line(m.ed.Cursor.Line)
	if err != nil {
		return ""
	}
	return s
}

func (m *Model) lineRunes(i int) []rune {
	s, err := m.ed.Buffer.Line(i)
	if err != nil {
		return nil
	}
	return []rune(s)
}
