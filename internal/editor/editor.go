// Package editor wires the four core components (registers, marks,
// search, macro) together with the layout manager and ex-command
// pipeline into a single Editor aggregate: the owned, no-global-state
// object spec.md §2 describes the entire core as. The mode layer
// (Normal/Insert/Visual/Command-line) lives outside this package, in
// internal/app, and drives the Editor through DispatchKey and
// ExecuteLine.
package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyxed/edcore/internal/capability"
	"github.com/nyxed/edcore/internal/excmd"
	"github.com/nyxed/edcore/internal/layout"
	"github.com/nyxed/edcore/internal/macro"
	"github.com/nyxed/edcore/internal/marks"
	"github.com/nyxed/edcore/internal/registers"
	"github.com/nyxed/edcore/internal/search"
)

// Cursor is the owning buffer's current position, the only piece of
// "where are we" state the core tracks directly (the buffer itself is
// an external capability and knows nothing about cursors).
type Cursor struct {
	Line, Col int
}

// Editor is the aggregate root: every core component plus the
// external capabilities borrowed for the session's duration.
type Editor struct {
	Registers *registers.Store
	Marks     *marks.Store
	Jumps     *marks.JumpList
	Search    *search.State
	Macros    *macro.Engine
	Layout    *layout.Manager
	Commands  *excmd.Pipeline

	Buffer    capability.Buffer
	Terminal  capability.Terminal
	Clipboard capability.Clipboard
	Dispatch  capability.KeyDispatcher

	Cursor      Cursor
	BufferID    string
	LastInsert  []tea.KeyMsg
	globalCaseSensitive bool

	// LastNotice is an informational diagnostic left by the last
	// executed ex command (e.g. "3 substitutions on 2 lines"), for
	// callers that display status text but aren't themselves part of
	// the pipeline. Cleared at the start of every ExecuteLine.
	LastNotice string
}

// New builds an Editor over the given capabilities, wiring the
// register store's "* / "+ to clipboard and "/ to the search state.
func New(buf capability.Buffer, term capability.Terminal, clip capability.Clipboard, dispatch capability.KeyDispatcher, bufID string) *Editor {
	searchState := search.New()
	e := &Editor{
		Marks:     marks.NewStore(),
		Jumps:     marks.NewJumpList(),
		Search:    searchState,
		Layout:    layout.NewManager(term),
		Commands:  excmd.NewPipeline(),
		Buffer:    buf,
		Terminal:  term,
		Clipboard: clip,
		Dispatch:  dispatch,
		BufferID:  bufID,
	}
	e.Registers = registers.New(clip, searchState)
	e.Macros = macro.NewEngine(e.Registers)
	RegisterBuiltins(e)
	return e
}

// DispatchKey is the single key-event entry point: it forwards the key
// to the external KeyDispatcher that implements mode behavior, then
// hands it to the macro recorder if a recording was in progress both
// before and after the key (so macros capture everything the user
// types while recording, including mode changes, but never the `q`
// that ends the recording).
func (e *Editor) DispatchKey(ev tea.KeyMsg) error {
	wasRecording := e.Macros.IsRecording()
	err := e.Dispatch.DispatchKey(ev)
	if wasRecording && e.Macros.IsRecording() {
		e.Macros.RecordKey(ev)
	}
	return err
}

// ExecuteLine runs one ex command line (without its leading `:`)
// through the pipeline, with e itself as the handler context.
func (e *Editor) ExecuteLine(line string) error {
	e.LastNotice = ""
	return e.Commands.Execute(e, line)
}

// PushJump records the cursor's current position to the jump list and
// to the `'`/`` ` `` auto-marks, called by handlers before a jump-class
// motion (search, G, marks, ...) per spec.md §4.B's auto-mark policy.
func (e *Editor) PushJump() {
	pos := marks.Position{BufferID: e.BufferID, Line: e.Cursor.Line, Col: e.Cursor.Col}
	e.Jumps.Push(pos)
	e.Marks.Set('\'', pos)
	e.Marks.Set('`', pos)
}

// JumpBack moves the cursor to the previous jump-list entry.
func (e *Editor) JumpBack() bool {
	pos, ok := e.Jumps.Back(marks.Position{BufferID: e.BufferID, Line: e.Cursor.Line, Col: e.Cursor.Col})
	if !ok {
		return false
	}
	e.Cursor.Line, e.Cursor.Col = pos.Line, pos.Col
	return true
}

// JumpForward moves the cursor to the next jump-list entry.
func (e *Editor) JumpForward() bool {
	pos, ok := e.Jumps.Forward()
	if !ok {
		return false
	}
	e.Cursor.Line, e.Cursor.Col = pos.Line, pos.Col
	return true
}

// OnInsertModeExit records the `^` (last insert) and `.` marks at the
// cursor per spec.md §4.B's auto-mark policy, called by the mode layer
// when leaving insert mode. It does not set `[`/`]`.
func (e *Editor) OnInsertModeExit() {
	pos := marks.Position{BufferID: e.BufferID, Line: e.Cursor.Line, Col: e.Cursor.Col}
	e.Marks.Set('^', pos)
	e.Marks.Set('.', pos)
}

// GlobalCaseSensitive is the 'ignorecase'-equivalent setting `:set`
// toggles; EffectiveCaseSensitive resolves it against any inline
// \c/\C escape in a given pattern.
func (e *Editor) GlobalCaseSensitive() bool     { return e.globalCaseSensitive }
func (e *Editor) SetGlobalCaseSensitive(v bool) { e.globalCaseSensitive = v }
