// Package capability declares the external collaborators the editor core
// borrows for the duration of a handler call: a text Buffer, a window
// Terminal, a system Clipboard, and the key-dispatch entry point macro
// replay and :normal feed into. The core never implements these itself —
// it only consumes them, matching spec.md §6.
package capability

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Match is a single search hit as returned by Buffer.Search.
type Match struct {
	Line int
	Col  int
	Text string
}

// Buffer is the text-storage capability the core edits through. It
// deliberately says nothing about ropes, gap buffers, or piece tables —
// that choice belongs to whatever satisfies this interface.
type Buffer interface {
	LineCount() int
	Line(i int) (string, error)
	Content() string
	PositionToCharIdx(line, col int) int

	Insert(charIdx int, text string) error
	Delete(startIdx, endIdx int) error
	SetContent(text string)

	Search(pattern string, caseSensitive bool) ([]Match, error)

	Undo() bool
	Redo() bool

	GetPath() string
	SetName(name string)
	IsHelp() bool
	IsTerminal() bool
	IsBlank() bool
	Filetype() string
}

// WindowID identifies a window/pane realized by a Terminal capability.
// The layout manager (component E) mints the logical tree structure and
// the Terminal mints the ids for split_window/create_tab, mirroring
// spec.md §6.
type WindowID string

// Direction is a split axis, shared with layout.Direction's string values
// so handlers can pass it straight through without importing layout here.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

// Terminal is the screen/window-realization capability the layout
// manager invokes. It owns actual rendering resources; the layout
// manager owns the logical tree that decides what to ask it for.
type Terminal interface {
	CurrentWindowID() WindowID
	FocusWindow(id WindowID) error
	SplitWindow(dir Direction, bufID string) (WindowID, error)
	CloseWindow(id WindowID) error
	CloseCurrentWindow() (bool, error)
	CreateTab(bufID string, name string) (WindowID, error)
	CloseCurrentTab() (bool, error)
	NextWindow() error
	PrevWindow() error
	NextTab() error
	PrevTab() error

	SetWindowWidthFixed(id WindowID, fixed bool) error
	SetWindowHeightFixed(id WindowID, fixed bool) error
	SetWindowSize(id WindowID, w, h int) error
	GetWindowTopLine(id WindowID) int
	SetWindowTopLine(id WindowID, n int) error
	GetWindowLeftCol(id WindowID) int
	SetWindowLeftCol(id WindowID, n int) error
}

// Clipboard is the host system clipboard the register store mirrors
// reads/writes of "* and "+ through.
type Clipboard interface {
	Read(selection rune) (string, error)
	Write(selection rune, text string) error
}

// KeyDispatcher is the key-dispatch entry point user input and macro
// replay both feed into. The mode layer (Normal/Insert/Visual) that
// implements it lives outside the core — see spec.md §2's "mode layer
// (external)" — the core only ever calls through this interface.
type KeyDispatcher interface {
	DispatchKey(ev tea.KeyMsg) error
}

// ExternalError wraps an error returned by a Buffer or Terminal
// capability with the name of the collaborator that produced it, per
// spec.md §7's External(source, msg) tag.
type ExternalError struct {
	Source string
	Err    error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *ExternalError) Unwrap() error { return e.Err }

func Wrap(source string, err error) error {
	if err == nil {
		return nil
	}
	return &ExternalError{Source: source, Err: err}
}
