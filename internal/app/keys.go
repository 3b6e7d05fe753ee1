package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the handful of bindings matched by name (key.Matches)
// rather than by raw string, extended here with the mode-layer's own
// Normal/Insert/Visual entries and the macro/register prefix keys, the
// way the teacher's KeyMap covers its own global bindings.
type KeyMap struct {
	CtrlC  key.Binding
	Escape key.Binding
	Enter  key.Binding
	Help   key.Binding

	InsertBefore key.Binding
	InsertAfter  key.Binding
	OpenBelow    key.Binding
	OpenAbove    key.Binding

	VisualChar key.Binding
	VisualLine key.Binding

	Cmdline key.Binding
	Search  key.Binding
	RSearch key.Binding

	RegisterPrefix key.Binding
	MacroRecord    key.Binding
	MacroPlay      key.Binding
	WindowPrefix   key.Binding
}

var Keys = KeyMap{
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "normal mode"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "confirm"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp(":help", "help"),
	),
	InsertBefore: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "insert before cursor"),
	),
	InsertAfter: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "insert after cursor"),
	),
	OpenBelow: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open line below"),
	),
	OpenAbove: key.NewBinding(
		key.WithKeys("O"),
		key.WithHelp("O", "open line above"),
	),
	VisualChar: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "visual mode"),
	),
	VisualLine: key.NewBinding(
		key.WithKeys("V"),
		key.WithHelp("V", "visual line mode"),
	),
	Cmdline: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "command line"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search forward"),
	),
	RSearch: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "search backward"),
	),
	RegisterPrefix: key.NewBinding(
		key.WithKeys("\""),
		key.WithHelp("\"x", "select register x"),
	),
	MacroRecord: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("qx", "record macro into x"),
	),
	MacroPlay: key.NewBinding(
		key.WithKeys("@"),
		key.WithHelp("@x", "play macro x"),
	),
	WindowPrefix: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("Ctrl-W", "window commands"),
	),
}
