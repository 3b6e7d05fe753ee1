package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// CmdLine is the `:` ex-command and `/` `?` search input line, a thin
// wrapper over bubbles/textinput carrying the leading prompt character.
type CmdLine struct {
	Prompt rune
	input  textinput.Model
}

// NewCmdLine builds an unfocused command-line input.
func NewCmdLine() CmdLine {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	return CmdLine{input: ti}
}

// Open focuses the input with the given leading prompt character
// (':', '/', or '?') and clears any previous value.
func (c *CmdLine) Open(prompt rune) {
	c.Prompt = prompt
	c.input.SetValue("")
	c.input.Focus()
}

// Close blurs the input.
func (c *CmdLine) Close() {
	c.input.Blur()
	c.input.SetValue("")
}

// Active reports whether the command-line is currently accepting input.
func (c *CmdLine) Active() bool { return c.input.Focused() }

// Value returns the current line content, without the prompt character.
func (c *CmdLine) Value() string { return c.input.Value() }

// Input exposes the embedded textinput.Model so the caller's Update
// loop can drive it directly with the incoming tea.Msg.
func (c *CmdLine) Input() *textinput.Model { return &c.input }

// Render draws the prompt character followed by the live input value.
func (c CmdLine) Render(width int) string {
	prompt_style := lipgloss.NewStyle().Bold(true).Foreground(FocusBorderColor)
	c.input.Width = width - 2
	return lipgloss.NewStyle().Width(width).Render(
		prompt_style.Render(string(c.Prompt)) + c.input.View(),
	)
}
