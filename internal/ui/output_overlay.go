package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// OutputOverlay is a scrollable command-output window, the editor
// analog of vim's more-prompt scratch buffer shown for `:registers`,
// `:marks`, and `:jumps`.
type OutputOverlay struct {
	Title string
	vp    viewport.Model
}

// NewOutputOverlay builds a scrollable overlay sized to fit within
// maxW x maxH, with its content already loaded.
func NewOutputOverlay(title string, lines []string, maxW, maxH int) OutputOverlay {
	w := maxW - 4
	if w > 60 {
		w = 60
	}
	h := maxH - 6
	if h > len(lines) {
		h = len(lines)
	}
	if h < 1 {
		h = 1
	}

	vp := viewport.New(w, h)
	vp.SetContent(strings.Join(lines, "\n"))

	return OutputOverlay{Title: title, vp: vp}
}

// Viewport exposes the embedded bubbles/viewport.Model so the caller's
// Update loop can drive it directly with the incoming tea.Msg.
func (o *OutputOverlay) Viewport() *viewport.Model { return &o.vp }

// Render draws the bordered, titled overlay box.
func (o OutputOverlay) Render() string {
	box := lipgloss.NewStyle().
		Width(o.vp.Width + 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(FocusBorderColor).
		Padding(0, 1)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(FocusBorderColor).
		Render(" " + o.Title + " ")

	return inject_title(box.Render(o.vp.View()), title)
}
