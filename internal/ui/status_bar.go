package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HintPair is one key/description pair shown in a help listing.
type HintPair struct {
	Key  string
	Desc string
}

// ModeInfo is the left-hand portion of the status (mode) line: the
// active mode name, the buffer's display name, and its modified flag.
type ModeInfo struct {
	Mode     string
	Name     string
	Modified bool
}

var spinFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// RenderStatusBar renders one window's mode line: mode name, buffer
// name and modified marker on the left, 1-based line/column on the
// right.
func RenderStatusBar(width int, info ModeInfo, line, col int) string {
	mode_style := lipgloss.NewStyle().Bold(true).Foreground(FocusBorderColor)
	name_style := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim_style := lipgloss.NewStyle().Foreground(DimTextColor)

	name := info.Name
	if info.Modified {
		name += " [+]"
	}
	left := mode_style.Render("-- "+info.Mode+" --") + " " + name_style.Render(name)
	right := dim_style.Render(lineColIndicator(line, col))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
	}

	return lipgloss.NewStyle().
		Width(width).
		Render(" " + left + strings.Repeat(" ", pad) + right + " ")
}

func lineColIndicator(line, col int) string {
	if line <= 0 {
		return "0,0"
	}
	return strings.TrimSpace(lipgloss.NewStyle().Render(itoaStatus(line) + "," + itoaStatus(col)))
}

func itoaStatus(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}

// RenderStatusBarWithActivity renders the mode line with a recording
// spinner in place of the mode name, used while a macro is recording.
func RenderStatusBarWithActivity(width int, activity string, spin_frame int) string {
	frame := spinFrames[spin_frame%len(spinFrames)]
	icon := lipgloss.NewStyle().Foreground(StartingColor).Render(frame)
	text := lipgloss.NewStyle().Foreground(StartingColor).Render(" " + activity)

	return lipgloss.NewStyle().
		Width(width).
		Render(" " + icon + text)
}

func RenderInputBar(width int, prompt string, value string) string {
	prompt_style := lipgloss.NewStyle().
		Bold(true).
		Foreground(FocusBorderColor)

	cursor := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(FocusBorderColor).
		Render(" ")

	esc_hint := lipgloss.NewStyle().
		Foreground(DimTextColor).
		Render("  (Esc to cancel)")

	content := prompt_style.Render(prompt+": ") + value + cursor + esc_hint

	return lipgloss.NewStyle().
		Width(width).
		Render(" " + content)
}

func RenderResultBar(width int, result string) string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	return lipgloss.NewStyle().
		Width(width).
		Render(" " + style.Render(result))
}
