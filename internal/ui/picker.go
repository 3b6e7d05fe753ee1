package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PickerAction represents a selectable action in a popup menu. It is
// used both for the confirm-style action menus (e.g. "this command is
// ambiguous, pick one") and for ex-command name completion, where Key
// is the completed name and Desc is a one-line summary pulled from the
// command registry.
type PickerAction struct {
	Key   string
	Label string
	Desc  string
}

// RenderPicker renders a bordered, cursor-highlighted list of actions.
func RenderPicker(actions []PickerAction, cursor int, width, height int, title string) string {
	picker_style := lipgloss.NewStyle().
		Width(width - 2).
		Height(height - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(FocusBorderColor)

	title_rendered := lipgloss.NewStyle().
		Bold(true).
		Foreground(FocusBorderColor).
		Render(fmt.Sprintf(" %s ", title))

	var lines []string
	inner_w := width - 4
	for i, a := range actions {
		if i == cursor {
			key_plain := lipgloss.NewStyle().Width(3).Render(a.Key)
			label_plain := lipgloss.NewStyle().Width(14).Render(a.Label)
			line := fmt.Sprintf(" %s %s %s", key_plain, label_plain, a.Desc)
			line = lipgloss.NewStyle().
				Background(SelectedBgColor).
				Foreground(lipgloss.Color("255")).
				Bold(true).
				Width(inner_w).
				Render(line)
			lines = append(lines, line)
			continue
		}

		key_rendered := lipgloss.NewStyle().
			Bold(true).
			Foreground(FocusBorderColor).
			Width(3).
			Render(a.Key)

		label_rendered := lipgloss.NewStyle().
			Width(14).
			Render(a.Label)

		desc_rendered := lipgloss.NewStyle().
			Foreground(DimTextColor).
			Render(a.Desc)

		line := fmt.Sprintf(" %s %s %s", key_rendered, label_rendered, desc_rendered)
		lines = append(lines, line)
	}

	content := strings.Join(lines, "\n")
	styled := picker_style.Render(content)
	styled = inject_title(styled, title_rendered)

	return styled
}
