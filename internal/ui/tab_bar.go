package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// TabInfo holds display data for one editor tab page.
type TabInfo struct {
	Index      int
	Label      string
	Active     bool
	Modified   bool
	WindowCount int
}

// RenderTabLine renders the single-line tab strip vim draws at the top
// of the screen when more than one tab page is open.
func RenderTabLine(tabs []TabInfo, width int) string {
	if len(tabs) <= 1 {
		return lipgloss.NewStyle().Width(width).Background(HeaderColor).Render("")
	}

	var parts []string
	for _, tab := range tabs {
		parts = append(parts, format_tab_cell(tab))
	}

	line := strings.Join(parts, "")
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Background(HeaderColor).Render(line)
}

func format_tab_cell(tab TabInfo) string {
	mark := tab_status_indicator_plain(tab)
	name := tab.Label
	const maxName = 18
	if utf8.RuneCountInString(name) > maxName {
		runes := []rune(name)
		name = string(runes[:maxName-1]) + "~"
	}
	label := fmt.Sprintf(" %d%s %s ", tab.Index+1, mark, name)

	if tab.Active {
		return lipgloss.NewStyle().
			Bold(true).
			Background(SelectedBgColor).
			Foreground(lipgloss.Color("255")).
			Render(label)
	}
	return lipgloss.NewStyle().
		Foreground(DimTextColor).
		Render(label)
}

func tab_status_indicator_plain(tab TabInfo) string {
	if tab.Modified {
		return "+"
	}
	return ""
}
