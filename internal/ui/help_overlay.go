package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type HelpSection struct {
	Title string
	Items []HintPair
}

// HelpSections describes the keybinding help overlay shown on '?'.
func HelpSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Modes",
			Items: []HintPair{
				{Key: "i/a/o", Desc: "Enter insert mode"},
				{Key: "v/V", Desc: "Enter visual / visual-line"},
				{Key: ":", Desc: "Enter command-line mode"},
				{Key: "Esc", Desc: "Back to normal mode"},
			},
		},
		{
			Title: "Motion",
			Items: []HintPair{
				{Key: "h/j/k/l", Desc: "Move cursor"},
				{Key: "0/$", Desc: "Start / end of line"},
				{Key: "gg/G", Desc: "First / last line"},
				{Key: "Ctrl-O/Ctrl-I", Desc: "Jump back / forward"},
			},
		},
		{
			Title: "Registers & macros",
			Items: []HintPair{
				{Key: "\"x", Desc: "Select register x"},
				{Key: "y/d/p", Desc: "Yank / delete / put"},
				{Key: "qx", Desc: "Record macro into x"},
				{Key: "@x", Desc: "Play macro x"},
			},
		},
		{
			Title: "Windows & tabs",
			Items: []HintPair{
				{Key: "Ctrl-W s/v", Desc: "Split horizontal / vertical"},
				{Key: "Ctrl-W c", Desc: "Close window"},
				{Key: "Ctrl-W w", Desc: "Next window"},
				{Key: "gt/gT", Desc: "Next / previous tab"},
			},
		},
		{
			Title: "General",
			Items: []HintPair{
				{Key: ":help", Desc: "This help"},
				{Key: "/  ?", Desc: "Search forward / backward"},
				{Key: "Ctrl+C", Desc: "Interrupt"},
				{Key: "ZZ", Desc: "Write and quit"},
			},
		},
	}
}

// RenderHelpModal returns the help box (to be composited via OverlayCentered).
func RenderHelpModal(max_w, max_h int) string {
	sections := HelpSections()

	key_style := lipgloss.NewStyle().
		Bold(true).
		Foreground(FocusBorderColor).
		Width(14).
		Align(lipgloss.Right)

	desc_style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	section_title_style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255")).
		MarginTop(1)

	var all_lines []string
	for i, sec := range sections {
		if i == 0 {
			all_lines = append(all_lines, section_title_style.Copy().MarginTop(0).Render(sec.Title))
		} else {
			all_lines = append(all_lines, section_title_style.Render(sec.Title))
		}
		for _, item := range sec.Items {
			line := fmt.Sprintf(" %s  %s",
				key_style.Render(item.Key),
				desc_style.Render(item.Desc),
			)
			all_lines = append(all_lines, line)
		}
	}

	content := strings.Join(all_lines, "\n")

	overlay_w := 46
	if overlay_w > max_w-4 {
		overlay_w = max_w - 4
	}
	overlay_h := len(all_lines) + 2
	if overlay_h > max_h-4 {
		overlay_h = max_h - 4
	}

	box := lipgloss.NewStyle().
		Width(overlay_w).
		Height(overlay_h).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(FocusBorderColor).
		Padding(0, 1)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(FocusBorderColor).
		Render(" Keybindings ")

	styled := box.Render(content)
	return inject_title(styled, title)
}
