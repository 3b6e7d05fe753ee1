package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// inject_title replaces part of the top border with a title string.
// It uses lipgloss.Width for visual width calculations and operates
// on raw bytes to avoid corrupting ANSI escape sequences.
func inject_title(rendered, title string) string {
	lines := strings.Split(rendered, "\n")
	if len(lines) == 0 {
		return rendered
	}

	top := lines[0]
	title_w := lipgloss.Width(title)
	top_w := lipgloss.Width(top)

	if title_w+4 > top_w {
		return rendered
	}

	// Skip the first visual character (border corner) plus one border segment,
	// then splice in the title string. We find the byte position of the 2nd
	// visible character by scanning through ANSI sequences.
	insert_byte := visual_offset_to_byte(top, 2)
	end_byte := visual_offset_to_byte(top, 2+title_w)

	if insert_byte < 0 || end_byte < 0 || end_byte > len(top) {
		return rendered
	}

	// Extract the ANSI color sequence from the start of the border line
	// so we can re-apply it after the title (which ends with a reset).
	border_color := extract_ansi_prefix(top)

	lines[0] = top[:insert_byte] + title + border_color + top[end_byte:]
	return strings.Join(lines, "\n")
}

// extract_ansi_prefix returns the leading ANSI escape sequence(s) from a string.
func extract_ansi_prefix(s string) string {
	var result string
	i := 0
	for i < len(s) {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			// Find end of escape sequence
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			if j < len(s) {
				result += s[i : j+1]
				i = j + 1
				continue
			}
		}
		break // stop at first non-ANSI character
	}
	return result
}

// visual_offset_to_byte finds the byte index corresponding to a visual column offset,
// skipping over ANSI escape sequences that don't consume visual width.
func visual_offset_to_byte(s string, target_col int) int {
	col := 0
	i := 0
	for i < len(s) && col < target_col {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			// Skip CSI sequence: ESC [ ... final_byte
			j := i + 2
			for j < len(s) && s[j] >= 0x20 && s[j] <= 0x3F {
				j++
			}
			if j < len(s) {
				j++ // skip final byte
			}
			i = j
			continue
		}
		// Decode one UTF-8 rune and advance
		_, size := decodeRune(s[i:])
		i += size
		col++
	}
	if col == target_col {
		return i
	}
	return -1
}

func decodeRune(s string) (rune, int) {
	return utf8.DecodeRuneInString(s)
}
