package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyxed/edcore/internal/registers"
)

func registerLineSlot(lines []string) registers.Slot {
	return registers.LineSlot(lines)
}

func runeKeyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
