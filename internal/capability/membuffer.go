package capability

import (
	"fmt"
	"strings"
)

// MemBuffer is a minimal in-memory Buffer used by the editor's own tests
// and by the demo shell in cmd/edcore. It is not the rope/gap-buffer
// storage layer the real editor would use in production — spec.md §1
// explicitly keeps that out of the core's scope, so a slice of lines is
// enough to exercise every Buffer-consuming operation.
type MemBuffer struct {
	lines     []string
	path      string
	name      string
	filetype  string
	is_help   bool
	is_term   bool
	undo_log  []string
	redo_log  []string
}

// NewMemBuffer creates a buffer from initial text, splitting on '\n'.
func NewMemBuffer(content string) *MemBuffer {
	b := &MemBuffer{}
	b.SetContent(content)
	return b
}

func (b *MemBuffer) LineCount() int {
	if len(b.lines) == 0 {
		return 1
	}
	return len(b.lines)
}

func (b *MemBuffer) Line(i int) (string, error) {
	if i < 0 || i >= b.LineCount() {
		return "", fmt.Errorf("line %d out of range [0,%d)", i, b.LineCount())
	}
	if len(b.lines) == 0 {
		return "", nil
	}
	return b.lines[i], nil
}

func (b *MemBuffer) Content() string {
	return strings.Join(b.lines, "\n")
}

func (b *MemBuffer) PositionToCharIdx(line, col int) int {
	idx := 0
	for i := 0; i < line && i < len(b.lines); i++ {
		idx += len(b.lines[i]) + 1 // +1 for the newline
	}
	return idx + col
}

func (b *MemBuffer) snapshot() string { return b.Content() }

func (b *MemBuffer) pushUndo() {
	b.undo_log = append(b.undo_log, b.snapshot())
	b.redo_log = nil
}

func (b *MemBuffer) Insert(charIdx int, text string) error {
	content := b.Content()
	if charIdx < 0 || charIdx > len(content) {
		return fmt.Errorf("insert index %d out of range [0,%d]", charIdx, len(content))
	}
	b.pushUndo()
	next := content[:charIdx] + text + content[charIdx:]
	b.lines = strings.Split(next, "\n")
	return nil
}

func (b *MemBuffer) Delete(startIdx, endIdx int) error {
	content := b.Content()
	if startIdx < 0 || endIdx > len(content) || startIdx > endIdx {
		return fmt.Errorf("delete range [%d,%d) out of range [0,%d]", startIdx, endIdx, len(content))
	}
	b.pushUndo()
	next := content[:startIdx] + content[endIdx:]
	b.lines = strings.Split(next, "\n")
	return nil
}

func (b *MemBuffer) SetContent(text string) {
	b.pushUndoIfInitialized()
	if text == "" {
		b.lines = []string{""}
		return
	}
	b.lines = strings.Split(text, "\n")
}

func (b *MemBuffer) pushUndoIfInitialized() {
	if b.lines != nil {
		b.pushUndo()
	}
}

func (b *MemBuffer) Search(pattern string, caseSensitive bool) ([]Match, error) {
	var matches []Match
	needle := pattern
	for i, line := range b.lines {
		haystack := line
		cmp := needle
		if !caseSensitive {
			haystack = strings.ToLower(line)
			cmp = strings.ToLower(needle)
		}
		start := 0
		for {
			at := strings.Index(haystack[start:], cmp)
			if at < 0 {
				break
			}
			col := start + at
			matches = append(matches, Match{Line: i, Col: col, Text: line[col : col+len(needle)]})
			start = col + len(cmp)
			if len(cmp) == 0 {
				break
			}
		}
	}
	return matches, nil
}

func (b *MemBuffer) Undo() bool {
	if len(b.undo_log) == 0 {
		return false
	}
	n := len(b.undo_log) - 1
	prev := b.undo_log[n]
	b.undo_log = b.undo_log[:n]
	b.redo_log = append(b.redo_log, b.snapshot())
	b.lines = strings.Split(prev, "\n")
	return true
}

func (b *MemBuffer) Redo() bool {
	if len(b.redo_log) == 0 {
		return false
	}
	n := len(b.redo_log) - 1
	next := b.redo_log[n]
	b.redo_log = b.redo_log[:n]
	b.undo_log = append(b.undo_log, b.snapshot())
	b.lines = strings.Split(next, "\n")
	return true
}

func (b *MemBuffer) GetPath() string    { return b.path }
func (b *MemBuffer) GetName() string    { return b.name }
func (b *MemBuffer) SetName(name string) { b.name = name }
func (b *MemBuffer) IsHelp() bool       { return b.is_help }
func (b *MemBuffer) IsTerminal() bool   { return b.is_term }
func (b *MemBuffer) IsBlank() bool      { return b.path == "" && b.Content() == "" }
func (b *MemBuffer) Filetype() string   { return b.filetype }

// SetPath and SetFiletype are test/demo conveniences; the capability
// interface only requires reading them back.
func (b *MemBuffer) SetPath(p string)         { b.path = p }
func (b *MemBuffer) SetFiletype(ft string)    { b.filetype = ft }
func (b *MemBuffer) SetIsHelp(v bool)         { b.is_help = v }
func (b *MemBuffer) SetIsTerminal(v bool)     { b.is_term = v }

var _ Buffer = (*MemBuffer)(nil)
