package app

import (
	"unicode"

	"github.com/nyxed/edcore/internal/editor"
	"github.com/nyxed/edcore/internal/marks"
	"github.com/nyxed/edcore/internal/registers"
)

// motionResult describes where a motion lands and how an operator
// should treat the span between the original cursor and it.
type motionResult struct {
	cursor    editor.Cursor
	linewise  bool
	inclusive bool
}

// resolveMotion computes the destination of a single-key motion,
// repeated count times. ok is false when key names no motion this
// function understands (the caller then treats it as "not a motion").
func (m *Model) resolveMotion(key string, count int) (motionResult, bool) {
	cur := m.ed.Cursor
	lastLine := m.ed.Buffer.LineCount() - 1

	switch key {
	case "h", "left", "backspace":
		col := cur.Col - count
		if col < 0 {
			col = 0
		}
		return motionResult{cursor: editor.Cursor{Line: cur.Line, Col: col}}, true

	case "l", "right", " ":
		line := m.lineRunes(cur.Line)
		col := cur.Col + count
		if col > len(line) {
			col = len(line)
		}
		return motionResult{cursor: editor.Cursor{Line: cur.Line, Col: col}, inclusive: true}, true

	case "j", "down":
		ln := cur.Line + count
		if ln > lastLine {
			ln = lastLine
		}
		return motionResult{cursor: editor.Cursor{Line: ln, Col: cur.Col}, linewise: true}, true

	case "k", "up":
		ln := cur.Line - count
		if ln < 0 {
			ln = 0
		}
		return motionResult{cursor: editor.Cursor{Line: ln, Col: cur.Col}, linewise: true}, true

	case "0", "home":
		return motionResult{cursor: editor.Cursor{Line: cur.Line, Col: 0}}, true

	case "^":
		line := m.lineRunes(cur.Line)
		col := 0
		for col < len(line) && unicode.IsSpace(line[col]) {
			col++
		}
		return motionResult{cursor: editor.Cursor{Line: cur.Line, Col: col}}, true

	case "$", "end":
		line := m.lineRunes(cur.Line)
		col := len(line)
		if col > 0 {
			col--
		}
		return motionResult{cursor: editor.Cursor{Line: cur.Line, Col: col}, inclusive: true}, true

	case "G":
		ln := lastLine
		if m.pending.hasCount() {
			ln = count - 1
			if ln > lastLine {
				ln = lastLine
			}
			if ln < 0 {
				ln = 0
			}
		}
		return motionResult{cursor: editor.Cursor{Line: ln, Col: 0}, linewise: true}, true

	case "w":
		return motionResult{cursor: m.forwardWord(cur, count)}, true

	case "W":
		return motionResult{cursor: m.forwardWORD(cur, count)}, true

	case "b":
		return motionResult{cursor: m.backwardWord(cur, count)}, true

	case "e":
		return motionResult{cursor: m.endOfWord(cur, count), inclusive: true}, true
	}
	return motionResult{}, false
}

// gMotion resolves a "g"-prefixed motion (gg is the only one that
// moves the cursor; gt/gT are tab switches handled by the caller).
func (m *Model) gMotion(key string, count int, hasCount bool) (motionResult, bool) {
	if key != "g" {
		return motionResult{}, false
	}
	ln := 0
	if hasCount {
		ln = count - 1
	}
	if ln > m.ed.Buffer.LineCount()-1 {
		ln = m.ed.Buffer.LineCount() - 1
	}
	if ln < 0 {
		ln = 0
	}
	return motionResult{cursor: editor.Cursor{Line: ln, Col: 0}, linewise: true}, true
}

func charClass(r rune) int {
	switch {
	case unicode.IsSpace(r):
		return 0
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return 1
	default:
		return 2
	}
}

func (m *Model) forwardWord(cur editor.Cursor, count int) editor.Cursor {
	for ; count > 0; count-- {
		cur = m.forwardWordOnce(cur, charClass)
	}
	return cur
}

func (m *Model) forwardWORD(cur editor.Cursor, count int) editor.Cursor {
	bigClass := func(r rune) int {
		if unicode.IsSpace(r) {
			return 0
		}
		return 1
	}
	for ; count > 0; count-- {
		cur = m.forwardWordOnce(cur, bigClass)
	}
	return cur
}

func (m *Model) forwardWordOnce(cur editor.Cursor, class func(rune) int) editor.Cursor {
	line := m.lineRunes(cur.Line)
	col := cur.Col
	lastLine := m.ed.Buffer.LineCount() - 1

	if col >= len(line) {
		if cur.Line >= lastLine {
			return cur
		}
		cur = editor.Cursor{Line: cur.Line + 1, Col: 0}
		line = m.lineRunes(cur.Line)
		if len(line) == 0 {
			return cur
		}
	} else {
		start := class(line[col])
		for col < len(line) && class(line[col]) == start {
			col++
		}
	}

	for {
		for col < len(line) && class(line[col]) == 0 {
			col++
		}
		if col < len(line) {
			return editor.Cursor{Line: cur.Line, Col: col}
		}
		if cur.Line >= lastLine {
			return editor.Cursor{Line: cur.Line, Col: len(line)}
		}
		cur = editor.Cursor{Line: cur.Line + 1, Col: 0}
		line = m.lineRunes(cur.Line)
		if len(line) == 0 {
			return cur
		}
		col = 0
	}
}

func (m *Model) backwardWord(cur editor.Cursor, count int) editor.Cursor {
	for ; count > 0; count-- {
		cur = m.backwardWordOnce(cur)
	}
	return cur
}

func (m *Model) backwardWordOnce(cur editor.Cursor) editor.Cursor {
	line := m.lineRunes(cur.Line)
	col := cur.Col

	for {
		col--
		for col < 0 {
			if cur.Line == 0 {
				return editor.Cursor{Line: 0, Col: 0}
			}
			cur.Line--
			line = m.lineRunes(cur.Line)
			col = len(line) - 1
		}
		if col < len(line) && charClass(line[col]) != 0 {
			break
		}
	}

	class := charClass(line[col])
	for col > 0 && charClass(line[col-1]) == class {
		col--
	}
	return editor.Cursor{Line: cur.Line, Col: col}
}

func (m *Model) endOfWord(cur editor.Cursor, count int) editor.Cursor {
	for ; count > 0; count-- {
		cur = m.endOfWordOnce(cur)
	}
	return cur
}

func (m *Model) endOfWordOnce(cur editor.Cursor) editor.Cursor {
	line := m.lineRunes(cur.Line)
	col := cur.Col
	lastLine := m.ed.Buffer.LineCount() - 1

	for {
		col++
		for col >= len(line) {
			if cur.Line >= lastLine {
				if len(line) > 0 {
					return editor.Cursor{Line: cur.Line, Col: len(line) - 1}
				}
				return cur
			}
			cur.Line++
			line = m.lineRunes(cur.Line)
			col = 0
		}
		if charClass(line[col]) != 0 && (col+1 >= len(line) || charClass(line[col+1]) != charClass(line[col])) {
			return editor.Cursor{Line: cur.Line, Col: col}
		}
	}
}

// applyOperator deletes (or just yanks, for op == 'y') the span
// between from and to, linewise or charwise, into the pending or
// default register, and leaves the cursor and mode correctly behind
// (op == 'c' drops into Insert at the span's start).
func (m *Model) applyOperator(op rune, from, to editor.Cursor, linewise, inclusive bool) error {
	if to.Line < from.Line || (to.Line == from.Line && to.Col < from.Col) {
		from, to = to, from
	}

	reg := m.pending.register
	if reg == 0 {
		reg = m.ed.Registers.Default()
	}

	if linewise {
		var lines []string
		for i := from.Line; i <= to.Line; i++ {
			line, err := m.ed.Buffer.Line(i)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}
		if err := m.ed.Registers.Set(reg, registers.LineSlot(lines)); err != nil {
			return err
		}
		lastCol := len([]rune(lines[len(lines)-1]))
		if lastCol > 0 {
			lastCol--
		}
		m.setOperatorMarks(editor.Cursor{Line: from.Line, Col: 0}, editor.Cursor{Line: to.Line, Col: lastCol})

		if op != 'y' {
			startIdx := m.ed.Buffer.PositionToCharIdx(from.Line, 0)
			endLine, _ := m.ed.Buffer.Line(to.Line)
			endIdx := m.ed.Buffer.PositionToCharIdx(to.Line, len([]rune(endLine)))
			if to.Line < m.ed.Buffer.LineCount()-1 {
				endIdx++ // also consume the trailing newline
			} else if from.Line > 0 {
				startIdx-- // no line after: eat the newline before instead
			}
			if err := m.ed.Buffer.Delete(startIdx, endIdx); err != nil {
				return err
			}
			m.ed.Cursor = editor.Cursor{Line: from.Line, Col: 0}
		}
		m.clampCursor()
		if op == 'c' {
			idx := m.ed.Buffer.PositionToCharIdx(m.ed.Cursor.Line, 0)
			m.ed.Buffer.Insert(idx, "\n")
			m.enterInsert()
		}
		return nil
	}

	endCol := to.Col
	if inclusive {
		endCol++
	}
	text := m.textBetween(from, editor.Cursor{Line: to.Line, Col: endCol})
	if err := m.ed.Registers.Set(reg, registers.Char(text)); err != nil {
		return err
	}
	lastCol := endCol
	if lastCol > 0 {
		lastCol--
	}
	m.setOperatorMarks(from, editor.Cursor{Line: to.Line, Col: lastCol})

	if op != 'y' {
		startIdx := m.ed.Buffer.PositionToCharIdx(from.Line, from.Col)
		endIdx := m.ed.Buffer.PositionToCharIdx(to.Line, endCol)
		if err := m.ed.Buffer.Delete(startIdx, endIdx); err != nil {
			return err
		}
		m.ed.Cursor = from
	}
	m.clampCursor()
	if op == 'c' {
		m.enterInsert()
	}
	return nil
}

// setOperatorMarks records the span an operator (or put) just acted on
// to the `[`/`]` marks, per spec.md §3's "derived from editor actions"
// special marks.
func (m *Model) setOperatorMarks(from, to editor.Cursor) {
	m.ed.Marks.Set('[', marks.Position{BufferID: m.ed.BufferID, Line: from.Line, Col: from.Col})
	m.ed.Marks.Set(']', marks.Position{BufferID: m.ed.BufferID, Line: to.Line, Col: to.Col})
}

// textBetween extracts the charwise text between two positions using
// the buffer's own char-index addressing, so it stays correct across
// multi-line spans.
func (m *Model) textBetween(from, to editor.Cursor) string {
	startIdx := m.ed.Buffer.PositionToCharIdx(from.Line, from.Col)
	endIdx := m.ed.Buffer.PositionToCharIdx(to.Line, to.Col)
	runes := []rune(m.ed.Buffer.Content())
	if startIdx < 0 {
		startIdx = 0
	}
	if endIdx > len(runes) {
		endIdx = len(runes)
	}
	if startIdx > endIdx {
		return ""
	}
	return string(runes[startIdx:endIdx])
}

// putRegister implements p/P: insert the named register's content
// after (p) or before (P) the cursor, linewise or charwise depending
// on the slot's own kind.
func (m *Model) putRegister(name rune, after bool) error {
	slot, ok := m.ed.Registers.Get(name)
	if !ok || slot.IsEmpty() {
		return nil
	}

	switch slot.Kind {
	case registers.LineWise, registers.BlockWise:
		line := m.ed.Cursor.Line
		if after {
			line++
		}
		text := ""
		for _, l := range slot.Lines {
			text += l + "\n"
		}
		if line >= m.ed.Buffer.LineCount() {
			idx := len([]rune(m.ed.Buffer.Content()))
			if err := m.ed.Buffer.Insert(idx, "\n"+text[:len(text)-1]); err != nil {
				return err
			}
		} else {
			idx := m.ed.Buffer.PositionToCharIdx(line, 0)
			if err := m.ed.Buffer.Insert(idx, text); err != nil {
				return err
			}
		}
		m.ed.Cursor = editor.Cursor{Line: line, Col: 0}
		lastCol := len([]rune(slot.Lines[len(slot.Lines)-1]))
		if lastCol > 0 {
			lastCol--
		}
		m.setOperatorMarks(editor.Cursor{Line: line, Col: 0}, editor.Cursor{Line: line + len(slot.Lines) - 1, Col: lastCol})
	default:
		col := m.ed.Cursor.Col
		if after && len(m.lineRunes(m.ed.Cursor.Line)) > 0 {
			col++
		}
		idx := m.ed.Buffer.PositionToCharIdx(m.ed.Cursor.Line, col)
		if err := m.ed.Buffer.Insert(idx, slot.Text); err != nil {
			return err
		}
		end := col + len([]rune(slot.Text))
		lastCol := end
		if lastCol > col {
			lastCol--
		}
		m.setOperatorMarks(editor.Cursor{Line: m.ed.Cursor.Line, Col: col}, editor.Cursor{Line: m.ed.Cursor.Line, Col: lastCol})
		if end > 0 {
			end--
		}
		m.ed.Cursor.Col = end
	}
	m.clampCursor()
	return nil
}
