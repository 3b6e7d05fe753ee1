package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyxed/edcore/internal/capability"
	"github.com/nyxed/edcore/internal/editor"
	"github.com/nyxed/edcore/internal/layout"
	"github.com/nyxed/edcore/internal/marks"
)

func clampLine(line, max int) int {
	if line > max {
		return max
	}
	if line < 0 {
		return 0
	}
	return line
}

// handleNormalModeKey is Normal mode's key table: count/register/
// operator/lead-in accumulation first, then single-key commands, then
// motions (falling back to resolveMotion, applying the pending
// operator over the result when one is waiting).
func (m *Model) handleNormalModeKey(ev tea.KeyMsg) error {
	if m.pending.lead != "" {
		return m.continueLead(ev)
	}

	s := ev.String()

	// count accumulation: leading digits 1-9, or 0 once a count has
	// started (bare 0 alone is the "start of line" motion).
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' && !(s == "0" && m.pending.count == "") {
		m.pending.count += s
		return nil
	}

	switch s {
	case "\"":
		m.pending.lead = "\""
		return nil
	case "g":
		m.pending.lead = "g"
		return nil
	case "Z":
		m.pending.lead = "Z"
		return nil
	case "ctrl+w":
		m.pending.lead = "ctrl+w"
		return nil
	case "f", "F", "t", "T":
		m.pending.lead = s
		return nil
	case "m":
		m.pending.lead = "m"
		return nil
	case "'", "`":
		m.pending.lead = s
		return nil
	case "q":
		if m.ed.Macros.IsRecording() {
			err := m.ed.Macros.Stop()
			m.pending.reset()
			return err
		}
		m.pending.lead = "q"
		return nil
	case "@":
		m.pending.lead = "@"
		return nil
	case ";":
		return m.repeatFind(false)
	case ",":
		return m.repeatFind(true)
	}

	// operator prefix or doubled-operator linewise shortcut (dd/yy/cc)
	if (s == "d" || s == "y" || s == "c") && len(s) == 1 {
		r := rune(s[0])
		if m.pending.operator == r {
			count := m.pending.countOr(1)
			from := m.ed.Cursor
			to := editor.Cursor{Line: clampLine(m.ed.Cursor.Line+count-1, m.ed.Buffer.LineCount()-1), Col: 0}
			err := m.applyOperator(r, from, to, true, false)
			m.pending.reset()
			return err
		}
		if m.pending.operator != 0 {
			m.pending.reset()
		}
		m.pending.operator = r
		return nil
	}

	switch s {
	case "esc":
		m.pending.reset()
		return nil
	case "x":
		return m.deleteCharUnder(false)
	case "X":
		return m.deleteCharUnder(true)
	case "D":
		return m.operatorToEndOfLine('d')
	case "C":
		return m.operatorToEndOfLine('c')
	case "Y":
		count := m.pending.countOr(1)
		to := editor.Cursor{Line: clampLine(m.ed.Cursor.Line+count-1, m.ed.Buffer.LineCount()-1), Col: 0}
		err := m.applyOperator('y', m.ed.Cursor, to, true, false)
		m.pending.reset()
		return err
	case "p":
		reg := m.registerOrDefault()
		err := m.putRegister(reg, true)
		m.pending.reset()
		return err
	case "P":
		reg := m.registerOrDefault()
		err := m.putRegister(reg, false)
		m.pending.reset()
		return err
	case "u":
		m.ed.Buffer.Undo()
		m.clampCursor()
		m.pending.reset()
		return nil
	case "ctrl+r":
		m.ed.Buffer.Redo()
		m.clampCursor()
		m.pending.reset()
		return nil
	case "i":
		m.enterInsert()
		return nil
	case "I":
		m.ed.Cursor.Col = 0
		m.enterInsert()
		return nil
	case "a":
		if len(m.lineRunes(m.ed.Cursor.Line)) > 0 {
			m.ed.Cursor.Col++
		}
		m.enterInsert()
		return nil
	case "A":
		m.ed.Cursor.Col = len(m.lineRunes(m.ed.Cursor.Line))
		m.enterInsert()
		return nil
	case "o":
		idx := m.ed.Buffer.PositionToCharIdx(m.ed.Cursor.Line, len(m.lineRunes(m.ed.Cursor.Line)))
		m.ed.Buffer.Insert(idx, "\n")
		m.ed.Cursor = editor.Cursor{Line: clampLine(m.ed.Cursor.Line+1, m.ed.Buffer.LineCount()-1), Col: 0}
		m.enterInsert()
		return nil
	case "O":
		idx := m.ed.Buffer.PositionToCharIdx(m.ed.Cursor.Line, 0)
		m.ed.Buffer.Insert(idx, "\n")
		m.ed.Cursor = editor.Cursor{Line: clampLine(m.ed.Cursor.Line, m.ed.Buffer.LineCount()-1), Col: 0}
		m.enterInsert()
		return nil
	case "v":
		m.enterVisual(false)
		return nil
	case "V":
		m.enterVisual(true)
		return nil
	case ":":
		m.mode = ModeCmdline
		m.cmdline.Open(':')
		m.pending.reset()
		return nil
	case "/":
		m.mode = ModeCmdline
		m.cmdline.Open('/')
		m.pending.reset()
		return nil
	case "?":
		m.mode = ModeCmdline
		m.cmdline.Open('?')
		m.pending.reset()
		return nil
	case "n":
		m.searchStep(true)
		m.pending.reset()
		return nil
	case "N":
		m.searchStep(false)
		m.pending.reset()
		return nil
	case "ctrl+o":
		m.ed.JumpBack()
		m.clampCursor()
		m.pending.reset()
		return nil
	case "ctrl+i":
		m.ed.JumpForward()
		m.clampCursor()
		m.pending.reset()
		return nil
	}

	count := m.pending.countOr(1)
	if mr, ok := m.resolveMotion(s, count); ok {
		return m.finishMotion(mr)
	}

	// Unrecognized key: drop whatever was pending rather than leaving
	// a stale operator/count lying around for the next keystroke.
	m.pending.reset()
	return nil
}

// finishMotion either applies the pending operator over [cursor, mr]
// or, with no operator pending, simply moves the cursor there.
func (m *Model) finishMotion(mr motionResult) error {
	if m.pending.operator != 0 {
		from := m.ed.Cursor
		err := m.applyOperator(m.pending.operator, from, mr.cursor, mr.linewise, mr.inclusive)
		m.pending.reset()
		return err
	}
	m.ed.Cursor = mr.cursor
	m.clampCursor()
	m.pending.reset()
	return nil
}

// continueLead resolves the second key of a two-key (or more) normal
// mode command once a lead-in has been recorded.
func (m *Model) continueLead(ev tea.KeyMsg) error {
	lead := m.pending.lead
	s := ev.String()
	m.pending.lead = ""

	switch lead {
	case "\"":
		if r := soleRune(s); r != 0 {
			m.pending.register = r
		}
		return nil

	case "g":
		switch s {
		case "g":
			count := m.pending.countOr(1)
			mr, _ := m.gMotion("g", count, m.pending.hasCount())
			return m.finishMotion(mr)
		case "t":
			m.ed.Layout.NextTab()
			m.pending.reset()
			return nil
		case "T":
			m.ed.Layout.PrevTab()
			m.pending.reset()
			return nil
		}
		m.pending.reset()
		return nil

	case "Z":
		switch s {
		case "Z":
			err := m.ed.ExecuteLine("x")
			m.pending.reset()
			return m.quitIfLast(err)
		case "Q":
			err := m.ed.ExecuteLine("q")
			m.pending.reset()
			return m.quitIfLast(err)
		}
		m.pending.reset()
		return nil

	case "ctrl+w":
		switch s {
		case "s":
			m.ed.Layout.Split(capability.Horizontal, m.ed.BufferID)
		case "v":
			m.ed.Layout.Split(capability.Vertical, m.ed.BufferID)
		case "c":
			return m.quitIfLast(m.ed.Layout.Close())
		case "o":
			m.ed.ExecuteLine("only")
		case "w", "ctrl+w":
			m.ed.Layout.NextWindow()
		case "W", "p":
			m.ed.Layout.PrevWindow()
		case "j", "l":
			m.ed.Layout.NextWindow()
		case "k", "h":
			m.ed.Layout.PrevWindow()
		}
		m.pending.reset()
		return nil

	case "f", "F", "t", "T":
		if r := soleRune(s); r != 0 {
			m.lastFindKey, m.lastFind = lead, r
			count := m.pending.countOr(1)
			if mr, ok := m.findChar(lead, r, count); ok {
				return m.finishMotion(mr)
			}
		}
		m.pending.reset()
		return nil

	case "m":
		if r := soleRune(s); r != 0 {
			m.ed.Marks.Set(r, marks.Position{BufferID: m.ed.BufferID, Line: m.ed.Cursor.Line, Col: m.ed.Cursor.Col})
		}
		m.pending.reset()
		return nil

	case "'", "`":
		if r := soleRune(s); r != 0 {
			if pos, err := m.ed.Marks.Get(r); err == nil {
				m.ed.PushJump()
				m.ed.Cursor.Line = pos.Line
				if lead == "`" {
					m.ed.Cursor.Col = pos.Col
				} else {
					m.ed.Cursor.Col = 0
				}
				m.clampCursor()
			}
		}
		m.pending.reset()
		return nil

	case "q":
		if r := soleRune(s); r != 0 {
			m.ed.Macros.Start(r)
		}
		m.pending.reset()
		return nil

	case "@":
		if r := soleRune(s); r != 0 {
			count := m.pending.countOr(1)
			err := m.ed.Macros.Play(r, count, m.ed.Dispatch)
			m.pending.reset()
			return err
		}
		m.pending.reset()
		return nil
	}

	m.pending.reset()
	return nil
}

// soleRune returns the single rune a key-string names (bubbletea's
// KeyMsg.String() for a printable key is exactly that rune), or 0 for
// multi-rune names like "enter" or "ctrl+c" that cannot name a
// register/mark/find target.
func soleRune(s string) rune {
	r := []rune(s)
	if len(r) != 1 {
		return 0
	}
	return r[0]
}

func (m *Model) registerOrDefault() rune {
	if m.pending.register != 0 {
		return m.pending.register
	}
	return m.ed.Registers.Default()
}

func (m *Model) deleteCharUnder(before bool) error {
	count := m.pending.countOr(1)
	line := m.lineRunes(m.ed.Cursor.Line)
	if len(line) == 0 {
		m.pending.reset()
		return nil
	}
	var from, to editor.Cursor
	if before {
		start := m.ed.Cursor.Col - count
		if start < 0 {
			start = 0
		}
		from, to = editor.Cursor{Line: m.ed.Cursor.Line, Col: start}, editor.Cursor{Line: m.ed.Cursor.Line, Col: m.ed.Cursor.Col - 1}
	} else {
		end := m.ed.Cursor.Col + count - 1
		if end > len(line)-1 {
			end = len(line) - 1
		}
		from, to = m.ed.Cursor, editor.Cursor{Line: m.ed.Cursor.Line, Col: end}
	}
	err := m.applyOperator('d', from, to, false, true)
	m.pending.reset()
	return err
}

func (m *Model) operatorToEndOfLine(op rune) error {
	line := m.lineRunes(m.ed.Cursor.Line)
	end := len(line) - 1
	if end < m.ed.Cursor.Col {
		end = m.ed.Cursor.Col
	}
	err := m.applyOperator(op, m.ed.Cursor, editor.Cursor{Line: m.ed.Cursor.Line, Col: end}, false, true)
	m.pending.reset()
	return err
}

func (m *Model) repeatFind(reverse bool) error {
	if m.lastFindKey == "" {
		return nil
	}
	key := m.lastFindKey
	if reverse {
		key = map[string]string{"f": "F", "F": "f", "t": "T", "T": "t"}[key]
	}
	count := m.pending.countOr(1)
	mr, ok := m.findChar(key, m.lastFind, count)
	m.pending.reset()
	if !ok {
		return nil
	}
	return m.finishMotion(mr)
}

// quitIfLast turns the layout manager's "refusing to close the last
// window in the last tab" error into a program-exit signal: with a
// single bubbletea process as the only host, there is nothing left to
// show once every window is gone.
func (m *Model) quitIfLast(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, layout.ErrLastWindow) {
		m.quitting = true
		return nil
	}
	return err
}

func (m *Model) searchStep(forward bool) {
	fwd := forward
	if m.ed.Search.Direction() != 0 { // search.Backward
		fwd = !fwd
	}
	m.ed.PushJump()
	var mt capability.Match
	var ok bool
	if fwd {
		mt, ok = m.ed.Search.Next()
	} else {
		mt, ok = m.ed.Search.Prev()
	}
	if ok {
		m.ed.Cursor.Line, m.ed.Cursor.Col = mt.Line, mt.Col
		m.clampCursor()
	}
}

func scanForward(line []rune, from int, target rune, till bool) (int, bool) {
	for i := from + 1; i < len(line); i++ {
		if line[i] == target {
			if till {
				if i-1 <= from {
					continue
				}
				return i - 1, true
			}
			return i, true
		}
	}
	return 0, false
}

func scanBackward(line []rune, from int, target rune, till bool) (int, bool) {
	for i := from - 1; i >= 0; i-- {
		if line[i] == target {
			if till {
				if i+1 >= from {
					continue
				}
				return i + 1, true
			}
			return i, true
		}
	}
	return 0, false
}

func (m *Model) findChar(key string, target rune, count int) (motionResult, bool) {
	line := m.lineRunes(m.ed.Cursor.Line)
	col := m.ed.Cursor.Col
	ok := true
	for ; count > 0 && ok; count-- {
		switch key {
		case "f":
			col, ok = scanForward(line, col, target, false)
		case "t":
			col, ok = scanForward(line, col, target, true)
		case "F":
			col, ok = scanBackward(line, col, target, false)
		case "T":
			col, ok = scanBackward(line, col, target, true)
		}
	}
	if !ok {
		return motionResult{}, false
	}
	return motionResult{cursor: editor.Cursor{Line: m.ed.Cursor.Line, Col: col}, inclusive: key == "f" || key == "t"}, true
}
