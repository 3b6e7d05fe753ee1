package editor

import "github.com/nyxed/edcore/internal/search"

// CurrentLine and friends implement excmd.LineResolver so Editor can
// resolve a parsed Range against its own live state.

func (e *Editor) CurrentLine() int { return e.Cursor.Line + 1 } // 1-based for ex addressing

func (e *Editor) LastLine() int { return e.Buffer.LineCount() }

func (e *Editor) MarkLine(name rune) (int, error) {
	pos, err := e.Marks.Get(name)
	if err != nil {
		return 0, err
	}
	return pos.Line + 1, nil
}

func (e *Editor) SearchLine(pattern string, fromLine int) (int, error) {
	caseSensitive := search.EffectiveCaseSensitive(pattern, e.GlobalCaseSensitive())
	matches, err := e.Buffer.Search(pattern, caseSensitive)
	if err != nil {
		return 0, err
	}
	for _, m := range matches {
		if m.Line+1 > fromLine {
			return m.Line + 1, nil
		}
	}
	if len(matches) > 0 {
		return matches[0].Line + 1, nil
	}
	return fromLine, nil
}
