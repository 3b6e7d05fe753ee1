// Package search implements the Search State component of spec.md §4.C:
// the active pattern, direction, case-sensitivity resolution, the last
// match list, and a bounded search-pattern history.
//
// Grounded on original_source's search handling (case override escapes
// \c/\C inside the pattern take precedence over the global 'ignorecase'
// setting, matching Vim itself) and on spec.md §3's SearchState fields.
package search

import "github.com/nyxed/edcore/internal/capability"

// Direction is the search direction, `/` forward or `?` backward.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// DefaultHistoryCapacity bounds how many prior patterns are retained.
const DefaultHistoryCapacity = 50

// State is the SearchState of spec.md §3: the live pattern plus
// navigable match results, and a separate pattern history.
type State struct {
	pattern       string
	direction     Direction
	caseSensitive bool // the global 'ignorecase'-equivalent flag
	results       []capability.Match
	resultIdx     int
	history       []string
	historyIdx    int
}

func New() *State {
	return &State{historyIdx: -1}
}

// Pattern returns the active search pattern. Implements
// registers.SearchPatternSource so the "/" register can mirror it.
func (s *State) Pattern() string { return s.pattern }

// SetPattern updates the active pattern and appends it to history
// (deduplicating an immediate repeat), resetting the history cursor to
// "not browsing". Implements registers.SearchPatternSource.
func (s *State) SetPattern(pattern string) {
	s.pattern = pattern
	if pattern == "" {
		return
	}
	if len(s.history) == 0 || s.history[len(s.history)-1] != pattern {
		s.history = append(s.history, pattern)
		if len(s.history) > DefaultHistoryCapacity {
			s.history = s.history[len(s.history)-DefaultHistoryCapacity:]
		}
	}
	s.historyIdx = -1
}

func (s *State) Direction() Direction { return s.direction }
func (s *State) SetDirection(d Direction) { s.direction = d }

func (s *State) CaseSensitive() bool     { return s.caseSensitive }
func (s *State) SetCaseSensitive(v bool) { s.caseSensitive = v }

// EffectiveCaseSensitive resolves the precedence of spec.md §4.C: an
// inline \C forces case-sensitive, an inline \c forces case-insensitive,
// and otherwise the global flag applies.
func EffectiveCaseSensitive(pattern string, globalCaseSensitive bool) bool {
	if containsEscape(pattern, 'C') {
		return true
	}
	if containsEscape(pattern, 'c') {
		return false
	}
	return globalCaseSensitive
}

func containsEscape(pattern string, marker byte) bool {
	for i := 0; i+1 < len(pattern); i++ {
		if pattern[i] == '\\' && pattern[i+1] == marker {
			return true
		}
	}
	return false
}

// SetResults replaces the current match list, positioning the cursor
// at the first match strictly after fromLine/fromCol (strictly before
// it when the direction is Backward),
// wrapping to the opposite end if nothing qualifies.
func (s *State) SetResults(matches []capability.Match, fromLine, fromCol int) {
	s.results = matches
	if len(matches) == 0 {
		s.resultIdx = 0
		return
	}
	if s.direction == Backward {
		for i := len(matches) - 1; i >= 0; i-- {
			if before(matches[i], fromLine, fromCol) {
				s.resultIdx = i
				return
			}
		}
		s.resultIdx = len(matches) - 1
		return
	}
	for i, m := range matches {
		if after(m, fromLine, fromCol) {
			s.resultIdx = i
			return
		}
	}
	s.resultIdx = 0
}

func before(m capability.Match, line, col int) bool {
	return m.Line < line || (m.Line == line && m.Col < col)
}

func after(m capability.Match, line, col int) bool {
	return m.Line > line || (m.Line == line && m.Col > col)
}

// Results returns the current match list.
func (s *State) Results() []capability.Match { return s.results }

// Current returns the match the cursor is on. ok is false when there
// are no results.
func (s *State) Current() (capability.Match, bool) {
	if len(s.results) == 0 {
		return capability.Match{}, false
	}
	return s.results[s.resultIdx], true
}

// Next advances to the next match in buffer order, wrapping around,
// whatever the search direction.
func (s *State) Next() (capability.Match, bool) {
	if len(s.results) == 0 {
		return capability.Match{}, false
	}
	s.resultIdx = (s.resultIdx + 1) % len(s.results)
	return s.results[s.resultIdx], true
}

// Prev moves to the previous match in buffer order, wrapping around,
// whatever the search direction.
func (s *State) Prev() (capability.Match, bool) {
	if len(s.results) == 0 {
		return capability.Match{}, false
	}
	s.resultIdx = (s.resultIdx - 1 + len(s.results)) % len(s.results)
	return s.results[s.resultIdx], true
}

// HistoryOlder returns the next-older pattern for command-line history
// recall (Ctrl-P / Up on the search prompt). ok is false at the oldest
// entry or when history is empty.
func (s *State) HistoryOlder() (string, bool) {
	if len(s.history) == 0 {
		return "", false
	}
	if s.historyIdx == -1 {
		s.historyIdx = len(s.history) - 1
	} else if s.historyIdx > 0 {
		s.historyIdx--
	} else {
		return "", false
	}
	return s.history[s.historyIdx], true
}

// HistoryNewer returns the next-newer pattern. ok is false once past
// the newest entry.
func (s *State) HistoryNewer() (string, bool) {
	if s.historyIdx == -1 || s.historyIdx >= len(s.history)-1 {
		s.historyIdx = -1
		return "", false
	}
	s.historyIdx++
	return s.history[s.historyIdx], true
}

// History returns a copy of the full pattern history, oldest first.
func (s *State) History() []string {
	return append([]string(nil), s.history...)
}
