package layout

import "github.com/nyxed/edcore/internal/capability"

// FocusDir is a screen-relative direction for directional window
// focus movement (`Ctrl-W h/j/k/l`), distinct from the split axis
// (capability.Direction) since a Split only has two axes but focus
// movement has four directions.
type FocusDir int

const (
	FocusLeft FocusDir = iota
	FocusDown
	FocusUp
	FocusRight
)

// MoveFocus switches focus to the nearest window in dir from the
// current window's rect. When more than one window qualifies equally,
// the tie is broken by most-recent focus history, per the original's
// window navigation rule. Returns false if no window lies in dir.
func (m *Manager) MoveFocus(dir FocusDir) bool {
	tab := m.CurrentTab()
	rects := m.Rects()
	cur, ok := rects[tab.Current.WindowID]
	if !ok {
		return false
	}

	var candidates []capability.WindowID
	best := -1
	for id, r := range rects {
		if id == tab.Current.WindowID {
			continue
		}
		if !inDirection(cur, r, dir) {
			continue
		}
		d := distance(cur, r, dir)
		switch {
		case best == -1 || d < best:
			best = d
			candidates = []capability.WindowID{id}
		case d == best:
			candidates = append(candidates, id)
		}
	}

	if len(candidates) == 0 {
		return false
	}
	chosen := breakTie(candidates, tab.focusHistory)
	return m.FocusWindow(chosen)
}

func inDirection(from, to Rect, dir FocusDir) bool {
	switch dir {
	case FocusLeft:
		return to.X+to.W <= from.X
	case FocusRight:
		return to.X >= from.X+from.W
	case FocusUp:
		return to.Y+to.H <= from.Y
	case FocusDown:
		return to.Y >= from.Y+from.H
	}
	return false
}

func distance(from, to Rect, dir FocusDir) int {
	switch dir {
	case FocusLeft:
		return from.X - (to.X + to.W)
	case FocusRight:
		return to.X - (from.X + from.W)
	case FocusUp:
		return from.Y - (to.Y + to.H)
	case FocusDown:
		return to.Y - (from.Y + from.H)
	}
	return 0
}

// breakTie picks the candidate most recently focused; if none of the
// candidates appear in history, the first candidate wins (stable,
// arbitrary but deterministic).
func breakTie(candidates []capability.WindowID, history []capability.WindowID) capability.WindowID {
	for _, id := range history {
		for _, c := range candidates {
			if c == id {
				return c
			}
		}
	}
	return candidates[0]
}
