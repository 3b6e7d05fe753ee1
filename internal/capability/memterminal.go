package capability

import (
	"fmt"
)

// MemTerminal is an in-memory Terminal capability used by tests and the
// demo shell. It hands out sequential WindowIDs and tracks just enough
// state (current window, per-window view offsets, fixed flags) for the
// layout manager's unit tests to assert against.
type MemTerminal struct {
	next_id  int
	current  WindowID
	windows  map[WindowID]*memWindow
	tabs     int
}

type memWindow struct {
	top_line, left_col int
	width_fixed         bool
	height_fixed         bool
	w, h                 int
}

func NewMemTerminal() *MemTerminal {
	t := &MemTerminal{windows: make(map[WindowID]*memWindow)}
	t.next_id++
	id := WindowID(fmt.Sprintf("w%d", t.next_id))
	t.windows[id] = &memWindow{}
	t.current = id
	t.tabs = 1
	return t
}

func (t *MemTerminal) newID() WindowID {
	t.next_id++
	return WindowID(fmt.Sprintf("w%d", t.next_id))
}

func (t *MemTerminal) CurrentWindowID() WindowID { return t.current }

func (t *MemTerminal) FocusWindow(id WindowID) error {
	if _, ok := t.windows[id]; !ok {
		return fmt.Errorf("no such window %q", id)
	}
	t.current = id
	return nil
}

func (t *MemTerminal) SplitWindow(dir Direction, bufID string) (WindowID, error) {
	id := t.newID()
	t.windows[id] = &memWindow{}
	t.current = id
	return id, nil
}

func (t *MemTerminal) CloseWindow(id WindowID) error {
	if _, ok := t.windows[id]; !ok {
		return fmt.Errorf("no such window %q", id)
	}
	delete(t.windows, id)
	if t.current == id {
		for other := range t.windows {
			t.current = other
			break
		}
	}
	return nil
}

func (t *MemTerminal) CloseCurrentWindow() (bool, error) {
	if len(t.windows) <= 1 {
		return false, nil
	}
	return true, t.CloseWindow(t.current)
}

func (t *MemTerminal) CreateTab(bufID string, name string) (WindowID, error) {
	id := t.newID()
	t.windows[id] = &memWindow{}
	t.current = id
	t.tabs++
	return id, nil
}

func (t *MemTerminal) CloseCurrentTab() (bool, error) {
	if t.tabs <= 1 {
		return false, nil
	}
	t.tabs--
	return true, nil
}

func (t *MemTerminal) NextWindow() error { return nil }
func (t *MemTerminal) PrevWindow() error { return nil }
func (t *MemTerminal) NextTab() error    { return nil }
func (t *MemTerminal) PrevTab() error    { return nil }

func (t *MemTerminal) SetWindowWidthFixed(id WindowID, fixed bool) error {
	w, ok := t.windows[id]
	if !ok {
		return fmt.Errorf("no such window %q", id)
	}
	w.width_fixed = fixed
	return nil
}

func (t *MemTerminal) SetWindowHeightFixed(id WindowID, fixed bool) error {
	w, ok := t.windows[id]
	if !ok {
		return fmt.Errorf("no such window %q", id)
	}
	w.height_fixed = fixed
	return nil
}

func (t *MemTerminal) SetWindowSize(id WindowID, width, height int) error {
	w, ok := t.windows[id]
	if !ok {
		return fmt.Errorf("no such window %q", id)
	}
	w.w, w.h = width, height
	return nil
}

func (t *MemTerminal) GetWindowTopLine(id WindowID) int {
	if w, ok := t.windows[id]; ok {
		return w.top_line
	}
	return 0
}

func (t *MemTerminal) SetWindowTopLine(id WindowID, n int) error {
	w, ok := t.windows[id]
	if !ok {
		return fmt.Errorf("no such window %q", id)
	}
	w.top_line = n
	return nil
}

func (t *MemTerminal) GetWindowLeftCol(id WindowID) int {
	if w, ok := t.windows[id]; ok {
		return w.left_col
	}
	return 0
}

func (t *MemTerminal) SetWindowLeftCol(id WindowID, n int) error {
	w, ok := t.windows[id]
	if !ok {
		return fmt.Errorf("no such window %q", id)
	}
	w.left_col = n
	return nil
}

var _ Terminal = (*MemTerminal)(nil)

// MemClipboard is an in-process stand-in for the host clipboard.
type MemClipboard struct {
	slots map[rune]string
}

func NewMemClipboard() *MemClipboard {
	return &MemClipboard{slots: make(map[rune]string)}
}

func (c *MemClipboard) Read(selection rune) (string, error) {
	return c.slots[selection], nil
}

func (c *MemClipboard) Write(selection rune, text string) error {
	c.slots[selection] = text
	return nil
}

var _ Clipboard = (*MemClipboard)(nil)
