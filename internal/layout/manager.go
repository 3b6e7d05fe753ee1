package layout

import (
	"fmt"

	"github.com/nyxed/edcore/internal/capability"
)

// Tab is a tab page: a window split tree plus the window last focused
// within it (restored when the user switches back via gt/gT).
type Tab struct {
	Name    string
	Root    *Node
	Current *Node

	// focusHistory records leaves in most-recently-focused order
	// (newest first), used to break ties in directional movement, per
	// the original's tie-break rule.
	focusHistory []capability.WindowID
}

func (t *Tab) recordFocus(id capability.WindowID) {
	filtered := t.focusHistory[:0]
	for _, existing := range t.focusHistory {
		if existing != id {
			filtered = append(filtered, existing)
		}
	}
	t.focusHistory = append([]capability.WindowID{id}, filtered...)
}

// Manager is the Window/Tab Layout Manager: one or more Tabs, and the
// Terminal capability that mints and sizes real windows.
type Manager struct {
	term Terminal

	tabs    []*Tab
	current int

	area Rect

	savedViews map[capability.WindowID]savedView
}

type savedView struct {
	topLine, leftCol int
}

// Terminal is the subset of capability.Terminal the layout manager
// drives directly. Declared locally so this package depends only on
// the operations it actually calls.
type Terminal interface {
	CurrentWindowID() capability.WindowID
	SplitWindow(dir capability.Direction, bufID string) (capability.WindowID, error)
	CloseWindow(id capability.WindowID) error
	CreateTab(bufID, name string) (capability.WindowID, error)
	SetWindowSize(id capability.WindowID, w, h int) error
	GetWindowTopLine(id capability.WindowID) int
	SetWindowTopLine(id capability.WindowID, n int) error
	GetWindowLeftCol(id capability.WindowID) int
	SetWindowLeftCol(id capability.WindowID, n int) error
}

// NewManager creates a layout manager with a single tab containing a
// single window realized by term.
func NewManager(term Terminal) *Manager {
	root := newLeaf(term.CurrentWindowID())
	tab := &Tab{Name: "1", Root: root, Current: root}
	tab.recordFocus(root.WindowID)
	return &Manager{
		term:       term,
		tabs:       []*Tab{tab},
		current:    0,
		savedViews: make(map[capability.WindowID]savedView),
	}
}

func (m *Manager) CurrentTab() *Tab { return m.tabs[m.current] }

func (m *Manager) CurrentWindow() *Node { return m.CurrentTab().Current }

func (m *Manager) Tabs() []*Tab { return m.tabs }

func (m *Manager) TabIndex() int { return m.current }

// Resize sets the overall screen area the window tree is laid out
// within, applying the resize policy of spec.md §4.E: every leaf's
// real size is pushed to the Terminal capability immediately.
func (m *Manager) Resize(area Rect) {
	m.area = area
	m.applyGeometry()
}

func (m *Manager) applyGeometry() {
	rects := Layout(m.CurrentTab().Root, m.area)
	for id, r := range rects {
		m.term.SetWindowSize(id, r.W, r.H)
	}
}

// Rects exposes the current tab's computed leaf geometry, for the UI
// layer to render borders around.
func (m *Manager) Rects() map[capability.WindowID]Rect {
	return Layout(m.CurrentTab().Root, m.area)
}

// Split divides the current window along dir, focusing the new half.
func (m *Manager) Split(dir capability.Direction, bufID string) error {
	tab := m.CurrentTab()
	leaf := tab.Current

	available := m.area.W
	if dir == capability.Horizontal {
		available = m.area.H
	}
	if rects := Layout(tab.Root, m.area); len(rects) > 0 {
		if r, ok := rects[leaf.WindowID]; ok {
			if dir == capability.Vertical {
				available = r.W
			} else {
				available = r.H
			}
		}
	}

	newID, err := m.term.SplitWindow(dir, bufID)
	if err != nil {
		return capability.Wrap("terminal", err)
	}

	wasRoot := leaf == tab.Root
	sibling, err := splitLeaf(leaf, dir, newID, available)
	if err != nil {
		m.term.CloseWindow(newID)
		return err
	}
	if wasRoot {
		tab.Root = leaf.Parent
	}

	tab.Current = sibling
	tab.recordFocus(sibling.WindowID)
	m.applyGeometry()
	return nil
}

// ErrLastWindow is returned by Close when asked to close the only
// window in the only tab.
var ErrLastWindow = fmt.Errorf("cannot close the last window")

// Close closes the current window. If it was the last window in the
// tab, the tab itself is closed (unless it is the only tab, in which
// case ErrLastWindow is returned).
func (m *Manager) Close() error {
	tab := m.CurrentTab()
	leaf := tab.Current

	if leaf.Parent == nil {
		// Only window in this tab.
		if len(m.tabs) == 1 {
			return ErrLastWindow
		}
		return m.CloseTab()
	}

	newRoot, _ := removeFromParent(tab.Root, leaf)
	tab.Root = newRoot
	m.term.CloseWindow(leaf.WindowID)

	leaves := Leaves(tab.Root)
	tab.Current = pickNextFocus(leaves, tab.focusHistory)
	tab.recordFocus(tab.Current.WindowID)
	m.applyGeometry()
	return nil
}

func pickNextFocus(leaves []*Node, history []capability.WindowID) *Node {
	for _, id := range history {
		for _, l := range leaves {
			if l.WindowID == id {
				return l
			}
		}
	}
	if len(leaves) > 0 {
		return leaves[0]
	}
	return nil
}

// NextWindow cycles focus forward through the tab's leaves.
func (m *Manager) NextWindow() {
	tab := m.CurrentTab()
	leaves := Leaves(tab.Root)
	for i, l := range leaves {
		if l == tab.Current {
			tab.Current = leaves[(i+1)%len(leaves)]
			tab.recordFocus(tab.Current.WindowID)
			return
		}
	}
}

// PrevWindow cycles focus backward through the tab's leaves.
func (m *Manager) PrevWindow() {
	tab := m.CurrentTab()
	leaves := Leaves(tab.Root)
	for i, l := range leaves {
		if l == tab.Current {
			tab.Current = leaves[(i-1+len(leaves))%len(leaves)]
			tab.recordFocus(tab.Current.WindowID)
			return
		}
	}
}

// FocusWindow switches focus to the leaf holding id, if present in the
// current tab.
func (m *Manager) FocusWindow(id capability.WindowID) bool {
	tab := m.CurrentTab()
	if leaf := FindLeaf(tab.Root, id); leaf != nil {
		tab.Current = leaf
		tab.recordFocus(id)
		return true
	}
	return false
}

// NewTab opens a new tab page with a single window, after the current
// one, and focuses it.
func (m *Manager) NewTab(bufID, name string) error {
	id, err := m.term.CreateTab(bufID, name)
	if err != nil {
		return capability.Wrap("terminal", err)
	}
	root := newLeaf(id)
	tab := &Tab{Name: name, Root: root, Current: root}
	tab.recordFocus(id)

	insertAt := m.current + 1
	m.tabs = append(m.tabs, nil)
	copy(m.tabs[insertAt+1:], m.tabs[insertAt:])
	m.tabs[insertAt] = tab
	m.current = insertAt
	m.applyGeometry()
	return nil
}

// CloseTab closes the current tab page. Refuses to close the last
// remaining tab.
func (m *Manager) CloseTab() error {
	if len(m.tabs) == 1 {
		return ErrLastWindow
	}
	tab := m.tabs[m.current]
	for _, leaf := range Leaves(tab.Root) {
		m.term.CloseWindow(leaf.WindowID)
	}
	m.tabs = append(m.tabs[:m.current], m.tabs[m.current+1:]...)
	if m.current >= len(m.tabs) {
		m.current = len(m.tabs) - 1
	}
	m.applyGeometry()
	return nil
}

// NextTab switches to the next tab page, wrapping around.
func (m *Manager) NextTab() {
	m.current = (m.current + 1) % len(m.tabs)
	m.applyGeometry()
}

// PrevTab switches to the previous tab page, wrapping around.
func (m *Manager) PrevTab() {
	m.current = (m.current - 1 + len(m.tabs)) % len(m.tabs)
	m.applyGeometry()
}

// WinSaveView snapshots the current window's scroll position so a
// later WinRestoreView can return to it, e.g. across a buffer reload.
func (m *Manager) WinSaveView() {
	id := m.CurrentWindow().WindowID
	m.savedViews[id] = savedView{
		topLine: m.term.GetWindowTopLine(id),
		leftCol: m.term.GetWindowLeftCol(id),
	}
}

// WinRestoreView restores the view saved by the most recent
// WinSaveView for the current window. A no-op if none was saved.
func (m *Manager) WinRestoreView() {
	id := m.CurrentWindow().WindowID
	v, ok := m.savedViews[id]
	if !ok {
		return
	}
	m.term.SetWindowTopLine(id, v.topLine)
	m.term.SetWindowLeftCol(id, v.leftCol)
}
