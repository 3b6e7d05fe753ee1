package layout

import (
	"testing"

	"github.com/nyxed/edcore/internal/capability"
)

func TestNewManagerSingleWindow(t *testing.T) {
	term := capability.NewMemTerminal()
	m := NewManager(term)
	m.Resize(Rect{W: 80, H: 24})

	if len(Leaves(m.CurrentTab().Root)) != 1 {
		t.Fatalf("fresh manager should have exactly one leaf")
	}
}

func TestSplitTilesWithoutOverlapOrGaps(t *testing.T) {
	term := capability.NewMemTerminal()
	m := NewManager(term)
	m.Resize(Rect{W: 80, H: 24})

	if err := m.Split(capability.Vertical, "buf2"); err != nil {
		t.Fatalf("Split: %v", err)
	}

	rects := m.Rects()
	if len(rects) != 2 {
		t.Fatalf("len(Rects()) = %d, want 2 after one split", len(rects))
	}

	var total int
	for _, r := range rects {
		total += r.W * r.H
	}
	if total != 80*24 {
		t.Fatalf("tiled area = %d, want exact coverage %d (no gaps/overlap)", total, 80*24)
	}
}

func TestSplitThenSplitAgainProducesThreeLeaves(t *testing.T) {
	term := capability.NewMemTerminal()
	m := NewManager(term)
	m.Resize(Rect{W: 100, H: 40})

	m.Split(capability.Vertical, "b2")
	m.Split(capability.Horizontal, "b3")

	if got := len(Leaves(m.CurrentTab().Root)); got != 3 {
		t.Fatalf("Leaves() = %d, want 3", got)
	}
	rects := m.Rects()
	var total int
	for _, r := range rects {
		total += r.W * r.H
	}
	if total != 100*40 {
		t.Fatalf("tiled area = %d, want %d", total, 100*40)
	}
}

func TestSplitInsufficientSpace(t *testing.T) {
	term := capability.NewMemTerminal()
	m := NewManager(term)
	m.Resize(Rect{W: 2, H: 2})

	err := m.Split(capability.Vertical, "b2")
	if _, ok := err.(*ErrInsufficientSpace); !ok {
		t.Fatalf("Split in tiny area = %v, want *ErrInsufficientSpace", err)
	}
	if got := len(Leaves(m.CurrentTab().Root)); got != 1 {
		t.Fatalf("failed split should not have modified the tree, got %d leaves", got)
	}
}

func TestCloseCollapsesParentSplit(t *testing.T) {
	term := capability.NewMemTerminal()
	m := NewManager(term)
	m.Resize(Rect{W: 80, H: 24})
	m.Split(capability.Vertical, "b2")

	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := len(Leaves(m.CurrentTab().Root)); got != 1 {
		t.Fatalf("Leaves() after closing one of two = %d, want 1", got)
	}
}

func TestCloseLastWindowInOnlyTabFails(t *testing.T) {
	term := capability.NewMemTerminal()
	m := NewManager(term)
	m.Resize(Rect{W: 80, H: 24})

	if err := m.Close(); err != ErrLastWindow {
		t.Fatalf("Close on the only window = %v, want ErrLastWindow", err)
	}
}

func TestCloseLastWindowClosesTabWhenOthersExist(t *testing.T) {
	term := capability.NewMemTerminal()
	m := NewManager(term)
	m.Resize(Rect{W: 80, H: 24})
	m.NewTab("b2", "two")

	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(m.Tabs()) != 1 {
		t.Fatalf("len(Tabs()) = %d, want 1 after closing a tab's only window", len(m.Tabs()))
	}
}

func TestNextTabWrapsAround(t *testing.T) {
	term := capability.NewMemTerminal()
	m := NewManager(term)
	m.Resize(Rect{W: 80, H: 24})
	m.NewTab("b2", "two")

	if m.TabIndex() != 1 {
		t.Fatalf("TabIndex() after NewTab = %d, want 1 (new tab focused)", m.TabIndex())
	}
	m.NextTab()
	if m.TabIndex() != 0 {
		t.Fatalf("NextTab() should wrap to 0, got %d", m.TabIndex())
	}
}

func TestCloseTabRefusesLastTab(t *testing.T) {
	term := capability.NewMemTerminal()
	m := NewManager(term)
	m.Resize(Rect{W: 80, H: 24})

	if err := m.CloseTab(); err != ErrLastWindow {
		t.Fatalf("CloseTab on the only tab = %v, want ErrLastWindow", err)
	}
}

func TestWinSaveRestoreViewRoundTrip(t *testing.T) {
	term := capability.NewMemTerminal()
	m := NewManager(term)
	m.Resize(Rect{W: 80, H: 24})

	id := m.CurrentWindow().WindowID
	term.SetWindowTopLine(id, 42)
	term.SetWindowLeftCol(id, 7)
	m.WinSaveView()

	term.SetWindowTopLine(id, 0)
	term.SetWindowLeftCol(id, 0)
	m.WinRestoreView()

	if got := term.GetWindowTopLine(id); got != 42 {
		t.Fatalf("GetWindowTopLine after restore = %d, want 42", got)
	}
	if got := term.GetWindowLeftCol(id); got != 7 {
		t.Fatalf("GetWindowLeftCol after restore = %d, want 7", got)
	}
}

func TestMoveFocusDirectional(t *testing.T) {
	term := capability.NewMemTerminal()
	m := NewManager(term)
	m.Resize(Rect{W: 80, H: 24})
	leftID := m.CurrentWindow().WindowID

	m.Split(capability.Vertical, "right") // current is now the right window
	rightID := m.CurrentWindow().WindowID

	if !m.MoveFocus(FocusLeft) {
		t.Fatalf("MoveFocus(FocusLeft) = false, want true")
	}
	if m.CurrentWindow().WindowID != leftID {
		t.Fatalf("after MoveFocus(FocusLeft), current = %v, want %v", m.CurrentWindow().WindowID, leftID)
	}
	if !m.MoveFocus(FocusRight) {
		t.Fatalf("MoveFocus(FocusRight) = false, want true")
	}
	if m.CurrentWindow().WindowID != rightID {
		t.Fatalf("after MoveFocus(FocusRight), current = %v, want %v", m.CurrentWindow().WindowID, rightID)
	}
}

func TestNextWindowCyclesAndWraps(t *testing.T) {
	term := capability.NewMemTerminal()
	m := NewManager(term)
	m.Resize(Rect{W: 80, H: 24})
	first := m.CurrentWindow().WindowID
	m.Split(capability.Vertical, "b2")
	second := m.CurrentWindow().WindowID

	m.NextWindow()
	if m.CurrentWindow().WindowID != first {
		t.Fatalf("NextWindow should wrap back to first leaf, got %v want %v", m.CurrentWindow().WindowID, first)
	}
	m.NextWindow()
	if m.CurrentWindow().WindowID != second {
		t.Fatalf("NextWindow should cycle to second leaf, got %v want %v", m.CurrentWindow().WindowID, second)
	}
}
