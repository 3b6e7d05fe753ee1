package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nyxed/edcore/internal/capability"
	"github.com/nyxed/edcore/internal/ui"
)

// LeafContent supplies the display lines for one window's buffer,
// already scrolled to its topLine/leftCol — Render only clips to fit.
type LeafContent func(id capability.WindowID) []string

// Render composes every leaf of the current tab into one screen-sized
// string. Each split's children are joined along its axis with
// lipgloss.JoinHorizontal/JoinVertical, mirroring the tree shape
// directly rather than splicing absolute-positioned text, so panel
// borders and ANSI styling from PanelStyle survive compositing intact.
func (m *Manager) Render(focused capability.WindowID, content LeafContent) string {
	rects := m.Rects()
	return renderNode(m.CurrentTab().Root, rects, focused, content)
}

func renderNode(n *Node, rects map[capability.WindowID]Rect, focused capability.WindowID, content LeafContent) string {
	if n.Kind == LeafNode {
		rect := rects[n.WindowID]
		body := clipLines(content(n.WindowID), rect.W-2, rect.H-2)
		return ui.PanelStyle(rect.W, rect.H, n.WindowID == focused).Render(strings.Join(body, "\n"))
	}

	rendered := make([]string, len(n.Children))
	for i, c := range n.Children {
		rendered[i] = renderNode(c, rects, focused, content)
	}
	if n.Dir == capability.Vertical {
		return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func clipLines(lines []string, w, h int) []string {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	out := make([]string, h)
	for i := 0; i < h; i++ {
		if i >= len(lines) {
			out[i] = ""
			continue
		}
		r := []rune(lines[i])
		if len(r) > w {
			r = r[:w]
		}
		out[i] = string(r)
	}
	return out
}
