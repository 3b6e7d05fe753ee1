// Package layout implements the Window/Tab Layout Manager of spec.md
// §4.E: a tree of window splits per tab page, directional focus
// movement, resize policy, and view state save/restore.
//
// Grounded on original_source/src/command/window_handlers.rs, whose
// split/close/focus operations work over a recursive pane tree; the
// original's tie-break-by-focus-history rule for directional movement
// (`Ctrl-W h/j/k/l` when several candidate windows are equally close)
// is preserved in focus.go. Reshaped here from the original's
// recursive-enum tree into parent-pointer *Node values, matching how
// the teacher's own internal/terminal manages pane geometry
// imperatively rather than through persistent recursive structures.
package layout

import (
	"fmt"

	"github.com/nyxed/edcore/internal/capability"
)

// NodeKind tags whether a Node is a leaf window or an internal split.
type NodeKind int

const (
	LeafNode NodeKind = iota
	SplitNode
)

// Node is a WindowNode: either a single realized window (Leaf) or a
// Split dividing its area among children along one axis.
type Node struct {
	Kind NodeKind

	// Leaf fields.
	WindowID capability.WindowID

	// Split fields.
	Dir      capability.Direction
	Children []*Node
	Ratios   []float64 // parallel to Children, sums to 1

	Parent *Node
}

// Rect is a window's on-screen area in character cells.
type Rect struct {
	X, Y, W, H int
}

func newLeaf(id capability.WindowID) *Node {
	return &Node{Kind: LeafNode, WindowID: id}
}

// FindLeaf locates the leaf holding id, depth-first.
func FindLeaf(root *Node, id capability.WindowID) *Node {
	if root == nil {
		return nil
	}
	if root.Kind == LeafNode {
		if root.WindowID == id {
			return root
		}
		return nil
	}
	for _, c := range root.Children {
		if found := FindLeaf(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Leaves returns every leaf in the tree in left-to-right, depth-first
// order, the order `Ctrl-W w` cycles through.
func Leaves(root *Node) []*Node {
	if root == nil {
		return nil
	}
	if root.Kind == LeafNode {
		return []*Node{root}
	}
	var out []*Node
	for _, c := range root.Children {
		out = append(out, Leaves(c)...)
	}
	return out
}

// ErrInsufficientSpace is returned by Split when the target area is
// too small to divide further (spec.md §4.E boundary InsufficientSpace).
type ErrInsufficientSpace struct{ MinCells int }

func (e *ErrInsufficientSpace) Error() string {
	return fmt.Sprintf("window area too small to split (needs at least %d cells)", e.MinCells)
}

// MinLeafCells is the smallest width or height (in the split axis) a
// leaf may shrink to, grounded on the original's own minimum pane size.
const MinLeafCells = 2

// splitLeaf replaces leaf in the tree with a two-child Split along dir,
// the original leaf first, newID second. Returns the new sibling leaf.
func splitLeaf(leaf *Node, dir capability.Direction, newID capability.WindowID, availableCells int) (*Node, error) {
	if availableCells/2 < MinLeafCells {
		return nil, &ErrInsufficientSpace{MinCells: MinLeafCells * 2}
	}

	sibling := newLeaf(newID)
	split := &Node{
		Kind:     SplitNode,
		Dir:      dir,
		Children: []*Node{leaf, sibling},
		Ratios:   []float64{0.5, 0.5},
		Parent:   leaf.Parent,
	}

	if leaf.Parent == nil {
		// leaf was the tree root; split becomes the new root via the
		// caller swapping its root pointer (see Manager.Split).
	} else {
		for i, c := range leaf.Parent.Children {
			if c == leaf {
				leaf.Parent.Children[i] = split
				break
			}
		}
	}
	leaf.Parent = split
	sibling.Parent = split

	return sibling, nil
}

// removeFromParent deletes leaf from its parent's children, collapsing
// the parent into its remaining sibling if only one child is left.
// Returns the tree's root after the change (root itself unless the
// collapse replaced it), and false when leaf is the root and so cannot
// be removed.
func removeFromParent(root, leaf *Node) (newRoot *Node, removed bool) {
	parent := leaf.Parent
	if parent == nil {
		return root, false // leaf is the root; nothing to collapse into
	}

	var idx int
	for i, c := range parent.Children {
		if c == leaf {
			idx = i
			break
		}
	}
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	parent.Ratios = append(parent.Ratios[:idx], parent.Ratios[idx+1:]...)
	renormalize(parent.Ratios)

	if len(parent.Children) > 1 {
		return root, true
	}

	// Collapse: the one remaining child takes the parent's place.
	remaining := parent.Children[0]
	remaining.Parent = parent.Parent
	if parent.Parent == nil {
		return remaining, true
	}
	for i, c := range parent.Parent.Children {
		if c == parent {
			parent.Parent.Children[i] = remaining
			break
		}
	}
	return root, true
}

func renormalize(ratios []float64) {
	var sum float64
	for _, r := range ratios {
		sum += r
	}
	if sum <= 0 {
		return
	}
	for i := range ratios {
		ratios[i] /= sum
	}
}

// Layout computes each leaf's Rect within the given area, by walking
// the tree and subdividing along each split's axis according to its
// ratios.
func Layout(root *Node, area Rect) map[capability.WindowID]Rect {
	out := make(map[capability.WindowID]Rect)
	layoutInto(root, area, out)
	return out
}

func layoutInto(n *Node, area Rect, out map[capability.WindowID]Rect) {
	if n == nil {
		return
	}
	if n.Kind == LeafNode {
		out[n.WindowID] = area
		return
	}

	if n.Dir == capability.Vertical {
		x := area.X
		for i, child := range n.Children {
			w := int(float64(area.W) * n.Ratios[i])
			if i == len(n.Children)-1 {
				w = area.X + area.W - x
			}
			layoutInto(child, Rect{X: x, Y: area.Y, W: w, H: area.H}, out)
			x += w
		}
		return
	}

	y := area.Y
	for i, child := range n.Children {
		h := int(float64(area.H) * n.Ratios[i])
		if i == len(n.Children)-1 {
			h = area.Y + area.H - y
		}
		layoutInto(child, Rect{X: area.X, Y: y, W: area.W, H: h}, out)
		y += h
	}
}
