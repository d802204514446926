package bt

import "context"

// LeafTickFunc is a host-defined Tick implementation for a leaf kind. It may
// return Running across calls; the engine does not require leaves to expose
// a resumption index of their own.
type LeafTickFunc func(ctx context.Context, e *EditorState, self NodeID) Result

// Node is a tree element: a composite (Sequence/Fallback) or a leaf,
// carrying editor-space layout, a child-count constraint, and (for
// composites) resumption state from the last Tick.
//
// A Node is never held by value across a mutation: callers obtain a stable
// *Node from EditorState.Node and let EditorState's tree/tick operations
// mutate it in place.
type Node struct {
	DisplayName       string
	Kind              Kind
	IsRoot            bool
	Position          Point2D
	Dimensions        Point2D
	InitialDimensions Point2D
	ChildCountRange   IntInterval
	Attributes        map[string]string

	id       NodeID
	parent   NodeID
	children []NodeID

	lastTickedChild       NodeID
	lastRunningChildIndex int // composites only; -1 means no saved resumption

	leafTick LeafTickFunc // leaves only
}

// ID returns the node's own identity.
func (n *Node) ID() NodeID { return n.id }

// Parent returns the node's parent, or the nil NodeID for a root or a
// detached node.
func (n *Node) Parent() NodeID { return n.parent }

// Children returns the node's children in traversal order. The returned
// slice is owned by the node; callers must not mutate it.
func (n *Node) Children() []NodeID { return n.children }

// ChildCount returns len(Children()).
func (n *Node) ChildCount() int { return len(n.children) }

// LastTickedChild returns the child last visited by Tick, or the nil NodeID
// before the first Tick, after AlertTickStopped invalidated it, or after the
// referenced child was removed from the tree.
func (n *Node) LastTickedChild() NodeID { return n.lastTickedChild }

// LastRunningChildIndex returns the saved resumption index for a composite,
// or -1 if there is none. Always -1 for a leaf.
func (n *Node) LastRunningChildIndex() int {
	if !n.Kind.IsComposite() {
		return -1
	}

	return n.lastRunningChildIndex
}

// IsDeletable reports whether the node may be the target of a DeleteNode
// command. Only the root is not deletable.
func (n *Node) IsDeletable() bool { return !n.IsRoot }

// IsMovable reports whether the node may be the target of a MoveNode
// command. Only the root is not movable.
func (n *Node) IsMovable() bool { return !n.IsRoot }

func copyAttributes(src map[string]string) map[string]string {
	if src == nil {
		return map[string]string{}
	}

	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}

	return dst
}
