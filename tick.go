package bt

import (
	"context"
	"fmt"
)

// Tick evaluates id per spec §4.2: Sequence and Fallback dispatch to
// children with resumption bookkeeping; a leaf dispatches to its
// host-defined LeafTickFunc. The host must not mutate tree topology (via a
// Command) while a Tick is in progress on the same tree (spec §5).
func (e *EditorState) Tick(ctx context.Context, id NodeID) (Result, error) {
	n := e.mustLive(id)

	switch n.Kind.Tag {
	case TagSequence:
		return e.tickComposite(ctx, id, true)
	case TagFallback:
		return e.tickComposite(ctx, id, false)
	case TagLeaf:
		return e.tickLeaf(ctx, id, n)
	default:
		return Invalid, fmt.Errorf("bt: node %s has unrecognized kind tag %d", id, n.Kind.Tag)
	}
}

func (e *EditorState) tickLeaf(ctx context.Context, id NodeID, n *Node) (Result, error) {
	if n.leafTick == nil {
		return Invalid, fmt.Errorf("bt: leaf kind %q (node %s) has no tick function registered", n.Kind.LeafName, id)
	}

	span, ctx := childSpanFromContext(ctx, "tick.leaf."+n.Kind.LeafName)
	defer span.Finish()

	return n.leafTick(ctx, e, id), nil
}

// tickComposite implements the shared Sequence/Fallback traversal from
// spec §4.2. isSequence selects AND-semantics (Failure halts, Success
// continues) vs. OR-semantics (Success halts, Failure continues).
func (e *EditorState) tickComposite(ctx context.Context, id NodeID, isSequence bool) (Result, error) {
	label := "tick.fallback"
	if isSequence {
		label = "tick.sequence"
	}

	span, ctx := childSpanFromContext(ctx, label)
	defer span.Finish()
	span.SetTag("node", id.String())

	n := e.mustLive(id)

	start := 0
	if n.lastRunningChildIndex >= 0 {
		start = n.lastRunningChildIndex
	}

	n.lastRunningChildIndex = -1
	n.lastTickedChild = NodeID{}

	for idx := start; idx < len(n.children); idx++ {
		childID := n.children[idx]
		if childID.IsNil() {
			errorAndDie("bt: composite %s has a nil child entry at index %d", id, idx)
		}

		result, err := e.Tick(ctx, childID)
		if err != nil {
			return Invalid, err
		}

		n.lastTickedChild = childID

		halt := Failure
		if !isSequence {
			halt = Success
		}

		if result == halt {
			span.SetTag("result", result.String())
			return result, nil
		}

		if result == Running {
			n.lastRunningChildIndex = idx
			span.SetTag("result", Running.String())

			return Running, nil
		}
	}

	if len(n.children) > 0 {
		n.lastTickedChild = n.children[len(n.children)-1]
	}

	vacuous := Success
	if !isSequence {
		vacuous = Failure
	}

	span.SetTag("result", vacuous.String())

	return vacuous, nil
}

// AlertTickStopped resets a composite's resumption index so the next Tick
// starts traversal from the beginning, and clears its LastTickedChild.
// No-op on a leaf. Hosts that stop
// evaluating a subtree (detach, pause) call this on the subtree root; a
// full-tree reset requires the caller to recurse (see AlertTickStoppedTree).
func (e *EditorState) AlertTickStopped(id NodeID) {
	n, ok := e.Node(id)
	if !ok {
		return
	}

	if n.Kind.IsComposite() {
		n.lastRunningChildIndex = -1
		n.lastTickedChild = NodeID{}
	}
}

// AlertTickStoppedTree recursively calls AlertTickStopped on id and every
// descendant, matching the whole-tree walk the host performs when a tree is
// paused or a subtree detached (spec §5).
func (e *EditorState) AlertTickStoppedTree(id NodeID) {
	n, ok := e.Node(id)
	if !ok {
		return
	}

	e.AlertTickStopped(id)

	for _, c := range n.children {
		e.AlertTickStoppedTree(c)
	}
}

// PortEdge selects which of a node's horizontal edges a port disc sits on.
type PortEdge int

const (
	// PortTop is the disc on the node's top edge (incoming connections).
	PortTop PortEdge = iota
	// PortBottom is the disc on the node's bottom edge (outgoing
	// connections).
	PortBottom
)

// PortDisc returns the center and fixed radius of the port disc on the
// given edge of id, for a Renderer to draw. This is the only rendering data
// that crosses the core boundary (spec §6); the core never touches vertex
// buffers.
func (e *EditorState) PortDisc(id NodeID, edge PortEdge) (Point2D, float64, bool) {
	n, ok := e.Node(id)
	if !ok {
		return Point2D{}, 0, false
	}

	center := Point2D{X: n.Position.X + n.Dimensions.X/2}

	switch edge {
	case PortTop:
		center.Y = n.Position.Y
	case PortBottom:
		center.Y = n.Position.Y + n.Dimensions.Y
	}

	return center, DefaultPortRadius, true
}
