package bt

import "context"

// ConditionLeaf builds a leaf prototype whose Tick adapts a plain predicate
// into Success/Failure, the mutable-tree analogue of the teacher's
// Conditional function type.
func ConditionLeaf(kindName, displayName string, check func(ctx context.Context, e *EditorState, self NodeID) bool) Node {
	return Node{
		DisplayName:       displayName,
		Kind:              LeafKind(kindName),
		Dimensions:        Point2D{X: DefaultDimX, Y: DefaultDimY},
		InitialDimensions: Point2D{X: DefaultDimX, Y: DefaultDimY},
		ChildCountRange:   IntInterval{Min: 0, Max: 0},
		leafTick: func(ctx context.Context, e *EditorState, self NodeID) Result {
			if check(ctx, e, self) {
				return Success
			}

			return Failure
		},
	}
}

// ActionLeaf builds a leaf prototype whose Tick is the given function
// directly, the mutable-tree analogue of the teacher's Task function type.
// An action may return Running across calls; per spec §4.2 the engine does
// not require a leaf to expose a resumption index of its own.
func ActionLeaf(kindName, displayName string, do LeafTickFunc) Node {
	return Node{
		DisplayName:       displayName,
		Kind:              LeafKind(kindName),
		Dimensions:        Point2D{X: DefaultDimX, Y: DefaultDimY},
		InitialDimensions: Point2D{X: DefaultDimX, Y: DefaultDimY},
		ChildCountRange:   IntInterval{Min: 0, Max: 0},
		leafTick:          do,
	}
}

// NoopLeaf is a leaf prototype that always succeeds, analogous to the
// teacher's Noop task.
func NoopLeaf(kindName string) Node {
	return ActionLeaf(kindName, kindName, func(context.Context, *EditorState, NodeID) Result {
		return Success
	})
}

// Note: the teacher's Decorator/Parallel/Invert/RunUntilSuccess/
// RunUntilFailure/Ternary combinators have no equivalent here. Spec §3
// restricts Node.Kind to exactly {Sequence, Fallback, LeafKind(name)} — a
// single-child decorator or an N-ary threshold composite is not one of
// those three variants. The same behaviors remain expressible as a single
// custom leaf's LeafTickFunc (ticking whatever it likes internally), which
// spec §4.2 explicitly leaves implementation-defined; see DESIGN.md.
