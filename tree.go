package bt

import "sort"

// AddChild appends child to parent.Children and sets child.Parent = parent.
// It does not enforce ChildCountRange; the editor allows temporary
// over/underfill while editing (spec §4.1).
func (e *EditorState) AddChild(parent, child NodeID) error {
	p := e.mustLive(parent)
	c := e.mustLive(child)

	if parent == child || e.IsAncestor(child, parent) {
		return cycleWouldFormErr(parent, child)
	}

	for _, existing := range p.children {
		if existing == child {
			return alreadyChildErr(parent, child)
		}
	}

	p.children = append(p.children, child)
	c.parent = parent

	return nil
}

// RemoveChild detaches child from parent, clearing child.Parent. It returns
// (child, true) if child was present, or (NodeID{}, false) otherwise.
// Invalidates parent's LastTickedChild if it pointed at child, per the weak
// reference contract in spec §4.2.
func (e *EditorState) RemoveChild(parent, child NodeID) (NodeID, bool) {
	p := e.mustLive(parent)

	idx := -1

	for i, c := range p.children {
		if c == child {
			idx = i
			break
		}
	}

	if idx < 0 {
		return NodeID{}, false
	}

	p.children = append(p.children[:idx], p.children[idx+1:]...)

	if c, ok := e.Node(child); ok {
		c.parent = NodeID{}
	}

	if p.lastTickedChild == child {
		p.lastTickedChild = NodeID{}
	}

	return child, true
}

// Move updates a node's position. If the node has a parent, it triggers
// ReorderChildren on that parent so left-to-right visual order keeps
// matching traversal order.
func (e *EditorState) Move(id NodeID, newPos Point2D) {
	n := e.mustLive(id)
	n.Position = newPos

	if !n.parent.IsNil() {
		e.ReorderChildren(n.parent)
	}
}

// ReorderChildren stably sorts parent's children by ascending Position.X.
// Stable sorting preserves existing order among equal-X children and makes
// repeated calls with unchanged positions idempotent (spec invariant 6).
func (e *EditorState) ReorderChildren(parent NodeID) {
	p := e.mustLive(parent)

	sort.SliceStable(p.children, func(i, j int) bool {
		ni, _ := e.Node(p.children[i])
		nj, _ := e.Node(p.children[j])

		if ni == nil || nj == nil {
			return false
		}

		return ni.Position.X < nj.Position.X
	})
}

// IsAncestor reports whether a is an ancestor of b, walking b's parent
// chain.
func (e *EditorState) IsAncestor(a, b NodeID) bool {
	cur := b

	for {
		n, ok := e.Node(cur)
		if !ok || n.parent.IsNil() {
			return false
		}

		if n.parent == a {
			return true
		}

		cur = n.parent
	}
}

// CheckSetupValidity reports whether id's child count lies within its
// ChildCountRange and every descendant is recursively valid too (spec
// §4.1; the recursive-descent behavior is restored from the original
// BehaviorTreeEditor's whole-tree validity walk — see SPEC_FULL.md §4).
func (e *EditorState) CheckSetupValidity(id NodeID) bool {
	n, ok := e.Node(id)
	if !ok {
		return false
	}

	if !n.ChildCountRange.Contains(len(n.children)) {
		return false
	}

	for _, c := range n.children {
		if !e.CheckSetupValidity(c) {
			return false
		}
	}

	return true
}
