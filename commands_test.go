package bt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	bt "github.com/peterhyun/bt"
)

func Test_PlaceNodeCommand_ExecuteUndoExecute(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))

	cmd := bt.NewPlaceNode(e, "AlwaysSuccess", bt.Point2D{X: 3})
	require.NoError(t, cmd.Execute())

	id := cmd.Node()
	require.True(t, e.IsLive(id))

	require.NoError(t, cmd.Undo())
	require.True(t, e.IsRecycled(id))

	require.NoError(t, cmd.Execute())
	require.True(t, e.IsLive(id))
	require.Equal(t, id, cmd.Node(), "re-execute restores the same identity")
}

// Test_DeleteNodeCommand_ExecuteUndo covers spec scenario S4: deleting a node
// detaches only that node, and undoing restores it under its original
// parent.
func Test_DeleteNodeCommand_ExecuteUndo(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))

	root := mustPlace(t, e, "Sequence", bt.Point2D{})
	child := mustPlace(t, e, "AlwaysSuccess", bt.Point2D{})
	require.NoError(t, e.AddChild(root, child))

	cmd := bt.NewDeleteNode(e, child)
	require.NoError(t, cmd.Execute())

	require.True(t, e.IsRecycled(child))
	rootNode, ok := e.Node(root)
	require.True(t, ok)
	require.Empty(t, rootNode.Children())

	require.NoError(t, cmd.Undo())
	require.True(t, e.IsLive(child))
	require.Equal(t, []bt.NodeID{child}, rootNode.Children())
}

// Test_DeleteNodeCommand_OrphansSubtree covers spec scenario S4's
// Root -> A -> B shape: deleting A detaches it from Root only, never from
// its own children. B stays live and still attached to A while A sits in
// the recycle bin, and undoing restores the whole subtree under Root intact.
func Test_DeleteNodeCommand_OrphansSubtree(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))

	root := mustPlace(t, e, "Sequence", bt.Point2D{})
	a := mustPlace(t, e, "Sequence", bt.Point2D{})
	b := mustPlace(t, e, "AlwaysSuccess", bt.Point2D{})

	require.NoError(t, e.AddChild(root, a))
	require.NoError(t, e.AddChild(a, b))

	cmd := bt.NewDeleteNode(e, a)
	require.NoError(t, cmd.Execute())

	rootNode, ok := e.Node(root)
	require.True(t, ok)
	require.Empty(t, rootNode.Children(), "a is detached from root")

	require.True(t, e.IsRecycled(a))
	require.True(t, e.IsLive(b), "b rides along untouched, still live under recycled a")

	aNode, ok := e.AnyNode(a)
	require.True(t, ok)
	require.Equal(t, []bt.NodeID{b}, aNode.Children(), "a keeps its own children through the recycle bin")

	require.NoError(t, cmd.Undo())
	require.True(t, e.IsLive(a))
	require.Equal(t, []bt.NodeID{a}, rootNode.Children())
	require.Equal(t, []bt.NodeID{b}, aNode.Children(), "b is still a's child after restore")
}

// Test_PlaceAndConnectCommand_ChildAnchor covers spec scenario S5: placing a
// node and wiring it as a child of an existing anchor in one command.
func Test_PlaceAndConnectCommand_ChildAnchor(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))

	root := mustPlace(t, e, "Sequence", bt.Point2D{})

	cmd := bt.NewPlaceAndConnect(e, "AlwaysSuccess", bt.Point2D{X: 1}, root, false)
	require.NoError(t, cmd.Execute())

	newNode := cmd.Node()
	rootNode, ok := e.Node(root)
	require.True(t, ok)
	require.Equal(t, []bt.NodeID{newNode}, rootNode.Children())

	require.NoError(t, cmd.Undo())
	require.Empty(t, rootNode.Children())
	require.True(t, e.IsRecycled(newNode))
}

func Test_PlaceAndConnectCommand_ParentAnchor(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))

	anchor := mustPlace(t, e, "AlwaysSuccess", bt.Point2D{})

	cmd := bt.NewPlaceAndConnect(e, "Sequence", bt.Point2D{X: 1}, anchor, true)
	require.NoError(t, cmd.Execute())

	newNode := cmd.Node()
	newNodeStruct, ok := e.Node(newNode)
	require.True(t, ok)
	require.Equal(t, []bt.NodeID{anchor}, newNodeStruct.Children())
}

// Test_MoveNodeCommand_ReordersSiblings covers spec scenario S6: moving a
// node past a sibling re-sorts traversal order, and undoing the move
// restores the original order.
func Test_MoveNodeCommand_ReordersSiblings(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))

	root := mustPlace(t, e, "Sequence", bt.Point2D{})
	a := mustPlace(t, e, "AlwaysSuccess", bt.Point2D{X: 0})
	b := mustPlace(t, e, "AlwaysSuccess", bt.Point2D{X: 10})

	require.NoError(t, e.AddChild(root, a))
	require.NoError(t, e.AddChild(root, b))
	e.ReorderChildren(root)

	rootNode, ok := e.Node(root)
	require.True(t, ok)
	require.Equal(t, []bt.NodeID{a, b}, rootNode.Children())

	cmd := bt.NewMoveNode(e, a, bt.Point2D{X: 20}, bt.Point2D{X: 0})
	require.NoError(t, cmd.Execute())
	require.Equal(t, []bt.NodeID{b, a}, rootNode.Children())

	require.NoError(t, cmd.Undo())
	require.Equal(t, []bt.NodeID{a, b}, rootNode.Children())
}

func Test_AddConnectionCommand_ExecuteUndo(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))

	root := mustPlace(t, e, "Sequence", bt.Point2D{})
	child := mustPlace(t, e, "AlwaysSuccess", bt.Point2D{})

	cmd := bt.NewAddConnection(e, root, child)
	require.NoError(t, cmd.Execute())

	rootNode, ok := e.Node(root)
	require.True(t, ok)
	require.Equal(t, []bt.NodeID{child}, rootNode.Children())

	require.NoError(t, cmd.Undo())
	require.Empty(t, rootNode.Children())
}

func Test_RemoveConnectionCommand_ExecuteFailsWhenNotConnected(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))

	root := mustPlace(t, e, "Sequence", bt.Point2D{})
	child := mustPlace(t, e, "AlwaysSuccess", bt.Point2D{})

	cmd := bt.NewRemoveConnection(e, root, child)
	err := cmd.Execute()
	require.ErrorIs(t, err, bt.ErrNotConnected)
}

func Test_RemoveConnectionCommand_ExecuteUndo(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))

	root := mustPlace(t, e, "Sequence", bt.Point2D{})
	child := mustPlace(t, e, "AlwaysSuccess", bt.Point2D{})
	require.NoError(t, e.AddChild(root, child))

	cmd := bt.NewRemoveConnection(e, root, child)
	require.NoError(t, cmd.Execute())

	rootNode, ok := e.Node(root)
	require.True(t, ok)
	require.Empty(t, rootNode.Children())

	require.NoError(t, cmd.Undo())
	require.Equal(t, []bt.NodeID{child}, rootNode.Children())
}

func Test_CompositeCommand_UndoesInReverseOrder(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))

	root := mustPlace(t, e, "Sequence", bt.Point2D{})

	placeA := bt.NewPlaceNode(e, "AlwaysSuccess", bt.Point2D{X: 0})
	placeB := bt.NewPlaceNode(e, "AlwaysSuccess", bt.Point2D{X: 1})

	var log []string
	first := &orderRecorder{label: "first", log: &log}
	last := &orderRecorder{label: "last", log: &log}

	composite := bt.NewComposite(first, placeA, placeB, last)
	require.NoError(t, composite.Execute())

	a, b := placeA.Node(), placeB.Node()
	require.True(t, e.IsLive(a))
	require.True(t, e.IsLive(b))

	require.NoError(t, e.AddChild(root, a))
	require.NoError(t, e.AddChild(root, b))

	// Undo only unwinds the composite's own commands (the two placements),
	// so detach both connections first to keep Recycle's no-parent
	// precondition satisfied.
	_, _ = e.RemoveChild(root, a)
	_, _ = e.RemoveChild(root, b)

	require.NoError(t, composite.Undo())
	require.True(t, e.IsRecycled(a))
	require.True(t, e.IsRecycled(b))
	require.Equal(t, []string{"execute first", "execute last", "undo last", "undo first"}, log)
}

// orderRecorder is a Command that appends its label to a shared log on
// Execute and Undo, so a test can observe the order a CompositeCommand
// runs them in.
type orderRecorder struct {
	label string
	log   *[]string
}

func (r *orderRecorder) Execute() error {
	*r.log = append(*r.log, "execute "+r.label)
	return nil
}

func (r *orderRecorder) Undo() error {
	*r.log = append(*r.log, "undo "+r.label)
	return nil
}
