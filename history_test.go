package bt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	bt "github.com/peterhyun/bt"
)

func Test_History_PushUndoRedo(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))
	h := bt.NewHistory(e)

	cmd := bt.NewPlaceNode(e, "AlwaysSuccess", bt.Point2D{})
	require.NoError(t, h.Push(context.Background(), cmd))

	id := cmd.Node()
	require.True(t, e.IsLive(id))

	past, future := h.Len()
	require.Equal(t, 1, past)
	require.Equal(t, 0, future)

	require.NoError(t, h.Undo(context.Background()))
	require.True(t, e.IsRecycled(id))

	past, future = h.Len()
	require.Equal(t, 0, past)
	require.Equal(t, 1, future)

	require.NoError(t, h.Redo(context.Background()))
	require.True(t, e.IsLive(id))
}

func Test_History_Undo_Redo_EmptyStacksAreNoops(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))
	h := bt.NewHistory(e)

	require.NoError(t, h.Undo(context.Background()))
	require.NoError(t, h.Redo(context.Background()))

	past, future := h.Len()
	require.Equal(t, 0, past)
	require.Equal(t, 0, future)
}

// Test_History_Push_PurgesDroppedOwnedNode covers spec §4.6: pushing a new
// command after an Undo clears the redo stack, and any dropped command that
// exclusively owns a node it created has that node purged outright rather
// than left dangling in the recycle bin.
func Test_History_Push_PurgesDroppedOwnedNode(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))
	h := bt.NewHistory(e)

	placeA := bt.NewPlaceNode(e, "AlwaysSuccess", bt.Point2D{})
	require.NoError(t, h.Push(context.Background(), placeA))

	placeB := bt.NewPlaceNode(e, "AlwaysSuccess", bt.Point2D{})
	require.NoError(t, h.Push(context.Background(), placeB))

	b := placeB.Node()
	require.NoError(t, h.Undo(context.Background()))
	require.True(t, e.IsRecycled(b))

	placeC := bt.NewPlaceNode(e, "AlwaysSuccess", bt.Point2D{})
	require.NoError(t, h.Push(context.Background(), placeC))

	require.False(t, e.IsLive(b))
	require.False(t, e.IsRecycled(b), "dropped command's node must be purged, not left recycled")
}

type fakeRecorder struct {
	events []bt.HistoryEvent
}

func (f *fakeRecorder) Record(event bt.HistoryEvent) {
	f.events = append(f.events, event)
}

func Test_History_SetRecorder_MirrorsEvents(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))
	h := bt.NewHistory(e)

	rec := &fakeRecorder{}
	h.SetRecorder(rec)

	cmd := bt.NewPlaceNode(e, "AlwaysSuccess", bt.Point2D{})
	require.NoError(t, h.Push(context.Background(), cmd))
	require.NoError(t, h.Undo(context.Background()))

	require.Len(t, rec.events, 2)
	require.Equal(t, "push", rec.events[0].Action)
	require.Equal(t, "undo", rec.events[1].Action)
	require.Equal(t, "PlaceNode", rec.events[0].Command)
}
