package bt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	bt "github.com/peterhyun/bt"
)

func newTestCatalog(t *testing.T) *bt.Catalog {
	t.Helper()

	cat := bt.NewCatalog()
	require.NoError(t, bt.RegisterBuiltins(cat))

	require.NoError(t, cat.Register("AlwaysSuccess", bt.ActionLeaf("AlwaysSuccess", "AlwaysSuccess",
		func(ctx context.Context, e *bt.EditorState, self bt.NodeID) bt.Result {
			e.SetAttribute(self, "touched", "yes")
			return bt.Success
		})))

	require.NoError(t, cat.Register("AlwaysFailure", bt.ActionLeaf("AlwaysFailure", "AlwaysFailure",
		func(ctx context.Context, e *bt.EditorState, self bt.NodeID) bt.Result {
			e.SetAttribute(self, "touched", "yes")
			return bt.Failure
		})))

	// RunOnceThenSucceed returns Running the first time it is ticked and
	// Success every time after, tracking its own state via an attribute so
	// distinct clones of the prototype don't share state through a closure.
	require.NoError(t, cat.Register("RunOnceThenSucceed", bt.ActionLeaf("RunOnceThenSucceed", "RunOnceThenSucceed",
		func(ctx context.Context, e *bt.EditorState, self bt.NodeID) bt.Result {
			attrs, _ := e.Attributes(self)
			if attrs["ran"] == "yes" {
				return bt.Success
			}

			e.SetAttribute(self, "ran", "yes")

			return bt.Running
		})))

	return cat
}

func mustPlace(t *testing.T, e *bt.EditorState, kind string, pos bt.Point2D) bt.NodeID {
	t.Helper()

	id, err := e.PlaceNode(kind, pos)
	require.NoError(t, err)

	return id
}

func Test_Leaf_Success(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))
	leaf := mustPlace(t, e, "AlwaysSuccess", bt.Point2D{})

	result, err := e.Tick(context.Background(), leaf)
	require.NoError(t, err)
	require.Equal(t, bt.Success, result)
}

func Test_Leaf_Failure(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))
	leaf := mustPlace(t, e, "AlwaysFailure", bt.Point2D{})

	result, err := e.Tick(context.Background(), leaf)
	require.NoError(t, err)
	require.Equal(t, bt.Failure, result)
}

func Test_Leaf_ResumesAcrossTicks(t *testing.T) {
	e := bt.NewEditorState(newTestCatalog(t))
	leaf := mustPlace(t, e, "RunOnceThenSucceed", bt.Point2D{})

	result, err := e.Tick(context.Background(), leaf)
	require.NoError(t, err)
	require.Equal(t, bt.Running, result)

	result, err = e.Tick(context.Background(), leaf)
	require.NoError(t, err)
	require.Equal(t, bt.Success, result)
}
