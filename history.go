package bt

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// HistoryEvent is an operational log entry mirrored to an optional Recorder
// on every Push/Undo/Redo. It is a debug/audit artifact, not a persistence
// format: replaying it never reconstructs tree state, it only records what
// happened and when (spec Non-goals still exclude persistence beyond the
// attribute-map contract; SPEC_FULL.md §3 goes over the distinction).
type HistoryEvent struct {
	Action    string    `json:"action"` // "push", "undo", or "redo"
	Command   string    `json:"command"`
	Timestamp time.Time `json:"timestamp"`
}

// Recorder mirrors History events to an external sink. It is best-effort;
// a Recorder failure is logged, never returned to the caller of
// Push/Undo/Redo.
type Recorder interface {
	Record(event HistoryEvent)
}

// History is a stack-of-two-stacks over Command: past (undoable) and future
// (redoable). It is the sole authority on command lifetime — no other
// collaborator deletes a Command (spec §4.6).
type History struct {
	editor   *EditorState
	past     []Command
	future   []Command
	recorder Recorder
	log      logrus.FieldLogger
}

// NewHistory creates an empty History bound to editor, which it uses to
// Purge nodes owned by commands dropped when Push clears the future stack.
func NewHistory(editor *EditorState) *History {
	return &History{
		editor: editor,
		log:    logrus.StandardLogger().WithField("component", "history"),
	}
}

// SetRecorder attaches (or, with nil, detaches) an optional event sink.
func (h *History) SetRecorder(r Recorder) { h.recorder = r }

// SetLogger overrides the history's structured logger.
func (h *History) SetLogger(log logrus.FieldLogger) {
	if log != nil {
		h.log = log
	}
}

// Len returns (len(past), len(future)).
func (h *History) Len() (int, int) { return len(h.past), len(h.future) }

// Push executes cmd, pushes it onto past, and clears future. Per spec
// §4.6, clearing future may drop commands; any dropped command that
// exclusively owns a node it created has that node purged.
func (h *History) Push(ctx context.Context, cmd Command) error {
	span, _ := childSpanFromContext(ctx, "history.push")
	defer span.Finish()

	if err := cmd.Execute(); err != nil {
		span.SetTag("error", true)
		return err
	}

	h.past = append(h.past, cmd)
	h.purgeDropped(h.future)
	h.future = nil

	h.record("push", cmd)

	return nil
}

// Undo pops the top of past, calls its Undo, and pushes it onto future.
// No-op if past is empty.
func (h *History) Undo(ctx context.Context) error {
	span, _ := childSpanFromContext(ctx, "history.undo")
	defer span.Finish()

	if len(h.past) == 0 {
		return nil
	}

	cmd := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]

	if err := cmd.Undo(); err != nil {
		span.SetTag("error", true)
		return err
	}

	h.future = append(h.future, cmd)
	h.record("undo", cmd)

	return nil
}

// Redo pops the top of future, calls its Execute, and pushes it onto past.
// No-op if future is empty.
func (h *History) Redo(ctx context.Context) error {
	span, _ := childSpanFromContext(ctx, "history.redo")
	defer span.Finish()

	if len(h.future) == 0 {
		return nil
	}

	cmd := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]

	if err := cmd.Execute(); err != nil {
		span.SetTag("error", true)
		return err
	}

	h.past = append(h.past, cmd)
	h.record("redo", cmd)

	return nil
}

func (h *History) purgeDropped(cmds []Command) {
	for _, cmd := range cmds {
		owner, ok := cmd.(nodeOwner)
		if !ok {
			continue
		}

		id, owns := owner.ownedNode()
		if !owns {
			continue
		}

		if err := h.editor.Purge(id); err != nil {
			h.log.WithError(err).WithField("node", id).Warn("failed to purge dropped command's node")
		}
	}
}

func (h *History) record(action string, cmd Command) {
	if h.recorder == nil {
		return
	}

	h.recorder.Record(HistoryEvent{
		Action:    action,
		Command:   commandName(cmd),
		Timestamp: time.Now(),
	})
}

func commandName(cmd Command) string {
	switch cmd.(type) {
	case *PlaceNodeCommand:
		return "PlaceNode"
	case *DeleteNodeCommand:
		return "DeleteNode"
	case *MoveNodeCommand:
		return "MoveNode"
	case *AddConnectionCommand:
		return "AddConnection"
	case *RemoveConnectionCommand:
		return "RemoveConnection"
	case *PlaceAndConnectCommand:
		return "PlaceAndConnect"
	case *CompositeCommand:
		return "Composite"
	default:
		return "Command"
	}
}
