package bt

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type slotState int

const (
	slotEmpty slotState = iota
	slotLive
	slotRecycled
)

// nodeSlot is one arena cell. Each slot is heap-allocated individually and
// referenced through a *nodeSlot, so growing EditorState.slots never
// invalidates a *Node obtained earlier in the same tick or command.
type nodeSlot struct {
	node       Node
	generation uint32
	state      slotState
}

// EditorState owns every Node — live or recycled — reachable from this
// editor instance. The recycle bin from spec §4.4 is not a separate
// container; it is the slotRecycled flag on a slot, per the arena design in
// spec §9.
type EditorState struct {
	SessionID uuid.UUID

	slots    []*nodeSlot
	freeList []uint32 // zero-based slot indices available for reuse

	catalog *Catalog
	log     logrus.FieldLogger
}

// NewEditorState creates an editor backed by catalog. catalog must not be
// nil; the catalog is the only supported instantiation path (spec §4.3).
func NewEditorState(catalog *Catalog) *EditorState {
	return &EditorState{
		SessionID: uuid.New(),
		catalog:   catalog,
		log:       logrus.StandardLogger().WithField("component", "editor"),
	}
}

// SetLogger overrides the editor's structured logger.
func (e *EditorState) SetLogger(log logrus.FieldLogger) {
	if log != nil {
		e.log = log
	}
}

func (e *EditorState) resolve(id NodeID) (*nodeSlot, bool) {
	if id.IsNil() || int(id.index) > len(e.slots) {
		return nil, false
	}

	slot := e.slots[id.index-1]
	if slot.generation != id.generation {
		return nil, false
	}

	return slot, true
}

// Node returns a stable pointer to the live node identified by id, or
// (nil, false) if id is nil, stale (purged/regenerated), or not currently
// live (e.g. it is in the recycle bin).
func (e *EditorState) Node(id NodeID) (*Node, bool) {
	slot, ok := e.resolve(id)
	if !ok || slot.state != slotLive {
		return nil, false
	}

	return &slot.node, true
}

// AnyNode resolves id regardless of live/recycled state, so a caller can
// reach a node while it sits in the recycle bin.
func (e *EditorState) AnyNode(id NodeID) (*Node, bool) {
	slot, ok := e.resolve(id)
	if !ok || slot.state == slotEmpty {
		return nil, false
	}

	return &slot.node, true
}

func (e *EditorState) mustLive(id NodeID) *Node {
	n, ok := e.Node(id)
	guaranteeOrDie(ok, "bt: operation on non-live node %s", id)

	return n
}

func (e *EditorState) alloc(n Node) NodeID {
	if len(e.freeList) > 0 {
		idx := e.freeList[len(e.freeList)-1]
		e.freeList = e.freeList[:len(e.freeList)-1]

		slot := e.slots[idx]
		slot.generation++
		slot.node = n
		slot.state = slotLive

		id := NodeID{index: idx + 1, generation: slot.generation}
		slot.node.id = id

		return id
	}

	slot := &nodeSlot{node: n, generation: 1, state: slotLive}
	e.slots = append(e.slots, slot)

	id := NodeID{index: uint32(len(e.slots)), generation: 1}
	slot.node.id = id

	return id
}

// PlaceNode creates a new live node by cloning the named catalog prototype
// at pos and returns its identity.
func (e *EditorState) PlaceNode(kind string, pos Point2D) (NodeID, error) {
	proto, err := e.catalog.Clone(kind, pos)
	if err != nil {
		return NodeID{}, err
	}

	id := e.alloc(proto)
	e.log.WithFields(logrus.Fields{"node": id, "kind": kind}).Debug("placed node")

	return id, nil
}

// Recycle moves a node from the live set to the recycle bin. The caller
// (typically DeleteNode's Execute) must have already detached the node from
// its parent; violating this precondition is a programming error. Only
// this node's slot is marked recycled: its own children, if any, stay
// attached to it and stay in the live set — DeleteNode only ever detaches
// the deleted node from its parent, never from its own children (spec S4).
func (e *EditorState) Recycle(id NodeID) error {
	slot, ok := e.resolve(id)
	if !ok || slot.state != slotLive {
		return notLiveErr(id)
	}

	guaranteeOrDie(slot.node.parent.IsNil(), "bt: Recycle precondition violated: node %s still has a parent", id)

	slot.state = slotRecycled
	e.log.WithField("node", id).Debug("recycled node")

	return nil
}

// Restore moves a node from the recycle bin back to the live set.
func (e *EditorState) Restore(id NodeID) error {
	slot, ok := e.resolve(id)
	if !ok || slot.state != slotRecycled {
		return notRecycledErr(id)
	}

	slot.state = slotLive
	e.log.WithField("node", id).Debug("restored node")

	return nil
}

// Purge permanently destroys a node. Only History calls this, when a
// command that exclusively owned the node is dropped from the stack.
func (e *EditorState) Purge(id NodeID) error {
	slot, ok := e.resolve(id)
	if !ok || slot.state == slotEmpty {
		return notLiveErr(id)
	}

	idx := id.index - 1
	slot.node = Node{}
	slot.state = slotEmpty
	e.freeList = append(e.freeList, idx)
	e.log.WithField("node", id).Debug("purged node")

	return nil
}

// IsLive reports whether id currently resolves to a live node.
func (e *EditorState) IsLive(id NodeID) bool {
	_, ok := e.Node(id)
	return ok
}

// IsRecycled reports whether id currently resolves to a recycled node.
func (e *EditorState) IsRecycled(id NodeID) bool {
	slot, ok := e.resolve(id)
	return ok && slot.state == slotRecycled
}
