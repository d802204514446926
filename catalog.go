package bt

import "github.com/sirupsen/logrus"

// Default dimensions and port radius, carried over from the original
// engine's TREENODE_DIMX/DIMY/PORTRADIUS constants (BehaviorTreeNode.hpp).
const (
	DefaultDimX       = 100.0
	DefaultDimY       = 50.0
	DefaultPortRadius = 2.5
)

// Default child-count ranges, carried over from SequenceNode/FallbackNode's
// MAXCHILDRENNUM constants in the original engine (both 1..10).
var (
	sequenceChildRange = IntInterval{Min: 1, Max: 10}
	fallbackChildRange = IntInterval{Min: 1, Max: 10}
)

// Catalog is a process-wide registry mapping a string kind name to a
// prototype Node. Catalog.Clone is the only supported instantiation path
// from outside the editor (spec §4.3).
type Catalog struct {
	prototypes map[string]Node
	log        logrus.FieldLogger
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		prototypes: make(map[string]Node),
		log:        logrus.StandardLogger().WithField("component", "catalog"),
	}
}

// SetLogger overrides the catalog's structured logger.
func (c *Catalog) SetLogger(log logrus.FieldLogger) {
	if log != nil {
		c.log = log
	}
}

// Register stores prototype under name. The registry rejects a prototype
// that already has children (ErrPrototypeHasChildren) — that would be a
// contradiction of spec invariant 5 ("a prototype node has empty children
// and is never ticked").
func (c *Catalog) Register(name string, prototype Node) error {
	if len(prototype.children) > 0 {
		return prototypeHasChildrenErr(name)
	}

	prototype.id = NodeID{}
	prototype.parent = NodeID{}
	prototype.Attributes = copyAttributes(prototype.Attributes)

	if prototype.Kind.IsComposite() {
		prototype.lastRunningChildIndex = -1
	}

	c.prototypes[name] = prototype
	c.log.WithField("kind", name).Debug("registered prototype")

	return nil
}

// Clone returns a fresh Node copied from the named prototype, positioned at
// pos with empty Children. It fails with ErrUnknownKind if name is not
// registered.
func (c *Catalog) Clone(name string, pos Point2D) (Node, error) {
	proto, ok := c.prototypes[name]
	if !ok {
		return Node{}, unknownKindErr(name)
	}

	clone := proto
	clone.Attributes = copyAttributes(proto.Attributes)
	clone.Position = pos
	clone.children = nil
	clone.parent = NodeID{}
	clone.lastTickedChild = NodeID{}

	if clone.Kind.IsComposite() {
		clone.lastRunningChildIndex = -1
	}

	return clone, nil
}

// Has reports whether name is registered.
func (c *Catalog) Has(name string) bool {
	_, ok := c.prototypes[name]
	return ok
}

// Names returns every registered prototype name, in no particular order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.prototypes))
	for name := range c.prototypes {
		names = append(names, name)
	}

	return names
}

// RegisterBuiltins registers the two built-in composite kinds, Sequence and
// Fallback, with the original engine's default dimensions and child-count
// ranges.
func RegisterBuiltins(c *Catalog) error {
	seq := Node{
		DisplayName:       "SequenceNode",
		Kind:              SequenceKind(),
		Dimensions:        Point2D{X: DefaultDimX, Y: DefaultDimY},
		InitialDimensions: Point2D{X: DefaultDimX, Y: DefaultDimY},
		ChildCountRange:   sequenceChildRange,
	}
	if err := c.Register("Sequence", seq); err != nil {
		return err
	}

	fb := Node{
		DisplayName:       "FallbackNode",
		Kind:              FallbackKind(),
		Dimensions:        Point2D{X: DefaultDimX, Y: DefaultDimY},
		InitialDimensions: Point2D{X: DefaultDimX, Y: DefaultDimY},
		ChildCountRange:   fallbackChildRange,
	}

	return c.Register("Fallback", fb)
}
