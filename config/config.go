// Package config loads catalog bootstrap data for a host process — which
// leaf kinds exist and their default dimensions, plus child-count range
// overrides for the built-in Sequence and Fallback composites — from a
// TOML file. The core bt package itself takes no configuration; this exists
// for cmd/btinspect and any other host that wants a declarative catalog
// instead of calling bt.Catalog.Register in code.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	bt "github.com/peterhyun/bt"
)

// Dimensions is the TOML representation of a bt.Point2D.
type Dimensions struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// ChildRange is the TOML representation of a bt.IntInterval.
type ChildRange struct {
	Min int `toml:"min"`
	Max int `toml:"max"`
}

// LeafSpec describes one leaf kind to register on the catalog. The leaf's
// Tick function is supplied by the host at Apply time, keyed by Name — TOML
// can describe shape, not behavior.
type LeafSpec struct {
	Name       string     `toml:"name"`
	Dimensions Dimensions `toml:"dimensions"`
}

// Catalog is the root TOML document: built-in composite overrides plus a
// list of leaf kinds.
type Catalog struct {
	SequenceChildRange ChildRange `toml:"sequence_child_range"`
	FallbackChildRange ChildRange `toml:"fallback_child_range"`
	Leaves             []LeafSpec `toml:"leaf"`
}

// Load parses a catalog bootstrap file at path.
func Load(path string) (*Catalog, error) {
	var cfg Catalog

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}

	return &cfg, nil
}

// Apply registers the built-in composites (with any child-range override)
// and every leaf in cfg.Leaves onto cat, dispatching each leaf's Tick
// function through ticks by LeafSpec.Name. A leaf named in cfg.Leaves with
// no corresponding entry in ticks is registered as a no-op success leaf.
func (cfg *Catalog) Apply(cat *bt.Catalog, ticks map[string]bt.LeafTickFunc) error {
	if err := bt.RegisterBuiltins(cat); err != nil {
		return fmt.Errorf("config: apply builtins: %w", err)
	}

	if err := overrideChildRange(cat, "Sequence", cfg.SequenceChildRange); err != nil {
		return fmt.Errorf("config: override Sequence child range: %w", err)
	}

	if err := overrideChildRange(cat, "Fallback", cfg.FallbackChildRange); err != nil {
		return fmt.Errorf("config: override Fallback child range: %w", err)
	}

	for _, spec := range cfg.Leaves {
		tick, ok := ticks[spec.Name]

		var proto bt.Node
		if ok {
			proto = bt.ActionLeaf(spec.Name, spec.Name, tick)
		} else {
			proto = bt.NoopLeaf(spec.Name)
		}

		if spec.Dimensions.X != 0 || spec.Dimensions.Y != 0 {
			proto.Dimensions = bt.Point2D{X: spec.Dimensions.X, Y: spec.Dimensions.Y}
			proto.InitialDimensions = proto.Dimensions
		}

		if err := cat.Register(spec.Name, proto); err != nil {
			return fmt.Errorf("config: register leaf %q: %w", spec.Name, err)
		}
	}

	return nil
}

// overrideChildRange re-registers name with rng as its child-count range, if
// rng was actually set in the TOML document (both bounds zero means "use
// the built-in default").
func overrideChildRange(cat *bt.Catalog, name string, rng ChildRange) error {
	if rng.Min == 0 && rng.Max == 0 {
		return nil
	}

	proto, err := cat.Clone(name, bt.Point2D{})
	if err != nil {
		return err
	}

	proto.ChildCountRange = bt.IntInterval{Min: rng.Min, Max: rng.Max}

	return cat.Register(name, proto)
}
