// Package bt implements the core of a visual behavior-tree authoring and
// execution system: a tickable, resumable tree of composite and leaf nodes,
// and a reversible command history that mutates the tree's topology and
// layout under undo/redo.
//
// The tick engine and the editor command model share one arena-backed node
// store (EditorState): nodes are referenced by generation-tagged NodeID
// rather than by pointer, so a stale reference into a purged node is
// detectable instead of dangling.
package bt
