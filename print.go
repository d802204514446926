package bt

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// TreePrint renders the subtree rooted at id the way you'd see it from the
// tree command: kind, display name, a validity glyph, and the saved
// resumption index on a composite that is mid-Running.
func (e *EditorState) TreePrint(id NodeID) string {
	tree := tp.New()
	e.printNode(id, tree)

	return tree.String()
}

func (e *EditorState) printNode(id NodeID, tree tp.Tree) {
	n, ok := e.Node(id)
	if !ok {
		tree.AddNode(fmt.Sprintf("<stale %s>", id))
		return
	}

	label := fmt.Sprintf("%s: %s", n.Kind, n.DisplayName)

	if !e.CheckSetupValidity(id) {
		label += " [invalid]"
	}

	if n.Kind.IsComposite() && n.lastRunningChildIndex >= 0 {
		label += fmt.Sprintf(" (resume@%d)", n.lastRunningChildIndex)
	}

	if len(n.children) == 0 {
		tree.AddNode(label)
		return
	}

	branch := tree.AddBranch(label)
	for _, c := range n.children {
		e.printNode(c, branch)
	}
}
