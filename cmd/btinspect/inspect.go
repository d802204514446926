package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	bt "github.com/peterhyun/bt"
	"github.com/peterhyun/bt/config"
)

var (
	colourHeader = tcell.ColorYellow
	colourText   = tcell.ColorWhite
)

type inspectorState struct {
	app       *tview.Application
	editor    *bt.EditorState
	catalog   *bt.Catalog
	history   *bt.History
	root      bt.NodeID
	lastChild bt.NodeID // most recently placed-under-root node; target of delete/move
	treeView  *tview.TextView
	statusBar *tview.TextView
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Open an interactive terminal session against a catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(catalogPath)
		if err != nil {
			return err
		}

		cat := bt.NewCatalog()
		if err := cfg.Apply(cat, nil); err != nil {
			return err
		}

		editor := bt.NewEditorState(cat)

		root, err := editor.PlaceNode("Sequence", bt.Point2D{})
		if err != nil {
			return fmt.Errorf("inspect: placing root: %w", err)
		}

		rootNode, ok := editor.Node(root)
		if !ok {
			return fmt.Errorf("inspect: root node %s vanished immediately after placement", root)
		}

		rootNode.IsRoot = true

		state := &inspectorState{
			app:     tview.NewApplication(),
			editor:  editor,
			catalog: cat,
			history: bt.NewHistory(editor),
			root:    root,
		}

		return state.run()
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func (s *inspectorState) run() error {
	s.treeView = tview.NewTextView().
		SetDynamicColors(false).
		SetChangedFunc(func() { s.app.Draw() })
	s.treeView.SetBorder(true).SetTitle(" Tree ").SetTitleColor(colourHeader)

	s.statusBar = tview.NewTextView().SetTextColor(colourText)

	menu := tview.NewList().
		AddItem("Place child under root", "Adds a new leaf to the root Sequence", 'p', s.placeUnderRoot).
		AddItem("Delete last placed node", "Detaches and recycles the most recently placed node", 'd', s.deleteLastChild).
		AddItem("Move last placed node", "Nudges the most recently placed node one unit right and re-sorts its siblings", 'm', s.moveLastChild).
		AddItem("Tick root", "Ticks the tree rooted at the Sequence", 't', s.tick).
		AddItem("Undo", "Undoes the last command", 'u', s.undo).
		AddItem("Redo", "Redoes the last undone command", 'r', s.redo).
		AddItem("Quit", "Exits the inspector", 'q', func() { s.app.Stop() })
	menu.SetBorder(true).SetTitle(" Commands ").SetTitleColor(colourHeader)

	flex := tview.NewFlex().
		AddItem(menu, 30, 1, true).
		AddItem(s.treeView, 0, 2, false)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(flex, 0, 1, true).
		AddItem(s.statusBar, 1, 1, false)

	s.refresh()

	return s.app.SetRoot(layout, true).EnableMouse(true).Run()
}

func (s *inspectorState) refresh() {
	s.treeView.SetText(s.editor.TreePrint(s.root))

	past, future := s.history.Len()
	s.statusBar.SetText(fmt.Sprintf("history: %d undoable, %d redoable", past, future))
}

func (s *inspectorState) placeUnderRoot() {
	kind, ok := s.firstLeafKind()
	if !ok {
		s.statusBar.SetText("error: no leaf kinds registered in catalog")
		return
	}

	cmd := bt.NewPlaceAndConnect(s.editor, kind, bt.Point2D{}, s.root, false)
	if err := s.history.Push(context.Background(), cmd); err != nil {
		s.statusBar.SetText("error: " + err.Error())
		return
	}

	s.lastChild = cmd.Node()
	s.refresh()
}

func (s *inspectorState) deleteLastChild() {
	if s.lastChild.IsNil() || !s.editor.IsLive(s.lastChild) {
		s.statusBar.SetText("error: no placed node to delete")
		return
	}

	cmd := bt.NewDeleteNode(s.editor, s.lastChild)
	if err := s.history.Push(context.Background(), cmd); err != nil {
		s.statusBar.SetText("error: " + err.Error())
		return
	}

	s.lastChild = bt.NodeID{}
	s.refresh()
}

func (s *inspectorState) moveLastChild() {
	if s.lastChild.IsNil() || !s.editor.IsLive(s.lastChild) {
		s.statusBar.SetText("error: no placed node to move")
		return
	}

	n, ok := s.editor.Node(s.lastChild)
	if !ok {
		s.statusBar.SetText("error: node vanished")
		return
	}

	prevPos := n.Position
	newPos := bt.Point2D{X: prevPos.X + 1}

	cmd := bt.NewMoveNode(s.editor, s.lastChild, newPos, prevPos)
	if err := s.history.Push(context.Background(), cmd); err != nil {
		s.statusBar.SetText("error: " + err.Error())
		return
	}

	s.refresh()
}

// firstLeafKind returns an arbitrary non-composite catalog name, since the
// inspector has no form for picking a kind by name yet.
func (s *inspectorState) firstLeafKind() (string, bool) {
	for _, name := range s.catalog.Names() {
		if name != "Sequence" && name != "Fallback" {
			return name, true
		}
	}

	return "", false
}

func (s *inspectorState) tick() {
	span := opentracing.GlobalTracer().StartSpan("btinspect::tick")
	ctx := opentracing.ContextWithSpan(context.Background(), span)
	defer span.Finish()

	result, err := s.editor.Tick(ctx, s.root)
	if err != nil {
		s.statusBar.SetText("error: " + err.Error())
		return
	}

	s.statusBar.SetText("tick result: " + result.String())
	s.refresh()
}

func (s *inspectorState) undo() {
	if err := s.history.Undo(context.Background()); err != nil {
		s.statusBar.SetText("error: " + err.Error())
		return
	}

	s.refresh()
}

func (s *inspectorState) redo() {
	if err := s.history.Redo(context.Background()); err != nil {
		s.statusBar.SetText("error: " + err.Error())
		return
	}

	s.refresh()
}
