package graph

import (
	"strings"
)

const multiSelectedClass = "multi-selected"
const focusedClass = "focused"

// Selection tracks the focused single node, the multi-select set and the
// selected edge. Node and edge selection are mutually exclusive.
type Selection struct {
	selectedNodeId string
	selectedEdgeId string
	selectedNodes  map[string]struct{}
	multiSelecting bool
}

func newSelection() *Selection {
	return &Selection{
		selectedNodes: make(map[string]struct{}),
	}
}

func (s *Selection) SelectedNode() string {
	return s.selectedNodeId
}

func (s *Selection) SelectedEdge() string {
	return s.selectedEdgeId
}

func (s *Selection) SelectedNodes() []string {
	ids := make([]string, 0, len(s.selectedNodes))
	for id := range s.selectedNodes {
		ids = append(ids, id)
	}
	return ids
}

func (s *Selection) IsSelected(nodeId string) bool {
	_, ok := s.selectedNodes[nodeId]
	return ok
}

func (s *Selection) IsMultiSelecting() bool {
	return s.multiSelecting
}

func (s *Selection) HasSelection() bool {
	return s.selectedNodeId != "" || s.selectedEdgeId != ""
}

// ClickNode applies the plain-click transition: the node becomes the sole
// selection, multi mode ends and any edge selection is dropped.
func (g *Graph) ClickNode(nodeId string) {
	s := g.selection
	s.selectedNodes = map[string]struct{}{nodeId: {}}
	s.multiSelecting = false
	s.selectedNodeId = nodeId
	s.selectedEdgeId = ""
	g.updateNodeClasses()
}

// CtrlClickNode toggles the node's membership in the multi-select set.
// Multi mode holds iff more than one node is selected; entering multi mode
// clears the single-node selection.
func (g *Graph) CtrlClickNode(nodeId string) {
	s := g.selection
	if _, ok := s.selectedNodes[nodeId]; ok {
		delete(s.selectedNodes, nodeId)
	} else {
		s.selectedNodes[nodeId] = struct{}{}
	}
	s.multiSelecting = len(s.selectedNodes) > 1
	if s.multiSelecting {
		s.selectedNodeId = ""
	}
	s.selectedEdgeId = ""
	g.updateNodeClasses()
}

func (g *Graph) ClickEdge(edgeId string) {
	s := g.selection
	s.selectedEdgeId = edgeId
	s.selectedNodeId = ""
	g.updateNodeClasses()
}

// ClickPane clears every piece of selection state.
func (g *Graph) ClickPane() {
	s := g.selection
	s.selectedNodeId = ""
	s.selectedEdgeId = ""
	s.selectedNodes = make(map[string]struct{})
	s.multiSelecting = false
	g.updateNodeClasses()
}

func (s *Selection) reset() {
	s.selectedNodeId = ""
	s.selectedEdgeId = ""
	s.selectedNodes = make(map[string]struct{})
	s.multiSelecting = false
}

func (s *Selection) dropNode(nodeId string) {
	if s.selectedNodeId == nodeId {
		s.selectedNodeId = ""
	}
	delete(s.selectedNodes, nodeId)
	s.multiSelecting = len(s.selectedNodes) > 1
}

func (s *Selection) dropEdge(edgeId string) {
	if s.selectedEdgeId == edgeId {
		s.selectedEdgeId = ""
	}
}

// Reset clears selection without touching node classes; the persistence
// load path uses it before replacing the graph wholesale.
func (g *Graph) ResetSelection() {
	g.selection.reset()
}

// updateNodeClasses recomputes the multi-selected class on every node:
// present iff the node is in the selection set while multi mode is active.
func (g *Graph) updateNodeClasses() {
	for i := range g.nodes {
		cls := StripClass(g.nodes[i].Class, multiSelectedClass)
		if g.selection.multiSelecting && g.selection.IsSelected(g.nodes[i].Id) {
			cls = AppendClass(cls, multiSelectedClass)
		}
		g.nodes[i].Class = cls
	}
}

// ApplyFocusClass moves the focused class to the named node, removing it
// everywhere else. Follow mode drives this on every navigation step.
func (g *Graph) ApplyFocusClass(nodeId string) {
	for i := range g.nodes {
		cls := StripClass(g.nodes[i].Class, focusedClass)
		if g.nodes[i].Id == nodeId {
			cls = AppendClass(cls, focusedClass)
		}
		g.nodes[i].Class = cls
	}
}

func (g *Graph) ClearFocusClass() {
	for i := range g.nodes {
		g.nodes[i].Class = StripClass(g.nodes[i].Class, focusedClass)
	}
}

// StripClass removes every occurrence of token from a space-separated
// class string.
func StripClass(class string, token string) string {
	if class == "" {
		return ""
	}
	fields := strings.Fields(class)
	kept := fields[:0]
	for _, f := range fields {
		if f != token {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

func AppendClass(class string, token string) string {
	if class == "" {
		return token
	}
	return class + " " + token
}
