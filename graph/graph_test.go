package graph

import (
	"testing"

	"github.com/flowmap/flowmap/model"
	"github.com/stretchr/testify/require"
)

func testGraph() *Graph {
	g := NewGraph()
	g.AddNode(model.Node{Id: "a", Type: model.NODE_TYPE_START, Data: model.NodeData{Label: "A"}})
	g.AddNode(model.Node{Id: "b", Type: model.NODE_TYPE_PROCESS, Data: model.NodeData{Label: "B"}})
	g.AddNode(model.Node{Id: "c", Type: model.NODE_TYPE_END, Data: model.NodeData{Label: "C"}})
	g.AddEdge(model.Edge{Id: "e1", Source: "a", Target: "b", SourceHandle: model.HANDLE_RIGHT, TargetHandle: model.HANDLE_LEFT})
	g.AddEdge(model.Edge{Id: "e2", Source: "b", Target: "c", SourceHandle: model.HANDLE_BOTTOM, TargetHandle: model.HANDLE_TOP})
	return g
}

func TestGraph(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T, g *Graph){
		"remove node cascades incident edges": testRemoveNodeCascade,
		"update node keeps id and position":   testUpdateNode,
		"derived queries":                     testQueries,
		"has connection tuple check":          testHasConnection,
		"reconnect edge":                      testReconnectEdge,
	} {
		t.Run(scenario, func(t *testing.T) {
			fn(t, testGraph())
		})
	}
}

func testRemoveNodeCascade(t *testing.T, g *Graph) {
	g.ClickNode("b")
	g.RemoveNode("b")

	require.Len(t, g.Nodes(), 2)
	require.Len(t, g.Edges(), 0)
	require.Empty(t, g.Selection().SelectedNode())

	_, ok := g.Node("b")
	require.False(t, ok)
}

func testUpdateNode(t *testing.T, g *Graph) {
	data := model.NodeData{Label: "renamed", Name: "renamed"}
	ok := g.UpdateNode("a", NodeUpdate{Data: &data})
	require.True(t, ok)

	n, ok := g.Node("a")
	require.True(t, ok)
	require.Equal(t, "a", n.Id)
	require.Equal(t, "renamed", n.Data.Label)
	// position untouched when the partial omits it
	require.Equal(t, model.Position{}, n.Position)

	require.True(t, g.MoveNode("a", model.Position{X: 10, Y: 20}))
	n, _ = g.Node("a")
	require.Equal(t, float64(10), n.Position.X)

	require.False(t, g.UpdateNode("missing", NodeUpdate{}))
}

func testQueries(t *testing.T, g *Graph) {
	require.Len(t, g.NodesByType(model.NODE_TYPE_PROCESS), 1)
	require.Len(t, g.EdgesBySource("b"), 1)
	require.Len(t, g.EdgesByTarget("b"), 1)
	require.Empty(t, g.EdgesBySource("c"))
}

func testHasConnection(t *testing.T, g *Graph) {
	conn := model.Connection{Source: "a", Target: "b", SourceHandle: model.HANDLE_RIGHT, TargetHandle: model.HANDLE_LEFT}
	require.True(t, g.HasConnection(conn, ""))
	// same tuple but excluding the edge that carries it
	require.False(t, g.HasConnection(conn, "e1"))
	// different handle pair is a different tuple
	conn.SourceHandle = model.HANDLE_BOTTOM
	require.False(t, g.HasConnection(conn, ""))
}

func testReconnectEdge(t *testing.T, g *Graph) {
	ok := g.ReconnectEdge("e2", model.Connection{Source: "a", Target: "c", SourceHandle: model.HANDLE_LEFT, TargetHandle: model.HANDLE_RIGHT})
	require.True(t, ok)

	e, _ := g.Edge("e2")
	require.Equal(t, "a", e.Source)
	require.Equal(t, "c", e.Target)
	require.Equal(t, model.HANDLE_LEFT, e.SourceHandle)

	require.False(t, g.ReconnectEdge("missing", model.Connection{}))
}

func TestSelection(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T, g *Graph){
		"node and edge selection are exclusive": testSelectionExclusive,
		"ctrl click toggles multi set":          testMultiToggle,
		"pane click clears everything":          testPaneClear,
		"multi selected class follows set":      testMultiClass,
	} {
		t.Run(scenario, func(t *testing.T) {
			fn(t, testGraph())
		})
	}
}

func testSelectionExclusive(t *testing.T, g *Graph) {
	g.ClickNode("a")
	require.Equal(t, "a", g.Selection().SelectedNode())
	require.Empty(t, g.Selection().SelectedEdge())
	require.Equal(t, []string{"a"}, g.Selection().SelectedNodes())
	require.False(t, g.Selection().IsMultiSelecting())

	g.ClickEdge("e1")
	require.Equal(t, "e1", g.Selection().SelectedEdge())
	require.Empty(t, g.Selection().SelectedNode())
}

func testMultiToggle(t *testing.T, g *Graph) {
	g.CtrlClickNode("a")
	require.False(t, g.Selection().IsMultiSelecting())

	g.CtrlClickNode("b")
	require.True(t, g.Selection().IsMultiSelecting())
	require.Empty(t, g.Selection().SelectedNode())

	// toggling the same id twice restores the pre-click state
	g.CtrlClickNode("b")
	require.False(t, g.Selection().IsMultiSelecting())
	require.True(t, g.Selection().IsSelected("a"))
	require.False(t, g.Selection().IsSelected("b"))
}

func testPaneClear(t *testing.T, g *Graph) {
	g.CtrlClickNode("a")
	g.CtrlClickNode("b")
	g.ClickPane()

	require.Empty(t, g.Selection().SelectedNode())
	require.Empty(t, g.Selection().SelectedEdge())
	require.Empty(t, g.Selection().SelectedNodes())
	require.False(t, g.Selection().IsMultiSelecting())
}

func testMultiClass(t *testing.T, g *Graph) {
	g.CtrlClickNode("a")
	g.CtrlClickNode("b")

	a, _ := g.Node("a")
	b, _ := g.Node("b")
	c, _ := g.Node("c")
	require.Contains(t, a.Class, "multi-selected")
	require.Contains(t, b.Class, "multi-selected")
	require.NotContains(t, c.Class, "multi-selected")

	g.ClickNode("c")
	a, _ = g.Node("a")
	require.NotContains(t, a.Class, "multi-selected")
}
