package editor

import (
	"testing"

	"github.com/flowmap/flowmap/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(Options{Collection: "process_workflows"})
	s.SetEditMode(true)
	return s
}

func dropPayload(t *testing.T, nodeType model.NodeType, subtype model.NodeSubtype, label string) string {
	t.Helper()
	raw, err := EncodeDragPayload(DragPayload{Type: nodeType, Subtype: subtype, Label: label})
	require.NoError(t, err)
	return raw
}

func TestDropNode(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"creates node with defaults on current page": func(t *testing.T) {
			s := newTestSession(t)
			node := s.DropNode(dropPayload(t, model.NODE_TYPE_PROCESS, model.NODE_SUBTYPE_TASK, "Review"), model.Position{X: 10, Y: 20})
			require.NotNil(t, node)
			assert.Equal(t, model.NODE_TYPE_PROCESS, node.Type)
			assert.Equal(t, "Review", node.Data.Label)
			assert.Equal(t, "Review", node.Data.Name)
			assert.Equal(t, "medium", node.Data.NodeSize)
			assert.Equal(t, model.PageID("root"), node.Data.PageID)
			assert.Contains(t, node.Id, "process-")
			assert.Len(t, s.Graph().Nodes(), 1)
		},
		"form node starts with empty target collection": func(t *testing.T) {
			s := newTestSession(t)
			node := s.DropNode(dropPayload(t, model.NODE_TYPE_PROCESS, model.NODE_SUBTYPE_FORM, "Intake Form"), model.Position{})
			require.NotNil(t, node)
			assert.Equal(t, model.NODE_SUBTYPE_FORM, node.Data.Subtype)
			assert.Equal(t, "", node.Data.TargetCollection)
		},
		"page portal node gets the default color": func(t *testing.T) {
			s := newTestSession(t)
			node := s.DropNode(dropPayload(t, model.NODE_TYPE_PAGE, "", "Sub Flow"), model.Position{})
			require.NotNil(t, node)
			assert.Equal(t, "#3b82f6", node.Data.Color)
			assert.Equal(t, 0, node.Data.NodeCount)
			assert.Equal(t, model.PageID(""), node.Data.TargetPageID)
		},
		"view mode drops nothing": func(t *testing.T) {
			s := newTestSession(t)
			s.SetEditMode(false)
			assert.Nil(t, s.DropNode(dropPayload(t, model.NODE_TYPE_START, "", "Start"), model.Position{}))
			assert.Empty(t, s.Graph().Nodes())
		},
		"undecodable payload drops nothing": func(t *testing.T) {
			s := newTestSession(t)
			assert.Nil(t, s.DropNode("not json", model.Position{}))
		},
	} {
		t.Run(scenario, fn)
	}
}

func TestConnect(t *testing.T) {
	seed := func(t *testing.T) *Session {
		s := newTestSession(t)
		require.NotNil(t, s.DropNode(dropPayload(t, model.NODE_TYPE_START, "", "Start"), model.Position{}))
		require.NotNil(t, s.DropNode(dropPayload(t, model.NODE_TYPE_END, "", "End"), model.Position{X: 100}))
		return s
	}
	nodeIds := func(s *Session) (string, string) {
		nodes := s.Graph().Nodes()
		return nodes[0].Id, nodes[1].Id
	}

	for scenario, fn := range map[string]func(t *testing.T){
		"creates animated edge with session default type": func(t *testing.T) {
			s := seed(t)
			src, dst := nodeIds(s)
			edge := s.Connect(model.Connection{Source: src, Target: dst, SourceHandle: model.HANDLE_BOTTOM, TargetHandle: model.HANDLE_TOP})
			require.NotNil(t, edge)
			assert.Equal(t, "bezier", edge.Type)
			assert.True(t, edge.Animated)
			assert.Equal(t, 2, edge.Style.StrokeWidth)
			assert.Equal(t, "arrowclosed", edge.MarkerEnd.Type)
			assert.Len(t, s.Graph().Edges(), 1)
		},
		"self loop rejected": func(t *testing.T) {
			s := seed(t)
			src, _ := nodeIds(s)
			assert.Nil(t, s.Connect(model.Connection{Source: src, Target: src}))
		},
		"missing endpoint rejected": func(t *testing.T) {
			s := seed(t)
			src, _ := nodeIds(s)
			assert.Nil(t, s.Connect(model.Connection{Source: src}))
			assert.Nil(t, s.Connect(model.Connection{Target: src}))
		},
		"duplicate tuple rejected": func(t *testing.T) {
			s := seed(t)
			src, dst := nodeIds(s)
			conn := model.Connection{Source: src, Target: dst, SourceHandle: model.HANDLE_RIGHT, TargetHandle: model.HANDLE_LEFT}
			require.NotNil(t, s.Connect(conn))
			assert.Nil(t, s.Connect(conn))
			// a different handle pair is a different connection
			assert.NotNil(t, s.Connect(model.Connection{Source: src, Target: dst, SourceHandle: model.HANDLE_BOTTOM, TargetHandle: model.HANDLE_TOP}))
		},
		"view mode rejected": func(t *testing.T) {
			s := seed(t)
			src, dst := nodeIds(s)
			s.SetEditMode(false)
			assert.Nil(t, s.Connect(model.Connection{Source: src, Target: dst}))
		},
	} {
		t.Run(scenario, fn)
	}
}

func TestReconnectEdge(t *testing.T) {
	s := newTestSession(t)
	require.NotNil(t, s.DropNode(dropPayload(t, model.NODE_TYPE_START, "", "Start"), model.Position{}))
	require.NotNil(t, s.DropNode(dropPayload(t, model.NODE_TYPE_PROCESS, model.NODE_SUBTYPE_TASK, "Work"), model.Position{X: 50}))
	require.NotNil(t, s.DropNode(dropPayload(t, model.NODE_TYPE_END, "", "End"), model.Position{X: 100}))
	nodes := s.Graph().Nodes()
	start, work, end := nodes[0].Id, nodes[1].Id, nodes[2].Id

	first := s.Connect(model.Connection{Source: start, Target: work, SourceHandle: model.HANDLE_BOTTOM, TargetHandle: model.HANDLE_TOP})
	require.NotNil(t, first)
	second := s.Connect(model.Connection{Source: work, Target: end, SourceHandle: model.HANDLE_BOTTOM, TargetHandle: model.HANDLE_TOP})
	require.NotNil(t, second)

	// moving onto another edge's tuple is a collision
	assert.False(t, s.ReconnectEdge(first.Id, model.Connection{Source: work, Target: end, SourceHandle: model.HANDLE_BOTTOM, TargetHandle: model.HANDLE_TOP}))

	// re-dropping an edge on its own endpoints is allowed
	assert.True(t, s.ReconnectEdge(first.Id, model.Connection{Source: start, Target: work, SourceHandle: model.HANDLE_BOTTOM, TargetHandle: model.HANDLE_TOP}))

	assert.True(t, s.ReconnectEdge(first.Id, model.Connection{Source: start, Target: end, SourceHandle: model.HANDLE_RIGHT, TargetHandle: model.HANDLE_LEFT}))
	moved, ok := s.Graph().Edge(first.Id)
	require.True(t, ok)
	assert.Equal(t, end, moved.Target)
	assert.Equal(t, model.HANDLE_RIGHT, moved.SourceHandle)
}

func TestDeleteSelected(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"deletes selected node and cascades edges": func(t *testing.T) {
			s := newTestSession(t)
			require.NotNil(t, s.DropNode(dropPayload(t, model.NODE_TYPE_START, "", "Start"), model.Position{}))
			require.NotNil(t, s.DropNode(dropPayload(t, model.NODE_TYPE_END, "", "End"), model.Position{X: 100}))
			nodes := s.Graph().Nodes()
			require.NotNil(t, s.Connect(model.Connection{Source: nodes[0].Id, Target: nodes[1].Id}))

			s.NodeClick(nodes[0].Id, false)
			removed, ok := s.DeleteSelected()
			require.True(t, ok)
			assert.Equal(t, nodes[0].Id, removed)
			assert.Len(t, s.Graph().Nodes(), 1)
			assert.Empty(t, s.Graph().Edges())
		},
		"deletes selected edge": func(t *testing.T) {
			s := newTestSession(t)
			require.NotNil(t, s.DropNode(dropPayload(t, model.NODE_TYPE_START, "", "Start"), model.Position{}))
			require.NotNil(t, s.DropNode(dropPayload(t, model.NODE_TYPE_END, "", "End"), model.Position{X: 100}))
			nodes := s.Graph().Nodes()
			edge := s.Connect(model.Connection{Source: nodes[0].Id, Target: nodes[1].Id})
			require.NotNil(t, edge)

			s.EdgeClick(edge.Id)
			removed, ok := s.DeleteSelected()
			require.True(t, ok)
			assert.Equal(t, edge.Id, removed)
			assert.Empty(t, s.Graph().Edges())
			assert.Len(t, s.Graph().Nodes(), 2)
		},
		"nothing selected deletes nothing": func(t *testing.T) {
			s := newTestSession(t)
			require.NotNil(t, s.DropNode(dropPayload(t, model.NODE_TYPE_START, "", "Start"), model.Position{}))
			_, ok := s.DeleteSelected()
			assert.False(t, ok)
		},
		"view mode deletes nothing": func(t *testing.T) {
			s := newTestSession(t)
			require.NotNil(t, s.DropNode(dropPayload(t, model.NODE_TYPE_START, "", "Start"), model.Position{}))
			s.NodeClick(s.Graph().Nodes()[0].Id, false)
			s.SetEditMode(false)
			_, ok := s.DeleteSelected()
			assert.False(t, ok)
			assert.Len(t, s.Graph().Nodes(), 1)
		},
	} {
		t.Run(scenario, fn)
	}
}

func TestNodeClickRouting(t *testing.T) {
	s := newTestSession(t)
	s.Pages().AddPage(model.Page{Id: "page-1", Name: "Intake"})
	portal := s.DropNode(dropPayload(t, model.NODE_TYPE_PAGE, "", "Intake"), model.Position{})
	require.NotNil(t, portal)
	target := model.PageID("page-1")
	data := portal.Data
	data.TargetPageID = target
	require.True(t, s.UpdateNodeData(portal.Id, data))

	// edit mode: portal click selects, does not navigate
	s.NodeClick(portal.Id, false)
	assert.Equal(t, portal.Id, s.Graph().Selection().SelectedNode())
	assert.Equal(t, model.RootPage, s.Pages().CurrentPageID())

	// view mode: portal click navigates into its page
	s.SetEditMode(false)
	s.NodeClick(portal.Id, false)
	assert.Equal(t, target, s.Pages().CurrentPageID())
}

func TestDragStop(t *testing.T) {
	s := newTestSession(t)
	node := s.DropNode(dropPayload(t, model.NODE_TYPE_START, "", "Start"), model.Position{})
	require.NotNil(t, node)

	assert.True(t, s.DragStop(node.Id, model.Position{X: 42, Y: 7}))
	moved, ok := s.Graph().Node(node.Id)
	require.True(t, ok)
	assert.Equal(t, model.Position{X: 42, Y: 7}, moved.Position)

	s.SetEditMode(false)
	assert.False(t, s.DragStop(node.Id, model.Position{X: 1, Y: 1}))
}
