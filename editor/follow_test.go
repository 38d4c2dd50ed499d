package editor

import (
	"testing"

	"github.com/flowmap/flowmap/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// followFixture builds start -> work -> end wired top-to-bottom, with a
// side branch hanging off work's right handle.
func followFixture(t *testing.T) (*Session, []string, *[]FitViewRequest) {
	t.Helper()
	fits := &[]FitViewRequest{}
	s := NewSession(Options{FitView: func(req FitViewRequest) {
		*fits = append(*fits, req)
	}})
	s.SetEditMode(true)

	ids := make([]string, 0, 4)
	for _, def := range []struct {
		nodeType    model.NodeType
		label       string
		description string
	}{
		{model.NODE_TYPE_START, "Start", "Entry point"},
		{model.NODE_TYPE_PROCESS, "Work", ""},
		{model.NODE_TYPE_END, "End", "Done"},
		{model.NODE_TYPE_PROCESS, "Branch", ""},
	} {
		node := s.DropNode(dropPayload(t, def.nodeType, "", def.label), model.Position{})
		require.NotNil(t, node)
		if def.description != "" {
			data := node.Data
			data.Description = def.description
			require.True(t, s.UpdateNodeData(node.Id, data))
		}
		ids = append(ids, node.Id)
	}
	start, work, end, branch := ids[0], ids[1], ids[2], ids[3]
	require.NotNil(t, s.Connect(model.Connection{Source: start, Target: work, SourceHandle: model.HANDLE_BOTTOM, TargetHandle: model.HANDLE_TOP}))
	require.NotNil(t, s.Connect(model.Connection{Source: work, Target: end, SourceHandle: model.HANDLE_BOTTOM, TargetHandle: model.HANDLE_TOP}))
	require.NotNil(t, s.Connect(model.Connection{Source: work, Target: branch, SourceHandle: model.HANDLE_RIGHT, TargetHandle: model.HANDLE_LEFT}))
	return s, ids, fits
}


func TestFollowMode(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"toggle focuses the start node": func(t *testing.T) {
			s, ids, _ := followFixture(t)
			assert.True(t, s.ToggleFollowMode())
			assert.Equal(t, ids[0], s.FocusedNodeId())
			node, ok := s.Graph().Node(ids[0])
			require.True(t, ok)
			assert.Contains(t, node.Class, "focused")
		},
		"toggle off clears focus": func(t *testing.T) {
			s, ids, _ := followFixture(t)
			s.EnableFollowMode()
			assert.False(t, s.ToggleFollowMode())
			assert.False(t, s.IsFollowMode())
			assert.Empty(t, s.FocusedNodeId())
			node, _ := s.Graph().Node(ids[0])
			assert.NotContains(t, node.Class, "focused")
		},
		"navigate follows outgoing handle": func(t *testing.T) {
			s, ids, _ := followFixture(t)
			s.EnableFollowMode()
			require.True(t, s.Navigate(DIRECTION_DOWN))
			assert.Equal(t, ids[1], s.FocusedNodeId())
			require.True(t, s.Navigate(DIRECTION_RIGHT))
			assert.Equal(t, ids[3], s.FocusedNodeId())
		},
		"navigate falls back to incoming handle": func(t *testing.T) {
			s, ids, _ := followFixture(t)
			s.EnableFollowMode()
			require.True(t, s.Navigate(DIRECTION_DOWN))
			// work has no outgoing edge on its top handle, but the edge
			// from start lands there
			require.True(t, s.Navigate(DIRECTION_UP))
			assert.Equal(t, ids[0], s.FocusedNodeId())
		},
		"navigate with no edge on the handle stays put": func(t *testing.T) {
			s, ids, _ := followFixture(t)
			s.EnableFollowMode()
			assert.False(t, s.Navigate(DIRECTION_LEFT))
			assert.Equal(t, ids[0], s.FocusedNodeId())
		},
		"arrow keys only consumed in follow mode": func(t *testing.T) {
			s, ids, _ := followFixture(t)
			assert.False(t, s.HandleKey("ArrowDown"))
			s.EnableFollowMode()
			assert.True(t, s.HandleKey("ArrowDown"))
			assert.Equal(t, ids[1], s.FocusedNodeId())
			assert.False(t, s.HandleKey("Enter"))
		},
		"focus requests a fit view animation": func(t *testing.T) {
			s, ids, fits := followFixture(t)
			s.EnableFollowMode()
			require.True(t, s.Navigate(DIRECTION_DOWN))
			require.NotEmpty(t, *fits)
			req := (*fits)[len(*fits)-1]
			assert.Equal(t, ids[1], req.NodeId)
			assert.Equal(t, 0.3, req.Padding)
			assert.Equal(t, 1.5, req.MaxZoom)
			assert.Equal(t, 1.2, req.MinZoom)
		},
		"overlay falls back when description is empty": func(t *testing.T) {
			s, _, _ := followFixture(t)
			s.EnableFollowMode()
			focused, ok := s.FocusedNode()
			require.True(t, ok)
			assert.Equal(t, "Entry point", focused.Description)

			require.True(t, s.Navigate(DIRECTION_DOWN))
			focused, ok = s.FocusedNode()
			require.True(t, ok)
			assert.Equal(t, "Work", focused.Label)
			assert.Equal(t, "No description available for this node.", focused.Description)
		},
	} {
		t.Run(scenario, fn)
	}
}
