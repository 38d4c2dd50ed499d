package editor

import (
	"fmt"
	"time"

	"github.com/flowmap/flowmap/graph"
	"github.com/flowmap/flowmap/logger"
	"github.com/flowmap/flowmap/model"
	"github.com/flowmap/flowmap/persistence"
	"github.com/flowmap/flowmap/util"
	"go.uber.org/zap"
)

const defaultPageColor = "#3b82f6"

// DragPayload is the transfer data of a palette drag. The palette encodes
// it as JSON; DropNode decodes it back.
type DragPayload struct {
	Type    model.NodeType    `json:"type"`
	Subtype model.NodeSubtype `json:"subtype,omitempty"`
	Label   string            `json:"label"`
}

var dragEncDec = util.NewJsonEncoderDecoder[DragPayload]()

func EncodeDragPayload(payload DragPayload) (string, error) {
	b, err := dragEncDec.Encode(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func DecodeDragPayload(raw string) (DragPayload, error) {
	decoded, err := dragEncDec.Decode([]byte(raw))
	if err != nil {
		return DragPayload{}, err
	}
	return *decoded, nil
}

// DropNode materializes a palette drop on the current page. View mode and
// undecodable payloads drop nothing.
func (s *Session) DropNode(raw string, pos model.Position) *model.Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.editMode {
		return nil
	}
	payload, err := DecodeDragPayload(raw)
	if err != nil || payload.Type == "" {
		logger.Warn("ignoring undecodable drop payload", zap.String("session", s.Id), zap.Error(err))
		return nil
	}

	node := model.Node{
		Id:       s.newNodeId(payload.Type),
		Type:     payload.Type,
		Position: pos,
		Data: model.NodeData{
			Label:       payload.Label,
			Name:        payload.Label,
			Description: "",
			NodeSize:    s.defaultNodeSize,
			PageID:      s.pages.CurrentPageID(),
			Subtype:     payload.Subtype,
		},
	}
	switch {
	case payload.Type == model.NODE_TYPE_PROCESS && payload.Subtype == model.NODE_SUBTYPE_FORM:
		node.Data.TargetCollection = ""
	case payload.Type == model.NODE_TYPE_PAGE:
		node.Data.TargetPageID = ""
		node.Data.NodeCount = 0
		node.Data.Color = defaultPageColor
	}

	s.graph.AddNode(node)
	s.markDirty()
	s.adapter.EmitChange()
	return &node
}

// newNodeId derives an id from the drop timestamp; same-millisecond drops
// of the same type get a counter suffix.
func (s *Session) newNodeId(nodeType model.NodeType) string {
	base := fmt.Sprintf("%s-%d", nodeType, time.Now().UnixMilli())
	id := base
	for n := 1; ; n++ {
		if _, exists := s.graph.Node(id); !exists {
			return id
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

// Connect validates a pending connection gesture and creates the edge.
// Rejected gestures return nil.
func (s *Session) Connect(conn model.Connection) *model.Edge {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.validConnection(conn, "") {
		return nil
	}

	edge := model.Edge{
		Id:           persistence.NewEdgeId(),
		Source:       conn.Source,
		Target:       conn.Target,
		SourceHandle: conn.SourceHandle,
		TargetHandle: conn.TargetHandle,
		Type:         s.defaultEdgeType,
		Animated:     true,
		Style:        model.EdgeStyle{StrokeWidth: 2},
		MarkerEnd:    model.EdgeMarker{Type: "arrowclosed"},
		Data:         model.EdgeData{Label: ""},
	}
	s.graph.AddEdge(edge)
	s.markDirty()
	s.adapter.EmitChange()
	return &edge
}

// ReconnectEdge moves an existing edge onto new endpoints, subject to the
// same validation as Connect. The edge being dragged does not collide
// with its own old endpoints.
func (s *Session) ReconnectEdge(edgeId string, conn model.Connection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.validConnection(conn, edgeId) {
		return false
	}
	if !s.graph.ReconnectEdge(edgeId, conn) {
		return false
	}
	s.markDirty()
	s.adapter.EmitChange()
	return true
}

func (s *Session) validConnection(conn model.Connection, excludeEdgeId string) bool {
	if !s.editMode {
		return false
	}
	if conn.Source == "" || conn.Target == "" {
		return false
	}
	if conn.Source == conn.Target {
		return false
	}
	if s.graph.HasConnection(conn, excludeEdgeId) {
		return false
	}
	return true
}

// NodeClick routes a node click. In view mode a page portal navigates
// into its target page; everything else drives selection.
func (s *Session) NodeClick(nodeId string, ctrlKey bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.graph.Node(nodeId)
	if !ok {
		return
	}
	if !s.editMode && node.Type == model.NODE_TYPE_PAGE && node.Data.TargetPageID != "" {
		s.pages.NavigateToPage(node.Data.TargetPageID)
		return
	}
	if ctrlKey {
		s.graph.CtrlClickNode(nodeId)
	} else {
		s.graph.ClickNode(nodeId)
	}
}

func (s *Session) EdgeClick(edgeId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.ClickEdge(edgeId)
}

func (s *Session) PaneClick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.ClickPane()
}

// DragStop commits a node's position after a drag gesture.
func (s *Session) DragStop(nodeId string, pos model.Position) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.editMode {
		return false
	}
	if !s.graph.MoveNode(nodeId, pos) {
		return false
	}
	s.markDirty()
	s.adapter.EmitChange()
	return true
}

// UpdateNodeData replaces the selected-for-edit node's data fields.
func (s *Session) UpdateNodeData(nodeId string, data model.NodeData) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.editMode {
		return false
	}
	if !s.graph.UpdateNode(nodeId, graph.NodeUpdate{Data: &data}) {
		return false
	}
	s.markDirty()
	s.adapter.EmitChange()
	return true
}

// DeleteSelected removes whichever element is selected, node before edge.
// Returns the removed element's id.
func (s *Session) DeleteSelected() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.editMode {
		return "", false
	}
	sel := s.graph.Selection()
	if nodeId := sel.SelectedNode(); nodeId != "" {
		s.graph.RemoveNode(nodeId)
		s.pages.UpdatePageCounts()
		s.markDirty()
		s.adapter.EmitChange()
		return nodeId, true
	}
	if edgeId := sel.SelectedEdge(); edgeId != "" {
		s.graph.RemoveEdge(edgeId)
		s.markDirty()
		s.adapter.EmitChange()
		return edgeId, true
	}
	return "", false
}
