package editor

import (
	"time"

	"github.com/flowmap/flowmap/model"
)

// Direction is an arrow-key navigation direction in follow mode.
type Direction string

const DIRECTION_UP Direction = "up"
const DIRECTION_DOWN Direction = "down"
const DIRECTION_LEFT Direction = "left"
const DIRECTION_RIGHT Direction = "right"

// directionHandles maps a navigation direction to the node handle the
// traversed edge must be attached to.
var directionHandles = map[Direction]model.Handle{
	DIRECTION_UP:    model.HANDLE_TOP,
	DIRECTION_DOWN:  model.HANDLE_BOTTOM,
	DIRECTION_LEFT:  model.HANDLE_LEFT,
	DIRECTION_RIGHT: model.HANDLE_RIGHT,
}

var arrowKeyDirections = map[string]Direction{
	"ArrowUp":    DIRECTION_UP,
	"ArrowDown":  DIRECTION_DOWN,
	"ArrowLeft":  DIRECTION_LEFT,
	"ArrowRight": DIRECTION_RIGHT,
}

const noDescriptionText = "No description available for this node."

type followState struct {
	enabled          bool
	focusedNodeId    string
	showDescriptions bool
}

// FocusedNode describes the node the follow-mode overlay presents.
type FocusedNode struct {
	Id          string
	Label       string
	Description string
}

func (s *Session) IsFollowMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.follow.enabled
}

func (s *Session) FocusedNodeId() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.follow.focusedNodeId
}

func (s *Session) ShowDescriptions() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.follow.showDescriptions
}

func (s *Session) SetShowDescriptions(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.follow.showDescriptions = show
}

// ToggleFollowMode flips follow mode. Enabling focuses the start node,
// falling back to the first node on the canvas; disabling clears the
// focus entirely.
func (s *Session) ToggleFollowMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.follow.enabled {
		s.disableFollow()
		return false
	}
	s.follow.enabled = true
	s.follow.showDescriptions = true
	if start := s.startNodeId(); start != "" {
		s.focusNode(start)
	}
	return true
}

func (s *Session) EnableFollowMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.follow.enabled {
		return
	}
	s.follow.enabled = true
	s.follow.showDescriptions = true
	if start := s.startNodeId(); start != "" {
		s.focusNode(start)
	}
}

func (s *Session) DisableFollowMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disableFollow()
}

func (s *Session) disableFollow() {
	s.follow.enabled = false
	s.follow.focusedNodeId = ""
	s.graph.ClearFocusClass()
}

func (s *Session) startNodeId() string {
	if starts := s.graph.NodesByType(model.NODE_TYPE_START); len(starts) > 0 {
		return starts[0].Id
	}
	if nodes := s.graph.Nodes(); len(nodes) > 0 {
		return nodes[0].Id
	}
	return ""
}

// FocusNode moves the follow-mode focus onto a node and asks the view to
// animate to it.
func (s *Session) FocusNode(nodeId string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.follow.enabled {
		return false
	}
	return s.focusNode(nodeId)
}

func (s *Session) focusNode(nodeId string) bool {
	if _, ok := s.graph.Node(nodeId); !ok {
		return false
	}
	s.follow.focusedNodeId = nodeId
	s.graph.ApplyFocusClass(nodeId)
	if s.fitView != nil {
		s.fitView(FitViewRequest{
			NodeId:   nodeId,
			Duration: 400 * time.Millisecond,
			Padding:  0.3,
			MaxZoom:  1.5,
			MinZoom:  1.2,
		})
	}
	return true
}

// Navigate follows the edge attached to the focused node on the handle
// matching the direction. Outgoing edges win over incoming ones.
func (s *Session) Navigate(direction Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.follow.enabled || s.follow.focusedNodeId == "" {
		return false
	}
	handle, ok := directionHandles[direction]
	if !ok {
		return false
	}
	next := s.connectedNodeId(s.follow.focusedNodeId, handle)
	if next == "" {
		return false
	}
	return s.focusNode(next)
}

func (s *Session) connectedNodeId(nodeId string, handle model.Handle) string {
	for _, edge := range s.graph.EdgesBySource(nodeId) {
		if edge.SourceHandle == handle {
			return edge.Target
		}
	}
	for _, edge := range s.graph.EdgesByTarget(nodeId) {
		if edge.TargetHandle == handle {
			return edge.Source
		}
	}
	return ""
}

// HandleKey consumes arrow keys while follow mode is active. It reports
// whether the key was handled so the caller can stop its propagation.
func (s *Session) HandleKey(key string) bool {
	if !s.IsFollowMode() {
		return false
	}
	direction, ok := arrowKeyDirections[key]
	if !ok {
		return false
	}
	s.Navigate(direction)
	return true
}

// FocusedNode returns the overlay content for the focused node, or false
// when nothing is focused.
func (s *Session) FocusedNode() (FocusedNode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.follow.focusedNodeId == "" {
		return FocusedNode{}, false
	}
	node, ok := s.graph.Node(s.follow.focusedNodeId)
	if !ok {
		return FocusedNode{}, false
	}
	description := node.Data.Description
	if description == "" {
		description = noDescriptionText
	}
	return FocusedNode{
		Id:          node.Id,
		Label:       node.Data.Label,
		Description: description,
	}, true
}
