package persistence

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/flowmap/flowmap/graph"
	"github.com/flowmap/flowmap/model"
)

const unnamedLabel = "Unnamed"
const defaultEdgeKind = "step"
const defaultStrokeWidth = 2
const arrowClosedMarker = "arrowclosed"

type rawNode struct {
	Id       string         `json:"id"`
	Type     model.NodeType `json:"type"`
	Position model.Position `json:"position"`
	Class    string         `json:"class"`
	Data     model.NodeData `json:"data"`
}

type rawEdge struct {
	Id           string            `json:"id"`
	Source       string            `json:"source"`
	Target       string            `json:"target"`
	SourceHandle model.Handle      `json:"sourceHandle"`
	TargetHandle model.Handle      `json:"targetHandle"`
	Type         string            `json:"type"`
	Label        string            `json:"label"`
	Animated     *bool             `json:"animated"`
	Style        *model.EdgeStyle  `json:"style"`
	MarkerEnd    *model.EdgeMarker `json:"markerEnd"`
	Data         *model.EdgeData   `json:"data"`
}

type rawFlowData struct {
	Nodes         []rawNode                       `json:"nodes"`
	Edges         []rawEdge                       `json:"edges"`
	Pages         []model.Page                    `json:"pages"`
	CurrentPageID model.PageID                    `json:"currentPageId"`
	PageViewports map[model.PageID]model.Viewport `json:"pageViewports"`
}

// normalizeNode guarantees a stable id, label/name fallbacks, an empty
// description default and no stale multi-selected class from an old save.
func normalizeNode(n rawNode, index int) model.Node {
	id := n.Id
	if id == "" {
		id = fmt.Sprintf("node-%d-%d", index, time.Now().UnixMilli())
	}
	data := n.Data
	if data.Label == "" {
		data.Label = unnamedLabel
	}
	if data.Name == "" {
		data.Name = data.Label
	}
	return model.Node{
		Id:       id,
		Type:     n.Type,
		Position: n.Position,
		Class:    graph.StripClass(n.Class, "multi-selected"),
		Data:     data,
	}
}

func normalizeEdge(e rawEdge) model.Edge {
	id := e.Id
	if id == "" {
		id = NewEdgeId()
	}
	kind := e.Type
	if kind == "" {
		kind = defaultEdgeKind
	}
	// animated defaults true unless explicitly false
	animated := e.Animated == nil || *e.Animated

	style := model.EdgeStyle{StrokeWidth: defaultStrokeWidth}
	if e.Style != nil && e.Style.StrokeWidth > 0 {
		style = *e.Style
	}
	marker := model.EdgeMarker{Type: arrowClosedMarker}
	if e.MarkerEnd != nil && e.MarkerEnd.Type != "" {
		marker = *e.MarkerEnd
	}
	data := model.EdgeData{}
	if e.Data != nil {
		data = *e.Data
	}
	return model.Edge{
		Id:           id,
		Source:       e.Source,
		Target:       e.Target,
		SourceHandle: e.SourceHandle,
		TargetHandle: e.TargetHandle,
		Type:         kind,
		Label:        e.Label,
		Animated:     animated,
		Style:        style,
		MarkerEnd:    marker,
		Data:         data,
	}
}

func normalizeFlowData(raw rawFlowData) *model.FlowData {
	nodes := make([]model.Node, 0, len(raw.Nodes))
	for i, n := range raw.Nodes {
		nodes = append(nodes, normalizeNode(n, i))
	}
	edges := make([]model.Edge, 0, len(raw.Edges))
	for _, e := range raw.Edges {
		edges = append(edges, normalizeEdge(e))
	}
	pages := raw.Pages
	if pages == nil {
		pages = make([]model.Page, 0)
	}
	viewports := raw.PageViewports
	if viewports == nil {
		viewports = make(map[model.PageID]model.Viewport)
	}
	return &model.FlowData{
		Nodes:         nodes,
		Edges:         edges,
		Pages:         pages,
		CurrentPageID: raw.CurrentPageID.OrRoot(),
		PageViewports: viewports,
	}
}

func emptyFlowData() *model.FlowData {
	return &model.FlowData{
		Nodes:         make([]model.Node, 0),
		Edges:         make([]model.Edge, 0),
		Pages:         make([]model.Page, 0),
		CurrentPageID: model.RootPage,
		PageViewports: make(map[model.PageID]model.Viewport),
	}
}

// ParseFlowData accepts a JSON string, raw bytes or an already-shaped
// value and produces a normalized bundle. Anything unparseable resets to
// an empty graph instead of failing the caller.
func ParseFlowData(data any) *model.FlowData {
	if data == nil {
		return emptyFlowData()
	}

	var payload []byte
	switch v := data.(type) {
	case string:
		payload = []byte(v)
	case []byte:
		payload = v
	case json.RawMessage:
		payload = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return emptyFlowData()
		}
		payload = encoded
	}

	var raw rawFlowData
	if err := json.Unmarshal(payload, &raw); err != nil {
		return emptyFlowData()
	}
	return normalizeFlowData(raw)
}

// NewEdgeId synthesizes an edge id from a clock reading and a random
// suffix, matching the ids the canvas layer mints.
func NewEdgeId() string {
	return fmt.Sprintf("edge-%d-%s", time.Now().UnixMilli(), randomSuffix(9))
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}
