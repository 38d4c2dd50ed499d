package model

type NodeType string

const NODE_TYPE_START NodeType = "start"
const NODE_TYPE_PROCESS NodeType = "process"
const NODE_TYPE_DECISION NodeType = "decision"
const NODE_TYPE_END NodeType = "end"
const NODE_TYPE_PAGE NodeType = "page"
const NODE_TYPE_TERMINAL NodeType = "terminal"

type NodeSubtype string

const NODE_SUBTYPE_TASK NodeSubtype = "task"
const NODE_SUBTYPE_FORM NodeSubtype = "form"
const NODE_SUBTYPE_NOTIFICATION NodeSubtype = "notification"

type Handle string

const HANDLE_TOP Handle = "top"
const HANDLE_BOTTOM Handle = "bottom"
const HANDLE_LEFT Handle = "left"
const HANDLE_RIGHT Handle = "right"

// PageID identifies the sub-flow canvas a node renders on. The root canvas
// is not stored as a Page record; RootPage is its sentinel id.
type PageID string

const RootPage PageID = "root"

// OrRoot normalizes an absent page id to the root canvas.
func (p PageID) OrRoot() PageID {
	if p == "" {
		return RootPage
	}
	return p
}

func (p PageID) IsRoot() bool {
	return p.OrRoot() == RootPage
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData carries the common fields every node has plus the per-type
// payloads. Only the fields matching the node's type are meaningful;
// the rest marshal away under omitempty.
type NodeData struct {
	Label       string      `json:"label"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	NodeSize    string      `json:"nodeSize,omitempty"`
	PageID      PageID      `json:"pageId,omitempty"`
	Subtype     NodeSubtype `json:"subtype,omitempty"`

	// form process nodes
	TargetCollection  string   `json:"targetCollection,omitempty"`
	TargetCollections []string `json:"targetCollections,omitempty"`

	// end nodes
	TargetWorkflowID string `json:"targetWorkflowId,omitempty"`

	// page portal nodes
	TargetPageID PageID `json:"targetPageId,omitempty"`
	NodeCount    int    `json:"nodeCount,omitempty"`
	Color        string `json:"color,omitempty"`
}

type Node struct {
	Id       string   `json:"id"`
	Type     NodeType `json:"type"`
	Position Position `json:"position"`
	Class    string   `json:"class,omitempty"`
	Data     NodeData `json:"data"`
}

type EdgeStyle struct {
	StrokeWidth int `json:"strokeWidth"`
}

type EdgeMarker struct {
	Type string `json:"type"`
}

type EdgeData struct {
	Label string `json:"label"`
}

type Edge struct {
	Id           string     `json:"id"`
	Source       string     `json:"source"`
	Target       string     `json:"target"`
	SourceHandle Handle     `json:"sourceHandle,omitempty"`
	TargetHandle Handle     `json:"targetHandle,omitempty"`
	Type         string     `json:"type"`
	Label        string     `json:"label,omitempty"`
	Animated     bool       `json:"animated"`
	Style        EdgeStyle  `json:"style"`
	MarkerEnd    EdgeMarker `json:"markerEnd"`
	Data         EdgeData   `json:"data"`
}

// Connection is a pending edge gesture, before validation.
type Connection struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle Handle `json:"sourceHandle,omitempty"`
	TargetHandle Handle `json:"targetHandle,omitempty"`
}

type Page struct {
	Id           PageID `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ParentPageID PageID `json:"parentPageId,omitempty"`
	Color        string `json:"color,omitempty"`
}

type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// FlowData is the persisted graph bundle, stored under the record's
// "data" field in the host collection.
type FlowData struct {
	Nodes         []Node              `json:"nodes"`
	Edges         []Edge              `json:"edges"`
	Pages         []Page              `json:"pages"`
	CurrentPageID PageID              `json:"currentPageId"`
	PageViewports map[PageID]Viewport `json:"pageViewports"`
}

// WorkflowRecord is the full item shape in the host collection.
type WorkflowRecord struct {
	Id              string    `json:"id,omitempty"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DefaultEdgeType string    `json:"defaultEdgeType,omitempty"`
	DefaultNodeSize string    `json:"defaultNodeSize,omitempty"`
	Data            *FlowData `json:"data,omitempty"`
}
