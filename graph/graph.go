package graph

import (
	"github.com/flowmap/flowmap/model"
)

// Graph owns the editable node and edge lists for one editor session.
// Connection validity (self-loops, duplicate handles) is enforced by the
// canvas layer before AddEdge is called; the model itself only mutates.
type Graph struct {
	nodes     []model.Node
	edges     []model.Edge
	selection *Selection
}

func NewGraph() *Graph {
	return &Graph{
		nodes:     make([]model.Node, 0),
		edges:     make([]model.Edge, 0),
		selection: newSelection(),
	}
}

func (g *Graph) Selection() *Selection {
	return g.selection
}

// Nodes returns the live node slice. Mutations through it are visible to
// the graph; callers wanting isolation use Snapshot.
func (g *Graph) Nodes() []model.Node {
	return g.nodes
}

func (g *Graph) Edges() []model.Edge {
	return g.edges
}

func (g *Graph) SetNodes(nodes []model.Node) {
	if nodes == nil {
		nodes = make([]model.Node, 0)
	}
	g.nodes = nodes
}

func (g *Graph) SetEdges(edges []model.Edge) {
	if edges == nil {
		edges = make([]model.Edge, 0)
	}
	g.edges = edges
}

func (g *Graph) AddNode(node model.Node) {
	g.nodes = append(g.nodes, node)
}

// RemoveNode deletes the node and every edge touching it. Selection state
// referring to the node is cleared.
func (g *Graph) RemoveNode(nodeId string) {
	nodes := g.nodes[:0]
	for _, n := range g.nodes {
		if n.Id != nodeId {
			nodes = append(nodes, n)
		}
	}
	g.nodes = nodes

	edges := g.edges[:0]
	for _, e := range g.edges {
		if e.Source != nodeId && e.Target != nodeId {
			edges = append(edges, e)
		}
	}
	g.edges = edges

	g.selection.dropNode(nodeId)
}

// NodeUpdate is a partial node; nil fields keep the existing value and the
// id is never touched.
type NodeUpdate struct {
	Position *model.Position
	Class    *string
	Data     *model.NodeData
}

func (g *Graph) UpdateNode(nodeId string, update NodeUpdate) bool {
	for i := range g.nodes {
		if g.nodes[i].Id != nodeId {
			continue
		}
		if update.Position != nil {
			g.nodes[i].Position = *update.Position
		}
		if update.Class != nil {
			g.nodes[i].Class = *update.Class
		}
		if update.Data != nil {
			g.nodes[i].Data = *update.Data
		}
		return true
	}
	return false
}

func (g *Graph) MoveNode(nodeId string, pos model.Position) bool {
	return g.UpdateNode(nodeId, NodeUpdate{Position: &pos})
}

func (g *Graph) AddEdge(edge model.Edge) {
	g.edges = append(g.edges, edge)
}

func (g *Graph) RemoveEdge(edgeId string) {
	edges := g.edges[:0]
	for _, e := range g.edges {
		if e.Id != edgeId {
			edges = append(edges, e)
		}
	}
	g.edges = edges
	g.selection.dropEdge(edgeId)
}

// ReconnectEdge points an existing edge at new endpoints, keeping id and
// styling. Returns false when the edge does not exist.
func (g *Graph) ReconnectEdge(edgeId string, conn model.Connection) bool {
	for i := range g.edges {
		if g.edges[i].Id != edgeId {
			continue
		}
		g.edges[i].Source = conn.Source
		g.edges[i].Target = conn.Target
		g.edges[i].SourceHandle = conn.SourceHandle
		g.edges[i].TargetHandle = conn.TargetHandle
		return true
	}
	return false
}

func (g *Graph) Node(nodeId string) (model.Node, bool) {
	for _, n := range g.nodes {
		if n.Id == nodeId {
			return n, true
		}
	}
	return model.Node{}, false
}

func (g *Graph) Edge(edgeId string) (model.Edge, bool) {
	for _, e := range g.edges {
		if e.Id == edgeId {
			return e, true
		}
	}
	return model.Edge{}, false
}

func (g *Graph) NodesByType(nodeType model.NodeType) []model.Node {
	var result []model.Node
	for _, n := range g.nodes {
		if n.Type == nodeType {
			result = append(result, n)
		}
	}
	return result
}

func (g *Graph) EdgesBySource(sourceId string) []model.Edge {
	var result []model.Edge
	for _, e := range g.edges {
		if e.Source == sourceId {
			result = append(result, e)
		}
	}
	return result
}

func (g *Graph) EdgesByTarget(targetId string) []model.Edge {
	var result []model.Edge
	for _, e := range g.edges {
		if e.Target == targetId {
			result = append(result, e)
		}
	}
	return result
}

// HasConnection reports whether an edge with the exact
// (source, target, sourceHandle, targetHandle) tuple exists, skipping the
// edge named by excludeEdgeId (used when reconnecting).
func (g *Graph) HasConnection(conn model.Connection, excludeEdgeId string) bool {
	for _, e := range g.edges {
		if e.Id == excludeEdgeId {
			continue
		}
		if e.Source == conn.Source && e.Target == conn.Target &&
			e.SourceHandle == conn.SourceHandle && e.TargetHandle == conn.TargetHandle {
			return true
		}
	}
	return false
}

// Snapshot deep-copies the current nodes and edges. The persistence layer
// compares snapshots to detect divergence from the last-loaded data.
func (g *Graph) Snapshot() ([]model.Node, []model.Edge) {
	nodes := make([]model.Node, len(g.nodes))
	copy(nodes, g.nodes)
	for i := range nodes {
		if nodes[i].Data.TargetCollections != nil {
			tc := make([]string, len(nodes[i].Data.TargetCollections))
			copy(tc, nodes[i].Data.TargetCollections)
			nodes[i].Data.TargetCollections = tc
		}
	}
	edges := make([]model.Edge, len(g.edges))
	copy(edges, g.edges)
	return nodes, edges
}
