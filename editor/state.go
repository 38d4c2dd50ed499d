package editor

import (
	"github.com/flowmap/flowmap/model"
	"github.com/flowmap/flowmap/page"
	"github.com/flowmap/flowmap/theme"
)

// State is a consistent snapshot of everything a transport layer presents
// about a session. Handlers read it instead of reaching into the session's
// sub-objects while the autosave worker and other requests run.
type State struct {
	ItemId         string
	IsNew          bool
	RecordName     string
	EditMode       bool
	Nodes          []model.Node
	Edges          []model.Edge
	VisibleNodes   []model.Node
	VisibleEdges   []model.Edge
	Pages          []model.Page
	CurrentPageId  model.PageID
	Breadcrumbs    []page.Breadcrumb
	SelectedNode   string
	SelectedEdge   string
	MultiSelected  []string
	MultiSelecting bool
	FollowMode     bool
	FocusedNodeId  string
	ThemeId        string
}

// State assembles the snapshot under the session lock. The node and edge
// slices are deep copies; mutating them does not touch the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes, edges := s.graph.Snapshot()
	sel := s.graph.Selection()
	current := s.pages.CurrentPageID()
	pages := make([]model.Page, len(s.pages.Pages()))
	copy(pages, s.pages.Pages())

	return State{
		ItemId:         s.adapter.ItemId(),
		IsNew:          s.adapter.IsNew(),
		RecordName:     s.adapter.RecordName(),
		EditMode:       s.editMode,
		Nodes:          nodes,
		Edges:          edges,
		VisibleNodes:   s.pages.VisibleNodes(current),
		VisibleEdges:   s.pages.VisibleEdges(current),
		Pages:          pages,
		CurrentPageId:  current,
		Breadcrumbs:    s.pages.Breadcrumbs(current),
		SelectedNode:   sel.SelectedNode(),
		SelectedEdge:   sel.SelectedEdge(),
		MultiSelected:  sel.SelectedNodes(),
		MultiSelecting: sel.IsMultiSelecting(),
		FollowMode:     s.follow.enabled,
		FocusedNodeId:  s.follow.focusedNodeId,
		ThemeId:        s.theme.CurrentTheme().Id,
	}
}

// AddPage registers a sub-flow page. The caller supplies the id; an empty
// one is refused. Returns the stored page with its auto-assigned color.
func (s *Session) AddPage(p model.Page) (model.Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Id == "" {
		return model.Page{}, false
	}
	s.pages.AddPage(p)
	added, _ := s.pages.Page(p.Id)
	s.markDirty()
	return added, true
}

func (s *Session) UpdatePage(pageId model.PageID, name, description, color string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pages.UpdatePage(pageId, name, description, color) {
		return false
	}
	s.markDirty()
	return true
}

// RemovePage refuses the root sentinel; descendant pages, node
// reassignment and the viewport discard are handled by the page manager.
func (s *Session) RemovePage(pageId model.PageID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pageId.IsRoot() {
		return false
	}
	s.pages.RemovePage(pageId)
	s.markDirty()
	s.adapter.EmitChange()
	return true
}

func (s *Session) NavigateToPage(pageId model.PageID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages.NavigateToPage(pageId)
}

func (s *Session) SaveViewport(pageId model.PageID, viewport model.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages.SaveViewport(pageId, viewport)
	s.markDirty()
}

func (s *Session) Breadcrumbs() []page.Breadcrumb {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages.Breadcrumbs(s.pages.CurrentPageID())
}

func (s *Session) SetTheme(themeId string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme.SetTheme(themeId)
}

func (s *Session) NodeStyle(opts theme.StyleOptions) theme.NodeStyle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme.NodeStyle(opts)
}

func (s *Session) SetItemId(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adapter.SetItemId(id)
}
