package page

import (
	"github.com/flowmap/flowmap/graph"
	"github.com/flowmap/flowmap/model"
)

// pageColors is the fixed palette auto-assigned to new pages by creation
// order.
var pageColors = []string{
	"#3b82f6", "#10b981", "#f59e0b", "#ef4444",
	"#8b5cf6", "#06b6d4", "#84cc16", "#f97316",
}

const rootPageName = "Main"
const rootPageDescription = "Main workflow page"

type Breadcrumb struct {
	Id   model.PageID `json:"id"`
	Name string       `json:"name"`
}

// Manager namespaces the graph's nodes into nested pages and remembers a
// viewport per page. The root page exists implicitly and is never stored.
type Manager struct {
	graph         *graph.Graph
	pages         []model.Page
	currentPageId model.PageID
	viewports     map[model.PageID]model.Viewport

	onNavigate func(pageId model.PageID, viewport *model.Viewport)
}

func NewManager(g *graph.Graph) *Manager {
	return &Manager{
		graph:         g,
		pages:         make([]model.Page, 0),
		currentPageId: model.RootPage,
		viewports:     make(map[model.PageID]model.Viewport),
	}
}

// OnNavigate registers the rendering callback fired after page navigation;
// a nil viewport asks the renderer for a fit-to-content view.
func (m *Manager) OnNavigate(fn func(pageId model.PageID, viewport *model.Viewport)) {
	m.onNavigate = fn
}

func (m *Manager) Pages() []model.Page {
	return m.pages
}

func (m *Manager) SetPages(pages []model.Page) {
	if pages == nil {
		pages = make([]model.Page, 0)
	}
	m.pages = pages
}

func (m *Manager) CurrentPageID() model.PageID {
	return m.currentPageId
}

func (m *Manager) SetCurrentPageID(pageId model.PageID) {
	m.currentPageId = pageId.OrRoot()
}

func (m *Manager) Viewports() map[model.PageID]model.Viewport {
	return m.viewports
}

func (m *Manager) SetViewports(viewports map[model.PageID]model.Viewport) {
	if viewports == nil {
		viewports = make(map[model.PageID]model.Viewport)
	}
	m.viewports = viewports
}

// Page resolves a page id, materializing the implicit root page.
func (m *Manager) Page(pageId model.PageID) (model.Page, bool) {
	if pageId.IsRoot() {
		return model.Page{Id: model.RootPage, Name: rootPageName, Description: rootPageDescription}, true
	}
	for _, p := range m.pages {
		if p.Id == pageId {
			return p, true
		}
	}
	return model.Page{}, false
}

func (m *Manager) HasPage(pageId model.PageID) bool {
	_, ok := m.Page(pageId)
	return ok
}

func (m *Manager) AddPage(page model.Page) {
	if page.Color == "" {
		page.Color = pageColors[len(m.pages)%len(pageColors)]
	}
	m.pages = append(m.pages, page)
}

func (m *Manager) UpdatePage(pageId model.PageID, name, description, color string) bool {
	for i := range m.pages {
		if m.pages[i].Id != pageId {
			continue
		}
		if name != "" {
			m.pages[i].Name = name
		}
		if description != "" {
			m.pages[i].Description = description
		}
		if color != "" {
			m.pages[i].Color = color
		}
		return true
	}
	return false
}

// RemovePage deletes the page and, recursively, its descendants. Nodes on a
// removed page move back to root and the page's remembered viewport is
// discarded. When the current page is removed navigation falls back to its
// parent.
func (m *Manager) RemovePage(pageId model.PageID) {
	var parent model.PageID
	for _, p := range m.pages {
		if p.Id == pageId {
			parent = p.ParentPageID.OrRoot()
			break
		}
	}

	kept := m.pages[:0]
	for _, p := range m.pages {
		if p.Id != pageId {
			kept = append(kept, p)
		}
	}
	m.pages = kept

	nodes := m.graph.Nodes()
	for i := range nodes {
		if nodes[i].Data.PageID == pageId {
			nodes[i].Data.PageID = model.RootPage
		}
	}

	for _, child := range m.ChildPages(pageId) {
		m.RemovePage(child.Id)
	}

	delete(m.viewports, pageId)

	if m.currentPageId == pageId {
		m.currentPageId = parent.OrRoot()
	}
}

func (m *Manager) RootPages() []model.Page {
	var result []model.Page
	for _, p := range m.pages {
		if p.ParentPageID.IsRoot() {
			result = append(result, p)
		}
	}
	return result
}

func (m *Manager) ChildPages(pageId model.PageID) []model.Page {
	var result []model.Page
	for _, p := range m.pages {
		if p.ParentPageID == pageId {
			result = append(result, p)
		}
	}
	return result
}

// VisibleNodes filters the graph to the nodes rendered on the given page.
func (m *Manager) VisibleNodes(pageId model.PageID) []model.Node {
	var result []model.Node
	for _, n := range m.graph.Nodes() {
		if n.Data.PageID.OrRoot() == pageId.OrRoot() {
			result = append(result, n)
		}
	}
	return result
}

// VisibleEdges keeps only page-local edges: both endpoints must render on
// the page. Cross-page edges stay in the model but are never returned.
func (m *Manager) VisibleEdges(pageId model.PageID) []model.Edge {
	visible := make(map[string]struct{})
	for _, n := range m.VisibleNodes(pageId) {
		visible[n.Id] = struct{}{}
	}
	var result []model.Edge
	for _, e := range m.graph.Edges() {
		if _, ok := visible[e.Source]; !ok {
			continue
		}
		if _, ok := visible[e.Target]; !ok {
			continue
		}
		result = append(result, e)
	}
	return result
}

// Breadcrumbs walks parent links up from pageId and returns the trail in
// root-to-leaf order, always starting at the root page.
func (m *Manager) Breadcrumbs(pageId model.PageID) []Breadcrumb {
	trail := []Breadcrumb{{Id: model.RootPage, Name: rootPageName}}
	trail = append(trail, m.pathCrumbs(pageId)...)
	return trail
}

func (m *Manager) pathCrumbs(pageId model.PageID) []Breadcrumb {
	var path []Breadcrumb
	currentId := pageId
	for !currentId.IsRoot() {
		p, ok := m.Page(currentId)
		if !ok {
			break
		}
		path = append([]Breadcrumb{{Id: p.Id, Name: p.Name}}, path...)
		currentId = p.ParentPageID.OrRoot()
	}
	return path
}

// PagePath returns the page records from root to pageId, excluding root.
func (m *Manager) PagePath(pageId model.PageID) []model.Page {
	var path []model.Page
	currentId := pageId
	for !currentId.IsRoot() {
		found := false
		for _, p := range m.pages {
			if p.Id == currentId {
				path = append([]model.Page{p}, path...)
				currentId = p.ParentPageID.OrRoot()
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	return path
}

func (m *Manager) PageDepth(pageId model.PageID) int {
	return len(m.PagePath(pageId))
}

// NavigateToPage switches the current page and fires the navigation
// callback with the remembered viewport, or nil when none was saved.
func (m *Manager) NavigateToPage(pageId model.PageID) {
	m.currentPageId = pageId.OrRoot()
	if m.onNavigate == nil {
		return
	}
	if vp, ok := m.viewports[m.currentPageId]; ok {
		m.onNavigate(m.currentPageId, &vp)
	} else {
		m.onNavigate(m.currentPageId, nil)
	}
}

func (m *Manager) SaveViewport(pageId model.PageID, viewport model.Viewport) {
	m.viewports[pageId.OrRoot()] = viewport
}

func (m *Manager) Viewport(pageId model.PageID) (model.Viewport, bool) {
	vp, ok := m.viewports[pageId.OrRoot()]
	return vp, ok
}

// UpdatePageCounts recomputes, for every page, the number of non-page nodes
// it contains and writes the count into each portal node targeting it. Not
// maintained incrementally; call after node adds, removes or reassignments.
func (m *Manager) UpdatePageCounts() {
	nodes := m.graph.Nodes()
	for _, p := range m.pages {
		count := 0
		for _, n := range nodes {
			if n.Type != model.NODE_TYPE_PAGE && n.Data.PageID.OrRoot() == p.Id {
				count++
			}
		}
		for i := range nodes {
			if nodes[i].Type == model.NODE_TYPE_PAGE && nodes[i].Data.TargetPageID == p.Id {
				nodes[i].Data.NodeCount = count
			}
		}
	}
}
