package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/flowmap/flowmap/logger"
	"github.com/flowmap/flowmap/model"
	"github.com/flowmap/flowmap/page"
	"github.com/flowmap/flowmap/persistence"
	"github.com/flowmap/flowmap/theme"
)

type openSessionRequest struct {
	ItemId   string `json:"itemId"`
	EditMode bool   `json:"editMode"`
	ThemeId  string `json:"themeId"`
}

type selectionState struct {
	NodeId         string   `json:"nodeId,omitempty"`
	EdgeId         string   `json:"edgeId,omitempty"`
	MultiSelected  []string `json:"multiSelected"`
	MultiSelecting bool     `json:"multiSelecting"`
}

type sessionState struct {
	SessionId     string                     `json:"sessionId"`
	ItemId        string                     `json:"itemId,omitempty"`
	IsNew         bool                       `json:"isNew"`
	RecordName    string                     `json:"recordName,omitempty"`
	EditMode      bool                       `json:"editMode"`
	Nodes         []model.Node               `json:"nodes"`
	Edges         []model.Edge               `json:"edges"`
	VisibleNodes  []model.Node               `json:"visibleNodes"`
	VisibleEdges  []model.Edge               `json:"visibleEdges"`
	Pages         []model.Page               `json:"pages"`
	CurrentPageId model.PageID               `json:"currentPageId"`
	Breadcrumbs   []page.Breadcrumb          `json:"breadcrumbs"`
	Selection     selectionState             `json:"selection"`
	FollowMode    bool                       `json:"followMode"`
	ThemeId       string                     `json:"themeId"`
	Notifications []persistence.Notification `json:"notifications"`
}

func (s *Server) sessionState(entry *sessionEntry) sessionState {
	session := entry.session
	st := session.State()

	return sessionState{
		SessionId:     session.Id,
		ItemId:        st.ItemId,
		IsNew:         st.IsNew,
		RecordName:    st.RecordName,
		EditMode:      st.EditMode,
		Nodes:         st.Nodes,
		Edges:         st.Edges,
		VisibleNodes:  st.VisibleNodes,
		VisibleEdges:  st.VisibleEdges,
		Pages:         st.Pages,
		CurrentPageId: st.CurrentPageId,
		Breadcrumbs:   st.Breadcrumbs,
		Selection: selectionState{
			NodeId:         st.SelectedNode,
			EdgeId:         st.SelectedEdge,
			MultiSelected:  st.MultiSelected,
			MultiSelecting: st.MultiSelecting,
		},
		FollowMode:    st.FollowMode,
		ThemeId:       st.ThemeId,
		Notifications: entry.notifier.Drain(),
	}
}

func (s *Server) entry(w http.ResponseWriter, r *http.Request) (*sessionEntry, bool) {
	vars := mux.Vars(r)
	id, ok := vars["id"]
	if !ok {
		respondWithError(w, http.StatusBadRequest, "missing session id")
		return nil, false
	}
	entry, ok := s.sessions.get(id)
	if !ok {
		respondWithError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return entry, true
}

func (s *Server) HandleOpenSession(w http.ResponseWriter, r *http.Request) {
	var req openSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	entry := s.sessions.open()
	session := entry.session
	session.SetEditMode(req.EditMode)
	if req.ThemeId != "" {
		session.SetTheme(req.ThemeId)
	}

	if req.ItemId != "" && req.ItemId != "+" {
		rec, cached := s.records.Get(req.ItemId)
		if !cached {
			if err := s.api.GetItem(r.Context(), s.conf.WorkflowCollection, req.ItemId, &rec); err != nil {
				logger.Error("error loading workflow record", zap.String("itemId", req.ItemId), zap.Error(err))
				s.sessions.close(session.Id)
				respondWithError(w, http.StatusBadRequest, "error loading workflow record")
				return
			}
			s.records.Put(rec)
		}
		session.LoadRecord(rec)
	}
	session.SetItemId(req.ItemId)

	respondWithJSON(w, http.StatusOK, s.sessionState(entry))
}

func (s *Server) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, s.sessionState(entry))
}

func (s *Server) HandleCloseSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if !s.sessions.close(id) {
		respondWithError(w, http.StatusNotFound, "session not found")
		return
	}
	respondOKWithoutBody(w)
}

func (s *Server) HandleSetMode(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	var req struct {
		EditMode bool `json:"editMode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	entry.session.SetEditMode(req.EditMode)
	respondOKWithoutBody(w)
}

func (s *Server) HandleSave(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	saved, err := entry.session.Save(r.Context(), req.Name, req.Description)
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]any{
			"error":         "error saving workflow",
			"notifications": entry.notifier.Drain(),
		})
		return
	}
	if saved != nil {
		s.records.Put(*saved)
	}
	respondWithJSON(w, http.StatusOK, s.sessionState(entry))
}

func (s *Server) HandleClone(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	cloned, err := entry.session.Clone(r.Context(), req.Name)
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]any{
			"error":         "error cloning workflow",
			"notifications": entry.notifier.Drain(),
		})
		return
	}
	body := map[string]any{"notifications": entry.notifier.Drain()}
	if cloned != nil {
		s.records.Put(*cloned)
		body["clone"] = cloned
	}
	respondOK(w, body)
}

func (s *Server) HandleSetTheme(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	var req struct {
		ThemeId string `json:"themeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
	}
	defer r.Body.Close()

	if !entry.session.SetTheme(req.ThemeId) {
		respondWithError(w, http.StatusBadRequest, "unknown theme")
		return
	}
	respondOK(w, map[string]any{"themeId": req.ThemeId})
}

func (s *Server) HandleNodeStyles(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	style := entry.session.NodeStyle(theme.StyleOptions{
		NodeType:   q.Get("type"),
		Subtype:    q.Get("subtype"),
		IsHovered:  q.Get("hovered") == "true",
		IsViewMode: q.Get("viewMode") == "true",
	})
	respondWithJSON(w, http.StatusOK, style)
}
