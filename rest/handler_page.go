package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/flowmap/flowmap/model"
)

func (s *Server) HandleAddPage(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	var page model.Page
	if err := json.NewDecoder(r.Body).Decode(&page); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	added, ok := entry.session.AddPage(page)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "missing page id")
		return
	}
	respondWithJSON(w, http.StatusOK, added)
}

func (s *Server) HandleUpdatePage(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	pageId := model.PageID(vars["pageId"])

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !entry.session.UpdatePage(pageId, req.Name, req.Description, req.Color) {
		respondWithError(w, http.StatusNotFound, "page not found")
		return
	}
	respondOKWithoutBody(w)
}

func (s *Server) HandleRemovePage(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	pageId := model.PageID(vars["pageId"])
	if !entry.session.RemovePage(pageId) {
		respondWithError(w, http.StatusBadRequest, "cannot remove the root page")
		return
	}
	respondWithJSON(w, http.StatusOK, s.sessionState(entry))
}

func (s *Server) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	entry.session.NavigateToPage(model.PageID(vars["pageId"]))
	respondWithJSON(w, http.StatusOK, s.sessionState(entry))
}

func (s *Server) HandleSaveViewport(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	var viewport model.Viewport
	if err := json.NewDecoder(r.Body).Decode(&viewport); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	entry.session.SaveViewport(model.PageID(vars["pageId"]), viewport)
	respondOKWithoutBody(w)
}

func (s *Server) HandleBreadcrumbs(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, entry.session.Breadcrumbs())
}
