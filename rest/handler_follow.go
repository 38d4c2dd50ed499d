package rest

import (
	"encoding/json"
	"net/http"

	"github.com/flowmap/flowmap/editor"
)

func (s *Server) HandleFollowToggle(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	enabled := entry.session.ToggleFollowMode()
	respondOK(w, map[string]any{
		"followMode":    enabled,
		"focusedNodeId": entry.session.FocusedNodeId(),
	})
}

func (s *Server) HandleFollowNavigate(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	var req struct {
		Direction editor.Direction `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
	}
	defer r.Body.Close()

	moved := entry.session.Navigate(req.Direction)
	respondOK(w, map[string]any{
		"moved":         moved,
		"focusedNodeId": entry.session.FocusedNodeId(),
	})
}

func (s *Server) HandleFollowKey(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
	}
	defer r.Body.Close()

	consumed := entry.session.HandleKey(req.Key)
	respondOK(w, map[string]any{
		"consumed":      consumed,
		"focusedNodeId": entry.session.FocusedNodeId(),
	})
}

func (s *Server) HandleFocusedNode(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	focused, ok := entry.session.FocusedNode()
	if !ok {
		respondWithError(w, http.StatusNotFound, "no node focused")
		return
	}
	respondOK(w, map[string]any{
		"id":               focused.Id,
		"label":            focused.Label,
		"description":      focused.Description,
		"showDescriptions": entry.session.ShowDescriptions(),
	})
}
