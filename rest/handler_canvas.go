package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/flowmap/flowmap/model"
)

type dropNodeRequest struct {
	Payload  string         `json:"payload"`
	Position model.Position `json:"position"`
}

func (s *Server) HandleDropNode(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	var req dropNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
	}
	defer r.Body.Close()

	node := entry.session.DropNode(req.Payload, req.Position)
	if node == nil {
		respondWithError(w, http.StatusBadRequest, "drop rejected")
		return
	}
	respondWithJSON(w, http.StatusOK, node)
}

func (s *Server) HandleUpdateNode(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	nodeId := vars["nodeId"]

	var data model.NodeData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !entry.session.UpdateNodeData(nodeId, data) {
		respondWithError(w, http.StatusBadRequest, "node update rejected")
		return
	}
	respondOKWithoutBody(w)
}

func (s *Server) HandleDragStop(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	nodeId := vars["nodeId"]

	var pos model.Position
	if err := json.NewDecoder(r.Body).Decode(&pos); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !entry.session.DragStop(nodeId, pos) {
		respondWithError(w, http.StatusBadRequest, "move rejected")
		return
	}
	respondOKWithoutBody(w)
}

func (s *Server) HandleConnect(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	var conn model.Connection
	if err := json.NewDecoder(r.Body).Decode(&conn); err != nil {
		w.WriteHeader(http.StatusBadRequest)
	}
	defer r.Body.Close()

	edge := entry.session.Connect(conn)
	if edge == nil {
		respondWithError(w, http.StatusBadRequest, "connection rejected")
		return
	}
	respondWithJSON(w, http.StatusOK, edge)
}

func (s *Server) HandleReconnect(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	edgeId := vars["edgeId"]

	var conn model.Connection
	if err := json.NewDecoder(r.Body).Decode(&conn); err != nil {
		w.WriteHeader(http.StatusBadRequest)
	}
	defer r.Body.Close()

	if !entry.session.ReconnectEdge(edgeId, conn) {
		respondWithError(w, http.StatusBadRequest, "reconnection rejected")
		return
	}
	respondOKWithoutBody(w)
}

func (s *Server) HandleDeleteSelected(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	removed, ok := entry.session.DeleteSelected()
	if !ok {
		respondWithError(w, http.StatusBadRequest, "nothing selected")
		return
	}
	respondOK(w, map[string]any{"removed": removed})
}

func (s *Server) HandleNodeClick(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	nodeId := vars["nodeId"]
	ctrlKey := r.URL.Query().Get("ctrl") == "true"

	entry.session.NodeClick(nodeId, ctrlKey)
	respondWithJSON(w, http.StatusOK, s.sessionState(entry))
}

func (s *Server) HandleEdgeClick(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	entry.session.EdgeClick(vars["edgeId"])
	respondWithJSON(w, http.StatusOK, s.sessionState(entry))
}

func (s *Server) HandlePaneClick(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	entry.session.PaneClick()
	respondWithJSON(w, http.StatusOK, s.sessionState(entry))
}
