package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/flowmap/flowmap/logger"
	"github.com/flowmap/flowmap/model"
	"github.com/flowmap/flowmap/phase"
	"go.uber.org/zap"
)

func (s *Server) HandleGetPhases(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	respondOK(w, map[string]any{
		"phases":        entry.phases.Phases(),
		"separatorText": entry.phases.SeparatorText(),
	})
}

func (s *Server) HandleSetPhases(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	var req struct {
		Phases    []model.Phase `json:"phases"`
		ProgramId string        `json:"programId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	entry.phases.SetPhases(req.Phases)
	entry.phases.SyncProgram(req.ProgramId)
	respondOKWithoutBody(w)
}

func (s *Server) HandleApplyProgram(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	programId := vars["programId"]
	if programId == "-" {
		programId = ""
	}
	entry.phases.ApplyProgram(programId)
	respondOK(w, map[string]any{"phases": entry.phases.Phases()})
}

func (s *Server) HandleSetSeparator(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	entry.phases.SetSeparatorText(req.Text)
	respondOK(w, map[string]any{"separatorText": entry.phases.SeparatorText()})
}

// HandleGetMapState returns the persistable process map bundle; the admin
// app stores it on the host record's state field.
func (s *Server) HandleGetMapState(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, entry.phases.Snapshot())
}

func (s *Server) HandleLoadMapState(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	var saved phase.MapState
	if err := json.NewDecoder(r.Body).Decode(&saved); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	entry.phases.Load(saved)
	respondOK(w, map[string]any{
		"phases":          entry.phases.Phases(),
		"separatorText":   entry.phases.SeparatorText(),
		"selectedProgram": entry.phases.SelectedProgram(),
	})
}

func (s *Server) HandleListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := s.programs.Programs(r.Context())
	if err != nil {
		logger.Error("error listing programs", zap.Error(err))
		respondWithError(w, http.StatusBadRequest, "error listing programs")
		return
	}
	respondWithJSON(w, http.StatusOK, programs)
}

func (s *Server) HandleListWorkflows(w http.ResponseWriter, r *http.Request) {
	workflows, err := s.programs.Workflows(r.Context())
	if err != nil {
		logger.Error("error listing workflows", zap.Error(err))
		respondWithError(w, http.StatusBadRequest, "error listing workflows")
		return
	}
	respondWithJSON(w, http.StatusOK, workflows)
}
