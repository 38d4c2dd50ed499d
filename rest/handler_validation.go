package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/flowmap/flowmap/validation"
)

// HandleValidateItem checks an item payload against its collection's
// email, phone and SSN rules and returns the normalized payload.
func (s *Server) HandleValidateItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collection := vars["collection"]

	var item map[string]any
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := s.items.ValidateItem(r.Context(), collection, item); err != nil {
		var verr validation.ValidationError
		if errors.As(err, &verr) {
			respondWithJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"field": verr.Field,
				"error": verr.Message,
			})
			return
		}
		respondWithError(w, http.StatusBadRequest, "error validating item")
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}
