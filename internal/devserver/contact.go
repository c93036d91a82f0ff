package devserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/cdelgado/portfolio/pkg/contact"
)

const maxContactBody = 64 << 10

// ContactReceipt is the body of an accepted submission.
type ContactReceipt struct {
	ID string `json:"id"`
}

// handleContact accepts messages sent by the page's HTTP submitter. It
// validates and logs them; nothing is stored.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)

	var msg contact.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "message too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.cfg.Rules().Validate(msg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	s.logger.Info("contact message received",
		"id", msg.ID,
		"request_id", middleware.GetReqID(r.Context()),
		"name", msg.Name,
		"email", msg.Email,
		"language", msg.Language,
		"length", len(msg.Message))

	writeJSON(w, http.StatusAccepted, ContactReceipt{ID: msg.ID})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
