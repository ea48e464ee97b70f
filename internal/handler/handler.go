package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"patient-notes-api/internal/store"
	"patient-notes-api/internal/validate"
)

type Handler struct {
	store store.Store
}

func New(st store.Store) *Handler {
	return &Handler{store: st}
}

// Router wires every endpoint onto a fresh mux router.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/patients", h.listPatients).Methods(http.MethodGet)
	r.HandleFunc("/patients", h.createPatient).Methods(http.MethodPost)
	r.HandleFunc("/patients/{patientId}", h.deletePatient).Methods(http.MethodDelete)
	r.HandleFunc("/patients/{patientId}/notes", h.listNotes).Methods(http.MethodGet)
	r.HandleFunc("/patients/{patientId}/notes", h.createNote).Methods(http.MethodPost)
	r.HandleFunc("/patients/{patientId}/notes/{noteId}", h.updateNote).Methods(http.MethodPatch)
	r.HandleFunc("/patients/{patientId}/notes/{noteId}", h.deleteNote).Methods(http.MethodDelete)
	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"error": message})
}

// respondInvalid is the 400 shape carrying per-field validation issues.
func respondInvalid(w http.ResponseWriter, message string, issues validate.Issues) {
	respondJSON(w, http.StatusBadRequest, map[string]any{
		"error":   message,
		"details": issues,
	})
}
