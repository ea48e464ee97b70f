package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"patient-notes-api/internal/model"
	"patient-notes-api/internal/store"
	"patient-notes-api/internal/validate"
)

// notesPage is the paginated listing body. TotalPages is a page count,
// ceil(matching rows / limit), not a row count.
type notesPage struct {
	Notes      []model.Note `json:"notes"`
	TotalPages int          `json:"totalPages"`
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	patientID, issues := validate.PatientID(mux.Vars(r)["patientId"])
	if issues != nil {
		respondInvalid(w, "Invalid patient ID", issues)
		return
	}
	p, issues := validate.ParsePagination(r.URL.Query())
	if issues != nil {
		respondInvalid(w, "Invalid parameters", issues)
		return
	}

	notes, totalPages, err := h.store.ListNotes(r.Context(), patientID, p.Page, p.Limit)
	switch {
	case errors.Is(err, store.ErrPatientNotFound):
		respondError(w, http.StatusNotFound, "Patient not found")
		return
	case err != nil:
		log.Error().Err(err).Str("patient", patientID).Msg("list notes")
		respondError(w, http.StatusInternalServerError, "Failed to fetch notes")
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	respondJSON(w, http.StatusOK, notesPage{Notes: notes, TotalPages: totalPages})
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	patientID, issues := validate.PatientID(mux.Vars(r)["patientId"])
	if issues != nil {
		respondInvalid(w, "Invalid patient ID", issues)
		return
	}

	var in validate.CreateNoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if issues := in.Validate(); len(issues) > 0 {
		respondInvalid(w, "Invalid input", issues)
		return
	}

	n, err := h.store.CreateNote(r.Context(), patientID, in.Title, in.Content)
	switch {
	case errors.Is(err, store.ErrPatientNotFound):
		respondError(w, http.StatusNotFound, "Patient not found")
	case err != nil:
		log.Error().Err(err).Str("patient", patientID).Msg("create note")
		respondError(w, http.StatusInternalServerError, "Failed to create note")
	default:
		respondJSON(w, http.StatusCreated, n)
	}
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, issues := validate.PatientID(vars["patientId"])
	if issues != nil {
		respondInvalid(w, "Invalid patient ID", issues)
		return
	}
	noteID, issues := validate.NoteID(vars["noteId"])
	if issues != nil {
		respondInvalid(w, "Invalid note ID", issues)
		return
	}

	var in validate.UpdateNoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if issues := in.Validate(); len(issues) > 0 {
		respondInvalid(w, "Invalid input", issues)
		return
	}

	n, err := h.store.UpdateNote(r.Context(), patientID, noteID, in.Content)
	switch {
	case errors.Is(err, store.ErrPatientNotFound):
		respondError(w, http.StatusNotFound, "Patient not found")
	case errors.Is(err, store.ErrNoteNotFound):
		respondError(w, http.StatusNotFound, "Note not found or does not belong to this patient")
	case err != nil:
		log.Error().Err(err).Str("patient", patientID).Str("note", noteID).Msg("update note")
		respondError(w, http.StatusInternalServerError, "Failed to update note")
	default:
		respondJSON(w, http.StatusOK, n)
	}
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, issues := validate.PatientID(vars["patientId"])
	if issues != nil {
		respondInvalid(w, "Invalid patient ID", issues)
		return
	}
	noteID, issues := validate.NoteID(vars["noteId"])
	if issues != nil {
		respondInvalid(w, "Invalid note ID", issues)
		return
	}

	err := h.store.DeleteNote(r.Context(), patientID, noteID)
	switch {
	case errors.Is(err, store.ErrNoteNotFound):
		respondError(w, http.StatusNotFound, "Note not found or does not belong to this patient")
	case err != nil:
		log.Error().Err(err).Str("patient", patientID).Str("note", noteID).Msg("delete note")
		respondError(w, http.StatusInternalServerError, "Failed to delete note")
	default:
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
