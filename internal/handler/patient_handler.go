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

func (h *Handler) listPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.store.ListPatients(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list patients")
		respondError(w, http.StatusInternalServerError, "Failed to fetch patients")
		return
	}
	if patients == nil {
		patients = []model.Patient{}
	}
	respondJSON(w, http.StatusOK, patients)
}

func (h *Handler) createPatient(w http.ResponseWriter, r *http.Request) {
	var in validate.CreatePatientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if issues := in.Validate(); len(issues) > 0 {
		respondInvalid(w, "Invalid input", issues)
		return
	}

	p, err := h.store.CreatePatient(r.Context(), in.Name)
	if err != nil {
		log.Error().Err(err).Msg("create patient")
		respondError(w, http.StatusInternalServerError, "Failed to create patient")
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *Handler) deletePatient(w http.ResponseWriter, r *http.Request) {
	id, issues := validate.PatientID(mux.Vars(r)["patientId"])
	if issues != nil {
		respondInvalid(w, "Invalid patient ID", issues)
		return
	}

	err := h.store.DeletePatient(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrPatientNotFound):
		respondError(w, http.StatusNotFound, "Patient not found")
	case err != nil:
		log.Error().Err(err).Str("patient", id).Msg("delete patient")
		respondError(w, http.StatusInternalServerError, "Failed to delete patient")
	default:
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
