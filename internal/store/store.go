package store

import (
	"context"
	"errors"

	"patient-notes-api/internal/model"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrNoteNotFound    = errors.New("note not found")
)

// Store is the persistence boundary. Handlers depend on this interface so
// the Postgres implementation can be swapped for the in-memory one in tests.
type Store interface {
	ListPatients(ctx context.Context) ([]model.Patient, error)
	CreatePatient(ctx context.Context, name string) (*model.Patient, error)
	// DeletePatient removes the patient and, through the cascade, every
	// note attached to it.
	DeletePatient(ctx context.Context, id string) error

	// ListNotes returns one page of the patient's notes ordered by
	// created_at descending (ties broken by id descending) together with
	// the total number of pages, ceil(count/limit).
	ListNotes(ctx context.Context, patientID string, page, limit int) ([]model.Note, int, error)
	CreateNote(ctx context.Context, patientID, title, content string) (*model.Note, error)
	// UpdateNote replaces the content of the note matched by both ids.
	// A noteID that exists under a different patient is ErrNoteNotFound.
	UpdateNote(ctx context.Context, patientID, noteID, content string) (*model.Note, error)
	DeleteNote(ctx context.Context, patientID, noteID string) error
}
