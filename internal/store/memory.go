package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"patient-notes-api/internal/model"
)

// Memory is a mutex-guarded map implementation of Store. It mirrors the
// Postgres semantics exactly (ordering, page math, not-found conditions)
// so handler tests can run without a database.
type Memory struct {
	mu       sync.Mutex
	patients map[string]model.Patient
	notes    map[string]model.Note
}

func NewMemory() *Memory {
	return &Memory{
		patients: make(map[string]model.Patient),
		notes:    make(map[string]model.Note),
	}
}

// Postgres timestamps carry microsecond precision.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (m *Memory) ListPatients(_ context.Context) ([]model.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Patient, 0, len(m.patients))
	for _, p := range m.patients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) CreatePatient(_ context.Context, name string) (*model.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts := now()
	p := model.Patient{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	m.patients[p.ID] = p
	return &p, nil
}

func (m *Memory) DeletePatient(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.patients[id]; !ok {
		return ErrPatientNotFound
	}
	delete(m.patients, id)
	for nid, n := range m.notes {
		if n.PatientID == id {
			delete(m.notes, nid)
		}
	}
	return nil
}

func (m *Memory) ListNotes(_ context.Context, patientID string, page, limit int) ([]model.Note, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.patients[patientID]; !ok {
		return nil, 0, ErrPatientNotFound
	}

	var all []model.Note
	for _, n := range m.notes {
		if n.PatientID == patientID {
			all = append(all, n)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return strings.Compare(all[i].ID, all[j].ID) > 0
	})

	totalPages := (len(all) + limit - 1) / limit
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, totalPages, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], totalPages, nil
}

func (m *Memory) CreateNote(_ context.Context, patientID, title, content string) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.patients[patientID]; !ok {
		return nil, ErrPatientNotFound
	}

	ts := now()
	n := model.Note{
		ID:        uuid.New().String(),
		PatientID: patientID,
		Title:     title,
		Content:   content,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	m.notes[n.ID] = n
	return &n, nil
}

func (m *Memory) UpdateNote(_ context.Context, patientID, noteID, content string) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.patients[patientID]; !ok {
		return nil, ErrPatientNotFound
	}
	n, ok := m.notes[noteID]
	if !ok || n.PatientID != patientID {
		return nil, ErrNoteNotFound
	}
	n.Content = content
	n.UpdatedAt = now()
	m.notes[noteID] = n
	return &n, nil
}

func (m *Memory) DeleteNote(_ context.Context, patientID, noteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[noteID]
	if !ok || n.PatientID != patientID {
		return ErrNoteNotFound
	}
	delete(m.notes, noteID)
	return nil
}
