package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"patient-notes-api/internal/model"
)

func (s *Postgres) ListNotes(ctx context.Context, patientID string, page, limit int) ([]model.Note, int, error) {
	if ok, err := s.patientExists(ctx, patientID); err != nil {
		return nil, 0, err
	} else if !ok {
		return nil, 0, ErrPatientNotFound
	}

	var count int
	if err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM note WHERE patient_id = $1`, patientID,
	).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, patient_id, title, content, created_at, updated_at
		 FROM note
		 WHERE patient_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`, patientID, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.PatientID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}

	totalPages := (count + limit - 1) / limit
	return out, totalPages, rows.Err()
}

func (s *Postgres) CreateNote(ctx context.Context, patientID, title, content string) (*model.Note, error) {
	if ok, err := s.patientExists(ctx, patientID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrPatientNotFound
	}

	n := &model.Note{PatientID: patientID, Title: title, Content: content}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO note (patient_id, title, content) VALUES ($1,$2,$3)
		 RETURNING id, created_at, updated_at`, patientID, title, content,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		// cascade delete raced the existence check
		if isFKViolation(err) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return n, nil
}

func (s *Postgres) UpdateNote(ctx context.Context, patientID, noteID, content string) (*model.Note, error) {
	if ok, err := s.patientExists(ctx, patientID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrPatientNotFound
	}

	n := &model.Note{ID: noteID, PatientID: patientID, Content: content}
	err := s.pool.QueryRow(ctx,
		`UPDATE note SET content = $1, updated_at = NOW()
		 WHERE id = $2 AND patient_id = $3
		 RETURNING title, created_at, updated_at`, content, noteID, patientID,
	).Scan(&n.Title, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// note missing or owned by another patient
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Postgres) DeleteNote(ctx context.Context, patientID, noteID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM note WHERE id = $1 AND patient_id = $2`, noteID, patientID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}
