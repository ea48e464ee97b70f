package store

import (
	"context"

	"patient-notes-api/internal/model"
)

func (s *Postgres) ListPatients(ctx context.Context) ([]model.Patient, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, created_at, updated_at
		 FROM patient
		 ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Patient
	for rows.Next() {
		var p model.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Postgres) CreatePatient(ctx context.Context, name string) (*model.Patient, error) {
	p := &model.Patient{Name: name}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO patient (name) VALUES ($1)
		 RETURNING id, created_at, updated_at`, name,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Postgres) DeletePatient(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPatientNotFound
	}
	return nil
}
