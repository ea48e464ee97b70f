package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"patient-notes-api/internal/store"
)

func setupPostgres(t *testing.T) *store.Postgres {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)
	if migration, err := os.ReadFile("../../db/migrations/001_init.sql"); err == nil {
		if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
			t.Fatalf("migration: %v", err)
		}
	}
	return store.NewPostgres(pool)
}

func TestPostgresCascadeDelete(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	p, err := s.CreatePatient(ctx, "Cascade Test")
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := s.CreateNote(ctx, p.ID, "t", "c"); err != nil {
			t.Fatalf("create note: %v", err)
		}
	}

	if err := s.DeletePatient(ctx, p.ID); err != nil {
		t.Fatalf("delete patient: %v", err)
	}

	if _, _, err := s.ListNotes(ctx, p.ID, 1, 2); err != store.ErrPatientNotFound {
		t.Errorf("expected ErrPatientNotFound after cascade, got %v", err)
	}
}

func TestPostgresUpdateNoteScoped(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	p1, err := s.CreatePatient(ctx, "Owner")
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	p2, err := s.CreatePatient(ctx, "Other")
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	t.Cleanup(func() {
		_ = s.DeletePatient(ctx, p1.ID)
		_ = s.DeletePatient(ctx, p2.ID)
	})

	n, err := s.CreateNote(ctx, p1.ID, "Visit", "BP 120/80")
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	if _, err := s.UpdateNote(ctx, p2.ID, n.ID, "hijacked"); err != store.ErrNoteNotFound {
		t.Errorf("expected ErrNoteNotFound for wrong pairing, got %v", err)
	}

	updated, err := s.UpdateNote(ctx, p1.ID, n.ID, "BP 118/78")
	if err != nil {
		t.Fatalf("update note: %v", err)
	}
	if updated.Content != "BP 118/78" || updated.Title != "Visit" {
		t.Errorf("unexpected note after update: %+v", updated)
	}
	if updated.UpdatedAt.Before(n.UpdatedAt) {
		t.Error("updated_at not refreshed")
	}
}

func TestPostgresPagination(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	p, err := s.CreatePatient(ctx, "Paged")
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	t.Cleanup(func() { _ = s.DeletePatient(ctx, p.ID) })

	for i := 0; i < 5; i++ {
		if _, err := s.CreateNote(ctx, p.ID, "t", "c"); err != nil {
			t.Fatalf("create note: %v", err)
		}
	}

	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		notes, totalPages, err := s.ListNotes(ctx, p.ID, page, 2)
		if err != nil {
			t.Fatalf("list notes page %d: %v", page, err)
		}
		if totalPages != 3 {
			t.Errorf("page %d: totalPages = %d, want 3", page, totalPages)
		}
		want := 2
		if page == 3 {
			want = 1
		}
		if len(notes) != want {
			t.Errorf("page %d: got %d notes, want %d", page, len(notes), want)
		}
		for _, n := range notes {
			if seen[n.ID] {
				t.Errorf("note %s returned on two pages", n.ID)
			}
			seen[n.ID] = true
		}
	}
}

func TestPostgresDeleteNoteIdempotence(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	p, err := s.CreatePatient(ctx, "Jane")
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	t.Cleanup(func() { _ = s.DeletePatient(ctx, p.ID) })

	n, err := s.CreateNote(ctx, p.ID, "t", "c")
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	if err := s.DeleteNote(ctx, p.ID, n.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := s.DeleteNote(ctx, p.ID, n.ID); err != store.ErrNoteNotFound {
		t.Errorf("second delete: expected ErrNoteNotFound, got %v", err)
	}
}

func TestPostgresDeleteUnknownPatient(t *testing.T) {
	s := setupPostgres(t)
	if err := s.DeletePatient(context.Background(), uuid.New().String()); err != store.ErrPatientNotFound {
		t.Errorf("expected ErrPatientNotFound, got %v", err)
	}
}
