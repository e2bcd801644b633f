// Package postgres keeps an append-only history of solve runs. It stores
// outcomes and sizes only, never the rosters themselves.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rota-solver/internal/models"

	_ "github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Storage{db: db}
	if err := s.init(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

func (s *Storage) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS solve_history (
			run_id     TEXT PRIMARY KEY,
			status     TEXT NOT NULL,
			slots      INTEGER NOT NULL,
			employees  INTEGER NOT NULL,
			shifts     INTEGER NOT NULL,
			solve_ms   BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	return err
}

func (s *Storage) RecordSolve(ctx context.Context, rec *models.SolveRecord) error {
	const op = "storage.postgres.RecordSolve"

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO solve_history (run_id, status, slots, employees, shifts, solve_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.RunID,
		rec.Status,
		rec.Slots,
		rec.Employees,
		rec.Shifts,
		rec.SolveTime.Milliseconds(),
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}
