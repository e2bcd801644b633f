package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rota-solver/api"
	"rota-solver/internal/lock"
	"rota-solver/internal/models"
	"rota-solver/internal/schedule"
	"rota-solver/pkg/response"
	"rota-solver/pkg/sl"

	"github.com/google/uuid"
)

// Service runs solves on behalf of the transport layer: it enforces the
// idempotency lock, applies the configured time budget, and records a history
// row per solve. Store and Locker are both optional; a nil value turns the
// feature off.
type Service struct {
	log     *slog.Logger
	store   Store
	locker  lock.Locker
	timeout time.Duration
}

type Store interface {
	RecordSolve(ctx context.Context, rec *models.SolveRecord) error
}

func NewService(log *slog.Logger, store Store, locker lock.Locker, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = schedule.DefaultTimeout
	}
	return &Service{log: log, store: store, locker: locker, timeout: timeout}
}

// Solve runs one bounded solve. The only error it can return is
// response.ErrLocked for a duplicate idempotency key; every other outcome,
// including bad input and infeasibility, is a status inside the response.
func (s *Service) Solve(ctx context.Context, req *api.SolveRequest, idempotencyKey *string) (*api.SolveResponse, error) {
	const op = "service.Solve"

	if idempotencyKey != nil && s.locker != nil {
		locked, err := s.locker.Lock(ctx, *idempotencyKey, s.timeout)
		if err != nil {
			return nil, fmt.Errorf("%s: lock error: %w", op, err)
		}
		if !locked {
			return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
		}
		defer func() {
			_ = s.locker.Unlock(ctx, *idempotencyKey)
		}()
	}

	solveCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, stats := schedule.Solve(solveCtx, req)

	s.log.Info("Solve finished",
		slog.String("status", string(resp.Status)),
		slog.Int("shifts", len(resp.Shifts)),
		slog.Int("nodes", stats.Nodes),
		slog.String("duration", stats.Duration.String()),
	)

	if s.store != nil {
		rec := &models.SolveRecord{
			RunID:     uuid.NewString(),
			Status:    string(resp.Status),
			Slots:     len(req.Slots),
			Employees: len(req.Employees),
			Shifts:    len(resp.Shifts),
			SolveTime: stats.Duration,
			CreatedAt: time.Now(),
		}
		// History is best effort; a broken store never fails a solve.
		if err := s.store.RecordSolve(ctx, rec); err != nil {
			s.log.Error("Failed to record solve history", sl.Err(err))
		}
	}

	return resp, nil
}
