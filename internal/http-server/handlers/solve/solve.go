package solve

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"rota-solver/api"
	"rota-solver/pkg/response"
	"rota-solver/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Solver interface {
	Solve(ctx context.Context, req *api.SolveRequest, idempotencyKey *string) (*api.SolveResponse, error)
}

func New(log *slog.Logger, solver Solver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.solve.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req api.SolveRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded",
			slog.String("week_start", req.WeekStart),
			slog.Int("slots", len(req.Slots)),
			slog.Int("employees", len(req.Employees)),
		)

		idempotencyKey := r.Header.Get("Idempotency-Key")
		var idempotencyKeyPtr *string
		if idempotencyKey != "" {
			idempotencyKeyPtr = &idempotencyKey
		}

		resp, err := solver.Solve(r.Context(), &req, idempotencyKeyPtr)

		if errors.Is(err, response.ErrLocked) {
			log.Error("Duplicate solve in flight for idempotency key")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "a solve with this idempotency key is already running"))
			return
		}

		if err != nil {
			log.Error("Failed to solve", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to solve"))
			return
		}

		log.Info("Solve completed", slog.String("status", string(resp.Status)))

		// Infeasible and error are regular outcomes, not transport failures.
		render.JSON(w, r, resp)
	}
}
