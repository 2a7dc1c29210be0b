// Package gameserver exposes the combat engine and the combatant store over
// HTTP, plus a gRPC health endpoint for orchestrators.
package gameserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/cory-johannsen/clash/internal/arena"
	"github.com/cory-johannsen/clash/internal/game/combat"
	"github.com/cory-johannsen/clash/internal/observability"
)

// HealthChecker reports whether a backing dependency is reachable.
// *postgres.Pool satisfies it.
type HealthChecker interface {
	Health(ctx context.Context, timeout time.Duration) error
}

// Handler serves the combat HTTP API.
type Handler struct {
	engine arena.Resolver
	store  arena.Store
	rounds *arena.Service
	health HealthChecker
	logger *zap.Logger
}

// NewHandler creates a Handler. health may be nil when nothing external
// needs checking.
//
// Precondition: engine, store, rounds and logger must be non-nil.
func NewHandler(engine arena.Resolver, store arena.Store, rounds *arena.Service, health HealthChecker, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, store: store, rounds: rounds, health: health, logger: logger}
}

// CreateCombatantResponse is returned by POST /v1/combatants.
type CreateCombatantResponse struct {
	ID        uuid.UUID    `json:"id"`
	Combatant arena.Record `json:"combatant"`
}

// Resolve handles POST /v1/combat: one stateless round between two records.
func (h *Handler) Resolve(c echo.Context) error {
	var req arena.Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	resp, err := arena.Resolve(h.engine, req)
	if err != nil {
		return mapError(err)
	}
	observability.FromContext(c.Request().Context(), h.logger).Debug("stateless round resolved",
		zap.String("round_id", resp.RoundID),
		zap.String("outcome", resp.Outcome),
	)
	return c.JSON(http.StatusOK, resp)
}

// CreateCombatant handles POST /v1/combatants.
func (h *Handler) CreateCombatant(c echo.Context) error {
	var rec arena.Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	if err := c.Validate(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if rec.StatusEffects == nil {
		rec.StatusEffects = []arena.StatusEntry{}
	}
	id, err := h.store.Create(c.Request().Context(), rec)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, CreateCombatantResponse{ID: id, Combatant: rec})
}

// GetCombatant handles GET /v1/combatants/:id.
func (h *Handler) GetCombatant(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a UUID")
	}
	rec, err := h.store.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

// PlayRound handles POST /v1/rounds: one persisted round between two stored
// combatants.
func (h *Handler) PlayRound(c echo.Context) error {
	var req arena.RoundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	resp, err := h.rounds.PlayRound(c.Request().Context(), req)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(c echo.Context) error {
	if h.health != nil {
		if err := h.health.Health(c.Request().Context(), 2*time.Second); err != nil {
			observability.FromContext(c.Request().Context(), h.logger).Warn("health check failed", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// mapError converts domain errors into HTTP errors. Anything unrecognised
// falls through to the 500 path of the error handler.
func mapError(err error) error {
	switch {
	case errors.Is(err, combat.ErrInvalidCombatant), errors.Is(err, combat.ErrUnknownEffect):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	case errors.Is(err, arena.ErrSameCombatant):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error()).SetInternal(err)
	case errors.Is(err, arena.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	default:
		return err
	}
}
