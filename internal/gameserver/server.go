package gameserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/cory-johannsen/clash/internal/observability"
)

// CombatServiceName is the gRPC health service name reported for the
// combat API.
const CombatServiceName = "clash.v1.Combat"

// NewEcho builds the HTTP router for h.
//
// Postcondition: Every request carries an X-Request-ID and a request-scoped
// logger; errors are rendered as {"error": message}.
func NewEcho(h *Handler, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}))

	e.GET("/healthz", h.Healthz)
	v1 := e.Group("/v1")
	v1.POST("/combat", h.Resolve)
	v1.POST("/combatants", h.CreateCombatant)
	v1.GET("/combatants/:id", h.GetCombatant)
	v1.POST("/rounds", h.PlayRound)
	return e
}

// requestLogger stores a logger tagged with the request id in the request
// context. It must run after middleware.RequestID.
func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Response().Header().Get(echo.HeaderXRequestID)
			scoped := logger.With(zap.String("request_id", reqID))
			c.SetRequest(c.Request().WithContext(observability.ContextWithLogger(c.Request().Context(), scoped)))
			return next(c)
		}
	}
}

func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			observability.FromContext(c.Request().Context(), logger).Error("unhandled error", zap.Error(err))
			he = echo.NewHTTPError(http.StatusInternalServerError)
		}
		if writeErr := c.JSON(he.Code, map[string]any{"error": he.Message}); writeErr != nil {
			logger.Warn("writing error response", zap.Error(writeErr))
		}
	}
}

// NewGRPCServer builds a gRPC server that serves only the standard health
// service, with the overall status and CombatServiceName set to SERVING.
func NewGRPCServer() (*grpc.Server, *health.Server) {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(CombatServiceName, healthpb.HealthCheckResponse_SERVING)

	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	return gs, hs
}
