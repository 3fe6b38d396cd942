// Package httpgw exposes the dispatcher over HTTP: one envelope per POST to
// /api/request, a WebSocket duplex channel at /api/ws, and the operational
// endpoints (health probes, Prometheus metrics). The gateway is a transport
// only; routing, authentication, and authorization all happen inside the
// dispatcher it wraps.
package httpgw

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/dispatch"
)

// Pinger is a connectivity check for an external dependency, reported by the
// readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// New builds the Echo instance. checks maps dependency names to readiness
// pingers; a memory-only deployment passes an empty map.
func New(d *dispatch.Dispatcher, checks map[string]Pinger, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("billboard_gateway"))

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", liveness)
	e.GET("/health/ready", readiness(checks))

	e.POST("/api/request", handleEnvelope(d))
	e.GET("/api/ws", handleSocket(d, log))

	return e
}

// handleEnvelope serves the single-request transport: one framed envelope in,
// one reply out. The session token may ride in the envelope or in a
// conventional bearer header; the header wins when both are present.
func handleEnvelope(d *dispatch.Dispatcher) echo.HandlerFunc {
	return func(c echo.Context) error {
		var env dispatch.Envelope
		if err := c.Bind(&env); err != nil {
			return c.JSON(http.StatusBadRequest, dispatch.Reply{
				Result: dispatch.BadRequest("Malformed request envelope."),
			})
		}
		if token := bearerToken(c.Request()); token != "" {
			env.Token = token
		}

		res := d.Dispatch(c.Request().Context(), env)
		return c.JSON(statusCode(res.Status), dispatch.Reply{Seq: env.Seq, Result: res})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// statusCode maps a result tag onto the closest HTTP status for clients that
// only look at the response code. The tag in the body stays authoritative.
func statusCode(s dispatch.Status) int {
	switch s {
	case dispatch.StatusOK:
		return http.StatusOK
	case dispatch.StatusBadRequest:
		return http.StatusBadRequest
	case dispatch.StatusUnauthorized:
		return http.StatusUnauthorized
	case dispatch.StatusUnsupportedType:
		return http.StatusUnsupportedMediaType
	case dispatch.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func readiness(checks map[string]Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		deps := make(map[string]dependencyStatus, len(checks))
		healthy := true
		for name, check := range checks {
			if err := check.Ping(ctx); err != nil {
				deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
				healthy = false
			} else {
				deps[name] = dependencyStatus{Status: "ok"}
			}
		}

		status, httpStatus := "ok", http.StatusOK
		if !healthy {
			status, httpStatus = "degraded", http.StatusServiceUnavailable
		}
		return c.JSON(httpStatus, readinessResponse{Status: status, Dependencies: deps})
	}
}
