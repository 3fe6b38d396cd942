package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/core/ports"
	"github.com/adsignage/billboard-server/internal/metrics"
)

// Handler consumes a routed Request and produces a Result.
type Handler func(ctx context.Context, req *Request) Result

// Middleware intercepts a request before the Action runs. It may
// short-circuit with an error Result, annotate the Request, or call next.
type Middleware func(next Handler) Handler

// Chain composes middleware around h; mw[0] runs outermost.
func Chain(h Handler, mw ...Middleware) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// Auth resolves the request token and attaches the session. Routes registered
// with RequireAuth are rejected when no session can be attached; public
// routes proceed anonymously. Fine-grained capability checks stay inside the
// Actions, which know which capability their operation needs.
func Auth(auth ports.AuthService, log zerolog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) Result {
			if req.Token != "" {
				session, err := auth.Resolve(ctx, req.Token)
				switch {
				case err == nil:
					req.Session = &session
				case errors.Is(err, domain.ErrUnauthenticated):
					// Invalid token: treated the same as no token.
				default:
					log.Error().Err(err).Str("request_id", req.ID).Msg("session resolution failed")
					return ServerError("Could not verify session.")
				}
			}

			if req.Route.RequiresAuth && req.Session == nil {
				return Unauthorized("You must be logged in to perform this action.")
			}
			return next(ctx, req)
		}
	}
}

// AccessLog emits one structured line per request with the outcome and
// duration.
func AccessLog(log zerolog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) Result {
			start := time.Now()
			res := next(ctx, req)

			event := log.Info()
			if res.Status == StatusServerError {
				event = log.Error()
			}
			event.
				Str("request_id", req.ID).
				Str("verb", req.Verb).
				Str("path", req.Path).
				Str("status", string(res.Status)).
				Dur("duration", time.Since(start)).
				Msg("request handled")
			return res
		}
	}
}

// Instrument records dispatch counters and latency.
func Instrument() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) Result {
			start := time.Now()
			res := next(ctx, req)
			metrics.RequestsTotal.WithLabelValues(req.Verb, string(res.Status)).Inc()
			metrics.RequestDuration.WithLabelValues(req.Verb).Observe(time.Since(start).Seconds())
			return res
		}
	}
}
