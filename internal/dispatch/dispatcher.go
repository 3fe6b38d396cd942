package dispatch

import (
	"context"
	"encoding/json"
	"runtime/debug"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Dispatcher is the top-level request loop shared by every transport:
// route the envelope, check and decode the body against the route's declared
// type, run the middleware chain, execute the Action, and return the tagged
// Result. A Dispatcher is immutable after construction and safe for
// concurrent use.
type Dispatcher struct {
	router   *Router
	chain    []Middleware
	validate *validator.Validate
	log      zerolog.Logger
}

// NewDispatcher builds a Dispatcher; mw[0] runs outermost around every
// Action.
func NewDispatcher(router *Router, log zerolog.Logger, mw ...Middleware) *Dispatcher {
	return &Dispatcher{
		router:   router,
		chain:    mw,
		validate: validator.New(),
		log:      log,
	}
}

// Dispatch handles one envelope and always returns a well-formed Result:
// unexpected failures, including panics in Actions, are converted to
// ServerError rather than dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, env Envelope) (res Result) {
	requestID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Str("request_id", requestID).
				Str("verb", env.Verb).
				Str("path", env.Path).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("action panicked")
			res = ServerError("Internal server error.")
		}
	}()

	route, pathParams, ok := d.router.Route(env.Verb, env.Path)
	if !ok {
		return NotFound()
	}

	req := &Request{
		ID:         requestID,
		Verb:       env.Verb,
		Path:       env.Path,
		PathParams: pathParams,
		Params:     env.Params,
		Token:      env.Token,
		Route:      route,
	}
	if req.Params == nil {
		req.Params = map[string]string{}
	}

	if route.BodyType != "" {
		if env.BodyType != route.BodyType || len(env.Body) == 0 {
			return UnsupportedType(route.BodyType)
		}
		body := route.newBody()
		if err := json.Unmarshal(env.Body, body); err != nil {
			return UnsupportedType(route.BodyType)
		}
		if err := validateBody(d.validate, body); err != nil {
			return BadRequest(err.Error())
		}
		req.Body = body
	}

	handler := Chain(func(ctx context.Context, req *Request) Result {
		return route.Action.Execute(ctx, req)
	}, d.chain...)

	res = handler(ctx, req)
	if res.Status == "" {
		// An Action returned a zero Result; never forward it unlabelled.
		d.log.Error().Str("request_id", requestID).Str("path", env.Path).Msg("action returned untagged result")
		return ServerError("Internal server error.")
	}
	return res
}
