package dispatch

import (
	"encoding/json"

	"github.com/adsignage/billboard-server/internal/core/domain"
)

// Envelope is the wire-level request message a transport delivers, one whole
// frame per request. Seq is an optional client-chosen correlation number
// echoed back in the reply.
type Envelope struct {
	Seq      int64             `json:"seq,omitempty"`
	Verb     string            `json:"verb"`
	Path     string            `json:"path"`
	Params   map[string]string `json:"params,omitempty"`
	BodyType string            `json:"body_type,omitempty"`
	Body     json.RawMessage   `json:"body,omitempty"`
	Token    string            `json:"token,omitempty"`
}

// Request is a routed envelope, enriched by the dispatcher (decoded body,
// path parameters, correlation id) and by middleware (resolved session). It
// is transient: constructed per incoming message, never shared.
type Request struct {
	// ID is a server-assigned correlation id, present in every log line
	// emitted while handling this request.
	ID string

	Verb       string
	Path       string
	PathParams map[string]string
	Params     map[string]string

	// Body is the decoded, validated payload; its concrete type is the
	// pointer type the matched route registered, nil for body-less routes.
	Body any

	Token string

	// Session is attached by the auth middleware when the token resolves;
	// nil for anonymous requests on public routes.
	Session *domain.Session

	// Route is the matched registration entry, giving middleware access to
	// the route's declared policy.
	Route *Route
}

// Param returns a named parameter, preferring path segments over the
// envelope's free-form params.
func (r *Request) Param(name string) string {
	if v, ok := r.PathParams[name]; ok {
		return v
	}
	return r.Params[name]
}

// Reply pairs a Result with the originating envelope's Seq so clients
// multiplexing one connection can correlate responses.
type Reply struct {
	Seq int64 `json:"seq,omitempty"`
	Result
}
