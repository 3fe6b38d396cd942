package dispatch

import (
	"fmt"
	"strings"
)

// Route is one entry in the registration table: a verb plus path pattern
// bound to an Action, together with the route's declared policy.
type Route struct {
	Verb    string
	Pattern string
	Action  Action

	// RequiresAuth marks routes the auth middleware must reject when no
	// valid session token accompanies the request.
	RequiresAuth bool

	// BodyType is the tag an envelope must carry for this route's body;
	// empty for body-less routes.
	BodyType string

	// newBody builds the pointer the body is decoded into.
	newBody func() any

	segments []segment
}

// segment is one path element: either a literal or a named parameter.
type segment struct {
	literal string
	param   string
}

// RouteOption configures a Route at registration time.
type RouteOption func(*Route)

// RequireAuth marks the route as rejecting requests without a valid session.
func RequireAuth() RouteOption {
	return func(rt *Route) { rt.RequiresAuth = true }
}

// BodyOf declares the expected body type for a route. The envelope must tag
// its body with the same name; the dispatcher decodes into a fresh *T.
func BodyOf[T any](tag string) RouteOption {
	return func(rt *Route) {
		rt.BodyType = tag
		rt.newBody = func() any { return new(T) }
	}
}

// Router maps verb+path to a registered Action. Registration order is
// preserved and significant: the first matching pattern wins, so literal
// patterns must be registered before parameter patterns they overlap with.
type Router struct {
	routes []*Route
}

func NewRouter() *Router {
	return &Router{}
}

// Handle registers an Action under verb and pattern. Patterns use named
// `:param` segments matched positionally, e.g. /billboard/:id. Handle panics
// on a duplicate verb+pattern registration, which is always a wiring bug.
func (r *Router) Handle(verb, pattern string, action Action, opts ...RouteOption) {
	for _, existing := range r.routes {
		if existing.Verb == verb && existing.Pattern == pattern {
			panic(fmt.Sprintf("dispatch: route %s %s registered twice", verb, pattern))
		}
	}

	rt := &Route{
		Verb:     verb,
		Pattern:  pattern,
		Action:   action,
		segments: parseSegments(pattern),
	}
	for _, opt := range opts {
		opt(rt)
	}
	r.routes = append(r.routes, rt)
}

// Route matches verb+path against the registration table, returning the
// route and bound path parameters, or ok=false when nothing matches.
func (r *Router) Route(verb, path string) (*Route, map[string]string, bool) {
	parts := splitPath(path)

	for _, rt := range r.routes {
		if rt.Verb != verb || len(rt.segments) != len(parts) {
			continue
		}
		params, ok := matchSegments(rt.segments, parts)
		if ok {
			return rt, params, true
		}
	}
	return nil, nil, false
}

func matchSegments(segs []segment, parts []string) (map[string]string, bool) {
	params := map[string]string{}
	for i, seg := range segs {
		if seg.param != "" {
			params[seg.param] = parts[i]
			continue
		}
		if seg.literal != parts[i] {
			return nil, false
		}
	}
	return params, true
}

func parseSegments(pattern string) []segment {
	parts := splitPath(pattern)
	segs := make([]segment, len(parts))
	for i, p := range parts {
		if strings.HasPrefix(p, ":") {
			segs[i] = segment{param: p[1:]}
		} else {
			segs[i] = segment{literal: p}
		}
	}
	return segs
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
