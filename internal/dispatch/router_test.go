package dispatch

import (
	"context"
	"testing"
)

func namedAction(name string) Action {
	return ActionFunc(func(context.Context, *Request) Result {
		return OkWith(name)
	})
}

func actionName(t *testing.T, rt *Route) string {
	t.Helper()
	res := rt.Action.Execute(context.Background(), &Request{})
	name, ok := res.Payload.(string)
	if !ok {
		t.Fatalf("expected named action, got %+v", res)
	}
	return name
}

func TestRouter_ExtractsPathParams(t *testing.T) {
	r := NewRouter()
	r.Handle("GET", "/billboard/:id", namedAction("by-id"))

	rt, params, ok := r.Route("GET", "/billboard/42")
	if !ok {
		t.Fatalf("expected route match")
	}
	if got := actionName(t, rt); got != "by-id" {
		t.Fatalf("wrong action: %s", got)
	}
	if params["id"] != "42" {
		t.Fatalf("expected id=42, got %q", params["id"])
	}
}

func TestRouter_LiteralSegmentBeatsParam(t *testing.T) {
	r := NewRouter()
	r.Handle("GET", "/billboard/lock", namedAction("literal"))
	r.Handle("GET", "/billboard/:id", namedAction("param"))

	rt, _, ok := r.Route("GET", "/billboard/lock")
	if !ok {
		t.Fatalf("expected route match")
	}
	if got := actionName(t, rt); got != "literal" {
		t.Fatalf("GET /billboard/lock resolved to %s, want literal", got)
	}

	rt, params, ok := r.Route("GET", "/billboard/7")
	if !ok {
		t.Fatalf("expected route match")
	}
	if got := actionName(t, rt); got != "param" {
		t.Fatalf("GET /billboard/7 resolved to %s, want param", got)
	}
	if params["id"] != "7" {
		t.Fatalf("expected id=7, got %q", params["id"])
	}
}

func TestRouter_FirstRegisteredWins(t *testing.T) {
	r := NewRouter()
	r.Handle("GET", "/thing/:a", namedAction("first"))
	r.Handle("GET", "/thing/:b", namedAction("second"))

	rt, _, ok := r.Route("GET", "/thing/x")
	if !ok {
		t.Fatalf("expected route match")
	}
	if got := actionName(t, rt); got != "first" {
		t.Fatalf("expected first registration to win, got %s", got)
	}
}

func TestRouter_VerbMustMatch(t *testing.T) {
	r := NewRouter()
	r.Handle("POST", "/billboard", namedAction("insert"))

	if _, _, ok := r.Route("GET", "/billboard"); ok {
		t.Fatalf("GET should not match a POST registration")
	}
}

func TestRouter_NoRoute(t *testing.T) {
	r := NewRouter()
	r.Handle("GET", "/billboard", namedAction("list"))

	if _, _, ok := r.Route("GET", "/unknown"); ok {
		t.Fatalf("expected no match")
	}
	if _, _, ok := r.Route("GET", "/billboard/extra"); ok {
		t.Fatalf("segment count mismatch should not match")
	}
}

func TestRouter_DuplicateRegistrationPanics(t *testing.T) {
	r := NewRouter()
	r.Handle("GET", "/billboard", namedAction("list"))

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate registration")
		}
	}()
	r.Handle("GET", "/billboard", namedAction("again"))
}
