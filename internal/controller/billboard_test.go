package controller

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/core/ports"
	"github.com/adsignage/billboard-server/internal/dispatch"
	storemem "github.com/adsignage/billboard-server/internal/infrastructure/store/memory"
)

func newBillboardStore() ports.EntityStore[domain.Billboard] {
	return storemem.NewStore("billboard",
		storemem.WithUniqueKey(func(b domain.Billboard) string { return b.Name }))
}

// sessionRequest fabricates a request the auth middleware would produce for
// a logged-in user holding the given permissions.
func sessionRequest(perms domain.PermissionSet) *dispatch.Request {
	return &dispatch.Request{
		ID:     "test",
		Params: map[string]string{},
		Session: &domain.Session{
			Token:       "tok",
			Username:    "tester",
			Permissions: perms,
		},
	}
}

func TestBillboardInsert_DuplicateName(t *testing.T) {
	store := newBillboardStore()
	c := NewBillboardController(store, zerolog.Nop())
	ctx := context.Background()
	perms := domain.PermissionSet{CanCreateBillboard: true}

	req := sessionRequest(perms)
	req.Body = &domain.Billboard{Name: "ad1"}
	if res := c.Insert(ctx, req); res.Status != dispatch.StatusOK {
		t.Fatalf("first insert: %+v", res)
	}

	req = sessionRequest(perms)
	req.Body = &domain.Billboard{Name: "ad1"}
	res := c.Insert(ctx, req)
	if res.Status != dispatch.StatusBadRequest {
		t.Fatalf("expected bad_request, got %+v", res)
	}
	if res.Message != "Billboard name already exists." {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	stored, _ := store.Get(ctx, func(b domain.Billboard) bool { return b.Name == "ad1" })
	if len(stored) != 1 {
		t.Fatalf("store should hold exactly one ad1, got %d", len(stored))
	}
}

func TestBillboardInsert_RequiresCapability(t *testing.T) {
	c := NewBillboardController(newBillboardStore(), zerolog.Nop())

	req := sessionRequest(domain.PermissionSet{})
	req.Body = &domain.Billboard{Name: "ad1"}
	if res := c.Insert(context.Background(), req); res.Status != dispatch.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %+v", res)
	}
}

func TestBillboardUpdate_NameHeldByOther(t *testing.T) {
	store := newBillboardStore()
	c := NewBillboardController(store, zerolog.Nop())
	ctx := context.Background()

	_, _ = store.Insert(ctx, domain.Billboard{Name: "ad1"})
	second, _ := store.Insert(ctx, domain.Billboard{Name: "ad2"})

	req := sessionRequest(domain.PermissionSet{CanEditBillboard: true})
	second.Name = "ad1"
	req.Body = &second
	res := c.Update(ctx, req)
	if res.Status != dispatch.StatusBadRequest || res.Message != "Billboard name already exists." {
		t.Fatalf("expected name conflict, got %+v", res)
	}
}

func TestBillboardUpdate_MissingID(t *testing.T) {
	c := NewBillboardController(newBillboardStore(), zerolog.Nop())

	req := sessionRequest(domain.PermissionSet{CanEditBillboard: true})
	req.Body = &domain.Billboard{ID: 99, Name: "ghost"}
	if res := c.Update(context.Background(), req); res.Status != dispatch.StatusNotFound {
		t.Fatalf("expected not_found, got %+v", res)
	}
}

func TestBillboardGetByID(t *testing.T) {
	store := newBillboardStore()
	c := NewBillboardController(store, zerolog.Nop())
	ctx := context.Background()

	stored, _ := store.Insert(ctx, domain.Billboard{Name: "ad1"})

	req := sessionRequest(domain.PermissionSet{})
	req.PathParams = map[string]string{"id": "1"}
	res := c.GetByID(ctx, req)
	if res.Status != dispatch.StatusOK {
		t.Fatalf("expected ok, got %+v", res)
	}
	if got := res.Payload.(domain.Billboard); got != stored {
		t.Fatalf("unexpected payload: %+v", got)
	}

	req = sessionRequest(domain.PermissionSet{})
	req.PathParams = map[string]string{"id": "xyz"}
	if res := c.GetByID(ctx, req); res.Status != dispatch.StatusBadRequest {
		t.Fatalf("non-numeric id: expected bad_request, got %+v", res)
	}

	req = sessionRequest(domain.PermissionSet{})
	req.PathParams = map[string]string{"id": "42"}
	if res := c.GetByID(ctx, req); res.Status != dispatch.StatusNotFound {
		t.Fatalf("unknown id: expected not_found, got %+v", res)
	}
}

func TestBillboardGetByLock(t *testing.T) {
	store := newBillboardStore()
	c := NewBillboardController(store, zerolog.Nop())
	ctx := context.Background()

	_, _ = store.Insert(ctx, domain.Billboard{Name: "open"})
	_, _ = store.Insert(ctx, domain.Billboard{Name: "closed", Locked: true})

	req := sessionRequest(domain.PermissionSet{})
	req.PathParams = map[string]string{"lock": "true"}
	res := c.GetByLock(ctx, req)
	if res.Status != dispatch.StatusOK {
		t.Fatalf("expected ok, got %+v", res)
	}
	locked := res.Payload.([]domain.Billboard)
	if len(locked) != 1 || locked[0].Name != "closed" {
		t.Fatalf("unexpected lock filter result: %+v", locked)
	}

	req = sessionRequest(domain.PermissionSet{})
	req.PathParams = map[string]string{"lock": "sideways"}
	if res := c.GetByLock(ctx, req); res.Status != dispatch.StatusBadRequest {
		t.Fatalf("bad lock value: expected bad_request, got %+v", res)
	}
}
