package controller

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/core/ports"
	"github.com/adsignage/billboard-server/internal/core/service"
	"github.com/adsignage/billboard-server/internal/dispatch"
	storemem "github.com/adsignage/billboard-server/internal/infrastructure/store/memory"
)

type userEnv struct {
	users       ports.EntityStore[domain.User]
	permissions ports.EntityStore[domain.PermissionSet]
	hasher      ports.PasswordHasher
	controller  *UserController
}

func newUserEnv() *userEnv {
	users := storemem.NewStore("user",
		storemem.WithUniqueKey(func(u domain.User) string { return u.Username }))
	permissions := storemem.NewStore("permission",
		storemem.WithUniqueKey(func(p domain.PermissionSet) string { return p.Username }))
	hasher := service.NewArgon2Hasher()
	return &userEnv{
		users:       users,
		permissions: permissions,
		hasher:      hasher,
		controller:  NewUserController(users, permissions, hasher, zerolog.Nop()),
	}
}

func (e *userEnv) seed(t *testing.T, username, password string) {
	t.Helper()
	digest, salt, err := service.NewCredentials(e.hasher, password)
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	if _, err := e.users.Insert(context.Background(), domain.User{
		Username: username, Password: digest, Salt: salt,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if _, err := e.permissions.Insert(context.Background(), domain.AllPermissions(username)); err != nil {
		t.Fatalf("seed permissions: %v", err)
	}
}

func editorRequest() *dispatch.Request {
	return sessionRequest(domain.PermissionSet{CanEditUser: true})
}

func TestUserCreate_PairedInsert(t *testing.T) {
	env := newUserEnv()
	ctx := context.Background()

	req := editorRequest()
	req.Body = &domain.UserAccount{
		Username:    "bob",
		Password:    "hunter2",
		Permissions: domain.PermissionSet{CanCreateBillboard: true},
	}
	if res := env.controller.Create(ctx, req); res.Status != dispatch.StatusOK {
		t.Fatalf("create: %+v", res)
	}

	users, _ := env.users.Get(ctx, func(u domain.User) bool { return u.Username == "bob" })
	if len(users) != 1 {
		t.Fatalf("expected one user record, got %d", len(users))
	}
	if users[0].Password == "hunter2" || users[0].Password == "" {
		t.Fatalf("password stored without hashing: %q", users[0].Password)
	}
	if users[0].Salt == "" {
		t.Fatal("expected a stored salt")
	}

	perms, _ := env.permissions.Get(ctx, func(p domain.PermissionSet) bool { return p.Username == "bob" })
	if len(perms) != 1 {
		t.Fatalf("expected one permission record, got %d", len(perms))
	}
	if !perms[0].CanCreateBillboard || perms[0].CanEditUser {
		t.Fatalf("permissions not taken from the request: %+v", perms[0])
	}
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	env := newUserEnv()
	env.seed(t, "bob", "hunter2")

	req := editorRequest()
	req.Body = &domain.UserAccount{Username: "bob", Password: "other"}
	res := env.controller.Create(context.Background(), req)
	if res.Status != dispatch.StatusBadRequest || res.Message != "Username already exists." {
		t.Fatalf("expected duplicate rejection, got %+v", res)
	}
}

func TestUserCreate_RequiresCapability(t *testing.T) {
	env := newUserEnv()

	req := sessionRequest(domain.PermissionSet{CanCreateBillboard: true})
	req.Body = &domain.UserAccount{Username: "bob", Password: "hunter2"}
	if res := env.controller.Create(context.Background(), req); res.Status != dispatch.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %+v", res)
	}
}

func TestUserDelete_RemovesPair(t *testing.T) {
	env := newUserEnv()
	env.seed(t, "bob", "hunter2")
	ctx := context.Background()

	req := editorRequest()
	req.PathParams = map[string]string{"username": "bob"}
	if res := env.controller.Delete(ctx, req); res.Status != dispatch.StatusOK {
		t.Fatalf("delete: %+v", res)
	}

	users, _ := env.users.Get(ctx, func(u domain.User) bool { return u.Username == "bob" })
	perms, _ := env.permissions.Get(ctx, func(p domain.PermissionSet) bool { return p.Username == "bob" })
	if len(users) != 0 || len(perms) != 0 {
		t.Fatalf("expected both records gone, got users=%d perms=%d", len(users), len(perms))
	}
}

func TestUserDelete_MissingRecords(t *testing.T) {
	env := newUserEnv()
	ctx := context.Background()

	req := editorRequest()
	req.PathParams = map[string]string{"username": "ghost"}
	res := env.controller.Delete(ctx, req)
	if res.Status != dispatch.StatusBadRequest || res.Message != "User not existed" {
		t.Fatalf("expected missing user rejection, got %+v", res)
	}

	// A user without a permission record is rejected before anything is
	// deleted.
	digest, salt, _ := service.NewCredentials(env.hasher, "pw")
	_, _ = env.users.Insert(ctx, domain.User{Username: "half", Password: digest, Salt: salt})

	req = editorRequest()
	req.PathParams = map[string]string{"username": "half"}
	res = env.controller.Delete(ctx, req)
	if res.Status != dispatch.StatusBadRequest || res.Message != "Permission not existed" {
		t.Fatalf("expected missing permission rejection, got %+v", res)
	}
	users, _ := env.users.Get(ctx, func(u domain.User) bool { return u.Username == "half" })
	if len(users) != 1 {
		t.Fatalf("user record should be untouched, got %d", len(users))
	}
}

func TestUserDelete_MissingUsernameParam(t *testing.T) {
	env := newUserEnv()

	req := editorRequest()
	res := env.controller.Delete(context.Background(), req)
	if res.Status != dispatch.StatusBadRequest || res.Message != "Parameter required: username." {
		t.Fatalf("expected parameter rejection, got %+v", res)
	}
}

func TestUserUpdatePassword_ReSalts(t *testing.T) {
	env := newUserEnv()
	env.seed(t, "bob", "hunter2")
	ctx := context.Background()

	before, _ := env.users.Get(ctx, func(u domain.User) bool { return u.Username == "bob" })

	req := sessionRequest(domain.PermissionSet{})
	req.Session.Username = "bob"
	req.Params = map[string]string{"username": "bob", "password": "swordfish"}
	if res := env.controller.UpdatePassword(ctx, req); res.Status != dispatch.StatusOK {
		t.Fatalf("update password: %+v", res)
	}

	after, _ := env.users.Get(ctx, func(u domain.User) bool { return u.Username == "bob" })
	if after[0].Salt == before[0].Salt {
		t.Fatal("expected a fresh salt")
	}
	if after[0].Password == before[0].Password {
		t.Fatal("expected a new digest")
	}
}

func TestUserUpdatePassword_SelfOrEditor(t *testing.T) {
	env := newUserEnv()
	env.seed(t, "bob", "hunter2")
	ctx := context.Background()

	// Another user without the edit capability cannot change bob's password.
	req := sessionRequest(domain.PermissionSet{})
	req.Params = map[string]string{"username": "bob", "password": "stolen"}
	if res := env.controller.UpdatePassword(ctx, req); res.Status != dispatch.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %+v", res)
	}

	// An editor can.
	req = editorRequest()
	req.Params = map[string]string{"username": "bob", "password": "reset1"}
	if res := env.controller.UpdatePassword(ctx, req); res.Status != dispatch.StatusOK {
		t.Fatalf("editor update: %+v", res)
	}
}

func TestUserUpdatePassword_UnknownUser(t *testing.T) {
	env := newUserEnv()

	req := editorRequest()
	req.Params = map[string]string{"username": "ghost", "password": "pw"}
	res := env.controller.UpdatePassword(context.Background(), req)
	if res.Status != dispatch.StatusBadRequest || res.Message != "User doesn't exist" {
		t.Fatalf("expected unknown user rejection, got %+v", res)
	}
}

func TestUserList_StripsCredentials(t *testing.T) {
	env := newUserEnv()
	env.seed(t, "bob", "hunter2")

	req := editorRequest()
	res := env.controller.List(context.Background(), req)
	if res.Status != dispatch.StatusOK {
		t.Fatalf("list: %+v", res)
	}
	users := res.Payload.([]domain.User)
	if len(users) != 1 {
		t.Fatalf("expected one user, got %d", len(users))
	}
	if users[0].Password != "" || users[0].Salt != "" {
		t.Fatalf("credentials leaked: %+v", users[0])
	}
}
