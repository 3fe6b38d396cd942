package controller

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/core/ports"
	"github.com/adsignage/billboard-server/internal/core/service"
	"github.com/adsignage/billboard-server/internal/dispatch"
)

// UserController holds the Actions on the user path. It is the only writer
// touching two stores: a user and its permission set are created and deleted
// as a pair.
type UserController struct {
	users       ports.EntityStore[domain.User]
	permissions ports.EntityStore[domain.PermissionSet]
	hasher      ports.PasswordHasher
	log         zerolog.Logger
}

func NewUserController(
	users ports.EntityStore[domain.User],
	permissions ports.EntityStore[domain.PermissionSet],
	hasher ports.PasswordHasher,
	log zerolog.Logger,
) *UserController {
	return &UserController{users: users, permissions: permissions, hasher: hasher, log: log}
}

// List returns every user with credential material stripped.
func (c *UserController) List(ctx context.Context, req *dispatch.Request) dispatch.Result {
	if res := requirePermission(req, func(p domain.PermissionSet) bool { return p.CanEditUser }); res != nil {
		return *res
	}

	users, err := c.users.Get(ctx, func(domain.User) bool { return true })
	if err != nil {
		return c.storeError(req, err)
	}

	public := make([]domain.User, len(users))
	for i, u := range users {
		public[i] = u.Public()
	}
	return dispatch.OkWith(public)
}

// Create inserts a user together with its permission set. The plaintext
// password is hashed with a fresh salt and discarded. If the permission
// insert fails after the user insert succeeded, the user is removed again so
// no account exists without a permission record.
func (c *UserController) Create(ctx context.Context, req *dispatch.Request) dispatch.Result {
	if res := requirePermission(req, func(p domain.PermissionSet) bool { return p.CanEditUser }); res != nil {
		return *res
	}
	account := req.Body.(*domain.UserAccount)

	digest, salt, err := service.NewCredentials(c.hasher, account.Password)
	if err != nil {
		return c.storeError(req, err)
	}

	user, err := c.users.Insert(ctx, domain.User{
		Username: account.Username,
		Password: digest,
		Salt:     salt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return dispatch.BadRequest("Username already exists.")
		}
		return c.storeError(req, err)
	}

	perms := account.Permissions
	perms.ID = 0
	perms.Username = account.Username
	if _, err := c.permissions.Insert(ctx, perms); err != nil {
		if delErr := c.users.Delete(ctx, user); delErr != nil {
			c.log.Error().Err(delErr).Str("request_id", req.ID).
				Str("username", account.Username).Msg("failed to roll back user insert")
		}
		if errors.Is(err, domain.ErrConflict) {
			return dispatch.BadRequest("Username already exists.")
		}
		return c.storeError(req, err)
	}
	return dispatch.Ok()
}

// UpdatePassword re-hashes the user's password with a fresh salt. Users may
// change their own password; changing someone else's needs the edit-user
// capability.
func (c *UserController) UpdatePassword(ctx context.Context, req *dispatch.Request) dispatch.Result {
	username := req.Param("username")
	password := req.Param("password")
	if username == "" {
		return dispatch.BadRequest("Parameter required: username.")
	}
	if password == "" {
		return dispatch.BadRequest("Parameter required: password.")
	}
	if res := requireSelfOr(req, username, func(p domain.PermissionSet) bool { return p.CanEditUser }); res != nil {
		return *res
	}

	users, err := c.users.Get(ctx, func(u domain.User) bool { return u.Username == username })
	if err != nil {
		return c.storeError(req, err)
	}
	if len(users) == 0 {
		return dispatch.BadRequest("User doesn't exist")
	}
	user := users[0]

	user.Password, user.Salt, err = service.NewCredentials(c.hasher, password)
	if err != nil {
		return c.storeError(req, err)
	}
	if err := c.users.Update(ctx, user); err != nil {
		return c.storeError(req, err)
	}
	return dispatch.Ok()
}

// Delete removes a user and its permission set as a pair. The permission set
// goes first: if the user delete then fails, the leftover is an account that
// cannot act rather than an orphaned permission record.
func (c *UserController) Delete(ctx context.Context, req *dispatch.Request) dispatch.Result {
	if res := requirePermission(req, func(p domain.PermissionSet) bool { return p.CanEditUser }); res != nil {
		return *res
	}
	username := req.Param("username")
	if username == "" {
		return dispatch.BadRequest("Parameter required: username.")
	}

	users, err := c.users.Get(ctx, func(u domain.User) bool { return u.Username == username })
	if err != nil {
		return c.storeError(req, err)
	}
	if len(users) == 0 {
		return dispatch.BadRequest("User not existed")
	}

	perms, err := c.permissions.Get(ctx, func(p domain.PermissionSet) bool { return p.Username == username })
	if err != nil {
		return c.storeError(req, err)
	}
	if len(perms) == 0 {
		return dispatch.BadRequest("Permission not existed")
	}

	if err := c.permissions.Delete(ctx, perms[0]); err != nil {
		return c.storeError(req, err)
	}
	if err := c.users.Delete(ctx, users[0]); err != nil {
		c.log.Error().Err(err).Str("request_id", req.ID).
			Str("username", username).Msg("user delete failed after permission delete")
		return dispatch.ServerError("Internal server error.")
	}
	return dispatch.Ok()
}

func (c *UserController) storeError(req *dispatch.Request, err error) dispatch.Result {
	c.log.Error().Err(err).Str("request_id", req.ID).Msg("user store operation failed")
	return dispatch.ServerError("Internal server error.")
}
