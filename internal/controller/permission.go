package controller

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/core/ports"
	"github.com/adsignage/billboard-server/internal/dispatch"
)

// PermissionController holds the Actions on the permission path.
type PermissionController struct {
	permissions ports.EntityStore[domain.PermissionSet]
	log         zerolog.Logger
}

func NewPermissionController(permissions ports.EntityStore[domain.PermissionSet], log zerolog.Logger) *PermissionController {
	return &PermissionController{permissions: permissions, log: log}
}

// Get returns the permission set for a username. Users may read their own;
// reading someone else's needs the edit-user capability.
func (c *PermissionController) Get(ctx context.Context, req *dispatch.Request) dispatch.Result {
	username := req.Param("username")
	if username == "" {
		return dispatch.BadRequest("Parameter required: username.")
	}
	if res := requireSelfOr(req, username, func(p domain.PermissionSet) bool { return p.CanEditUser }); res != nil {
		return *res
	}

	perms, err := c.permissions.Get(ctx, func(p domain.PermissionSet) bool { return p.Username == username })
	if err != nil {
		return c.storeError(req, err)
	}
	if len(perms) == 0 {
		return dispatch.NotFound()
	}
	return dispatch.OkWith(perms[0])
}

// Update replaces the capability flags for a username. The record's identity
// comes from the stored row, not the request body.
func (c *PermissionController) Update(ctx context.Context, req *dispatch.Request) dispatch.Result {
	if res := requirePermission(req, func(p domain.PermissionSet) bool { return p.CanEditUser }); res != nil {
		return *res
	}
	body := req.Body.(*domain.PermissionSet)
	if body.Username == "" {
		return dispatch.BadRequest("Parameter required: username.")
	}

	perms, err := c.permissions.Get(ctx, func(p domain.PermissionSet) bool { return p.Username == body.Username })
	if err != nil {
		return c.storeError(req, err)
	}
	if len(perms) == 0 {
		return dispatch.BadRequest("Permission not existed")
	}

	updated := *body
	updated.ID = perms[0].ID
	if err := c.permissions.Update(ctx, updated); err != nil {
		return c.storeError(req, err)
	}
	return dispatch.Ok()
}

func (c *PermissionController) storeError(req *dispatch.Request, err error) dispatch.Result {
	c.log.Error().Err(err).Str("request_id", req.ID).Msg("permission store operation failed")
	return dispatch.ServerError("Internal server error.")
}
