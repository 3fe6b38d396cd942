package controller

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/core/ports"
	"github.com/adsignage/billboard-server/internal/dispatch"
)

// BillboardController holds the Actions on the billboard path.
type BillboardController struct {
	billboards ports.EntityStore[domain.Billboard]
	log        zerolog.Logger
}

func NewBillboardController(billboards ports.EntityStore[domain.Billboard], log zerolog.Logger) *BillboardController {
	return &BillboardController{billboards: billboards, log: log}
}

// List returns every billboard.
func (c *BillboardController) List(ctx context.Context, req *dispatch.Request) dispatch.Result {
	billboards, err := c.billboards.Get(ctx, func(domain.Billboard) bool { return true })
	if err != nil {
		return c.storeError(req, err)
	}
	return dispatch.OkWith(billboards)
}

// GetByID returns the billboard with the given identifier.
func (c *BillboardController) GetByID(ctx context.Context, req *dispatch.Request) dispatch.Result {
	id, err := strconv.Atoi(req.Param("id"))
	if err != nil {
		return dispatch.BadRequest("Must specify a billboard ID.")
	}

	billboards, err := c.billboards.Get(ctx, func(b domain.Billboard) bool { return b.ID == id })
	if err != nil {
		return c.storeError(req, err)
	}
	if len(billboards) == 0 {
		return dispatch.NotFound()
	}
	return dispatch.OkWith(billboards[0])
}

// GetByLock returns the billboards matching a lock state.
func (c *BillboardController) GetByLock(ctx context.Context, req *dispatch.Request) dispatch.Result {
	locked, err := strconv.ParseBool(req.Param("lock"))
	if err != nil {
		return dispatch.BadRequest("Must specify a billboard boolean lock status.")
	}

	billboards, err := c.billboards.Get(ctx, func(b domain.Billboard) bool { return b.Locked == locked })
	if err != nil {
		return c.storeError(req, err)
	}
	return dispatch.OkWith(billboards)
}

// Insert creates a billboard. The store enforces name uniqueness inside its
// own critical section, so concurrent inserts of the same name cannot both
// succeed.
func (c *BillboardController) Insert(ctx context.Context, req *dispatch.Request) dispatch.Result {
	if res := requirePermission(req, func(p domain.PermissionSet) bool { return p.CanCreateBillboard }); res != nil {
		return *res
	}
	billboard := req.Body.(*domain.Billboard)

	if _, err := c.billboards.Insert(ctx, *billboard); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return dispatch.BadRequest("Billboard name already exists.")
		}
		return c.storeError(req, err)
	}
	return dispatch.Ok()
}

// Update replaces a billboard by identifier, rejecting a rename onto a name
// another billboard already holds.
func (c *BillboardController) Update(ctx context.Context, req *dispatch.Request) dispatch.Result {
	if res := requirePermission(req, func(p domain.PermissionSet) bool { return p.CanEditBillboard }); res != nil {
		return *res
	}
	billboard := req.Body.(*domain.Billboard)

	if err := c.billboards.Update(ctx, *billboard); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			return dispatch.BadRequest("Billboard name already exists.")
		case errors.Is(err, domain.ErrNotFound):
			return dispatch.NotFound()
		default:
			return c.storeError(req, err)
		}
	}
	return dispatch.Ok()
}

// Delete removes a billboard by identifier.
func (c *BillboardController) Delete(ctx context.Context, req *dispatch.Request) dispatch.Result {
	if res := requirePermission(req, func(p domain.PermissionSet) bool { return p.CanEditBillboard }); res != nil {
		return *res
	}
	billboard := req.Body.(*domain.Billboard)

	if err := c.billboards.Delete(ctx, *billboard); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return dispatch.NotFound()
		}
		return c.storeError(req, err)
	}
	return dispatch.Ok()
}

func (c *BillboardController) storeError(req *dispatch.Request, err error) dispatch.Result {
	c.log.Error().Err(err).Str("request_id", req.ID).Msg("billboard store operation failed")
	return dispatch.ServerError("Internal server error.")
}
