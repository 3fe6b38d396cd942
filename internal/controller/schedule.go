package controller

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/core/ports"
	"github.com/adsignage/billboard-server/internal/dispatch"
)

// ScheduleController holds the Actions on the schedule path. Every
// operation requires the scheduling capability.
type ScheduleController struct {
	schedules  ports.EntityStore[domain.Schedule]
	billboards ports.EntityStore[domain.Billboard]
	log        zerolog.Logger
}

func NewScheduleController(
	schedules ports.EntityStore[domain.Schedule],
	billboards ports.EntityStore[domain.Billboard],
	log zerolog.Logger,
) *ScheduleController {
	return &ScheduleController{schedules: schedules, billboards: billboards, log: log}
}

// List returns every schedule entry.
func (c *ScheduleController) List(ctx context.Context, req *dispatch.Request) dispatch.Result {
	if res := requirePermission(req, func(p domain.PermissionSet) bool { return p.CanScheduleBillboard }); res != nil {
		return *res
	}

	schedules, err := c.schedules.Get(ctx, func(domain.Schedule) bool { return true })
	if err != nil {
		return c.storeError(req, err)
	}
	return dispatch.OkWith(schedules)
}

// Insert adds a schedule entry for an existing billboard.
func (c *ScheduleController) Insert(ctx context.Context, req *dispatch.Request) dispatch.Result {
	if res := requirePermission(req, func(p domain.PermissionSet) bool { return p.CanScheduleBillboard }); res != nil {
		return *res
	}
	schedule := req.Body.(*domain.Schedule)

	billboards, err := c.billboards.Get(ctx, func(b domain.Billboard) bool { return b.Name == schedule.BillboardName })
	if err != nil {
		return c.storeError(req, err)
	}
	if len(billboards) == 0 {
		return dispatch.BadRequest("Billboard does not exist.")
	}

	if _, err := c.schedules.Insert(ctx, *schedule); err != nil {
		return c.storeError(req, err)
	}
	return dispatch.Ok()
}

// Delete removes a schedule entry by identifier.
func (c *ScheduleController) Delete(ctx context.Context, req *dispatch.Request) dispatch.Result {
	if res := requirePermission(req, func(p domain.PermissionSet) bool { return p.CanScheduleBillboard }); res != nil {
		return *res
	}
	schedule := req.Body.(*domain.Schedule)

	if err := c.schedules.Delete(ctx, *schedule); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return dispatch.NotFound()
		}
		return c.storeError(req, err)
	}
	return dispatch.Ok()
}

func (c *ScheduleController) storeError(req *dispatch.Request, err error) dispatch.Result {
	c.log.Error().Err(err).Str("request_id", req.ID).Msg("schedule store operation failed")
	return dispatch.ServerError("Internal server error.")
}
