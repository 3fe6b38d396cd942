package controller

import (
	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/core/ports"
	"github.com/adsignage/billboard-server/internal/dispatch"
)

// Body type tags carried by request envelopes.
const (
	BodyBillboard     = "billboard"
	BodyUserAccount   = "user_account"
	BodyPermissionSet = "permission_set"
	BodySchedule      = "schedule"
)

// RegisterRoutes binds every Action into the router's registration table.
// Registration order is significant: literal segments are registered before
// the parameter patterns they would otherwise be shadowed by.
func RegisterRoutes(r *dispatch.Router, auth ports.AuthService, st ports.Stores, hasher ports.PasswordHasher, log zerolog.Logger) {
	sessions := NewSessionController(auth, log)
	billboards := NewBillboardController(st.Billboards, log)
	users := NewUserController(st.Users, st.Permissions, hasher, log)
	permissions := NewPermissionController(st.Permissions, log)
	schedules := NewScheduleController(st.Schedules, st.Billboards, log)

	r.Handle("POST", "/login", dispatch.ActionFunc(sessions.Login))
	r.Handle("DELETE", "/logout", dispatch.ActionFunc(sessions.Logout))

	r.Handle("GET", "/billboard", dispatch.ActionFunc(billboards.List),
		dispatch.RequireAuth())
	r.Handle("GET", "/billboard/locked/:lock", dispatch.ActionFunc(billboards.GetByLock),
		dispatch.RequireAuth())
	r.Handle("GET", "/billboard/:id", dispatch.ActionFunc(billboards.GetByID),
		dispatch.RequireAuth())
	r.Handle("POST", "/billboard", dispatch.ActionFunc(billboards.Insert),
		dispatch.RequireAuth(), dispatch.BodyOf[domain.Billboard](BodyBillboard))
	r.Handle("PUT", "/billboard", dispatch.ActionFunc(billboards.Update),
		dispatch.RequireAuth(), dispatch.BodyOf[domain.Billboard](BodyBillboard))
	r.Handle("DELETE", "/billboard", dispatch.ActionFunc(billboards.Delete),
		dispatch.RequireAuth(), dispatch.BodyOf[domain.Billboard](BodyBillboard))

	r.Handle("GET", "/user", dispatch.ActionFunc(users.List),
		dispatch.RequireAuth())
	r.Handle("POST", "/user", dispatch.ActionFunc(users.Create),
		dispatch.RequireAuth(), dispatch.BodyOf[domain.UserAccount](BodyUserAccount))
	r.Handle("PUT", "/user/password", dispatch.ActionFunc(users.UpdatePassword),
		dispatch.RequireAuth())
	r.Handle("DELETE", "/user/:username", dispatch.ActionFunc(users.Delete),
		dispatch.RequireAuth())

	r.Handle("GET", "/permission/:username", dispatch.ActionFunc(permissions.Get),
		dispatch.RequireAuth())
	r.Handle("PUT", "/permission", dispatch.ActionFunc(permissions.Update),
		dispatch.RequireAuth(), dispatch.BodyOf[domain.PermissionSet](BodyPermissionSet))

	r.Handle("GET", "/schedule", dispatch.ActionFunc(schedules.List),
		dispatch.RequireAuth())
	r.Handle("POST", "/schedule", dispatch.ActionFunc(schedules.Insert),
		dispatch.RequireAuth(), dispatch.BodyOf[domain.Schedule](BodySchedule))
	r.Handle("DELETE", "/schedule", dispatch.ActionFunc(schedules.Delete),
		dispatch.RequireAuth(), dispatch.BodyOf[domain.Schedule](BodySchedule))
}
