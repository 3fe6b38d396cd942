package controller

import (
	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/dispatch"
)

// requirePermission checks a capability on the session the auth middleware
// attached. It returns a non-nil Unauthorized result to short-circuit with,
// or nil when the caller may proceed. Authentication itself is declared per
// route; only the capability check lives here, because only the Action knows
// which capability its operation needs.
func requirePermission(req *dispatch.Request, allowed func(domain.PermissionSet) bool) *dispatch.Result {
	if req.Session == nil {
		res := dispatch.Unauthorized("You must be logged in to perform this action.")
		return &res
	}
	if !allowed(req.Session.Permissions) {
		res := dispatch.Unauthorized("You do not have permission to perform this action.")
		return &res
	}
	return nil
}

// requireSelfOr allows the session's own user through regardless of the
// capability; anyone else needs it.
func requireSelfOr(req *dispatch.Request, username string, allowed func(domain.PermissionSet) bool) *dispatch.Result {
	if req.Session != nil && req.Session.Username == username {
		return nil
	}
	return requirePermission(req, allowed)
}
