package controller

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/core/ports"
	"github.com/adsignage/billboard-server/internal/dispatch"
)

// SessionController holds the Actions on the login and logout paths.
type SessionController struct {
	auth ports.AuthService
	log  zerolog.Logger
}

func NewSessionController(auth ports.AuthService, log zerolog.Logger) *SessionController {
	return &SessionController{auth: auth, log: log}
}

// Login validates the credential parameters and issues a session. Unknown
// user and wrong password produce the same generic message.
func (c *SessionController) Login(ctx context.Context, req *dispatch.Request) dispatch.Result {
	username := req.Param("username")
	password := req.Param("password")

	if username == "" {
		return dispatch.BadRequest("Parameter required: username.")
	}
	if password == "" {
		return dispatch.BadRequest("Parameter required: password.")
	}

	session, err := c.auth.Login(ctx, username, password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return dispatch.BadRequest("Incorrect details.")
	}
	if err != nil {
		c.log.Error().Err(err).Str("request_id", req.ID).Msg("login failed")
		return dispatch.ServerError("Internal server error.")
	}
	return dispatch.OkWith(session)
}

// Logout invalidates the request's token. A retried logout succeeds again.
func (c *SessionController) Logout(ctx context.Context, req *dispatch.Request) dispatch.Result {
	if req.Token == "" {
		return dispatch.Unauthorized("Must provide token to logout.")
	}
	if err := c.auth.Logout(ctx, req.Token); err != nil {
		c.log.Error().Err(err).Str("request_id", req.ID).Msg("logout failed")
		return dispatch.ServerError("Internal server error.")
	}
	return dispatch.Ok()
}
