package domain

import "time"

// Session binds a bearer token to an authenticated identity. Sessions are
// owned exclusively by the session registry; everything else only ever sees
// read-only copies resolved from a token.
type Session struct {
	Token       string        `json:"token"`
	Username    string        `json:"username"`
	Permissions PermissionSet `json:"permissions"`
	IssuedAt    time.Time     `json:"issued_at"`
	LastSeen    time.Time     `json:"last_seen"`
}
