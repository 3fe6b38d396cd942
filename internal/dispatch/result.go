package dispatch

import "fmt"

// Status tags a Result with one of the fixed outcome variants.
type Status string

const (
	StatusOK              Status = "ok"
	StatusBadRequest      Status = "bad_request"
	StatusUnauthorized    Status = "unauthorized"
	StatusUnsupportedType Status = "unsupported_type"
	StatusNotFound        Status = "not_found"
	StatusServerError     Status = "server_error"
)

// Result is the tagged outcome of an Action. Message is human-readable and
// safe to surface to clients; Payload carries the success body, if any.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

func Ok() Result {
	return Result{Status: StatusOK}
}

func OkWith(payload any) Result {
	return Result{Status: StatusOK, Payload: payload}
}

func BadRequest(message string) Result {
	return Result{Status: StatusBadRequest, Message: message}
}

func Unauthorized(message string) Result {
	return Result{Status: StatusUnauthorized, Message: message}
}

// UnsupportedType reports that the request body does not match the type the
// route declared.
func UnsupportedType(expected string) Result {
	return Result{
		Status:  StatusUnsupportedType,
		Message: fmt.Sprintf("Expected body of type %s.", expected),
	}
}

func NotFound() Result {
	return Result{Status: StatusNotFound}
}

// ServerError reports an unexpected internal failure. The message should stay
// generic; the real cause belongs in the log, not on the wire.
func ServerError(message string) Result {
	return Result{Status: StatusServerError, Message: message}
}
