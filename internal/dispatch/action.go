package dispatch

import "context"

// Action is a stateless unit of business logic bound to a route. An Action
// may hold immutable references to the stores it needs, never
// request-specific mutable state.
type Action interface {
	Execute(ctx context.Context, req *Request) Result
}

// ActionFunc adapts a plain function to the Action interface, letting
// controllers register methods directly.
type ActionFunc func(ctx context.Context, req *Request) Result

func (f ActionFunc) Execute(ctx context.Context, req *Request) Result {
	return f(ctx, req)
}
