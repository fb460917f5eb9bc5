package auth

import (
	"context"
	"errors"
)

// ErrUnauthorized is returned when a mutation is attempted without an
// authenticated identity. The HTTP layer turns it into a redirect to the
// login flow.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when an authenticated identity attempts an
// operation it does not own.
var ErrForbidden = errors.New("forbidden")

type contextKey string

const handleKey = contextKey("userHandle")

// WithUser stores the requester's handle in the context. Authentication
// itself happens in the fronting auth layer; this service only carries the
// resolved identity.
func WithUser(ctx context.Context, handle string) context.Context {
	return context.WithValue(ctx, handleKey, handle)
}

// CurrentUser returns the requester's handle, or ErrUnauthorized when the
// request is anonymous.
func CurrentUser(ctx context.Context) (string, error) {
	handle, ok := ctx.Value(handleKey).(string)
	if !ok || handle == "" {
		return "", ErrUnauthorized
	}
	return handle, nil
}
