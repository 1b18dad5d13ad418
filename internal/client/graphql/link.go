package graphql

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
)

// Link runs before an operation is sent and may add headers to it.
// Returning an error aborts the send.
type Link func(ctx context.Context, op *Operation, header http.Header) error

// Chain composes links left to right.
func Chain(links ...Link) Link {
	return func(ctx context.Context, op *Operation, header http.Header) error {
		for _, l := range links {
			if err := l(ctx, op, header); err != nil {
				return err
			}
		}
		return nil
	}
}

// TokenSource yields the current session token.
type TokenSource interface {
	Token() (string, bool)
}

// AuthLink sets "Authorization: Bearer <token>", or an empty value when there
// is no token. The source is consulted on every operation, so a token stored
// after the client was built is picked up by the next request.
func AuthLink(src TokenSource) Link {
	return func(_ context.Context, _ *Operation, header http.Header) error {
		if token, ok := src.Token(); ok {
			header.Set(AuthorizationHeader, "Bearer "+token)
		} else {
			header.Set(AuthorizationHeader, "")
		}
		return nil
	}
}

// RequestIDLink tags each operation with a fresh X-Request-ID.
func RequestIDLink() Link {
	return func(_ context.Context, _ *Operation, header http.Header) error {
		header.Set(RequestIDHeader, uuid.NewString())
		return nil
	}
}

// RateLimitLink blocks until limiter admits the operation or ctx ends.
func RateLimitLink(limiter *rate.Limiter) Link {
	return func(ctx context.Context, _ *Operation, _ http.Header) error {
		return limiter.Wait(ctx)
	}
}
