package session

import "errors"

var (
	// ErrDecode reports a token whose payload could not be decoded.
	ErrDecode = errors.New("malformed session token")
	// ErrNoCredential is returned by operations that need a token when none is stored.
	ErrNoCredential = errors.New("no session credential")
)
