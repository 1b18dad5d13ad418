package profile

import "errors"

var (
	ErrSubmissionInFlight = errors.New("profile submission already in flight")
	ErrAlreadySubmitted   = errors.New("profile already submitted")
	ErrNotReady           = errors.New("profile not loaded")
	ErrLoadFailed         = errors.New("profile could not be loaded")
	ErrClosed             = errors.New("profile editor closed")
	ErrEmptyPath          = errors.New("empty image path")
)
