package cli

import "errors"

var (
	errLoginRequired = errors.New("please log in first (type 'login' or 'register')")
	errNoDraft       = errors.New("no profile draft, type 'edit' first")
	errEmptyInput    = errors.New("value must not be empty")
)
