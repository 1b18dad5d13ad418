package graphql

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNetwork      = errors.New("graphql network error")
	ErrGraphQL      = errors.New("graphql error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoIdentity   = errors.New("entity has no __typename or _id")
	// ErrStaleWrite reports a cache write started before the last Reset.
	ErrStaleWrite = errors.New("cache was reset during the operation")
)

// NetworkError means no usable GraphQL response came back.
type NetworkError struct {
	StatusCode int // zero when the request never got a response
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("graphql: server responded with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("graphql: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool {
	if target == ErrNetwork {
		return true
	}
	return target == ErrUnauthorized && e.StatusCode == 401
}

// ErrorItem is one entry of a response's errors array.
type ErrorItem struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Code returns extensions.code, if the server set one.
func (i ErrorItem) Code() string {
	code, _ := i.Extensions["code"].(string)
	return code
}

// GraphQLError carries the errors array of a response.
type GraphQLError struct {
	Errors []ErrorItem
}

func (e *GraphQLError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		msgs = append(msgs, item.Message)
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

func (e *GraphQLError) Is(target error) bool {
	switch target {
	case ErrGraphQL:
		return true
	case ErrUnauthorized:
		for _, item := range e.Errors {
			if item.Code() == "UNAUTHENTICATED" {
				return true
			}
		}
	}
	return false
}
