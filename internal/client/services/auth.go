// Package services contains application services for the gophsocial client.
// This file defines the authentication service: login, register, logout,
// session restore at start-up, and expiry housekeeping.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophsocial/internal/client/api"
	"github.com/dmitrijs2005/gophsocial/internal/client/session"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

// ErrEmptyToken is returned when the server accepted the credentials but
// sent no token back.
var ErrEmptyToken = errors.New("server returned an empty token")

// Resetter drops cached server data. *graphql.Cache satisfies it.
type Resetter interface {
	Reset()
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Restore: rehydrate the stored credential; an expired one is cleared.
//   - Login / Register: authenticate, persist the token, navigate home.
//   - Logout: forget the token and cached data, navigate to login.
//   - Session: the current session, derived from the stored credential.
//   - ExpireIfNeeded: log out when the stored credential has expired.
//
// All methods that touch the network or disk honor context cancellation.
type AuthService interface {
	Restore(ctx context.Context) (session.Session, error)
	Login(ctx context.Context, email, password string) (*api.User, error)
	Register(ctx context.Context, username, email, password string) (*api.User, error)
	Logout(ctx context.Context) error
	Session() session.Session
	ExpireIfNeeded(ctx context.Context) (bool, error)
}

type authService struct {
	api   api.Service
	store *session.Store
	cache Resetter
	log   logging.Logger
}

// NewAuthService builds an AuthService. cache may be nil.
func NewAuthService(apiSvc api.Service, store *session.Store, cache Resetter, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{api: apiSvc, store: store, cache: cache, log: log}
}

func (a *authService) Restore(ctx context.Context) (session.Session, error) {
	if err := a.store.Load(ctx); err != nil {
		return session.Session{}, fmt.Errorf("restore session error: %w", err)
	}
	if a.store.IsLoggedIn() && a.store.IsExpired() {
		a.log.Info(ctx, "stored session expired, clearing it")
		if err := a.store.Clear(ctx); err != nil {
			return session.Session{}, fmt.Errorf("clear expired session error: %w", err)
		}
	}
	return a.store.Session(), nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*api.User, error) {
	payload, err := a.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.begin(ctx, payload); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "logged in", "username", payload.User.Username)
	return &payload.User, nil
}

func (a *authService) Register(ctx context.Context, username, email, password string) (*api.User, error) {
	payload, err := a.api.AddUser(ctx, username, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.begin(ctx, payload); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "registered", "username", payload.User.Username)
	return &payload.User, nil
}

// begin stores the new session. Data cached for a previous user is dropped
// first.
func (a *authService) begin(ctx context.Context, payload *api.AuthPayload) error {
	if payload.Token == "" {
		return ErrEmptyToken
	}
	a.resetCache()
	if err := a.store.Login(ctx, session.Credential(payload.Token)); err != nil {
		return fmt.Errorf("save session error: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.resetCache()
	if err := a.store.Logout(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	a.log.Info(ctx, "logged out")
	return nil
}

func (a *authService) Session() session.Session {
	return a.store.Session()
}

// ExpireIfNeeded logs out when a stored credential has expired and reports
// whether it did.
func (a *authService) ExpireIfNeeded(ctx context.Context) (bool, error) {
	if !a.store.IsLoggedIn() || !a.store.IsExpired() {
		return false, nil
	}
	a.log.Info(ctx, "session expired")
	if err := a.Logout(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (a *authService) resetCache() {
	if a.cache != nil {
		a.cache.Reset()
	}
}
