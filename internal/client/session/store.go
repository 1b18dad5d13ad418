package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

// SlotKey is the metadata key holding the raw token.
const SlotKey = "id_token"

// Routes handed to the navigation hook.
const (
	RouteHome  = "/homepage"
	RouteLogin = "/login"
)

// Credential is the raw signed session token.
type Credential string

// Navigator is invoked after login and logout with the route to show next.
type Navigator func(route string)

// Session is derived from the stored credential on every call.
type Session struct {
	LoggedIn bool
	Expired  bool
	Username string
}

type Store struct {
	repo     metadata.Repository
	log      logging.Logger
	navigate Navigator
	now      func() time.Time

	mu    sync.RWMutex
	token Credential
}

type Option func(*Store)

func WithNavigator(n Navigator) Option {
	return func(s *Store) { s.navigate = n }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore builds an empty store over repo. Call Load to rehydrate the
// previously saved token.
func NewStore(repo metadata.Repository, opts ...Option) *Store {
	s := &Store{
		repo:     repo,
		log:      logging.Nop(),
		navigate: func(string) {},
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load reads the durable slot into memory.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.repo.Get(ctx, SlotKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s.mu.Lock()
	s.token = Credential(raw)
	s.mu.Unlock()
	return nil
}

// Get returns the current credential, if any.
func (s *Store) Get() (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Token is Get with a plain string, for request middleware.
func (s *Store) Token() (string, bool) {
	c, ok := s.Get()
	return string(c), ok
}

// Set replaces the stored credential, on disk first and then in memory.
func (s *Store) Set(ctx context.Context, c Credential) error {
	if c == "" {
		return s.Clear(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Set(ctx, SlotKey, []byte(c)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.token = c
	return nil
}

// Clear removes the credential from disk and memory.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, SlotKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.token = ""
	return nil
}

func (s *Store) IsLoggedIn() bool {
	_, ok := s.Get()
	return ok
}

// IsExpired reports whether the stored token is past its exp claim. A
// missing or undecodable token counts as expired; a token without exp does
// not.
func (s *Store) IsExpired() bool {
	c, ok := s.Get()
	if !ok {
		return true
	}
	claims, err := Decode(c)
	if err != nil {
		s.log.Debug(context.Background(), "session token does not decode", "error", err)
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !s.now().Before(claims.ExpiresAt.Time)
}

// Profile decodes the identity carried by the token. For display only.
func (s *Store) Profile() (Identity, bool) {
	c, ok := s.Get()
	if !ok {
		return Identity{}, false
	}
	claims, err := Decode(c)
	if err != nil {
		return Identity{}, false
	}
	return claims.Profile(), true
}

func (s *Store) Session() Session {
	if !s.IsLoggedIn() {
		return Session{Expired: true}
	}
	sess := Session{LoggedIn: true, Expired: s.IsExpired()}
	if p, ok := s.Profile(); ok {
		sess.Username = p.Username
	}
	return sess
}

// Login stores a freshly issued credential and navigates home.
func (s *Store) Login(ctx context.Context, c Credential) error {
	if err := s.Set(ctx, c); err != nil {
		return err
	}
	s.navigate(RouteHome)
	return nil
}

// Logout clears the credential and navigates to the login route.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.Clear(ctx); err != nil {
		return err
	}
	s.navigate(RouteLogin)
	return nil
}
