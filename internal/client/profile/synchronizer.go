package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophsocial/internal/client/api"
	"github.com/dmitrijs2005/gophsocial/internal/client/graphql"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

// Backend is the part of api.Service the synchronizer needs.
type Backend interface {
	Me(ctx context.Context, opts ...graphql.QueryOption) (*api.Profile, error)
	UpdateProfile(ctx context.Context, in api.ProfileInput) (*api.Profile, error)
}

// View is a snapshot for rendering.
type View struct {
	Load   LoadState
	Status Status
	Err    error
	Draft  Draft
}

// Synchronizer owns one draft for the lifetime of an editing session. It is
// safe for concurrent use. After Close it ignores every result that arrives.
type Synchronizer struct {
	backend Backend
	log     logging.Logger

	mu      sync.Mutex
	draft   Draft
	seeded  bool
	load    LoadState
	loadErr error
	status  Status
	err     error
	closed  bool
}

type Option func(*Synchronizer)

func WithLogger(l logging.Logger) Option {
	return func(s *Synchronizer) { s.log = l }
}

func NewSynchronizer(backend Backend, opts ...Option) *Synchronizer {
	s := &Synchronizer{backend: backend, log: logging.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load fetches the canonical profile. The first success seeds the draft;
// later ones leave it alone. A failed fetch is terminal: the draft is not
// seeded and every later Load returns ErrLoadFailed.
func (s *Synchronizer) Load(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrClosed
	case s.load == LoadFailed:
		err := s.loadErr
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	s.mu.Unlock()

	p, err := s.backend.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.log.Debug(ctx, "profile fetch discarded after close")
		return ErrClosed
	}
	if err != nil {
		s.load = LoadFailed
		s.loadErr = err
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	s.load = LoadReady
	if !s.seeded {
		s.draft.seed(p)
		s.seeded = true
	}
	return nil
}

func (s *Synchronizer) SetAbout(v string)     { s.edit(func(d *Draft) { d.About = v }) }
func (s *Synchronizer) SetImage(v string)     { s.edit(func(d *Draft) { d.Image = v }) }
func (s *Synchronizer) SetFirstName(v string) { s.edit(func(d *Draft) { d.FirstName = v }) }
func (s *Synchronizer) SetLastName(v string)  { s.edit(func(d *Draft) { d.LastName = v }) }
func (s *Synchronizer) SetAppTitle(v string)  { s.edit(func(d *Draft) { d.Application.Title = v }) }
func (s *Synchronizer) SetAppURL(v string)    { s.edit(func(d *Draft) { d.Application.AppURL = v }) }

func (s *Synchronizer) SetAppImageURL(v string) {
	s.edit(func(d *Draft) { d.Application.AppImageURL = v })
}

// SetImageFile sets the image to the file:// URI of a local file.
func (s *Synchronizer) SetImageFile(path string) error {
	uri, err := fileURI(path)
	if err != nil {
		return fmt.Errorf("image file: %w", err)
	}
	s.SetImage(uri)
	return nil
}

func (s *Synchronizer) edit(fn func(*Draft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		fn(&s.draft)
	}
}

// Payload is what Submit would send right now.
func (s *Synchronizer) Payload() api.ProfileInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Payload()
}

// Submit sends the draft from Idle or Failed. Only one submission runs at a
// time: a call made while another is in flight returns ErrSubmissionInFlight
// and changes nothing. After a success the editor is done and further calls
// return ErrAlreadySubmitted. The payload is taken before the request goes
// out, so edits made meanwhile are not part of it. The draft is never
// modified by Submit.
func (s *Synchronizer) Submit(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrClosed
	case s.load != LoadReady:
		s.mu.Unlock()
		return ErrNotReady
	case s.status == StatusSubmitting:
		s.mu.Unlock()
		return ErrSubmissionInFlight
	case s.status == StatusSucceeded:
		s.mu.Unlock()
		return ErrAlreadySubmitted
	}
	in := s.draft.Payload()
	s.status = StatusSubmitting
	s.err = nil
	s.mu.Unlock()

	_, err := s.backend.UpdateProfile(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.log.Debug(ctx, "profile submission result discarded after close", "error", err)
		return ErrClosed
	}
	if err != nil {
		s.status = StatusFailed
		s.err = err
		return fmt.Errorf("submit profile: %w", err)
	}
	s.status = StatusSucceeded
	s.log.Info(ctx, "profile updated", "application", in.Application != nil)
	return nil
}

// Close ends the editing session.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Synchronizer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the last submission error, or the load error once loading
// has failed.
func (s *Synchronizer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.load == LoadFailed {
		return s.loadErr
	}
	return s.err
}

func (s *Synchronizer) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{Load: s.load, Status: s.status, Err: s.err, Draft: s.draft}
	if s.load == LoadFailed {
		v.Err = s.loadErr
	}
	return v
}
