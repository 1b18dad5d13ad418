package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophsocial/internal/client/api"
	"github.com/dmitrijs2005/gophsocial/internal/client/graphql"
	"github.com/dmitrijs2005/gophsocial/internal/client/session"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

// ---- helpers ----

// readerFromLines feeds each line, newline-terminated. No lines means
// immediate EOF.
func readerFromLines(lines ...string) *bufio.Reader {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return bufio.NewReader(strings.NewReader(b.String()))
}

func newTestApp(auth *fakeAuth, apiSvc api.Service, in *bufio.Reader) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		log:         logging.Nop(),
		api:         apiSvc,
		authService: auth,
		reader:      in,
		out:         &out,
		route:       session.RouteHome,
	}, &out
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func stubPassword(t *testing.T, pw []byte) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return pw, nil }
	t.Cleanup(func() { getPassword = orig })
}

// ---- fake auth service ----

type fakeAuth struct {
	mu   sync.Mutex
	sess session.Session

	loginEmail, loginPass string
	loginErr              error

	regUser, regEmail, regPass string
	regErr                     error

	logoutCalled bool
	logoutErr    error

	restoreCalled bool
	expire        bool
}

func (f *fakeAuth) Restore(context.Context) (session.Session, error) {
	f.restoreCalled = true
	return f.sess, nil
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*api.User, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.sess = session.Session{LoggedIn: true, Username: "ann"}
	return &api.User{ID: "u1", Username: "ann"}, nil
}

func (f *fakeAuth) Register(_ context.Context, username, email, password string) (*api.User, error) {
	f.regUser, f.regEmail, f.regPass = username, email, password
	if f.regErr != nil {
		return nil, f.regErr
	}
	f.sess = session.Session{LoggedIn: true, Username: username}
	return &api.User{ID: "u2", Username: username}, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.sess = session.Session{Expired: true}
	return nil
}

func (f *fakeAuth) Session() session.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sess
}

func (f *fakeAuth) ExpireIfNeeded(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.expire && f.sess.LoggedIn {
		f.sess = session.Session{Expired: true}
		return true, nil
	}
	return false, nil
}

// ---- fake API ----

// fakeAPI implements api.Service; methods a test does not set up panic via
// the nil embedded interface.
type fakeAPI struct {
	api.Service

	me       *api.Profile
	meErr    error
	updates  []api.ProfileInput
	updErr   error
	posts    []api.Post
	calls    []string
	lastArgs []string
}

func (f *fakeAPI) Me(context.Context, ...graphql.QueryOption) (*api.Profile, error) {
	f.calls = append(f.calls, "me")
	if f.meErr != nil {
		return nil, f.meErr
	}
	p := *f.me
	return &p, nil
}

func (f *fakeAPI) UpdateProfile(_ context.Context, in api.ProfileInput) (*api.Profile, error) {
	f.calls = append(f.calls, "updateProfile")
	f.updates = append(f.updates, in)
	if f.updErr != nil {
		return nil, f.updErr
	}
	return &api.Profile{}, nil
}

func (f *fakeAPI) Posts(context.Context, ...graphql.QueryOption) ([]api.Post, error) {
	f.calls = append(f.calls, "posts")
	return f.posts, nil
}

func (f *fakeAPI) AddPost(_ context.Context, text, image string) (*api.Post, error) {
	f.calls = append(f.calls, "addPost")
	f.lastArgs = []string{text, image}
	return &api.Post{ID: "p9", PostText: text, Image: image}, nil
}

func (f *fakeAPI) RemovePost(_ context.Context, postID string) (string, error) {
	f.calls = append(f.calls, "removePost")
	f.lastArgs = []string{postID}
	return postID, nil
}

func (f *fakeAPI) AddComment(_ context.Context, postID, text string) (*api.Post, error) {
	f.calls = append(f.calls, "addComment")
	f.lastArgs = []string{postID, text}
	return &api.Post{ID: api.ID(postID), Comments: []api.Comment{{ID: "c1", CommentText: text}}}, nil
}

func (f *fakeAPI) RemoveComment(_ context.Context, postID, commentID string) (*api.Post, error) {
	f.calls = append(f.calls, "removeComment")
	f.lastArgs = []string{postID, commentID}
	return &api.Post{ID: api.ID(postID)}, nil
}

func (f *fakeAPI) AddLike(_ context.Context, postID string, likeCount int) (*api.Post, error) {
	f.calls = append(f.calls, "addLike")
	f.lastArgs = []string{postID}
	return &api.Post{ID: api.ID(postID), Likes: []api.Like{{ID: "l1", LikeCount: likeCount}}}, nil
}

func (f *fakeAPI) RemoveLike(_ context.Context, postID, likeID string) (*api.Post, error) {
	f.calls = append(f.calls, "removeLike")
	f.lastArgs = []string{postID, likeID}
	return &api.Post{ID: api.ID(postID)}, nil
}

func (f *fakeAPI) RemoveApplication(_ context.Context, applicationID string) ([]api.Application, error) {
	f.calls = append(f.calls, "removeApplication")
	f.lastArgs = []string{applicationID}
	return nil, nil
}
