package graphql

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophsocial/internal/client/metrics"
)

var (
	meDoc     = Document{Name: "me", Query: "query me { me { _id username about } }"}
	postsDoc  = Document{Name: "posts", Query: "query posts { posts { _id postText likes { _id } } }"}
	addLike   = Document{Name: "addLike", Query: "mutation addLike($postId: ID!) { addLike(postId: $postId) { _id likes { _id } } }"}
	removeDoc = Document{Name: "removePost", Query: "mutation removePost($postId: ID!) { removePost(postId: $postId) { _id } }"}
)

type me struct {
	Me struct {
		ID       string `json:"_id"`
		Username string `json:"username"`
		About    string `json:"about"`
	} `json:"me"`
}

func TestClient_NoCredentialSendsEmptyAuthorization(t *testing.T) {
	srv := newFakeServer(t, func(request) (int, string) {
		return http.StatusOK, `{"data":{"me":{"_id":"u1","username":"ann","about":""}}}`
	})
	c := New(srv.URL, WithLinks(AuthLink(&staticToken{})))

	require.NoError(t, c.Query(context.Background(), meDoc, nil, nil))

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	values := reqs[0].Header.Values(AuthorizationHeader)
	require.Len(t, values, 1)
	assert.Equal(t, "", values[0])
}

func TestClient_ExpiredTokenSentVerbatim(t *testing.T) {
	const expired = "eyJhbGciOiJIUzI1NiJ9.eyJleHAiOjF9.c2ln"
	srv := newFakeServer(t, func(request) (int, string) {
		return http.StatusOK, `{"errors":[{"message":"jwt expired","extensions":{"code":"UNAUTHENTICATED"}}]}`
	})
	c := New(srv.URL, WithLinks(AuthLink(&staticToken{token: expired, ok: true})))

	err := c.Query(context.Background(), meDoc, nil, nil)
	require.ErrorIs(t, err, ErrGraphQL)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNetwork)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer "+expired, reqs[0].Header.Get(AuthorizationHeader))
}

func TestClient_QueryIsCacheFirst(t *testing.T) {
	srv := newFakeServer(t, func(request) (int, string) {
		return http.StatusOK, `{"data":{"me":{"_id":"u1","username":"ann","about":"hi"}}}`
	})
	c := New(srv.URL)

	var first, second me
	require.NoError(t, c.Query(context.Background(), meDoc, nil, &first))
	require.NoError(t, c.Query(context.Background(), meDoc, nil, &second))
	assert.Equal(t, first, second)
	assert.Equal(t, "hi", second.Me.About)
	assert.Len(t, srv.Requests(), 1)

	require.NoError(t, c.Query(context.Background(), meDoc, nil, nil, NetworkOnly()))
	assert.Len(t, srv.Requests(), 2)
}

func TestClient_RequestBody(t *testing.T) {
	srv := newFakeServer(t, func(request) (int, string) {
		return http.StatusOK, `{"data":{"removePost":{"_id":"p1"}}}`
	})
	c := New(srv.URL)

	require.NoError(t, c.Mutate(context.Background(), removeDoc, map[string]any{"postId": "p1"}, nil))

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "removePost", reqs[0].Body.OperationName)
	assert.Equal(t, removeDoc.Query, reqs[0].Body.Query)
	assert.Equal(t, map[string]any{"postId": "p1"}, reqs[0].Body.Variables)
	assert.Equal(t, "application/json", reqs[0].Header.Get("Content-Type"))
}

func TestClient_RefetchAfterSuccessfulMutation(t *testing.T) {
	rec := newRecordingMetrics()
	srv := newFakeServer(t, func(req request) (int, string) {
		switch req.OperationName {
		case "removePost":
			return http.StatusOK, `{"data":{"removePost":{"_id":"p1"}}}`
		case "posts":
			return http.StatusOK, `{"data":{"posts":[]}}`
		default:
			return http.StatusInternalServerError, `boom`
		}
	})
	c := New(srv.URL, WithMetrics(rec))

	err := c.Mutate(context.Background(), removeDoc, map[string]any{"postId": "p1"}, nil, WithRefetch(postsDoc, meDoc))

	require.NoError(t, err, "a failed refetch must not fail the mutation")
	assert.Equal(t, []string{"removePost", "posts", "me"}, srv.Names())
	assert.Equal(t, []bool{true}, rec.refetches["posts"])
	assert.Equal(t, []bool{false}, rec.refetches["me"])
	assert.Equal(t, []string{metrics.OutcomeNetworkError}, rec.operations["me"])
}

func TestClient_NoRefetchAfterFailedMutation(t *testing.T) {
	srv := newFakeServer(t, func(req request) (int, string) {
		if req.OperationName == "removePost" {
			return http.StatusOK, `{"errors":[{"message":"not yours"}]}`
		}
		return http.StatusOK, `{"data":{"posts":[]}}`
	})
	c := New(srv.URL)

	err := c.Mutate(context.Background(), removeDoc, map[string]any{"postId": "p1"}, nil, WithRefetch(postsDoc))

	require.ErrorIs(t, err, ErrGraphQL)
	assert.Equal(t, []string{"removePost"}, srv.Names())
}

func TestClient_RefetchUpdatesCachedQuery(t *testing.T) {
	posts := `{"data":{"posts":[{"_id":"p1","postText":"a","likes":[]}]}}`
	srv := newFakeServer(t, func(req request) (int, string) {
		switch req.OperationName {
		case "removePost":
			posts = `{"data":{"posts":[]}}`
			return http.StatusOK, `{"data":{"removePost":{"_id":"p1"}}}`
		default:
			return http.StatusOK, posts
		}
	})
	c := New(srv.URL)

	var out struct {
		Posts []map[string]any `json:"posts"`
	}
	require.NoError(t, c.Query(context.Background(), postsDoc, nil, &out))
	require.Len(t, out.Posts, 1)

	require.NoError(t, c.Mutate(context.Background(), removeDoc, map[string]any{"postId": "p1"}, nil, WithRefetch(postsDoc)))

	require.NoError(t, c.Query(context.Background(), postsDoc, nil, &out))
	assert.Empty(t, out.Posts)
}

// The add-like result is the truth for the post's likes, even when the cache
// held a different list before.
func TestClient_ReconcileReplacesLikes(t *testing.T) {
	srv := newFakeServer(t, func(req request) (int, string) {
		switch req.OperationName {
		case "posts":
			return http.StatusOK, `{"data":{"posts":[{"__typename":"Post","_id":"p1","postText":"a","likes":[{"_id":"guess"}]}]}}`
		default:
			return http.StatusOK, `{"data":{"addLike":{"__typename":"Post","_id":"p1","likes":[{"_id":"l1"},{"_id":"l2"}]}}}`
		}
	})
	c := New(srv.URL)

	require.NoError(t, c.Query(context.Background(), postsDoc, nil, nil))
	require.NoError(t, c.Mutate(context.Background(), addLike, map[string]any{"postId": "p1"}, nil, WithReconcile("addLike")))

	var out struct {
		Posts []struct {
			ID    string `json:"_id"`
			Text  string `json:"postText"`
			Likes []struct {
				ID string `json:"_id"`
			} `json:"likes"`
		} `json:"posts"`
	}
	require.NoError(t, c.Query(context.Background(), postsDoc, nil, &out))
	require.Len(t, out.Posts, 1)
	assert.Equal(t, "a", out.Posts[0].Text)
	require.Len(t, out.Posts[0].Likes, 2)
	assert.Equal(t, "l1", out.Posts[0].Likes[0].ID)
	assert.Equal(t, "l2", out.Posts[0].Likes[1].ID)
	assert.Len(t, srv.Requests(), 2)
}

func TestClient_ReconcileEntity(t *testing.T) {
	c := New("http://unused")

	require.NoError(t, c.Reconcile(map[string]any{"__typename": "Post", "_id": "p1", "likes": []any{}}))
	post, ok := c.Cache().Entity("Post:p1")
	require.True(t, ok)
	assert.Equal(t, []any{}, post["likes"])

	require.ErrorIs(t, c.Reconcile(map[string]any{"likes": []any{}}), ErrNoIdentity)
	require.ErrorIs(t, c.Reconcile(map[string]any{"_id": "p1"}), ErrNoIdentity)
	require.ErrorIs(t, c.Reconcile([]string{"x"}), ErrNoIdentity)
}

func TestClient_ErrorTyping(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		network      bool
		graphql      bool
		unauthorized bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "oops", network: true},
		{name: "unauthorized status", status: http.StatusUnauthorized, body: "", network: true, unauthorized: true},
		{name: "garbage body", status: http.StatusOK, body: "<html>", network: true},
		{name: "graphql errors", status: http.StatusOK, body: `{"errors":[{"message":"bad input"}]}`, graphql: true},
		{name: "unauthenticated code", status: http.StatusOK, body: `{"errors":[{"message":"no","extensions":{"code":"UNAUTHENTICATED"}}]}`, graphql: true, unauthorized: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFakeServer(t, func(request) (int, string) { return tt.status, tt.body })
			c := New(srv.URL)

			err := c.Query(context.Background(), meDoc, nil, nil)
			require.Error(t, err)
			assert.Equal(t, tt.network, errorsIs(err, ErrNetwork))
			assert.Equal(t, tt.graphql, errorsIs(err, ErrGraphQL))
			assert.Equal(t, tt.unauthorized, errorsIs(err, ErrUnauthorized))
		})
	}
}

func TestClient_FailedQueryIsNotCached(t *testing.T) {
	fail := true
	srv := newFakeServer(t, func(request) (int, string) {
		if fail {
			return http.StatusBadGateway, ""
		}
		return http.StatusOK, `{"data":{"me":{"_id":"u1","username":"ann","about":""}}}`
	})
	c := New(srv.URL)

	require.ErrorIs(t, c.Query(context.Background(), meDoc, nil, nil), ErrNetwork)
	fail = false
	var out me
	require.NoError(t, c.Query(context.Background(), meDoc, nil, &out))
	assert.Equal(t, "ann", out.Me.Username)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := newFakeServer(t, func(request) (int, string) { return http.StatusOK, `{}` })
	url := srv.URL
	srv.Close()

	err := New(url).Query(context.Background(), meDoc, nil, nil)
	require.ErrorIs(t, err, ErrNetwork)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Zero(t, netErr.StatusCode)
}

func TestClient_UnencodableVariablesAreNetworkErrors(t *testing.T) {
	srv := newFakeServer(t, func(request) (int, string) { return http.StatusOK, `{"data":{}}` })
	c := New(srv.URL)

	err := c.Mutate(context.Background(), removeDoc, map[string]any{"postId": make(chan int)}, nil)
	require.ErrorIs(t, err, ErrNetwork)
	assert.NotErrorIs(t, err, ErrGraphQL)
	assert.Empty(t, srv.Requests())
}

// A logout while a query is in flight must not let that query's result
// repopulate the cache afterwards.
func TestClient_ResetDuringQueryDropsResult(t *testing.T) {
	var c *Client
	srv := newFakeServer(t, func(request) (int, string) {
		c.Cache().Reset()
		return http.StatusOK, `{"data":{"me":{"__typename":"User","_id":"u1","username":"ann","about":""}}}`
	})
	c = New(srv.URL)

	var out me
	require.NoError(t, c.Query(context.Background(), meDoc, nil, &out))
	assert.Equal(t, "ann", out.Me.Username)

	_, ok := c.Cache().Entity("User:u1")
	assert.False(t, ok)

	require.NoError(t, c.Query(context.Background(), meDoc, nil, nil))
	assert.Len(t, srv.Requests(), 2)
}

func TestClient_ResetDuringMutationSkipsRefetch(t *testing.T) {
	var c *Client
	srv := newFakeServer(t, func(req request) (int, string) {
		if req.OperationName == "removePost" {
			c.Cache().Reset()
		}
		return http.StatusOK, `{"data":{"removePost":{"__typename":"Post","_id":"p1"}}}`
	})
	c = New(srv.URL)

	require.NoError(t, c.Mutate(context.Background(), removeDoc, map[string]any{"postId": "p1"}, nil, WithRefetch(postsDoc)))

	assert.Equal(t, []string{"removePost"}, srv.Names())
	_, ok := c.Cache().Entity("Post:p1")
	assert.False(t, ok)
}
