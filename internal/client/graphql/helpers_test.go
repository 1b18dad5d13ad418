package graphql

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recorded struct {
	Header http.Header
	Body   request
}

// fakeServer answers every operation with reply(operationName).
type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recorded
	reply    func(req request) (status int, body string)
}

func newFakeServer(t *testing.T, reply func(req request) (int, string)) *fakeServer {
	t.Helper()

	fs := &fakeServer{reply: reply}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		fs.mu.Lock()
		fs.requests = append(fs.requests, recorded{Header: r.Header.Clone(), Body: body})
		fs.mu.Unlock()

		status, out := fs.reply(body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(out))
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) Requests() []recorded {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]recorded(nil), fs.requests...)
}

func (fs *fakeServer) Names() []string {
	var names []string
	for _, r := range fs.Requests() {
		names = append(names, r.Body.OperationName)
	}
	return names
}

type staticToken struct {
	token string
	ok    bool
}

func (s *staticToken) Token() (string, bool) { return s.token, s.ok }

type recordingMetrics struct {
	mu         sync.Mutex
	operations map[string][]string
	refetches  map[string][]bool
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{operations: map[string][]string{}, refetches: map[string][]bool{}}
}

func (m *recordingMetrics) RecordOperation(op string, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operations[op] = append(m.operations[op], outcome)
}

func (m *recordingMetrics) RecordRefetch(op string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refetches[op] = append(m.refetches[op], ok)
}

func errorsIs(err, target error) bool { return errors.Is(err, target) }
