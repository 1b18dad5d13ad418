package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/client/metrics"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

const maxResponseSize = 8 << 20

type Client struct {
	endpoint   string
	httpClient *http.Client
	link       Link
	cache      *Cache
	log        logging.Logger
	metrics    metrics.Recorder
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLinks sets the middleware chain run before every send.
func WithLinks(links ...Link) Option {
	return func(c *Client) { c.link = Chain(links...) }
}

func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithMetrics(r metrics.Recorder) Option {
	return func(c *Client) { c.metrics = r }
}

// New builds a client for the GraphQL endpoint URL. The application
// creates one at start-up and shares it.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		link:       Chain(),
		cache:      NewCache(),
		log:        logging.Nop(),
		metrics:    metrics.Nop{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Cache() *Cache { return c.cache }

type queryOptions struct {
	networkOnly bool
}

type QueryOption func(*queryOptions)

// NetworkOnly skips the cache lookup; the result still refreshes the cache.
func NetworkOnly() QueryOption {
	return func(o *queryOptions) { o.networkOnly = true }
}

// Refetch is a query re-run after a successful mutation.
type Refetch struct {
	Document  Document
	Variables map[string]any
}

type mutateOptions struct {
	refetch   []Refetch
	reconcile string
}

type MutateOption func(*mutateOptions)

// WithRefetch re-runs the variable-less queries docs after the mutation.
func WithRefetch(docs ...Document) MutateOption {
	return func(o *mutateOptions) {
		for _, d := range docs {
			o.refetch = append(o.refetch, Refetch{Document: d})
		}
	}
}

func WithRefetchQuery(doc Document, vars map[string]any) MutateOption {
	return func(o *mutateOptions) {
		o.refetch = append(o.refetch, Refetch{Document: doc, Variables: vars})
	}
}

// WithReconcile names the result field holding the refreshed parent entity.
// It is written to the cache as the new truth for that entity.
func WithReconcile(field string) MutateOption {
	return func(o *mutateOptions) { o.reconcile = field }
}

// Query runs doc and decodes its data into out (which may be nil). A result
// already in the cache for the same document and variables is served from
// there unless NetworkOnly is given.
func (c *Client) Query(ctx context.Context, doc Document, vars map[string]any, out any, opts ...QueryOption) error {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}

	key := cacheKey(doc, vars)
	if !o.networkOnly {
		if cached, ok := c.cache.readQuery(key); ok {
			c.log.Debug(ctx, "graphql cache hit", "operation", doc.Name)
			return decodeInto(cached, out)
		}
	}

	gen := c.cache.generation()
	data, err := c.execute(ctx, doc, vars)
	if err != nil {
		return err
	}
	if !c.cache.writeQuery(gen, key, data) {
		c.log.Debug(ctx, "graphql result not cached, cache was reset", "operation", doc.Name)
	}
	return decodeInto(data, out)
}

// Mutate runs doc over the network and decodes its data into out. After a
// success the result's entities are merged into the cache, the reconcile
// field (if any) is written as the entity's new state and each refetch
// query is re-run. A failed refetch is logged, not returned: the
// mutation itself has already been applied.
func (c *Client) Mutate(ctx context.Context, doc Document, vars map[string]any, out any, opts ...MutateOption) error {
	var o mutateOptions
	for _, opt := range opts {
		opt(&o)
	}

	gen := c.cache.generation()
	data, err := c.execute(ctx, doc, vars)
	if err != nil {
		return err
	}

	if !c.cache.writeResult(gen, data) {
		c.log.Debug(ctx, "graphql result not cached, cache was reset", "operation", doc.Name)
	}
	if o.reconcile != "" {
		if err := c.reconcileField(gen, data, o.reconcile); err != nil {
			c.log.Warn(ctx, "mutation result not reconciled", "operation", doc.Name, "error", err)
		}
	}

	for _, r := range o.refetch {
		if c.cache.generation() != gen {
			c.log.Debug(ctx, "refetch skipped, cache was reset", "operation", r.Document.Name, "after", doc.Name)
			break
		}
		err := c.Query(ctx, r.Document, r.Variables, nil, NetworkOnly())
		c.metrics.RecordRefetch(r.Document.Name, err == nil)
		if err != nil {
			c.log.Warn(ctx, "refetch failed", "operation", r.Document.Name, "after", doc.Name, "error", err)
		}
	}

	return decodeInto(data, out)
}

func (c *Client) execute(ctx context.Context, doc Document, vars map[string]any) (any, error) {
	op := &Operation{Document: doc, Variables: vars}

	header := make(http.Header)
	if err := c.link(ctx, op, header); err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("prepare %s: %w", op.Name, err)}
	}

	body, err := json.Marshal(request{Query: op.Query, OperationName: op.Name, Variables: op.Variables})
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("encode %s: %w", op.Name, err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header = header
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	data, err := c.roundTrip(req)
	latency := time.Since(start)

	switch {
	case err == nil:
		c.metrics.RecordOperation(op.Name, metrics.OutcomeOK, latency)
		c.log.Debug(ctx, "graphql operation", "operation", op.Name, "latency", latency)
	case errors.Is(err, ErrGraphQL):
		c.metrics.RecordOperation(op.Name, metrics.OutcomeGraphQLError, latency)
		c.log.Warn(ctx, "graphql operation rejected", "operation", op.Name, "error", err)
	default:
		c.metrics.RecordOperation(op.Name, metrics.OutcomeNetworkError, latency)
		c.log.Warn(ctx, "graphql operation failed", "operation", op.Name, "error", err)
	}
	return data, err
}

func (c *Client) roundTrip(req *http.Request) (any, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &NetworkError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{StatusCode: resp.StatusCode, Err: errors.New(bodySnippet(raw, resp.StatusCode))}
	}

	var r response
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, &NetworkError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(r.Errors) > 0 {
		return nil, &GraphQLError{Errors: r.Errors}
	}

	data, err := toGeneric(r.Data)
	if err != nil {
		return nil, &NetworkError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
	}
	return data, nil
}

func bodySnippet(raw []byte, status int) string {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return http.StatusText(status)
	}
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

// toGeneric turns JSON (raw bytes or any marshalable value) into maps,
// slices and json.Number scalars.
func toGeneric(v any) (any, error) {
	raw, ok := v.(json.RawMessage)
	if !ok {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	if len(raw) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeInto(data any, out any) error {
	if out == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
