package graphql

import (
	"fmt"
	"sync"
)

const (
	idField   = "_id"
	typeField = "__typename"
	refField  = "__ref"
)

// Cache is a normalized response cache. Every object carrying both
// __typename and _id is stored once, under Identify's key, and referenced
// from wherever it appears. Other objects stay embedded in their parent, so
// sub-documents whose ids are only unique within that parent (likes,
// comments) never collide. Writing an entity merges its fields into the
// stored copy; a field holding a list is always replaced as a whole.
//
// Reset starts a new generation. Writes carrying an older generation are
// dropped, so a response that was in flight during Reset cannot bring the
// previous session's data back.
type Cache struct {
	mu       sync.RWMutex
	gen      uint64
	entities map[string]map[string]any
	queries  map[string]any
}

func NewCache() *Cache {
	return &Cache{
		entities: make(map[string]map[string]any),
		queries:  make(map[string]any),
	}
}

// Identify returns the cache key of obj, "<__typename>:<_id>". Objects
// lacking either field have no identity of their own.
func Identify(obj map[string]any) (string, bool) {
	typename, _ := obj[typeField].(string)
	if typename == "" {
		return "", false
	}
	raw, ok := obj[idField]
	if !ok || raw == nil {
		return "", false
	}
	id := fmt.Sprint(raw)
	if id == "" {
		return "", false
	}
	return typename + ":" + id, true
}

// Entity returns a copy of the cached entity stored under key, with nested
// references resolved.
func (c *Cache) Entity(key string) (map[string]any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.entities[key]; !ok {
		return nil, false
	}
	obj, _ := c.resolve(map[string]any{refField: key}, map[string]bool{}).(map[string]any)
	return obj, obj != nil
}

// Reset drops everything. Used on logout so one user's data never serves
// another.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.entities = make(map[string]map[string]any)
	c.queries = make(map[string]any)
}

func (c *Cache) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

func (c *Cache) readQuery(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	root, ok := c.queries[key]
	if !ok {
		return nil, false
	}
	return c.resolve(root, map[string]bool{}), true
}

// writeQuery records data as the result of the query under key. It reports
// false when gen is stale and nothing was written.
func (c *Cache) writeQuery(gen uint64, key string, data any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.queries[key] = c.normalize(data)
	return true
}

// writeResult normalizes the entities of an operation result without
// recording the result itself.
func (c *Cache) writeResult(gen uint64, data any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.normalize(data)
	return true
}

func (c *Cache) writeEntity(gen uint64, obj map[string]any) (string, error) {
	key, ok := Identify(obj)
	if !ok {
		return "", ErrNoIdentity
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return "", ErrStaleWrite
	}
	c.normalize(obj)
	return key, nil
}

// normalize must be called with mu held for writing.
func (c *Cache) normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		fields := make(map[string]any, len(t))
		for k, fv := range t {
			fields[k] = c.normalize(fv)
		}
		key, ok := Identify(t)
		if !ok {
			return fields
		}
		stored, ok := c.entities[key]
		if !ok {
			stored = make(map[string]any, len(fields))
			c.entities[key] = stored
		}
		for k, fv := range fields {
			stored[k] = fv
		}
		return map[string]any{refField: key}
	case []any:
		items := make([]any, len(t))
		for i, item := range t {
			items[i] = c.normalize(item)
		}
		return items
	default:
		return v
	}
}

// resolve builds a detached copy of v with references replaced by entity
// data. onPath breaks reference cycles.
func (c *Cache) resolve(v any, onPath map[string]bool) any {
	switch t := v.(type) {
	case map[string]any:
		if key, ok := t[refField].(string); ok && len(t) == 1 {
			stored, ok := c.entities[key]
			if !ok || onPath[key] {
				return nil
			}
			onPath[key] = true
			defer delete(onPath, key)
			t = stored
		}
		out := make(map[string]any, len(t))
		for k, fv := range t {
			out[k] = c.resolve(fv, onPath)
		}
		return out
	case []any:
		items := make([]any, len(t))
		for i, item := range t {
			items[i] = c.resolve(item, onPath)
		}
		return items
	default:
		return v
	}
}
