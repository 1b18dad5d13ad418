package graphql

import "fmt"

// Reconcile records entity, typically the parent object returned by an
// "add" mutation, as the authoritative state of that object. Its fields
// overwrite the cached ones and its sub-lists (likes, comments, ...) replace
// the cached lists outright; nothing is merged element by element.
//
// entity may be a map or any JSON-marshalable struct; it must carry
// __typename and _id.
// Removals that only return the removed id cannot be reconciled: re-fetch
// the parent instead (WithRefetch).
func (c *Client) Reconcile(entity any) error {
	v, err := toGeneric(entity)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("reconcile: %w", ErrNoIdentity)
	}
	if _, err := c.cache.writeEntity(c.cache.generation(), obj); err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	return nil
}

func (c *Client) reconcileField(gen uint64, data any, field string) error {
	root, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("reconcile %s: %w", field, ErrNoIdentity)
	}
	obj, ok := root[field].(map[string]any)
	if !ok {
		return fmt.Errorf("reconcile %s: %w", field, ErrNoIdentity)
	}
	if _, err := c.cache.writeEntity(gen, obj); err != nil {
		return fmt.Errorf("reconcile %s: %w", field, err)
	}
	return nil
}
