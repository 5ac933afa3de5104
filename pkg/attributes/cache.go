package attributes

import "sync"

// preprocessorCache deduplicates preprocessed results by raw-value
// fingerprint, per spec §4.9.2: "results are stored in a weak-keyed cache
// by value-fingerprint to deduplicate across sibling nodes with the same
// raw value." Go has no weak maps in the standard library; this cache is
// bounded instead (evicting the oldest entry once full), trading perfect
// weak-reference semantics for a fixed memory ceiling -- acceptable since
// attribute raw values are overwhelmingly small strings/numbers repeated
// across many sibling nodes (class names, shared style strings).
type preprocessorCache struct {
	mu       sync.Mutex
	entries  map[any]Value
	order    []any
	capacity int
}

const defaultPreprocessorCacheCapacity = 512

func newPreprocessorCache() *preprocessorCache {
	return &preprocessorCache{entries: make(map[any]Value), capacity: defaultPreprocessorCacheCapacity}
}

func (c *preprocessorCache) get(raw Value) (Value, bool) {
	key, ok := fingerprint(raw)
	if !ok {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *preprocessorCache) put(raw Value, processed Value) {
	key, ok := fingerprint(raw)
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = processed
}

// fingerprint returns a value usable as a Go map key for raw, or ok=false
// if raw's dynamic type isn't comparable (e.g. a slice or map), in which
// case the result simply isn't cached.
func fingerprint(raw Value) (any, bool) {
	switch raw.(type) {
	case string, int, int32, int64, float32, float64, bool:
		return raw, true
	default:
		return nil, false
	}
}
