package loader

import (
	"sync"
)

// Thunk defers the result of a Load until the batch has run. The bool is false
// when the key had no backing row.
type Thunk[V any] func() (V, bool)

// BatchFunc fetches all pending keys in one backend round trip. It returns the
// values it found; keys absent from the map resolve to the zero value.
type BatchFunc[K comparable, V any] func(keys []K) (map[K]V, error)

// Loader collects keys requested while a response is being assembled and
// resolves them with a single batched fetch. Results are cached per key, so
// repeated loads of the same key cost nothing. A Loader is scoped to one
// inbound request and must not be reused across requests.
type Loader[K comparable, V any] struct {
	fetch BatchFunc[K, V]

	mu      sync.Mutex
	pending []K
	cache   map[K]result[V]
}

type result[V any] struct {
	value V
	ok    bool
}

func New[K comparable, V any](fetch BatchFunc[K, V]) *Loader[K, V] {
	return &Loader[K, V]{
		fetch: fetch,
		cache: make(map[K]result[V]),
	}
}

// Load registers a key and returns a thunk for its value. Forcing any thunk
// flushes every key registered so far in one fetch, so callers should register
// all keys for a response before forcing the first thunk.
func (l *Loader[K, V]) Load(key K) Thunk[V] {
	l.mu.Lock()
	if _, ok := l.cache[key]; !ok {
		l.cache[key] = result[V]{}
		l.pending = append(l.pending, key)
	}
	l.mu.Unlock()

	return func() (V, bool) {
		l.mu.Lock()
		defer l.mu.Unlock()
		if err := l.flushLocked(); err != nil {
			var zero V
			return zero, false
		}
		r := l.cache[key]
		return r.value, r.ok
	}
}

// LoadAll registers every key, forces one batch, and returns the values in
// key order. Missing keys come back as zero values with ok=false.
func (l *Loader[K, V]) LoadAll(keys []K) []Thunk[V] {
	thunks := make([]Thunk[V], len(keys))
	for i, k := range keys {
		thunks[i] = l.Load(k)
	}
	return thunks
}

// flushLocked runs the batch fetch for pending keys. Callers hold l.mu.
func (l *Loader[K, V]) flushLocked() error {
	if len(l.pending) == 0 {
		return nil
	}
	keys := l.pending
	l.pending = nil

	found, err := l.fetch(keys)
	if err != nil {
		// Drop the keys from the cache so a later Load can retry.
		for _, k := range keys {
			delete(l.cache, k)
		}
		return err
	}
	for _, k := range keys {
		if v, ok := found[k]; ok {
			l.cache[k] = result[V]{value: v, ok: true}
		}
	}
	return nil
}
