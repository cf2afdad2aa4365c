// store/repository.go
package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"guild-economy-system/models"
)

// Repository owns the in-memory state document. All mutation goes through
// atomic read-modify-write transforms: per-key locks serialize transforms on
// the same key while different keys proceed concurrently, and a document
// RWMutex guards the brief commit and every read.
//
// The in-memory document is the source of truth between flushes. Flush
// failures never roll back committed state; the dirty window is retried on
// the next cycle.
type Repository struct {
	mu  sync.RWMutex
	doc models.Document

	// seq counts committed transforms, flushedSeq the last value that made
	// it to the backend. They differ exactly when the document is dirty.
	seq        int64
	flushedSeq int64

	keyMu sync.Mutex
	keys  map[string]*sync.Mutex

	backend Backend
	mirror  Mirror // optional off-site copy of each flushed snapshot
}

// Mirror receives a best-effort copy of every flushed snapshot.
type Mirror interface {
	Upload(ctx context.Context, data []byte) error
}

// New creates a repository over the given backend. Load must be called
// before use.
func New(backend Backend) *Repository {
	return &Repository{
		doc:     models.NewDocument(),
		keys:    map[string]*sync.Mutex{},
		backend: backend,
	}
}

// SetMirror attaches an optional snapshot mirror (e.g. R2).
func (r *Repository) SetMirror(m Mirror) { r.mirror = m }

// Load reads the persisted document from the backend. A missing or corrupt
// snapshot falls back to an empty document; startup never fails on bad data.
func (r *Repository) Load(ctx context.Context) error {
	data, err := r.backend.Load(ctx)
	if err != nil {
		return err
	}

	doc := models.NewDocument()
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			log.Printf("⚠️  [STORE] Snapshot is corrupt, starting from an empty document: %v", err)
			doc = models.NewDocument()
		}
	}
	doc.Normalize()

	r.mu.Lock()
	r.doc = doc
	r.mu.Unlock()
	return nil
}

// Flush persists the current document if it changed since the last
// successful flush. On failure the dirty window stays open and the error is
// returned for the caller to log; in-memory state is unaffected.
func (r *Repository) Flush(ctx context.Context) error {
	r.mu.RLock()
	seq := r.seq
	if seq == r.flushedSeq {
		r.mu.RUnlock()
		return nil
	}
	data, err := json.MarshalIndent(r.doc, "", "  ")
	r.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := r.backend.Save(ctx, data); err != nil {
		return err
	}

	r.mu.Lock()
	if seq > r.flushedSeq {
		r.flushedSeq = seq
	}
	r.mu.Unlock()

	if r.mirror != nil {
		if err := r.mirror.Upload(ctx, data); err != nil {
			log.Printf("⚠️  [STORE] Snapshot mirror upload failed: %v", err)
		}
	}
	return nil
}

// Dirty reports whether committed transforms are awaiting a flush.
func (r *Repository) Dirty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.seq != r.flushedSeq
}

// lockFor returns the mutex serializing transforms for one namespaced key.
func (r *Repository) lockFor(key string) *sync.Mutex {
	r.keyMu.Lock()
	defer r.keyMu.Unlock()
	lk, ok := r.keys[key]
	if !ok {
		lk = &sync.Mutex{}
		r.keys[key] = lk
	}
	return lk
}

// commit applies fn under the document write lock and marks the store dirty.
func (r *Repository) commit(fn func(d *models.Document)) {
	r.mu.Lock()
	fn(&r.doc)
	r.seq++
	r.mu.Unlock()
}

// update is the generic read-modify-write transform over one map section.
// The transform gets a copy seeded with the current value (or zero() when
// the key is absent); returning an error rejects the update without
// mutating or dirtying anything.
func update[T any](r *Repository, ns, key string, section func(*models.Document) map[string]T, zero func() T, fn func(*T) error) (T, error) {
	lk := r.lockFor(ns + ":" + key)
	lk.Lock()
	defer lk.Unlock()

	r.mu.RLock()
	cur, ok := section(&r.doc)[key]
	r.mu.RUnlock()
	if !ok {
		cur = zero()
	}

	next := cur
	if err := fn(&next); err != nil {
		return cur, err
	}

	r.commit(func(d *models.Document) {
		section(d)[key] = next
	})
	return next, nil
}

// read returns the current value for one key of a map section.
func read[T any](r *Repository, key string, section func(*models.Document) map[string]T) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := section(&r.doc)[key]
	return v, ok
}
