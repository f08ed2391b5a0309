// Package store is the in-memory authority for the catalog collections.
//
// The store owns the three collections exclusively: readers get copies,
// every mutation runs under the store mutex, passes through the schema
// normalizer and is followed by a full snapshot write through the injected
// persistence adapter. Identifiers come from monotonic counters persisted
// next to the collections, so ids stay unique across restarts and are never
// reused after a delete.
package store

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"libreria/internal/catalog"
)

// Entity kind names, used in errors and logs.
const (
	KindBook     = "book"
	KindAuthor   = "author"
	KindCategory = "category"
)

// Persister is the durable storage port.
type Persister interface {
	ReadSnapshot() (catalog.Snapshot, catalog.Counters, error)
	WriteSnapshot(snap catalog.Snapshot, counters catalog.Counters) error
}

// Importer is the external catalog source port, used once to seed an empty
// store.
type Importer interface {
	Import(ctx context.Context, limit int) (catalog.Snapshot, error)
}

// State is the store lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateSeeding
	StateReady
)

func (s State) String() string {
	switch s {
	case StateSeeding:
		return "seeding"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Store holds the catalog in memory and keeps it durable.
type Store struct {
	mu        sync.Mutex
	persister Persister
	importer  Importer

	snap     catalog.Snapshot
	counters catalog.Counters
	state    State

	latency time.Duration
	busy    atomic.Int64
}

// Option configures a Store.
type Option func(*Store)

// WithLatency makes every mutating operation sleep for d before applying,
// emulating the remote-backend delay of the original storefront. Off by
// default.
func WithLatency(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.latency = d
		}
	}
}

// New creates a store backed by the given adapter and importer, loading any
// previously persisted snapshot. Loaded entities pass through the
// normalizer so legacy-only data becomes fully mirrored.
func New(persister Persister, importer Importer, opts ...Option) (*Store, error) {
	s := &Store{
		persister: persister,
		importer:  importer,
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, counters, err := persister.ReadSnapshot()
	if err != nil {
		return nil, NewStorageError("read", err)
	}

	s.snap = catalog.NormalizeSnapshot(snap)
	s.counters = backfillCounters(counters, snap)
	if s.counters.Initialized {
		s.state = StateReady
	}

	slog.Debug("Catalog store loaded",
		"state", s.state.String(),
		"books", len(s.snap.Books),
		"authors", len(s.snap.Authors),
		"categories", len(s.snap.Categories),
	)
	return s, nil
}

// backfillCounters derives counters from the collection maxima when the
// persisted slot predates counter support (or was lost). A non-empty book
// collection implies the store was initialized.
func backfillCounters(c catalog.Counters, snap catalog.Snapshot) catalog.Counters {
	for _, b := range snap.Books {
		if b.ID > c.Books {
			c.Books = b.ID
		}
	}
	for _, a := range snap.Authors {
		if a.ID > c.Authors {
			c.Authors = a.ID
		}
	}
	for _, cat := range snap.Categories {
		if cat.ID > c.Categories {
			c.Categories = cat.ID
		}
	}
	if len(snap.Books) > 0 {
		c.Initialized = true
	}
	return c
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Busy reports whether any mutating operation is currently in flight.
// Callers are expected to hold off issuing overlapping mutations while the
// store is busy; operations that do overlap are still applied safely, in
// mutex order.
func (s *Store) Busy() bool {
	return s.busy.Load() > 0
}

// Snapshot returns a deep copy of the full catalog.
func (s *Store) Snapshot() catalog.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// SeedIfEmpty populates the store from the importer when the book
// collection is empty. When books already exist the call is a no-op
// returning the current data. A completed import marks the store ready even
// when it produced zero records; an import failure leaves the store
// un-seeded and safe to retry.
func (s *Store) SeedIfEmpty(ctx context.Context, limit int) (catalog.Snapshot, error) {
	defer s.beginMutation()()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReady || len(s.snap.Books) > 0 {
		slog.Debug("Seed skipped, store already initialized")
		return s.snap.Clone(), nil
	}

	s.state = StateSeeding
	slog.Info("Seeding empty catalog", "limit", limit)

	snap, err := s.importer.Import(ctx, limit)
	if err != nil {
		s.state = StateUninitialized
		return catalog.Snapshot{}, NewImportError(err)
	}

	snap = catalog.NormalizeSnapshot(snap)
	s.snap = snap
	s.counters = backfillCounters(s.counters, snap)
	s.counters.Initialized = true
	s.state = StateReady

	if err := s.persist("seed"); err != nil {
		return s.snap.Clone(), err
	}
	return s.snap.Clone(), nil
}

// persist writes the snapshot through the adapter. Must be called with the
// mutex held. In-memory state is never rolled back on failure; durable
// state catches up on the next successful write.
func (s *Store) persist(op string) error {
	if err := s.persister.WriteSnapshot(s.snap, s.counters); err != nil {
		slog.Error("Snapshot write failed, in-memory state ahead of durable state", "op", op, "error", err)
		return NewStorageError(op, err)
	}
	return nil
}

// beginMutation applies the configured latency and counts the mutation as
// in flight. Returned func ends it; the store stays busy while any
// overlapping mutation is still running.
func (s *Store) beginMutation() func() {
	s.busy.Add(1)
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
	return func() { s.busy.Add(-1) }
}
