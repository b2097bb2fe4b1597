// Package store holds the most recently built logging configuration so it
// can be served without rebuilding on every read.
package store

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/atomic"

	"github.com/eugenenazirov/airflow-logconf/internal/logconf"
)

// ErrNilBuilder indicates the store was constructed without a build function.
var ErrNilBuilder = errors.New("store requires a build function")

// Builder produces a fresh configuration mapping from the current environment.
type Builder func() (*logconf.Config, error)

// Snapshot pairs a built mapping with the time it was built.
type Snapshot struct {
	Config  *logconf.Config
	BuiltAt time.Time
}

// Store keeps the latest snapshot behind an atomic pointer so reads never
// block a concurrent refresh.
type Store struct {
	build    Builder
	clock    func() time.Time
	snapshot atomic.Pointer[Snapshot]
}

// Option configures Store behaviour.
type Option func(*Store)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// New constructs a Store and performs the initial build; a build failure at
// this point is a configuration error and is returned to the caller.
func New(build Builder, opts ...Option) (*Store, error) {
	if build == nil {
		return nil, ErrNilBuilder
	}

	s := &Store{
		build: build,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns a defensive copy of the current snapshot, so callers cannot
// mutate the stored mapping.
func (s *Store) Get() Snapshot {
	snap := s.snapshot.Load()
	return Snapshot{
		Config:  snap.Config.Clone(),
		BuiltAt: snap.BuiltAt,
	}
}

// Refresh rebuilds the mapping from the current environment. On failure the
// previous snapshot stays in place.
func (s *Store) Refresh() (Snapshot, error) {
	cfg, err := s.build()
	if err != nil {
		return Snapshot{}, fmt.Errorf("rebuild logging configuration: %w", err)
	}

	snap := &Snapshot{
		Config:  cfg,
		BuiltAt: s.clock(),
	}
	s.snapshot.Store(snap)
	return *snap, nil
}
