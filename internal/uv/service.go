package uv

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/atomic"
)

// Source abstracts the remote sensor backend the engine polls.
type Source interface {
	// FetchHistory returns the full reading history snapshot.
	FetchHistory(ctx context.Context) ([]Reading, error)
	// FetchLatest returns the most recent reading. ok is false when the
	// backend reports a legitimate "no data yet" state, which is not an
	// error.
	FetchLatest(ctx context.Context) (Reading, bool, error)
	// Suggest asks the backend's advice generator for sun-safety text
	// based on today's accumulated exposure.
	Suggest(ctx context.Context, todayAccumulated float64) (string, error)
}

// RefreshStream names an independent refresh pipeline. Sequence ordering
// applies within a stream only: a slow full-history fetch must not be
// discarded just because a fast latest-poll finished first.
type RefreshStream string

const (
	StreamHistory RefreshStream = "history"
	StreamLatest  RefreshStream = "latest"
)

// Store is the contract the in-memory reading store must satisfy.
type Store interface {
	Merge(stream RefreshStream, seq uint64, readings []Reading) bool
	MarkDisconnected()
	Latest() (Reading, bool)
	History() []Reading
	Filter(p Period, customDate string) []Reading
	Stats() Stats
	Accumulation() Accumulation
	Subscribe(fn func()) func()
	LastUpdate() (time.Time, bool)
	IsConnected() bool
}

// Service orchestrates refreshes from the source into the store and exposes
// the store's derived views to consumers.
type Service struct {
	store  Store
	source Source

	// Per-stream counters order refresh applications so that a slow fetch
	// finishing after a newer one of the same kind cannot roll the store
	// backwards. The streams sequence independently.
	historySeq atomic.Uint64
	latestSeq  atomic.Uint64
}

// NewService creates a new Service.
func NewService(store Store, source Source) *Service {
	return &Service{
		store:  store,
		source: source,
	}
}

// RefreshHistory fetches the full history snapshot and merges it into the
// store. Failures leave existing data untouched, flip the connectivity flag,
// and are returned for the caller to log; the next poll tick is the retry.
func (s *Service) RefreshHistory(ctx context.Context) error {
	seq := s.historySeq.Inc()

	readings, err := s.source.FetchHistory(ctx)
	if err != nil {
		s.store.MarkDisconnected()
		return fmt.Errorf("refresh history: %w", err)
	}

	if !s.store.Merge(StreamHistory, seq, readings) {
		log.Printf("uv: history refresh %d superseded by a newer one; dropped", seq)
	}
	return nil
}

// RefreshLatest fetches only the most recent reading and merges it. The
// backend's "no data yet" sentinel is an empty state, not a failure; it only
// flips connectivity when the store holds nothing at all, since existing
// history keeps the canonical set non-empty.
func (s *Service) RefreshLatest(ctx context.Context) error {
	seq := s.latestSeq.Inc()

	reading, ok, err := s.source.FetchLatest(ctx)
	if err != nil {
		s.store.MarkDisconnected()
		return fmt.Errorf("refresh latest: %w", err)
	}
	if !ok {
		if _, has := s.store.Latest(); !has {
			s.store.MarkDisconnected()
		}
		return nil
	}

	if !s.store.Merge(StreamLatest, seq, []Reading{reading}) {
		log.Printf("uv: latest refresh %d superseded by a newer one; dropped", seq)
	}
	return nil
}

// Suggestion asks the backend's advice generator for text keyed to today's
// accumulated exposure.
func (s *Service) Suggestion(ctx context.Context) (string, error) {
	acc := s.store.Accumulation()
	return s.source.Suggest(ctx, acc.Today)
}

// Latest delegates to the underlying store.
func (s *Service) Latest() (Reading, bool) {
	return s.store.Latest()
}

// History delegates to the underlying store.
func (s *Service) History() []Reading {
	return s.store.History()
}

// Filter delegates to the underlying store.
func (s *Service) Filter(p Period, customDate string) []Reading {
	return s.store.Filter(p, customDate)
}

// Stats delegates to the underlying store.
func (s *Service) Stats() Stats {
	return s.store.Stats()
}

// Accumulation delegates to the underlying store.
func (s *Service) Accumulation() Accumulation {
	return s.store.Accumulation()
}

// Subscribe registers a change callback and returns its unsubscribe func.
func (s *Service) Subscribe(fn func()) func() {
	return s.store.Subscribe(fn)
}

// LastUpdate delegates to the underlying store.
func (s *Service) LastUpdate() (time.Time, bool) {
	return s.store.LastUpdate()
}

// IsConnected delegates to the underlying store.
func (s *Service) IsConnected() bool {
	return s.store.IsConnected()
}
