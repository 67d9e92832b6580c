package store

import (
	"sort"
	"sync"
	"time"

	"github.com/uvify/uv-monitor/internal/uv"
)

// ReadingStore is a concurrency-safe in-memory store for the canonical
// reading set. It owns deduplication, ordering, and the derived statistics
// consumers pull after a change notification.
type ReadingStore struct {
	mu sync.RWMutex

	// byKey holds one reading per (date, time) identity.
	byKey map[string]uv.Reading
	// sorted is the materialized view, newest first. Rebuilt on merge.
	sorted []uv.Reading

	// lastSeq tracks the newest applied sequence per refresh stream, so a
	// late response only loses to a newer response of the same kind.
	lastSeq    map[uv.RefreshStream]uint64
	lastUpdate time.Time
	updated    bool
	connected  bool

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int

	// now is injectable so window math is testable; defaults to time.Now.
	now func() time.Time
	loc *time.Location
}

// NewReadingStore creates an empty store using local wall-clock time for
// window boundaries.
func NewReadingStore() *ReadingStore {
	return &ReadingStore{
		byKey:   make(map[string]uv.Reading),
		lastSeq: make(map[uv.RefreshStream]uint64),
		subs:    make(map[int]func()),
		now:     time.Now,
		loc:     time.Local,
	}
}

// SetNowFunc overrides the clock used for window boundaries. Intended for
// tests.
func (s *ReadingStore) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Merge folds a batch of raw readings into the canonical set: dedup by
// (date, time) with the later record in the batch winning, re-sort newest
// first, and stamp lastUpdate. Connectivity reflects whether the resulting
// set is non-empty. Returns false without touching anything when seq is
// older than an already-applied merge of the same stream, so late responses
// from overlapping fetches of one endpoint cannot roll the set backwards.
// Streams sequence independently: a history snapshot that outlives several
// latest-polls still applies. Subscribers are notified after a successful
// merge.
func (s *ReadingStore) Merge(stream uv.RefreshStream, seq uint64, readings []uv.Reading) bool {
	s.mu.Lock()

	if seq < s.lastSeq[stream] {
		s.mu.Unlock()
		return false
	}
	s.lastSeq[stream] = seq

	for _, r := range readings {
		if prev, ok := s.byKey[r.Key()]; ok && r.FormattedDateTime == "" {
			// Keep the formatted form computed at first insert.
			r.FormattedDateTime = prev.FormattedDateTime
		}
		if r.FormattedDateTime == "" {
			r.FormattedDateTime = uv.FormatDateTime(r.Date, r.Time, s.loc)
		}
		s.byKey[r.Key()] = r
	}

	s.rebuildSorted()
	s.lastUpdate = s.now()
	s.updated = true
	s.connected = len(s.sorted) > 0

	s.mu.Unlock()

	s.notify()
	return true
}

// rebuildSorted materializes the descending (date, time) view. Caller holds
// the write lock.
func (s *ReadingStore) rebuildSorted() {
	s.sorted = s.sorted[:0]
	for _, r := range s.byKey {
		s.sorted = append(s.sorted, r)
	}
	loc := s.loc
	sort.Slice(s.sorted, func(i, j int) bool {
		ti, tj := s.sorted[i].Instant(loc), s.sorted[j].Instant(loc)
		if ti.Equal(tj) {
			// Stable fallback for unparseable timestamps.
			return s.sorted[i].Key() > s.sorted[j].Key()
		}
		return ti.After(tj)
	})
}

// MarkDisconnected flips the connectivity flag after a failed refresh.
// Existing data is untouched; stale data beats no data.
func (s *ReadingStore) MarkDisconnected() {
	s.mu.Lock()
	changed := s.connected
	s.connected = false
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Latest returns the most recent reading, if any.
func (s *ReadingStore) Latest() (uv.Reading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.sorted) == 0 {
		return uv.Reading{}, false
	}
	return s.sorted[0], true
}

// History returns a copy of the full canonical set, newest first.
func (s *ReadingStore) History() []uv.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]uv.Reading, len(s.sorted))
	copy(out, s.sorted)
	return out
}

// Filter returns the readings inside the named window, newest first.
// Window boundaries use wall-clock now at call time, so results can change
// across a day boundary without a new fetch.
func (s *ReadingStore) Filter(p uv.Period, customDate string) []uv.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := uv.FilterWindow(s.sorted, p, customDate, s.now())
	out := make([]uv.Reading, len(filtered))
	copy(out, filtered)
	return out
}

// Stats recomputes the derived-aggregate bundle from the canonical set.
// Never fails; an empty store yields a zero-valued bundle.
func (s *ReadingStore) Stats() uv.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return uv.ComputeStats(s.sorted, s.now())
}

// Accumulation recomputes the summed-exposure bundle from the canonical set.
func (s *ReadingStore) Accumulation() uv.Accumulation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return uv.ComputeAccumulation(s.sorted, s.now())
}

// LastUpdate returns the time of the last successful merge. ok is false
// before the first one.
func (s *ReadingStore) LastUpdate() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastUpdate, s.updated
}

// IsConnected reports whether the last refresh produced usable data.
func (s *ReadingStore) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.connected
}

// Subscribe registers a callback invoked after every data change. Consumers
// pull fresh derived stats on notification. The returned func unsubscribes.
func (s *ReadingStore) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *ReadingStore) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
