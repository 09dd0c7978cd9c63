package sync

import (
	"fmt"
	"sync"

	"notion-sheets-sync/internal/logger"
)

// Stats accumulates outcome counters for one directional run. Reset at
// the start of each run, never shared across runs.
type Stats struct {
	mu      sync.Mutex
	created int
	updated int
	errors  int
}

func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created, s.updated, s.errors = 0, 0, 0
}

func (s *Stats) AddCreated(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created += n
}

func (s *Stats) AddUpdated(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated += n
}

func (s *Stats) AddErrors(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors += n
}

// Snapshot is an immutable copy of the counters.
type Snapshot struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Created: s.created, Updated: s.updated, Errors: s.errors}
}

func (s Snapshot) String() string {
	return fmt.Sprintf("created: %d, updated: %d, errors: %d", s.Created, s.Updated, s.Errors)
}

// ProgressFunc receives human-readable progress messages. It must not
// block; the engine fires and forgets.
type ProgressFunc func(message string)

// ProgressReporter emits milestones to an optional callback and to the
// log. Item-level progress is throttled to every interval items.
type ProgressReporter struct {
	fn       ProgressFunc
	interval int
}

func NewProgressReporter(fn ProgressFunc, interval int) *ProgressReporter {
	if interval <= 0 {
		interval = 25
	}
	return &ProgressReporter{fn: fn, interval: interval}
}

// Report emits a phase-transition message.
func (r *ProgressReporter) Report(message string) {
	if r.fn != nil {
		r.fn(message)
	}
	logger.Log.Info(message)
}

// Item emits a coarse milestone every interval processed items and for
// the final item.
func (r *ProgressReporter) Item(phase string, processed, total int) {
	if processed%r.interval != 0 && processed != total {
		return
	}
	r.Report(fmt.Sprintf("%s: %d/%d", phase, processed, total))
}
