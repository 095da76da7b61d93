package realtime

import (
	"io"
	"log/slog"
	"time"

	"github.com/sytelus/claude-sessions/internal/search"
)

const (
	DefaultDebounce = 300 * time.Millisecond
	DefaultPoll     = 50 * time.Millisecond

	// joinTimeout bounds how long Stop waits for the worker; expiry is
	// non-fatal and never blocks process exit.
	joinTimeout = 500 * time.Millisecond
)

// Engine is the search capability the scheduler drives. *search.Searcher
// satisfies it.
type Engine interface {
	Search(query, dir string, opts Options) ([]search.Result, error)
}

// Options aliases the engine's option set so callers configure one thing.
type Options = search.Options

// Scheduler runs one background worker that polls the shared state for a
// dirty-past-debounce query, executes the search outside the lock and
// publishes the results. A mutation during a run is not cancelled into; its
// results land and are superseded by the next cycle.
type Scheduler struct {
	state    *State
	engine   Engine
	dir      string
	opts     Options
	cache    *resultCache
	debounce time.Duration
	poll     time.Duration
	log      *slog.Logger

	stop chan struct{}
	done chan struct{}
}

func NewScheduler(state *State, engine Engine, dir string, opts Options, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{
		state:    state,
		engine:   engine,
		dir:      dir,
		opts:     opts,
		cache:    newResultCache(),
		debounce: DefaultDebounce,
		poll:     DefaultPoll,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// SetTiming overrides the debounce window and poll interval. Zero values
// keep the defaults.
func (s *Scheduler) SetTiming(debounce, poll time.Duration) {
	if debounce > 0 {
		s.debounce = debounce
	}
	if poll > 0 {
		s.poll = poll
	}
}

func (s *Scheduler) Start() {
	go s.loop()
}

// Stop signals the worker and waits for it with a bounded timeout. An
// in-flight file scan is never preempted; if it outlives the timeout the
// worker is abandoned.
func (s *Scheduler) Stop() {
	close(s.stop)
	select {
	case <-s.done:
	case <-time.After(joinTimeout):
		s.log.Warn("search worker did not stop in time")
	}
}

// Invalidate applies the prefix eviction rule for the current query. The
// controller calls this on every text mutation.
func (s *Scheduler) Invalidate(current string) {
	s.cache.evictNonPrefix(current)
}

func (s *Scheduler) loop() {
	defer close(s.done)
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *Scheduler) runOnce() {
	query, ok := s.state.TakeDue(s.debounce)
	if !ok {
		return
	}

	// Empty query bypasses both the engine and the cache.
	if query == "" {
		s.state.PublishResults(nil)
		return
	}

	if results, hit := s.cache.get(query); hit {
		s.state.PublishResults(results)
		return
	}

	// The scan runs with no lock held; the input loop stays live.
	results, err := s.engine.Search(query, s.dir, s.opts)
	if err != nil {
		s.log.Warn("search failed", "query", query, "err", err)
		results = nil
	} else {
		s.cache.put(query, results)
	}
	s.state.PublishResults(results)
}
