package realtime

import (
	"sync"
	"testing"
	"time"

	"github.com/sytelus/claude-sessions/internal/search"
)

// countingEngine records every query the scheduler actually executes.
type countingEngine struct {
	mu      sync.Mutex
	queries []string
	results []search.Result
}

func (e *countingEngine) Search(query, dir string, opts Options) ([]search.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queries = append(e.queries, query)
	return e.results, nil
}

func (e *countingEngine) calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.queries))
	copy(out, e.queries)
	return out
}

func newTestScheduler(t *testing.T, engine Engine, debounce time.Duration) (*State, *Scheduler) {
	t.Helper()
	state := NewState()
	sched := NewScheduler(state, engine, t.TempDir(), Options{}, nil)
	sched.SetTiming(debounce, 5*time.Millisecond)
	return state, sched
}

// Typing "py", "pyt", "python" inside the debounce window produces exactly
// one engine execution, for the final query.
func TestDebounceCoalescesKeystrokes(t *testing.T) {
	engine := &countingEngine{results: results(1)}
	state, sched := newTestScheduler(t, engine, 100*time.Millisecond)
	sched.Start()
	defer sched.Stop()

	for _, r := range "python" {
		state.Insert(r)
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(300 * time.Millisecond)

	calls := engine.calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly 1 engine call, got %d: %#v", len(calls), calls)
	}
	if calls[0] != "python" {
		t.Fatalf("expected final query, got %q", calls[0])
	}
	if v := state.Snapshot(); len(v.Results) != 1 {
		t.Fatalf("results not published: %#v", v)
	}
}

// Backing up from "gop" to "go" serves the surviving "go" cache entry
// instead of re-running the engine. The dropped "gop" entry is gone by the
// eviction rule, so only the two distinct forward queries ever execute.
func TestCacheHitSkipsEngine(t *testing.T) {
	engine := &countingEngine{results: results(2)}
	state, sched := newTestScheduler(t, engine, 20*time.Millisecond)
	sched.Start()
	defer sched.Stop()

	for _, r := range "go" {
		state.Insert(r)
	}
	time.Sleep(150 * time.Millisecond)
	if v := state.Snapshot(); len(v.Results) != 2 {
		t.Fatalf("first search not published: %#v", v)
	}

	state.Insert('p')
	sched.Invalidate("gop")
	time.Sleep(150 * time.Millisecond)
	if got := len(engine.calls()); got != 2 {
		t.Fatalf("expected 2 engine calls after extending query, got %d", got)
	}

	if _, changed := state.DeleteBack(); !changed {
		t.Fatal("expected delete")
	}
	sched.Invalidate("go")
	time.Sleep(150 * time.Millisecond)

	calls := engine.calls()
	if len(calls) != 2 {
		t.Fatalf("expected cache hit on backspace, engine ran %d times: %#v", len(calls), calls)
	}
	if v := state.Snapshot(); len(v.Results) != 2 {
		t.Fatalf("cached results not republished: %#v", v)
	}
}

func TestEmptyQueryBypassesEngine(t *testing.T) {
	engine := &countingEngine{results: results(1)}
	state, sched := newTestScheduler(t, engine, 10*time.Millisecond)
	sched.Start()
	defer sched.Stop()

	state.Insert('a')
	time.Sleep(100 * time.Millisecond)
	if len(engine.calls()) != 1 {
		t.Fatalf("expected one call, got %#v", engine.calls())
	}

	if _, changed := state.DeleteBack(); !changed {
		t.Fatal("expected delete")
	}
	time.Sleep(100 * time.Millisecond)

	if len(engine.calls()) != 1 {
		t.Fatalf("empty query must bypass the engine: %#v", engine.calls())
	}
	if v := state.Snapshot(); len(v.Results) != 0 {
		t.Fatalf("empty query must publish empty results: %#v", v.Results)
	}
}

func TestStopJoinsWorker(t *testing.T) {
	engine := &countingEngine{}
	_, sched := newTestScheduler(t, engine, 10*time.Millisecond)
	sched.Start()

	done := make(chan struct{})
	go func() {
		sched.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * joinTimeout):
		t.Fatal("Stop did not return in bounded time")
	}
}
