// Package realtime coordinates live-typed input against a background search:
// a lock-guarded query state, a prefix-evicting result cache, a debounced
// scheduler worker and the interactive controller loop that ties them to the
// keyboard decoder and the display.
package realtime

import (
	"sync"
	"time"

	"github.com/sytelus/claude-sessions/internal/search"
)

// maxDisplayed caps how many results the display shows and how far the
// selection may move.
const maxDisplayed = 10

// State is the single shared object between the controller and the scheduler
// worker. All access goes through its methods; the mutex is held only for
// short reads and writes, never across file I/O.
type State struct {
	mu         sync.Mutex
	query      string
	cursor     int
	selected   int
	results    []search.Result
	dirty      bool
	running    bool
	lastChange time.Time
	version    uint64
}

func NewState() *State {
	return &State{}
}

// View is an immutable snapshot for rendering and decision making. Results
// is replaced wholesale on publish and must not be mutated.
type View struct {
	Query     string
	Cursor    int
	Selected  int
	Results   []search.Result
	Searching bool
	Version   uint64
}

func (s *State) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Query:     s.query,
		Cursor:    s.cursor,
		Selected:  s.selected,
		Results:   s.results,
		Searching: s.dirty || s.running,
		Version:   s.version,
	}
}

// Insert places r at the cursor and marks the state dirty.
func (s *State) Insert(r rune) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = s.query[:s.cursor] + string(r) + s.query[s.cursor:]
	s.cursor++
	s.markDirtyLocked()
	return s.query
}

// DeleteBack removes the character before the cursor. Reports whether the
// query changed.
func (s *State) DeleteBack() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor == 0 {
		return s.query, false
	}
	s.query = s.query[:s.cursor-1] + s.query[s.cursor:]
	s.cursor--
	s.markDirtyLocked()
	return s.query, true
}

func (s *State) MoveCursor(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor > len(s.query) {
		s.cursor = len(s.query)
	}
	s.version++
}

// MoveSelection shifts the selected index, clamped to the displayed result
// range. A no-op when there are no results.
func (s *State) MoveSelection(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) == 0 {
		return
	}
	limit := len(s.results)
	if limit > maxDisplayed {
		limit = maxDisplayed
	}
	s.selected += delta
	if s.selected < 0 {
		s.selected = 0
	}
	if s.selected > limit-1 {
		s.selected = limit - 1
	}
	s.version++
}

// Selected returns the currently selected result, if any.
func (s *State) Selected() (search.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) == 0 || s.selected < 0 || s.selected >= len(s.results) {
		return search.Result{}, false
	}
	return s.results[s.selected], true
}

func (s *State) markDirtyLocked() {
	s.dirty = true
	s.lastChange = time.Now()
	s.version++
}

// TakeDue claims the pending query once the debounce window has elapsed.
// The worker is the only caller; ok == false means nothing is due yet.
func (s *State) TakeDue(debounce time.Duration) (query string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return "", false
	}
	if time.Since(s.lastChange) < debounce {
		return "", false
	}
	s.dirty = false
	s.running = true
	return s.query, true
}

// PublishResults installs a completed search's results and resets the
// selection. The slice is an immutable snapshot owned by the state from here
// on.
func (s *State) PublishResults(results []search.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = results
	s.selected = 0
	s.running = false
	s.version++
}
