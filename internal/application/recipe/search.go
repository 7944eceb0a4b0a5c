package recipe

import (
	"context"
	"sync"
	"time"

	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/domain/shared"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period DebouncedSearch waits for
const DefaultDebounce = 400 * time.Millisecond

const msgSearchFailed = "failed to search recipes"

// SearchState is a snapshot of the search controller.
// The zero value is the idle state.
type SearchState struct {
	Results []recipe.Recipe
	Loading bool
	Error   string
	Success bool
	Query   string
}

// SearcherOption configures a Searcher
type SearcherOption func(*Searcher)

// WithScheduler replaces the wall-clock scheduler used for debouncing
func WithScheduler(s Scheduler) SearcherOption {
	return func(sr *Searcher) {
		sr.scheduler = s
	}
}

// WithDebounce sets the delay used when DebouncedSearch is given none
func WithDebounce(d time.Duration) SearcherOption {
	return func(sr *Searcher) {
		if d > 0 {
			sr.debounce = d
		}
	}
}

// Searcher drives natural-language recipe search, directly or debounced
type Searcher struct {
	api       outbound.RecipeAPI
	logger    *zap.Logger
	scheduler Scheduler
	debounce  time.Duration

	// base is the context debounced searches run under; Close cancels it
	base   context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    SearchState
	seq      uint64
	timer    Timer
	timerGen uint64
	running  int
	closed   bool
	version  uint64

	changes shared.Broadcaster[SearchState]
}

// NewSearcher creates a new search controller
func NewSearcher(api outbound.RecipeAPI, logger *zap.Logger, opts ...SearcherOption) *Searcher {
	base, cancel := context.WithCancel(context.Background())
	s := &Searcher{
		api:       api,
		logger:    logger.Named("recipe-search"),
		scheduler: SystemScheduler,
		debounce:  DefaultDebounce,
		base:      base,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot
func (s *Searcher) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn for every state change
func (s *Searcher) Subscribe(fn func(SearchState)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

// Search runs req immediately and returns the resulting state
func (s *Searcher) Search(ctx context.Context, req recipe.SearchRequest) SearchState {
	if err := req.Validate(); err != nil {
		return s.update(func(st *SearchState) {
			s.seq++
			st.Loading = false
			st.Success = false
			st.Error = err.Error()
		})
	}

	var seq uint64
	s.update(func(st *SearchState) {
		s.seq++
		seq = s.seq
		st.Loading = true
		st.Error = ""
		st.Success = false
		st.Query = req.Query
	})

	s.logger.Debug("Searching recipes", zap.String("query", req.Query), zap.Uint64("seq", seq))
	results, err := s.api.Search(ctx, req)

	s.mu.Lock()
	if seq != s.seq {
		snapshot := s.state
		s.mu.Unlock()
		s.logger.Debug("Discarding superseded search result", zap.Uint64("seq", seq))
		return snapshot
	}
	if err != nil {
		s.state = SearchState{
			Results: []recipe.Recipe{},
			Error:   shared.MessageOf(err, msgSearchFailed),
			Query:   req.Query,
		}
	} else {
		if results == nil {
			results = []recipe.Recipe{}
		}
		s.state = SearchState{Results: results, Success: true, Query: req.Query}
	}
	snapshot := s.state
	version := s.nextVersionLocked()
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("Recipe search failed", zap.String("query", req.Query), zap.Error(err))
	}
	s.changes.PublishVersion(version, snapshot)
	return snapshot
}

// DebouncedSearch records req.Query right away and runs Search once no
// further call has arrived for delay. Each call replaces the pending one.
// A delay <= 0 selects the configured default.
func (s *Searcher) DebouncedSearch(req recipe.SearchRequest, delay time.Duration) {
	if delay <= 0 {
		delay = s.debounce
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.stopTimerLocked()
	gen := s.timerGen
	s.timer = s.scheduler.AfterFunc(delay, func() {
		s.fire(gen, req)
	})
	s.state.Query = req.Query
	snapshot := s.state
	version := s.nextVersionLocked()
	s.mu.Unlock()

	s.changes.PublishVersion(version, snapshot)
}

func (s *Searcher) fire(gen uint64, req recipe.SearchRequest) {
	s.mu.Lock()
	if s.closed || gen != s.timerGen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.running++
	s.mu.Unlock()

	s.Search(s.base, req)

	s.mu.Lock()
	s.running--
	s.mu.Unlock()
}

// stopTimerLocked cancels the pending debounced call. A callback that has
// already started sees the bumped generation and does nothing.
func (s *Searcher) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen++
}

// Pending reports whether a debounced search is waiting to fire or running
func (s *Searcher) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil || s.running > 0
}

// ClearError dismisses the error together with the query and results
func (s *Searcher) ClearError() {
	s.update(func(st *SearchState) {
		st.Error = ""
		st.Query = ""
		st.Results = nil
		st.Success = false
	})
}

// Reset cancels any pending debounced search and returns to idle
func (s *Searcher) Reset() {
	s.update(func(st *SearchState) {
		s.stopTimerLocked()
		s.seq++
		*st = SearchState{}
	})
}

// Close releases the debounce timer and cancels a debounced search that is
// in flight. Later DebouncedSearch calls are ignored.
func (s *Searcher) Close() {
	s.mu.Lock()
	s.closed = true
	s.stopTimerLocked()
	s.mu.Unlock()

	s.cancel()
}

func (s *Searcher) update(fn func(*SearchState)) SearchState {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state
	version := s.nextVersionLocked()
	s.mu.Unlock()

	s.changes.PublishVersion(version, snapshot)
	return snapshot
}

func (s *Searcher) nextVersionLocked() uint64 {
	s.version++
	return s.version
}
