package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// State of a Scheduler.
type State string

const (
	StateIdle       State = "IDLE"
	StatePolling    State = "POLLING"
	StateTerminated State = "TERMINATED"
)

// FetchFunc retrieves prices for a set of asset ids. Partial failure is
// expressed by missing map entries, not an error; an error means the whole
// cycle could not be attempted.
type FetchFunc func(ctx context.Context, ids []int64) (map[int64]float64, error)

// CycleResult is handed to the apply callback after each completed cycle.
type CycleResult struct {
	Update    map[int64]float64
	Requested int
	At        time.Time
	// Failed is set when the cycle could not be attempted at all
	// (total fetch failure); Update is empty in that case.
	Failed bool
}

// ApplyFunc consumes one cycle's result. Calls are serialized: the scheduler
// never has two cycles in flight, and never applies a result after Stop.
type ApplyFunc func(CycleResult)

// Scheduler drives a FetchFunc on a fixed interval while a live view is
// active. IDLE -> POLLING on Start with a non-empty id set, back to IDLE on
// Stop or an empty set, TERMINATED on Close.
//
// One cycle is in flight at a time; ticks that fire mid-cycle are dropped
// (time.Ticker coalesces them). Stop cancels the cycle context, and a cycle
// checks that context before applying, so a fetch resolving after
// deactivation is discarded rather than merged.
type Scheduler struct {
	interval time.Duration
	fetch    FetchFunc
	apply    ApplyFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	state  State
	ids    []int64
	wg     sync.WaitGroup
}

func New(interval time.Duration, fetch FetchFunc, apply ApplyFunc) *Scheduler {
	return &Scheduler{
		interval: interval,
		fetch:    fetch,
		apply:    apply,
		state:    StateIdle,
	}
}

// Start activates polling against the given id set: one immediate cycle,
// then one per interval. Restarts the schedule when already polling (id set
// changed at runtime); an empty set deactivates instead. No-op after Close.
func (s *Scheduler) Start(ids []int64) {
	s.mu.Lock()
	if s.state == StateTerminated {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if len(ids) == 0 {
		s.state = StateIdle
		s.ids = nil
		s.mu.Unlock()
		return
	}
	owned := make([]int64, len(ids))
	copy(owned, ids)
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state = StatePolling
	s.ids = owned
	s.wg.Add(1)
	s.mu.Unlock()

	go s.loop(ctx, owned)
}

func (s *Scheduler) loop(ctx context.Context, ids []int64) {
	defer s.wg.Done()

	s.cycle(ctx, ids)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cycle(ctx, ids)
		}
	}
}

func (s *Scheduler) cycle(ctx context.Context, ids []int64) {
	if ctx.Err() != nil {
		return
	}
	at := time.Now()
	update, err := s.fetch(ctx, ids)

	result := CycleResult{Update: update, Requested: len(ids), At: at}
	if err != nil {
		log.Warn().Err(err).Int("ids", len(ids)).Msg("poll cycle failed")
		result = CycleResult{Update: map[int64]float64{}, Requested: len(ids), At: at, Failed: true}
	}

	// Applying holds the scheduler lock so it serializes with Stop: a
	// schedule torn down while the fetch was in flight discards the result,
	// and once Stop returns no apply can follow. Apply callbacks must not
	// call back into the scheduler.
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	s.apply(result)
}

// Stop deactivates polling. The pending timer is cancelled and no apply
// happens after Stop returns the scheduler to IDLE, even for an in-flight
// fetch.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePolling {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = StateIdle
	s.ids = nil
}

// Close terminates the scheduler permanently and waits for the loop to exit.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = StateTerminated
	s.ids = nil
	s.mu.Unlock()
	s.wg.Wait()
}

// State returns the current scheduler state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IDs returns the id set the schedule currently runs against.
func (s *Scheduler) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out
}
