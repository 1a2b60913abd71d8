package game

import (
	"errors"
	"math"
	"sync"
	"time"
)

var (
	ErrNotRunning        = errors.New("session is not running")
	ErrNameInFlight      = errors.New("name is already being validated")
	ErrStaleEpoch        = errors.New("resolution belongs to a previous session epoch")
	ErrCategoryFull      = errors.New("roster is already full")
	ErrNoRosterForGender = errors.New("gender category fits neither roster")
	ErrDuplicate         = errors.New("name duplicates an accepted entity")
	ErrNotCompleted      = errors.New("session is not completed")
)

// Session holds the live state of one game: both rosters, the in-flight
// pending-name set, the elapsed timer and the completion status. All
// mutation goes through its methods; the mutex is the critical section the
// admission step and the timer tick share, so the count-vs-roster-size
// check can never observe a half-applied admission.
type Session struct {
	mu sync.Mutex

	code       string
	state      State
	men        []Person
	women      []Person
	pending    map[string]struct{}
	rosterSize int

	elapsedSeconds int
	startedAt      time.Time
	lastAcceptedAt time.Time
	lastTouched    time.Time

	// epoch increments on every Start/Abort. Resolutions that complete
	// after a reset carry the old epoch and are discarded by Admit.
	epoch uint64

	// stopTick is non-nil exactly while the 1s ticker goroutine runs.
	stopTick chan struct{}

	// nowFn is the clock; tests swap it for a fake.
	nowFn func() time.Time
}

// NewSession creates a fresh session in the NotStarted state. rosterSize is
// the number of entities each roster needs for completion (100 in the real
// game; tests use smaller values).
func NewSession(code string, rosterSize int) *Session {
	return &Session{
		code:        code,
		state:       StateNotStarted,
		pending:     make(map[string]struct{}),
		rosterSize:  rosterSize,
		nowFn:       time.Now,
		lastTouched: time.Now(),
	}
}

// Code returns the session's public identifier.
func (s *Session) Code() string { return s.code }

// Start resets all counters, rosters and pending bookkeeping and enters
// Running. Calling Start on a running session aborts it and starts over.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.state = StateRunning
	s.startedAt = s.nowFn()
	s.startTickerLocked()
}

// Abort stops the timer and returns the session to its initial state.
// There is no resume: an aborted game is gone.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.state = StateNotStarted
}

// resetLocked wipes game state and invalidates in-flight resolutions.
// Caller holds the lock.
func (s *Session) resetLocked() {
	s.stopTickerLocked()
	s.epoch++
	s.men = nil
	s.women = nil
	s.pending = make(map[string]struct{})
	s.elapsedSeconds = 0
	s.startedAt = time.Time{}
	s.lastAcceptedAt = time.Time{}
	s.lastTouched = s.nowFn()
}

// BeginSubmission registers a normalized name as in flight and returns the
// session epoch together with a copy of every accepted entity, the
// as-of-pipeline-start view the duplicate check runs against.
func (s *Session) BeginSubmission(normalized string) (uint64, []Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning {
		return 0, nil, ErrNotRunning
	}
	if _, inFlight := s.pending[normalized]; inFlight {
		return 0, nil, ErrNameInFlight
	}
	s.pending[normalized] = struct{}{}
	s.lastTouched = s.nowFn()
	return s.epoch, s.acceptedLocked(), nil
}

// EndSubmission removes a name from the pending set. It runs on every
// terminal pipeline outcome, admission and rejection alike. The epoch must
// match the one BeginSubmission returned: a pipeline outliving a reset must
// not clear a fresh pipeline's pending entry for the same name.
func (s *Session) EndSubmission(epoch uint64, normalized string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	delete(s.pending, normalized)
}

// Admit appends a resolved person to the roster matching their gender.
// The whole step — epoch guard, duplicate re-check, capacity check, time
// interval, append and completion transition — is one critical section.
// isDup, when non-nil, re-checks the candidate against the current rosters
// immediately before admission; this closes the window where two distinct
// submissions for the same entity resolve concurrently.
func (s *Session) Admit(epoch uint64, p Person, isDup func(accepted []Person) bool) (Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return Person{}, ErrStaleEpoch
	}
	if s.state != StateRunning {
		return Person{}, ErrNotRunning
	}

	var roster *[]Person
	switch p.Gender {
	case GenderMale:
		roster = &s.men
	case GenderFemale:
		roster = &s.women
	default:
		return Person{}, ErrNoRosterForGender
	}
	if len(*roster) >= s.rosterSize {
		return Person{}, ErrCategoryFull
	}
	if isDup != nil && isDup(s.acceptedLocked()) {
		return Person{}, ErrDuplicate
	}

	now := s.nowFn()
	base := s.lastAcceptedAt
	if base.IsZero() {
		base = s.startedAt
	}
	p.TimeInterval = roundSeconds(now.Sub(base))
	*roster = append(*roster, p)
	s.lastAcceptedAt = now
	s.lastTouched = now

	// Completion is recomputed from post-mutation state inside this same
	// critical section, so a 101st submission can never slip in between
	// the append and the state transition.
	if len(s.men) >= s.rosterSize && len(s.women) >= s.rosterSize {
		s.state = StateCompleted
		s.stopTickerLocked()
	}
	return p, nil
}

// Snapshot returns a value copy of the observable session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := make([]string, 0, len(s.pending))
	for n := range s.pending {
		pending = append(pending, n)
	}
	return Snapshot{
		Code:           s.code,
		State:          s.state,
		Men:            append([]Person(nil), s.men...),
		Women:          append([]Person(nil), s.women...),
		MenCount:       len(s.men),
		WomenCount:     len(s.women),
		Pending:        pending,
		ElapsedSeconds: s.elapsedSeconds,
		RosterSize:     s.rosterSize,
		Epoch:          s.epoch,
	}
}

// IdleSince reports the last time the session saw any activity.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTouched
}

// acceptedLocked returns a copy of men ++ women. Caller holds the lock.
func (s *Session) acceptedLocked() []Person {
	out := make([]Person, 0, len(s.men)+len(s.women))
	out = append(out, s.men...)
	out = append(out, s.women...)
	return out
}

// startTickerLocked launches the 1-second timer goroutine. Caller holds the
// lock. Any previous ticker must already be stopped (resetLocked does so).
func (s *Session) startTickerLocked() {
	stop := make(chan struct{})
	s.stopTick = stop
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.mu.Lock()
				// A tick raced with a stop: the channel identity check
				// keeps a superseded ticker from touching fresh state.
				if s.state == StateRunning && s.stopTick == stop {
					s.elapsedSeconds++
				}
				s.mu.Unlock()
			case <-stop:
				return
			}
		}
	}()
}

// stopTickerLocked cancels the timer goroutine if one is running. Caller
// holds the lock. Every transition out of Running goes through here, so
// tickers are never leaked.
func (s *Session) stopTickerLocked() {
	if s.stopTick != nil {
		close(s.stopTick)
		s.stopTick = nil
	}
}

// roundSeconds converts a duration to seconds at millisecond precision,
// matching the 3-decimal intervals shown to players.
func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}
