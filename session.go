package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	expPerMission  = 150
	repsPerMission = 50
	expPerRank     = 1000 // progress bar denominator

	defaultSyncDelay = 1500 * time.Millisecond
	initialWeight    = 81
	initialRank      = "ASPIRANT"
	nextRank         = "INITIATE"
)

var (
	ErrExerciseIndex  = errors.New("exercise index out of range")
	ErrUnknownGoal    = errors.New("unknown daily goal")
	ErrSyncInProgress = errors.New("mission sync already in progress")
)

// Session owns all state for one run of the tracker.
// All methods are safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	stats     UserStats
	cycle     int
	completed [ExercisesPerWorkout]bool
	syncing   bool
	journal   []MissionRecord

	syncDelay time.Duration
	now       func() time.Time
	log       *zap.Logger
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithSyncDelay sets how long a mission sync takes
func WithSyncDelay(d time.Duration) SessionOption {
	return func(s *Session) {
		if d >= 0 {
			s.syncDelay = d
		}
	}
}

// WithLogger attaches a logger; the default discards everything
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used for journal timestamps
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession returns a session in its initial state
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		stats: UserStats{
			Weight: initialWeight,
			Rank:   initialRank,
		},
		syncDelay: defaultSyncDelay,
		now:       time.Now,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ToggleExercise flips the completed mark of an exercise in the current cycle
func (s *Session) ToggleExercise(index int) error {
	if index < 0 || index >= ExercisesPerWorkout {
		return fmt.Errorf("%w: %d", ErrExerciseIndex, index)
	}

	s.mu.Lock()
	s.completed[index] = !s.completed[index]
	done := s.completed[index]
	cycle := s.cycle
	s.mu.Unlock()

	s.log.Debug("exercise toggled",
		zap.Int("cycle", cycle),
		zap.Int("index", index),
		zap.Bool("completed", done))
	return nil
}

// ToggleGoal flips one daily bonus flag
func (s *Session) ToggleGoal(key GoalKey) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownGoal, key)
	}

	s.mu.Lock()
	s.stats.DailyGoals[key] = !s.stats.DailyGoals[key]
	on := s.stats.DailyGoals[key]
	s.mu.Unlock()

	s.log.Debug("goal toggled", zap.Stringer("goal", key), zap.Bool("on", on))
	return nil
}

// Complete runs the mission sync for the current cycle. Every exercise is
// marked done, the session enters the syncing state, and after the sync delay
// the rewards are credited and the next cycle begins.
//
// If ctx ends before the delay elapses the rewards are discarded, syncing is
// cleared and ctx.Err() is returned. A second call while a sync is pending
// returns ErrSyncInProgress without touching any state.
func (s *Session) Complete(ctx context.Context) error {
	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return ErrSyncInProgress
	}
	manual := 0
	for i, done := range s.completed {
		if done {
			manual++
		}
		s.completed[i] = true
	}
	s.syncing = true
	cycle := s.cycle
	s.mu.Unlock()

	s.log.Info("mission sync started",
		zap.Int("cycle", cycle),
		zap.Int("manual_checked", manual),
		zap.Duration("delay", s.syncDelay))

	timer := time.NewTimer(s.syncDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		s.mu.Lock()
		s.syncing = false
		s.mu.Unlock()
		s.log.Info("mission sync cancelled", zap.Int("cycle", cycle), zap.Error(ctx.Err()))
		return ctx.Err()
	case <-timer.C:
	}

	s.mu.Lock()
	s.stats.Exp += expPerMission
	s.stats.Reps += repsPerMission
	s.cycle = (s.cycle + 1) % CycleCount
	s.completed = [ExercisesPerWorkout]bool{}
	s.syncing = false
	s.journal = append(s.journal, MissionRecord{
		Timestamp:     s.now(),
		Cycle:         cycle,
		Title:         WorkoutFor(cycle).Title,
		ExpGained:     expPerMission,
		RepsGained:    repsPerMission,
		ManualChecked: manual,
	})
	exp, next := s.stats.Exp, s.cycle
	s.mu.Unlock()

	s.log.Info("mission synced",
		zap.Int("cycle", cycle),
		zap.Int("next_cycle", next),
		zap.Int("exp", exp))
	return nil
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Stats:     s.stats,
		Cycle:     s.cycle,
		Completed: s.completed,
		Syncing:   s.syncing,
	}
}

// Journal returns the missions synced so far, oldest first
func (s *Session) Journal() []MissionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]MissionRecord, len(s.journal))
	copy(out, s.journal)
	return out
}

// SyncDelay reports the configured sync duration
func (s *Session) SyncDelay() time.Duration {
	return s.syncDelay
}

// Snapshot is an immutable view of a Session used by the renderers
type Snapshot struct {
	Stats     UserStats
	Cycle     int
	Completed [ExercisesPerWorkout]bool
	Syncing   bool
}

// Workout is the active program for this snapshot
func (s Snapshot) Workout() Workout {
	return WorkoutFor(s.Cycle)
}

// CycleDay is the 1-based cycle number shown to the user
func (s Snapshot) CycleDay() int {
	return s.Cycle + 1
}

// CompletedCount is how many exercises of the current cycle are ticked
func (s Snapshot) CompletedCount() int {
	n := 0
	for _, done := range s.Completed {
		if done {
			n++
		}
	}
	return n
}

// Phase derives the mission lifecycle state
func (s Snapshot) Phase() Phase {
	switch {
	case s.Syncing:
		return PhaseSyncing
	case s.CompletedCount() == ExercisesPerWorkout:
		return PhaseReadyToSync
	default:
		return PhaseInProgress
	}
}

// ExpProgress is the fill fraction of the rank bar, capped at 1
func (s Snapshot) ExpProgress() float64 {
	p := float64(s.Stats.Exp) / expPerRank
	if p > 1 {
		return 1
	}
	return p
}

// NextRank is the label of the rank the user is working towards
func (s Snapshot) NextRank() string {
	return nextRank
}
