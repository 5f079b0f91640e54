package main

import (
	"fmt"
	"strings"
	"time"
)

// GoalKey identifies one of the four daily bonus goals
type GoalKey int

const (
	GoalSteps GoalKey = iota
	GoalNeck
	GoalForearms
	GoalWater

	goalCount
)

var goalNames = [goalCount]string{"steps", "neck", "forearms", "water"}

// GoalKeys returns every goal key in display order
func GoalKeys() []GoalKey {
	keys := make([]GoalKey, goalCount)
	for i := range keys {
		keys[i] = GoalKey(i)
	}
	return keys
}

// Valid reports whether k is one of the four fixed goal keys
func (k GoalKey) Valid() bool {
	return k >= 0 && k < goalCount
}

func (k GoalKey) String() string {
	if !k.Valid() {
		return fmt.Sprintf("GoalKey(%d)", int(k))
	}
	return goalNames[k]
}

// ParseGoalKey maps a goal name to its key (case-insensitive)
func ParseGoalKey(name string) (GoalKey, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range goalNames {
		if n == name {
			return GoalKey(i), nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownGoal, name)
}

// DailyGoals holds one flag per goal key. The array length fixes the key set.
type DailyGoals [goalCount]bool

// Get returns the flag for k; invalid keys read as false
func (g DailyGoals) Get(k GoalKey) bool {
	if !k.Valid() {
		return false
	}
	return g[k]
}

// Len is always four
func (g DailyGoals) Len() int {
	return len(g)
}

// Achieved counts goals that are switched on
func (g DailyGoals) Achieved() int {
	n := 0
	for _, on := range g {
		if on {
			n++
		}
	}
	return n
}

// UserStats is the gamified profile shown on the rank card
type UserStats struct {
	Weight     float64 // kg, display only
	Reps       int
	Exp        int
	Rank       string
	DailyGoals DailyGoals
}

// Phase is the mission lifecycle state of the current cycle
type Phase int

const (
	PhaseInProgress Phase = iota
	PhaseReadyToSync
	PhaseSyncing
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in_progress"
	case PhaseReadyToSync:
		return "ready_to_sync"
	case PhaseSyncing:
		return "syncing"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// MissionRecord is one completed sync, kept in memory for the session report
type MissionRecord struct {
	Timestamp     time.Time
	Cycle         int
	Title         string
	ExpGained     int
	RepsGained    int
	ManualChecked int // exercises ticked by hand before the sync auto-completed the rest
}
