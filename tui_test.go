package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, ctx context.Context, delay time.Duration) (Model, *Session) {
	t.Helper()
	s := newTestSession(delay)
	return NewModel(ctx, s, DarkTheme(), nil), s
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "Update returned %T", next)
	}
	return m, cmd
}

// runCmd executes cmd and any batched commands, returning every message produced
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findSyncDone(t *testing.T, msgs []tea.Msg) syncDoneMsg {
	t.Helper()
	for _, msg := range msgs {
		if done, ok := msg.(syncDoneMsg); ok {
			return done
		}
	}
	t.Fatalf("no syncDoneMsg in %v", msgs)
	return syncDoneMsg{}
}

func TestModelExerciseHotkeys(t *testing.T) {
	m, s := newTestModel(t, context.Background(), 0)

	m, _ = press(t, m, "1")
	assert.True(t, s.Snapshot().Completed[0])
	assert.Equal(t, 0, m.cursor)

	m, _ = press(t, m, "3")
	assert.True(t, s.Snapshot().Completed[2])
	assert.Equal(t, 2, m.cursor)

	_, _ = press(t, m, "1")
	assert.False(t, s.Snapshot().Completed[0])
}

func TestModelCursorToggle(t *testing.T) {
	m, s := newTestModel(t, context.Background(), 0)

	m, _ = press(t, m, "down", "j", "space")
	assert.Equal(t, 2, m.cursor)
	assert.Equal(t, [ExercisesPerWorkout]bool{false, false, true, false}, s.Snapshot().Completed)

	m, _ = press(t, m, "down", "down", "down", "down")
	assert.Equal(t, ExercisesPerWorkout-1, m.cursor)

	m, _ = press(t, m, "up", "k", "up", "up", "up")
	assert.Equal(t, 0, m.cursor)

	_, _ = press(t, m, "x")
	assert.True(t, s.Snapshot().Completed[0])
}

func TestModelGoalHotkeys(t *testing.T) {
	tests := []struct {
		key  string
		goal GoalKey
	}{
		{"s", GoalSteps},
		{"n", GoalNeck},
		{"f", GoalForearms},
		{"w", GoalWater},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, s := newTestModel(t, context.Background(), 0)

			m, _ = press(t, m, tt.key)
			assert.True(t, s.Snapshot().Stats.DailyGoals.Get(tt.goal))
			assert.Equal(t, 1, s.Snapshot().Stats.DailyGoals.Achieved())

			_, _ = press(t, m, tt.key)
			assert.False(t, s.Snapshot().Stats.DailyGoals.Get(tt.goal))
		})
	}
}

func TestModelSyncFlow(t *testing.T) {
	m, s := newTestModel(t, context.Background(), time.Millisecond)
	m, _ = press(t, m, "2", "down")

	m, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	assert.True(t, m.busy())
	assert.Contains(t, m.View(), "SYNCING...")

	done := findSyncDone(t, runCmd(cmd))
	require.NoError(t, done.err)

	next, _ := m.Update(done)
	m = next.(Model)
	assert.False(t, m.busy())
	assert.Equal(t, 0, m.cursor)

	snap := s.Snapshot()
	assert.Equal(t, 150, snap.Stats.Exp)
	assert.Equal(t, 50, snap.Stats.Reps)
	assert.Equal(t, 1, snap.Cycle)
	assert.Zero(t, snap.CompletedCount())

	view := m.View()
	assert.Contains(t, view, "CYCLE DAY 2")
	assert.Contains(t, view, "LOWER BODY: POWER")
	assert.Contains(t, view, "150 EXP")
}

func TestModelSyncDisabledWhileBusy(t *testing.T) {
	m, s := newTestModel(t, context.Background(), time.Millisecond)

	m, first := press(t, m, "enter")
	require.NotNil(t, first)

	m, second := press(t, m, "enter")
	assert.Nil(t, second, "sync control is disabled while a sync is pending")
	_, third := press(t, m, "c")
	assert.Nil(t, third)

	findSyncDone(t, runCmd(first))
	assert.Equal(t, 150, s.Snapshot().Stats.Exp)
	assert.Len(t, s.Journal(), 1)
}

func TestModelCancelledSync(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m, s := newTestModel(t, ctx, time.Minute)

	m, cmd := press(t, m, "enter")
	cancel()

	done := findSyncDone(t, runCmd(cmd))
	assert.ErrorIs(t, done.err, context.Canceled)

	next, _ := m.Update(done)
	m = next.(Model)
	assert.Empty(t, m.notice)
	assert.False(t, m.busy())
	assert.Zero(t, s.Snapshot().Stats.Exp)
	assert.Zero(t, s.Snapshot().Cycle)
}

func TestModelReadyAffordance(t *testing.T) {
	m, _ := newTestModel(t, context.Background(), 0)
	assert.NotContains(t, m.View(), "✓ SYNC MISSION DATA")

	m, _ = press(t, m, "1", "2", "3", "4")
	assert.Contains(t, m.View(), "✓ SYNC MISSION DATA")
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, context.Background(), 0)
	m, _ = press(t, m, "w")
	view := m.View()

	for _, want := range []string{
		"ÜBERMENSCH",
		"KOENJI PROTOCOL v2.1",
		"CURRENT WEIGHT",
		"81kg",
		"CURRENT STANDING",
		"ASPIRANT",
		"0 EXP",
		"NEXT: INITIATE",
		"TODAY'S MISSION",
		"CYCLE DAY 1",
		"UPPER BODY: V-TAPER",
		"Priority: Wide Lats & Boulder Shoulders",
		"CLUSTER PULL-UPS",
		"2+1+1 (Total 10 reps)",
		"Hands touch for triceps",
		"SYNC MISSION DATA",
		"ÜBERMENSCH BONUSES",
		"[s] STEPS",
		"[w] WATER ✓",
		"TRAIN",
		"STATS",
		"NOTLU",
	} {
		assert.Contains(t, view, want)
	}
}

func TestModelQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		m, _ := newTestModel(t, context.Background(), 0)
		_, cmd := press(t, m, k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModelHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, context.Background(), 0)
	assert.False(t, m.help.ShowAll)

	m, _ = press(t, m, "?")
	assert.True(t, m.help.ShowAll)
	assert.True(t, strings.Contains(m.View(), "bonus"))
}

func TestModelWindowSize(t *testing.T) {
	m, _ := newTestModel(t, context.Background(), 0)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	assert.Nil(t, cmd)

	m = next.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 60, m.height)
	assert.Contains(t, m.View(), "ÜBERMENSCH")
}

func findTick(t *testing.T, msgs []tea.Msg) spinner.TickMsg {
	t.Helper()
	for _, msg := range msgs {
		if tick, ok := msg.(spinner.TickMsg); ok {
			return tick
		}
	}
	t.Fatalf("no spinner.TickMsg in %v", msgs)
	return spinner.TickMsg{}
}

func TestModelStaleSpinnerTickDropped(t *testing.T) {
	m, _ := newTestModel(t, context.Background(), time.Millisecond)

	m, first := press(t, m, "enter")
	msgs := runCmd(first)
	staleTick := findTick(t, msgs)

	next, _ := m.Update(findSyncDone(t, msgs))
	m = next.(Model)
	require.False(t, m.busy())

	m, second := press(t, m, "enter")
	msgs = runCmd(second)
	freshTick := findTick(t, msgs)
	assert.NotEqual(t, staleTick.ID, freshTick.ID)

	_, cmd := m.Update(staleTick)
	assert.Nil(t, cmd, "a tick from the previous sync must not start a second chain")

	_, cmd = m.Update(freshTick)
	assert.NotNil(t, cmd)

	next, _ = m.Update(findSyncDone(t, msgs))
	m = next.(Model)
	_, cmd = m.Update(freshTick)
	assert.Nil(t, cmd, "ticks stop once the sync is done")
}

func TestGoalHotkeyLabelsMatchBindings(t *testing.T) {
	assert.Len(t, goalHotkeys, int(goalCount))
	for k, g := range goalHotkeys {
		assert.Equal(t, k, goalHotkeyLabels[g], "goal %s", g)
	}
}
