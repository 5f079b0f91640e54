package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Console is the line-mode tracker used when stdout is not a terminal
type Console struct {
	session *Session
	in      io.Reader
	out     io.Writer
}

// NewConsole wires a console to a session and a pair of streams
func NewConsole(session *Session, in io.Reader, out io.Writer) *Console {
	return &Console{session: session, in: in, out: out}
}

// Run reads commands until quit, EOF or ctx ends. Lines are read on a
// separate goroutine so a cancelled ctx stops Run while it waits at the prompt.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.printStatus()
	c.printHelp()

	lines, readErr := c.readLines(ctx)
	for {
		fmt.Fprint(c.out, "> ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.out)
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			line = l
		}

		quit, err := c.exec(ctx, strings.TrimSpace(line))
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			fmt.Fprintf(c.out, "⚠️  %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// readLines scans c.in until EOF or ctx ends. The lines channel is closed
// after the scanner error (if any) has been sent on the error channel.
func (c *Console) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errc <- err
		}
	}()
	return lines, errc
}

func (c *Console) exec(ctx context.Context, line string) (bool, error) {
	cmd := strings.ToLower(line)
	switch cmd {
	case "":
		return false, nil
	case "q", "quit", "exit":
		return true, nil
	case "h", "help", "?":
		c.printHelp()
		return false, nil
	case "status", "st":
		c.printStatus()
		return false, nil
	case "sync", "complete", "c":
		fmt.Fprintf(c.out, "⏳ Syncing mission data (%s)...\n", c.session.SyncDelay())
		if err := c.session.Complete(ctx); err != nil {
			return false, err
		}
		snap := c.session.Snapshot()
		fmt.Fprintf(c.out, "✅ Mission synced: +%d EXP, +%d reps. Now on cycle day %d.\n",
			expPerMission, repsPerMission, snap.CycleDay())
		c.printStatus()
		return false, nil
	}

	if n, err := strconv.Atoi(cmd); err == nil {
		if err := c.session.ToggleExercise(n - 1); err != nil {
			return false, fmt.Errorf("%w (use 1-%d)", err, ExercisesPerWorkout)
		}
		c.printStatus()
		return false, nil
	}

	key, err := ParseGoalKey(cmd)
	if err != nil {
		return false, fmt.Errorf("unknown command %q (type 'help')", line)
	}
	if err := c.session.ToggleGoal(key); err != nil {
		return false, err
	}
	c.printStatus()
	return false, nil
}

func (c *Console) printStatus() {
	snap := c.session.Snapshot()
	w := snap.Workout()

	fmt.Fprintln(c.out, "═══════════════════════════════════════")
	fmt.Fprintf(c.out, "  %s · %s\n", appTitle, appSubtitle)
	fmt.Fprintln(c.out, "═══════════════════════════════════════")
	fmt.Fprintf(c.out, "🏆 %s  %d EXP (%.0f%%) · NEXT: %s\n",
		snap.Stats.Rank, snap.Stats.Exp, snap.ExpProgress()*100, snap.NextRank())
	fmt.Fprintf(c.out, "⚖️  %s · %d reps\n", formatWeight(snap.Stats.Weight), snap.Stats.Reps)
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "CYCLE DAY %d: %s\n", snap.CycleDay(), w.Title)
	fmt.Fprintf(c.out, "   %s\n", w.Description)
	for i, ex := range w.Exercises {
		mark := "[ ]"
		if snap.Completed[i] {
			mark = "[x]"
		}
		fmt.Fprintf(c.out, "   %s %d. %s (%s • %s)\n", mark, i+1, ex.Name, ex.Target, ex.Logic)
	}
	fmt.Fprintln(c.out)

	goals := make([]string, 0, goalCount)
	for _, g := range GoalKeys() {
		mark := "·"
		if snap.Stats.DailyGoals.Get(g) {
			mark = "✓"
		}
		goals = append(goals, fmt.Sprintf("%s %s", mark, g))
	}
	fmt.Fprintf(c.out, "🎯 Bonuses: %s\n", strings.Join(goals, "  "))
	if snap.Phase() == PhaseReadyToSync {
		fmt.Fprintln(c.out, "🔥 All exercises checked. Type 'sync' to claim the mission.")
	}
	fmt.Fprintln(c.out)
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `COMMANDS:
    1-4                       Check/uncheck an exercise
    steps|neck|forearms|water Toggle a bonus goal
    sync                      Sync mission data (+150 EXP, +50 reps)
    status                    Show the tracker
    help                      Show this help
    quit                      Leave
`)
}
