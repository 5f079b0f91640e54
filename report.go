package main

import (
	"fmt"
	"io"
	"strings"
)

// SessionReport summarises one run for the exit report
type SessionReport struct {
	Missions   []MissionRecord
	TotalExp   int
	TotalReps  int
	Rank       string
	Cycle      int
	GoalsOn    []GoalKey
	GoalsTotal int
}

// BuildReport collects the report data from a session
func BuildReport(s *Session) SessionReport {
	snap := s.Snapshot()
	r := SessionReport{
		Missions:   s.Journal(),
		TotalExp:   snap.Stats.Exp,
		TotalReps:  snap.Stats.Reps,
		Rank:       snap.Stats.Rank,
		Cycle:      snap.Cycle,
		GoalsTotal: snap.Stats.DailyGoals.Len(),
	}
	for _, g := range GoalKeys() {
		if snap.Stats.DailyGoals.Get(g) {
			r.GoalsOn = append(r.GoalsOn, g)
		}
	}
	return r
}

func (r SessionReport) goalNames() string {
	if len(r.GoalsOn) == 0 {
		return "none"
	}
	names := make([]string, len(r.GoalsOn))
	for i, g := range r.GoalsOn {
		names[i] = g.String()
	}
	return strings.Join(names, ", ")
}

// WriteText prints the report in the banner style used by the console
func (r SessionReport) WriteText(w io.Writer) {
	fmt.Fprintln(w, "═══════════════════════════════════════")
	fmt.Fprintln(w, "  SESSION REPORT")
	fmt.Fprintln(w, "═══════════════════════════════════════")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "📊 Summary:\n")
	fmt.Fprintf(w, "   Missions synced: %d\n", len(r.Missions))
	fmt.Fprintf(w, "   Total EXP:       %d\n", r.TotalExp)
	fmt.Fprintf(w, "   Total reps:      %d\n", r.TotalReps)
	fmt.Fprintf(w, "   Rank:            %s\n", r.Rank)
	fmt.Fprintf(w, "   Next cycle day:  %d\n", r.Cycle+1)
	fmt.Fprintf(w, "   Bonuses:         %d / %d (%s)\n", len(r.GoalsOn), r.GoalsTotal, r.goalNames())
	fmt.Fprintln(w)

	if len(r.Missions) > 0 {
		fmt.Fprintf(w, "✅ Missions:\n")
		for _, m := range r.Missions {
			fmt.Fprintf(w, "   %s - %s (+%d EXP, +%d reps, %d/%d checked by hand)\n",
				m.Timestamp.Format("15:04"),
				m.Title,
				m.ExpGained,
				m.RepsGained,
				m.ManualChecked,
				ExercisesPerWorkout)
		}
		fmt.Fprintln(w)
	}
}

// WriteMarkdown prints the report as markdown
func (r SessionReport) WriteMarkdown(w io.Writer) {
	fmt.Fprintln(w, "# Session Report")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Summary")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- **Missions synced:** %d\n", len(r.Missions))
	fmt.Fprintf(w, "- **Total EXP:** %d\n", r.TotalExp)
	fmt.Fprintf(w, "- **Total reps:** %d\n", r.TotalReps)
	fmt.Fprintf(w, "- **Rank:** %s\n", r.Rank)
	fmt.Fprintf(w, "- **Next cycle day:** %d\n", r.Cycle+1)
	fmt.Fprintf(w, "- **Bonuses:** %d / %d (%s)\n", len(r.GoalsOn), r.GoalsTotal, r.goalNames())
	fmt.Fprintln(w)

	if len(r.Missions) > 0 {
		fmt.Fprintln(w, "## Missions")
		fmt.Fprintln(w)
		for _, m := range r.Missions {
			fmt.Fprintf(w, "- **%s** - `%s` (+%d EXP, +%d reps)\n",
				m.Timestamp.Format("15:04"),
				m.Title,
				m.ExpGained,
				m.RepsGained)
		}
		fmt.Fprintln(w)
	}
}
