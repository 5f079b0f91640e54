package main

// CycleCount is the number of rotating workout programs
const CycleCount = 3

// ExercisesPerWorkout is fixed for every program in the protocol
const ExercisesPerWorkout = 4

// Exercise is a single line of a workout
type Exercise struct {
	Name   string `yaml:"name"`
	Target string `yaml:"target"`
	Logic  string `yaml:"logic"`
}

// Workout is one entry of the protocol table
type Workout struct {
	Title       string                        `yaml:"title"`
	Description string                        `yaml:"description"`
	Accent      string                        `yaml:"accent"`
	Exercises   [ExercisesPerWorkout]Exercise `yaml:"exercises"`
}

// protocol is never written after init; callers only ever get copies.
var protocol = [CycleCount]Workout{
	{
		Title:       "UPPER BODY: V-TAPER",
		Description: "Priority: Wide Lats & Boulder Shoulders",
		Accent:      "amber",
		Exercises: [ExercisesPerWorkout]Exercise{
			{Name: "Cluster Pull-ups", Target: "2+1+1 (Total 10 reps)", Logic: "Rest 10s between clusters"},
			{Name: "Slow Negatives", Target: "3 Sets x 5 Reps", Logic: "5-second descent"},
			{Name: "Pike Push-ups", Target: "4 Sets x 10 Reps", Logic: "Feet on chair for height"},
			{Name: "Diamond Push-ups", Target: "3 Sets x Max", Logic: "Hands touch for triceps"},
		},
	},
	{
		Title:       "LOWER BODY: POWER",
		Description: "Priority: Explosive Quads & Agility",
		Accent:      "amber",
		Exercises: [ExercisesPerWorkout]Exercise{
			{Name: "Bulgarian Split Squats", Target: "4 Sets x 10/leg", Logic: "One foot on chair/bed"},
			{Name: "Jump Squats", Target: "3 Sets x 12 Reps", Logic: "Maximum vertical power"},
			{Name: "Dragon Flags", Target: "3 Sets x 5 Reps", Logic: "Hold bed frame, keep body straight"},
			{Name: "Calf Raises", Target: "4 Sets x 20 Reps", Logic: "Elevated on a step"},
		},
	},
	{
		Title:       "LOWER BODY: CORE & POSTURE",
		Description: "Priority: Ab Density & Spine Alignment",
		Accent:      "amber",
		Exercises: [ExercisesPerWorkout]Exercise{
			{Name: "Wall Sits", Target: "3 Sets x 60s", Logic: "Keep back flat against wall"},
			{Name: "Doorway Facepulls", Target: "4 Sets x 15 Reps", Logic: "Pull chest through door frame"},
			{Name: "Leg Raises", Target: "3 Sets x 15 Reps", Logic: "Squeeze abs at bottom"},
			{Name: "Wall Slides", Target: "2 Min Total", Logic: "Fixes 'Developer Hunch'"},
		},
	},
}

// Protocol returns a copy of the full table
func Protocol() [CycleCount]Workout {
	return protocol
}

// WorkoutFor looks up the program for a cycle index, wrapping out-of-range values
func WorkoutFor(cycle int) Workout {
	return protocol[normalizeCycle(cycle)]
}

func normalizeCycle(cycle int) int {
	c := cycle % CycleCount
	if c < 0 {
		c += CycleCount
	}
	return c
}
