package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// syncDoneMsg is sent when Session.Complete returns
type syncDoneMsg struct {
	err error
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Exercise key.Binding
	Goal     key.Binding
	Sync     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Goal, k.Sync, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Exercise},
		{k.Goal, k.Sync},
		{k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "check")),
		Exercise: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "check #")),
		Goal:     key.NewBinding(key.WithKeys("s", "n", "f", "w"), key.WithHelp("s/n/f/w", "bonus")),
		Sync:     key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "sync mission")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// goalHotkeys maps the Goal binding keys onto goal keys
var goalHotkeys = map[string]GoalKey{
	"s": GoalSteps,
	"n": GoalNeck,
	"f": GoalForearms,
	"w": GoalWater,
}

// goalHotkeyLabels is the inverse of goalHotkeys, shown on the bonus tiles
var goalHotkeyLabels = [goalCount]string{
	GoalSteps:    "s",
	GoalNeck:     "n",
	GoalForearms: "f",
	GoalWater:    "w",
}

// Model is the Bubble Tea model for the tracker screen
type Model struct {
	ctx     context.Context
	session *Session
	log     *zap.Logger

	theme    Theme
	styles   Styles
	keys     keyMap
	help     help.Model
	progress progress.Model
	spinner  spinner.Model

	cursor        int
	syncRequested bool
	notice        string
	width         int
	height        int
}

// NewModel creates the screen model. ctx bounds any pending mission sync.
func NewModel(ctx context.Context, session *Session, theme Theme, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}

	bar := progress.New(
		progress.WithSolidFill(string(theme.Accent)),
		progress.WithoutPercentage(),
		progress.WithWidth(cardWidth-6),
	)
	bar.EmptyColor = string(theme.Border)

	return Model{
		ctx:      ctx,
		theme:    theme,
		session:  session,
		log:      log,
		styles:   NewStyles(theme),
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: bar,
		spinner:  newSyncSpinner(theme),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case syncDoneMsg:
		m.syncRequested = false
		switch {
		case msg.err == nil:
			m.cursor = 0
			m.notice = ""
		case errors.Is(msg.err, ErrSyncInProgress), errors.Is(msg.err, context.Canceled):
		default:
			m.notice = msg.err.Error()
			m.log.Warn("mission sync failed", zap.Error(msg.err))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < ExercisesPerWorkout-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		m.toggleExercise(m.cursor)

	case key.Matches(msg, m.keys.Exercise):
		idx, err := strconv.Atoi(msg.String())
		if err == nil {
			m.cursor = idx - 1
			m.toggleExercise(m.cursor)
		}

	case key.Matches(msg, m.keys.Goal):
		if err := m.session.ToggleGoal(goalHotkeys[msg.String()]); err != nil {
			m.notice = err.Error()
		}

	case key.Matches(msg, m.keys.Sync):
		if m.busy() {
			return m, nil
		}
		m.syncRequested = true
		m.notice = ""
		// a fresh spinner has a new ID, so ticks left over from an earlier sync are dropped
		m.spinner = newSyncSpinner(m.theme)
		return m, tea.Batch(m.syncCmd(), m.spinner.Tick)
	}

	return m, nil
}

func newSyncSpinner(theme Theme) spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
	)
}

func (m *Model) toggleExercise(index int) {
	if err := m.session.ToggleExercise(index); err != nil {
		m.notice = err.Error()
	}
}

// busy reports whether the sync control is disabled
func (m Model) busy() bool {
	return m.syncRequested || m.session.Snapshot().Syncing
}

func (m Model) syncCmd() tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		return syncDoneMsg{err: session.Complete(ctx)}
	}
}

// View implements tea.Model
func (m Model) View() string {
	snap := m.session.Snapshot()

	sections := []string{
		m.viewHeader(snap),
		m.viewRank(snap),
		m.viewMission(snap),
		m.viewBonuses(snap),
		m.viewNav(),
	}
	if m.notice != "" {
		sections = append(sections, m.styles.Logic.Render(m.notice))
	}
	sections = append(sections, m.styles.Help.Render(m.help.View(m.keys)))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}

func (m Model) viewHeader(snap Snapshot) string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(appTitle),
		m.styles.Subtitle.Render(appSubtitle),
	)
	right := lipgloss.JoinVertical(lipgloss.Right,
		m.styles.Label.Render("CURRENT WEIGHT"),
		m.styles.Value.Render(formatWeight(snap.Stats.Weight)),
	)
	return spread(left, right, cardWidth+2) + "\n"
}

func (m Model) viewRank(snap Snapshot) string {
	inner := cardWidth - 6
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Index.Render("CURRENT STANDING"),
		m.styles.Rank.Render(snap.Stats.Rank),
		"",
		m.progress.ViewAs(snap.ExpProgress()),
		spread(
			m.styles.Label.Render(fmt.Sprintf("%d EXP", snap.Stats.Exp)),
			m.styles.Label.Italic(true).Render("NEXT: "+snap.NextRank()),
			inner,
		),
	)
	return m.styles.Card.Render(body)
}

func (m Model) viewMission(snap Snapshot) string {
	workout := snap.Workout()
	heading := spread(
		m.styles.SectionTitle.Render("TODAY'S MISSION"),
		m.styles.Badge.Render(fmt.Sprintf("CYCLE DAY %d", snap.CycleDay())),
		cardWidth+2,
	)

	rows := []string{
		m.styles.WorkoutTitle.Render(workout.Title),
		m.styles.Description.Render(workout.Description),
		"",
	}
	for i, ex := range workout.Exercises {
		rows = append(rows, m.viewExercise(i, ex, snap.Completed[i]))
	}
	rows = append(rows, m.viewButton(snap))

	return lipgloss.JoinVertical(lipgloss.Left, heading, m.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

func (m Model) viewExercise(i int, ex Exercise, done bool) string {
	cursor := "  "
	if i == m.cursor {
		cursor = m.styles.Cursor.Render("› ")
	}

	index := m.styles.Index.Render(fmt.Sprintf(" %d ", i+1))
	name := m.styles.ExerciseName.Render(strings.ToUpper(ex.Name))
	if done {
		index = m.styles.IndexDone.Render(" ✓ ")
		name = m.styles.ExerciseDone.Render(strings.ToUpper(ex.Name))
	}

	detail := m.styles.Detail.Render(ex.Target+" • ") + m.styles.Logic.Render(ex.Logic)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cursor,
		index,
		" ",
		lipgloss.JoinVertical(lipgloss.Left, name, detail),
	) + "\n"
}

func (m Model) viewButton(snap Snapshot) string {
	switch {
	case m.busy():
		return m.styles.ButtonBusy.Render(m.spinner.View() + " SYNCING...")
	case snap.Phase() == PhaseReadyToSync:
		return m.styles.ButtonReady.Render("✓ SYNC MISSION DATA")
	default:
		return m.styles.Button.Render("SYNC MISSION DATA")
	}
}

func (m Model) viewBonuses(snap Snapshot) string {
	tiles := make([]string, 0, goalCount)
	for _, g := range GoalKeys() {
		label := fmt.Sprintf("[%s] %s", goalHotkeyLabels[g], strings.ToUpper(g.String()))
		style := m.styles.GoalOff
		if snap.Stats.DailyGoals.Get(g) {
			label += " ✓"
			style = m.styles.GoalOn
		}
		tiles = append(tiles, style.Render(label))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, tiles[0], "  ", tiles[1]),
		lipgloss.JoinHorizontal(lipgloss.Top, tiles[2], "  ", tiles[3]),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		m.styles.SectionTitle.Render("ÜBERMENSCH BONUSES"),
		grid,
	)
}

// viewNav draws the bottom bar. Only TRAIN exists; the others are placeholders.
func (m Model) viewNav() string {
	items := make([]string, 0, len(navItems))
	for i, item := range navItems {
		style := m.styles.NavItem
		if i == 0 {
			style = m.styles.NavActive
		}
		items = append(items, style.Render(item))
	}
	return m.styles.Nav.Render(lipgloss.JoinHorizontal(lipgloss.Top, items...))
}

const (
	appTitle    = "ÜBERMENSCH"
	appSubtitle = "KOENJI PROTOCOL v2.1"
)

var navItems = []string{"TRAIN", "STATS", "NOTLU"}

// spread places left and right at opposite edges of width
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, strings.Repeat(" ", gap), right)
}

func formatWeight(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64) + "kg"
}

// RunTUI runs the full-screen tracker until the user quits or ctx ends.
// A sync still pending when the screen closes is cancelled with it.
func RunTUI(ctx context.Context, session *Session, theme Theme, log *zap.Logger, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewModel(ctx, session, theme, log), opts...)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running tracker: %w", err)
	}
	return nil
}
