package main

import "github.com/charmbracelet/lipgloss"

// Palette follows the stone/amber scheme of the protocol card
var (
	Amber      = lipgloss.Color("#f59e0b")
	AmberSoft  = lipgloss.Color("#fbbf24")
	Stone950   = lipgloss.Color("#0c0a09")
	Stone900   = lipgloss.Color("#1c1917")
	Stone800   = lipgloss.Color("#292524")
	Stone600   = lipgloss.Color("#57534e")
	Stone500   = lipgloss.Color("#78716c")
	Stone400   = lipgloss.Color("#a8a29e")
	Stone200   = lipgloss.Color("#e7e5e4")
	White      = lipgloss.Color("#ffffff")
	Black      = lipgloss.Color("#000000")
	StoneLight = lipgloss.Color("#f5f5f4")
)

// Theme holds the colours a view is drawn with
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Heading    lipgloss.Color
	Muted      lipgloss.Color
	Faint      lipgloss.Color
	Card       lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color
	OnAccent   lipgloss.Color
	IsDark     bool
}

// DarkTheme is the default
func DarkTheme() Theme {
	return Theme{
		Background: Stone950,
		Foreground: Stone200,
		Heading:    White,
		Muted:      Stone500,
		Faint:      Stone600,
		Card:       Stone900,
		Border:     Stone800,
		Accent:     Amber,
		OnAccent:   Black,
		IsDark:     true,
	}
}

// LightTheme keeps the amber accent on a pale background
func LightTheme() Theme {
	return Theme{
		Background: StoneLight,
		Foreground: Stone900,
		Heading:    Black,
		Muted:      Stone500,
		Faint:      Stone400,
		Card:       White,
		Border:     Stone200,
		Accent:     Amber,
		OnAccent:   Black,
		IsDark:     false,
	}
}

// ThemeByName resolves a config theme name, falling back to dark
func ThemeByName(name string) Theme {
	if name == themeLight {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles are the lipgloss styles derived from a Theme
type Styles struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Label        lipgloss.Style
	Value        lipgloss.Style
	Card         lipgloss.Style
	Rank         lipgloss.Style
	Badge        lipgloss.Style
	SectionTitle lipgloss.Style
	WorkoutTitle lipgloss.Style
	Description  lipgloss.Style
	Index        lipgloss.Style
	IndexDone    lipgloss.Style
	ExerciseName lipgloss.Style
	ExerciseDone lipgloss.Style
	Detail       lipgloss.Style
	Logic        lipgloss.Style
	Cursor       lipgloss.Style
	Button       lipgloss.Style
	ButtonReady  lipgloss.Style
	ButtonBusy   lipgloss.Style
	GoalOff      lipgloss.Style
	GoalOn       lipgloss.Style
	Nav          lipgloss.Style
	NavItem      lipgloss.Style
	NavActive    lipgloss.Style
	Help         lipgloss.Style
}

// NewStyles builds every style for a theme
func NewStyles(t Theme) Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2).
		Width(cardWidth)

	button := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(cardWidth - 4).
		Padding(0, 1).
		MarginTop(1)

	goal := lipgloss.NewStyle().
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(goalTileWidth)

	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).Italic(true).Foreground(t.Accent),
		Subtitle:     lipgloss.NewStyle().Bold(true).Foreground(t.Muted),
		Label:        lipgloss.NewStyle().Bold(true).Foreground(t.Faint),
		Value:        lipgloss.NewStyle().Bold(true).Foreground(t.Heading),
		Card:         card,
		Rank:         lipgloss.NewStyle().Bold(true).Italic(true).Foreground(t.Heading),
		Badge:        lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Padding(0, 1),
		SectionTitle: lipgloss.NewStyle().Bold(true).Foreground(t.Faint),
		WorkoutTitle: lipgloss.NewStyle().Bold(true).Italic(true).Foreground(t.Heading),
		Description:  lipgloss.NewStyle().Foreground(t.Muted),
		Index:        lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		IndexDone:    lipgloss.NewStyle().Bold(true).Foreground(t.OnAccent).Background(t.Accent),
		ExerciseName: lipgloss.NewStyle().Bold(true).Foreground(t.Heading),
		ExerciseDone: lipgloss.NewStyle().Bold(true).Strikethrough(true).Foreground(t.Muted),
		Detail:       lipgloss.NewStyle().Foreground(t.Muted),
		Logic:        lipgloss.NewStyle().Italic(true).Foreground(t.Faint),
		Cursor:       lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Button:       button.Foreground(t.OnAccent).Background(t.Accent),
		ButtonReady:  button.Foreground(t.OnAccent).Background(AmberSoft),
		ButtonBusy:   button.Foreground(t.Muted).Background(t.Border),
		GoalOff:      goal.Foreground(t.Muted).BorderForeground(t.Border),
		GoalOn:       goal.Foreground(t.OnAccent).Background(t.Accent).BorderForeground(t.Accent),
		Nav:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Width(cardWidth),
		NavItem:      lipgloss.NewStyle().Bold(true).Foreground(t.Faint).Align(lipgloss.Center).Width(navItemWidth),
		NavActive:    lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Align(lipgloss.Center).Width(navItemWidth),
		Help:         lipgloss.NewStyle().Foreground(t.Faint),
	}
}

const (
	cardWidth     = 64
	goalTileWidth = 28
	navItemWidth  = 20
)
