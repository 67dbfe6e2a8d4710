// Package home is the main menu screen.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"venturemeter/internal/helptext"
	"venturemeter/internal/questionnaire"
	"venturemeter/internal/recommend"
	"venturemeter/internal/router"
	"venturemeter/internal/screen"
	"venturemeter/internal/screens/categories"
	"venturemeter/internal/screens/question"
	"venturemeter/internal/screens/results"
	"venturemeter/internal/screens/startup"
	"venturemeter/internal/ui/components"
	"venturemeter/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	engine     *questionnaire.Engine
	menu       components.Menu
	answered   int
	total      int
	version    string
	hasProfile bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(engine *questionnaire.Engine, helpService *helptext.Service, recommender *recommend.Service) *HomeScreen {
	h := &HomeScreen{engine: engine}

	// Best effort: a failed load leaves the counters at zero and the
	// screens recover on their own.
	if state, err := engine.Snapshot(context.Background()); err == nil && state != nil {
		h.version = state.Version
		h.total = len(state.Questions)
		for _, q := range state.Questions {
			if q.Answered() {
				h.answered++
			}
		}
		h.hasProfile = state.StartupInfo != nil
	}

	startLabel := "START ASSESSMENT"
	if h.answered > 0 {
		startLabel = "CONTINUE ASSESSMENT"
	}

	items := []components.MenuItem{
		{Label: startLabel, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: question.NewAtResume(engine, helpService)}
			}
		}},
		{Label: "CATEGORIES", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: categories.New(engine, helpService)}
			}
		}},
		{Label: "RESULTS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: results.New(engine, recommender)}
			}
		}},
		{Label: "STARTUP PROFILE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: startup.New(engine)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		theme.Title.Render("VENTURE METER"),
		theme.Subtitle.Render("How ready is your startup?"),
		"",
	)

	if h.total > 0 {
		bar := components.NewProgressBar("Progress", float64(h.answered)/float64(h.total), true, 44)
		sections = append(sections, bar.View(), "")
	}

	if !h.hasProfile {
		sections = append(sections,
			theme.Hint.Render("Tip: fill in your startup profile for tailored guidance."),
			"")
	}

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
