// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"venturemeter/internal/auth"
	"venturemeter/internal/helptext"
	"venturemeter/internal/questionnaire"
	"venturemeter/internal/recommend"
	"venturemeter/internal/router"
	"venturemeter/internal/screen"
	"venturemeter/internal/screens/gate"
	"venturemeter/internal/screens/home"
	"venturemeter/internal/ui/layout"
)

// Options carries the services the screens depend on. HelpService and
// Recommender may be nil when no LLM provider is configured; the screens
// degrade to plain assessment flow.
type Options struct {
	Engine      *questionnaire.Engine
	HelpService *helptext.Service
	Recommender *recommend.Service
	Gate        *auth.Gate
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(opts.Engine, opts.HelpService, opts.Recommender)
	}

	var initial screen.Screen
	if opts.Gate != nil && opts.Gate.Enabled() {
		if ok, _ := opts.Gate.Authenticated(); !ok {
			initial = gate.New(opts.Gate, homeFactory)
		}
	}
	if initial == nil {
		initial = homeFactory()
	}

	return AppModel{
		opts:   opts,
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	answered, total, version := m.progress()
	header := layout.RenderHeader(title, answered, total, version, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) progress() (answered, total int, version string) {
	state, err := m.opts.Engine.Snapshot(context.Background())
	if err != nil || state == nil {
		return 0, 0, ""
	}
	for _, q := range state.Questions {
		if q.Answered() {
			answered++
		}
	}
	return answered, len(state.Questions), state.Version
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
