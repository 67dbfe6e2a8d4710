// Package gate is the optional password screen shown before the home
// screen when a gate password is configured.
package gate

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"venturemeter/internal/auth"
	"venturemeter/internal/router"
	"venturemeter/internal/screen"
	"venturemeter/internal/ui/components"
	"venturemeter/internal/ui/layout"
	"venturemeter/internal/ui/theme"
)

// GateScreen asks for the access password and replaces itself with the
// home screen on success.
type GateScreen struct {
	gate        *auth.Gate
	homeFactory func() screen.Screen
	input       components.TextInput
	errMsg      string
	failures    int
}

var _ screen.Screen = (*GateScreen)(nil)
var _ screen.KeyHintProvider = (*GateScreen)(nil)

// New creates a GateScreen that transitions to the screen produced by
// homeFactory once the password is accepted.
func New(g *auth.Gate, homeFactory func() screen.Screen) *GateScreen {
	return &GateScreen{
		gate:        g,
		homeFactory: homeFactory,
		input:       components.NewTextInput("Password", true, 64),
	}
}

func (g *GateScreen) Title() string {
	return "Access"
}

func (g *GateScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Unlock"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (g *GateScreen) Init() tea.Cmd {
	return g.input.Init()
}

func (g *GateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		ok, err := g.gate.Authenticate(g.input.Value())
		if err != nil {
			g.errMsg = "Could not verify password: " + err.Error()
			return g, nil
		}
		if !ok {
			g.failures++
			g.errMsg = "Wrong password"
			g.input.SetValue("")
			return g, nil
		}
		home := g.homeFactory()
		return g, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: home}
		}
	}

	var cmd tea.Cmd
	g.input, cmd = g.input.Update(msg)
	return g, cmd
}

func (g *GateScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		theme.Title.Render("Venture Meter"),
		theme.Subtitle.Render("Startup self-assessment"),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Render("Enter the access password to continue."),
		"",
		g.input.View(),
	)

	if g.errMsg != "" {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Error).Render(g.errMsg))
	}

	card := theme.Card.Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
