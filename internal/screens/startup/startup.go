// Package startup is the profile form: a few facts about the startup
// that sharpen generated guidance.
package startup

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"venturemeter/internal/questionnaire"
	"venturemeter/internal/router"
	"venturemeter/internal/screen"
	"venturemeter/internal/ui/components"
	"venturemeter/internal/ui/layout"
	"venturemeter/internal/ui/theme"
)

const fieldCount = 3

// StartupScreen collects the startup profile.
type StartupScreen struct {
	engine  *questionnaire.Engine
	inputs  [fieldCount]components.TextInput
	labels  [fieldCount]string
	focused int
	saved   bool
	errMsg  string
}

var _ screen.Screen = (*StartupScreen)(nil)
var _ screen.KeyHintProvider = (*StartupScreen)(nil)

// New creates the profile form, pre-filled from any stored profile.
func New(engine *questionnaire.Engine) *StartupScreen {
	s := &StartupScreen{
		engine: engine,
		labels: [fieldCount]string{"Industry", "Product category", "Target customers"},
	}

	s.inputs[0] = components.NewTextInput("e.g. fintech", false, 80)
	s.inputs[1] = components.NewTextInput("e.g. B2B SaaS", false, 80)
	s.inputs[2] = components.NewTextInput("e.g. mid-market CFOs", false, 80)

	if info, err := engine.StartupInfo(context.Background()); err == nil && info != nil {
		s.inputs[0].SetValue(info.Industry)
		s.inputs[1].SetValue(info.ProductCategory)
		s.inputs[2].SetValue(info.TargetCustomers)
	}

	for i := 1; i < fieldCount; i++ {
		s.inputs[i].Blur()
	}
	return s
}

func (s *StartupScreen) Title() string {
	return "Startup Profile"
}

func (s *StartupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↓", Description: "Next field"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StartupScreen) Init() tea.Cmd {
	return s.inputs[0].Init()
}

func (s *StartupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return s, s.focusField((s.focused + 1) % fieldCount)
		case "shift+tab", "up":
			return s, s.focusField((s.focused + fieldCount - 1) % fieldCount)
		case "enter":
			if s.focused < fieldCount-1 {
				return s, s.focusField(s.focused + 1)
			}
			return s, s.save()
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(msg)
	return s, cmd
}

func (s *StartupScreen) focusField(i int) tea.Cmd {
	s.inputs[s.focused].Blur()
	s.focused = i
	return s.inputs[i].Focus()
}

func (s *StartupScreen) save() tea.Cmd {
	info := questionnaire.StartupInfo{
		Industry:        strings.TrimSpace(s.inputs[0].Value()),
		ProductCategory: strings.TrimSpace(s.inputs[1].Value()),
		TargetCustomers: strings.TrimSpace(s.inputs[2].Value()),
	}
	if err := s.engine.SetStartupInfo(context.Background(), info); err != nil {
		s.errMsg = "Could not save profile: " + err.Error()
		return nil
	}
	s.saved = true
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *StartupScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		theme.Title.Render("Startup Profile"),
		theme.Subtitle.Render("Used to tailor guidance and the final report"),
		"",
	)

	for i := range s.inputs {
		label := theme.Body.Render(s.labels[i])
		if i == s.focused {
			label = theme.Selected.Render(s.labels[i])
		}
		sections = append(sections, label, s.inputs[i].View(), "")
	}

	if s.errMsg != "" {
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	card := theme.Card.Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
