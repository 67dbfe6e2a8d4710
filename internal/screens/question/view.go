package question

import (
	"strings"

	"charm.land/lipgloss/v2"

	"venturemeter/internal/ui/theme"
)

func (s *QuestionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return centered(width, height,
			lipgloss.NewStyle().Foreground(theme.Error).Render("Something went wrong")+
				"\n\n"+theme.Body.Render(s.errMsg))

	case s.blocked:
		return centered(width, height, theme.Card.Render(strings.Join([]string{
			theme.Title.Render("Category locked"),
			"",
			theme.Body.Render("This category stays locked until the areas before it"),
			theme.Body.Render("score well enough. Revisit earlier answers to move on."),
		}, "\n")))

	case s.finished:
		return centered(width, height, theme.Card.Render(strings.Join([]string{
			theme.Title.Render("All categories open"),
			"",
			theme.Body.Render("Every category is unlocked. Head to Results for"),
			theme.Body.Render("your readiness report."),
		}, "\n")))

	case s.current == nil:
		return centered(width, height, theme.Hint.Render("Loading question..."))
	}

	var sections []string

	sections = append(sections,
		theme.Subtitle.Render(s.current.Category),
		"",
		s.choice.View(),
	)

	helpWidth := width - 12
	if helpWidth > 76 {
		helpWidth = 76
	}
	if s.helpText != "" {
		help := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(helpWidth).
			Render(s.helpText)
		sections = append(sections, "", theme.Card.Render(help))
	} else if s.polling {
		sections = append(sections, "", theme.Hint.Render("Fetching guidance..."))
	}

	return centered(width, height, strings.Join(sections, "\n"))
}

func centered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
