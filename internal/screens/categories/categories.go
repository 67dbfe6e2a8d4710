// Package categories lists the assessment categories with their progress
// and unlock state.
package categories

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"venturemeter/internal/helptext"
	"venturemeter/internal/questionnaire"
	"venturemeter/internal/router"
	"venturemeter/internal/screen"
	"venturemeter/internal/screens/question"
	"venturemeter/internal/ui/layout"
	"venturemeter/internal/ui/theme"
)

type categoryRow struct {
	title    string
	answered int
	total    int
	unlocked bool
}

// CategoriesScreen shows per-category progress and jumps into a category.
type CategoriesScreen struct {
	engine      *questionnaire.Engine
	helpService *helptext.Service
	rows        []categoryRow
	selected    int
	errMsg      string
}

var _ screen.Screen = (*CategoriesScreen)(nil)
var _ screen.KeyHintProvider = (*CategoriesScreen)(nil)

// New creates the category list.
func New(engine *questionnaire.Engine, helpService *helptext.Service) *CategoriesScreen {
	c := &CategoriesScreen{engine: engine, helpService: helpService}
	c.reload()
	return c
}

func (c *CategoriesScreen) reload() {
	ctx := context.Background()
	stats, err := c.engine.CategoryStats(ctx)
	if err != nil {
		c.errMsg = "Could not load categories: " + err.Error()
		return
	}

	rows := make([]categoryRow, 0, len(stats))
	for _, cs := range stats {
		unlocked, err := c.engine.IsCategoryUnlocked(ctx, cs.Title)
		if err != nil {
			c.errMsg = "Could not load categories: " + err.Error()
			return
		}
		rows = append(rows, categoryRow{
			title:    cs.Title,
			answered: cs.AnsweredCount,
			total:    cs.QuestionCount,
			unlocked: unlocked,
		})
	}
	c.rows = rows
	c.errMsg = ""
}

func (c *CategoriesScreen) Title() string {
	return "Categories"
}

func (c *CategoriesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *CategoriesScreen) Init() tea.Cmd {
	return nil
}

func (c *CategoriesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.selected > 0 {
			c.selected--
		}
	case "down", "j":
		if c.selected < len(c.rows)-1 {
			c.selected++
		}
	case "enter":
		if c.selected >= len(c.rows) {
			return c, nil
		}
		row := c.rows[c.selected]
		id, ok, err := c.engine.FirstRelevantQuestionID(context.Background(), row.title)
		if err != nil {
			c.errMsg = "Could not open category: " + err.Error()
			return c, nil
		}
		if !ok {
			return c, nil
		}
		next := question.NewAt(c.engine, c.helpService, id)
		return c, func() tea.Msg {
			return router.PushScreenMsg{Screen: next}
		}
	}

	return c, nil
}

func (c *CategoriesScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		theme.Title.Render("Categories"),
		theme.Subtitle.Render("Score well in one area to unlock the next"),
		"",
	)

	for i, row := range c.rows {
		marker := "🔒"
		style := theme.Locked
		if row.unlocked {
			marker = "✔"
			style = theme.Unlocked
		}

		line := fmt.Sprintf("%s  %-16s %d/%d answered", marker, row.title, row.answered, row.total)
		if i == c.selected {
			line = "▸ " + line
			sections = append(sections, theme.Selected.Render(line))
		} else {
			sections = append(sections, "  "+style.Render(line))
		}
	}

	if c.errMsg != "" {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Error).Render(c.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
