// Package results shows category completion and generates the readiness
// report.
package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"venturemeter/internal/questionnaire"
	"venturemeter/internal/recommend"
	"venturemeter/internal/screen"
	"venturemeter/internal/ui/components"
	"venturemeter/internal/ui/layout"
	"venturemeter/internal/ui/theme"
)

type reportReadyMsg struct {
	report *recommend.Report
}

type reportFailedMsg struct {
	err error
}

type categoryRow struct {
	stats    questionnaire.CategoryStats
	unlocked bool
}

// ResultsScreen summarizes progress and produces the final report.
type ResultsScreen struct {
	engine      *questionnaire.Engine
	recommender *recommend.Service

	rows     []categoryRow
	answered int

	generating bool
	report     *recommend.Report
	errMsg     string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen.
func New(engine *questionnaire.Engine, recommender *recommend.Service) *ResultsScreen {
	r := &ResultsScreen{engine: engine, recommender: recommender}

	ctx := context.Background()
	if stats, err := engine.CategoryStats(ctx); err == nil {
		for _, cs := range stats {
			unlocked, err := engine.IsCategoryUnlocked(ctx, cs.Title)
			if err != nil {
				break
			}
			r.rows = append(r.rows, categoryRow{stats: cs, unlocked: unlocked})
			r.answered += cs.AnsweredCount
		}
	}
	return r
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	if r.recommender != nil && !r.generating && r.report == nil && r.answered > 0 {
		return []layout.KeyHint{
			{Key: "G", Description: "Generate report"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) generateReport() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		state, err := r.engine.Snapshot(ctx)
		if err != nil {
			return reportFailedMsg{err: err}
		}
		stats, err := r.engine.CategoryStats(ctx)
		if err != nil {
			return reportFailedMsg{err: err}
		}
		report, err := r.recommender.GenerateReport(ctx, state, stats)
		if err != nil {
			return reportFailedMsg{err: err}
		}
		return reportReadyMsg{report: report}
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportReadyMsg:
		r.generating = false
		r.report = msg.report
		return r, nil

	case reportFailedMsg:
		r.generating = false
		r.errMsg = "Report generation failed: " + msg.err.Error()
		return r, nil

	case tea.KeyPressMsg:
		if msg.String() == "g" && r.recommender != nil && !r.generating && r.report == nil && r.answered > 0 {
			r.generating = true
			r.errMsg = ""
			return r, r.generateReport()
		}
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	if r.report != nil {
		return r.viewReport(width, height)
	}

	var sections []string
	sections = append(sections,
		theme.Title.Render("Results"),
		"",
	)

	for _, row := range r.rows {
		pct := 0.0
		if row.stats.QuestionCount > 0 {
			pct = float64(row.stats.AnsweredCount) / float64(row.stats.QuestionCount)
		}
		marker := theme.Locked.Render("🔒")
		if row.unlocked {
			marker = theme.Unlocked.Render("✔")
		}
		bar := components.NewProgressBar(fmt.Sprintf("%-16s", row.stats.Title), pct, true, 46)
		sections = append(sections, marker+" "+bar.View())
	}

	if r.answered == 0 {
		sections = append(sections, "",
			theme.Hint.Render("Answer a few questions first to unlock the report."))
	} else if r.generating {
		sections = append(sections, "",
			theme.Hint.Render("Generating your readiness report..."))
	} else if r.recommender != nil {
		sections = append(sections, "",
			theme.Hint.Render("Press G for an advisor report on your answers."))
	}

	if r.errMsg != "" {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Error).Render(r.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (r *ResultsScreen) viewReport(width, height int) string {
	rep := r.report

	bodyWidth := width - 16
	if bodyWidth > 80 {
		bodyWidth = 80
	}
	wrap := lipgloss.NewStyle().Width(bodyWidth)

	var sections []string
	sections = append(sections,
		theme.Title.Render("Readiness Report"),
		theme.Subtitle.Render("Overall: "+rep.OverallReadiness),
		"",
		wrap.Foreground(theme.Text).Render(rep.Summary),
	)

	for _, cat := range rep.Categories {
		sections = append(sections, "",
			theme.Selected.Render(cat.Category),
			wrap.Foreground(theme.Text).Render("Strength: "+cat.Strength),
			wrap.Foreground(theme.Text).Render("Risk: "+cat.Risk),
			wrap.Foreground(theme.Secondary).Render("Advice: "+cat.Advice),
		)
	}

	if len(rep.NextSteps) > 0 {
		sections = append(sections, "", theme.Selected.Render("Next steps"))
		for i, step := range rep.NextSteps {
			sections = append(sections, wrap.Foreground(theme.Text).Render(fmt.Sprintf("%d. %s", i+1, step)))
		}
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
