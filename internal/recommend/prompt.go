package recommend

import (
	"fmt"
	"strings"

	"venturemeter/internal/questionnaire"
)

const reportSystemPrompt = `You are an experienced startup advisor. You receive a founder's self-assessment: questions grouped by category, each answered on a 1-5 scale where 1 is weakest and 5 is strongest.

Produce an honest, specific report. Ground every observation in the actual answers. Do not flatter; a startup with low scores should get a candid assessment. Advice must be concrete enough to act on this month.`

func buildReportUserMessage(questions []questionnaire.Question, stats []questionnaire.CategoryStats, info *questionnaire.StartupInfo) string {
	var b strings.Builder

	if info != nil {
		b.WriteString("Startup context:\n")
		if info.Industry != "" {
			fmt.Fprintf(&b, "Industry: %s\n", info.Industry)
		}
		if info.ProductCategory != "" {
			fmt.Fprintf(&b, "Product category: %s\n", info.ProductCategory)
		}
		if info.TargetCustomers != "" {
			fmt.Fprintf(&b, "Target customers: %s\n", info.TargetCustomers)
		}
		b.WriteString("\n")
	}

	b.WriteString("Category summary:\n")
	for _, cs := range stats {
		fmt.Fprintf(&b, "- %s: %d of %d answered\n",
			cs.Title, cs.AnsweredCount, cs.QuestionCount)
	}

	b.WriteString("\nAnswers:\n")
	for _, q := range questions {
		if !q.Answered() {
			continue
		}
		score := *q.SelectedScore
		fmt.Fprintf(&b, "[%s] %s\nScore %d: %s\n", q.Category, q.Text, score, q.Options[score-1])
	}

	return b.String()
}
