package helptext

import (
	"fmt"
	"strings"

	"venturemeter/internal/questionnaire"
)

const helpSystemPrompt = `You are an experienced startup advisor helping a founder work through a self-assessment questionnaire.

For the question you are given, explain in plain language:
- why this question matters for an early-stage startup
- what a weak answer versus a strong answer typically looks like
- one concrete thing the founder can do to improve in this area

Keep it under 150 words. No headings, no bullet markers, no preamble. Address the founder directly.`

func buildHelpUserMessage(q questionnaire.Question, info *questionnaire.StartupInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Category: %s\n", q.Category)
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	b.WriteString("Answer options, from weakest to strongest:\n")
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}

	if info != nil {
		b.WriteString("\nAbout the startup:\n")
		if info.Industry != "" {
			fmt.Fprintf(&b, "Industry: %s\n", info.Industry)
		}
		if info.ProductCategory != "" {
			fmt.Fprintf(&b, "Product category: %s\n", info.ProductCategory)
		}
		if info.TargetCustomers != "" {
			fmt.Fprintf(&b, "Target customers: %s\n", info.TargetCustomers)
		}
	}

	return b.String()
}
