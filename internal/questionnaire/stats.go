package questionnaire

// CalculateCategoryStats derives per-category completion counts: one entry
// per distinct category in first-seen order.
func CalculateCategoryStats(questions []Question) []CategoryStats {
	index := make(map[string]int)
	var stats []CategoryStats

	for i := range questions {
		c := questions[i].Category
		pos, ok := index[c]
		if !ok {
			pos = len(stats)
			index[c] = pos
			stats = append(stats, CategoryStats{Title: c})
		}
		stats[pos].QuestionCount++
		if questions[i].Answered() {
			stats[pos].AnsweredCount++
		}
	}
	return stats
}
