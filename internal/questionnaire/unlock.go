package questionnaire

// The unlock gate: a category is navigable once at least half of its
// questions (rounded up) carry a high score, and every category ordered
// before it passes the same rule. A high score is 3 or 4 on the 1-5 scale;
// 5 is deliberately excluded — a product decision carried over as-is, not
// an off-by-one.
//
// All functions here are pure over the question list. Nothing is cached;
// repeated evaluation is idempotent.

// isHighScore reports whether a score counts toward the unlock threshold.
func isHighScore(score *int) bool {
	return score != nil && (*score == 3 || *score == 4)
}

// meetsThreshold reports whether category has at least ceil(0.5*n) high
// scores among its n questions. A category with no questions passes
// trivially.
func meetsThreshold(questions []Question, category string) bool {
	total, high := 0, 0
	for i := range questions {
		if questions[i].Category != category {
			continue
		}
		total++
		if isHighScore(questions[i].SelectedScore) {
			high++
		}
	}
	return high >= (total+1)/2
}

// orderedCategories returns the gate evaluation order: the configured
// order first, then any category present in the data but missing from the
// configuration, in first-seen order.
func orderedCategories(questions []Question, configured []string) []string {
	known := make(map[string]bool, len(configured))
	ordered := make([]string, 0, len(configured))
	for _, c := range configured {
		if !known[c] {
			known[c] = true
			ordered = append(ordered, c)
		}
	}
	for i := range questions {
		c := questions[i].Category
		if !known[c] {
			known[c] = true
			ordered = append(ordered, c)
		}
	}
	return ordered
}

// IsCategoryUnlocked evaluates the gate for category: its own threshold
// plus the thresholds of every category ordered strictly before it.
func IsCategoryUnlocked(questions []Question, order []string, category string) bool {
	for _, c := range orderedCategories(questions, order) {
		if !meetsThreshold(questions, c) {
			return false
		}
		if c == category {
			return true
		}
	}
	// Category unknown to both data and configuration: it sits after
	// everything, so it is unlocked only when everything else is.
	return true
}

// NextAvailableQuestionIn computes the gated "next question" pointer from
// currentID:
//   - current category locked: its first unanswered question, or absent
//     when it is fully answered but still gated (the caller surfaces
//     "category blocked" rather than advancing).
//   - current category unlocked: the first unanswered question of the
//     first locked category after it, or absent when every category is
//     unlocked (proceed to results).
func NextAvailableQuestionIn(questions []Question, order []string, currentID int) (int, bool) {
	var current *Question
	for i := range questions {
		if questions[i].ID == currentID {
			current = &questions[i]
			break
		}
	}
	if current == nil {
		return 0, false
	}

	ordered := orderedCategories(questions, order)
	if !IsCategoryUnlocked(questions, order, current.Category) {
		return firstUnansweredInCategory(questions, current.Category)
	}

	past := false
	for _, c := range ordered {
		if c == current.Category {
			past = true
			continue
		}
		if !past {
			continue
		}
		if !IsCategoryUnlocked(questions, order, c) {
			return firstUnansweredInCategory(questions, c)
		}
	}
	return 0, false
}

// FirstRelevantQuestionIDIn returns the entry point into a category: its
// first unanswered question, or its first question when fully answered, or
// absent when the category has no questions.
func FirstRelevantQuestionIDIn(questions []Question, category string) (int, bool) {
	if id, ok := firstUnansweredInCategory(questions, category); ok {
		return id, true
	}
	for i := range questions {
		if questions[i].Category == category {
			return questions[i].ID, true
		}
	}
	return 0, false
}

// NextUnansweredQuestionIn returns the first question overall, in catalog
// order, with no score.
func NextUnansweredQuestionIn(questions []Question) (int, bool) {
	for i := range questions {
		if !questions[i].Answered() {
			return questions[i].ID, true
		}
	}
	return 0, false
}

func firstUnansweredInCategory(questions []Question, category string) (int, bool) {
	for i := range questions {
		if questions[i].Category == category && !questions[i].Answered() {
			return questions[i].ID, true
		}
	}
	return 0, false
}
