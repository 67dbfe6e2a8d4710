package questionnaire

import (
	"reflect"
	"testing"
)

func TestCalculateCategoryStats(t *testing.T) {
	qs := []Question{
		q(1, "Market", 3),
		q(2, "Team", 0),
		q(3, "Market", 0),
		q(4, "Team", 5),
		q(5, "Finance", 0),
	}

	got := CalculateCategoryStats(qs)
	want := []CategoryStats{
		{Title: "Market", QuestionCount: 2, AnsweredCount: 1},
		{Title: "Team", QuestionCount: 2, AnsweredCount: 1},
		{Title: "Finance", QuestionCount: 1, AnsweredCount: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("stats mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestCalculateCategoryStats_Empty(t *testing.T) {
	if got := CalculateCategoryStats(nil); len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}
