package questionnaire

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

const header = "id;category;question;option1;option2;option3;option4;option5\n"

func parseAll(t *testing.T, raw string) []Question {
	t.Helper()
	qs, err := NewParser(DefaultParserConfig(), nil).Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return qs
}

func TestParse_SingleRow(t *testing.T) {
	qs := parseAll(t, header+"1;Market;Do you have PMF?;No;Maybe;Some;Likely;Yes")

	if len(qs) != 1 {
		t.Fatalf("parsed %d questions, want 1", len(qs))
	}
	q := qs[0]
	if q.ID != 1 || q.Category != "Market" || q.Text != "Do you have PMF?" {
		t.Errorf("unexpected question fields: %+v", q)
	}
	want := []string{"No", "Maybe", "Some", "Likely", "Yes"}
	for i, opt := range want {
		if q.Options[i] != opt {
			t.Errorf("Options[%d] = %q, want %q", i, q.Options[i], opt)
		}
	}
	if q.SelectedScore != nil {
		t.Errorf("SelectedScore = %v, want unanswered", *q.SelectedScore)
	}
}

func TestParse_FollowUpID(t *testing.T) {
	qs := parseAll(t, header+"1;Market;Q?;a;b;c;d;e;42")
	if qs[0].FollowUpID != "42" {
		t.Errorf("FollowUpID = %q, want %q", qs[0].FollowUpID, "42")
	}
}

func TestParse_HelpTextColumn(t *testing.T) {
	raw := "id;category;question;helpText;option1;option2;option3;option4;option5\n" +
		"1;Market;Q?;Think about retention.;a;b;c;d;e"
	qs, err := NewParser(ParserConfig{HelpTextColumn: true}, nil).Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if qs[0].HelpText != "Think about retention." {
		t.Errorf("HelpText = %q", qs[0].HelpText)
	}
	if qs[0].Options[0] != "a" || qs[0].Options[4] != "e" {
		t.Errorf("options shifted: %v", qs[0].Options)
	}
}

func TestParse_OrderPreserved(t *testing.T) {
	var b strings.Builder
	b.WriteString(header)
	ids := []int{7, 3, 12, 1}
	for _, id := range ids {
		fmt.Fprintf(&b, "%d;Market;Q%d?;a;b;c;d;e\n", id, id)
	}

	qs := parseAll(t, b.String())
	if len(qs) != len(ids) {
		t.Fatalf("parsed %d questions, want %d", len(qs), len(ids))
	}
	for i, id := range ids {
		if qs[i].ID != id {
			t.Errorf("qs[%d].ID = %d, want %d", i, qs[i].ID, id)
		}
	}
}

func TestParse_DuplicateIDDropsSecond(t *testing.T) {
	raw := header +
		"1;Market;First?;a;b;c;d;e\n" +
		"1;Team;Second?;a;b;c;d;e\n"
	qs := parseAll(t, raw)
	if len(qs) != 1 {
		t.Fatalf("parsed %d questions, want 1", len(qs))
	}
	if qs[0].Text != "First?" {
		t.Errorf("kept %q, want the first occurrence", qs[0].Text)
	}
}

func TestParse_SkipsDefectiveRows(t *testing.T) {
	raw := header +
		"abc;Market;Bad id?;a;b;c;d;e\n" +
		"-3;Market;Negative id?;a;b;c;d;e\n" +
		"2;;No category?;a;b;c;d;e\n" +
		"3;Market; ;a;b;c;d;e\n" +
		"4;Market;Too few options?;a;b;c\n" +
		"5;Market;Good?;a;b;c;d;e\n"
	qs := parseAll(t, raw)
	if len(qs) != 1 || qs[0].ID != 5 {
		t.Fatalf("parsed %v, want only id 5", qs)
	}
}

func TestParse_EmptySource(t *testing.T) {
	for _, raw := range []string{"", "   \n\t  \n"} {
		_, err := NewParser(DefaultParserConfig(), nil).Parse(raw)
		if !errors.Is(err, ErrEmptySource) {
			t.Errorf("Parse(%q) err = %v, want ErrEmptySource", raw, err)
		}
	}
}

func TestParse_NoValidRows(t *testing.T) {
	raw := header + "nope;Market;Q?;a;b;c;d;e\n"
	_, err := NewParser(DefaultParserConfig(), nil).Parse(raw)
	if !errors.Is(err, ErrNoValidRows) {
		t.Errorf("err = %v, want ErrNoValidRows", err)
	}
}

func TestParse_HeaderOnlyIsNoValidRows(t *testing.T) {
	_, err := NewParser(DefaultParserConfig(), nil).Parse(header)
	if !errors.Is(err, ErrNoValidRows) {
		t.Errorf("err = %v, want ErrNoValidRows", err)
	}
}

func TestParse_ReportsSkippedRows(t *testing.T) {
	rep := &recordingReporter{}
	raw := header +
		"x;Market;Q?;a;b;c;d;e\n" +
		"1;Market;Q?;a;b;c;d;e\n" +
		"1;Market;Dup?;a;b;c;d;e\n"
	if _, err := NewParser(DefaultParserConfig(), rep).Parse(raw); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rep.warnings) != 2 {
		t.Errorf("got %d warnings, want 2: %v", len(rep.warnings), rep.warnings)
	}
}

type recordingReporter struct {
	warnings []string
}

func (r *recordingReporter) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}
