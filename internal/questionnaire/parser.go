package questionnaire

import (
	"fmt"
	"strconv"
	"strings"
)

// ParserConfig fixes the catalog's column layout. The choice between the
// 3-leading-column layout (id;category;question) and the 4-leading-column
// layout (id;category;question;helpText) is made here, once, not per row.
type ParserConfig struct {
	// Delimiter separates fields within a row. Default ";".
	Delimiter string

	// HelpTextColumn, when true, reads a helpText field between the
	// question text and the options.
	HelpTextColumn bool
}

// DefaultParserConfig returns the layout the shipped catalog uses.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{Delimiter: ";"}
}

// Parser turns raw delimited text into validated questions.
type Parser struct {
	cfg      ParserConfig
	reporter Reporter
}

// NewParser creates a parser. A nil reporter discards row warnings.
func NewParser(cfg ParserConfig, reporter Reporter) *Parser {
	if cfg.Delimiter == "" {
		cfg.Delimiter = ";"
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Parser{cfg: cfg, reporter: reporter}
}

// Parse splits raw text into rows, discards the header row, and validates
// each remaining row. Defective rows are skipped with a warning; the parse
// only fails when the input is empty (ErrEmptySource) or no row survives
// (ErrNoValidRows). Accepted questions keep their source row order.
func (p *Parser) Parse(raw string) ([]Question, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptySource
	}

	lines := strings.Split(raw, "\n")
	seen := make(map[int]bool)
	var questions []Question

	// Row 0 is the header.
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		q, err := p.parseRow(line)
		if err != nil {
			p.reporter.Warnf("skipping catalog row %d: %v", i, err)
			continue
		}
		if seen[q.ID] {
			p.reporter.Warnf("skipping catalog row %d: duplicate id %d", i, q.ID)
			continue
		}
		seen[q.ID] = true
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, ErrNoValidRows
	}
	return questions, nil
}

// parseRow validates a single data row against the configured layout.
func (p *Parser) parseRow(line string) (Question, error) {
	fields := strings.Split(line, p.cfg.Delimiter)

	leading := 3
	if p.cfg.HelpTextColumn {
		leading = 4
	}
	if len(fields) < leading {
		return Question{}, fmt.Errorf("expected at least %d fields, got %d", leading, len(fields))
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Question{}, fmt.Errorf("invalid id %q", fields[0])
	}
	if id <= 0 {
		return Question{}, fmt.Errorf("invalid id %d: must be positive", id)
	}

	category := strings.TrimSpace(fields[1])
	if category == "" {
		return Question{}, fmt.Errorf("id %d: empty category", id)
	}

	text := strings.TrimSpace(fields[2])
	if text == "" {
		return Question{}, fmt.Errorf("id %d: empty question text", id)
	}

	helpText := ""
	if p.cfg.HelpTextColumn {
		helpText = strings.TrimSpace(fields[3])
	}

	trailing := fields[leading:]
	if len(trailing) < OptionCount {
		return Question{}, fmt.Errorf("id %d: insufficient options (%d of %d)", id, len(trailing), OptionCount)
	}

	options := make([]string, OptionCount)
	copy(options, trailing[:OptionCount])

	followUpID := ""
	if len(trailing) > OptionCount {
		followUpID = strings.TrimSpace(trailing[OptionCount])
	}

	return Question{
		ID:         id,
		Category:   category,
		Text:       text,
		Options:    options,
		HelpText:   helpText,
		FollowUpID: followUpID,
	}, nil
}
