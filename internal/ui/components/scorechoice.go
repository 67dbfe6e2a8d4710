package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"venturemeter/internal/ui/theme"
)

// ScoreChoice is a five-option self-assessment selector. Each option maps
// to a score 1-5 from weakest to strongest; there is no right answer.
type ScoreChoice struct {
	Question  string
	Options   []string
	Selected  int
	Submitted bool
}

// NewScoreChoice creates a score selector. previousScore, when 1-5,
// pre-selects the option chosen in an earlier session.
func NewScoreChoice(question string, options []string, previousScore int) ScoreChoice {
	selected := 0
	if previousScore >= 1 && previousScore <= len(options) {
		selected = previousScore - 1
	}
	return ScoreChoice{
		Question: question,
		Options:  options,
		Selected: selected,
	}
}

// Init returns nil.
func (s ScoreChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Number keys jump
// straight to a score.
func (s ScoreChoice) Update(msg tea.Msg) (ScoreChoice, tea.Cmd) {
	if s.Submitted {
		return s, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if s.Selected > 0 {
			s.Selected--
		}
	case "down", "j":
		if s.Selected < len(s.Options)-1 {
			s.Selected++
		}
	case "1", "2", "3", "4", "5":
		idx := int(key[0] - '1')
		if idx < len(s.Options) {
			s.Selected = idx
		}
	case "enter":
		s.Submitted = true
	}

	return s, nil
}

// View renders the score selector.
func (s ScoreChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	out := questionStyle.Render(s.Question) + "\n\n"

	for i, opt := range s.Options {
		prefix := "  "
		if i == s.Selected {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%d.  %s", prefix, i+1, opt)

		switch {
		case s.Submitted && i == s.Selected:
			out += lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(line) + "\n"
		case s.Submitted:
			out += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == s.Selected:
			out += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			out += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return out
}

// Score returns the submitted score (1-based), or 0 if not submitted.
func (s ScoreChoice) Score() int {
	if !s.Submitted {
		return 0
	}
	return s.Selected + 1
}
