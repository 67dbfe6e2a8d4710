// Package question is the answering screen: one question at a time, a 1-5
// score selector and generated guidance alongside.
package question

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"venturemeter/internal/helptext"
	"venturemeter/internal/questionnaire"
	"venturemeter/internal/screen"
	"venturemeter/internal/ui/components"
	"venturemeter/internal/ui/layout"
)

const helpPollInterval = 150 * time.Millisecond

type questionReadyMsg struct {
	current questionnaire.Question
	next    *questionnaire.Question
}

type questionFailedMsg struct {
	err error
}

type progressSavedMsg struct {
	nextID  int
	hasNext bool
	// blocked means the current category is still gated and fully
	// answered; finished means every category is unlocked.
	blocked  bool
	finished bool
}

type helpPollMsg struct{}

// QuestionScreen walks through the assessment one question at a time.
type QuestionScreen struct {
	engine      *questionnaire.Engine
	helpService *helptext.Service

	questionID int
	resume     bool

	current  *questionnaire.Question
	choice   components.ScoreChoice
	helpText string
	polling  bool

	blocked  bool
	finished bool
	errMsg   string
}

var _ screen.Screen = (*QuestionScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionScreen)(nil)

// NewAt creates a QuestionScreen positioned on a specific question.
func NewAt(engine *questionnaire.Engine, helpService *helptext.Service, questionID int) *QuestionScreen {
	return &QuestionScreen{
		engine:      engine,
		helpService: helpService,
		questionID:  questionID,
	}
}

// NewAtResume creates a QuestionScreen positioned on the first unanswered
// question, or the first question of the catalog when all are answered.
func NewAtResume(engine *questionnaire.Engine, helpService *helptext.Service) *QuestionScreen {
	return &QuestionScreen{
		engine:      engine,
		helpService: helpService,
		resume:      true,
	}
}

func (s *QuestionScreen) Title() string {
	if s.current != nil {
		return s.current.Category
	}
	return "Assessment"
}

func (s *QuestionScreen) KeyHints() []layout.KeyHint {
	if s.blocked || s.finished || s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-5/↑↓", Description: "Score"},
		{Key: "Enter", Description: "Save & next"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuestionScreen) Init() tea.Cmd {
	return s.loadQuestion()
}

func (s *QuestionScreen) loadQuestion() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		id := s.questionID
		if s.resume {
			resumeID, ok, err := s.engine.NextUnansweredQuestion(ctx)
			if err != nil {
				return questionFailedMsg{err: err}
			}
			if !ok {
				// Everything answered; reopen from the top.
				questions, err := s.engine.Questions(ctx)
				if err != nil {
					return questionFailedMsg{err: err}
				}
				if len(questions) == 0 {
					return questionFailedMsg{err: questionnaire.ErrNoValidRows}
				}
				resumeID = questions[0].ID
			}
			id = resumeID
		}

		current, err := s.engine.Question(ctx, id)
		if err != nil {
			return questionFailedMsg{err: err}
		}

		var next *questionnaire.Question
		if nextID, ok, err := s.engine.NextAvailableQuestion(ctx, id); err == nil && ok {
			next, _ = s.engine.Question(ctx, nextID)
		}

		return questionReadyMsg{current: *current, next: next}
	}
}

func (s *QuestionScreen) saveAndAdvance(score int) tea.Cmd {
	id := s.questionID
	category := s.current.Category
	return func() tea.Msg {
		ctx := context.Background()
		if err := s.engine.SaveProgress(ctx, id, score); err != nil {
			return questionFailedMsg{err: err}
		}

		nextID, ok, err := s.engine.NextAvailableQuestion(ctx, id)
		if err != nil {
			return questionFailedMsg{err: err}
		}
		if ok {
			return progressSavedMsg{nextID: nextID, hasNext: true}
		}

		// Absent pointer: either the category is still gated with nothing
		// left to answer in it, or the whole assessment is open.
		unlocked, err := s.engine.IsCategoryUnlocked(ctx, category)
		if err != nil {
			return questionFailedMsg{err: err}
		}
		return progressSavedMsg{blocked: !unlocked, finished: unlocked}
	}
}

func (s *QuestionScreen) pollHelp() tea.Cmd {
	return tea.Tick(helpPollInterval, func(time.Time) tea.Msg {
		return helpPollMsg{}
	})
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		s.current = &msg.current
		s.questionID = msg.current.ID
		s.resume = false
		s.blocked = false
		s.finished = false
		s.errMsg = ""

		prev := 0
		if msg.current.SelectedScore != nil {
			prev = *msg.current.SelectedScore
		}
		s.choice = components.NewScoreChoice(msg.current.Text, msg.current.Options[:], prev)

		s.helpText = ""
		if s.helpService != nil {
			info, _ := s.engine.StartupInfo(context.Background())
			s.helpService.Request(context.Background(), msg.current, msg.next, info)
			if text, ok := s.helpService.Lookup(msg.current.ID); ok {
				s.helpText = text
				s.polling = false
				return s, nil
			}
			s.polling = true
			return s, s.pollHelp()
		}
		return s, nil

	case questionFailedMsg:
		s.errMsg = msg.err.Error()
		return s, nil

	case progressSavedMsg:
		if msg.hasNext {
			s.questionID = msg.nextID
			return s, s.loadQuestion()
		}
		s.blocked = msg.blocked
		s.finished = msg.finished
		return s, nil

	case helpPollMsg:
		if !s.polling || s.current == nil {
			return s, nil
		}
		for {
			r, ok := s.helpService.Consume()
			if !ok {
				break
			}
			if r.QuestionID == s.current.ID && r.Err == nil {
				s.helpText = r.Text
			}
		}
		if s.helpText != "" {
			s.polling = false
			return s, nil
		}
		return s, s.pollHelp()

	case tea.KeyPressMsg:
		if s.current == nil || s.blocked || s.finished || s.errMsg != "" {
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if score := s.choice.Score(); score > 0 {
			return s, s.saveAndAdvance(score)
		}
		return s, cmd
	}

	return s, nil
}
