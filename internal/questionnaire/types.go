package questionnaire

// Question is a single assessment question with its five answer options.
// Option index i corresponds to score i+1 on the 1-5 scale.
type Question struct {
	// ID is the question's identity, unique and positive within a load.
	ID int `json:"id"`

	// Category groups questions for the unlock gate.
	Category string `json:"category"`

	// Text is the question prompt.
	Text string `json:"question"`

	// Options are the five selectable answer labels, lowest score first.
	Options []string `json:"options"`

	// HelpText is optional supplementary text from the catalog.
	HelpText string `json:"helpText,omitempty"`

	// FollowUpID is reserved for branching. The engine carries it through
	// unchanged and never acts on it.
	FollowUpID string `json:"followUpId,omitempty"`

	// SelectedScore is the chosen score in [1,5], or nil when unanswered.
	SelectedScore *int `json:"selectedScore,omitempty"`
}

// Answered reports whether the question has a selected score.
func (q *Question) Answered() bool {
	return q.SelectedScore != nil
}

// OptionCount is the required number of answer options per question.
const OptionCount = 5

// StartupInfo is contextual metadata about the venture being assessed.
// It travels with the persisted state but plays no role in scoring.
type StartupInfo struct {
	Industry        string `json:"industry"`
	ProductCategory string `json:"productCategory"`
	TargetCustomers string `json:"targetCustomers"`
}

// State is the full persisted questionnaire record: the question set in
// catalog order, a monotonically advancing version label, and optional
// startup context. It is always read and written as one unit.
type State struct {
	Questions   []Question   `json:"questions"`
	Version     string       `json:"version"`
	StartupInfo *StartupInfo `json:"startupInfo,omitempty"`
}

// Question returns the question with the given id, or nil.
func (s *State) Question(id int) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// InitialVersion is the version label assigned on first load.
const InitialVersion = "1.0"

// CategoryStats is the derived per-category completion summary.
type CategoryStats struct {
	Title         string
	QuestionCount int
	AnsweredCount int
}
