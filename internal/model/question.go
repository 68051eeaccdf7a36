package model

// QuestionType is the input modality of a question.
type QuestionType string

const (
	QuestionTypeNumber       QuestionType = "number"
	QuestionTypeSingleChoice QuestionType = "single_choice"
	QuestionTypeMultiChoice  QuestionType = "multi_choice"
)

// Option is one selectable value of a choice question.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Condition gates a question on a prior answer: the referenced question
// must be answered with at least one of the listed values.
type Condition struct {
	QuestionID string   `json:"questionId"`
	Values     []string `json:"values"`
}

// Question is a runtime question instance (baseline or symptom follow-up).
// Questions are immutable after the bank is loaded.
type Question struct {
	ID        string       `json:"id"`
	Symptom   string       `json:"symptom,omitempty"` // owning follow-up tree, empty for baseline
	Prompt    string       `json:"prompt"`
	Context   string       `json:"context,omitempty"` // e.g. "About chest pain"
	Type      QuestionType `json:"type"`
	Options   []Option     `json:"options,omitempty"`
	Min       *float64     `json:"min,omitempty"` // number only
	Max       *float64     `json:"max,omitempty"` // number only
	DependsOn *Condition   `json:"dependsOn,omitempty"`
	Priority  int          `json:"priority"`
}

// IsBaseline reports whether the question belongs to the baseline intake
// rather than a symptom follow-up tree.
func (q *Question) IsBaseline() bool {
	return q.Symptom == ""
}

// HasOption reports whether value is one of the question's declared options.
func (q *Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// OptionLabel returns the display label for an option value, falling back
// to the raw value when the option is unknown.
func (q *Question) OptionLabel(value string) string {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}
