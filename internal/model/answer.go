package model

import "time"

// AnswerValue holds the typed payload of one answer. Exactly one field is
// set, matching the question's modality.
type AnswerValue struct {
	Number  *float64 `json:"number,omitempty"`  // number questions
	Choice  string   `json:"choice,omitempty"`  // single_choice questions
	Choices []string `json:"choices,omitempty"` // multi_choice questions
}

// Tokens returns the selected choice values, regardless of modality.
func (v AnswerValue) Tokens() []string {
	if v.Choice != "" {
		return []string{v.Choice}
	}
	return v.Choices
}

// Contains reports whether the answer selected the given value.
func (v AnswerValue) Contains(value string) bool {
	for _, t := range v.Tokens() {
		if t == value {
			return true
		}
	}
	return false
}

// Answer records one submitted question/answer pair. Once appended to a
// session it is never modified.
type Answer struct {
	QuestionID string      `json:"questionId"`
	Value      AnswerValue `json:"value"`
	AnsweredAt time.Time   `json:"answeredAt"`
}
