package triage

import (
	"time"

	"carecompass/internal/model"
)

// Machine advances interview sessions through the collecting state. It
// holds only read-only reference data; all mutable state lives in the
// Session value owned by the caller, so any number of sessions can run
// concurrently against one Machine.
type Machine struct {
	bank  *QuestionBank
	rules *RuleSet
}

// NewMachine creates a state machine over the loaded bank and rule set.
func NewMachine(bank *QuestionBank, rules *RuleSet) *Machine {
	return &Machine{bank: bank, rules: rules}
}

// Start creates a fresh collecting session with the first baseline
// question pending.
func (m *Machine) Start(id string) *model.Session {
	s := &model.Session{
		ID:        id,
		Status:    model.SessionCollecting,
		StartedAt: time.Now(),
	}
	if next := m.bank.NextQuestion(nil); next != nil {
		s.PendingQuestionID = next.ID
	} else {
		// An empty bank completes immediately; load validation makes
		// this unreachable in practice.
		s.Status = model.SessionScoringTerminal
	}
	return s
}

// CurrentQuestion returns the pending question. Repeated calls without a
// submission return the same question and never mutate the session.
func (m *Machine) CurrentQuestion(s *model.Session) (*model.Question, error) {
	if s.Terminal() {
		return nil, ErrInvalidState
	}
	q, ok := m.bank.Question(s.PendingQuestionID)
	if !ok {
		return nil, ErrInvalidState
	}
	return q, nil
}

// SubmitAnswer records an answer for the pending question, re-runs the
// red-flag rules, and advances or terminates the session. A rejected
// submission leaves the session untouched.
func (m *Machine) SubmitAnswer(s *model.Session, questionID string, value model.AnswerValue) error {
	if s.Terminal() {
		return ErrInvalidState
	}
	if questionID != s.PendingQuestionID {
		return ErrUnknownQuestion
	}
	q, ok := m.bank.Question(questionID)
	if !ok {
		return ErrUnknownQuestion
	}
	if verr := m.bank.Validate(q, value); verr != nil {
		return verr
	}

	s.Answers = append(s.Answers, model.Answer{
		QuestionID: questionID,
		Value:      value,
		AnsweredAt: time.Now(),
	})

	answers := s.Answered()
	if match := m.rules.Evaluate(answers); match != nil {
		s.Status = model.SessionRedFlagTerminal
		s.RedFlagID = match.RuleID
		s.PendingQuestionID = ""
		return nil
	}

	if next := m.bank.NextQuestion(answers); next != nil {
		s.PendingQuestionID = next.ID
		return nil
	}
	s.Status = model.SessionScoringTerminal
	s.PendingQuestionID = ""
	return nil
}

// IsComplete reports whether the session reached a terminal state.
func (m *Machine) IsComplete(s *model.Session) bool {
	return s.Terminal()
}
