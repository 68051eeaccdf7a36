package model

import "time"

type SessionStatus string

const (
	SessionCollecting      SessionStatus = "collecting"
	SessionRedFlagTerminal SessionStatus = "red_flag_terminal"
	SessionScoringTerminal SessionStatus = "scoring_terminal"
)

// Session is one in-progress or completed interview. Answers are
// append-only; the pending question is the only question the session
// will accept an answer for.
type Session struct {
	ID                string        `json:"id"`
	Status            SessionStatus `json:"status"`
	StartedAt         time.Time     `json:"startedAt"`
	Answers           []Answer      `json:"answers"`
	PendingQuestionID string        `json:"pendingQuestionId,omitempty"`
	RedFlagID         string        `json:"redFlagId,omitempty"`
}

// Terminal reports whether the interview has ended, by red flag or by
// exhausting the eligible question set.
func (s *Session) Terminal() bool {
	return s.Status == SessionRedFlagTerminal || s.Status == SessionScoringTerminal
}

// Answered returns the answer set as a lookup map. The map is derived on
// each call; the session itself stays append-only.
func (s *Session) Answered() map[string]AnswerValue {
	m := make(map[string]AnswerValue, len(s.Answers))
	for _, a := range s.Answers {
		m[a.QuestionID] = a.Value
	}
	return m
}

// HasAnswered reports whether the question has already been answered.
func (s *Session) HasAnswered(questionID string) bool {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return true
		}
	}
	return false
}
