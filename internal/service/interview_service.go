package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"carecompass/internal/cache"
	"carecompass/internal/model"
	"carecompass/internal/symptoms"
	"carecompass/internal/triage"
)

var ErrSessionNotFound = errors.New("session not found")

// InterviewService drives triage interviews: it owns the mapping from
// session id to session state (via the store) and applies every
// operation through the loaded engine. Each session is driven by one
// request at a time; sessions never share mutable state.
type InterviewService struct {
	engine *triage.Engine
	store  cache.SessionStore
	parser symptoms.Parser
}

// NewInterviewService creates the interview orchestrator.
func NewInterviewService(engine *triage.Engine, store cache.SessionStore, parser symptoms.Parser) *InterviewService {
	return &InterviewService{engine: engine, store: store, parser: parser}
}

// Start begins a new interview and returns the session with its first
// question.
func (s *InterviewService) Start(ctx context.Context) (*model.Session, *model.Question, error) {
	session := s.engine.StartSession(uuid.New().String())
	question, err := s.engine.CurrentQuestion(session)
	if err != nil && !errors.Is(err, triage.ErrInvalidState) {
		return nil, nil, err
	}
	if err := s.store.Put(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("store session: %w", err)
	}
	return session, question, nil
}

func (s *InterviewService) load(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// CurrentQuestion returns the pending question, or done=true once the
// interview has terminated. Safe to call repeatedly; it never advances
// the interview.
func (s *InterviewService) CurrentQuestion(ctx context.Context, sessionID string) (*model.Question, bool, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if session.Terminal() {
		return nil, true, nil
	}
	question, err := s.engine.CurrentQuestion(session)
	if err != nil {
		return nil, false, err
	}
	return question, false, nil
}

// SubmitAnswer records an answer for the pending question. When
// freeText is set and the pending question is the chief complaint or
// history question, the text is first run through the extractor and
// submitted as category tokens. Returns the next question, or done=true
// when the interview terminated. Rejected submissions leave the stored
// session untouched.
func (s *InterviewService) SubmitAnswer(ctx context.Context, sessionID, questionID string, value model.AnswerValue, freeText string) (*model.Question, bool, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	// Extract only for the pending question; anything else falls through
	// to the engine's own rejection, without spending a parser call.
	if freeText != "" && questionID == session.PendingQuestionID {
		value, err = s.extract(ctx, questionID, freeText)
		if err != nil {
			return nil, false, err
		}
	}

	if err := s.engine.SubmitAnswer(session, questionID, value); err != nil {
		return nil, false, err
	}
	if err := s.store.Put(ctx, session); err != nil {
		return nil, false, fmt.Errorf("store session: %w", err)
	}
	if session.Terminal() {
		return nil, true, nil
	}
	question, err := s.engine.CurrentQuestion(session)
	if err != nil {
		return nil, false, err
	}
	return question, false, nil
}

// extract turns free text into multi-choice tokens for the two
// free-text-friendly anchor questions.
func (s *InterviewService) extract(ctx context.Context, questionID, text string) (model.AnswerValue, error) {
	bank := s.engine.Bank()
	switch questionID {
	case bank.ComplaintQuestionID():
		tokens, err := s.parser.ParseSymptoms(ctx, text)
		if err != nil {
			return model.AnswerValue{}, fmt.Errorf("parse symptoms: %w", err)
		}
		return model.AnswerValue{Choices: tokens}, nil
	case bank.HistoryQuestionID():
		tokens, err := s.parser.ParseHistory(ctx, text)
		if err != nil {
			return model.AnswerValue{}, fmt.Errorf("parse history: %w", err)
		}
		if len(tokens) == 0 {
			tokens = []string{"none"}
		}
		return model.AnswerValue{Choices: tokens}, nil
	}
	return model.AnswerValue{}, &triage.ValidationError{
		QuestionID: questionID,
		Reason:     "free text is not accepted for this question",
		Expected:   "a structured answer",
	}
}

// Recommendation returns the final result for a terminal session.
func (s *InterviewService) Recommendation(ctx context.Context, sessionID string) (*model.Recommendation, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.engine.Recommendation(session)
}

// Discard drops a session. Used by restart; sessions also expire on
// their own.
func (s *InterviewService) Discard(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}
