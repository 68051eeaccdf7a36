package triage

import "carecompass/internal/model"

// Engine bundles the loaded reference data behind the interview
// operations the presentation layer consumes. All reference data is
// immutable after construction; sessions passed in are owned by exactly
// one caller at a time.
type Engine struct {
	bank      *QuestionBank
	rules     *RuleSet
	machine   *Machine
	scorer    *Scorer
	evidence  *EvidenceIndex
	assembler *Assembler
}

// NewEngine wires the core components together.
func NewEngine(bank *QuestionBank, rules *RuleSet, scorer *Scorer, evidence *EvidenceIndex, assembler *Assembler) *Engine {
	return &Engine{
		bank:      bank,
		rules:     rules,
		machine:   NewMachine(bank, rules),
		scorer:    scorer,
		evidence:  evidence,
		assembler: assembler,
	}
}

// Bank exposes the question bank for callers that need question
// metadata (modalities, anchor question ids).
func (e *Engine) Bank() *QuestionBank { return e.bank }

// StartSession begins a new interview.
func (e *Engine) StartSession(id string) *model.Session {
	return e.machine.Start(id)
}

// CurrentQuestion returns the pending question without mutating the
// session. Terminal sessions yield ErrInvalidState.
func (e *Engine) CurrentQuestion(s *model.Session) (*model.Question, error) {
	return e.machine.CurrentQuestion(s)
}

// SubmitAnswer validates and records an answer, advancing or
// terminating the session.
func (e *Engine) SubmitAnswer(s *model.Session, questionID string, value model.AnswerValue) error {
	return e.machine.SubmitAnswer(s, questionID, value)
}

// IsComplete reports whether the interview has terminated.
func (e *Engine) IsComplete(s *model.Session) bool {
	return e.machine.IsComplete(s)
}

// Recommendation produces the final result for a terminal session. A
// red-flag session inherits the rule's forced tier and never touches
// the scorer; a scored session runs the weighted model. Both paths
// attach whatever outcome evidence exists for the reported symptoms.
func (e *Engine) Recommendation(s *model.Session) (*model.Recommendation, error) {
	if !s.Terminal() {
		return nil, ErrNotTerminal
	}
	answers := s.Answered()
	symptoms := answers[e.bank.ComplaintQuestionID()].Tokens()
	evidence := e.evidence.Lookup(symptoms)

	if s.Status == model.SessionRedFlagTerminal {
		rule, ok := e.rules.Rule(s.RedFlagID)
		if !ok {
			// Sessions only ever record rule ids handed out by this
			// rule set; a miss means the session was corrupted.
			return nil, ErrInvalidState
		}
		match := &model.RuleMatch{
			RuleID:  rule.ID,
			Name:    rule.Name,
			Message: rule.Message,
			Tier:    model.TierEmergency,
		}
		factors := []model.RiskFactor{{Label: rule.Message}}
		return e.assembler.Assemble(model.TierEmergency, match, factors, evidence), nil
	}

	tier, factors := e.scorer.Score(answers)
	return e.assembler.Assemble(tier, nil, factors, evidence), nil
}
