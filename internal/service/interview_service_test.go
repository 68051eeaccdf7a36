package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carecompass/internal/cache"
	"carecompass/internal/model"
	"carecompass/internal/symptoms"
	"carecompass/internal/triage"
)

func fptr(v float64) *float64 { return &v }

func newTestEngine(t *testing.T) *triage.Engine {
	t.Helper()
	bank, err := triage.NewQuestionBank(triage.BankDefinition{
		ComplaintQuestionID: "symptoms",
		HistoryQuestionID:   "pmh",
		AgeQuestionID:       "age",
		Baseline: []model.Question{
			{ID: "age", Prompt: "Age?", Type: model.QuestionTypeNumber, Min: fptr(0), Max: fptr(120)},
			{ID: "symptoms", Prompt: "Symptoms?", Type: model.QuestionTypeMultiChoice, Options: []model.Option{
				{Value: "chest_pain", Label: "Chest pain"},
				{Value: "headache", Label: "Headache"},
				{Value: "other", Label: "Other"},
			}},
			{ID: "pmh", Prompt: "Conditions?", Type: model.QuestionTypeMultiChoice, Options: []model.Option{
				{Value: "diabetes", Label: "Diabetes"},
				{Value: "none", Label: "None"},
			}},
		},
	})
	require.NoError(t, err)

	rules, err := triage.NewRuleSet([]model.RedFlagRule{
		{ID: "chest_pain_reported", Name: "Chest pain", Message: "Call 911 now.", Conditions: []model.RuleCondition{
			{QuestionID: "symptoms", AnyOf: []string{"chest_pain"}},
		}},
	})
	require.NoError(t, err)

	scorer, err := triage.NewScorer(triage.WeightTable{
		SymptomPoints:      map[string]float64{"headache": 1},
		EmergencyThreshold: 10,
		UrgentThreshold:    5,
		MinorCutoff:        1,
	}, bank)
	require.NoError(t, err)

	evidence, err := triage.NewEvidenceIndex([]model.EvidenceRecord{
		{Symptoms: []string{"headache"}, TotalPatients: 100, HospitalizedPct: 20, DischargedPct: 70},
	})
	require.NoError(t, err)

	assembler, err := triage.NewAssembler(triage.WarningSigns{
		model.TierEmergency:   {"call 911"},
		model.TierUrgentCare:  {"go today"},
		model.TierPrimaryCare: {"book an appointment"},
	})
	require.NoError(t, err)

	return triage.NewEngine(bank, rules, scorer, evidence, assembler)
}

func newTestService(t *testing.T) *InterviewService {
	t.Helper()
	return NewInterviewService(newTestEngine(t), cache.NewMemorySessionStore(), symptoms.NewKeywordParser())
}

func TestInterviewStartReturnsFirstQuestion(t *testing.T) {
	svc := newTestService(t)

	session, question, err := svc.Start(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, model.SessionCollecting, session.Status)
	require.NotNil(t, question)
	assert.Equal(t, "age", question.ID)
}

func TestInterviewUnknownSessionIsNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.CurrentQuestion(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, _, err = svc.SubmitAnswer(ctx, "missing", "age", model.AnswerValue{Number: fptr(30)}, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Recommendation(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestInterviewFullFlowToRecommendation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, _, err := svc.Start(ctx)
	require.NoError(t, err)

	next, done, err := svc.SubmitAnswer(ctx, session.ID, "age", model.AnswerValue{Number: fptr(30)}, "")
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "symptoms", next.ID)

	next, done, err = svc.SubmitAnswer(ctx, session.ID, "symptoms", model.AnswerValue{Choices: []string{"headache"}}, "")
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "pmh", next.ID)

	_, done, err = svc.SubmitAnswer(ctx, session.ID, "pmh", model.AnswerValue{Choices: []string{"none"}}, "")
	require.NoError(t, err)
	assert.True(t, done)

	rec, err := svc.Recommendation(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TierPrimaryCare, rec.Tier)
	require.Len(t, rec.Evidence, 1)
	assert.Equal(t, 100, rec.Evidence[0].TotalPatients)
}

func TestInterviewFreeTextComplaintIsExtracted(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, _, err := svc.Start(ctx)
	require.NoError(t, err)

	_, _, err = svc.SubmitAnswer(ctx, session.ID, "age", model.AnswerValue{Number: fptr(30)}, "")
	require.NoError(t, err)

	// Free text routes through the extractor; "chest" maps to the
	// chest_pain token, which trips the red-flag rule.
	_, done, err := svc.SubmitAnswer(ctx, session.ID, "symptoms", model.AnswerValue{}, "my chest really hurts")
	require.NoError(t, err)
	assert.True(t, done)

	rec, err := svc.Recommendation(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, rec.RedFlag)
	assert.Equal(t, "chest_pain_reported", rec.RedFlag.RuleID)
}

type countingParser struct {
	inner symptoms.Parser
	calls int
}

func (c *countingParser) ParseSymptoms(ctx context.Context, text string) ([]string, error) {
	c.calls++
	return c.inner.ParseSymptoms(ctx, text)
}

func (c *countingParser) ParseHistory(ctx context.Context, text string) ([]string, error) {
	c.calls++
	return c.inner.ParseHistory(ctx, text)
}

func TestInterviewFreeTextForNonPendingQuestionSkipsExtraction(t *testing.T) {
	parser := &countingParser{inner: symptoms.NewKeywordParser()}
	svc := NewInterviewService(newTestEngine(t), cache.NewMemorySessionStore(), parser)
	ctx := context.Background()

	session, _, err := svc.Start(ctx)
	require.NoError(t, err)

	// "symptoms" is an anchor question but "age" is pending: the
	// submission is rejected as non-pending and the parser never runs.
	_, _, err = svc.SubmitAnswer(ctx, session.ID, "symptoms", model.AnswerValue{}, "my chest really hurts")
	assert.ErrorIs(t, err, triage.ErrUnknownQuestion)
	assert.Zero(t, parser.calls)

	q, done, err := svc.CurrentQuestion(ctx, session.ID)
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "age", q.ID)
}

func TestInterviewFreeTextRejectedForOtherQuestions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, _, err := svc.Start(ctx)
	require.NoError(t, err)

	_, _, err = svc.SubmitAnswer(ctx, session.ID, "age", model.AnswerValue{}, "thirty")
	var verr *triage.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "age", verr.QuestionID)
}

func TestInterviewRejectedSubmissionDoesNotPersist(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, _, err := svc.Start(ctx)
	require.NoError(t, err)

	_, _, err = svc.SubmitAnswer(ctx, session.ID, "age", model.AnswerValue{Number: fptr(300)}, "")
	require.Error(t, err)

	q, done, err := svc.CurrentQuestion(ctx, session.ID)
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "age", q.ID, "stored session still pends the same question")
}

func TestInterviewDiscardForgetsSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, _, err := svc.Start(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Discard(ctx, session.ID))

	_, _, err = svc.CurrentQuestion(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
