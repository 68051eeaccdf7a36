package triage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"carecompass/internal/model"
)

func fptr(v float64) *float64 { return &v }

func num(v float64) model.AnswerValue     { return model.AnswerValue{Number: fptr(v)} }
func choice(v string) model.AnswerValue   { return model.AnswerValue{Choice: v} }
func multi(v ...string) model.AnswerValue { return model.AnswerValue{Choices: v} }

func yesNo() []model.Option {
	return []model.Option{
		{Value: "yes", Label: "Yes"},
		{Value: "no", Label: "No"},
	}
}

func testBankDefinition() BankDefinition {
	return BankDefinition{
		ComplaintQuestionID: "symptoms",
		HistoryQuestionID:   "pmh",
		AgeQuestionID:       "age",
		Baseline: []model.Question{
			{ID: "age", Prompt: "How old is the patient?", Type: model.QuestionTypeNumber, Min: fptr(0), Max: fptr(120)},
			{ID: "symptoms", Prompt: "What symptoms?", Type: model.QuestionTypeMultiChoice, Options: []model.Option{
				{Value: "chest_pain", Label: "Chest pain"},
				{Value: "headache", Label: "Headache"},
				{Value: "cough", Label: "Cough"},
				{Value: "other", Label: "Something else"},
			}},
			{ID: "pmh", Prompt: "Any conditions?", Type: model.QuestionTypeMultiChoice, Options: []model.Option{
				{Value: "diabetes", Label: "Diabetes"},
				{Value: "none", Label: "None"},
			}},
		},
		Trees: []TreeDefinition{
			{
				Symptom:  "chest_pain",
				Label:    "Chest pain",
				Priority: 1,
				Questions: []model.Question{
					{ID: "breathing", Prompt: "Hard to breathe?", Type: model.QuestionTypeSingleChoice, Options: yesNo(), Priority: 10},
					{ID: "radiating", Prompt: "Does it spread?", Type: model.QuestionTypeSingleChoice, Options: yesNo(), Priority: 11},
				},
			},
			{
				Symptom:  "headache",
				Label:    "Headache",
				Priority: 2,
				Questions: []model.Question{
					{ID: "severity", Prompt: "How bad?", Type: model.QuestionTypeSingleChoice, Options: []model.Option{
						{Value: "mild", Label: "Mild"},
						{Value: "moderate", Label: "Moderate"},
						{Value: "severe", Label: "Severe"},
					}, Priority: 10},
				},
			},
			{
				Symptom:  "_generic",
				Label:    "Your symptoms",
				Priority: 50,
				Questions: []model.Question{
					{ID: "severity", Prompt: "How severe?", Type: model.QuestionTypeSingleChoice, Options: []model.Option{
						{Value: "mild", Label: "Mild"},
						{Value: "severe", Label: "Severe"},
					}, Priority: 20},
				},
			},
		},
	}
}

func testBank(t *testing.T) *QuestionBank {
	t.Helper()
	bank, err := NewQuestionBank(testBankDefinition())
	require.NoError(t, err)
	return bank
}

func testRules(t *testing.T) *RuleSet {
	t.Helper()
	rules, err := NewRuleSet([]model.RedFlagRule{
		{
			ID:      "chest_pain_with_breathing",
			Name:    "Chest pain with trouble breathing",
			Message: "Call 911 now.",
			Conditions: []model.RuleCondition{
				{QuestionID: "symptoms", AnyOf: []string{"chest_pain"}},
				{QuestionID: "chest_pain__breathing", AnyOf: []string{"yes"}},
			},
		},
		{
			ID:      "severe_headache",
			Name:    "Severe headache",
			Message: "Go to the emergency department immediately.",
			Conditions: []model.RuleCondition{
				{QuestionID: "headache__severity", AnyOf: []string{"severe"}},
			},
		},
	})
	require.NoError(t, err)
	return rules
}

func testWeights() WeightTable {
	return WeightTable{
		SymptomPoints: map[string]float64{
			"chest_pain": 5,
			"headache":   1,
			"cough":      1,
		},
		AnswerPoints: []AnswerWeight{
			{QuestionID: "chest_pain__radiating", Value: "yes", Points: 3, Label: "The pain spreads"},
			{QuestionID: "headache__severity", Value: "moderate", Points: 1, Label: "The headache is moderate"},
		},
		ComorbidityPoints: map[string]float64{"diabetes": 1},
		AgeBands: []AgeBand{
			{MinAge: 65, Points: 2, Label: "Age 65 or older"},
			{MinAge: 80, Points: 3, Label: "Age 80 or older"},
		},
		CountEscalations: []CountEscalation{
			{MinSymptoms: 3, Points: 2, Label: "Several symptoms reported together"},
		},
		EmergencyThreshold: 10,
		UrgentThreshold:    5,
		MinorCutoff:        1,
	}
}

func testEvidence(t *testing.T) *EvidenceIndex {
	t.Helper()
	index, err := NewEvidenceIndex([]model.EvidenceRecord{
		{Symptoms: []string{"chest_pain"}, TotalPatients: 29281, HospitalizedPct: 63.4, DischargedPct: 30.2},
		{Symptoms: []string{"chest_pain", "shortness_of_breath"}, TotalPatients: 8412, HospitalizedPct: 71.8, DischargedPct: 22.5},
		{Symptoms: []string{"headache"}, TotalPatients: 15782, HospitalizedPct: 18.7, DischargedPct: 76.3},
		{Symptoms: []string{"cough", "fever"}, TotalPatients: 9871, HospitalizedPct: 24.6, DischargedPct: 70.2},
	})
	require.NoError(t, err)
	return index
}

func testWarningSigns() WarningSigns {
	return WarningSigns{
		model.TierEmergency:   {"Call 911 if symptoms worsen on the way"},
		model.TierUrgentCare:  {"Go to the emergency department if symptoms worsen"},
		model.TierPrimaryCare: {"See a doctor sooner if symptoms worsen"},
	}
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	bank := testBank(t)
	rules := testRules(t)
	scorer, err := NewScorer(testWeights(), bank)
	require.NoError(t, err)
	assembler, err := NewAssembler(testWarningSigns())
	require.NoError(t, err)
	return NewEngine(bank, rules, scorer, testEvidence(t), assembler)
}
