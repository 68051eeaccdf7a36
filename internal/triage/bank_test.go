package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carecompass/internal/model"
)

func TestNewQuestionBankNamespacesFollowUps(t *testing.T) {
	bank := testBank(t)

	q, ok := bank.Question("chest_pain__breathing")
	require.True(t, ok)
	assert.Equal(t, "chest_pain", q.Symptom)
	assert.Equal(t, "About chest pain", q.Context)

	_, ok = bank.Question("breathing")
	assert.False(t, ok, "bare follow-up ids must not be registered")
}

func TestNewQuestionBankRejectsBadDefinitions(t *testing.T) {
	var integrity *DataIntegrityError

	tests := []struct {
		name   string
		mutate func(*BankDefinition)
	}{
		{"missing complaint question", func(d *BankDefinition) { d.ComplaintQuestionID = "nope" }},
		{"complaint not multi choice", func(d *BankDefinition) { d.ComplaintQuestionID = "age" }},
		{"duplicate question id", func(d *BankDefinition) {
			d.Baseline = append(d.Baseline, model.Question{ID: "age", Type: model.QuestionTypeNumber})
		}},
		{"choice question without options", func(d *BankDefinition) {
			d.Baseline = append(d.Baseline, model.Question{ID: "extra", Type: model.QuestionTypeSingleChoice})
		}},
		{"min above max", func(d *BankDefinition) {
			d.Baseline[0].Min = fptr(10)
			d.Baseline[0].Max = fptr(5)
		}},
		{"tree without matching complaint option", func(d *BankDefinition) {
			d.Trees[0].Symptom = "unknown_symptom"
		}},
		{"dependsOn unknown question", func(d *BankDefinition) {
			d.Baseline[2].DependsOn = &model.Condition{QuestionID: "ghost", Values: []string{"yes"}}
		}},
		{"dependsOn without values", func(d *BankDefinition) {
			d.Baseline[2].DependsOn = &model.Condition{QuestionID: "age"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := testBankDefinition()
			tt.mutate(&def)
			_, err := NewQuestionBank(def)
			require.Error(t, err)
			assert.ErrorAs(t, err, &integrity)
		})
	}
}

func TestNewQuestionBankTreesAuthoredOutOfPriorityOrder(t *testing.T) {
	def := testBankDefinition()
	// Reverse the authored tree order so it disagrees with the priority
	// order; each symptom must still resolve to its own tree.
	for i, j := 0, len(def.Trees)-1; i < j; i, j = i+1, j-1 {
		def.Trees[i], def.Trees[j] = def.Trees[j], def.Trees[i]
	}
	bank, err := NewQuestionBank(def)
	require.NoError(t, err)

	answers := map[string]model.AnswerValue{
		"age":      num(40),
		"symptoms": multi("headache"),
		"pmh":      multi("none"),
	}
	eligible := bank.EligibleQuestions(answers)
	require.Len(t, eligible, 1)
	assert.Equal(t, "headache__severity", eligible[0].ID)

	answers["symptoms"] = multi("chest_pain")
	eligible = bank.EligibleQuestions(answers)
	require.Len(t, eligible, 2)
	assert.Equal(t, "chest_pain__breathing", eligible[0].ID)

	answers["symptoms"] = multi("other")
	eligible = bank.EligibleQuestions(answers)
	require.Len(t, eligible, 1)
	assert.Equal(t, "_generic__severity", eligible[0].ID)
}

func TestEligibleQuestionsBaselineFirstInAuthoredOrder(t *testing.T) {
	bank := testBank(t)

	eligible := bank.EligibleQuestions(nil)
	require.NotEmpty(t, eligible)
	assert.Equal(t, "age", eligible[0].ID)
	assert.Equal(t, "symptoms", eligible[1].ID)
	assert.Equal(t, "pmh", eligible[2].ID)
}

func TestEligibleQuestionsFollowUpsAfterComplaint(t *testing.T) {
	bank := testBank(t)

	answers := map[string]model.AnswerValue{
		"age":      num(40),
		"symptoms": multi("chest_pain", "headache"),
		"pmh":      multi("none"),
	}
	eligible := bank.EligibleQuestions(answers)

	var ids []string
	for _, q := range eligible {
		ids = append(ids, q.ID)
	}
	// Priority weight first, then id for equal weights.
	assert.Equal(t, []string{"chest_pain__breathing", "headache__severity", "chest_pain__radiating"}, ids)
}

func TestEligibleQuestionsGenericTreeForUnmappedSymptoms(t *testing.T) {
	bank := testBank(t)

	answers := map[string]model.AnswerValue{
		"age":      num(40),
		"symptoms": multi("cough", "other"),
		"pmh":      multi("none"),
	}
	eligible := bank.EligibleQuestions(answers)

	require.Len(t, eligible, 1, "generic tree joins at most once")
	assert.Equal(t, "_generic__severity", eligible[0].ID)
}

func TestEligibleQuestionsDeterministicForSameAnswerSet(t *testing.T) {
	bank := testBank(t)

	answers := map[string]model.AnswerValue{
		"age":      num(40),
		"symptoms": multi("headache", "chest_pain"),
		"pmh":      multi("none"),
	}
	first := bank.EligibleQuestions(answers)
	for i := 0; i < 10; i++ {
		again := bank.EligibleQuestions(answers)
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, first[j].ID, again[j].ID)
		}
	}
}

func TestEligibleQuestionsFollowUpCap(t *testing.T) {
	def := testBankDefinition()
	def.MaxFollowUps = 1
	bank, err := NewQuestionBank(def)
	require.NoError(t, err)

	answers := map[string]model.AnswerValue{
		"age":      num(40),
		"symptoms": multi("chest_pain"),
		"pmh":      multi("none"),
	}
	require.NotEmpty(t, bank.EligibleQuestions(answers))

	answers["chest_pain__breathing"] = choice("no")
	assert.Empty(t, bank.EligibleQuestions(answers), "cap reached, no more follow-ups")
}

func TestEligibleQuestionsRespectsDependsOnGate(t *testing.T) {
	def := testBankDefinition()
	def.Trees[0].Questions[1].DependsOn = &model.Condition{QuestionID: "breathing", Values: []string{"yes"}}
	bank, err := NewQuestionBank(def)
	require.NoError(t, err)

	answers := map[string]model.AnswerValue{
		"age":      num(40),
		"symptoms": multi("chest_pain"),
		"pmh":      multi("none"),
	}
	eligible := bank.EligibleQuestions(answers)
	require.Len(t, eligible, 1)
	assert.Equal(t, "chest_pain__breathing", eligible[0].ID)

	answers["chest_pain__breathing"] = choice("yes")
	eligible = bank.EligibleQuestions(answers)
	require.Len(t, eligible, 1)
	assert.Equal(t, "chest_pain__radiating", eligible[0].ID, "gate opens once the sibling is answered")
}

func TestValidateAnswerValues(t *testing.T) {
	bank := testBank(t)

	age, _ := bank.Question("age")
	symptoms, _ := bank.Question("symptoms")
	breathing, _ := bank.Question("chest_pain__breathing")

	tests := []struct {
		name    string
		q       *model.Question
		value   model.AnswerValue
		wantErr bool
	}{
		{"number in range", age, num(30), false},
		{"number below min", age, num(-1), true},
		{"number above max", age, num(121), true},
		{"number missing", age, model.AnswerValue{}, true},
		{"single choice valid", breathing, choice("yes"), false},
		{"single choice unknown option", breathing, choice("maybe"), true},
		{"single choice missing", breathing, model.AnswerValue{}, true},
		{"multi choice valid", symptoms, multi("chest_pain", "cough"), false},
		{"multi choice unknown option", symptoms, multi("chest_pain", "toothache"), true},
		{"multi choice empty", symptoms, multi(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := bank.Validate(tt.q, tt.value)
			if tt.wantErr {
				require.NotNil(t, verr)
				assert.Equal(t, tt.q.ID, verr.QuestionID)
				assert.NotEmpty(t, verr.Expected, "validation errors carry re-prompt detail")
			} else {
				assert.Nil(t, verr)
			}
		})
	}
}
