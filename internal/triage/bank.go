package triage

import (
	"fmt"
	"sort"
	"strings"

	"carecompass/internal/model"
)

// followUpSeparator namespaces follow-up question IDs under their
// symptom tree, e.g. "chest_pain__radiating".
const followUpSeparator = "__"

// genericSymptom is the fallback tree used (at most once per interview)
// for selected symptoms that have no dedicated follow-up tree.
const genericSymptom = "_generic"

const defaultMaxFollowUps = 6

// TreeDefinition is one authored follow-up tree. Question IDs inside a
// tree are written without the symptom prefix; the bank namespaces them.
type TreeDefinition struct {
	Symptom   string           `json:"symptom"`
	Label     string           `json:"label"`
	Priority  int              `json:"priority"`
	Questions []model.Question `json:"questions"`
}

// BankDefinition is the authored question bank configuration.
type BankDefinition struct {
	ComplaintQuestionID string           `json:"complaintQuestionId"`
	HistoryQuestionID   string           `json:"historyQuestionId"`
	AgeQuestionID       string           `json:"ageQuestionId"`
	MaxFollowUps        int              `json:"maxFollowUps"`
	Baseline            []model.Question `json:"baseline"`
	Trees               []TreeDefinition `json:"trees"`
}

type followUpTree struct {
	symptom   string
	label     string
	priority  int
	questions []model.Question
}

// QuestionBank holds the static question graph: baseline questions in
// authored order plus symptom-conditioned follow-up trees. Immutable
// after construction; safe for concurrent reads.
type QuestionBank struct {
	complaintID  string
	historyID    string
	ageID        string
	maxFollowUps int
	baseline     []model.Question
	trees        []followUpTree // sorted by priority, then symptom
	bySymptom    map[string]*followUpTree
	byID         map[string]*model.Question
}

// NewQuestionBank validates and indexes a bank definition. Any malformed
// entry yields a DataIntegrityError.
func NewQuestionBank(def BankDefinition) (*QuestionBank, error) {
	b := &QuestionBank{
		complaintID:  def.ComplaintQuestionID,
		historyID:    def.HistoryQuestionID,
		ageID:        def.AgeQuestionID,
		maxFollowUps: def.MaxFollowUps,
		byID:         make(map[string]*model.Question),
		bySymptom:    make(map[string]*followUpTree),
	}
	if b.maxFollowUps <= 0 {
		b.maxFollowUps = defaultMaxFollowUps
	}
	if b.complaintID == "" {
		return nil, integrityErr("question bank", "complaintQuestionId is required")
	}

	b.baseline = make([]model.Question, len(def.Baseline))
	copy(b.baseline, def.Baseline)
	for i := range b.baseline {
		q := &b.baseline[i]
		if err := b.register(q); err != nil {
			return nil, err
		}
	}

	complaint, ok := b.byID[b.complaintID]
	if !ok {
		return nil, integrityErr("question bank", "complaint question %q is not a baseline question", b.complaintID)
	}
	if complaint.Type != model.QuestionTypeMultiChoice {
		return nil, integrityErr("question bank", "complaint question %q must be multi_choice", b.complaintID)
	}
	if b.historyID != "" {
		h, ok := b.byID[b.historyID]
		if !ok || h.Type != model.QuestionTypeMultiChoice {
			return nil, integrityErr("question bank", "history question %q must be a baseline multi_choice question", b.historyID)
		}
	}
	if b.ageID != "" {
		a, ok := b.byID[b.ageID]
		if !ok || a.Type != model.QuestionTypeNumber {
			return nil, integrityErr("question bank", "age question %q must be a baseline number question", b.ageID)
		}
	}

	for _, td := range def.Trees {
		if td.Symptom == "" {
			return nil, integrityErr("question bank", "follow-up tree without symptom id")
		}
		if td.Symptom != genericSymptom && !complaint.HasOption(td.Symptom) {
			return nil, integrityErr("question bank", "tree %q does not match any complaint option", td.Symptom)
		}
		if _, dup := b.bySymptom[td.Symptom]; dup {
			return nil, integrityErr("question bank", "duplicate tree %q", td.Symptom)
		}
		tree := followUpTree{
			symptom:  td.Symptom,
			label:    td.Label,
			priority: td.Priority,
		}
		ctx := "About " + strings.ToLower(td.Label)
		if td.Symptom == genericSymptom {
			ctx = "About your symptoms"
		}
		tree.questions = make([]model.Question, len(td.Questions))
		copy(tree.questions, td.Questions)
		for i := range tree.questions {
			q := &tree.questions[i]
			if !strings.Contains(q.ID, followUpSeparator) {
				q.ID = td.Symptom + followUpSeparator + q.ID
			}
			q.Symptom = td.Symptom
			if q.Context == "" {
				q.Context = ctx
			}
			if q.DependsOn != nil && !strings.Contains(q.DependsOn.QuestionID, followUpSeparator) {
				// Bare references name a sibling node within the tree.
				sibling := td.Symptom + followUpSeparator + q.DependsOn.QuestionID
				if _, isBaseline := b.byID[q.DependsOn.QuestionID]; !isBaseline {
					dep := *q.DependsOn
					dep.QuestionID = sibling
					q.DependsOn = &dep
				}
			}
			if err := b.register(q); err != nil {
				return nil, err
			}
		}
		b.trees = append(b.trees, tree)
	}
	// Sort before indexing: bySymptom holds pointers into b.trees, so
	// the slice must not move afterwards.
	sort.SliceStable(b.trees, func(i, j int) bool {
		if b.trees[i].priority != b.trees[j].priority {
			return b.trees[i].priority < b.trees[j].priority
		}
		return b.trees[i].symptom < b.trees[j].symptom
	})
	for i := range b.trees {
		b.bySymptom[b.trees[i].symptom] = &b.trees[i]
	}

	// Dependency targets must exist now that every question is registered.
	for id, q := range b.byID {
		if q.DependsOn == nil {
			continue
		}
		if len(q.DependsOn.Values) == 0 {
			return nil, integrityErr("question bank", "question %q has a dependsOn gate without values", id)
		}
		if _, ok := b.byID[q.DependsOn.QuestionID]; !ok {
			return nil, integrityErr("question bank", "question %q depends on unknown question %q", id, q.DependsOn.QuestionID)
		}
	}
	return b, nil
}

func (b *QuestionBank) register(q *model.Question) error {
	if q.ID == "" {
		return integrityErr("question bank", "question without id")
	}
	if _, dup := b.byID[q.ID]; dup {
		return integrityErr("question bank", "duplicate question id %q", q.ID)
	}
	switch q.Type {
	case model.QuestionTypeNumber:
		if q.Min != nil && q.Max != nil && *q.Min > *q.Max {
			return integrityErr("question bank", "question %q has min > max", q.ID)
		}
	case model.QuestionTypeSingleChoice, model.QuestionTypeMultiChoice:
		if len(q.Options) == 0 {
			return integrityErr("question bank", "choice question %q has no options", q.ID)
		}
	default:
		return integrityErr("question bank", "question %q has unknown type %q", q.ID, q.Type)
	}
	b.byID[q.ID] = q
	return nil
}

// ComplaintQuestionID returns the id of the chief-complaint question.
func (b *QuestionBank) ComplaintQuestionID() string { return b.complaintID }

// HistoryQuestionID returns the id of the medical-history question.
func (b *QuestionBank) HistoryQuestionID() string { return b.historyID }

// AgeQuestionID returns the id of the age question.
func (b *QuestionBank) AgeQuestionID() string { return b.ageID }

// Question looks up a question by id.
func (b *QuestionBank) Question(id string) (*model.Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

func conditionMet(c *model.Condition, answers map[string]model.AnswerValue) bool {
	if c == nil {
		return true
	}
	v, ok := answers[c.QuestionID]
	if !ok {
		return false
	}
	for _, want := range c.Values {
		if v.Contains(want) {
			return true
		}
	}
	return false
}

func isFollowUpID(id string) bool {
	return strings.Contains(id, followUpSeparator)
}

func (b *QuestionBank) followUpCount(answers map[string]model.AnswerValue) int {
	n := 0
	for id := range answers {
		if isFollowUpID(id) {
			n++
		}
	}
	return n
}

// EligibleQuestions returns every unanswered question whose gates are
// satisfied by the answer set, ordered for asking: baseline questions in
// authored order first, then follow-ups by priority weight (ties broken
// by question id). The answer set is never mutated.
func (b *QuestionBank) EligibleQuestions(answers map[string]model.AnswerValue) []*model.Question {
	var out []*model.Question
	for i := range b.baseline {
		q := &b.baseline[i]
		if _, done := answers[q.ID]; done {
			continue
		}
		if !conditionMet(q.DependsOn, answers) {
			continue
		}
		out = append(out, q)
	}

	complaint, ok := answers[b.complaintID]
	if !ok {
		return out
	}
	if b.followUpCount(answers) >= b.maxFollowUps {
		return out
	}

	selected := complaint.Tokens()
	var trees []*followUpTree
	genericNeeded := false
	for _, sym := range selected {
		if t, ok := b.bySymptom[sym]; ok {
			trees = append(trees, t)
		} else {
			genericNeeded = true
		}
	}
	if genericNeeded {
		if t, ok := b.bySymptom[genericSymptom]; ok {
			trees = append(trees, t)
		}
	}

	seen := make(map[string]bool)
	var followUps []*model.Question
	for _, tree := range trees {
		for i := range tree.questions {
			q := &tree.questions[i]
			if seen[q.ID] {
				continue
			}
			if _, done := answers[q.ID]; done {
				continue
			}
			if !conditionMet(q.DependsOn, answers) {
				continue
			}
			seen[q.ID] = true
			followUps = append(followUps, q)
		}
	}
	sort.SliceStable(followUps, func(i, j int) bool {
		if followUps[i].Priority != followUps[j].Priority {
			return followUps[i].Priority < followUps[j].Priority
		}
		return followUps[i].ID < followUps[j].ID
	})
	return append(out, followUps...)
}

// NextQuestion returns the highest-priority eligible unanswered question,
// or nil when the eligible set is exhausted.
func (b *QuestionBank) NextQuestion(answers map[string]model.AnswerValue) *model.Question {
	eligible := b.EligibleQuestions(answers)
	if len(eligible) == 0 {
		return nil
	}
	return eligible[0]
}

// Validate checks an answer value against the question's modality
// contract. A nil return means the value is acceptable.
func (b *QuestionBank) Validate(q *model.Question, v model.AnswerValue) *ValidationError {
	switch q.Type {
	case model.QuestionTypeNumber:
		if v.Number == nil {
			return &ValidationError{QuestionID: q.ID, Reason: "missing numeric value", Expected: numberRange(q)}
		}
		if (q.Min != nil && *v.Number < *q.Min) || (q.Max != nil && *v.Number > *q.Max) {
			return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("%v is out of range", *v.Number), Expected: numberRange(q)}
		}
	case model.QuestionTypeSingleChoice:
		if v.Choice == "" {
			return &ValidationError{QuestionID: q.ID, Reason: "missing selection", Expected: optionList(q)}
		}
		if !q.HasOption(v.Choice) {
			return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("%q is not an option", v.Choice), Expected: optionList(q)}
		}
	case model.QuestionTypeMultiChoice:
		if len(v.Choices) == 0 {
			return &ValidationError{QuestionID: q.ID, Reason: "no values selected", Expected: optionList(q)}
		}
		for _, c := range v.Choices {
			if !q.HasOption(c) {
				return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("%q is not an option", c), Expected: optionList(q)}
			}
		}
	}
	return nil
}

func numberRange(q *model.Question) string {
	switch {
	case q.Min != nil && q.Max != nil:
		return fmt.Sprintf("a number between %v and %v", *q.Min, *q.Max)
	case q.Min != nil:
		return fmt.Sprintf("a number >= %v", *q.Min)
	case q.Max != nil:
		return fmt.Sprintf("a number <= %v", *q.Max)
	}
	return "a number"
}

func optionList(q *model.Question) string {
	values := make([]string, len(q.Options))
	for i, opt := range q.Options {
		values[i] = opt.Value
	}
	return "one of: " + strings.Join(values, ", ")
}
