package triage

import (
	"sort"
	"strings"

	"carecompass/internal/model"
)

// AnswerWeight adds points when a specific question was answered with a
// specific value (severity modifiers on follow-up answers).
type AnswerWeight struct {
	QuestionID string  `json:"questionId"`
	Value      string  `json:"value"`
	Points     float64 `json:"points"`
	Label      string  `json:"label"`
}

// AgeBand adds points for patients at or above a minimum age. Only the
// highest matching band contributes.
type AgeBand struct {
	MinAge float64 `json:"minAge"`
	Points float64 `json:"points"`
	Label  string  `json:"label"`
}

// CountEscalation adds points when the patient reported at least
// MinSymptoms distinct symptoms. Only the highest matching entry counts.
type CountEscalation struct {
	MinSymptoms int     `json:"minSymptoms"`
	Points      float64 `json:"points"`
	Label       string  `json:"label"`
}

// WeightTable is the clinical scoring policy: risk points per factor and
// the fixed tier cut points. It is data, not code, so operators can
// replace it without a rebuild.
type WeightTable struct {
	SymptomPoints      map[string]float64 `json:"symptomPoints"`
	SymptomLabels      map[string]string  `json:"symptomLabels,omitempty"`
	AnswerPoints       []AnswerWeight     `json:"answerPoints"`
	ComorbidityPoints  map[string]float64 `json:"comorbidityPoints"`
	ComorbidityLabels  map[string]string  `json:"comorbidityLabels,omitempty"`
	AgeBands           []AgeBand          `json:"ageBands"`
	CountEscalations   []CountEscalation  `json:"countEscalations"`
	EmergencyThreshold float64            `json:"emergencyThreshold"`
	UrgentThreshold    float64            `json:"urgentThreshold"`
	MinorCutoff        float64            `json:"minorCutoff"`
}

// Scorer maps a completed answer set to a disposition tier with a
// rationale. It never runs on red-flag sessions.
type Scorer struct {
	table       WeightTable
	complaintID string
	historyID   string
	ageID       string
}

// NewScorer validates the weight table against the bank's anchor
// questions.
func NewScorer(table WeightTable, bank *QuestionBank) (*Scorer, error) {
	if table.EmergencyThreshold <= table.UrgentThreshold {
		return nil, integrityErr("acuity weights", "emergency threshold must exceed urgent threshold")
	}
	if table.UrgentThreshold <= 0 {
		return nil, integrityErr("acuity weights", "urgent threshold must be positive")
	}
	if table.MinorCutoff < 0 {
		return nil, integrityErr("acuity weights", "minor cutoff must not be negative")
	}
	for sym, pts := range table.SymptomPoints {
		if pts < 0 {
			return nil, integrityErr("acuity weights", "negative points for symptom %q", sym)
		}
	}
	for _, aw := range table.AnswerPoints {
		if aw.QuestionID == "" || aw.Value == "" {
			return nil, integrityErr("acuity weights", "answer weight without question/value")
		}
		if aw.Points < 0 {
			return nil, integrityErr("acuity weights", "negative points for %s=%s", aw.QuestionID, aw.Value)
		}
		q, ok := bank.Question(aw.QuestionID)
		if !ok {
			return nil, integrityErr("acuity weights", "answer weight references unknown question %q", aw.QuestionID)
		}
		// A weight on an undeclared option (or a number question) could
		// never match an accepted answer and would silently contribute
		// nothing.
		if !q.HasOption(aw.Value) {
			return nil, integrityErr("acuity weights", "answer weight %s=%s does not match a declared option", aw.QuestionID, aw.Value)
		}
	}
	return &Scorer{
		table:       table,
		complaintID: bank.ComplaintQuestionID(),
		historyID:   bank.HistoryQuestionID(),
		ageID:       bank.AgeQuestionID(),
	}, nil
}

// Score accumulates risk points over the answer set and maps the total
// onto a tier. Totals sitting exactly on a cut point resolve to the
// higher-acuity tier. The rationale lists every factor at or above the
// minor-contribution cutoff, heaviest first.
func (sc *Scorer) Score(answers map[string]model.AnswerValue) (model.Tier, []model.RiskFactor) {
	var total float64
	var factors []model.RiskFactor
	add := func(label string, points float64) {
		total += points
		if points >= sc.table.MinorCutoff && points > 0 {
			factors = append(factors, model.RiskFactor{Label: label, Points: points})
		}
	}

	symptoms := distinctTokens(answers[sc.complaintID])
	for _, sym := range symptoms {
		if pts, ok := sc.table.SymptomPoints[sym]; ok && pts > 0 {
			add(sc.symptomLabel(sym), pts)
		}
	}

	for _, aw := range sc.table.AnswerPoints {
		if v, ok := answers[aw.QuestionID]; ok && v.Contains(aw.Value) {
			add(aw.Label, aw.Points)
		}
	}

	if sc.historyID != "" {
		for _, cond := range distinctTokens(answers[sc.historyID]) {
			if pts, ok := sc.table.ComorbidityPoints[cond]; ok && pts > 0 {
				add(sc.comorbidityLabel(cond), pts)
			}
		}
	}

	if sc.ageID != "" {
		if v, ok := answers[sc.ageID]; ok && v.Number != nil {
			if band := highestAgeBand(sc.table.AgeBands, *v.Number); band != nil {
				add(band.Label, band.Points)
			}
		}
	}

	if esc := highestEscalation(sc.table.CountEscalations, len(symptoms)); esc != nil {
		add(esc.Label, esc.Points)
	}

	sort.SliceStable(factors, func(i, j int) bool {
		if factors[i].Points != factors[j].Points {
			return factors[i].Points > factors[j].Points
		}
		return factors[i].Label < factors[j].Label
	})

	switch {
	case total >= sc.table.EmergencyThreshold:
		return model.TierEmergency, factors
	case total >= sc.table.UrgentThreshold:
		return model.TierUrgentCare, factors
	}
	return model.TierPrimaryCare, factors
}

func (sc *Scorer) symptomLabel(token string) string {
	if lbl, ok := sc.table.SymptomLabels[token]; ok {
		return lbl
	}
	return "You reported " + humanize(token)
}

func (sc *Scorer) comorbidityLabel(token string) string {
	if lbl, ok := sc.table.ComorbidityLabels[token]; ok {
		return lbl
	}
	return "Your medical history includes " + humanize(token)
}

func humanize(token string) string {
	return strings.ReplaceAll(token, "_", " ")
}

func distinctTokens(v model.AnswerValue) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range v.Tokens() {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func highestAgeBand(bands []AgeBand, age float64) *AgeBand {
	var best *AgeBand
	for i := range bands {
		b := &bands[i]
		if age >= b.MinAge && (best == nil || b.MinAge > best.MinAge) {
			best = b
		}
	}
	return best
}

func highestEscalation(escs []CountEscalation, count int) *CountEscalation {
	var best *CountEscalation
	for i := range escs {
		e := &escs[i]
		if count >= e.MinSymptoms && (best == nil || e.MinSymptoms > best.MinSymptoms) {
			best = e
		}
	}
	return best
}
