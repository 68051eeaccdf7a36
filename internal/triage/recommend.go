package triage

import (
	"fmt"
	"strings"

	"carecompass/internal/model"
)

// WarningSigns is the static per-tier "watch for these" table.
type WarningSigns map[model.Tier][]string

// Assembler composes the final recommendation from scorer output,
// evidence records and an optional red-flag match. Pure composition; it
// adds no logic of its own.
type Assembler struct {
	signs WarningSigns
}

// NewAssembler validates that every tier has a warning-signs list.
func NewAssembler(signs WarningSigns) (*Assembler, error) {
	for _, tier := range []model.Tier{model.TierEmergency, model.TierUrgentCare, model.TierPrimaryCare} {
		if len(signs[tier]) == 0 {
			return nil, integrityErr("warning signs", "no entries for tier %d", tier)
		}
	}
	return &Assembler{signs: signs}, nil
}

// Assemble builds the Recommendation. Malformed upstream output (an
// unknown tier) is an invariant violation, not a recoverable error.
func (a *Assembler) Assemble(tier model.Tier, redFlag *model.RuleMatch, factors []model.RiskFactor, evidence []model.EvidenceRecord) *model.Recommendation {
	if !tier.Valid() {
		panic(fmt.Sprintf("triage: assemble called with invalid tier %d", tier))
	}
	rec := &model.Recommendation{
		Tier:         tier,
		Label:        tier.Label(),
		Color:        tier.Color(),
		Urgency:      tier.Urgency(),
		RedFlag:      redFlag,
		RiskFactors:  factors,
		WarningSigns: a.signs[tier],
	}
	if rec.RiskFactors == nil {
		rec.RiskFactors = []model.RiskFactor{}
	}
	for _, r := range evidence {
		rec.Evidence = append(rec.Evidence, summarize(r))
	}
	return rec
}

func summarize(r model.EvidenceRecord) model.EvidenceSummary {
	names := make([]string, len(r.Symptoms))
	for i, s := range r.Symptoms {
		names[i] = humanize(s)
	}
	return model.EvidenceSummary{
		Symptoms:        r.Symptoms,
		TotalPatients:   r.TotalPatients,
		HospitalizedPct: r.HospitalizedPct,
		DischargedPct:   r.DischargedPct,
		Summary: fmt.Sprintf(
			"Of %s patients who reported %s, %.1f%% required hospital-level care and %.1f%% were discharged home.",
			groupDigits(r.TotalPatients), strings.Join(names, " and "),
			r.HospitalizedPct, r.DischargedPct,
		),
	}
}

// groupDigits renders 29281 as "29,281".
func groupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
