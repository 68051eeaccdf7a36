package model

// Tier is an acuity disposition, ordered by descending urgency.
type Tier int

const (
	TierEmergency   Tier = 1
	TierUrgentCare  Tier = 2
	TierPrimaryCare Tier = 3
)

var tierLabels = map[Tier]string{
	TierEmergency:   "Go to the Emergency Department",
	TierUrgentCare:  "Visit an Urgent Care Center",
	TierPrimaryCare: "See Your Primary Care Doctor",
}

var tierColors = map[Tier]string{
	TierEmergency:   "red",
	TierUrgentCare:  "orange",
	TierPrimaryCare: "yellow",
}

var tierUrgency = map[Tier]string{
	TierEmergency:   "Call 911 or go to your nearest Emergency Department now.",
	TierUrgentCare:  "Visit an Urgent Care center today. Don't wait more than a few hours.",
	TierPrimaryCare: "Make an appointment with your doctor in the next 1-2 days.",
}

func (t Tier) Label() string   { return tierLabels[t] }
func (t Tier) Color() string   { return tierColors[t] }
func (t Tier) Urgency() string { return tierUrgency[t] }

// Valid reports whether t is one of the three dispositions.
func (t Tier) Valid() bool {
	return t >= TierEmergency && t <= TierPrimaryCare
}

// RiskFactor is one contributing factor in the scorer's rationale.
type RiskFactor struct {
	Label  string  `json:"label"`
	Points float64 `json:"points"`
}

// EvidenceSummary is a formatted evidence record for presentation.
type EvidenceSummary struct {
	Symptoms        []string `json:"symptoms"`
	TotalPatients   int      `json:"totalPatients"`
	HospitalizedPct float64  `json:"hospitalizedPct"`
	DischargedPct   float64  `json:"dischargedPct"`
	Summary         string   `json:"summary"`
}

// Recommendation is the final triage result handed to the presentation
// layer. It never contains a diagnosis.
type Recommendation struct {
	Tier         Tier              `json:"tier"`
	Label        string            `json:"label"`
	Color        string            `json:"color"`
	Urgency      string            `json:"urgency"`
	RedFlag      *RuleMatch        `json:"redFlag,omitempty"`
	RiskFactors  []RiskFactor      `json:"riskFactors"`
	Evidence     []EvidenceSummary `json:"evidence,omitempty"`
	WarningSigns []string          `json:"warningSigns"`
}
