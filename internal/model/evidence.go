package model

// EvidenceRecord aggregates historical outcomes for a symptom combination
// from the reference clinical dataset. Read-only after load.
type EvidenceRecord struct {
	Symptoms        []string `json:"symptoms" bson:"symptoms"` // normalized, sorted tokens
	TotalPatients   int      `json:"totalPatients" bson:"total_patients"`
	HospitalizedPct float64  `json:"hospitalizedPct" bson:"hospitalized_pct"`
	DischargedPct   float64  `json:"dischargedPct" bson:"discharged_pct"`
}

// UnclassifiedPct is the share of patients with neither a hospital
// admission nor a routine discharge recorded.
func (r *EvidenceRecord) UnclassifiedPct() float64 {
	rest := 100 - r.HospitalizedPct - r.DischargedPct
	if rest < 0 {
		return 0
	}
	return rest
}
