package triage

import (
	"sort"
	"strings"

	"carecompass/internal/model"
)

// EvidenceIndex answers symptom-combination lookups against the
// retrospective outcome dataset. Loaded once, read-only afterwards.
type EvidenceIndex struct {
	records []model.EvidenceRecord
	byKey   map[string]*model.EvidenceRecord
}

// NewEvidenceIndex validates and indexes the reference records. Symptom
// keys are normalized to lowercase sorted token sets.
func NewEvidenceIndex(records []model.EvidenceRecord) (*EvidenceIndex, error) {
	ix := &EvidenceIndex{
		records: make([]model.EvidenceRecord, len(records)),
		byKey:   make(map[string]*model.EvidenceRecord, len(records)),
	}
	copy(ix.records, records)
	for i := range ix.records {
		r := &ix.records[i]
		if len(r.Symptoms) == 0 {
			return nil, integrityErr("evidence", "record without symptom key")
		}
		if r.TotalPatients <= 0 {
			return nil, integrityErr("evidence", "record %v has no patients", r.Symptoms)
		}
		if r.HospitalizedPct < 0 || r.DischargedPct < 0 || r.HospitalizedPct+r.DischargedPct > 100 {
			return nil, integrityErr("evidence", "record %v has an impossible outcome distribution", r.Symptoms)
		}
		r.Symptoms = normalizeSymptoms(r.Symptoms)
		key := symptomKey(r.Symptoms)
		if _, dup := ix.byKey[key]; dup {
			return nil, integrityErr("evidence", "duplicate record for %q", key)
		}
		ix.byKey[key] = r
	}
	return ix, nil
}

// Lookup retrieves outcome records for the reported symptom set. A
// combination present verbatim in the dataset returns exactly that
// record. Otherwise each reported symptom falls back to the record with
// the longest overlap against the full reported set, ties broken by
// larger total patient count, then by key for determinism. No related
// data yields an empty (not nil-error) result.
func (ix *EvidenceIndex) Lookup(symptoms []string) []model.EvidenceRecord {
	reported := normalizeSymptoms(symptoms)
	if len(reported) == 0 {
		return nil
	}
	if r, ok := ix.byKey[symptomKey(reported)]; ok {
		return []model.EvidenceRecord{*r}
	}

	reportedSet := make(map[string]bool, len(reported))
	for _, s := range reported {
		reportedSet[s] = true
	}

	var out []model.EvidenceRecord
	taken := make(map[string]bool)
	for _, sym := range reported {
		best := ix.bestFor(sym, reportedSet)
		if best == nil {
			continue
		}
		key := symptomKey(best.Symptoms)
		if taken[key] {
			continue
		}
		taken[key] = true
		out = append(out, *best)
	}
	return out
}

func (ix *EvidenceIndex) bestFor(symptom string, reported map[string]bool) *model.EvidenceRecord {
	var best *model.EvidenceRecord
	bestOverlap := 0
	for i := range ix.records {
		r := &ix.records[i]
		if !containsSymptom(r.Symptoms, symptom) {
			continue
		}
		overlap := 0
		for _, s := range r.Symptoms {
			if reported[s] {
				overlap++
			}
		}
		if best == nil || overlap > bestOverlap ||
			(overlap == bestOverlap && r.TotalPatients > best.TotalPatients) ||
			(overlap == bestOverlap && r.TotalPatients == best.TotalPatients && symptomKey(r.Symptoms) < symptomKey(best.Symptoms)) {
			best = r
			bestOverlap = overlap
		}
	}
	return best
}

func containsSymptom(symptoms []string, want string) bool {
	for _, s := range symptoms {
		if s == want {
			return true
		}
	}
	return false
}

func normalizeSymptoms(symptoms []string) []string {
	seen := make(map[string]bool, len(symptoms))
	var out []string
	for _, s := range symptoms {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func symptomKey(symptoms []string) string {
	return strings.Join(symptoms, "+")
}
