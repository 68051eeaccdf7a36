package triage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"carecompass/internal/model"
)

// Default file names inside the reference data directory.
const (
	BankFile         = "questions.json"
	RedFlagFile      = "red_flags.json"
	WeightsFile      = "acuity_weights.json"
	EvidenceFile     = "evidence.json"
	WarningSignsFile = "warning_signs.json"
)

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return integrityErr(filepath.Base(path), "%v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return integrityErr(filepath.Base(path), "malformed JSON: %v", err)
	}
	return nil
}

// LoadBank reads and validates a question bank definition file.
func LoadBank(path string) (*QuestionBank, error) {
	var def BankDefinition
	if err := readJSON(path, &def); err != nil {
		return nil, err
	}
	return NewQuestionBank(def)
}

// LoadRules reads and validates a red-flag rules file.
func LoadRules(path string) (*RuleSet, error) {
	var rules []model.RedFlagRule
	if err := readJSON(path, &rules); err != nil {
		return nil, err
	}
	return NewRuleSet(rules)
}

// LoadWeights reads the acuity weight table.
func LoadWeights(path string) (WeightTable, error) {
	var table WeightTable
	if err := readJSON(path, &table); err != nil {
		return WeightTable{}, err
	}
	return table, nil
}

// LoadEvidence reads the outcome evidence dataset from a JSON file, for
// deployments without a reference database.
func LoadEvidence(path string) ([]model.EvidenceRecord, error) {
	var records []model.EvidenceRecord
	if err := readJSON(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

type warningSignsFile struct {
	Emergency   []string `json:"emergency"`
	UrgentCare  []string `json:"urgentCare"`
	PrimaryCare []string `json:"primaryCare"`
}

// LoadWarningSigns reads the static per-tier warning-signs lists.
func LoadWarningSigns(path string) (WarningSigns, error) {
	var f warningSignsFile
	if err := readJSON(path, &f); err != nil {
		return nil, err
	}
	return WarningSigns{
		model.TierEmergency:   f.Emergency,
		model.TierUrgentCare:  f.UrgentCare,
		model.TierPrimaryCare: f.PrimaryCare,
	}, nil
}

// LoadEngine assembles a full engine from the reference data directory.
// When evidence is non-nil it replaces the evidence file (records pulled
// from the reference database at boot). Any malformed input aborts with
// a DataIntegrityError; the process must not start half-configured.
func LoadEngine(dir string, evidence []model.EvidenceRecord) (*Engine, error) {
	bank, err := LoadBank(filepath.Join(dir, BankFile))
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	rules, err := LoadRules(filepath.Join(dir, RedFlagFile))
	if err != nil {
		return nil, fmt.Errorf("load red flags: %w", err)
	}
	table, err := LoadWeights(filepath.Join(dir, WeightsFile))
	if err != nil {
		return nil, fmt.Errorf("load acuity weights: %w", err)
	}
	scorer, err := NewScorer(table, bank)
	if err != nil {
		return nil, fmt.Errorf("load acuity weights: %w", err)
	}
	if evidence == nil {
		evidence, err = LoadEvidence(filepath.Join(dir, EvidenceFile))
		if err != nil {
			return nil, fmt.Errorf("load evidence: %w", err)
		}
	}
	index, err := NewEvidenceIndex(evidence)
	if err != nil {
		return nil, fmt.Errorf("load evidence: %w", err)
	}
	signs, err := LoadWarningSigns(filepath.Join(dir, WarningSignsFile))
	if err != nil {
		return nil, fmt.Errorf("load warning signs: %w", err)
	}
	assembler, err := NewAssembler(signs)
	if err != nil {
		return nil, fmt.Errorf("load warning signs: %w", err)
	}
	return NewEngine(bank, rules, scorer, index, assembler), nil
}
