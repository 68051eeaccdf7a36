// Package symptoms extracts symptom and medical-history categories from
// free text so patients can describe complaints in their own words. The
// triage core never sees raw text, only the validated category tokens
// produced here.
package symptoms

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

// OtherSymptom is returned when no symptom keyword matches at all.
const OtherSymptom = "other"

// Parser extracts category tokens from free text.
type Parser interface {
	ParseSymptoms(ctx context.Context, text string) ([]string, error)
	ParseHistory(ctx context.Context, text string) ([]string, error)
}

// KeywordParser matches case-insensitive keyword patterns against the
// text. Deterministic and offline; the default extractor.
type KeywordParser struct {
	symptoms map[string][]*regexp.Regexp
	history  map[string][]*regexp.Regexp
}

// NewKeywordParser compiles the keyword tables once.
func NewKeywordParser() *KeywordParser {
	return &KeywordParser{
		symptoms: compile(symptomKeywords),
		history:  compile(historyKeywords),
	}
}

func compile(table map[string][]string) map[string][]*regexp.Regexp {
	out := make(map[string][]*regexp.Regexp, len(table))
	for token, patterns := range table {
		compiled := make([]*regexp.Regexp, len(patterns))
		for i, p := range patterns {
			compiled[i] = regexp.MustCompile(p)
		}
		out[token] = compiled
	}
	return out
}

// ParseSymptoms maps a complaint description to symptom category tokens,
// sorted for determinism. Text that matches nothing maps to "other".
func (p *KeywordParser) ParseSymptoms(_ context.Context, text string) ([]string, error) {
	matched := match(p.symptoms, text)
	if len(matched) == 0 {
		return []string{OtherSymptom}, nil
	}
	return matched, nil
}

// ParseHistory maps a medical-history description to comorbidity tokens.
// "none" and friends parse to an empty result.
func (p *KeywordParser) ParseHistory(_ context.Context, text string) ([]string, error) {
	if noHistoryAnswers[strings.ToLower(strings.TrimSpace(text))] {
		return nil, nil
	}
	return match(p.history, text), nil
}

func match(table map[string][]*regexp.Regexp, text string) []string {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return nil
	}
	var out []string
	for token, patterns := range table {
		for _, re := range patterns {
			if re.MatchString(lower) {
				out = append(out, token)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// Vocabulary lists the symptom tokens the parsers can produce, sorted.
func Vocabulary() []string {
	out := make([]string, 0, len(symptomKeywords)+1)
	for token := range symptomKeywords {
		out = append(out, token)
	}
	out = append(out, OtherSymptom)
	sort.Strings(out)
	return out
}

// HistoryVocabulary lists the comorbidity tokens, sorted.
func HistoryVocabulary() []string {
	out := make([]string, 0, len(historyKeywords))
	for token := range historyKeywords {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}
