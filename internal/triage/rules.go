package triage

import "carecompass/internal/model"

// RuleSet evaluates red-flag rules strictly in authored priority order.
// The first match wins and evaluation stops; a rule referencing an
// unanswered question is treated as not matched.
type RuleSet struct {
	rules []model.RedFlagRule
	byID  map[string]*model.RedFlagRule
}

// NewRuleSet validates and orders the red-flag rules.
func NewRuleSet(rules []model.RedFlagRule) (*RuleSet, error) {
	rs := &RuleSet{
		rules: make([]model.RedFlagRule, len(rules)),
		byID:  make(map[string]*model.RedFlagRule, len(rules)),
	}
	copy(rs.rules, rules)
	for i := range rs.rules {
		r := &rs.rules[i]
		if r.ID == "" {
			return nil, integrityErr("red flags", "rule without id")
		}
		if _, dup := rs.byID[r.ID]; dup {
			return nil, integrityErr("red flags", "duplicate rule id %q", r.ID)
		}
		if r.Message == "" {
			return nil, integrityErr("red flags", "rule %q has no warning message", r.ID)
		}
		if len(r.Conditions) == 0 {
			return nil, integrityErr("red flags", "rule %q has no conditions", r.ID)
		}
		for _, c := range r.Conditions {
			if c.QuestionID == "" {
				return nil, integrityErr("red flags", "rule %q has a condition without a question id", r.ID)
			}
			if len(c.AnyOf) == 0 && c.MinNumber == nil {
				return nil, integrityErr("red flags", "rule %q has a condition that can never match", r.ID)
			}
		}
		rs.byID[r.ID] = r
	}
	return rs, nil
}

// Rule looks up a rule by id.
func (rs *RuleSet) Rule(id string) (*model.RedFlagRule, bool) {
	r, ok := rs.byID[id]
	return r, ok
}

// Evaluate returns the first matching rule, or nil when no rule matches.
// Pure function of the answer set: identical answers always yield the
// identical first match.
func (rs *RuleSet) Evaluate(answers map[string]model.AnswerValue) *model.RuleMatch {
	for i := range rs.rules {
		r := &rs.rules[i]
		if ruleMatches(r, answers) {
			return &model.RuleMatch{
				RuleID:  r.ID,
				Name:    r.Name,
				Message: r.Message,
				Tier:    model.TierEmergency,
			}
		}
	}
	return nil
}

func ruleMatches(r *model.RedFlagRule, answers map[string]model.AnswerValue) bool {
	for _, c := range r.Conditions {
		v, ok := answers[c.QuestionID]
		if !ok {
			return false
		}
		if len(c.AnyOf) > 0 {
			matched := false
			for _, want := range c.AnyOf {
				if v.Contains(want) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
		if c.MinNumber != nil {
			if v.Number == nil || *v.Number < *c.MinNumber {
				return false
			}
		}
	}
	return true
}
