package model

// RuleCondition matches one answered question. A condition referencing an
// unanswered question never matches.
type RuleCondition struct {
	QuestionID string   `json:"questionId"`
	AnyOf      []string `json:"anyOf,omitempty"`     // choice answers: at least one selected
	MinNumber  *float64 `json:"minNumber,omitempty"` // number answers: value >= minNumber
}

// RedFlagRule forces the Emergency Department tier when all of its
// conditions hold. Rules are pure functions of the answer set.
type RedFlagRule struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Message    string          `json:"message"`
	Conditions []RuleCondition `json:"conditions"`
}

// RuleMatch reports the first red-flag rule that matched.
type RuleMatch struct {
	RuleID  string `json:"ruleId"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Tier    Tier   `json:"tier"`
}
