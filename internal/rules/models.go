// Package rules evaluates the declarative field/value rule table plus a fixed
// set of cross-field engineering checks over a configuration snapshot.
package rules

import "fmt"

// Action is the effect a matched rule applies to its target attribute.
type Action string

const (
	ActionShow     Action = "show"
	ActionHide     Action = "hide"
	ActionEnable   Action = "enable"
	ActionBlock    Action = "block"
	ActionRequire  Action = "require"
	ActionSuggest  Action = "suggest"
	ActionValidate Action = "validate"
)

// Condition is the trigger of a rule: the named attribute must equal exactly
// one of the typed values. The tagged variant keeps string and boolean
// comparisons distinct instead of coercing booleans through display strings.
type Condition struct {
	Attribute   string  `json:"attribute"`
	StringValue *string `json:"string_value,omitempty"`
	BoolValue   *bool   `json:"bool_value,omitempty"`
}

// Matches reports whether the configuration value satisfies the condition.
func (c Condition) Matches(value any) bool {
	switch {
	case c.StringValue != nil:
		s, ok := value.(string)
		return ok && s == *c.StringValue
	case c.BoolValue != nil:
		b, ok := value.(bool)
		return ok && b == *c.BoolValue
	default:
		return false
	}
}

// Describe renders the condition for default error messages.
func (c Condition) Describe() string {
	switch {
	case c.StringValue != nil:
		return fmt.Sprintf("%s = %s", c.Attribute, *c.StringValue)
	case c.BoolValue != nil:
		return fmt.Sprintf("%s = %t", c.Attribute, *c.BoolValue)
	default:
		return c.Attribute
	}
}

// Rule is one row of the declarative rule table. ValveType empty applies to
// all valve types.
type Rule struct {
	ID              string    `json:"id"`
	ValveType       string    `json:"valve_type,omitempty"`
	Condition       Condition `json:"condition"`
	TargetAttribute string    `json:"target_attribute"`
	Action          Action    `json:"action"`
	AllowedValues   []string  `json:"allowed_values,omitempty"`
	SuggestedValue  string    `json:"suggested_value,omitempty"`
	ErrorMessage    string    `json:"error_message,omitempty"`
	WarningMessage  string    `json:"warning_message,omitempty"`
	Priority        int       `json:"priority"`
	Active          bool      `json:"active"`
}

// RequiredField is an attribute that must be set for a valve type before the
// rule table even runs.
type RequiredField struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Suggestion is a non-binding proposed value for an unset field.
type Suggestion struct {
	Value   string `json:"value"`
	Message string `json:"message"`
}

// AffectedField records a visibility/locking effect for the UI.
type AffectedField struct {
	Field         string   `json:"field"`
	Action        Action   `json:"action"`
	AllowedValues []string `json:"allowed_values,omitempty"`
}

// Result is the engine output for one evaluation pass.
type Result struct {
	IsValid        bool                  `json:"is_valid"`
	Errors         map[string]string     `json:"errors"`
	Warnings       map[string]string     `json:"warnings"`
	Suggestions    map[string]Suggestion `json:"suggestions"`
	AffectedFields []AffectedField       `json:"affected_fields"`
}
