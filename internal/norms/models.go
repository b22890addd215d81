// Package norms resolves which construction standards govern a valve
// configuration and validates configurations against the active norm pack.
// The package is fail-closed throughout: absence of data rejects, never
// silently passes.
package norms

import "imexspec/internal/materials"

// Type classifies a norm.
type Type string

const (
	TypeConstruction Type = "CONSTRUCTION"
	TypePerformance  Type = "PERFORMANCE"
	TypeMaterial     Type = "MATERIAL"
	TypeInterface    Type = "INTERFACE"
	TypeSafety       Type = "SAFETY"
)

// Severity grades a constraint violation.
type Severity string

const (
	SeverityBlock Severity = "BLOCK"
	SeverityWarn  Severity = "WARN"
	SeverityInfo  Severity = "INFO"
)

// Constraint is one conditional rule inside a norm: when every key in If
// matches the configuration, the effect applies.
type Constraint struct {
	Name        string              `json:"name"`
	If          map[string]any      `json:"if"`
	BlockValues []string            `json:"block_values,omitempty"`
	BlockFields map[string][]string `json:"block_fields,omitempty"`
	Require     []string            `json:"require,omitempty"`
	Severity    Severity            `json:"severity"`
	Message     string              `json:"message"`
	SourceNorm  string              `json:"source_norm,omitempty"`
}

// MaterialQualification records whether a material is qualified under a norm
// and, when it is, under which limits.
type MaterialQualification struct {
	Qualified   bool   `json:"qualified"`
	Reason      string `json:"reason,omitempty"`
	MaxHardness string `json:"max_hardness,omitempty"`
	MinTemp     string `json:"min_temp,omitempty"`
}

// Norm is one standard in the active catalog version. The wildcard "*" in
// ValveTypes or ServiceTypes matches everything.
type Norm struct {
	Code                   string                           `json:"code"`
	Title                  string                           `json:"title"`
	Type                   Type                             `json:"type"`
	Precedence             int                              `json:"precedence"`
	ValveTypes             []string                         `json:"valve_types"`
	ServiceTypes           []string                         `json:"service_types"`
	Domains                map[string][]string              `json:"domains,omitempty"`
	Constraints            []Constraint                     `json:"constraints,omitempty"`
	MaterialQualifications map[string]MaterialQualification `json:"material_qualifications,omitempty"`
	TriggerCondition       string                           `json:"trigger_condition,omitempty"`
}

// AppliesTo reports whether the norm covers the valve/service combination.
func (n Norm) AppliesTo(valveType, serviceType string) bool {
	return matches(n.ValveTypes, valveType) && matches(n.ServiceTypes, serviceType)
}

func matches(accepted []string, value string) bool {
	for _, a := range accepted {
		if a == "*" || a == value {
			return true
		}
	}
	return false
}

// SystemRequirements are the thresholds the health gate enforces over the
// active pack.
type SystemRequirements struct {
	MinNormsForOperation       int     `json:"min_norms_for_operation"`
	RequiredDomainCompleteness float64 `json:"required_domain_completeness"`
	AutoBlockThreshold         int     `json:"auto_block_threshold"`
}

// TorqueConstants parameterize the torque formula.
type TorqueConstants struct {
	PressureFactor float64 `json:"pressure_factor"`
	SizeExponent   float64 `json:"size_exponent"`
	SafetyMargin   float64 `json:"safety_margin"`
}

// Pack is one versioned norm catalog. Exactly one pack is ACTIVE at a time.
type Pack struct {
	Version            string             `json:"version"`
	Status             string             `json:"status"`
	Norms              map[string]Norm    `json:"norms"`
	SystemRequirements SystemRequirements `json:"system_requirements"`
	TorqueCoefficients map[string]float64 `json:"torque_coefficients"`
	TorqueConstants    TorqueConstants    `json:"base_torque_constants"`
}

// StandardRef is a norm reference for listings.
type StandardRef struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// RejectedStandard carries why a standard did not apply.
type RejectedStandard struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// ResolveResult is the resolver output. When IsValid is false every
// downstream step must stay blocked.
type ResolveResult struct {
	IsValid               bool                                    `json:"is_valid"`
	Reason                string                                  `json:"reason,omitempty"`
	ApplicableStandards   []string                                `json:"applicable_standards"`
	RejectedStandards     []RejectedStandard                      `json:"rejected_standards"`
	ConstructionStandards []StandardRef                           `json:"construction_standards"`
	PrimaryNorm           string                                  `json:"primary_norm,omitempty"`
	AutoSelected          bool                                    `json:"auto_selected"`
	AttributeDomains      map[string][]string                     `json:"attribute_domains,omitempty"`
	MaterialsByRole       map[materials.Role][]materials.Material `json:"materials_by_role,omitempty"`
}

// Issue is one validation finding against a configuration.
type Issue struct {
	Field      string   `json:"field"`
	Message    string   `json:"message"`
	SourceNorm string   `json:"source_norm,omitempty"`
	Severity   Severity `json:"severity"`
}

// ValidationResult is the outcome of checking a configuration against the
// primary norm and the triggered requirement norms.
type ValidationResult struct {
	IsValid         bool                `json:"is_valid"`
	Errors          []Issue             `json:"errors"`
	Warnings        []Issue             `json:"warnings"`
	ApplicableNorms []string            `json:"applicable_norms"`
	BlockedOptions  map[string][]string `json:"blocked_options"`
}
