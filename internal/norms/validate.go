package norms

import (
	"context"
	"fmt"
	"sort"

	dErrors "imexspec/pkg/domain-errors"
	pstrings "imexspec/pkg/platform/strings"
)

// Configuration field keys shared with the rule engine and the publication
// validator.
const (
	FieldBodyMaterial = "MATERIAL_CORPO"
	FieldSeatMaterial = "MATERIAL_SEDE"
	FieldNace         = "NACE"
	FieldFireTest     = "FIRE_TEST"

	NormNACE     = "NACE_MR0175_2015"
	NormFireTest = "API_607_2016"
)

// ValidateConfiguration checks a configuration snapshot against the primary
// norm's constraints plus the requirement norms its flags trigger. An unknown
// primary norm is itself a blocking finding, never a pass.
func (r *Resolver) ValidateConfiguration(ctx context.Context, config map[string]any, primaryNormCode string) (ValidationResult, error) {
	pack, err := r.store.ActivePack(ctx)
	if err != nil {
		return ValidationResult{}, dErrors.Wrap(dErrors.CodeUnavailable, "norm catalog unavailable", err)
	}
	return validateAgainstPack(pack, config, primaryNormCode), nil
}

func validateAgainstPack(pack Pack, config map[string]any, primaryNormCode string) ValidationResult {
	result := ValidationResult{
		Errors:          []Issue{},
		Warnings:        []Issue{},
		ApplicableNorms: []string{primaryNormCode},
		BlockedOptions:  map[string][]string{},
	}

	primary, ok := pack.Norms[primaryNormCode]
	if !ok {
		return ValidationResult{
			Errors: []Issue{{
				Field:    "primaryNorm",
				Message:  "primary norm not found in active catalog",
				Severity: SeverityBlock,
			}},
			Warnings:        []Issue{},
			ApplicableNorms: []string{},
			BlockedOptions:  map[string][]string{},
		}
	}

	applyConstraints(&result, primary.Constraints, config)

	if boolValue(config[FieldNace]) {
		if nace, ok := pack.Norms[NormNACE]; ok {
			for material, qual := range nace.MaterialQualifications {
				if qual.Qualified {
					continue
				}
				result.BlockedOptions[FieldBodyMaterial] = append(result.BlockedOptions[FieldBodyMaterial], material)
				if config[FieldBodyMaterial] == material {
					result.Errors = append(result.Errors, Issue{
						Field:      FieldBodyMaterial,
						Message:    fmt.Sprintf("material %s não qualificado NACE: %s", material, qual.Reason),
						SourceNorm: NormNACE,
						Severity:   SeverityBlock,
					})
				}
			}
		}
		result.ApplicableNorms = append(result.ApplicableNorms, NormNACE)
	}

	if boolValue(config[FieldFireTest]) {
		if _, ok := pack.Norms[NormFireTest]; ok {
			result.BlockedOptions[FieldSeatMaterial] = append(result.BlockedOptions[FieldSeatMaterial], "PTFE", "NYLON")
			if seat, _ := config[FieldSeatMaterial].(string); seat == "PTFE" || seat == "NYLON" {
				result.Errors = append(result.Errors, Issue{
					Field:      FieldSeatMaterial,
					Message:    "teste a fogo não permite sede polimérica",
					SourceNorm: NormFireTest,
					Severity:   SeverityBlock,
				})
			}
		}
		result.ApplicableNorms = append(result.ApplicableNorms, NormFireTest)
	}

	result.ApplicableNorms = pstrings.DedupeAndTrim(result.ApplicableNorms)
	sortIssues(result.Errors)
	result.IsValid = len(result.Errors) == 0
	return result
}

func applyConstraints(result *ValidationResult, constraints []Constraint, config map[string]any) {
	for _, c := range constraints {
		if !conditionMet(c.If, config) {
			continue
		}

		for _, blocked := range c.BlockValues {
			if !configContainsValue(config, blocked) {
				continue
			}
			issue := Issue{Field: "material", Message: c.Message, SourceNorm: c.SourceNorm, Severity: c.Severity}
			if c.Severity == SeverityBlock {
				result.Errors = append(result.Errors, issue)
			} else {
				result.Warnings = append(result.Warnings, issue)
			}
		}

		for field, blockedValues := range c.BlockFields {
			result.BlockedOptions[field] = append(result.BlockedOptions[field], blockedValues...)
			current, _ := config[field].(string)
			if current == "" {
				continue
			}
			for _, blocked := range blockedValues {
				if current != blocked {
					continue
				}
				issue := Issue{Field: field, Message: c.Message, SourceNorm: c.SourceNorm, Severity: c.Severity}
				if c.Severity == SeverityBlock {
					result.Errors = append(result.Errors, issue)
				} else {
					result.Warnings = append(result.Warnings, issue)
				}
			}
		}

		for _, required := range c.Require {
			if isSet(config[required]) {
				continue
			}
			result.Errors = append(result.Errors, Issue{
				Field:      required,
				Message:    c.Message,
				SourceNorm: c.SourceNorm,
				Severity:   SeverityBlock,
			})
		}

		if c.SourceNorm != "" {
			result.ApplicableNorms = append(result.ApplicableNorms, c.SourceNorm)
		}
	}
}

func conditionMet(cond map[string]any, config map[string]any) bool {
	for key, want := range cond {
		if config[key] != want {
			return false
		}
	}
	return true
}

func configContainsValue(config map[string]any, value string) bool {
	for _, v := range config {
		if s, ok := v.(string); ok && s == value {
			return true
		}
	}
	return false
}

func boolValue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func isSet(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case string:
		return value != ""
	case bool:
		return value
	default:
		return true
	}
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Field < issues[j].Field
	})
}
