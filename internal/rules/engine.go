package rules

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	dErrors "imexspec/pkg/domain-errors"
	"imexspec/pkg/requestcontext"
)

// Engine runs one evaluation pass over a configuration snapshot: required
// fields, the declarative rule table in descending priority, then the fixed
// cross-field checks. The engine never mutates the configuration.
type Engine struct {
	store  Store
	logger *slog.Logger
}

// NewEngine builds an Engine over the given rule store.
func NewEngine(store Store, logger *slog.Logger) *Engine {
	return &Engine{store: store, logger: logger}
}

// Evaluate validates the configuration for the valve type. Values hold the
// current field values keyed by attribute code.
func (e *Engine) Evaluate(ctx context.Context, valveType string, values map[string]any) (Result, error) {
	if valveType == "" {
		return Result{}, dErrors.New(dErrors.CodeBadRequest, "valve type is required")
	}

	result := Result{
		Errors:      map[string]string{},
		Warnings:    map[string]string{},
		Suggestions: map[string]Suggestion{},
	}

	required, err := e.store.ListRequiredFields(ctx, valveType)
	if err != nil {
		e.logger.ErrorContext(ctx, "failed to load required fields",
			"valve_type", valveType,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return Result{}, dErrors.Wrap(dErrors.CodeUnavailable, "rule table unavailable", err)
	}
	for _, field := range required {
		if !hasValue(values[field.Code]) {
			result.Errors[field.Code] = fmt.Sprintf("%s é obrigatório", field.Name)
		}
	}

	tableRules, err := e.store.ListRules(ctx, valveType)
	if err != nil {
		e.logger.ErrorContext(ctx, "failed to load rule table",
			"valve_type", valveType,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return Result{}, dErrors.Wrap(dErrors.CodeUnavailable, "rule table unavailable", err)
	}

	for _, rule := range tableRules {
		if !rule.Condition.Matches(values[rule.Condition.Attribute]) {
			continue
		}
		applyRule(&result, rule, values)
	}

	result.AffectedFields = hideWins(result.AffectedFields)
	applyCrossFieldChecks(&result, values)

	result.IsValid = len(result.Errors) == 0
	return result, nil
}

func applyRule(result *Result, rule Rule, values map[string]any) {
	target := values[rule.TargetAttribute]

	switch rule.Action {
	case ActionShow, ActionEnable:
		result.AffectedFields = append(result.AffectedFields, AffectedField{
			Field:         rule.TargetAttribute,
			Action:        rule.Action,
			AllowedValues: rule.AllowedValues,
		})

	case ActionHide:
		result.AffectedFields = append(result.AffectedFields, AffectedField{
			Field:  rule.TargetAttribute,
			Action: ActionHide,
		})

	case ActionBlock, ActionValidate:
		if len(rule.AllowedValues) > 0 && hasValue(target) {
			if current, ok := target.(string); ok && !containsString(rule.AllowedValues, current) {
				msg := rule.ErrorMessage
				if msg == "" {
					msg = fmt.Sprintf("valor %q não permitido; opções: %s", current, strings.Join(rule.AllowedValues, ", "))
				}
				setIfAbsent(result.Errors, rule.TargetAttribute, msg)
			}
		}
		if rule.Action == ActionBlock {
			result.AffectedFields = append(result.AffectedFields, AffectedField{
				Field:         rule.TargetAttribute,
				Action:        ActionBlock,
				AllowedValues: rule.AllowedValues,
			})
		}

	case ActionRequire:
		if !hasValue(target) {
			msg := rule.ErrorMessage
			if msg == "" {
				msg = fmt.Sprintf("campo obrigatório quando %s", rule.Condition.Describe())
			}
			setIfAbsent(result.Errors, rule.TargetAttribute, msg)
		}
		result.AffectedFields = append(result.AffectedFields, AffectedField{
			Field:  rule.TargetAttribute,
			Action: ActionRequire,
		})

	case ActionSuggest:
		if rule.SuggestedValue != "" && !hasValue(target) {
			if _, exists := result.Suggestions[rule.TargetAttribute]; !exists {
				msg := rule.WarningMessage
				if msg == "" {
					msg = fmt.Sprintf("sugestão: %s", rule.SuggestedValue)
				}
				result.Suggestions[rule.TargetAttribute] = Suggestion{Value: rule.SuggestedValue, Message: msg}
			}
		}
	}

	if rule.WarningMessage != "" && rule.Action != ActionSuggest {
		if _, hasError := result.Errors[rule.TargetAttribute]; !hasError {
			setIfAbsent(result.Warnings, rule.TargetAttribute, rule.WarningMessage)
		}
	}
}

// hideWins drops show/enable entries for any field also targeted by a hide.
func hideWins(fields []AffectedField) []AffectedField {
	hidden := map[string]bool{}
	for _, f := range fields {
		if f.Action == ActionHide {
			hidden[f.Field] = true
		}
	}
	out := fields[:0]
	for _, f := range fields {
		if (f.Action == ActionShow || f.Action == ActionEnable) && hidden[f.Field] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Fixed cross-field checks: embedded engineering knowledge evaluated on every
// pass regardless of the rule table contents.
func applyCrossFieldChecks(result *Result, values map[string]any) {
	sour := boolField(values, "sour_service") || boolField(values, "nace_compliant")

	if sour {
		body, _ := values["material_corpo"].(string)
		switch body {
		case "ASTM_A216_WCB", "ASTM_A105", "ASTM_A106":
			setIfAbsent(result.Errors, "material_corpo",
				"Material não qualificado para serviço NACE/Sour. Use Inox ou Duplex.")
		}
	}

	if boolField(values, "fire_safe") {
		if seat, _ := values["material_sede"].(string); seat == "PTFE" {
			setIfAbsent(result.Warnings, "material_sede",
				"PTFE pode não atender requisitos fire safe completos. Considere RPTFE ou Metal.")
		}
	}

	fluid, _ := values["fluido"].(string)
	service, _ := values["servico"].(string)
	if service == "AGUA_MAR" || strings.Contains(strings.ToLower(fluid), "água do mar") {
		body, _ := values["material_corpo"].(string)
		if body != "" && !isSeawaterGrade(body) {
			setIfAbsent(result.Warnings, "material_corpo",
				"Para água do mar, recomenda-se material Duplex ou Inox 316.")
		}
	}

	if temp, ok := numericField(values, "temperatura_operacao"); ok && temp > 200 {
		if seat, _ := values["material_sede"].(string); seat == "PTFE" || seat == "RPTFE" {
			setIfAbsent(result.Errors, "material_sede",
				"PTFE não recomendado para temperaturas acima de 200°C. Use PEEK ou Metal.")
		}
	}

	if strings.Contains(strings.ToLower(fluid), "h2s") || boolField(values, "sour_service") {
		if !boolField(values, "nace_compliant") {
			setIfAbsent(result.Warnings, "nace_compliant",
				"Fluido contém H2S. Conformidade NACE MR0175 é recomendada.")
		}
	}
}

func isSeawaterGrade(body string) bool {
	for _, grade := range []string{"ASTM_A995_4A", "ASTM_A995_5A", "ASTM_A995_6A", "ASTM_A351_CF8M", "ASTM_A351_CF3M"} {
		if body == grade {
			return true
		}
	}
	return false
}

func hasValue(v any) bool {
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

func boolField(values map[string]any, key string) bool {
	b, ok := values[key].(bool)
	return ok && b
}

func numericField(values map[string]any, key string) (float64, bool) {
	switch v := values[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func setIfAbsent(m map[string]string, key, msg string) {
	if _, exists := m[key]; !exists {
		m[key] = msg
	}
}
