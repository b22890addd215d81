package rules

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore serves the built-in rule table.
type InMemoryStore struct {
	mu       sync.RWMutex
	rules    []Rule
	required map[string][]RequiredField
}

// NewInMemoryStore builds a store with the built-in rules and required
// fields.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		rules:    builtinRules(),
		required: builtinRequiredFields(),
	}
}

// NewInMemoryStoreWithRules builds a store with an explicit rule table. Used
// by tests.
func NewInMemoryStoreWithRules(rules []Rule, required map[string][]RequiredField) *InMemoryStore {
	return &InMemoryStore{rules: rules, required: required}
}

func (s *InMemoryStore) ListRules(_ context.Context, valveType string) ([]Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Rule
	for _, r := range s.rules {
		if !r.Active {
			continue
		}
		if r.ValveType != "" && r.ValveType != valveType {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out, nil
}

func (s *InMemoryStore) ListRequiredFields(_ context.Context, valveType string) ([]RequiredField, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields := append([]RequiredField{}, s.required["*"]...)
	fields = append(fields, s.required[valveType]...)
	return fields, nil
}

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func builtinRules() []Rule {
	return []Rule{
		{
			ID:              "manual-hides-actuator-params",
			Condition:       Condition{Attribute: "tipo_acionamento", StringValue: strp("MANUAL")},
			TargetAttribute: "torque_atuador",
			Action:          ActionHide,
			Priority:        90,
			Active:          true,
		},
		{
			ID:              "pneumatic-shows-torque",
			Condition:       Condition{Attribute: "tipo_acionamento", StringValue: strp("PNEUMATICO_SA")},
			TargetAttribute: "torque_atuador",
			Action:          ActionShow,
			Priority:        80,
			Active:          true,
		},
		{
			ID:              "pneumatic-requires-torque",
			Condition:       Condition{Attribute: "tipo_acionamento", StringValue: strp("PNEUMATICO_SA")},
			TargetAttribute: "torque_atuador",
			Action:          ActionRequire,
			ErrorMessage:    "Torque do atuador é obrigatório para acionamento pneumático",
			Priority:        79,
			Active:          true,
		},
		{
			ID:              "flanged-requires-face",
			Condition:       Condition{Attribute: "tipo_extremidade", StringValue: strp("FLANGEADO")},
			TargetAttribute: "face_flange",
			Action:          ActionRequire,
			ErrorMessage:    "Face do flange é obrigatória para extremidade flangeada",
			Priority:        70,
			Active:          true,
		},
		{
			ID:              "threaded-blocks-large-bore",
			Condition:       Condition{Attribute: "tipo_extremidade", StringValue: strp("NPT")},
			TargetAttribute: "diametro",
			Action:          ActionBlock,
			AllowedValues:   []string{"0.5", "0.75", "1", "1.5", "2"},
			ErrorMessage:    "Extremidade rosqueada limitada a 2 polegadas",
			Priority:        65,
			Active:          true,
		},
		{
			ID:              "cryo-validates-body",
			Condition:       Condition{Attribute: "servico", StringValue: strp("CRIOGENICO")},
			TargetAttribute: "material_corpo",
			Action:          ActionValidate,
			AllowedValues:   []string{"ASTM_A352_LCB", "ASTM_A352_LCC", "ASTM_A351_CF8M", "ASTM_A351_CF3M"},
			ErrorMessage:    "Serviço criogênico requer material de baixa temperatura",
			Priority:        60,
			Active:          true,
		},
		{
			ID:              "nace-suggests-duplex-stem",
			Condition:       Condition{Attribute: "nace_compliant", BoolValue: boolp(true)},
			TargetAttribute: "material_haste",
			Action:          ActionSuggest,
			SuggestedValue:  "ASTM_A182_F51",
			WarningMessage:  "Para serviço NACE, haste em duplex F51 é recomendada",
			Priority:        50,
			Active:          true,
		},
		{
			ID:              "ball-valve-suggests-trunnion-topflange",
			ValveType:       "ESFERA",
			Condition:       Condition{Attribute: "tipo_acionamento", StringValue: strp("PNEUMATICO_DA")},
			TargetAttribute: "flange_topo",
			Action:          ActionRequire,
			ErrorMessage:    "Flange de topo ISO 5211 é obrigatório com atuador pneumático",
			Priority:        40,
			Active:          true,
		},
	}
}

func builtinRequiredFields() map[string][]RequiredField {
	return map[string][]RequiredField{
		"*": {
			{Code: "diametro", Name: "Diâmetro"},
			{Code: "classe_pressao", Name: "Classe de pressão"},
			{Code: "tipo_extremidade", Name: "Tipo de extremidade"},
		},
		"ESFERA": {
			{Code: "passagem", Name: "Passagem (plena/reduzida)"},
		},
		"GLOBO": {
			{Code: "curso_haste", Name: "Curso da haste"},
		},
	}
}
