package norms

import (
	"context"
	"fmt"
	"sync"

	"imexspec/pkg/platform/sentinel"
)

// InMemoryStore serves norm packs from memory. Exactly one pack may be ACTIVE.
type InMemoryStore struct {
	mu    sync.RWMutex
	packs []Pack
}

// NewInMemoryStore builds a store holding the built-in starter pack.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{packs: []Pack{starterPack()}}
}

// NewInMemoryStoreWithPacks builds a store over the given packs. Used by
// tests to exercise degraded pack states.
func NewInMemoryStoreWithPacks(packs ...Pack) *InMemoryStore {
	return &InMemoryStore{packs: packs}
}

func (s *InMemoryStore) ActivePack(_ context.Context) (Pack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active []Pack
	for _, p := range s.packs {
		if p.Status == "ACTIVE" {
			active = append(active, p)
		}
	}
	switch len(active) {
	case 1:
		return active[0], nil
	case 0:
		return Pack{}, fmt.Errorf("no active norm pack: %w", sentinel.ErrNotFound)
	default:
		return Pack{}, fmt.Errorf("%d active norm packs, want exactly 1: %w", len(active), sentinel.ErrInvalidState)
	}
}

// ActivePackCount reports how many packs are marked ACTIVE. The health gate
// uses it to detect the zero and multiple cases without tripping on the
// ActivePack error path.
func (s *InMemoryStore) ActivePackCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, p := range s.packs {
		if p.Status == "ACTIVE" {
			count++
		}
	}
	return count, nil
}

// Activate installs p as the single ACTIVE pack, superseding any other.
func (s *InMemoryStore) Activate(p Pack) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.packs {
		if s.packs[i].Status == "ACTIVE" {
			s.packs[i].Status = "SUPERSEDED"
		}
	}
	p.Status = "ACTIVE"
	s.packs = append(s.packs, p)
}

func starterPack() Pack {
	return Pack{
		Version: "2025.1",
		Status:  "ACTIVE",
		SystemRequirements: SystemRequirements{
			MinNormsForOperation:       5,
			RequiredDomainCompleteness: 100,
			AutoBlockThreshold:         3,
		},
		TorqueCoefficients: map[string]float64{
			"PTFE":     0.12,
			"RPTFE":    0.13,
			"PEEK":     0.14,
			"NYLON":    0.13,
			"DEVLON":   0.14,
			"ENP":      0.16,
			"GRAFITE":  0.17,
			"METAL":    0.18,
			"INCONEL":  0.19,
			"STELLITE": 0.20,
		},
		TorqueConstants: TorqueConstants{
			PressureFactor: 0.008,
			SizeExponent:   2.5,
			SafetyMargin:   1.15,
		},
		Norms: map[string]Norm{
			"ABNT_NBR_15827": {
				Code:         "ABNT_NBR_15827",
				Title:        "ABNT NBR 15827 - Válvulas para petróleo e gás",
				Type:         TypeConstruction,
				Precedence:   1,
				ValveTypes:   []string{"ESFERA", "ESFERA_RED", "GAVETA", "GLOBO", "RETENCAO"},
				ServiceTypes: []string{"PIPELINE", "REFINARIA", "PLATAFORMA"},
				Domains: map[string][]string{
					"PRESSURE_CLASS": {"150", "300", "600", "900", "1500", "2500"},
					"DIAMETER":       {"0.5", "0.75", "1", "1.5", "2", "3", "4", "6", "8", "10", "12", "14", "16", "20", "24"},
					"END_CONNECTION": {"FLANGEADO", "FLANGEADO_RF", "FLANGEADO_RTJ", "BW", "SW"},
					"MATERIAL_CORPO": {"ASTM_A216_WCB", "ASTM_A352_LCB", "ASTM_A352_LCC", "ASTM_A351_CF8M", "ASTM_A351_CF3M", "ASTM_A995_4A", "ASTM_A995_5A"},
				},
				Constraints: []Constraint{
					{
						Name:       "seawater_duplex",
						If:         map[string]any{"SERVICE_FLUID": "AGUA_MAR"},
						BlockFields: map[string][]string{
							"MATERIAL_CORPO": {"ASTM_A216_WCB", "ASTM_A105"},
						},
						Severity:   SeverityWarn,
						Message:    "Água do mar requer duplex ou inox 316",
						SourceNorm: "ABNT_NBR_15827",
					},
				},
			},
			"API_6D": {
				Code:         "API_6D",
				Title:        "API 6D - Pipeline valves",
				Type:         TypeConstruction,
				Precedence:   2,
				ValveTypes:   []string{"ESFERA", "ESFERA_RED", "GAVETA", "GAVETA_EXP", "RETENCAO"},
				ServiceTypes: []string{"PIPELINE", "TRANSPORTE"},
				Domains: map[string][]string{
					"PRESSURE_CLASS": {"150", "300", "600", "900", "1500", "2500"},
					"DIAMETER":       {"2", "3", "4", "6", "8", "10", "12", "14", "16", "20", "24", "30", "36"},
					"END_CONNECTION": {"FLANGEADO", "FLANGEADO_RF", "FLANGEADO_RTJ", "BW"},
					"MATERIAL_CORPO": {"ASTM_A216_WCB", "ASTM_A352_LCC", "ASTM_A351_CF8M", "ASTM_A995_4A", "ASTM_A995_5A"},
				},
			},
			"ISO_14313": {
				Code:         "ISO_14313",
				Title:        "ISO 14313 - Pipeline valves",
				Type:         TypeConstruction,
				Precedence:   3,
				ValveTypes:   []string{"ESFERA", "GAVETA", "RETENCAO"},
				ServiceTypes: []string{"PIPELINE", "TRANSPORTE"},
				Domains: map[string][]string{
					"PRESSURE_CLASS": {"150", "300", "600", "900", "1500"},
					"DIAMETER":       {"2", "3", "4", "6", "8", "10", "12", "16", "20", "24"},
					"END_CONNECTION": {"FLANGEADO", "FLANGEADO_RF", "BW"},
					"MATERIAL_CORPO": {"ASTM_A216_WCB", "ASTM_A351_CF8M"},
				},
			},
			"API_6A": {
				Code:         "API_6A",
				Title:        "API 6A - Wellhead equipment",
				Type:         TypeConstruction,
				Precedence:   4,
				ValveTypes:   []string{"GAVETA", "GAVETA_EXP", "ESFERA"},
				ServiceTypes: []string{"WELLHEAD"},
				Domains: map[string][]string{
					"PRESSURE_CLASS": {"2000PSI", "3000PSI", "5000PSI", "10000PSI"},
					"DIAMETER":       {"1.5", "2", "3", "4"},
					"END_CONNECTION": {"FLANGEADO_RTJ"},
					"MATERIAL_CORPO": {"ASTM_A105", "ASTM_A182_F316", "ASTM_A995_5A", "INCONEL_625"},
				},
			},
			"API_600": {
				Code:         "API_600",
				Title:        "API 600 - Steel gate valves",
				Type:         TypeConstruction,
				Precedence:   5,
				ValveTypes:   []string{"GAVETA"},
				ServiceTypes: []string{"REFINARIA", "PIPELINE"},
				Domains: map[string][]string{
					"PRESSURE_CLASS": {"150", "300", "600", "900", "1500", "2500"},
					"DIAMETER":       {"2", "3", "4", "6", "8", "10", "12", "16", "20", "24"},
					"END_CONNECTION": {"FLANGEADO", "FLANGEADO_RF", "FLANGEADO_RTJ", "BW"},
					"MATERIAL_CORPO": {"ASTM_A216_WCB", "ASTM_A351_CF8M", "ASTM_A352_LCB"},
				},
			},
			"API_602": {
				Code:         "API_602",
				Title:        "API 602 - Compact steel gate valves",
				Type:         TypeConstruction,
				Precedence:   6,
				ValveTypes:   []string{"GAVETA", "GLOBO", "RETENCAO_PIST"},
				ServiceTypes: []string{"REFINARIA"},
				Domains: map[string][]string{
					"PRESSURE_CLASS": {"800", "1500", "2500"},
					"DIAMETER":       {"0.5", "0.75", "1", "1.5", "2"},
					"END_CONNECTION": {"SW", "NPT", "FLANGEADO_RF"},
					"MATERIAL_CORPO": {"ASTM_A105", "ASTM_A182_F316", "ASTM_A182_F304"},
				},
			},
			"NACE_MR0175_2015": {
				Code:             "NACE_MR0175_2015",
				Title:            "NACE MR0175 / ISO 15156 - Sour service materials",
				Type:             TypeMaterial,
				Precedence:       10,
				ValveTypes:       []string{"*"},
				ServiceTypes:     []string{"*"},
				TriggerCondition: "NACE",
				MaterialQualifications: map[string]MaterialQualification{
					"ASTM_A216_WCB":  {Qualified: true, MaxHardness: "22 HRC"},
					"ASTM_A352_LCB":  {Qualified: true, MaxHardness: "22 HRC"},
					"ASTM_A352_LCC":  {Qualified: true, MaxHardness: "22 HRC"},
					"ASTM_A105":      {Qualified: true, MaxHardness: "22 HRC"},
					"ASTM_A351_CF8M": {Qualified: true},
					"ASTM_A351_CF3M": {Qualified: true},
					"ASTM_A995_4A":   {Qualified: true, MaxHardness: "28 HRC"},
					"ASTM_A995_5A":   {Qualified: true, MaxHardness: "32 HRC"},
					"ASTM_A182_F304": {Qualified: false, Reason: "Inox 304 não qualificado para serviço sour"},
					"ASTM_A182_F6A":  {Qualified: false, Reason: "Inox martensítico excede dureza máxima"},
					"INCONEL_625":    {Qualified: true},
					"MONEL_400":      {Qualified: true},
				},
			},
			"API_607_2016": {
				Code:             "API_607_2016",
				Title:            "API 607 - Fire test for quarter-turn valves",
				Type:             TypeSafety,
				Precedence:       11,
				ValveTypes:       []string{"*"},
				ServiceTypes:     []string{"*"},
				TriggerCondition: "FIRE_TEST",
				Constraints: []Constraint{
					{
						Name:        "no_polymer_seats",
						If:          map[string]any{"FIRE_TEST": true},
						BlockFields: map[string][]string{"MATERIAL_SEDE": {"PTFE", "NYLON"}},
						Severity:    SeverityBlock,
						Message:     "Teste a fogo não permite sede polimérica",
						SourceNorm:  "API_607_2016",
					},
				},
			},
			"ISO_15848_1": {
				Code:             "ISO_15848_1",
				Title:            "ISO 15848-1 - Fugitive emissions",
				Type:             TypePerformance,
				Precedence:       12,
				ValveTypes:       []string{"*"},
				ServiceTypes:     []string{"*"},
				TriggerCondition: "LOW_EMISSION",
			},
			"IEC_61508": {
				Code:             "IEC_61508",
				Title:            "IEC 61508 - Functional safety (SIL)",
				Type:             TypeSafety,
				Precedence:       13,
				ValveTypes:       []string{"*"},
				ServiceTypes:     []string{"*"},
				TriggerCondition: "SIL",
			},
			"ASME_B16_34": {
				Code:         "ASME_B16_34",
				Title:        "ASME B16.34 - Pressure-temperature ratings",
				Type:         TypeInterface,
				Precedence:   14,
				ValveTypes:   []string{"*"},
				ServiceTypes: []string{"*"},
			},
		},
	}
}
