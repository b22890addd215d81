package materials

import (
	"context"
	"fmt"
	"sync"

	"imexspec/pkg/platform/sentinel"
)

// InMemoryStore serves the built-in material compatibility data, keyed by
// construction standard.
type InMemoryStore struct {
	mu     sync.RWMutex
	byNorm map[string]map[Role][]Material
}

// NewInMemoryStore builds a store populated with the built-in compatibility
// tables.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byNorm: builtinCompatibility()}
}

func (s *InMemoryStore) ListByRole(_ context.Context, normCode string, role Role) ([]Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles, ok := s.byNorm[normCode]
	if !ok {
		return nil, fmt.Errorf("norm %q has no material compatibility data: %w", normCode, sentinel.ErrNotFound)
	}
	list, ok := roles[role]
	if !ok {
		return nil, fmt.Errorf("role %q under norm %q: %w", role, normCode, sentinel.ErrNotFound)
	}
	return append([]Material{}, list...), nil
}

func (s *InMemoryStore) FindByCode(_ context.Context, normCode string, role Role, code string) (Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.byNorm[normCode][role] {
		if m.Code == code {
			return m, nil
		}
	}
	return Material{}, fmt.Errorf("material %q for role %q under norm %q: %w", code, role, normCode, sentinel.ErrNotFound)
}

func ptr(v float64) *float64 { return &v }

// qualifications is the master table: every material the catalog knows, with
// its service qualification flags. Per-norm tables below select from it.
func qualifications() map[Role][]Material {
	return map[Role][]Material{
		RoleBody: {
			{Code: "ASTM_A216_WCB", Name: "ASTM A216 WCB - Aço Carbono", Role: RoleBody, NaceQualified: true, NaceHardnessMaxHRC: ptr(22), FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "ASTM_A352_LCB", Name: "ASTM A352 LCB - Baixa Temperatura", Role: RoleBody, NaceQualified: true, NaceHardnessMaxHRC: ptr(22), NaceTemperatureMinC: ptr(-46), FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "ASTM_A352_LCC", Name: "ASTM A352 LCC - Baixa Temperatura", Role: RoleBody, NaceQualified: true, NaceHardnessMaxHRC: ptr(22), NaceTemperatureMinC: ptr(-46), FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "ASTM_A351_CF8M", Name: "ASTM A351 CF8M - Inox 316", Role: RoleBody, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "ASTM_A351_CF3M", Name: "ASTM A351 CF3M - Inox 316L", Role: RoleBody, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "ASTM_A995_4A", Name: "ASTM A995 4A - Duplex", Role: RoleBody, NaceQualified: true, NaceHardnessMaxHRC: ptr(28), FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "ASTM_A995_5A", Name: "ASTM A995 5A - Super Duplex", Role: RoleBody, NaceQualified: true, NaceHardnessMaxHRC: ptr(32), FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "ASTM_A105", Name: "ASTM A105 - Aço Carbono Forjado", Role: RoleBody, NaceQualified: true, NaceHardnessMaxHRC: ptr(22), FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "ASTM_A182_F316", Name: "ASTM A182 F316 - Inox 316 Forjado", Role: RoleBody, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "ASTM_A182_F304", Name: "ASTM A182 F304 - Inox 304 Forjado", Role: RoleBody, NaceQualified: false, FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "INCONEL_625", Name: "Inconel 625", Role: RoleBody, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "MONEL_400", Name: "Monel 400", Role: RoleBody, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true},
		},
		RoleObturator: {
			{Code: "ASTM_A182_F6A", Name: "ASTM A182 F6a - Inox 410", Role: RoleObturator, NaceQualified: false, NaceHardnessMaxHRC: ptr(22), FireTestCompatible: true, LowEmissionCompat: true, CompatibleWith: []string{"PTFE", "RPTFE", "NYLON", "DEVLON", "METAL", "STELLITE"}},
			{Code: "ASTM_A182_F316", Name: "ASTM A182 F316 - Inox 316", Role: RoleObturator, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true, CompatibleWith: []string{"PTFE", "RPTFE", "PEEK", "NYLON", "DEVLON", "METAL", "STELLITE", "GRAFITE"}},
			{Code: "ENP_WCB", Name: "WCB com ENP (Nickel Plating)", Role: RoleObturator, NaceQualified: true, NaceHardnessMaxHRC: ptr(22), FireTestCompatible: true, LowEmissionCompat: true, CompatibleWith: []string{"PTFE", "RPTFE", "NYLON", "DEVLON", "ENP"}},
			{Code: "STELLITE_OVERLAY", Name: "Stellite Overlay", Role: RoleObturator, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true, CompatibleWith: []string{"METAL", "STELLITE", "GRAFITE", "INCONEL"}},
			{Code: "INCONEL_625", Name: "Inconel 625", Role: RoleObturator, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true, CompatibleWith: []string{"METAL", "STELLITE", "INCONEL", "GRAFITE", "PEEK"}},
		},
		RoleSeat: {
			{Code: "PTFE", Name: "PTFE", Role: RoleSeat, NaceQualified: true, FireTestCompatible: false, LowEmissionCompat: true, CompatibleWith: []string{"ASTM_A182_F6A", "ASTM_A182_F316", "ENP_WCB"}},
			{Code: "RPTFE", Name: "RPTFE (Reforçado)", Role: RoleSeat, NaceQualified: true, FireTestCompatible: false, LowEmissionCompat: true, CompatibleWith: []string{"ASTM_A182_F6A", "ASTM_A182_F316", "ENP_WCB"}},
			{Code: "PEEK", Name: "PEEK", Role: RoleSeat, NaceQualified: true, FireTestCompatible: false, LowEmissionCompat: true, CompatibleWith: []string{"ASTM_A182_F316", "INCONEL_625"}},
			{Code: "NYLON", Name: "Nylon", Role: RoleSeat, NaceQualified: true, FireTestCompatible: false, LowEmissionCompat: false, CompatibleWith: []string{"ASTM_A182_F6A", "ASTM_A182_F316", "ENP_WCB"}},
			{Code: "DEVLON", Name: "Devlon", Role: RoleSeat, NaceQualified: true, FireTestCompatible: false, LowEmissionCompat: false, CompatibleWith: []string{"ASTM_A182_F6A", "ASTM_A182_F316", "ENP_WCB"}},
			{Code: "METAL", Name: "Metal-Metal", Role: RoleSeat, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true, CompatibleWith: []string{"STELLITE_OVERLAY", "INCONEL_625", "ASTM_A182_F6A", "ASTM_A182_F316"}},
			{Code: "STELLITE", Name: "Stellite", Role: RoleSeat, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true, CompatibleWith: []string{"STELLITE_OVERLAY", "INCONEL_625", "ASTM_A182_F6A", "ASTM_A182_F316"}},
			{Code: "ENP", Name: "ENP (Nickel Plating)", Role: RoleSeat, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true, CompatibleWith: []string{"ENP_WCB"}},
			{Code: "INCONEL", Name: "Inconel", Role: RoleSeat, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true, CompatibleWith: []string{"STELLITE_OVERLAY", "INCONEL_625"}},
			{Code: "GRAFITE", Name: "Grafite", Role: RoleSeat, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true, CompatibleWith: []string{"ASTM_A182_F316", "STELLITE_OVERLAY", "INCONEL_625"}},
		},
		RoleStem: {
			{Code: "ASTM_A182_F6A", Name: "ASTM A182 F6a - Inox 410", Role: RoleStem, NaceQualified: false, FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "ASTM_A182_F316", Name: "ASTM A182 F316 - Inox 316", Role: RoleStem, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "ASTM_A182_F51", Name: "ASTM A182 F51 - Duplex", Role: RoleStem, NaceQualified: true, NaceHardnessMaxHRC: ptr(28), FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "ASTM_A182_F53", Name: "ASTM A182 F53 - Super Duplex", Role: RoleStem, NaceQualified: true, NaceHardnessMaxHRC: ptr(32), FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "INCONEL_625", Name: "Inconel 625", Role: RoleStem, NaceQualified: true, FireTestCompatible: true, LowEmissionCompat: true},
			{Code: "MONEL_K500", Name: "Monel K500", Role: RoleStem, NaceQualified: true, NaceHardnessMaxHRC: ptr(35), FireTestCompatible: true, LowEmissionCompat: true},
		},
	}
}

// normMaterialCodes lists, per construction standard, the master-table codes
// it qualifies for each role. Body lists mirror each norm's MATERIAL_CORPO
// domain in the active pack.
func normMaterialCodes() map[string]map[Role][]string {
	ballPipelineObturators := []string{"ASTM_A182_F6A", "ASTM_A182_F316", "ENP_WCB", "STELLITE_OVERLAY", "INCONEL_625"}
	ballPipelineSeats := []string{"PTFE", "RPTFE", "PEEK", "NYLON", "DEVLON", "METAL", "STELLITE", "ENP", "INCONEL", "GRAFITE"}
	ballPipelineStems := []string{"ASTM_A182_F6A", "ASTM_A182_F316", "ASTM_A182_F51", "ASTM_A182_F53", "INCONEL_625", "MONEL_K500"}

	return map[string]map[Role][]string{
		"ABNT_NBR_15827": {
			RoleBody:      {"ASTM_A216_WCB", "ASTM_A352_LCB", "ASTM_A352_LCC", "ASTM_A351_CF8M", "ASTM_A351_CF3M", "ASTM_A995_4A", "ASTM_A995_5A"},
			RoleObturator: ballPipelineObturators,
			RoleSeat:      ballPipelineSeats,
			RoleStem:      ballPipelineStems,
		},
		"API_6D": {
			RoleBody:      {"ASTM_A216_WCB", "ASTM_A352_LCC", "ASTM_A351_CF8M", "ASTM_A995_4A", "ASTM_A995_5A"},
			RoleObturator: ballPipelineObturators,
			RoleSeat:      ballPipelineSeats,
			RoleStem:      ballPipelineStems,
		},
		"ISO_14313": {
			RoleBody:      {"ASTM_A216_WCB", "ASTM_A351_CF8M"},
			RoleObturator: ballPipelineObturators,
			RoleSeat:      ballPipelineSeats,
			RoleStem:      ballPipelineStems,
		},
		"API_6A": {
			RoleBody:      {"ASTM_A105", "ASTM_A182_F316", "ASTM_A995_5A", "INCONEL_625"},
			RoleObturator: {"ASTM_A182_F316", "STELLITE_OVERLAY", "INCONEL_625"},
			RoleSeat:      {"METAL", "STELLITE", "INCONEL", "ENP"},
			RoleStem:      {"ASTM_A182_F316", "ASTM_A182_F53", "INCONEL_625", "MONEL_K500"},
		},
		"API_600": {
			RoleBody:      {"ASTM_A216_WCB", "ASTM_A351_CF8M", "ASTM_A352_LCB"},
			RoleObturator: {"ASTM_A182_F6A", "ASTM_A182_F316", "STELLITE_OVERLAY"},
			RoleSeat:      {"METAL", "STELLITE", "GRAFITE"},
			RoleStem:      {"ASTM_A182_F6A", "ASTM_A182_F316", "ASTM_A182_F51"},
		},
		"API_602": {
			RoleBody:      {"ASTM_A105", "ASTM_A182_F316", "ASTM_A182_F304"},
			RoleObturator: {"ASTM_A182_F6A", "ASTM_A182_F316", "STELLITE_OVERLAY"},
			RoleSeat:      {"METAL", "STELLITE", "GRAFITE"},
			RoleStem:      {"ASTM_A182_F6A", "ASTM_A182_F316"},
		},
	}
}

func builtinCompatibility() map[string]map[Role][]Material {
	master := qualifications()
	index := make(map[Role]map[string]Material, len(master))
	for role, list := range master {
		byCode := make(map[string]Material, len(list))
		for _, m := range list {
			byCode[m.Code] = m
		}
		index[role] = byCode
	}

	out := make(map[string]map[Role][]Material)
	for norm, roles := range normMaterialCodes() {
		out[norm] = make(map[Role][]Material, len(roles))
		for role, codes := range roles {
			list := make([]Material, 0, len(codes))
			for _, code := range codes {
				if m, ok := index[role][code]; ok {
					list = append(list, m)
				}
			}
			out[norm][role] = list
		}
	}
	return out
}
