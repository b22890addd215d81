package materials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mat(code string, nace, fire, lowE bool, compat ...string) Material {
	return Material{
		Code:               code,
		NaceQualified:      nace,
		FireTestCompatible: fire,
		LowEmissionCompat:  lowE,
		CompatibleWith:     compat,
	}
}

func codes(list []Material) []string {
	out := make([]string, 0, len(list))
	for _, m := range list {
		out = append(out, m.Code)
	}
	return out
}

func TestFilterCandidates(t *testing.T) {
	candidates := []Material{
		mat("WCB", true, true, true),
		mat("F304", false, true, true),
		mat("PTFE", true, false, true),
		mat("NYLON", true, false, false),
	}

	t.Run("no requirements keeps everything", func(t *testing.T) {
		filtered := FilterCandidates(candidates, Requirements{})
		assert.Len(t, filtered, 4)
	})

	t.Run("nace drops unqualified", func(t *testing.T) {
		filtered := FilterCandidates(candidates, Requirements{NaceRequired: true})
		assert.Equal(t, []string{"WCB", "PTFE", "NYLON"}, codes(filtered))
	})

	t.Run("requirements compose with AND", func(t *testing.T) {
		filtered := FilterCandidates(candidates, Requirements{
			NaceRequired:        true,
			FireTestRequired:    true,
			LowEmissionRequired: true,
		})
		assert.Equal(t, []string{"WCB"}, codes(filtered))
	})

	t.Run("all filtered out leaves the role blocked", func(t *testing.T) {
		filtered := FilterCandidates([]Material{mat("PTFE", true, false, true)}, Requirements{FireTestRequired: true})
		assert.Empty(t, filtered)
		assert.True(t, Blocked(filtered))
	})
}

func TestFilterSeats(t *testing.T) {
	seats := []Material{
		mat("PTFE", true, false, true, "F316"),
		mat("METAL", true, true, true),
		mat("STELLITE", true, true, true, "OVERLAY"),
	}

	t.Run("no obturator skips compatibility pass", func(t *testing.T) {
		filtered := FilterSeats(seats, Requirements{}, nil)
		assert.Len(t, filtered, 3)
	})

	t.Run("seat side declaring compatibility is sufficient", func(t *testing.T) {
		obturator := mat("F316", true, true, true)
		filtered := FilterSeats(seats, Requirements{}, &obturator)
		assert.Equal(t, []string{"PTFE"}, codes(filtered))
	})

	t.Run("obturator side declaring compatibility is sufficient", func(t *testing.T) {
		obturator := mat("OVERLAY", true, true, true, "METAL")
		filtered := FilterSeats(seats, Requirements{}, &obturator)
		require.Len(t, filtered, 2)
		assert.Equal(t, []string{"METAL", "STELLITE"}, codes(filtered))
	})

	t.Run("requirement filter runs before compatibility", func(t *testing.T) {
		obturator := mat("F316", true, true, true, "PTFE")
		filtered := FilterSeats(seats, Requirements{FireTestRequired: true}, &obturator)
		assert.Empty(t, filtered)
		assert.True(t, Blocked(filtered))
	})
}

func TestBuiltinSeedConsistency(t *testing.T) {
	master := qualifications()

	t.Run("polymer seats are never fire test compatible", func(t *testing.T) {
		for _, m := range master[RoleSeat] {
			switch m.Code {
			case "PTFE", "RPTFE", "PEEK", "NYLON", "DEVLON":
				assert.False(t, m.FireTestCompatible, "seat %s", m.Code)
			}
		}
	})

	t.Run("every seat compatibility target is a known obturator", func(t *testing.T) {
		known := map[string]bool{}
		for _, m := range master[RoleObturator] {
			known[m.Code] = true
		}
		for _, seatMat := range master[RoleSeat] {
			for _, target := range seatMat.CompatibleWith {
				assert.True(t, known[target], "seat %s references unknown obturator %s", seatMat.Code, target)
			}
		}
	})

	t.Run("every norm table code resolves against the master table", func(t *testing.T) {
		index := map[Role]map[string]bool{}
		for role, list := range master {
			index[role] = map[string]bool{}
			for _, m := range list {
				index[role][m.Code] = true
			}
		}
		for norm, roles := range normMaterialCodes() {
			for role, codeList := range roles {
				for _, code := range codeList {
					assert.True(t, index[role][code], "norm %s lists unknown %s material %s", norm, role, code)
				}
			}
		}
	})

	t.Run("every norm qualifies all four roles", func(t *testing.T) {
		for norm, roles := range normMaterialCodes() {
			for _, role := range []Role{RoleBody, RoleObturator, RoleSeat, RoleStem} {
				assert.NotEmpty(t, roles[role], "norm %s has no %s candidates", norm, role)
			}
		}
	})
}

func TestStoreScopesByNorm(t *testing.T) {
	store := NewInMemoryStore()
	ctx := t.Context()

	t.Run("body candidates differ between norms", func(t *testing.T) {
		nbr, err := store.ListByRole(ctx, "ABNT_NBR_15827", RoleBody)
		require.NoError(t, err)
		wellhead, err := store.ListByRole(ctx, "API_6A", RoleBody)
		require.NoError(t, err)

		assert.NotEqual(t, codes(nbr), codes(wellhead))
		assert.Contains(t, codes(wellhead), "ASTM_A105")
		assert.Contains(t, codes(wellhead), "INCONEL_625")
		assert.NotContains(t, codes(nbr), "ASTM_A105")
		assert.NotContains(t, codes(nbr), "INCONEL_625")
	})

	t.Run("unknown norm is not found", func(t *testing.T) {
		_, err := store.ListByRole(ctx, "API_594", RoleBody)
		require.Error(t, err)
	})

	t.Run("find by code stays inside the norm", func(t *testing.T) {
		_, err := store.FindByCode(ctx, "ABNT_NBR_15827", RoleBody, "ASTM_A216_WCB")
		require.NoError(t, err)
		_, err = store.FindByCode(ctx, "API_6A", RoleBody, "ASTM_A216_WCB")
		require.Error(t, err)
	})
}
