// Package materials narrows the candidate material sets for each valve role
// according to the active service requirements. Filtering never relaxes: an
// empty result blocks the role instead of falling back to the unfiltered set.
package materials

// Role identifies the valve part a material candidates list belongs to.
type Role string

const (
	RoleBody      Role = "body"
	RoleObturator Role = "obturator"
	RoleSeat      Role = "seat"
	RoleStem      Role = "stem"
)

// Valid reports whether r names a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleBody, RoleObturator, RoleSeat, RoleStem:
		return true
	}
	return false
}

// Material is one candidate for a role, carrying the qualification flags the
// requirement filters act on.
type Material struct {
	Code                string   `json:"code"`
	Name                string   `json:"name"`
	Role                Role     `json:"role"`
	NaceQualified       bool     `json:"nace_qualified"`
	NaceTemperatureMinC *float64 `json:"nace_temperature_min_c,omitempty"`
	NaceHardnessMaxHRC  *float64 `json:"nace_hardness_max_hrc,omitempty"`
	FireTestCompatible  bool     `json:"fire_test_compatible"`
	LowEmissionCompat   bool     `json:"low_emission_compatible"`
	CompatibleWith      []string `json:"compatible_with"`
}

// Requirements are the service toggles that activate the predicate filters.
type Requirements struct {
	NaceRequired        bool `json:"nace_required"`
	FireTestRequired    bool `json:"fire_test_required"`
	LowEmissionRequired bool `json:"low_emission_required"`
}
