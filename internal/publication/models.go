package publication

import "imexspec/internal/calc"

// Status of one conformity check.
type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusPending Status = "PENDING"
)

// Check IDs, in evaluation order.
const (
	CheckPrimaryNorm = "NORM_001"
	CheckBasicFields = "BASIC_001"
	CheckFlangeFace  = "BASIC_002"
	CheckMaterials   = "MAT_001"
	CheckNACE        = "NACE_001"
	CheckFireTest    = "FIRE_001"
	CheckLowEmission = "EMIT_001"
	CheckSIL         = "SIL_001"
	CheckActuation   = "ACT_001"
)

// Configuration is the snapshot the validator judges. It carries only the
// fields the checks read; callers map their draft records onto it.
type Configuration struct {
	ValveType   string `json:"valve_type"`
	ServiceType string `json:"service_type"`
	PrimaryNorm string `json:"primary_norm"`

	DiameterNPS   string `json:"diameter_nps"`
	PressureClass string `json:"pressure_class"`
	EndType       string `json:"end_type"`
	FlangeFace    string `json:"flange_face,omitempty"`

	BodyMaterial      string `json:"body_material"`
	ObturatorMaterial string `json:"obturator_material"`
	SeatMaterial      string `json:"seat_material"`
	StemMaterial      string `json:"stem_material"`

	NaceRequired        bool   `json:"nace_required"`
	FireTestRequired    bool   `json:"fire_test_required"`
	LowEmissionRequired bool   `json:"low_emission_required"`
	SILLevel            string `json:"sil_level,omitempty"`

	ActuationType string `json:"actuation_type"`
}

// Check is one conformity verdict. CanBypass is always false: there is no
// approval flow that can override a failed check.
type Check struct {
	ID         string `json:"id"`
	Rule       string `json:"rule"`
	Status     Status `json:"status"`
	Message    string `json:"message"`
	SourceNorm string `json:"source_norm,omitempty"`
	CanBypass  bool   `json:"can_bypass"`
}

// Result is the full publication verdict. CanPublish is the single authority
// for enabling the publish action.
type Result struct {
	CanPublish      bool     `json:"can_publish"`
	CoveragePercent float64  `json:"coverage_percent"`
	Checks          []Check  `json:"checks"`
	BlockedBy       []string `json:"blocked_by"`
	ApplicableNorms []string `json:"applicable_norms"`
}

// Request pairs a configuration with an optional pre-computed SIL
// verification. Without it a SIL-rated configuration stays PENDING.
type Request struct {
	Configuration Configuration   `json:"configuration"`
	SILResult     *calc.SILResult `json:"sil_result,omitempty"`
}
