package calc

// TorqueInput is a sizing request. ValveSize is the decimal NPS in inches and
// PressureClass the numeric ANSI class (150, 300, ...).
type TorqueInput struct {
	ValveSize     float64 `json:"valve_size"`
	PressureClass float64 `json:"pressure_class"`
	SeatMaterial  string  `json:"seat_material"`
}

// TorqueResult is the recommended operating torque band.
type TorqueResult struct {
	MinTorque   int     `json:"min_torque"`
	MaxTorque   int     `json:"max_torque"`
	Recommended int     `json:"recommended"`
	Coefficient float64 `json:"coefficient"`
	Unit        string  `json:"unit"`
	Formula     string  `json:"formula"`
}

// SILLevel is an achieved or required safety integrity level.
type SILLevel string

const (
	SILNone SILLevel = "NONE"
	SIL1    SILLevel = "SIL1"
	SIL2    SILLevel = "SIL2"
	SIL3    SILLevel = "SIL3"
)

// tier maps levels onto a comparable scale. Unknown inputs count as NONE.
func (l SILLevel) tier() int {
	switch l {
	case SIL1:
		return 1
	case SIL2:
		return 2
	case SIL3:
		return 3
	default:
		return 0
	}
}

// SILInput holds the reliability parameters for the 1oo1 PFDavg formula.
// LambdaDU is the dangerous-undetected failure rate per hour, TestInterval
// and MTTR are in hours, Beta is the common-cause fraction.
type SILInput struct {
	LambdaDU      float64  `json:"lambda_du"`
	TestInterval  float64  `json:"test_interval_hours"`
	Beta          float64  `json:"beta"`
	MTTR          float64  `json:"mttr_hours"`
	RequiredLevel SILLevel `json:"required_level"`
}

// SILResult is the verification outcome.
type SILResult struct {
	PFDAvg        float64  `json:"pfd_avg"`
	RiskReduction float64  `json:"risk_reduction_factor"`
	AchievedLevel SILLevel `json:"achieved_level"`
	RequiredLevel SILLevel `json:"required_level"`
	MeetsRequired bool     `json:"meets_required"`
	Formula       string   `json:"formula"`
}
