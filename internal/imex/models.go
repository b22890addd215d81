package imex

// Spec carries every configuration field the encoder reads. All fields are
// optional; the encoder degrades to placeholders instead of failing.
type Spec struct {
	ValveType     string `json:"valve_type"`
	DiameterNPS   string `json:"diameter_nps"`
	PressureClass string `json:"pressure_class"`
	EndType       string `json:"end_type"`
	FlangeFace    string `json:"flange_face,omitempty"`

	BodyMaterial      string `json:"body_material"`
	SeatMaterial      string `json:"seat_material"`
	ObturatorMaterial string `json:"obturator_material,omitempty"`
	StemMaterial      string `json:"stem_material,omitempty"`

	ActuationType string `json:"actuation_type"`

	FireTested          bool   `json:"fire_tested,omitempty"`
	LowFugitiveEmission bool   `json:"low_fugitive_emission,omitempty"`
	SILCertification    string `json:"sil_certification,omitempty"`
	NaceCompliant       bool   `json:"nace_compliant,omitempty"`

	Observations string `json:"observations,omitempty"`
}

// Confidence tells consumers whether a resolved code came from reference data
// or from a degraded guess.
type Confidence string

const (
	ConfidenceExact       Confidence = "exact"
	ConfidenceApproximate Confidence = "approximate"
)

// Segment is one resolved position of the code, in assembly order.
type Segment struct {
	Key        string     `json:"key"`
	Label      string     `json:"label"`
	Value      string     `json:"value"`
	Source     string     `json:"source"`
	Confidence Confidence `json:"confidence,omitempty"`
}

// BuildResult is the full encoder output for one configuration snapshot.
type BuildResult struct {
	Value      string    `json:"value"`
	Segments   []Segment `json:"segments"`
	Missing    []string  `json:"missing"`
	IsComplete bool      `json:"is_complete"`
}
