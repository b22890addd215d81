package speccfg

import (
	"time"

	"imexspec/internal/imex"
	"imexspec/internal/publication"
)

// Status of a specification draft. INCOMPLETO and DRAFT are derived from the
// encoder and never set by hand; the rest advance through the review flow.
type Status string

const (
	StatusIncomplete Status = "INCOMPLETO"
	StatusDraft      Status = "DRAFT"
	StatusSubmitted  Status = "SUBMITTED"
	StatusApproved   Status = "APPROVED"
	StatusPublished  Status = "PUBLISHED"
	StatusRejected   Status = "REJECTED"
)

// transitions is the full lifecycle graph. Forward-only, with rework as the
// single loop: a rejected specification returns to DRAFT when edited.
var transitions = map[Status][]Status{
	StatusIncomplete: {StatusIncomplete, StatusDraft},
	StatusDraft:      {StatusIncomplete, StatusDraft, StatusSubmitted},
	StatusSubmitted:  {StatusApproved, StatusRejected},
	StatusApproved:   {StatusPublished},
	StatusRejected:   {StatusIncomplete, StatusDraft},
	StatusPublished:  {},
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Editable reports whether the configuration may still be modified.
func (s Status) Editable() bool {
	return s == StatusIncomplete || s == StatusDraft || s == StatusRejected
}

// ValveConfiguration is the working state of one specification. Zero values
// mean "not yet chosen"; the engines treat absence as incomplete, never as
// a default.
type ValveConfiguration struct {
	ValveType            string `json:"valve_type"`
	ServiceType          string `json:"service_type"`
	ConstructionStandard string `json:"construction_standard"`

	DiameterNPS   string `json:"diameter_nps"`
	PressureClass string `json:"pressure_class"`
	EndType       string `json:"end_type"`
	FlangeFace    string `json:"flange_face,omitempty"`

	ActuationType string  `json:"actuation_type"`
	Torque        float64 `json:"torque,omitempty"`
	Thrust        float64 `json:"thrust,omitempty"`
	Travel        float64 `json:"travel,omitempty"`
	StemDiameter  float64 `json:"stem_diameter,omitempty"`
	Pitch         float64 `json:"pitch,omitempty"`
	TopFlange     string  `json:"top_flange,omitempty"`

	BodyMaterial      string `json:"body_material"`
	ObturatorMaterial string `json:"obturator_material"`
	SeatMaterial      string `json:"seat_material"`
	StemMaterial      string `json:"stem_material"`

	FireTestRequired    bool   `json:"fire_test_required"`
	LowEmissionRequired bool   `json:"low_emission_required"`
	SILCertification    string `json:"sil_certification,omitempty"`
	NaceCompliant       bool   `json:"nace_compliant"`

	Observations string `json:"observations,omitempty"`
}

// ImexSpec maps the configuration onto the encoder's input.
func (c ValveConfiguration) ImexSpec() imex.Spec {
	return imex.Spec{
		ValveType:           c.ValveType,
		DiameterNPS:         c.DiameterNPS,
		PressureClass:       c.PressureClass,
		EndType:             c.EndType,
		FlangeFace:          c.FlangeFace,
		BodyMaterial:        c.BodyMaterial,
		SeatMaterial:        c.SeatMaterial,
		ObturatorMaterial:   c.ObturatorMaterial,
		StemMaterial:        c.StemMaterial,
		ActuationType:       c.ActuationType,
		FireTested:          c.FireTestRequired,
		LowFugitiveEmission: c.LowEmissionRequired,
		SILCertification:    c.SILCertification,
		NaceCompliant:       c.NaceCompliant,
		Observations:        c.Observations,
	}
}

// PublicationConfig maps the configuration onto the publication gate's input.
func (c ValveConfiguration) PublicationConfig() publication.Configuration {
	return publication.Configuration{
		ValveType:           c.ValveType,
		ServiceType:         c.ServiceType,
		PrimaryNorm:         c.ConstructionStandard,
		DiameterNPS:         c.DiameterNPS,
		PressureClass:       c.PressureClass,
		EndType:             c.EndType,
		FlangeFace:          c.FlangeFace,
		BodyMaterial:        c.BodyMaterial,
		ObturatorMaterial:   c.ObturatorMaterial,
		SeatMaterial:        c.SeatMaterial,
		StemMaterial:        c.StemMaterial,
		NaceRequired:        c.NaceCompliant,
		FireTestRequired:    c.FireTestRequired,
		LowEmissionRequired: c.LowEmissionRequired,
		SILLevel:            c.SILCertification,
		ActuationType:       c.ActuationType,
	}
}

// Draft is one persisted specification record. ImexCode, MissingFields and
// IsComplete are derived from the configuration on every save.
type Draft struct {
	ID              string             `json:"id"`
	SpecCode        string             `json:"spec_code,omitempty"`
	Status          Status             `json:"status"`
	ImexCode        string             `json:"imex_code"`
	MissingFields   []string           `json:"missing_fields"`
	IsComplete      bool               `json:"is_complete"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	Configuration   ValveConfiguration `json:"configuration"`
	CreatedBy       string             `json:"created_by,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
