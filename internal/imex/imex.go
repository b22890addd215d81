// Package imex derives the canonical product description code from a valve
// configuration. Encoding is pure and total: every input, however partial,
// yields a same-shaped code with "???" marking unresolved positions.
package imex

import (
	"context"
	"fmt"
	"strings"

	"imexspec/internal/catalog"
)

// Human-readable missing-input names, kept in the language the configurator
// presents them in.
const (
	missingValveType     = "Tipo de válvula"
	missingDiameter      = "Diâmetro NPS"
	missingPressureClass = "Classe de pressão"
	missingEndType       = "Tipo de extremidade"
	missingBodyMaterial  = "Material do corpo"
	missingSeatMaterial  = "Material da sede"
	missingActuation     = "Tipo de atuação"
)

const placeholder = "???"

// Encoder builds description codes from a catalog snapshot taken at
// construction time. Build itself does no I/O, so it is safe to call on
// every keystroke.
type Encoder struct {
	models    map[string]string
	ends      map[string]string
	bodies    map[string]string
	seats     map[string]string
	actuation map[string]string
}

// NewEncoder snapshots the code-relevant catalog categories from store.
func NewEncoder(ctx context.Context, store catalog.Store) (*Encoder, error) {
	e := &Encoder{}
	for _, load := range []struct {
		category catalog.Category
		dest     *map[string]string
	}{
		{catalog.CategoryValveModels, &e.models},
		{catalog.CategoryEndConnections, &e.ends},
		{catalog.CategoryBodyMaterials, &e.bodies},
		{catalog.CategorySeatMaterials, &e.seats},
		{catalog.CategoryActuationCodes, &e.actuation},
	} {
		items, err := store.List(ctx, load.category)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", load.category, err)
		}
		m := make(map[string]string, len(items))
		for _, item := range items {
			m[item.Code] = item.ImexCode
		}
		*load.dest = m
	}
	return e, nil
}

// Build assembles the six-segment code:
// MODEL.SIZECLASS.CONNECTION.BODY.TRIM.ACTUATION-SUFFIXES(OBS).
func (e *Encoder) Build(spec Spec) BuildResult {
	var (
		segments  []Segment
		missing   []string
		positions [6]string
	)

	if code, ok := e.models[spec.ValveType]; ok {
		positions[0] = code
		segments = append(segments, Segment{
			Key:    "modelo",
			Label:  "Modelo",
			Value:  code,
			Source: spec.ValveType,
		})
	} else {
		missing = append(missing, missingValveType)
	}

	if code, ok := EncodeSizeClass(spec.DiameterNPS, spec.PressureClass); ok {
		positions[1] = code
		segments = append(segments, Segment{
			Key:    "diamClasse",
			Label:  "Diâmetro/Classe",
			Value:  code,
			Source: fmt.Sprintf("%s\" #%s", spec.DiameterNPS, spec.PressureClass),
		})
	} else {
		if _, ok := ParseNPS(spec.DiameterNPS); !ok {
			missing = append(missing, missingDiameter)
		}
		if _, ok := pressureClassChars[spec.PressureClass]; !ok {
			missing = append(missing, missingPressureClass)
		}
	}

	if code, ok := e.connectionCode(spec); ok {
		positions[2] = code
		segments = append(segments, Segment{
			Key:    "conexao",
			Label:  "Conexão",
			Value:  code,
			Source: spec.EndType,
		})
	} else {
		missing = append(missing, missingEndType)
	}

	if code, conf, ok := resolveMaterial(spec.BodyMaterial, e.bodies, legacyBodyCodes); ok {
		positions[3] = code
		segments = append(segments, Segment{
			Key:        "corpo",
			Label:      "Corpo",
			Value:      code,
			Source:     spec.BodyMaterial,
			Confidence: conf,
		})
	} else {
		missing = append(missing, missingBodyMaterial)
	}

	if code, conf, ok := resolveMaterial(spec.SeatMaterial, e.seats, legacySeatCodes); ok {
		positions[4] = code
		segments = append(segments, Segment{
			Key:        "trim",
			Label:      "Trim",
			Value:      code,
			Source:     spec.SeatMaterial,
			Confidence: conf,
		})
	} else {
		missing = append(missing, missingSeatMaterial)
	}

	if code, ok := e.actuation[spec.ActuationType]; ok {
		positions[5] = code
		segments = append(segments, Segment{
			Key:    "atuacao",
			Label:  "Atuação",
			Value:  code,
			Source: spec.ActuationType,
		})
	} else {
		missing = append(missing, missingActuation)
	}

	suffixes := buildSuffixes(spec)
	segments = append(segments, Segment{
		Key:    "sufixos",
		Label:  "Sufixos",
		Value:  suffixes,
		Source: "Requisitos especiais",
	})

	complete := len(missing) == 0
	for i, p := range positions {
		if p == "" {
			positions[i] = placeholder
		}
	}
	value := strings.Join(positions[:], ".") + "-" + suffixes
	if complete && strings.TrimSpace(spec.Observations) != "" {
		value += "(" + strings.TrimSpace(spec.Observations) + ")"
	}

	return BuildResult{
		Value:      value,
		Segments:   segments,
		Missing:    missing,
		IsComplete: complete,
	}
}

// connectionCode resolves the end-type code, preferring the face-specific
// flanged variant once the flange face is known.
func (e *Encoder) connectionCode(spec Spec) (string, bool) {
	if spec.EndType == "" {
		return "", false
	}
	if strings.HasPrefix(spec.EndType, "FLANGEADO") && spec.FlangeFace != "" {
		if code, ok := e.ends["FLANGEADO_"+spec.FlangeFace]; ok {
			return code, true
		}
	}
	code, ok := e.ends[spec.EndType]
	return code, ok
}

func buildSuffixes(spec Spec) string {
	var suffixes []string
	if spec.FireTested {
		suffixes = append(suffixes, "FS")
	}
	if spec.LowFugitiveEmission {
		suffixes = append(suffixes, "LFE")
	}
	if spec.SILCertification != "" && spec.SILCertification != "NA" {
		suffixes = append(suffixes, spec.SILCertification)
	}
	if spec.NaceCompliant {
		suffixes = append(suffixes, "NACE")
	}
	if len(suffixes) == 0 {
		return "NEW"
	}
	return strings.Join(suffixes, "-")
}
