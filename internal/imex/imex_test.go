package imex

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imexspec/internal/catalog"
)

func newTestEncoder(t *testing.T) *Encoder {
	t.Helper()
	enc, err := NewEncoder(context.Background(), catalog.NewInMemoryStore())
	require.NoError(t, err)
	return enc
}

func TestParseNPS(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2", 2, true},
		{"10", 10, true},
		{"2.5", 2.5, true},
		{"3/4", 0.75, true},
		{"1/2", 0.5, true},
		{"1 1/2", 1.5, true},
		{"  8  ", 8, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1/0", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseNPS(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
		}
	}
}

func TestEncodeSizeClass(t *testing.T) {
	cases := []struct {
		nps, class string
		want       string
	}{
		{"2", "600", "0206"},
		{"1 1/2", "150", "0151"},
		{"3/4", "2500", "008Y"},
		{"8", "600", "0806"},
		{"1", "800", "0108"},
		{"36", "900", "360A"},
	}
	for _, tc := range cases {
		got, ok := EncodeSizeClass(tc.nps, tc.class)
		require.True(t, ok, "%s/%s", tc.nps, tc.class)
		assert.Equal(t, tc.want, got)
	}

	_, ok := EncodeSizeClass("2", "425")
	assert.False(t, ok, "unknown pressure class must not encode")
	_, ok = EncodeSizeClass("", "600")
	assert.False(t, ok)
}

func TestBuildCompleteBallValve(t *testing.T) {
	enc := newTestEncoder(t)

	result := enc.Build(Spec{
		ValveType:     "ESFERA",
		DiameterNPS:   "8",
		PressureClass: "600",
		EndType:       "FLANGEADO",
		FlangeFace:    "RF",
		BodyMaterial:  "ASTM_A216_WCB",
		SeatMaterial:  "PTFE",
		ActuationType: "MANUAL",
	})

	assert.True(t, result.IsComplete)
	assert.Empty(t, result.Missing)
	assert.True(t, strings.HasPrefix(result.Value, "TRUF.0806.FRF"), "got %s", result.Value)
	assert.True(t, strings.HasSuffix(result.Value, "-NEW"), "got %s", result.Value)
	assert.Equal(t, "TRUF.0806.FRF.WCB.PT.0L0000-NEW", result.Value)

	require.Len(t, result.Segments, 7)
	assert.Equal(t, ConfidenceExact, result.Segments[3].Confidence)
	assert.Equal(t, ConfidenceExact, result.Segments[4].Confidence)
}

func TestBuildFlangeFaceOverride(t *testing.T) {
	enc := newTestEncoder(t)
	base := Spec{
		ValveType:     "ESFERA",
		DiameterNPS:   "2",
		PressureClass: "300",
		EndType:       "FLANGEADO",
		BodyMaterial:  "ASTM_A216_WCB",
		SeatMaterial:  "PTFE",
		ActuationType: "MANUAL",
	}

	generic := enc.Build(base)
	assert.Contains(t, generic.Value, ".FRE.")

	base.FlangeFace = "RTJ"
	faced := enc.Build(base)
	assert.Contains(t, faced.Value, ".RTJ.")

	base.FlangeFace = "XX"
	unknown := enc.Build(base)
	assert.Contains(t, unknown.Value, ".FRE.", "unknown face falls back to the generic flanged code")
}

func TestBuildIncompletePadding(t *testing.T) {
	enc := newTestEncoder(t)

	result := enc.Build(Spec{
		ValveType:     "ESFERA",
		DiameterNPS:   "8",
		PressureClass: "600",
	})

	assert.False(t, result.IsComplete)
	assert.Equal(t, "TRUF.0806.???.???.???.???-NEW", result.Value)
	assert.ElementsMatch(t, []string{
		"Tipo de extremidade",
		"Material do corpo",
		"Material da sede",
		"Tipo de atuação",
	}, result.Missing)
}

func TestBuildEmptySpec(t *testing.T) {
	enc := newTestEncoder(t)

	result := enc.Build(Spec{})

	assert.False(t, result.IsComplete)
	assert.Equal(t, "???.???.???.???.???.???-NEW", result.Value)
	assert.ElementsMatch(t, []string{
		"Tipo de válvula",
		"Diâmetro NPS",
		"Classe de pressão",
		"Tipo de extremidade",
		"Material do corpo",
		"Material da sede",
		"Tipo de atuação",
	}, result.Missing)
}

func TestBuildSuffixOrder(t *testing.T) {
	enc := newTestEncoder(t)

	result := enc.Build(Spec{
		ValveType:           "ESFERA",
		DiameterNPS:         "4",
		PressureClass:       "600",
		EndType:             "BW",
		BodyMaterial:        "ASTM_A216_WCB",
		SeatMaterial:        "METAL",
		ActuationType:       "PNEUMATICO_DA",
		FireTested:          true,
		LowFugitiveEmission: true,
		SILCertification:    "SIL2",
		NaceCompliant:       true,
	})

	assert.True(t, strings.HasSuffix(result.Value, "-FS-LFE-SIL2-NACE"), "got %s", result.Value)
}

func TestBuildSILNotApplicable(t *testing.T) {
	enc := newTestEncoder(t)
	result := enc.Build(Spec{SILCertification: "NA"})
	assert.True(t, strings.HasSuffix(result.Value, "-NEW"))
}

func TestBuildObservations(t *testing.T) {
	enc := newTestEncoder(t)
	spec := Spec{
		ValveType:     "GAVETA",
		DiameterNPS:   "6",
		PressureClass: "150",
		EndType:       "FLANGEADO",
		BodyMaterial:  "ASTM_A216_WCB",
		SeatMaterial:  "METAL",
		ActuationType: "ELETRICO",
		Observations:  "  entrega urgente  ",
	}

	result := enc.Build(spec)
	assert.True(t, strings.HasSuffix(result.Value, "(entrega urgente)"), "got %s", result.Value)

	// Observations never mask the placeholder shape of an incomplete code.
	spec.ActuationType = ""
	incomplete := enc.Build(spec)
	assert.NotContains(t, incomplete.Value, "(")
}

func TestResolveMaterialFallbackChain(t *testing.T) {
	enc := newTestEncoder(t)

	code, conf, ok := resolveMaterial("ASTM_A216_WCB", enc.bodies, legacyBodyCodes)
	require.True(t, ok)
	assert.Equal(t, "WCB", code)
	assert.Equal(t, ConfidenceExact, conf)

	code, conf, ok = resolveMaterial("ASTM A216 WCB", enc.bodies, legacyBodyCodes)
	require.True(t, ok)
	assert.Equal(t, "WCB", code)
	assert.Equal(t, ConfidenceExact, conf, "legacy display names are known mappings")

	_, conf, ok = resolveMaterial("a216 wcb", enc.bodies, legacyBodyCodes)
	require.True(t, ok)
	assert.Equal(t, ConfidenceApproximate, conf, "substring matches are guesses")

	code, conf, ok = resolveMaterial("Hastelloy C-276", enc.bodies, legacyBodyCodes)
	require.True(t, ok)
	assert.Equal(t, "HAS", code, "truncation stub uppercases and strips spaces")
	assert.Equal(t, ConfidenceApproximate, conf)

	_, _, ok = resolveMaterial("", enc.bodies, legacyBodyCodes)
	assert.False(t, ok)
}

// Filling one more required field can only shrink the missing list, and a
// code that was complete stays complete.
func TestBuildCompletenessMonotonic(t *testing.T) {
	enc := newTestEncoder(t)

	fills := []func(*Spec){
		func(s *Spec) { s.ValveType = "ESFERA" },
		func(s *Spec) { s.DiameterNPS = "8" },
		func(s *Spec) { s.PressureClass = "600" },
		func(s *Spec) { s.EndType = "FLANGEADO" },
		func(s *Spec) { s.BodyMaterial = "ASTM_A216_WCB" },
		func(s *Spec) { s.SeatMaterial = "PTFE" },
		func(s *Spec) { s.ActuationType = "MANUAL" },
	}

	var spec Spec
	prev := enc.Build(spec)
	require.Len(t, prev.Missing, len(fills))
	require.False(t, prev.IsComplete)

	for i, fill := range fills {
		fill(&spec)
		result := enc.Build(spec)

		assert.Less(t, len(result.Missing), len(prev.Missing), "after fill %d", i)
		if prev.IsComplete {
			assert.True(t, result.IsComplete, "completeness lost after fill %d", i)
		}
		prev = result
	}

	assert.True(t, prev.IsComplete)
	assert.Empty(t, prev.Missing)
}

func TestBuildDeterministic(t *testing.T) {
	enc := newTestEncoder(t)
	spec := Spec{
		ValveType:     "BORBOLETA",
		DiameterNPS:   "10",
		PressureClass: "150",
		EndType:       "WAFER",
		BodyMaterial:  "inox",
		SeatMaterial:  "ptfe",
		ActuationType: "MANUAL_GEAR",
	}

	first := enc.Build(spec)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.Value, enc.Build(spec).Value)
	}
}
