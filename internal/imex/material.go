package imex

import (
	"sort"
	"strings"
)

// Legacy short codes kept for configurations captured before the catalog
// carried imex codes for every material. The keys are the display names the
// old system stored verbatim.
var legacyBodyCodes = map[string]string{
	"ASTM A216 WCB":  "WCB",
	"ASTM A352 LCC":  "LCC",
	"ASTM A351 CF8M": "CF8M",
	"ASTM A351 CF3M": "CF3M",
	"ASTM A995 4A":   "DPX",
	"ASTM A995 5A":   "SDPX",
	"ASTM A995 6A":   "SDPX",
	"ASTM A105":      "A105",
	"ASTM A182 F316": "F316",
	"ASTM A182 F304": "F304",
}

var legacySeatCodes = map[string]string{
	"PTFE":     "PT",
	"RPTFE":    "RPT",
	"PEEK":     "PK",
	"METAL":    "MT",
	"STELLITE": "ST",
	"ENP":      "ENP",
	"INCONEL":  "INC",
	"NYLON":    "NY",
	"DEVLON":   "DV",
	"GRAFITE":  "GR",
}

// resolveMaterial walks the fallback chain: exact catalog code, exact legacy
// name, case-insensitive substring against both, and finally a truncated
// uppercase stub of the raw input. It never fails on a non-empty input; the
// confidence tier records how far down the chain it had to go.
func resolveMaterial(raw string, catalog map[string]string, legacy map[string]string) (string, Confidence, bool) {
	if raw == "" {
		return "", "", false
	}

	if code, ok := catalog[raw]; ok {
		return code, ConfidenceExact, true
	}
	if code, ok := legacy[raw]; ok {
		return code, ConfidenceExact, true
	}

	upper := strings.ToUpper(raw)
	if code, ok := substringMatch(upper, catalog); ok {
		return code, ConfidenceApproximate, true
	}
	if code, ok := substringMatch(upper, legacy); ok {
		return code, ConfidenceApproximate, true
	}

	stub := strings.ReplaceAll(upper, " ", "")
	if len(stub) > 3 {
		stub = stub[:3]
	}
	return stub, ConfidenceApproximate, true
}

// substringMatch scans keys in sorted order so the chain stays deterministic
// when more than one entry would match.
func substringMatch(upper string, codes map[string]string) (string, bool) {
	keys := make([]string, 0, len(codes))
	for k := range codes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		key := strings.ToUpper(k)
		if strings.Contains(key, upper) || strings.Contains(upper, key) {
			return codes[k], true
		}
	}
	return "", false
}
