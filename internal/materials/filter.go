package materials

// FilterCandidates applies the AND-composed requirement filters to the
// candidate list. Each active requirement keeps only materials whose
// corresponding flag holds; inactive requirements filter nothing.
func FilterCandidates(candidates []Material, req Requirements) []Material {
	filtered := make([]Material, 0, len(candidates))
	for _, m := range candidates {
		if req.NaceRequired && !m.NaceQualified {
			continue
		}
		if req.FireTestRequired && !m.FireTestCompatible {
			continue
		}
		if req.LowEmissionRequired && !m.LowEmissionCompat {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

// FilterSeats narrows seat candidates for the chosen obturator after the
// requirement filter. Compatibility is symmetric: either side declaring the
// other is sufficient. A nil obturator skips the compatibility pass.
func FilterSeats(seats []Material, req Requirements, obturator *Material) []Material {
	filtered := FilterCandidates(seats, req)
	if obturator == nil {
		return filtered
	}

	compatible := make([]Material, 0, len(filtered))
	for _, seat := range filtered {
		if contains(obturator.CompatibleWith, seat.Code) || contains(seat.CompatibleWith, obturator.Code) {
			compatible = append(compatible, seat)
		}
	}
	return compatible
}

// Blocked reports whether a filtered candidate list leaves the role without
// any selectable material.
func Blocked(filtered []Material) bool {
	return len(filtered) == 0
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
