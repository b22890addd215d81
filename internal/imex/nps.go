package imex

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	decimalRe  = regexp.MustCompile(`^\d+\.?\d*$`)
	mixedRe    = regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)$`)
	fractionRe = regexp.MustCompile(`^(\d+)/(\d+)$`)
)

// ParseNPS parses a nominal pipe size string to its decimal inch value.
// Accepted forms: whole numbers ("2"), decimals ("2.5"), simple fractions
// ("3/4") and mixed numbers ("1 1/2").
func ParseNPS(nps string) (float64, bool) {
	cleaned := strings.TrimSpace(nps)
	if cleaned == "" {
		return 0, false
	}

	if decimalRe.MatchString(cleaned) {
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	if m := mixedRe.FindStringSubmatch(cleaned); m != nil {
		whole, _ := strconv.Atoi(m[1])
		num, _ := strconv.Atoi(m[2])
		den, _ := strconv.Atoi(m[3])
		if den == 0 {
			return 0, false
		}
		return float64(whole) + float64(num)/float64(den), true
	}

	if m := fractionRe.FindStringSubmatch(cleaned); m != nil {
		num, _ := strconv.Atoi(m[1])
		den, _ := strconv.Atoi(m[2])
		if den == 0 {
			return 0, false
		}
		return float64(num) / float64(den), true
	}

	return 0, false
}

// pressureClassChars is the single-character encoding of each pressure class.
var pressureClassChars = map[string]string{
	"150":  "1",
	"300":  "3",
	"600":  "6",
	"800":  "8",
	"900":  "A",
	"1500": "B",
	"2500": "Y",
}

// EncodeSizeClass encodes NPS and pressure class as NNNX: three zero-padded
// digits of NPS×10 followed by the class character.
func EncodeSizeClass(nps, pressureClass string) (string, bool) {
	inches, ok := ParseNPS(nps)
	if !ok {
		return "", false
	}
	classChar, ok := pressureClassChars[pressureClass]
	if !ok {
		return "", false
	}
	size := int(inches*10 + 0.5)
	return padLeft(strconv.Itoa(size), 3) + classChar, true
}

func padLeft(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
