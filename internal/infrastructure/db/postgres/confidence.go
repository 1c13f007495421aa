package postgres

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"
)

// legacyConfidence scans a confidence column that older writers populated
// inconsistently: a proper float, a numeric string, or the raw little-endian
// bytes of a float32. New rows are always written as a clamped float; this
// scanner keeps history pages readable over pre-existing dirty rows by
// coercing anything unparseable to 0 instead of failing the whole page.
type legacyConfidence float64

func (c *legacyConfidence) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = 0
	case float64:
		*c = legacyConfidence(v)
	case float32:
		*c = legacyConfidence(v)
	case int64:
		*c = legacyConfidence(v)
	case string:
		*c = parseConfidenceString(v)
	case []byte:
		*c = parseConfidenceBytes(v)
	default:
		*c = 0
	}
	return nil
}

func parseConfidenceString(s string) legacyConfidence {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return legacyConfidence(f)
}

func parseConfidenceBytes(b []byte) legacyConfidence {
	// Exactly four bytes: treat as a packed float32.
	if len(b) == 4 {
		f := math.Float32frombits(binary.LittleEndian.Uint32(b))
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return 0
		}
		return legacyConfidence(f)
	}
	return parseConfidenceString(string(b))
}
