package postgres

import (
	"encoding/binary"
	"math"
	"testing"
)

func scanConfidence(t *testing.T, src any) float64 {
	t.Helper()
	var c legacyConfidence
	if err := c.Scan(src); err != nil {
		t.Fatalf("scan %v (%T): %v", src, src, err)
	}
	return float64(c)
}

func packFloat32(f float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(f))
	return b
}

func TestLegacyConfidence_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want float64
	}{
		{"float64", float64(87.5), 87.5},
		{"float32", float32(42.25), 42.25},
		{"int64", int64(60), 60},
		{"numeric string", "73.5", 73.5},
		{"padded string", "  91.0 ", 91},
		{"text bytes", []byte("88.75"), 88.75},
		{"packed float32", packFloat32(65.5), 65.5},
		{"nil", nil, 0},
		{"garbage string", "not a number", 0},
		{"garbage bytes", []byte{0x01, 0x02, 0x03, 0x04, 0x05}, 0},
		{"nan string", "NaN", 0},
		{"inf string", "+Inf", 0},
		{"packed nan", packFloat32(float32(math.NaN())), 0},
		{"unknown type", struct{}{}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := scanConfidence(t, tc.src)
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLegacyConfidence_PackedFloatPrecision(t *testing.T) {
	// float32 round-trips exactly for values representable at single precision
	got := scanConfidence(t, packFloat32(92.5))
	if got != 92.5 {
		t.Fatalf("got %v, want 92.5", got)
	}
}
