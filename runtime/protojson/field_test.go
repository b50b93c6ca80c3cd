package protojson

import (
	"math"
	"testing"
)

func TestFieldPresence(t *testing.T) {
	var f Field[int32]
	if !f.Empty() {
		t.Error("Zero field must be empty")
	}

	f.Set(0)
	if f.Empty() {
		t.Error("A set zero value is still present")
	}

	f.Clear()
	if !f.Empty() || f.Get() != 0 {
		t.Error("Clear must zero and absent the field")
	}
}

func TestFieldEqual(t *testing.T) {
	a := Of[string]("x")
	b := Of[string]("x")
	var c Field[string]

	if !a.Equal(b) {
		t.Error("Equal values must compare equal")
	}
	if a.Equal(c) {
		t.Error("Present and absent must differ")
	}
	var d Field[string]
	if !c.Equal(d) {
		t.Error("Two absent fields must compare equal")
	}
}

func TestFieldSwap(t *testing.T) {
	a := Of[int32](1)
	var b Field[int32]

	a.Swap(&b)
	if !a.Empty() || b.Empty() || b.Get() != 1 {
		t.Error("Swap must exchange value and presence")
	}
}

func TestEqualFloatULP(t *testing.T) {
	if !EqualFloat64(1.0, 1.0) {
		t.Error("Identical values must be equal")
	}
	next := math.Nextafter(1.0, 2.0)
	if !EqualFloat64(1.0, next) {
		t.Error("One-ULP neighbors must be equal")
	}
	if EqualFloat64(1.0, math.Nextafter(next, 2.0)) {
		t.Error("Two-ULP neighbors must differ")
	}
	if EqualFloat64(1.0, 2.0) {
		t.Error("Distant values must differ")
	}
}

func TestEqualFloat32ULP(t *testing.T) {
	next := math.Nextafter32(1.0, 2.0)
	if !EqualFloat32(1.0, next) {
		t.Error("One-ULP neighbors must be equal")
	}
	if EqualFloat32(1.0, math.Nextafter32(next, 2.0)) {
		t.Error("Two-ULP neighbors must differ")
	}
}

func TestFieldEqualFloat(t *testing.T) {
	a := Of[float64](1.0)
	b := Of[float64](math.Nextafter(1.0, 2.0))
	var absent Field[float64]

	if !FieldEqualFloat64(a, b) {
		t.Error("Neighboring present values must be equal")
	}
	if FieldEqualFloat64(a, absent) {
		t.Error("Present and absent must differ")
	}
}

func TestEqualSlices(t *testing.T) {
	if !EqualSlice([]string{"a", "b"}, []string{"a", "b"}) {
		t.Error("Equal slices")
	}
	if EqualSlice([]string{"a"}, []string{"a", "b"}) {
		t.Error("Length mismatch")
	}
	if EqualSlice([]string{"a"}, []string{"b"}) {
		t.Error("Value mismatch")
	}
	if !EqualFloat64Slice([]float64{1.0}, []float64{math.Nextafter(1.0, 2.0)}) {
		t.Error("Float slices compare by ULP")
	}
}

func TestRol8(t *testing.T) {
	tests := []struct {
		value byte
		count int
		want  byte
	}{
		{0x93, 0, 0x93},
		{0x93, 1, 0x27},
		{0x93, 4, 0x39},
		{0x93, 7, 0xC9},
		{0x01, 8, 0x01},
	}
	for _, tt := range tests {
		if got := Rol8(tt.value, tt.count); got != tt.want {
			t.Errorf("Rol8(%#x, %d) = %#x, want %#x", tt.value, tt.count, got, tt.want)
		}
	}
}

func TestReveal(t *testing.T) {
	// Mask "name" by hand: len 4, mask = rol8(0x93, 4) = 0x39.
	masked := make([]byte, 4)
	for i, c := range []byte("name") {
		masked[i] = c ^ 0x39
	}
	if got := Reveal(string(masked)); got != "name" {
		t.Errorf("Reveal = %q, want name", got)
	}
}

func TestRevealEmpty(t *testing.T) {
	if Reveal("") != "" {
		t.Error("Empty string must reveal to itself")
	}
}
