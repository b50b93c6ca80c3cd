package protojson

import "math"

// EqualFloat64 compares two doubles with neighbor-epsilon equality: the
// values are equal when each lies within one ULP of the other.
func EqualFloat64(a, b float64) bool {
	return math.Nextafter(a, -math.MaxFloat64) <= b &&
		math.Nextafter(a, math.MaxFloat64) >= b
}

// EqualFloat32 is the single-precision counterpart of EqualFloat64
func EqualFloat32(a, b float32) bool {
	return math.Nextafter32(a, -math.MaxFloat32) <= b &&
		math.Nextafter32(a, math.MaxFloat32) >= b
}

// FieldEqualFloat64 compares two double fields, ULP-tolerant on the value
func FieldEqualFloat64(a, b Field[float64]) bool {
	return a.present == b.present && (!a.present || EqualFloat64(a.value, b.value))
}

// FieldEqualFloat32 compares two float fields, ULP-tolerant on the value
func FieldEqualFloat32(a, b Field[float32]) bool {
	return a.present == b.present && (!a.present || EqualFloat32(a.value, b.value))
}

// EqualSlice compares two slices element by element
func EqualSlice[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EqualMessageSlice compares two message slices using the message's
// generated equality.
func EqualMessageSlice[M any](a, b []M, equal func(*M, *M) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equal(&a[i], &b[i]) {
			return false
		}
	}
	return true
}

// EqualFloat64Slice compares two double slices with ULP tolerance
func EqualFloat64Slice(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualFloat64(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualFloat32Slice compares two float slices with ULP tolerance
func EqualFloat32Slice(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualFloat32(a[i], b[i]) {
			return false
		}
	}
	return true
}
