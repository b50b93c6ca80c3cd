package protojson

import (
	"encoding/base64"
	"strconv"
)

// Number constrains the numeric storage types of the supported scalars
type Number interface {
	float32 | float64 | int32 | int64 | uint32 | uint64
}

// read status of a single value
const (
	statusOK = iota
	statusNil
	statusErr
)

// parseNumber converts JSON number text into the target storage type
func parseNumber[T Number](text string) (T, bool) {
	var zero T
	switch p := any(&zero).(type) {
	case *float64:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return zero, false
		}
		*p = v
	case *float32:
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return zero, false
		}
		*p = float32(v)
	case *int32:
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return zero, false
		}
		*p = int32(v)
	case *int64:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return zero, false
		}
		*p = v
	case *uint32:
		v, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return zero, false
		}
		*p = uint32(v)
	case *uint64:
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return zero, false
		}
		*p = v
	}
	return zero, true
}

// readNumberValue consumes one numeric value. null yields statusNil.
func readNumberValue[T Number](t *Tokenizer) (T, int) {
	var zero T
	tok := t.Peek()
	if tok.Kind == TokNull {
		t.Next()
		return zero, statusNil
	}
	if tok.Kind != TokNumber {
		t.Fail(CodeInvalidValue, "invalid numeric value")
		return zero, statusErr
	}
	value, ok := parseNumber[T](tok.Value)
	if !ok {
		t.Fail(CodeInvalidValue, "invalid numeric value")
		return zero, statusErr
	}
	t.Next()
	return value, statusOK
}

// readNumberField reads one numeric value into a presence field.
// Returns true when the field was populated; null clears it.
func readNumberField[T Number](t *Tokenizer, f *Field[T]) bool {
	value, status := readNumberValue[T](t)
	switch status {
	case statusOK:
		f.Set(value)
		return true
	case statusNil:
		f.Clear()
	}
	return false
}

// ReadFloat64 reads a double value
func (t *Tokenizer) ReadFloat64(f *Field[float64]) bool { return readNumberField(t, f) }

// ReadFloat32 reads a float value
func (t *Tokenizer) ReadFloat32(f *Field[float32]) bool { return readNumberField(t, f) }

// ReadInt32 reads an int32, sint32, or sfixed32 value
func (t *Tokenizer) ReadInt32(f *Field[int32]) bool { return readNumberField(t, f) }

// ReadInt64 reads an int64, sint64, or sfixed64 value
func (t *Tokenizer) ReadInt64(f *Field[int64]) bool { return readNumberField(t, f) }

// ReadUint32 reads a uint32 or fixed32 value
func (t *Tokenizer) ReadUint32(f *Field[uint32]) bool { return readNumberField(t, f) }

// ReadUint64 reads a uint64 or fixed64 value
func (t *Tokenizer) ReadUint64(f *Field[uint64]) bool { return readNumberField(t, f) }

// ReadBool reads a boolean value
func (t *Tokenizer) ReadBool(f *Field[bool]) bool {
	tok := t.Peek()
	switch tok.Kind {
	case TokNull:
		t.Next()
		f.Clear()
		return false
	case TokTrue:
		t.Next()
		f.Set(true)
		return true
	case TokFalse:
		t.Next()
		f.Set(false)
		return true
	default:
		return t.Fail(CodeInvalidValue, "invalid boolean value")
	}
}

// ReadString reads a string value
func (t *Tokenizer) ReadString(f *Field[string]) bool {
	tok := t.Peek()
	switch tok.Kind {
	case TokNull:
		t.Next()
		f.Clear()
		return false
	case TokString:
		t.Next()
		f.Set(tok.Value)
		return true
	default:
		return t.Fail(CodeInvalidValue, "invalid string value")
	}
}

// ReadBytes reads a base64 string into a byte slice
func (t *Tokenizer) ReadBytes(dst *[]byte) bool {
	tok := t.Peek()
	switch tok.Kind {
	case TokNull:
		t.Next()
		*dst = nil
		return false
	case TokString:
		data, err := base64.StdEncoding.DecodeString(tok.Value)
		if err != nil {
			return t.Fail(CodeInvalidValue, "invalid base64 value")
		}
		t.Next()
		*dst = data
		return true
	default:
		return t.Fail(CodeInvalidValue, "invalid base64 value")
	}
}

// array openings
const (
	arrElems = iota
	arrEmpty
	arrNull
	arrErr
)

// beginArray consumes the opening of an array value
func (t *Tokenizer) beginArray() int {
	if t.current.Kind == TokNull {
		t.Next()
		return arrNull
	}
	if !t.Expect(TokArrayStart) {
		t.Fail(CodeInvalidArray, "invalid array")
		return arrErr
	}
	if t.Expect(TokArrayEnd) {
		return arrEmpty
	}
	return arrElems
}

// endArray consumes the element separator or the closing bracket
func (t *Tokenizer) endArray() (more, ok bool) {
	if t.Expect(TokComma) {
		return true, true
	}
	if t.Expect(TokArrayEnd) {
		return false, true
	}
	t.Fail(CodeInvalidArray, "invalid array")
	return false, false
}

// ReadNumberArray reads a repeated numeric field. null clears the slice;
// null elements inside the array are skipped.
func ReadNumberArray[T Number](t *Tokenizer, dst *[]T) bool {
	switch t.beginArray() {
	case arrNull:
		*dst = nil
		return false
	case arrErr:
		return false
	case arrEmpty:
		*dst = nil
		return true
	}
	var out []T
	for {
		value, status := readNumberValue[T](t)
		if status == statusErr {
			return false
		}
		if status == statusOK {
			out = append(out, value)
		}
		more, ok := t.endArray()
		if !ok {
			return false
		}
		if !more {
			break
		}
	}
	*dst = out
	return true
}

// ReadStringArray reads a repeated string field
func (t *Tokenizer) ReadStringArray(dst *[]string) bool {
	switch t.beginArray() {
	case arrNull:
		*dst = nil
		return false
	case arrErr:
		return false
	case arrEmpty:
		*dst = nil
		return true
	}
	var out []string
	for {
		tok := t.Peek()
		switch tok.Kind {
		case TokString:
			t.Next()
			out = append(out, tok.Value)
		case TokNull:
			t.Next()
		default:
			return t.Fail(CodeInvalidValue, "invalid string value")
		}
		more, ok := t.endArray()
		if !ok {
			return false
		}
		if !more {
			break
		}
	}
	*dst = out
	return true
}

// ReadBoolArray reads a repeated boolean field
func (t *Tokenizer) ReadBoolArray(dst *[]bool) bool {
	switch t.beginArray() {
	case arrNull:
		*dst = nil
		return false
	case arrErr:
		return false
	case arrEmpty:
		*dst = nil
		return true
	}
	var out []bool
	for {
		tok := t.Peek()
		switch tok.Kind {
		case TokTrue:
			t.Next()
			out = append(out, true)
		case TokFalse:
			t.Next()
			out = append(out, false)
		case TokNull:
			t.Next()
		default:
			return t.Fail(CodeInvalidValue, "invalid boolean value")
		}
		more, ok := t.endArray()
		if !ok {
			return false
		}
		if !more {
			break
		}
	}
	*dst = out
	return true
}

// ReadMessageArray reads a repeated message field using the message's
// generated reader. null elements are skipped.
func ReadMessageArray[M any](t *Tokenizer, dst *[]M, read func(*M, *Tokenizer) bool) bool {
	switch t.beginArray() {
	case arrNull:
		*dst = nil
		return false
	case arrErr:
		return false
	case arrEmpty:
		*dst = nil
		return true
	}
	var out []M
	for {
		var elem M
		present := read(&elem, t)
		if t.Failed() {
			return false
		}
		if present {
			out = append(out, elem)
		}
		more, ok := t.endArray()
		if !ok {
			return false
		}
		if !more {
			break
		}
	}
	*dst = out
	return true
}
