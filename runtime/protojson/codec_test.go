package protojson

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadNumbers(t *testing.T) {
	params := &Parameters{}
	tok := NewTokenizer([]byte("36"), params)
	var age Field[int32]
	if !tok.ReadInt32(&age) {
		t.Fatalf("Read failed: %+v", params.Error)
	}
	if age.Empty() || age.Get() != 36 {
		t.Errorf("Expected 36, got %v", age.Get())
	}
}

func TestReadNumberNull(t *testing.T) {
	params := &Parameters{}
	tok := NewTokenizer([]byte("null"), params)
	age := Of[int32](7)
	if tok.ReadInt32(&age) {
		t.Fatal("null must report absent")
	}
	if !age.Empty() {
		t.Error("null must clear the field")
	}
	if !params.Error.OK() {
		t.Errorf("null is not an error: %+v", params.Error)
	}
}

func TestReadNumberWrongToken(t *testing.T) {
	params := &Parameters{}
	tok := NewTokenizer([]byte(`"nope"`), params)
	var age Field[int32]
	if tok.ReadInt32(&age) {
		t.Fatal("Expected failure")
	}
	if params.Error.Code != CodeInvalidValue {
		t.Errorf("Expected CodeInvalidValue, got %v", params.Error.Code)
	}
}

func TestReadNumberVariants(t *testing.T) {
	params := &Parameters{}

	var d Field[float64]
	if !NewTokenizer([]byte("3.25"), params).ReadFloat64(&d) || d.Get() != 3.25 {
		t.Errorf("float64: got %v", d.Get())
	}
	var u Field[uint64]
	if !NewTokenizer([]byte("18446744073709551615"), params).ReadUint64(&u) || u.Get() != 18446744073709551615 {
		t.Errorf("uint64 max: got %v", u.Get())
	}
	var i Field[int64]
	if !NewTokenizer([]byte("-42"), params).ReadInt64(&i) || i.Get() != -42 {
		t.Errorf("int64: got %v", i.Get())
	}
	var f Field[float32]
	if !NewTokenizer([]byte("1e3"), params).ReadFloat32(&f) || f.Get() != 1000 {
		t.Errorf("float32: got %v", f.Get())
	}
}

func TestReadBoolAndString(t *testing.T) {
	params := &Parameters{}

	var b Field[bool]
	if !NewTokenizer([]byte("true"), params).ReadBool(&b) || b.Get() != true {
		t.Error("bool true")
	}
	var s Field[string]
	if !NewTokenizer([]byte(`"Ada"`), params).ReadString(&s) || s.Get() != "Ada" {
		t.Error("string Ada")
	}
}

func TestReadBytes(t *testing.T) {
	params := &Parameters{}
	var data []byte
	if !NewTokenizer([]byte(`"3q2+7w=="`), params).ReadBytes(&data) {
		t.Fatalf("Read failed: %+v", params.Error)
	}
	if !bytes.Equal(data, []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf("Expected DE AD BE EF, got % X", data)
	}
}

func TestReadBytesInvalid(t *testing.T) {
	params := &Parameters{}
	var data []byte
	if NewTokenizer([]byte(`"!!!"`), params).ReadBytes(&data) {
		t.Fatal("Expected failure")
	}
	if params.Error.Code != CodeInvalidValue {
		t.Errorf("Expected CodeInvalidValue, got %v", params.Error.Code)
	}
}

func TestReadArrays(t *testing.T) {
	params := &Parameters{}

	var nums []int32
	if !ReadNumberArray(NewTokenizer([]byte("[1, 2, 3]"), params), &nums) {
		t.Fatalf("Read failed: %+v", params.Error)
	}
	if len(nums) != 3 || nums[0] != 1 || nums[2] != 3 {
		t.Errorf("Expected [1 2 3], got %v", nums)
	}

	var names []string
	if !NewTokenizer([]byte(`["Bob","Cy"]`), params).ReadStringArray(&names) {
		t.Fatalf("Read failed: %+v", params.Error)
	}
	if len(names) != 2 || names[0] != "Bob" || names[1] != "Cy" {
		t.Errorf("Expected [Bob Cy], got %v", names)
	}

	var flags []bool
	if !NewTokenizer([]byte("[true,false]"), params).ReadBoolArray(&flags) {
		t.Fatalf("Read failed: %+v", params.Error)
	}
	if len(flags) != 2 || !flags[0] || flags[1] {
		t.Errorf("Expected [true false], got %v", flags)
	}
}

func TestReadArrayNullElementsSkipped(t *testing.T) {
	params := &Parameters{}
	var nums []int32
	if !ReadNumberArray(NewTokenizer([]byte("[1, null, 3]"), params), &nums) {
		t.Fatalf("Read failed: %+v", params.Error)
	}
	if len(nums) != 2 || nums[0] != 1 || nums[1] != 3 {
		t.Errorf("Expected [1 3], got %v", nums)
	}
}

func TestReadArrayNull(t *testing.T) {
	params := &Parameters{}
	nums := []int32{9}
	if ReadNumberArray(NewTokenizer([]byte("null"), params), &nums) {
		t.Fatal("null must report absent")
	}
	if nums != nil {
		t.Error("null must clear the slice")
	}
}

func TestReadEmptyArray(t *testing.T) {
	params := &Parameters{}
	var nums []int32
	if !ReadNumberArray(NewTokenizer([]byte("[]"), params), &nums) {
		t.Fatalf("Empty array must read: %+v", params.Error)
	}
	if len(nums) != 0 {
		t.Errorf("Expected empty, got %v", nums)
	}
}

func TestEncoderObject(t *testing.T) {
	var buf bytes.Buffer
	params := &Parameters{}
	enc := NewEncoder(&buf, params)

	enc.BeginObject()
	enc.Key("name")
	enc.WriteString("Ada")
	enc.Key("age")
	enc.WriteInt32(36)
	enc.EndObject()
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}

	if buf.String() != `{"name":"Ada","age":36}` {
		t.Errorf("Got %s", buf.String())
	}
}

func TestEncoderNestedArrays(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, &Parameters{})

	enc.BeginObject()
	enc.Key("friends")
	enc.WriteStringArray([]string{"Bob", "Cy"})
	enc.Key("nums")
	WriteNumberArray(enc, []int32{1, 2})
	enc.EndObject()
	enc.Flush()

	if buf.String() != `{"friends":["Bob","Cy"],"nums":[1,2]}` {
		t.Errorf("Got %s", buf.String())
	}
}

func TestEncoderBytesBase64(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, &Parameters{})
	enc.WriteBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	enc.Flush()

	if buf.String() != `"3q2+7w=="` {
		t.Errorf("Expected \"3q2+7w==\", got %s", buf.String())
	}
}

func TestEncoderStringEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"quote", `a"b`, `"a\"b"`},
		{"backslash", `a\b`, `"a\\b"`},
		{"slash", "a/b", `"a\/b"`},
		{"control", "a\nb\tc", `"a\nb\tc"`},
		{"other control", "a\x01b", `"a\u0001b"`},
		{"utf8 passthrough", "héllo", `"héllo"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := NewEncoder(&buf, &Parameters{})
			enc.WriteString(tt.input)
			enc.Flush()
			if buf.String() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, buf.String())
			}
		})
	}
}

func TestEncoderEnsureASCII(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"two byte", "é", `"\u00e9"`},
		{"three byte", "世", `"\u4e16"`},
		{"surrogate pair", "😀", `"\ud83d\ude00"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := NewEncoder(&buf, &Parameters{EnsureASCII: true})
			enc.WriteString(tt.input)
			enc.Flush()
			if buf.String() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, buf.String())
			}
		})
	}
}

func TestEnsureASCIIRoundTrip(t *testing.T) {
	input := "héllo 世界 😀"
	var buf bytes.Buffer
	enc := NewEncoder(&buf, &Parameters{EnsureASCII: true})
	enc.WriteString(input)
	enc.Flush()

	if strings.IndexFunc(buf.String(), func(r rune) bool { return r >= 0x80 }) >= 0 {
		t.Fatalf("Output not ASCII: %s", buf.String())
	}

	params := &Parameters{}
	tok := NewTokenizer(buf.Bytes(), params)
	var s Field[string]
	if !tok.ReadString(&s) {
		t.Fatalf("Read failed: %+v", params.Error)
	}
	if s.Get() != input {
		t.Errorf("Round trip mismatch: %q", s.Get())
	}
}

func TestNumberFormatting(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, &Parameters{})
	enc.BeginArray()
	enc.WriteFloat64(3.25)
	enc.WriteFloat64(-1)
	enc.WriteUint64(18446744073709551615)
	enc.WriteInt64(-9223372036854775808)
	enc.EndArray()
	enc.Flush()

	if buf.String() != "[3.25,-1,18446744073709551615,-9223372036854775808]" {
		t.Errorf("Got %s", buf.String())
	}
}
