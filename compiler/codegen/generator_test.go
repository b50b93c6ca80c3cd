package codegen

import (
	"strconv"
	"strings"
	"testing"

	"github.com/protogen-lang/protogen/compiler/errors"
	"github.com/protogen-lang/protogen/compiler/lexer"
	"github.com/protogen-lang/protogen/compiler/parser"
	"github.com/protogen-lang/protogen/compiler/resolver"
	"github.com/protogen-lang/protogen/runtime/protojson"
)

// compile runs the full front half of the pipeline and the generator
func compile(t *testing.T, source string) (string, *Generator, error) {
	t.Helper()
	lex := lexer.New(source, "test.proto")
	tokens, lexErrors := lex.ScanTokens()
	if len(lexErrors) > 0 {
		t.Fatalf("Unexpected lex errors: %v", lexErrors)
	}
	schema, err := parser.New(tokens, "test.proto").Parse()
	if err != nil {
		t.Fatalf("Unexpected parse error: %v", err)
	}
	if err := resolver.Resolve(schema); err != nil {
		t.Fatalf("Unexpected resolve error: %v", err)
	}
	gen := NewGenerator()
	code, err := gen.Generate(schema, Options{})
	return code, gen, err
}

// mustCompile fails the test on a generation error
func mustCompile(t *testing.T, source string) string {
	t.Helper()
	code, _, err := compile(t, source)
	if err != nil {
		t.Fatalf("Unexpected generate error: %v", err)
	}
	return code
}

func TestGeneratedHeader(t *testing.T) {
	code := mustCompile(t, `syntax = "proto3"; message P { string name = 1; }`)

	if !strings.HasPrefix(code, "// Code generated by protogen from test.proto. DO NOT EDIT.") {
		t.Error("Missing generated-code header")
	}
	if !strings.Contains(code, "package model") {
		t.Error("Expected default package name 'model'")
	}
	if !strings.Contains(code, `"github.com/protogen-lang/protogen/runtime/protojson"`) {
		t.Error("Missing runtime import")
	}
}

func TestPackageNameFromProtoPackage(t *testing.T) {
	code := mustCompile(t, "package a.b.demo;\nmessage P { string name = 1; }")
	if !strings.Contains(code, "package demo") {
		t.Error("Expected package derived from last proto package segment")
	}
}

func TestPackageOverride(t *testing.T) {
	lex := lexer.New("message P { string name = 1; }", "test.proto")
	tokens, _ := lex.ScanTokens()
	schema, err := parser.New(tokens, "test.proto").Parse()
	if err != nil {
		t.Fatal(err)
	}
	if err := resolver.Resolve(schema); err != nil {
		t.Fatal(err)
	}
	code, err := NewGenerator().Generate(schema, Options{Package: "wire"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(code, "package wire") {
		t.Error("Expected package override to win")
	}
}

func TestRequiredFieldsDefaultCompiledIn(t *testing.T) {
	lex := lexer.New("message P { string name = 1; }", "test.proto")
	tokens, _ := lex.ScanTokens()
	schema, err := parser.New(tokens, "test.proto").Parse()
	if err != nil {
		t.Fatal(err)
	}
	if err := resolver.Resolve(schema); err != nil {
		t.Fatal(err)
	}

	code, err := NewGenerator().Generate(schema, Options{RequiredFields: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(code, "params = &protojson.Parameters{RequiredFields: true}") {
		t.Error("Expected the required-fields default in the emitted Deserialize")
	}

	code, err = NewGenerator().Generate(schema, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(code, "RequiredFields: true") {
		t.Error("Required-fields default must be off unless configured")
	}
}

func TestStructFields(t *testing.T) {
	code := mustCompile(t, `message P {
  string name = 1;
  int32 age = 2;
  repeated string friends = 3;
  bytes data = 4;
  double score = 5;
  bool ok = 6;
  repeated uint64 ids = 7;
}`)

	wants := []string{
		"type P struct {",
		"Name protojson.Field[string]",
		"Age protojson.Field[int32]",
		"Friends []string",
		"Data []byte",
		"Score protojson.Field[float64]",
		"Ok protojson.Field[bool]",
		"Ids []uint64",
	}
	for _, want := range wants {
		if !strings.Contains(code, want) {
			t.Errorf("Missing %q in generated struct", want)
		}
	}
}

func TestNestedMessageStorage(t *testing.T) {
	code := mustCompile(t, `message Inner { string label = 1; }
message Outer {
  Inner one = 1;
  repeated Inner many = 2;
}`)

	if !strings.Contains(code, "One Inner") {
		t.Error("Nested message must be stored by value")
	}
	if !strings.Contains(code, "Many []Inner") {
		t.Error("Repeated nested message must be a slice")
	}
	if !strings.Contains(code, "protojson.ReadMessageArray(dec, &m.Many, (*Inner).read)") {
		t.Error("Missing repeated message reader")
	}
	if !strings.Contains(code, "protojson.WriteMessageArray(enc, m.Many, (*Inner).write)") {
		t.Error("Missing repeated message writer")
	}
}

func TestEmitOrderFollowsResolvedOrder(t *testing.T) {
	code := mustCompile(t, `message Outer { Inner in = 1; }
message Inner { string label = 1; }`)

	inner := strings.Index(code, "type Inner struct")
	outer := strings.Index(code, "type Outer struct")
	if inner < 0 || outer < 0 {
		t.Fatal("Missing generated structs")
	}
	if inner > outer {
		t.Error("Inner must be emitted before the message that references it")
	}
}

func TestSerializerFieldOrderAndKeys(t *testing.T) {
	code := mustCompile(t, `message P {
  string name = 1;
  int32 age = 2;
}`)

	name := strings.Index(code, `enc.Key("name")`)
	age := strings.Index(code, `enc.Key("age")`)
	if name < 0 || age < 0 {
		t.Fatal("Missing key writes")
	}
	if name > age {
		t.Error("Fields must serialize in declaration order")
	}
	if !strings.Contains(code, "enc.WriteString(m.Name.Get())") {
		t.Error("Missing string write")
	}
	if !strings.Contains(code, "enc.WriteInt32(m.Age.Get())") {
		t.Error("Missing int32 write")
	}
}

func TestNumberNamesUseFieldIndexes(t *testing.T) {
	code := mustCompile(t, `option number_names = true;
message P {
  string name = 10;
  int32 age = 2;
}`)

	if !strings.Contains(code, `enc.Key("10")`) || !strings.Contains(code, `enc.Key("2")`) {
		t.Error("Expected decimal field indexes as keys")
	}
	if strings.Contains(code, `enc.Key("name")`) {
		t.Error("Field name must not be used as key under number_names")
	}
	if !strings.Contains(code, `case "10":`) {
		t.Error("Dispatch must use the numeric key")
	}
}

func TestNameOverride(t *testing.T) {
	code := mustCompile(t, `message P { string name = 1 [name = "n"]; }`)

	if !strings.Contains(code, `enc.Key("n")`) {
		t.Error("Expected overridden key")
	}
	if strings.Contains(code, `enc.Key("name")`) {
		t.Error("Declared name must not be emitted as key")
	}
}

func TestNameOverrideQuotesRejected(t *testing.T) {
	_, _, err := compile(t, `message P { string name = 1 [name = "a'b"]; }`)
	if err == nil {
		t.Fatal("Expected an error for quote in name override")
	}
	cerr := err.(*errors.CompilerError)
	if cerr.Code != errors.CodeOptionValue {
		t.Errorf("Expected %s, got %s", errors.CodeOptionValue, cerr.Code)
	}
}

func TestOptionKindChecked(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"obfuscate_strings string", `option obfuscate_strings = "yes"; message P { string f = 1; }`},
		{"number_names integer", `option number_names = 1; message P { string f = 1; }`},
		{"transient identifier", `message P { string f = 1 [transient = yes]; }`},
		{"name boolean", `message P { string f = 1 [name = true]; }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := compile(t, tt.source)
			if err == nil {
				t.Fatal("Expected an option kind error")
			}
			cerr := err.(*errors.CompilerError)
			if cerr.Code != errors.CodeOptionKind {
				t.Errorf("Expected %s, got %s", errors.CodeOptionKind, cerr.Code)
			}
		})
	}
}

func TestTransientField(t *testing.T) {
	code := mustCompile(t, `message P {
  string name = 1;
  string scratch = 2 [transient = true];
}`)

	if !strings.Contains(code, "Scratch protojson.Field[string]") {
		t.Error("Transient field must remain in the struct")
	}
	if strings.Contains(code, `enc.Key("scratch")`) {
		t.Error("Transient field must not serialize")
	}
	if strings.Contains(code, `case "scratch":`) {
		t.Error("Transient field must not deserialize")
	}
	if !strings.Contains(code, "m.Scratch.Clear()") {
		t.Error("Transient field must still clear")
	}
}

func TestTransientRequiredConflict(t *testing.T) {
	_, _, err := compile(t, `message P { string f = 1 [transient = true, required = true]; }`)
	if err == nil {
		t.Fatal("Expected a conflict error")
	}
	cerr := err.(*errors.CompilerError)
	if cerr.Code != errors.CodeOptionConflict {
		t.Errorf("Expected %s, got %s", errors.CodeOptionConflict, cerr.Code)
	}
}

func TestRequiredFieldCheckedUnconditionally(t *testing.T) {
	code := mustCompile(t, `message P {
  string a = 1;
  string b = 2 [required = true];
}`)

	if !strings.Contains(code, "if dec.RequireAll() && seen&(1<<0) == 0 {") {
		t.Error("Optional field must be checked only in required mode")
	}
	if !strings.Contains(code, "if seen&(1<<1) == 0 {") {
		t.Error("Required field must be checked unconditionally")
	}
}

func TestUnknownOptionWarns(t *testing.T) {
	_, gen, err := compile(t, `option shiny = true; message P { string f = 1; }`)
	if err != nil {
		t.Fatalf("Unknown option must not fail compilation: %v", err)
	}
	if len(gen.Warnings()) == 0 {
		t.Fatal("Expected a warning for the unknown option")
	}
	if gen.Warnings()[0].Severity != errors.Warning {
		t.Error("Expected warning severity")
	}
}

func TestObfuscatedArtifactHidesKeys(t *testing.T) {
	code := mustCompile(t, `option obfuscate_strings = true;
message P { string name = 1; }`)

	// The key literal must not survive in plaintext anywhere in the
	// serializer or deserializer.
	if strings.Contains(code, `"name"`) {
		t.Error("Plaintext key literal found in obfuscated artifact")
	}
	if !strings.Contains(code, "protojson.Reveal(") {
		t.Error("Expected Reveal calls for obfuscated keys")
	}
}

func TestObfuscateRoundTrip(t *testing.T) {
	keys := []string{"name", "a", "friends", "eight888", "long_field_name"}
	for _, key := range keys {
		// Interpret the emitted \xHH escapes the way the Go compiler
		// would, then reveal.
		raw, err := strconv.Unquote(`"` + obfuscate(key) + `"`)
		if err != nil {
			t.Fatalf("obfuscate(%q) produced a bad literal: %v", key, err)
		}
		if got := protojson.Reveal(raw); got != key {
			t.Errorf("Reveal(obfuscate(%q)) = %q", key, got)
		}
	}
}

func TestEmptyMessage(t *testing.T) {
	code := mustCompile(t, "message Void {}")

	wants := []string{
		"type Void struct {",
		"func (m *Void) Empty() bool {",
		"return true",
		"func (m *Void) write(enc *protojson.Encoder) {",
	}
	for _, want := range wants {
		if !strings.Contains(code, want) {
			t.Errorf("Missing %q", want)
		}
	}
}

func TestFloatEqualityUsesULP(t *testing.T) {
	code := mustCompile(t, `message P {
  double d = 1;
  float f = 2;
  repeated double ds = 3;
}`)

	wants := []string{
		"protojson.FieldEqualFloat64(m.D, that.D)",
		"protojson.FieldEqualFloat32(m.F, that.F)",
		"protojson.EqualFloat64Slice(m.Ds, that.Ds)",
	}
	for _, want := range wants {
		if !strings.Contains(code, want) {
			t.Errorf("Missing %q", want)
		}
	}
}

func TestSupportOperations(t *testing.T) {
	code := mustCompile(t, `message P {
  string name = 1;
  repeated int32 nums = 2;
}`)

	wants := []string{
		"func (m *P) Clear() {",
		"m.Name.Clear()",
		"m.Nums = nil",
		"func (m *P) Empty() bool {",
		"len(m.Nums) == 0",
		"func (m *P) Swap(that *P) {",
		"m.Name.Swap(&that.Name)",
		"m.Nums, that.Nums = that.Nums, m.Nums",
	}
	for _, want := range wants {
		if !strings.Contains(code, want) {
			t.Errorf("Missing %q", want)
		}
	}
}

func TestBytesUseBase64Helpers(t *testing.T) {
	code := mustCompile(t, "message B { bytes data = 1; repeated bytes blob = 2; }")

	if !strings.Contains(code, "enc.WriteBytes(m.Data)") {
		t.Error("Missing bytes writer")
	}
	if !strings.Contains(code, "dec.ReadBytes(&m.Data)") {
		t.Error("Missing bytes reader")
	}
	// bytes stays a byte sequence independent of repeated
	if !strings.Contains(code, "Blob []byte") {
		t.Error("repeated bytes must remain a byte sequence")
	}
}
