// Package codegen generates the Go JSON codec from a resolved schema.
// It walks the dependency-ordered message list and emits, per message,
// a data struct, serializer, deserializer, clear, empty, equal, and
// swap — all targeting the runtime/protojson contract.
package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/protogen-lang/protogen/compiler/errors"
	"github.com/protogen-lang/protogen/compiler/parser"
)

// runtimeImport is the import path of the runtime library the emitted
// code depends on.
const runtimeImport = "github.com/protogen-lang/protogen/runtime/protojson"

// Options configures a Generate call
type Options struct {
	// Package overrides the Go package name derived from the proto
	// package.
	Package string
	// RequiredFields compiles the required mode in as the default: the
	// emitted Deserialize treats a nil Parameters argument as
	// Parameters{RequiredFields: true}.
	RequiredFields bool
}

// Generator transforms a resolved schema into Go source text
type Generator struct {
	buf      *bytes.Buffer
	indent   int
	schema   *parser.Schema
	opts     schemaOptions
	emit     Options
	warnings []*errors.CompilerError
}

// NewGenerator creates a new code generator
func NewGenerator() *Generator {
	return &Generator{buf: &bytes.Buffer{}}
}

// Warnings returns the non-fatal findings of the last Generate call
func (g *Generator) Warnings() []*errors.CompilerError {
	return g.warnings
}

// Generate produces the output artifact for a resolved schema
func (g *Generator) Generate(schema *parser.Schema, emit Options) (string, error) {
	g.buf.Reset()
	g.indent = 0
	g.schema = schema
	g.emit = emit
	g.warnings = nil

	opts, err := g.resolveSchemaOptions(schema)
	if err != nil {
		return "", err
	}
	g.opts = opts

	messages := make([]*messagePlan, len(schema.Messages))
	for i, message := range schema.Messages {
		plan, err := g.planMessage(message)
		if err != nil {
			return "", err
		}
		messages[i] = plan
	}

	g.writeLine("// Code generated by protogen from %s. DO NOT EDIT.", schema.FileName)
	g.writeLine("")
	g.writeLine("package %s", g.packageName())
	if len(messages) > 0 {
		g.writeLine("")
		g.writeLine("import (")
		g.indent++
		g.writeLine("%q", "io")
		g.writeLine("")
		g.writeLine("%q", runtimeImport)
		g.indent--
		g.writeLine(")")
	}

	for _, plan := range messages {
		g.writeLine("")
		g.writeLine("//")
		g.writeLine("// %s", plan.message.QualifiedName())
		g.writeLine("//")
		g.writeLine("")
		g.generateStruct(plan)
		g.generateSerializer(plan)
		g.generateDeserializer(plan)
		g.generateSupport(plan)
	}

	return g.buf.String(), nil
}

// packageName derives the emitted Go package name from the proto
// package: the last dotted segment, or "model" when no package was
// declared.
func (g *Generator) packageName() string {
	if g.emit.Package != "" {
		return g.emit.Package
	}
	pkg := g.schema.Package
	if pkg == "" {
		return "model"
	}
	if i := strings.LastIndexByte(pkg, '.'); i >= 0 {
		pkg = pkg[i+1:]
	}
	return strings.ToLower(pkg)
}

// writeLine writes a formatted line with proper indentation
func (g *Generator) writeLine(format string, args ...interface{}) {
	if format == "" {
		g.buf.WriteString("\n")
		return
	}
	for i := 0; i < g.indent; i++ {
		g.buf.WriteString("\t")
	}
	if len(args) > 0 {
		g.buf.WriteString(fmt.Sprintf(format, args...))
	} else {
		g.buf.WriteString(format)
	}
	g.buf.WriteString("\n")
}

// toGoFieldName converts a snake_case field name to PascalCase
func toGoFieldName(name string) string {
	parts := strings.Split(name, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[0:1]) + part[1:]
		}
	}
	return strings.Join(parts, "")
}

// goScalar maps a numeric or simple scalar type to its Go storage type
func goScalar(id parser.FieldType) string {
	switch id {
	case parser.TypeDouble:
		return "float64"
	case parser.TypeFloat:
		return "float32"
	case parser.TypeInt32, parser.TypeSint32, parser.TypeSfixed32:
		return "int32"
	case parser.TypeInt64, parser.TypeSint64, parser.TypeSfixed64:
		return "int64"
	case parser.TypeUint32, parser.TypeFixed32:
		return "uint32"
	case parser.TypeUint64, parser.TypeFixed64:
		return "uint64"
	case parser.TypeBool:
		return "bool"
	case parser.TypeString:
		return "string"
	default:
		return ""
	}
}

// readCall returns the tokenizer call reading one value of the scalar
func readCall(id parser.FieldType) string {
	switch id {
	case parser.TypeDouble:
		return "ReadFloat64"
	case parser.TypeFloat:
		return "ReadFloat32"
	case parser.TypeInt32, parser.TypeSint32, parser.TypeSfixed32:
		return "ReadInt32"
	case parser.TypeInt64, parser.TypeSint64, parser.TypeSfixed64:
		return "ReadInt64"
	case parser.TypeUint32, parser.TypeFixed32:
		return "ReadUint32"
	case parser.TypeUint64, parser.TypeFixed64:
		return "ReadUint64"
	case parser.TypeBool:
		return "ReadBool"
	case parser.TypeString:
		return "ReadString"
	default:
		return ""
	}
}

// writeCall returns the encoder call writing one value of the scalar
func writeCall(id parser.FieldType) string {
	switch id {
	case parser.TypeDouble:
		return "WriteFloat64"
	case parser.TypeFloat:
		return "WriteFloat32"
	case parser.TypeInt32, parser.TypeSint32, parser.TypeSfixed32:
		return "WriteInt32"
	case parser.TypeInt64, parser.TypeSint64, parser.TypeSfixed64:
		return "WriteInt64"
	case parser.TypeUint32, parser.TypeFixed32:
		return "WriteUint32"
	case parser.TypeUint64, parser.TypeFixed64:
		return "WriteUint64"
	case parser.TypeBool:
		return "WriteBool"
	case parser.TypeString:
		return "WriteString"
	default:
		return ""
	}
}
