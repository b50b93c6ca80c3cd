package codegen

import "github.com/protogen-lang/protogen/compiler/parser"

// refName returns the Go type name of the message a field references
func (g *Generator) refName(field *parser.Field) string {
	return toGoFieldName(g.schema.Messages[field.Type.Ref].Name)
}

// goFieldType maps a declared field type to its storage type.
// Scalars get a presence wrapper; bytes and repeated fields are slices
// whose presence is their emptiness; nested messages nest by value.
func (g *Generator) goFieldType(field *parser.Field) string {
	if field.Type.ID == parser.TypeBytes {
		return "[]byte"
	}
	if field.Type.Repeated {
		if field.Type.ID == parser.TypeMessage {
			return "[]" + g.refName(field)
		}
		return "[]" + goScalar(field.Type.ID)
	}
	if field.Type.ID == parser.TypeMessage {
		return g.refName(field)
	}
	return "protojson.Field[" + goScalar(field.Type.ID) + "]"
}

// generateStruct emits the message data structure
func (g *Generator) generateStruct(plan *messagePlan) {
	g.writeLine("// %s mirrors the schema message '%s'.", plan.goName, plan.message.QualifiedName())
	g.writeLine("type %s struct {", plan.goName)
	g.indent++
	for _, fp := range plan.fields {
		g.writeLine("%s %s", fp.goName, g.goFieldType(fp.field))
	}
	g.indent--
	g.writeLine("}")
	g.writeLine("")
}
