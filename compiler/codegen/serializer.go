package codegen

import "github.com/protogen-lang/protogen/compiler/parser"

// generateSerializer emits Serialize and the internal write method.
// Fields are written in declaration order; empty fields are omitted
// unless the serialize-null parameter asks for explicit nulls.
func (g *Generator) generateSerializer(plan *messagePlan) {
	g.writeLine("// Serialize writes the message as a JSON object.")
	g.writeLine("func (m *%s) Serialize(out io.Writer, params *protojson.Parameters) error {", plan.goName)
	g.indent++
	g.writeLine("if params == nil {")
	g.indent++
	g.writeLine("params = &protojson.Parameters{}")
	g.indent--
	g.writeLine("}")
	g.writeLine("params.Error.Clear()")
	g.writeLine("enc := protojson.NewEncoder(out, params)")
	g.writeLine("m.write(enc)")
	g.writeLine("return enc.Flush()")
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	g.writeLine("func (m *%s) write(enc *protojson.Encoder) {", plan.goName)
	g.indent++
	g.writeLine("enc.BeginObject()")
	for _, fp := range plan.fields {
		if fp.transient {
			continue
		}
		g.generateFieldWrite(fp)
	}
	g.writeLine("enc.EndObject()")
	g.indent--
	g.writeLine("}")
	g.writeLine("")
}

// generateFieldWrite emits the presence-guarded write of one field
func (g *Generator) generateFieldWrite(fp *fieldPlan) {
	key := g.keyExpr(fp.label)
	field := fp.field

	switch {
	case field.Type.ID == parser.TypeBytes:
		g.writeLine("if len(m.%s) > 0 {", fp.goName)
		g.indent++
		g.writeLine("enc.Key(%s)", key)
		g.writeLine("enc.WriteBytes(m.%s)", fp.goName)
	case field.Type.Repeated && field.Type.ID == parser.TypeMessage:
		g.writeLine("if len(m.%s) > 0 {", fp.goName)
		g.indent++
		g.writeLine("enc.Key(%s)", key)
		g.writeLine("protojson.WriteMessageArray(enc, m.%s, (*%s).write)", fp.goName, g.refName(field))
	case field.Type.Repeated && field.Type.ID == parser.TypeString:
		g.writeLine("if len(m.%s) > 0 {", fp.goName)
		g.indent++
		g.writeLine("enc.Key(%s)", key)
		g.writeLine("enc.WriteStringArray(m.%s)", fp.goName)
	case field.Type.Repeated && field.Type.ID == parser.TypeBool:
		g.writeLine("if len(m.%s) > 0 {", fp.goName)
		g.indent++
		g.writeLine("enc.Key(%s)", key)
		g.writeLine("enc.WriteBoolArray(m.%s)", fp.goName)
	case field.Type.Repeated:
		g.writeLine("if len(m.%s) > 0 {", fp.goName)
		g.indent++
		g.writeLine("enc.Key(%s)", key)
		g.writeLine("protojson.WriteNumberArray(enc, m.%s)", fp.goName)
	case field.Type.ID == parser.TypeMessage:
		g.writeLine("if !m.%s.Empty() {", fp.goName)
		g.indent++
		g.writeLine("enc.Key(%s)", key)
		g.writeLine("m.%s.write(enc)", fp.goName)
	default:
		g.writeLine("if !m.%s.Empty() {", fp.goName)
		g.indent++
		g.writeLine("enc.Key(%s)", key)
		g.writeLine("enc.%s(m.%s.Get())", writeCall(field.Type.ID), fp.goName)
	}

	g.indent--
	g.writeLine("} else if enc.SerializeNull() {")
	g.indent++
	g.writeLine("enc.Key(%s)", key)
	g.writeLine("enc.WriteNull()")
	g.indent--
	g.writeLine("}")
}
