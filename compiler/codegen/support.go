package codegen

import "github.com/protogen-lang/protogen/compiler/parser"

// generateSupport emits Clear, Empty, Equal, and Swap for a message
func (g *Generator) generateSupport(plan *messagePlan) {
	goName := plan.goName

	// Clear
	g.writeLine("// Clear resets every field to its empty state.")
	g.writeLine("func (m *%s) Clear() {", goName)
	g.indent++
	for _, fp := range plan.fields {
		if isSlice(fp.field) {
			g.writeLine("m.%s = nil", fp.goName)
		} else {
			g.writeLine("m.%s.Clear()", fp.goName)
		}
	}
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	// Empty
	g.writeLine("// Empty reports whether every field is empty.")
	g.writeLine("func (m *%s) Empty() bool {", goName)
	g.indent++
	if len(plan.fields) == 0 {
		g.writeLine("return true")
	} else {
		for i, fp := range plan.fields {
			term := ""
			if isSlice(fp.field) {
				term = "len(m." + fp.goName + ") == 0"
			} else {
				term = "m." + fp.goName + ".Empty()"
			}
			switch {
			case len(plan.fields) == 1:
				g.writeLine("return %s", term)
			case i == 0:
				g.writeLine("return %s &&", term)
				g.indent++
			case i == len(plan.fields)-1:
				g.writeLine("%s", term)
				g.indent--
			default:
				g.writeLine("%s &&", term)
			}
		}
	}
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	// Equal
	g.writeLine("// Equal compares two messages field by field. Floating-point")
	g.writeLine("// values compare equal when within one ULP of each other.")
	g.writeLine("func (m *%s) Equal(that *%s) bool {", goName, goName)
	g.indent++
	if len(plan.fields) == 0 {
		g.writeLine("return true")
	} else {
		for i, fp := range plan.fields {
			term := g.equalTerm(fp)
			switch {
			case len(plan.fields) == 1:
				g.writeLine("return %s", term)
			case i == 0:
				g.writeLine("return %s &&", term)
				g.indent++
			case i == len(plan.fields)-1:
				g.writeLine("%s", term)
				g.indent--
			default:
				g.writeLine("%s &&", term)
			}
		}
	}
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	// Swap
	g.writeLine("// Swap exchanges the contents of two messages.")
	g.writeLine("func (m *%s) Swap(that *%s) {", goName, goName)
	g.indent++
	for _, fp := range plan.fields {
		if isSlice(fp.field) {
			g.writeLine("m.%s, that.%s = that.%s, m.%s", fp.goName, fp.goName, fp.goName, fp.goName)
		} else {
			g.writeLine("m.%s.Swap(&that.%s)", fp.goName, fp.goName)
		}
	}
	g.indent--
	g.writeLine("}")
	g.writeLine("")
}

// isSlice reports whether a field is stored as a slice
func isSlice(field *parser.Field) bool {
	return field.Type.ID == parser.TypeBytes || field.Type.Repeated
}

// equalTerm returns the comparison expression for one field
func (g *Generator) equalTerm(fp *fieldPlan) string {
	field := fp.field
	name := fp.goName
	switch {
	case field.Type.ID == parser.TypeBytes:
		return "protojson.EqualSlice(m." + name + ", that." + name + ")"
	case field.Type.Repeated && field.Type.ID == parser.TypeMessage:
		return "protojson.EqualMessageSlice(m." + name + ", that." + name + ", (*" + g.refName(field) + ").Equal)"
	case field.Type.Repeated && field.Type.ID == parser.TypeDouble:
		return "protojson.EqualFloat64Slice(m." + name + ", that." + name + ")"
	case field.Type.Repeated && field.Type.ID == parser.TypeFloat:
		return "protojson.EqualFloat32Slice(m." + name + ", that." + name + ")"
	case field.Type.Repeated:
		return "protojson.EqualSlice(m." + name + ", that." + name + ")"
	case field.Type.ID == parser.TypeMessage:
		return "m." + name + ".Equal(&that." + name + ")"
	case field.Type.ID == parser.TypeDouble:
		return "protojson.FieldEqualFloat64(m." + name + ", that." + name + ")"
	case field.Type.ID == parser.TypeFloat:
		return "protojson.FieldEqualFloat32(m." + name + ", that." + name + ")"
	default:
		return "m." + name + ".Equal(that." + name + ")"
	}
}
