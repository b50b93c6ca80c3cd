package codegen

import "github.com/protogen-lang/protogen/compiler/parser"

// generateDeserializer emits Deserialize and the internal read method.
// read returns false when the value was null or malformed; the error
// slot distinguishes the two.
func (g *Generator) generateDeserializer(plan *messagePlan) {
	g.writeLine("// Deserialize reads the message from a JSON object. Fields may")
	g.writeLine("// appear in any order; unknown keys are skipped.")
	g.writeLine("func (m *%s) Deserialize(in io.Reader, params *protojson.Parameters) error {", plan.goName)
	g.indent++
	g.writeLine("if params == nil {")
	g.indent++
	if g.emit.RequiredFields {
		g.writeLine("params = &protojson.Parameters{RequiredFields: true}")
	} else {
		g.writeLine("params = &protojson.Parameters{}")
	}
	g.indent--
	g.writeLine("}")
	g.writeLine("params.Error.Clear()")
	g.writeLine("data, err := io.ReadAll(in)")
	g.writeLine("if err != nil {")
	g.indent++
	g.writeLine("params.Error = protojson.ErrorInfo{Code: protojson.CodeInvalidObject, Message: err.Error()}")
	g.writeLine("return err")
	g.indent--
	g.writeLine("}")
	g.writeLine("dec := protojson.NewTokenizer(data, params)")
	g.writeLine("m.read(dec)")
	g.writeLine("if !params.Error.OK() {")
	g.indent++
	g.writeLine("return &params.Error")
	g.indent--
	g.writeLine("}")
	g.writeLine("return nil")
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	g.writeLine("func (m *%s) read(dec *protojson.Tokenizer) bool {", plan.goName)
	g.indent++
	g.writeLine("if dec.ConsumeNull() {")
	g.indent++
	g.writeLine("m.Clear()")
	g.writeLine("return false")
	g.indent--
	g.writeLine("}")
	g.writeLine("if !dec.Expect(protojson.TokObjectStart) {")
	g.indent++
	g.writeLine("dec.Fail(protojson.CodeInvalidObject, \"objects must start with '{'\")")
	g.writeLine("return false")
	g.indent--
	g.writeLine("}")
	if plan.persistent > 0 {
		g.writeLine("var seen uint32")
	}
	g.writeLine("if !dec.Expect(protojson.TokObjectEnd) {")
	g.indent++
	g.writeLine("for {")
	g.indent++
	g.writeLine("key, ok := dec.Key()")
	g.writeLine("if !ok {")
	g.indent++
	g.writeLine("return false")
	g.indent--
	g.writeLine("}")

	if plan.persistent > 0 {
		g.writeLine("switch key {")
		for _, fp := range plan.fields {
			if fp.transient {
				continue
			}
			g.writeLine("case %s:", g.keyExpr(fp.label))
			g.indent++
			g.generateFieldRead(fp)
			g.indent--
		}
		g.writeLine("default:")
		g.indent++
		g.writeLine("dec.Ignore()")
		g.indent--
		g.writeLine("}")
	} else {
		g.writeLine("_ = key")
		g.writeLine("dec.Ignore()")
	}

	g.writeLine("if dec.Failed() {")
	g.indent++
	g.writeLine("return false")
	g.indent--
	g.writeLine("}")
	g.writeLine("if dec.Expect(protojson.TokComma) {")
	g.indent++
	g.writeLine("continue")
	g.indent--
	g.writeLine("}")
	g.writeLine("if dec.Expect(protojson.TokObjectEnd) {")
	g.indent++
	g.writeLine("break")
	g.indent--
	g.writeLine("}")
	g.writeLine("dec.Fail(protojson.CodeInvalidObject, \"invalid JSON object\")")
	g.writeLine("return false")
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")

	// Presence checks in declaration order: the first missing field wins.
	for _, fp := range plan.fields {
		if fp.transient {
			continue
		}
		if fp.required {
			g.writeLine("if seen&(1<<%d) == 0 {", fp.bit)
		} else {
			g.writeLine("if dec.RequireAll() && seen&(1<<%d) == 0 {", fp.bit)
		}
		g.indent++
		g.writeLine("dec.MissingField(%s)", g.keyExpr(fp.label))
		g.writeLine("return false")
		g.indent--
		g.writeLine("}")
	}

	g.writeLine("return true")
	g.indent--
	g.writeLine("}")
	g.writeLine("")
}

// generateFieldRead emits the value read and presence-bit update of one
// dispatch arm.
func (g *Generator) generateFieldRead(fp *fieldPlan) {
	field := fp.field

	var call string
	switch {
	case field.Type.ID == parser.TypeBytes:
		call = "dec.ReadBytes(&m." + fp.goName + ")"
	case field.Type.Repeated && field.Type.ID == parser.TypeMessage:
		call = "protojson.ReadMessageArray(dec, &m." + fp.goName + ", (*" + g.refName(field) + ").read)"
	case field.Type.Repeated && field.Type.ID == parser.TypeString:
		call = "dec.ReadStringArray(&m." + fp.goName + ")"
	case field.Type.Repeated && field.Type.ID == parser.TypeBool:
		call = "dec.ReadBoolArray(&m." + fp.goName + ")"
	case field.Type.Repeated:
		call = "protojson.ReadNumberArray(dec, &m." + fp.goName + ")"
	case field.Type.ID == parser.TypeMessage:
		call = "m." + fp.goName + ".read(dec)"
	default:
		call = "dec." + readCall(field.Type.ID) + "(&m." + fp.goName + ")"
	}

	g.writeLine("if %s {", call)
	g.indent++
	g.writeLine("seen |= 1 << %d", fp.bit)
	g.indent--
	g.writeLine("}")
}
