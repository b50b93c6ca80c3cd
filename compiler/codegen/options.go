package codegen

import (
	"fmt"
	"strings"

	"github.com/protogen-lang/protogen/compiler/errors"
	"github.com/protogen-lang/protogen/compiler/parser"
)

// Recognized option names
const (
	optObfuscateStrings = "obfuscate_strings"
	optNumberNames      = "number_names"
	optTransient        = "transient"
	optName             = "name"
	optRequired         = "required"
)

type schemaOptions struct {
	obfuscateStrings bool
	numberNames      bool
}

// fieldPlan carries the precomputed emission facts of one field
type fieldPlan struct {
	field     *parser.Field
	goName    string // struct field name
	label     string // plain JSON key
	bit       int    // presence-mask bit, -1 for transient fields
	transient bool
	required  bool
}

// messagePlan carries the precomputed emission facts of one message
type messagePlan struct {
	message    *parser.Message
	goName     string
	fields     []*fieldPlan
	persistent int // number of non-transient fields
}

// resolveSchemaOptions validates and extracts the schema-level options
func (g *Generator) resolveSchemaOptions(schema *parser.Schema) (schemaOptions, error) {
	var opts schemaOptions
	var err error
	if opts.obfuscateStrings, err = g.boolOption(schema.Options, optObfuscateStrings, false); err != nil {
		return opts, err
	}
	if opts.numberNames, err = g.boolOption(schema.Options, optNumberNames, false); err != nil {
		return opts, err
	}
	for name, opt := range schema.Options {
		if name != optObfuscateStrings && name != optNumberNames {
			g.warnUnknown(name, opt)
		}
	}
	return opts, nil
}

// planMessage validates the per-message and per-field options and
// assigns presence-mask bits in declaration order.
func (g *Generator) planMessage(message *parser.Message) (*messagePlan, error) {
	plan := &messagePlan{
		message: message,
		goName:  toGoFieldName(message.Name),
	}
	for name, opt := range message.Options {
		g.warnUnknown(name, opt)
	}

	bit := 0
	for _, field := range message.Fields {
		fp := &fieldPlan{field: field, goName: toGoFieldName(field.Name), bit: -1}

		var err error
		if fp.transient, err = g.boolOption(field.Options, optTransient, false); err != nil {
			return nil, err
		}
		if fp.required, err = g.boolOption(field.Options, optRequired, false); err != nil {
			return nil, err
		}
		if fp.transient && fp.required {
			return nil, errors.New("codegen", errors.CodeOptionConflict,
				fmt.Sprintf("field '%s' cannot be both transient and required", field.Name),
				g.location(field.Line, field.Column))
		}

		if fp.label, err = g.jsonName(field); err != nil {
			return nil, err
		}
		if g.opts.numberNames {
			fp.label = fmt.Sprintf("%d", field.Index)
		}

		for name, opt := range field.Options {
			switch name {
			case optTransient, optName, optRequired:
			default:
				g.warnUnknown(name, opt)
			}
		}

		if !fp.transient {
			fp.bit = bit
			bit++
			plan.persistent++
		}
		plan.fields = append(plan.fields, fp)
	}
	return plan, nil
}

// jsonName returns the JSON key for a field: the declared name, or the
// verbatim 'name' option override. Quoting characters in the override
// are a compile error.
func (g *Generator) jsonName(field *parser.Field) (string, error) {
	opt, ok := field.Options[optName]
	if !ok {
		return field.Name, nil
	}
	if opt.Kind != parser.OptionString {
		return "", errors.New("codegen", errors.CodeOptionKind,
			fmt.Sprintf("the value for '%s' must be a string", optName),
			g.location(opt.Line, 1))
	}
	if strings.ContainsAny(opt.Value, `'"`) {
		return "", errors.New("codegen", errors.CodeOptionValue,
			fmt.Sprintf("option '%s' in the field '%s' must not contain quotes", optName, field.Name),
			g.location(opt.Line, 1))
	}
	return opt.Value, nil
}

// boolOption reads a recognized boolean option, failing on a wrong kind
func (g *Generator) boolOption(options parser.OptionMap, name string, fallback bool) (bool, error) {
	opt, ok := options[name]
	if !ok {
		return fallback, nil
	}
	if opt.Kind != parser.OptionBoolean {
		return false, errors.New("codegen", errors.CodeOptionKind,
			fmt.Sprintf("the value for '%s' must be a boolean", name),
			g.location(opt.Line, 1))
	}
	return opt.Value == "true", nil
}

// warnUnknown records an unknown-option warning
func (g *Generator) warnUnknown(name string, opt parser.Option) {
	g.warnings = append(g.warnings, &errors.CompilerError{
		Phase:    "codegen",
		Code:     errors.CodeOptionUnknown,
		Message:  fmt.Sprintf("unknown option '%s' ignored", name),
		Location: g.location(opt.Line, 1),
		Severity: errors.Warning,
	})
}

func (g *Generator) location(line, column int) errors.SourceLocation {
	return errors.SourceLocation{File: g.schema.FileName, Line: line, Column: column}
}
