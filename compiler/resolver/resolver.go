// Package resolver binds message references to arena indices and orders
// messages so that every message is emitted after the messages it
// references.
package resolver

import (
	"fmt"

	"github.com/protogen-lang/protogen/compiler/errors"
	"github.com/protogen-lang/protogen/compiler/parser"
)

// MaxFields is the maximum number of fields per message. The generated
// deserializer tracks presence in a single 32-bit mask with one bit per
// field, keeping headroom for flags.
const MaxFields = 24

// Resolve runs the binding and ordering passes over the schema in place.
// After a successful return every MessageRef carries a valid arena index
// and Schema.Messages is dependency-ordered: each message appears after
// every message it references. Sibling order follows declaration order.
func Resolve(schema *parser.Schema) error {
	if err := bind(schema); err != nil {
		return err
	}
	order, err := sortMessages(schema)
	if err != nil {
		return err
	}
	reorder(schema, order)
	return check(schema)
}

// bind looks up every MessageRef qualified name in the declared set
func bind(schema *parser.Schema) error {
	for _, message := range schema.Messages {
		for _, field := range message.Fields {
			if field.Type.ID != parser.TypeMessage || field.Type.Ref != parser.NoRef {
				continue
			}
			ref := schema.FindMessage(field.Type.QName)
			if ref == parser.NoRef {
				return errors.New("resolver", errors.CodeUnresolvedType,
					fmt.Sprintf("unable to find message '%s'", field.Type.QName),
					errors.SourceLocation{File: schema.FileName, Line: field.Line, Column: field.Column})
			}
			field.Type.Ref = ref
		}
	}
	return nil
}

// sortMessages produces a dependency-ordered permutation of the arena.
// Depth-first: entering a message already on the current path is a cycle.
func sortMessages(schema *parser.Schema) ([]int, error) {
	order := make([]int, 0, len(schema.Messages))
	active := make(map[int]bool)
	done := make(map[int]bool)

	var visit func(i int) error
	visit = func(i int) error {
		if done[i] {
			return nil
		}
		if active[i] {
			message := schema.Messages[i]
			return errors.New("resolver", errors.CodeCircularReference,
				fmt.Sprintf("circular reference with '%s'", message.Name),
				errors.SourceLocation{File: schema.FileName, Line: message.Line, Column: message.Column})
		}
		active[i] = true
		for _, field := range schema.Messages[i].Fields {
			if field.Type.ID == parser.TypeMessage {
				if err := visit(field.Type.Ref); err != nil {
					return err
				}
			}
		}
		delete(active, i)
		done[i] = true
		order = append(order, i)
		return nil
	}

	for i := range schema.Messages {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// reorder applies the permutation to the arena and remaps every Ref
func reorder(schema *parser.Schema, order []int) {
	remap := make([]int, len(order))
	messages := make([]*parser.Message, len(order))
	for newIndex, oldIndex := range order {
		remap[oldIndex] = newIndex
		messages[newIndex] = schema.Messages[oldIndex]
	}
	for _, message := range messages {
		for _, field := range message.Fields {
			if field.Type.ID == parser.TypeMessage {
				field.Type.Ref = remap[field.Type.Ref]
			}
		}
	}
	schema.Messages = messages
}

// check verifies the post-conditions: no unresolved references and the
// per-message field-count limit.
func check(schema *parser.Schema) error {
	for _, message := range schema.Messages {
		if len(message.Fields) > MaxFields {
			return errors.New("resolver", errors.CodeLimitExceeded,
				fmt.Sprintf("more than %d fields in message '%s'", MaxFields, message.Name),
				errors.SourceLocation{File: schema.FileName, Line: message.Line, Column: message.Column})
		}
		for _, field := range message.Fields {
			if field.Type.ID == parser.TypeMessage && field.Type.Ref == parser.NoRef {
				return errors.New("resolver", errors.CodeUnresolvedType,
					fmt.Sprintf("unresolved reference to '%s'", field.Type.QName),
					errors.SourceLocation{File: schema.FileName, Line: field.Line, Column: field.Column})
			}
		}
	}
	return nil
}
