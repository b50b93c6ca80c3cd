package parser

import (
	"fmt"
	"strconv"

	"github.com/protogen-lang/protogen/compiler/errors"
	"github.com/protogen-lang/protogen/compiler/lexer"
)

// ParseError represents a syntax error with its source position
type ParseError struct {
	Message string
	Code    string
	Line    int
	Column  int
	File    string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// Parser transforms a token stream into a Schema
type Parser struct {
	tokens     []lexer.Token
	current    int
	file       string
	schema     *Schema
	syntaxSeen bool
}

// New creates a new Parser from a token stream
func New(tokens []lexer.Token, file string) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
		file:    file,
		schema: &Schema{
			FileName: file,
			Options:  OptionMap{},
			Messages: []*Message{},
		},
	}
}

// Parse parses the token stream and returns the Schema. Parsing stops at
// the first error.
func (p *Parser) Parse() (*Schema, error) {
	for !p.isAtEnd() {
		tok := p.advance()
		var err error
		switch tok.Type {
		case lexer.TOKEN_SYNTAX:
			err = p.parseSyntax(tok)
		case lexer.TOKEN_PACKAGE:
			err = p.parsePackage(tok)
		case lexer.TOKEN_OPTION:
			err = p.parseOptionStatement(p.schema.Options)
		case lexer.TOKEN_MESSAGE:
			err = p.parseMessage(tok)
		default:
			err = p.unsupportedOrUnexpected(tok)
		}
		if err != nil {
			return nil, err
		}
	}
	return p.schema, nil
}

// parseSyntax parses syntax = "proto3";
func (p *Parser) parseSyntax(kw lexer.Token) error {
	if p.syntaxSeen {
		return p.errorCode(kw, errors.CodeDuplicateSyntax, "duplicate 'syntax' declaration")
	}
	p.syntaxSeen = true

	if _, err := p.consume(lexer.TOKEN_EQUAL, "expected '='"); err != nil {
		return err
	}
	value, err := p.consume(lexer.TOKEN_STRING_LITERAL, "expected string literal")
	if err != nil {
		return err
	}
	if value.Lexeme != "proto3" {
		return p.errorCode(value, errors.CodeInvalidSyntaxValue,
			fmt.Sprintf("invalid language version %q, expected \"proto3\"", value.Lexeme))
	}
	_, err = p.consume(lexer.TOKEN_SEMICOLON, "expected ';'")
	return err
}

// parsePackage parses package a.b.c; — at most one per file
func (p *Parser) parsePackage(kw lexer.Token) error {
	if p.schema.Package != "" {
		return p.errorCode(kw, errors.CodeDuplicatePackage, "duplicate 'package' declaration")
	}
	name := p.advance()
	if name.Type != lexer.TOKEN_IDENTIFIER && name.Type != lexer.TOKEN_QNAME {
		return p.errorAt(name, "expected package name")
	}
	if _, err := p.consume(lexer.TOKEN_SEMICOLON, "expected ';'"); err != nil {
		return err
	}
	p.schema.Package = name.Lexeme
	return nil
}

// parseOptionStatement parses option name = value; and records it into dst
func (p *Parser) parseOptionStatement(dst OptionMap) error {
	opt, err := p.parseOptionAssignment()
	if err != nil {
		return err
	}
	if _, err := p.consume(lexer.TOKEN_SEMICOLON, "expected ';'"); err != nil {
		return err
	}
	dst[opt.Name] = opt
	return nil
}

// parseOptionAssignment parses name = value
func (p *Parser) parseOptionAssignment() (Option, error) {
	name := p.advance()
	if name.Type != lexer.TOKEN_IDENTIFIER && name.Type != lexer.TOKEN_QNAME {
		return Option{}, p.errorAt(name, "expected option name")
	}
	if _, err := p.consume(lexer.TOKEN_EQUAL, "expected '='"); err != nil {
		return Option{}, err
	}

	value := p.advance()
	opt := Option{Name: name.Lexeme, Value: value.Lexeme, Line: value.Line}
	switch value.Type {
	case lexer.TOKEN_TRUE, lexer.TOKEN_FALSE:
		opt.Kind = OptionBoolean
	case lexer.TOKEN_IDENTIFIER, lexer.TOKEN_QNAME:
		opt.Kind = OptionIdentifier
	case lexer.TOKEN_STRING_LITERAL:
		opt.Kind = OptionString
	case lexer.TOKEN_INT_LITERAL:
		opt.Kind = OptionInteger
	default:
		return Option{}, p.errorCode(value, errors.CodeInvalidOptionValue, "invalid option value")
	}
	return opt, nil
}

// parseMessage parses message Name { (option | field)* }
func (p *Parser) parseMessage(kw lexer.Token) error {
	name, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected message name")
	if err != nil {
		return err
	}
	if _, err := p.consume(lexer.TOKEN_LBRACE, "expected '{'"); err != nil {
		return err
	}

	message := &Message{
		Name:    name.Lexeme,
		Package: p.schema.Package,
		Fields:  []*Field{},
		Options: OptionMap{},
		Line:    kw.Line,
		Column:  kw.Column,
	}

	seenIndexes := map[int]bool{}
	for !p.check(lexer.TOKEN_RBRACE) {
		if p.isAtEnd() {
			return p.errorAt(p.peek(), "expected '}'")
		}
		if p.match(lexer.TOKEN_OPTION) {
			if err := p.parseOptionStatement(message.Options); err != nil {
				return err
			}
			continue
		}
		field, err := p.parseField()
		if err != nil {
			return err
		}
		if seenIndexes[field.Index] {
			return &ParseError{
				Message: fmt.Sprintf("duplicate field index %d in message '%s'", field.Index, message.Name),
				Code:    errors.CodeDuplicateFieldIndex,
				Line:    field.Line,
				Column:  field.Column,
				File:    p.file,
			}
		}
		seenIndexes[field.Index] = true
		message.Fields = append(message.Fields, field)
	}
	p.advance() // '}'

	p.schema.Messages = append(p.schema.Messages, message)
	return nil
}

// parseField parses ['repeated'] type name = index ['[' options ']'] ';'
func (p *Parser) parseField() (*Field, error) {
	start := p.peek()
	field := &Field{
		Options: OptionMap{},
		Line:    start.Line,
		Column:  start.Column,
	}

	if p.match(lexer.TOKEN_REPEATED) {
		field.Type.Repeated = true
	}

	typeTok := p.advance()
	switch {
	case typeTok.IsType():
		field.Type.ID = scalarType(typeTok.Type)
	case typeTok.Type == lexer.TOKEN_IDENTIFIER:
		field.Type.ID = TypeMessage
		field.Type.Ref = NoRef
		if p.schema.Package != "" {
			field.Type.QName = p.schema.Package + "." + typeTok.Lexeme
		} else {
			field.Type.QName = typeTok.Lexeme
		}
	case typeTok.Type == lexer.TOKEN_QNAME:
		field.Type.ID = TypeMessage
		field.Type.Ref = NoRef
		field.Type.QName = typeTok.Lexeme
	default:
		return nil, p.unsupportedOrUnexpected(typeTok)
	}

	name, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected field name")
	if err != nil {
		return nil, err
	}
	field.Name = name.Lexeme

	if _, err := p.consume(lexer.TOKEN_EQUAL, "expected '='"); err != nil {
		return nil, err
	}
	index, err := p.consume(lexer.TOKEN_INT_LITERAL, "expected field index")
	if err != nil {
		return nil, err
	}
	value, convErr := strconv.Atoi(index.Lexeme)
	if convErr != nil || value <= 0 {
		return nil, p.errorCode(index, errors.CodeInvalidFieldIndex,
			fmt.Sprintf("field index must be a positive integer, got '%s'", index.Lexeme))
	}
	field.Index = value

	if p.match(lexer.TOKEN_LBRACKET) {
		if err := p.parseFieldOptions(field.Options); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(lexer.TOKEN_SEMICOLON, "expected ';'"); err != nil {
		return nil, err
	}
	return field, nil
}

// parseFieldOptions parses the comma-separated option assignments between
// '[' and ']'. The opening bracket is already consumed. A trailing comma
// is rejected.
func (p *Parser) parseFieldOptions(dst OptionMap) error {
	for {
		opt, err := p.parseOptionAssignment()
		if err != nil {
			return err
		}
		dst[opt.Name] = opt

		if p.match(lexer.TOKEN_COMMA) {
			if p.check(lexer.TOKEN_RBRACKET) {
				return p.errorAt(p.peek(), "trailing comma in option list")
			}
			continue
		}
		break
	}
	_, err := p.consume(lexer.TOKEN_RBRACKET, "expected ']'")
	return err
}

// unsupportedOrUnexpected reports recognized-but-unsupported constructs
// with a dedicated message, anything else as an unexpected token.
func (p *Parser) unsupportedOrUnexpected(tok lexer.Token) error {
	switch tok.Type {
	case lexer.TOKEN_MAP, lexer.TOKEN_ENUM, lexer.TOKEN_ONEOF, lexer.TOKEN_SERVICE,
		lexer.TOKEN_IMPORT, lexer.TOKEN_RESERVED, lexer.TOKEN_EXTEND:
		return p.errorCode(tok, errors.CodeUnsupportedConstruct,
			fmt.Sprintf("'%s' is not supported", tok.Lexeme))
	}
	return p.errorAt(tok, fmt.Sprintf("unexpected token '%s'", tok.Lexeme))
}

// scalarType maps a scalar type keyword to its FieldType
func scalarType(t lexer.TokenType) FieldType {
	return FieldType(int(t) - int(lexer.TOKEN_T_DOUBLE))
}

// Helper methods for token manipulation

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == lexer.TOKEN_EOF
}

// peek returns the current token without consuming it
func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.current]
}

// advance consumes and returns the current token
func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.current < len(p.tokens) {
		p.current++
	}
	return tok
}

// check checks if the current token is of the given type
func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.peek().Type == tokenType
}

// match consumes the current token if it is of the given type
func (p *Parser) match(tokenType lexer.TokenType) bool {
	if p.check(tokenType) {
		p.advance()
		return true
	}
	return false
}

// consume consumes a token of the given type or returns an error
func (p *Parser) consume(tokenType lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(tokenType) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorAt(p.peek(), message)
}

// errorAt builds a ParseError positioned at the given token
func (p *Parser) errorAt(tok lexer.Token, message string) *ParseError {
	return p.errorCode(tok, errors.CodeUnexpectedToken, message)
}

// errorCode builds a ParseError with an explicit error code
func (p *Parser) errorCode(tok lexer.Token, code, message string) *ParseError {
	return &ParseError{
		Message: message,
		Code:    code,
		Line:    tok.Line,
		Column:  tok.Column,
		File:    p.file,
	}
}
