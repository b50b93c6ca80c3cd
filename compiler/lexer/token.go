package lexer

import "fmt"

// TokenType represents the type of token in a proto3 schema
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR

	// Keywords - structure
	TOKEN_MESSAGE
	TOKEN_REPEATED
	TOKEN_PACKAGE
	TOKEN_SYNTAX
	TOKEN_OPTION

	// Keywords - boolean literals
	TOKEN_TRUE
	TOKEN_FALSE

	// Keywords - constructs recognized only to reject them with a
	// targeted diagnostic
	TOKEN_MAP
	TOKEN_ENUM
	TOKEN_ONEOF
	TOKEN_SERVICE
	TOKEN_IMPORT
	TOKEN_RESERVED
	TOKEN_EXTEND

	// Type keywords
	TOKEN_T_DOUBLE
	TOKEN_T_FLOAT
	TOKEN_T_INT32
	TOKEN_T_INT64
	TOKEN_T_UINT32
	TOKEN_T_UINT64
	TOKEN_T_SINT32
	TOKEN_T_SINT64
	TOKEN_T_FIXED32
	TOKEN_T_FIXED64
	TOKEN_T_SFIXED32
	TOKEN_T_SFIXED64
	TOKEN_T_BOOL
	TOKEN_T_STRING
	TOKEN_T_BYTES

	// Literals
	TOKEN_IDENTIFIER
	TOKEN_QNAME
	TOKEN_INT_LITERAL
	TOKEN_STRING_LITERAL

	// Punctuation
	TOKEN_LBRACE    // {
	TOKEN_RBRACE    // }
	TOKEN_LBRACKET  // [
	TOKEN_RBRACKET  // ]
	TOKEN_LESS      // <
	TOKEN_GREATER   // >
	TOKEN_EQUAL     // =
	TOKEN_SEMICOLON // ;
	TOKEN_COMMA     // ,
)

// Token represents a single lexical token
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
	File   string
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_ERROR:
		return "ERROR"
	case TOKEN_MESSAGE:
		return "MESSAGE"
	case TOKEN_REPEATED:
		return "REPEATED"
	case TOKEN_PACKAGE:
		return "PACKAGE"
	case TOKEN_SYNTAX:
		return "SYNTAX"
	case TOKEN_OPTION:
		return "OPTION"
	case TOKEN_TRUE:
		return "TRUE"
	case TOKEN_FALSE:
		return "FALSE"
	case TOKEN_MAP:
		return "MAP"
	case TOKEN_ENUM:
		return "ENUM"
	case TOKEN_ONEOF:
		return "ONEOF"
	case TOKEN_SERVICE:
		return "SERVICE"
	case TOKEN_IMPORT:
		return "IMPORT"
	case TOKEN_RESERVED:
		return "RESERVED"
	case TOKEN_EXTEND:
		return "EXTEND"
	case TOKEN_T_DOUBLE:
		return "T_DOUBLE"
	case TOKEN_T_FLOAT:
		return "T_FLOAT"
	case TOKEN_T_INT32:
		return "T_INT32"
	case TOKEN_T_INT64:
		return "T_INT64"
	case TOKEN_T_UINT32:
		return "T_UINT32"
	case TOKEN_T_UINT64:
		return "T_UINT64"
	case TOKEN_T_SINT32:
		return "T_SINT32"
	case TOKEN_T_SINT64:
		return "T_SINT64"
	case TOKEN_T_FIXED32:
		return "T_FIXED32"
	case TOKEN_T_FIXED64:
		return "T_FIXED64"
	case TOKEN_T_SFIXED32:
		return "T_SFIXED32"
	case TOKEN_T_SFIXED64:
		return "T_SFIXED64"
	case TOKEN_T_BOOL:
		return "T_BOOL"
	case TOKEN_T_STRING:
		return "T_STRING"
	case TOKEN_T_BYTES:
		return "T_BYTES"
	case TOKEN_IDENTIFIER:
		return "IDENTIFIER"
	case TOKEN_QNAME:
		return "QNAME"
	case TOKEN_INT_LITERAL:
		return "INT_LITERAL"
	case TOKEN_STRING_LITERAL:
		return "STRING_LITERAL"
	case TOKEN_LBRACE:
		return "LBRACE"
	case TOKEN_RBRACE:
		return "RBRACE"
	case TOKEN_LBRACKET:
		return "LBRACKET"
	case TOKEN_RBRACKET:
		return "RBRACKET"
	case TOKEN_LESS:
		return "LESS"
	case TOKEN_GREATER:
		return "GREATER"
	case TOKEN_EQUAL:
		return "EQUAL"
	case TOKEN_SEMICOLON:
		return "SEMICOLON"
	case TOKEN_COMMA:
		return "COMMA"
	default:
		return "UNKNOWN"
	}
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s(%s) [%d:%d]", t.Type, t.Lexeme, t.Line, t.Column)
}

// IsType reports whether the token is one of the scalar type keywords.
func (t Token) IsType() bool {
	return t.Type >= TOKEN_T_DOUBLE && t.Type <= TOKEN_T_BYTES
}

// LexError represents a lexical analysis error
type LexError struct {
	Message string
	Line    int
	Column  int
	File    string
}

// Error implements the error interface
func (e LexError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}
