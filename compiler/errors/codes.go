package errors

// Error codes by phase. Codes are stable identifiers for tooling; the
// message carries the detail.
const (
	// Lexer
	CodeUnexpectedChar       = "LEX001"
	CodeUnterminatedString   = "LEX002"
	CodeUnterminatedComment  = "LEX003"
	CodeInvalidIdentifier    = "LEX004"

	// Parser
	CodeUnexpectedToken      = "PARSE001"
	CodeDuplicateSyntax      = "PARSE002"
	CodeInvalidSyntaxValue   = "PARSE003"
	CodeUnsupportedConstruct = "PARSE004"
	CodeDuplicatePackage     = "PARSE005"
	CodeInvalidFieldIndex    = "PARSE006"
	CodeDuplicateFieldIndex  = "PARSE007"
	CodeInvalidOptionValue   = "PARSE008"

	// Resolver
	CodeUnresolvedType    = "RESOLVE001"
	CodeCircularReference = "RESOLVE002"
	CodeLimitExceeded     = "RESOLVE003"

	// Codegen / options
	CodeOptionKind     = "OPT001"
	CodeOptionConflict = "OPT002"
	CodeOptionValue    = "OPT003"
	CodeOptionUnknown  = "OPT004"

	// Boundary
	CodeIO = "IO001"
)

// descriptions maps codes to a short human description, used by tooling
// output.
var descriptions = map[string]string{
	CodeUnexpectedChar:       "unexpected character in schema source",
	CodeUnterminatedString:   "string literal not terminated before end of line or file",
	CodeUnterminatedComment:  "block comment not terminated before end of file",
	CodeInvalidIdentifier:    "malformed identifier or qualified name",
	CodeUnexpectedToken:      "token not valid at this position",
	CodeDuplicateSyntax:      "more than one syntax declaration",
	CodeInvalidSyntaxValue:   "syntax value other than \"proto3\"",
	CodeUnsupportedConstruct: "proto3 construct outside the supported subset",
	CodeDuplicatePackage:     "more than one package declaration",
	CodeInvalidFieldIndex:    "field index not a positive integer",
	CodeDuplicateFieldIndex:  "field index reused within a message",
	CodeInvalidOptionValue:   "option value is not a boolean, identifier, string, or integer",
	CodeUnresolvedType:       "field references an undeclared message",
	CodeCircularReference:    "message reference graph contains a cycle",
	CodeLimitExceeded:        "message exceeds the field-count limit",
	CodeOptionKind:           "option value has the wrong kind",
	CodeOptionConflict:       "conflicting options on the same element",
	CodeOptionValue:          "option value is not acceptable",
	CodeOptionUnknown:        "option name is not recognized",
	CodeIO:                   "input/output failure",
}

// Describe returns the short description for a code, or an empty string.
func Describe(code string) string {
	return descriptions[code]
}
