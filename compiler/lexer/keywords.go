package lexer

// keywords maps keyword strings to their token types for O(1) lookup
var keywords = map[string]TokenType{
	// Structure
	"message":  TOKEN_MESSAGE,
	"repeated": TOKEN_REPEATED,
	"package":  TOKEN_PACKAGE,
	"syntax":   TOKEN_SYNTAX,
	"option":   TOKEN_OPTION,

	// Boolean literals
	"true":  TOKEN_TRUE,
	"false": TOKEN_FALSE,

	// Constructs the parser rejects with a dedicated diagnostic
	"map":      TOKEN_MAP,
	"enum":     TOKEN_ENUM,
	"oneof":    TOKEN_ONEOF,
	"service":  TOKEN_SERVICE,
	"import":   TOKEN_IMPORT,
	"reserved": TOKEN_RESERVED,
	"extend":   TOKEN_EXTEND,

	// Scalar types
	"double":   TOKEN_T_DOUBLE,
	"float":    TOKEN_T_FLOAT,
	"int32":    TOKEN_T_INT32,
	"int64":    TOKEN_T_INT64,
	"uint32":   TOKEN_T_UINT32,
	"uint64":   TOKEN_T_UINT64,
	"sint32":   TOKEN_T_SINT32,
	"sint64":   TOKEN_T_SINT64,
	"fixed32":  TOKEN_T_FIXED32,
	"fixed64":  TOKEN_T_FIXED64,
	"sfixed32": TOKEN_T_SFIXED32,
	"sfixed64": TOKEN_T_SFIXED64,
	"bool":     TOKEN_T_BOOL,
	"string":   TOKEN_T_STRING,
	"bytes":    TOKEN_T_BYTES,
}

// lookupKeyword checks if an identifier is a keyword
// Returns the token type and true if it's a keyword, TOKEN_IDENTIFIER and false otherwise
func lookupKeyword(identifier string) (TokenType, bool) {
	if tokenType, ok := keywords[identifier]; ok {
		return tokenType, true
	}
	return TOKEN_IDENTIFIER, false
}
