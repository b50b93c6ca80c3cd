package protojson

import (
	"strconv"
	"strings"
)

// Tokenizer turns a JSON byte stream into tokens for the generated
// deserializers. It keeps a one-token lookahead and an error-capture
// slot inside Parameters: the first recorded error wins and every later
// failure is a no-op, so generated code can propagate unconditionally.
type Tokenizer struct {
	r       *Reader
	current Token
	params  *Parameters
}

// NewTokenizer creates a Tokenizer over data and primes the first token
func NewTokenizer(data []byte, params *Parameters) *Tokenizer {
	t := &Tokenizer{r: NewReader(data), params: params}
	t.Next()
	return t
}

// Peek returns the current token without consuming it
func (t *Tokenizer) Peek() Token {
	return t.current
}

// Next scans the next token
func (t *Tokenizer) Next() {
	t.current = t.scan()
}

// Expect consumes the current token if it has the given kind
func (t *Tokenizer) Expect(kind TokenKind) bool {
	if t.current.Kind == kind {
		t.Next()
		return true
	}
	return false
}

// Line returns the current stream line
func (t *Tokenizer) Line() int {
	return t.r.Line()
}

// Column returns the current stream column
func (t *Tokenizer) Column() int {
	return t.r.Column()
}

// Fail records an error at the current token position. Only the first
// error is kept.
func (t *Tokenizer) Fail(code ErrorCode, message string) bool {
	if t.params.Error.Code == CodeOK {
		t.params.Error = ErrorInfo{
			Code:    code,
			Message: message,
			Line:    t.current.Line,
			Column:  t.current.Column,
		}
	}
	return false
}

// Failed reports whether an error has been recorded
func (t *Tokenizer) Failed() bool {
	return t.params.Error.Code != CodeOK
}

// RequireAll reports whether the required-fields mode is active
func (t *Tokenizer) RequireAll() bool {
	return t.params.RequiredFields
}

// MissingField records a missing-field error for the given JSON key
func (t *Tokenizer) MissingField(name string) {
	t.Fail(CodeMissingField, "missing field '"+name+"'")
}

// ConsumeNull consumes a null token if present
func (t *Tokenizer) ConsumeNull() bool {
	if t.current.Kind == TokNull {
		t.Next()
		return true
	}
	return false
}

// Key consumes a field name and its colon separator
func (t *Tokenizer) Key() (string, bool) {
	name := t.current.Value
	if !t.Expect(TokString) {
		return "", t.Fail(CodeInvalidName, "object key must be string")
	}
	if !t.Expect(TokColon) {
		return "", t.Fail(CodeInvalidSeparator, "field name and value must be separated by ':'")
	}
	return name, true
}

// Ignore skips one complete JSON value of any shape
func (t *Tokenizer) Ignore() bool {
	switch t.current.Kind {
	case TokNone, TokEOF:
		return t.Fail(CodeIgnoreFailed, "end of stream")
	case TokObjectStart:
		return t.ignoreObject()
	case TokArrayStart:
		return t.ignoreArray()
	case TokString, TokNumber, TokNull, TokTrue, TokFalse:
		t.Next()
		return true
	default:
		return t.Fail(CodeIgnoreFailed, "invalid value")
	}
}

func (t *Tokenizer) ignoreObject() bool {
	if !t.Expect(TokObjectStart) {
		return t.Fail(CodeIgnoreFailed, "invalid object")
	}
	for t.current.Kind != TokObjectEnd {
		if !t.Expect(TokString) {
			return t.Fail(CodeIgnoreFailed, "expected field name")
		}
		if !t.Expect(TokColon) {
			return t.Fail(CodeIgnoreFailed, "expected colon")
		}
		if !t.Ignore() {
			return false
		}
		if !t.Expect(TokComma) {
			break
		}
	}
	if !t.Expect(TokObjectEnd) {
		return t.Fail(CodeIgnoreFailed, "invalid object")
	}
	return true
}

func (t *Tokenizer) ignoreArray() bool {
	if !t.Expect(TokArrayStart) {
		return t.Fail(CodeIgnoreFailed, "invalid array")
	}
	for t.current.Kind != TokArrayEnd {
		if !t.Ignore() {
			return false
		}
		if !t.Expect(TokComma) {
			break
		}
	}
	if !t.Expect(TokArrayEnd) {
		return t.Fail(CodeIgnoreFailed, "invalid array")
	}
	return true
}

// scan produces the next token from the stream
func (t *Tokenizer) scan() Token {
	for !t.r.EOF() {
		c := t.r.Peek()
		line := t.r.Line()
		column := t.r.Column()
		switch c {
		case ' ', '\t', '\r', '\n':
			t.r.Next()
		case '{':
			t.r.Next()
			return Token{Kind: TokObjectStart, Line: line, Column: column}
		case '}':
			t.r.Next()
			return Token{Kind: TokObjectEnd, Line: line, Column: column}
		case '[':
			t.r.Next()
			return Token{Kind: TokArrayStart, Line: line, Column: column}
		case ']':
			t.r.Next()
			return Token{Kind: TokArrayEnd, Line: line, Column: column}
		case ':':
			t.r.Next()
			return Token{Kind: TokColon, Line: line, Column: column}
		case ',':
			t.r.Next()
			return Token{Kind: TokComma, Line: line, Column: column}
		case '"':
			return t.scanString()
		case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return t.scanNumber()
		default:
			word := t.scanIdentifier()
			switch word {
			case "true":
				return Token{Kind: TokTrue, Line: line, Column: column}
			case "false":
				return Token{Kind: TokFalse, Line: line, Column: column}
			case "null":
				return Token{Kind: TokNull, Line: line, Column: column}
			}
			return Token{Kind: TokNone, Line: line, Column: column}
		}
	}
	return Token{Kind: TokEOF, Line: t.r.Line(), Column: t.r.Column()}
}

func (t *Tokenizer) scanIdentifier() string {
	var sb strings.Builder
	for !t.r.EOF() {
		c := t.r.Peek()
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			sb.WriteByte(byte(c))
			t.r.Next()
		} else {
			break
		}
	}
	return sb.String()
}

func (t *Tokenizer) scanNumber() Token {
	line := t.r.Line()
	column := t.r.Column()
	var sb strings.Builder
	for !t.r.EOF() {
		c := t.r.Peek()
		if c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E' || (c >= '0' && c <= '9') {
			sb.WriteByte(byte(c))
			t.r.Next()
		} else {
			break
		}
	}
	return Token{Kind: TokNumber, Value: sb.String(), Line: line, Column: column}
}

// scanString reads a quoted string with the supported escape set,
// including \uXXXX with UTF-16 surrogate pairs. A malformed string
// yields a TokNone token positioned at the opening quote.
func (t *Tokenizer) scanString() Token {
	line := t.r.Line()
	column := t.r.Column()
	bad := Token{Kind: TokNone, Line: line, Column: column}

	t.r.Next() // opening quote
	var sb strings.Builder
	var lead rune
	for !t.r.EOF() {
		c := t.r.Peek()
		switch c {
		case '"':
			t.r.Next()
			return Token{Kind: TokString, Value: sb.String(), Line: line, Column: column}
		case '\\':
			t.r.Next()
			e := t.r.Peek()
			t.r.Next()
			switch e {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case '/':
				sb.WriteByte('/')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case 'r':
				sb.WriteByte('\r')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'u':
				if !t.scanEscapedRune(&sb, &lead) {
					return bad
				}
			default:
				return bad
			}
		case 0:
			return bad
		default:
			sb.WriteByte(byte(c))
			t.r.Next()
		}
	}
	return bad
}

// scanEscapedRune decodes the four hex digits after \u. A high
// surrogate is stashed in lead until its pair arrives.
func (t *Tokenizer) scanEscapedRune(sb *strings.Builder, lead *rune) bool {
	var hex [4]byte
	for i := 0; i < 4; i++ {
		c := t.r.Peek()
		if !isHexDigit(c) {
			return false
		}
		hex[i] = byte(c)
		t.r.Next()
	}
	value, err := strconv.ParseUint(string(hex[:]), 16, 32)
	if err != nil {
		return false
	}
	codepoint := rune(value)

	switch {
	case codepoint >= 0xD800 && codepoint <= 0xDBFF:
		*lead = codepoint
		return true
	case codepoint >= 0xDC00 && codepoint <= 0xDFFF:
		if *lead == 0 {
			return false
		}
		const surrogateOffset = 0x10000 - (0xD800 << 10) - 0xDC00
		codepoint = (*lead << 10) + codepoint + surrogateOffset
	}
	*lead = 0
	sb.WriteRune(codepoint)
	return true
}

func isHexDigit(c int) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}
