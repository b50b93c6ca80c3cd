package protojson

import (
	"bufio"
	"encoding/base64"
	"io"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

type encFrame struct {
	inArray bool
	n       int
}

// Encoder writes RFC-8259 JSON for the generated serializers. It owns
// the comma and key bookkeeping so emitted code stays a linear sequence
// of calls. The first write error sticks; later calls are no-ops.
type Encoder struct {
	w      *bufio.Writer
	params *Parameters
	err    error
	stack  []encFrame
}

// NewEncoder creates an Encoder over w
func NewEncoder(w io.Writer, params *Parameters) *Encoder {
	return &Encoder{w: bufio.NewWriter(w), params: params}
}

// SerializeNull reports whether absent fields are written as null
func (e *Encoder) SerializeNull() bool {
	return e.params.SerializeNull
}

// Flush flushes buffered output and returns the first error, also
// recording it in the Parameters error slot.
func (e *Encoder) Flush() error {
	if e.err == nil {
		e.err = e.w.Flush()
	}
	if e.err != nil {
		if e.params.Error.Code == CodeOK {
			e.params.Error = ErrorInfo{Code: CodeWriteFailed, Message: e.err.Error()}
		}
		return e.err
	}
	return nil
}

func (e *Encoder) raw(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}

func (e *Encoder) rawByte(c byte) {
	if e.err != nil {
		return
	}
	e.err = e.w.WriteByte(c)
}

// elem writes the element separator when inside an array
func (e *Encoder) elem() {
	if len(e.stack) == 0 {
		return
	}
	top := &e.stack[len(e.stack)-1]
	if top.inArray {
		if top.n > 0 {
			e.rawByte(',')
		}
		top.n++
	}
}

// BeginObject opens a JSON object
func (e *Encoder) BeginObject() {
	e.elem()
	e.stack = append(e.stack, encFrame{})
	e.rawByte('{')
}

// EndObject closes the current object
func (e *Encoder) EndObject() {
	e.stack = e.stack[:len(e.stack)-1]
	e.rawByte('}')
}

// BeginArray opens a JSON array
func (e *Encoder) BeginArray() {
	e.elem()
	e.stack = append(e.stack, encFrame{inArray: true})
	e.rawByte('[')
}

// EndArray closes the current array
func (e *Encoder) EndArray() {
	e.stack = e.stack[:len(e.stack)-1]
	e.rawByte(']')
}

// Key writes a field key and its colon, preceded by a comma when the
// object already holds fields.
func (e *Encoder) Key(name string) {
	top := &e.stack[len(e.stack)-1]
	if top.n > 0 {
		e.rawByte(',')
	}
	top.n++
	e.quoted(name)
	e.rawByte(':')
}

// WriteNull writes a null value
func (e *Encoder) WriteNull() {
	e.elem()
	e.raw("null")
}

// WriteBool writes true or false
func (e *Encoder) WriteBool(value bool) {
	e.elem()
	if value {
		e.raw("true")
	} else {
		e.raw("false")
	}
}

// WriteFloat64 writes a double with a locale-independent representation
func (e *Encoder) WriteFloat64(value float64) {
	e.elem()
	e.raw(strconv.FormatFloat(value, 'g', -1, 64))
}

// WriteFloat32 writes a float with a locale-independent representation
func (e *Encoder) WriteFloat32(value float32) {
	e.elem()
	e.raw(strconv.FormatFloat(float64(value), 'g', -1, 32))
}

// WriteInt32 writes an int32, sint32, or sfixed32 value
func (e *Encoder) WriteInt32(value int32) {
	e.elem()
	e.raw(strconv.FormatInt(int64(value), 10))
}

// WriteInt64 writes an int64, sint64, or sfixed64 value
func (e *Encoder) WriteInt64(value int64) {
	e.elem()
	e.raw(strconv.FormatInt(value, 10))
}

// WriteUint32 writes a uint32 or fixed32 value
func (e *Encoder) WriteUint32(value uint32) {
	e.elem()
	e.raw(strconv.FormatUint(uint64(value), 10))
}

// WriteUint64 writes a uint64 or fixed64 value
func (e *Encoder) WriteUint64(value uint64) {
	e.elem()
	e.raw(strconv.FormatUint(value, 10))
}

// WriteString writes a quoted, escaped string value
func (e *Encoder) WriteString(value string) {
	e.elem()
	e.quoted(value)
}

// WriteBytes writes a byte sequence as a padded standard-alphabet
// base64 string.
func (e *Encoder) WriteBytes(value []byte) {
	e.elem()
	e.rawByte('"')
	e.raw(base64.StdEncoding.EncodeToString(value))
	e.rawByte('"')
}

// WriteStringArray writes a repeated string field
func (e *Encoder) WriteStringArray(values []string) {
	e.BeginArray()
	for _, v := range values {
		e.WriteString(v)
	}
	e.EndArray()
}

// WriteBoolArray writes a repeated boolean field
func (e *Encoder) WriteBoolArray(values []bool) {
	e.BeginArray()
	for _, v := range values {
		e.WriteBool(v)
	}
	e.EndArray()
}

// WriteNumberArray writes a repeated numeric field
func WriteNumberArray[T Number](e *Encoder, values []T) {
	e.BeginArray()
	for _, v := range values {
		writeNumber(e, v)
	}
	e.EndArray()
}

func writeNumber[T Number](e *Encoder, value T) {
	switch v := any(value).(type) {
	case float64:
		e.WriteFloat64(v)
	case float32:
		e.WriteFloat32(v)
	case int32:
		e.WriteInt32(v)
	case int64:
		e.WriteInt64(v)
	case uint32:
		e.WriteUint32(v)
	case uint64:
		e.WriteUint64(v)
	}
}

// WriteMessageArray writes a repeated message field using the message's
// generated writer.
func WriteMessageArray[M any](e *Encoder, values []M, write func(*M, *Encoder)) {
	e.BeginArray()
	for i := range values {
		write(&values[i], e)
	}
	e.EndArray()
}

// quoted writes a string with the JSON escape set. With EnsureASCII,
// multi-byte UTF-8 sequences become \uXXXX escapes, as surrogate pairs
// above the BMP.
func (e *Encoder) quoted(value string) {
	e.rawByte('"')
	for i := 0; i < len(value); {
		c := value[i]
		switch c {
		case '"':
			e.raw(`\"`)
		case '\\':
			e.raw(`\\`)
		case '/':
			e.raw(`\/`)
		case '\b':
			e.raw(`\b`)
		case '\f':
			e.raw(`\f`)
		case '\r':
			e.raw(`\r`)
		case '\n':
			e.raw(`\n`)
		case '\t':
			e.raw(`\t`)
		default:
			if c < 0x20 {
				e.escaped(rune(c))
			} else if c < 0x80 || !e.params.EnsureASCII {
				e.rawByte(c)
			} else {
				r, size := utf8.DecodeRuneInString(value[i:])
				e.escaped(r)
				i += size
				continue
			}
		}
		i++
	}
	e.rawByte('"')
}

// escaped writes one \uXXXX escape, splitting supplementary-plane
// codepoints into a UTF-16 surrogate pair.
func (e *Encoder) escaped(r rune) {
	if r > 0xFFFF {
		hi, lo := utf16.EncodeRune(r)
		e.escaped(hi)
		e.escaped(lo)
		return
	}
	const hex = "0123456789abcdef"
	e.raw(`\u`)
	e.rawByte(hex[r>>12&0xF])
	e.rawByte(hex[r>>8&0xF])
	e.rawByte(hex[r>>4&0xF])
	e.rawByte(hex[r&0xF])
}
