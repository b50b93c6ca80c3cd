package protojson

// Parameters configures a serialize or deserialize call and receives the
// error information of the last operation.
type Parameters struct {
	// EnsureASCII decodes non-ASCII UTF-8 sequences and escapes each
	// character as \uXXXX (with UTF-16 surrogate pairs above the BMP)
	// when writing strings.
	EnsureASCII bool

	// SerializeNull writes absent fields as explicit nulls instead of
	// omitting them.
	SerializeNull bool

	// RequiredFields makes the deserializer fail with a missing-field
	// error when a non-transient field was not seen in the object.
	RequiredFields bool

	// Error describes the failure of the last operation, if any.
	Error ErrorInfo
}
