package codegen

import (
	"fmt"
	"strconv"
	"strings"
)

// rol8 rotates a byte left by count bits
func rol8(value byte, count int) byte {
	count &= 7
	return value<<count | value>>(8-count)
}

// obfuscate XOR-masks a key literal with a length-salted rotation of
// 0x93 and renders the result as the \x escapes of a Go string literal
// (without the surrounding quotes), so the plaintext bytes never appear
// in the emitted artifact. The runtime
// Reveal helper inverts the transform.
func obfuscate(value string) string {
	mask := rol8(0x93, len(value)%8)
	var sb strings.Builder
	for i := 0; i < len(value); i++ {
		fmt.Fprintf(&sb, "\\x%02x", value[i]^mask)
	}
	return sb.String()
}

// keyExpr returns the Go expression for a JSON key in emitted code:
// a plain quoted literal, or a Reveal call over the masked bytes when
// string obfuscation is on.
func (g *Generator) keyExpr(label string) string {
	if g.opts.obfuscateStrings {
		return `protojson.Reveal("` + obfuscate(label) + `")`
	}
	return strconv.Quote(label)
}
