package frame

import (
	"bytes"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// marshalCanonical produces RFC 8785 canonical JSON for a Stack. This is the
// ONLY serialization used for content-hash computation; display output goes
// through encoding/json instead.
//
// Canonical form here is an array of objects with keys in sorted order
// (context, file, line). Key differences from standard json.Marshal:
//  1. No HTML escaping (< > & are NOT escaped)
//  2. Strings are NFC normalized
//  3. Control characters use the RFC 8785 short escapes, lowercase \u00xx
//     otherwise
func marshalCanonical(s Stack) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, f := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"context":`)
		appendCanonicalString(&buf, f.Context)
		buf.WriteString(`,"file":`)
		appendCanonicalString(&buf, f.File)
		buf.WriteString(`,"line":`)
		appendCanonicalString(&buf, f.Line)
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// appendCanonicalString writes a JSON string per RFC 8785: NFC normalized at
// the serialization boundary, only quote, backslash, and control characters
// escaped. U+2028 and U+2029 stay literal.
func appendCanonicalString(buf *bytes.Buffer, s string) {
	normalized := norm.NFC.String(s)
	buf.WriteByte('"')
	for _, r := range normalized {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}
