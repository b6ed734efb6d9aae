package frame

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainStack is the domain prefix for stack content hashes. The version
// suffix enables future algorithm migration without colliding with old
// hashes.
const DomainStack = "calltrace/stack/v1"

// Hash computes the content hash of the stack: SHA-256 with domain
// separation over the canonical JSON form.
//
// Format: SHA256(domain + 0x00 + canonical). The null byte separator
// prevents domain/data boundary ambiguity.
//
// Structurally equal stacks always hash equal, so the hash serves as a
// fast-reject before full structural comparison. Hash equality alone is
// never treated as proof of stack equality.
func (s Stack) Hash() string {
	h := sha256.New()
	h.Write([]byte(DomainStack))
	h.Write([]byte{0x00})
	h.Write(marshalCanonical(s))
	return hex.EncodeToString(h.Sum(nil))
}
