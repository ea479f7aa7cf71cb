package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefix for content-addressed declaration identity.
// Version suffix enables future algorithm migration.
const DomainDeclaration = "widl/declaration/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DeclarationDigest computes the content-addressed digest of a frozen
// declaration. The digest is stable across runs given the same frozen
// content.
//
// Source location is intentionally excluded: the digest identifies what
// was declared, not where it was written, so moving a declaration within
// a file or between files does not change its identity.
func DeclarationDigest(d Declaration) (string, error) {
	m, err := describe(d, false)
	if err != nil {
		return "", fmt.Errorf("DeclarationDigest: %w", err)
	}
	canonical, err := MarshalCanonical(m)
	if err != nil {
		return "", fmt.Errorf("DeclarationDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDeclaration, canonical), nil
}

// MustDeclarationDigest is like DeclarationDigest but panics on error.
// Use only in tests or when the declaration is known to be well-formed.
func MustDeclarationDigest(d Declaration) string {
	digest, err := DeclarationDigest(d)
	if err != nil {
		panic(err)
	}
	return digest
}
