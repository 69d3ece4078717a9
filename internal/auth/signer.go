package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
)

// Signer computes and verifies HMAC-SHA256 signatures over encoded token
// payloads. The secret is fixed at construction time and immutable for the
// process lifetime.
type Signer struct {
	secret []byte
}

// NewSigner creates a Signer with the given secret.
//
// Callers must validate that the secret is non-empty before construction;
// the session manager refuses to start without one.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the URL-safe base64 encoding of the HMAC-SHA256 digest of
// payload.
func (s *Signer) Sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return EncodeSegment(mac.Sum(nil))
}

// Verify reports whether signature is the valid signature for payload.
//
// The comparison is constant-time. A length mismatch is rejected up front:
// signature lengths are not secret, only their contents are.
func (s *Signer) Verify(payload, signature string) bool {
	expected := s.Sign(payload)
	if len(signature) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) == 1
}
