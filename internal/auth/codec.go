package auth

import (
	"encoding/base64"
	"fmt"
)

// EncodeSegment encodes raw bytes into a URL-safe, unpadded base64 token
// segment. Segments produced here never contain '+', '/' or '=' so they can
// travel inside a cookie value and be split on '.' unambiguously.
func EncodeSegment(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeSegment reverses EncodeSegment.
//
// Malformed input returns an error, never a panic. Callers treat any decode
// failure as "invalid token".
func DecodeSegment(segment string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("decode token segment: %w", err)
	}
	return raw, nil
}
