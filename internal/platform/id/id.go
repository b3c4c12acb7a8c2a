// Package id generates compact identifiers for user-visible resources.
//
// Identifiers are UUIDv4 bytes encoded as lowercase unpadded base32, which
// keeps them URL-safe and shorter than the canonical UUID form.
package id

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a 26-character lowercase base32 identifier.
func NewID() (string, error) {
	raw, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return strings.ToLower(encoding.EncodeToString(raw[:])), nil
}
