// Package cache provides the checksum helper shared by the lexicon and
// vocabulary registries' JSON export paths.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Checksum computes a SHA-256 hash of canonicalized export payload bytes.
type Checksum struct{}

// NewChecksum creates a new checksum helper.
func NewChecksum() *Checksum {
	return &Checksum{}
}

// Sum computes the hex-encoded SHA-256 digest of the given content.
func (c *Checksum) Sum(content []byte) string {
	hasher := sha256.New()
	hasher.Write(content)
	return hex.EncodeToString(hasher.Sum(nil))
}

// SumString computes the hex-encoded SHA-256 digest of the given string.
func (c *Checksum) SumString(content string) string {
	return c.Sum([]byte(content))
}
