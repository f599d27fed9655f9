package credentials

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SHA256Hasher produces the unsalted lowercase hex SHA-256 digest used by
// existing ClassTrack accounts. Prefer BcryptHasher for new deployments.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(password string, digest string) bool {
	computed, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
