package storage

import (
	"crypto/sha1"
	"encoding/hex"
)

// SeenStore remembers candidate ids across cycles so the same link is
// never dispatched twice.
type SeenStore interface {
	Contains(id string) bool
	Add(id string) error
	Save() error
	Close() error
}

// HashID derives the stable candidate id for a link.
func HashID(link string) string {
	sum := sha1.Sum([]byte(link))
	return hex.EncodeToString(sum[:])[:16]
}
