package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
// 8 chars base32 ~= 40 bits (~1 trillion) of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

func idExists(db *DB, id string) bool {
	for _, it := range db.Items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// NextItemID generates a fresh item id not present in db.
func NextItemID(db *DB) string {
	for {
		id, err := newRandomID("item")
		if err != nil {
			// crypto/rand failing is unrecoverable for id generation.
			panic(err)
		}
		if !idExists(db, id) {
			return id
		}
	}
}
