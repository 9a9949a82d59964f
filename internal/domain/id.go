package domain

import (
	"crypto/rand"
	"encoding/hex"
)

// CatalogIDLength is the length of catalog entity identifiers: 24 hex
// characters, the shape the catalog collections have always used.
const CatalogIDLength = 24

// NewCatalogID generates a new 24-hex-character identifier for catalog
// entities (products, categories, deals).
func NewCatalogID() string {
	b := make([]byte, CatalogIDLength/2)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// there is no sane fallback for identifier generation.
		panic("domain: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// IsCatalogID reports whether s is a syntactically valid catalog identifier.
func IsCatalogID(s string) bool {
	if len(s) != CatalogIDLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
