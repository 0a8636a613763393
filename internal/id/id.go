// Package id generates the store-assigned identifiers of catalog rows.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for each catalog table. The prefix makes an id self-describing
// in logs and URLs.
const (
	PrefixMovie   = "mov"
	PrefixCreator = "crt"
	PrefixGenre   = "gnr"
	PrefixSeries  = "ser"
	PrefixEpisode = "epi"
)

// Generate creates an id of the form "<prefix>-<nanoid>", for example
// "mov-V1StGXR8_Z5jdHi6B-myT".
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if the system has no entropy.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// HasPrefix reports whether id was generated for the given prefix.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"-") && len(id) > len(prefix)+1
}
