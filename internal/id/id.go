// Package id generates prefixed unique identifiers for domain entities.
package id

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate creates a new ID with the given prefix, e.g. "place-V1StGXR8_Z5jdHi6B-myT".
func Generate(prefix string) (string, error) {
	nano, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	return prefix + "-" + nano, nil
}

// MustGenerate creates a new ID or panics.
// Only use during startup or in tests.
func MustGenerate(prefix string) string {
	generated, err := Generate(prefix)
	if err != nil {
		panic(err)
	}
	return generated
}
