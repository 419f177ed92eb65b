// Package id generates opaque record identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Size is the length of generated book IDs.
const Size = 16

// Generate returns a URL-safe NanoID of Size characters.
//
// Collisions are treated as negligible; callers do not retry.
func Generate() (string, error) {
	id, err := gonanoid.New(Size)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return id, nil
}
