package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/gosimple/slug"
)

// Slugify converts a post title into a URL-safe slug.
func Slugify(title string) string {
	return slug.Make(title)
}

// SlugWithSuffix appends a short random suffix, used to resolve slug
// collisions when the title alone is already taken.
func SlugWithSuffix(title string) (string, error) {
	bytes := make([]byte, 3)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return fmt.Sprintf("%s-%s", slug.Make(title), hex.EncodeToString(bytes)), nil
}
