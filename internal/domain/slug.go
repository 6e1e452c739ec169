package domain

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const maxSlugLength = 100

// slugStripSet is the exact set of characters removed from titles. It is an
// enumerated list, not a general sanitizer: '!' is deliberately absent, so
// "Hello World!" slugs to "hello-world!". Existing slugs depend on this.
const slugStripSet = "'\"?()[]{}.,;:#$%^*+=|<>~`"

// GenerateSlug derives a URL-safe identifier from a title. Deterministic
// except for the random fallback when nothing survives the cleanup.
func GenerateSlug(title string) string {
	if strings.TrimSpace(title) == "" {
		return randomHex(8)
	}

	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r == ' ' || r == '/' || r == '\\':
			b.WriteByte('-')
		case r == '&':
			b.WriteString("and")
		case r == '@':
			b.WriteString("at")
		case strings.ContainsRune(slugStripSet, r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")

	if strings.TrimSpace(slug) == "" {
		return randomHex(8)
	}

	if runes := []rune(slug); len(runes) > maxSlugLength {
		slug = strings.TrimRight(string(runes[:maxSlugLength]), "-")
	}

	return slug
}

func randomHex(n int) string {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return hex.EncodeToString(buf)[:n]
}
