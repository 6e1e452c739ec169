package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug_Basic(t *testing.T) {
	assert.Equal(t, "hello-world!", GenerateSlug("Hello World!"))
	assert.Equal(t, "test-and-development", GenerateSlug("Test & Development"))
	assert.Equal(t, "users-guide", GenerateSlug("User's Guide"))
	assert.Equal(t, "contact-atexample", GenerateSlug("Contact @example"))
}

func TestGenerateSlug_StripsPunctuation(t *testing.T) {
	assert.Equal(t, "what-is-this", GenerateSlug("What is this?"))
	assert.Equal(t, "notes-v2", GenerateSlug("Notes (v2)"))
	assert.Equal(t, "ab", GenerateSlug("a.b"))
}

func TestGenerateSlug_SeparatorsBecomeHyphens(t *testing.T) {
	assert.Equal(t, "docs-setup-linux", GenerateSlug(`docs/setup\linux`))
	// runs of separators collapse to a single hyphen
	assert.Equal(t, "a-b", GenerateSlug("a   /  b"))
}

func TestGenerateSlug_TrimsEdgeHyphens(t *testing.T) {
	assert.Equal(t, "middle", GenerateSlug("  middle  "))
	assert.Equal(t, "middle", GenerateSlug("/middle/"))
}

func TestGenerateSlug_RandomFallback(t *testing.T) {
	first := GenerateSlug("???")
	second := GenerateSlug("???")

	assert.Len(t, first, 8)
	assert.Len(t, second, 8)
	assert.NotEqual(t, first, second)

	assert.Len(t, GenerateSlug(""), 8)
	assert.Len(t, GenerateSlug("   "), 8)
}

func TestGenerateSlug_TruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("word ", 40)
	slug := GenerateSlug(long)

	assert.LessOrEqual(t, len([]rune(slug)), 100)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestGenerateSlug_Deterministic(t *testing.T) {
	assert.Equal(t, GenerateSlug("Getting Started"), GenerateSlug("Getting Started"))
}
