package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContentType(t *testing.T) {
	ct, err := ParseContentType("Markdown")
	require.NoError(t, err)
	assert.Equal(t, ContentTypeMarkdown, ct)

	_, err = ParseContentType("markdown") // names are case sensitive
	assert.Error(t, err)

	_, err = ParseContentType("Unknown")
	assert.Error(t, err)
}

func TestContentTypeMetadata(t *testing.T) {
	assert.Equal(t, "text/markdown", ContentTypeMarkdown.MimeType())
	assert.Equal(t, ".md", ContentTypeMarkdown.DefaultExtension())
	assert.Equal(t, "text/html", ContentTypeHtml.MimeType())
}

func TestOrdinalRoundTrip(t *testing.T) {
	ct, err := ContentTypeFromOrdinal(ContentTypeVideo.Ordinal())
	require.NoError(t, err)
	assert.Equal(t, ContentTypeVideo, ct)

	status, err := PageStatusFromOrdinal(PageStatusPublished.Ordinal())
	require.NoError(t, err)
	assert.Equal(t, PageStatusPublished, status)

	role, err := UserRoleFromOrdinal(RoleReviewer.Ordinal())
	require.NoError(t, err)
	assert.Equal(t, RoleReviewer, role)

	_, err = PageStatusFromOrdinal(99)
	assert.Error(t, err)
}

func TestRoleOrdinalOrdering(t *testing.T) {
	assert.Less(t, RoleReader.Ordinal(), RoleWriter.Ordinal())
	assert.Less(t, RoleWriter.Ordinal(), RoleReviewer.Ordinal())
	assert.Less(t, RoleReviewer.Ordinal(), RoleAdministrator.Ordinal())
}
