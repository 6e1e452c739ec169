package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWikiFolder(t *testing.T) {
	f, err := NewWikiFolder("Guides", "How-to articles", "/guides", "", true, "admin-1")
	require.NoError(t, err)

	assert.NotEmpty(t, f.ID)
	assert.True(t, f.IsRoot())
	assert.Equal(t, "/guides", f.Path)

	_, err = NewWikiFolder(" ", "", "/x", "", false, "u")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = NewWikiFolder("X", "", "  ", "", false, "u")
	assert.ErrorIs(t, err, ErrPathRequired)
}

func TestFolderMove(t *testing.T) {
	f, err := NewWikiFolder("Linux", "", "/guides/linux", "parent-1", false, "admin-1")
	require.NoError(t, err)
	assert.False(t, f.IsRoot())

	f.Move("", "admin-1")
	assert.True(t, f.IsRoot())
}

func TestFolderUpdatePath_RecordsOldPath(t *testing.T) {
	f, err := NewWikiFolder("Guides", "", "/guides", "", false, "admin-1")
	require.NoError(t, err)
	f.ClearEvents()

	require.NoError(t, f.UpdatePath("/handbook", "admin-1"))
	assert.Equal(t, "/handbook", f.Path)

	events := f.Events()
	require.Len(t, events, 1)
	changed, ok := events[0].(FolderPathChanged)
	require.True(t, ok)
	assert.Equal(t, "/guides", changed.OldPath)
	assert.Equal(t, "/handbook", changed.NewPath)
}

func TestFolderHasAccess(t *testing.T) {
	f, err := NewWikiFolder("Internal", "", "/internal", "", false, "admin-1")
	require.NoError(t, err)
	f.SetAllowedRoles([]string{"Writer"})

	assert.False(t, f.HasAccess(&User{Role: RoleReader}))
	assert.True(t, f.HasAccess(&User{Role: RoleWriter}))
	assert.True(t, f.HasAccess(&User{Role: RoleAdministrator}))
}
