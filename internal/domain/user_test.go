package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalUser(t *testing.T) {
	u, err := NewLocalUser("JDoe", "JDoe@Example.com", "John Doe", RoleWriter, "Engineering", "hash", "salt")
	require.NoError(t, err)

	assert.Equal(t, "jdoe", u.Username)
	assert.Equal(t, "jdoe@example.com", u.Email)
	assert.Equal(t, AuthProviderLocal, u.AuthProvider)
	assert.Equal(t, UserStatusActive, u.Status)
	assert.True(t, u.IsLocalAuthUser())
	assert.True(t, u.IsActive())
}

func TestNewFederatedUser(t *testing.T) {
	u, err := NewFederatedUser("jdoe", "jdoe@example.com", "John Doe", "adfs-123", RoleReader, "Sales")
	require.NoError(t, err)

	assert.Equal(t, AuthProviderADFS, u.AuthProvider)
	assert.Equal(t, "adfs-123", u.AdfsID)
	assert.False(t, u.IsLocalAuthUser())
}

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		role     UserRole
		granted  []string
		denied   []string
		wildcard bool
	}{
		{RoleReader, []string{"read:pages", "comment:pages"}, []string{"write:pages", "review:pages"}, false},
		{RoleWriter, []string{"read:pages", "write:pages", "create:pages"}, []string{"review:pages"}, false},
		{RoleReviewer, []string{"write:pages", "review:pages", "approve:changes"}, nil, false},
		{RoleAdministrator, nil, []string{"read:pages"}, true},
	}

	for _, tt := range tests {
		u := &User{Role: tt.role}
		u.setDefaultPermissions()

		for _, p := range tt.granted {
			assert.True(t, u.HasPermission(p), "%s should have %s", tt.role, p)
		}
		for _, p := range tt.denied {
			assert.False(t, u.HasPermission(p), "%s should not have %s", tt.role, p)
		}
		assert.Equal(t, tt.wildcard, u.HasPermission("*"))
	}
}

func TestUpdateRole_RecomputesPermissions(t *testing.T) {
	u, err := NewLocalUser("jdoe", "jdoe@example.com", "John Doe", RoleReader, "Engineering", "hash", "salt")
	require.NoError(t, err)
	assert.False(t, u.HasPermission("review:pages"))

	u.UpdateRole(RoleReviewer)
	assert.True(t, u.HasPermission("review:pages"))
}

func TestStatusTransitions(t *testing.T) {
	u, err := NewLocalUser("jdoe", "jdoe@example.com", "John Doe", RoleWriter, "Engineering", "hash", "salt")
	require.NoError(t, err)

	u.Suspend()
	assert.Equal(t, UserStatusSuspended, u.Status)
	assert.False(t, u.IsActive())

	u.Activate()
	assert.True(t, u.IsActive())

	u.Deactivate()
	assert.Equal(t, UserStatusInactive, u.Status)
}
