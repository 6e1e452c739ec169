package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
)

const (
	AuthProviderLocal = "Local"
	AuthProviderADFS  = "ADFS"
)

// User is either a local-credential account (passwordHash+salt) or a
// federated ADFS account (adfsId); AuthProvider tags which, and the two
// credential sets are mutually exclusive.
type User struct {
	Base `bson:",inline"`

	Username     string     `bson:"username" json:"username"`
	Email        string     `bson:"email" json:"email"`
	DisplayName  string     `bson:"displayName" json:"displayName"`
	AdfsID       string     `bson:"adfsId,omitempty" json:"-"`
	Role         UserRole   `bson:"role" json:"role"`
	Status       UserStatus `bson:"status" json:"status"`
	Department   string     `bson:"department" json:"department"`
	AvatarURL    string     `bson:"avatarUrl" json:"avatarUrl"`
	LastLoginAt  time.Time  `bson:"lastLoginAt" json:"lastLoginAt"`
	Permissions  []string   `bson:"permissions" json:"permissions"`
	PasswordHash string     `bson:"passwordHash,omitempty" json:"-"`
	PasswordSalt string     `bson:"passwordSalt,omitempty" json:"-"`
	AuthProvider string     `bson:"authProvider" json:"authProvider"`
}

// NewLocalUser creates a password-authenticated account. Username and email
// are stored lower-cased.
func NewLocalUser(username, email, displayName string, role UserRole, department, passwordHash, passwordSalt string) (*User, error) {
	if err := validateUserFields(username, email, displayName, department); err != nil {
		return nil, err
	}
	if strings.TrimSpace(passwordHash) == "" || strings.TrimSpace(passwordSalt) == "" {
		return nil, errors.New("password hash and salt are required")
	}

	u := &User{
		Base:         newBase(""),
		Username:     strings.ToLower(username),
		Email:        strings.ToLower(email),
		DisplayName:  displayName,
		Role:         role,
		Status:       UserStatusActive,
		Department:   department,
		LastLoginAt:  time.Now().UTC(),
		PasswordHash: passwordHash,
		PasswordSalt: passwordSalt,
		AuthProvider: AuthProviderLocal,
	}
	u.setDefaultPermissions()
	return u, nil
}

// NewFederatedUser creates an ADFS-authenticated account bootstrapped on
// first federated login.
func NewFederatedUser(username, email, displayName, adfsID string, role UserRole, department string) (*User, error) {
	if err := validateUserFields(username, email, displayName, department); err != nil {
		return nil, err
	}
	if strings.TrimSpace(adfsID) == "" {
		return nil, errors.New("adfs id is required")
	}

	u := &User{
		Base:         newBase(""),
		Username:     strings.ToLower(username),
		Email:        strings.ToLower(email),
		DisplayName:  displayName,
		AdfsID:       adfsID,
		Role:         role,
		Status:       UserStatusActive,
		Department:   department,
		LastLoginAt:  time.Now().UTC(),
		AuthProvider: AuthProviderADFS,
	}
	u.setDefaultPermissions()
	return u, nil
}

func validateUserFields(username, email, displayName, department string) error {
	switch {
	case strings.TrimSpace(username) == "":
		return errors.New("username is required")
	case strings.TrimSpace(email) == "":
		return errors.New("email is required")
	case strings.TrimSpace(displayName) == "":
		return errors.New("display name is required")
	case strings.TrimSpace(department) == "":
		return errors.New("department is required")
	}
	return nil
}

func (u *User) UpdateProfile(displayName, department, avatarURL string) error {
	if strings.TrimSpace(displayName) == "" {
		return errors.New("display name is required")
	}
	if strings.TrimSpace(department) == "" {
		return errors.New("department is required")
	}
	u.DisplayName = displayName
	u.Department = department
	u.AvatarURL = avatarURL
	u.touch("")
	return nil
}

// UpdateRole changes the role and recomputes the permission set, which is
// fully determined by the role.
func (u *User) UpdateRole(newRole UserRole) {
	u.Role = newRole
	u.setDefaultPermissions()
	u.touch("")
}

func (u *User) UpdateLastLogin() {
	u.LastLoginAt = time.Now().UTC()
	u.touch("")
}

func (u *User) Activate() {
	u.Status = UserStatusActive
	u.touch("")
}

func (u *User) Deactivate() {
	u.Status = UserStatusInactive
	u.touch("")
}

func (u *User) Suspend() {
	u.Status = UserStatusSuspended
	u.touch("")
}

func (u *User) UpdatePassword(passwordHash, passwordSalt string) error {
	if strings.TrimSpace(passwordHash) == "" || strings.TrimSpace(passwordSalt) == "" {
		return errors.New("password hash and salt are required")
	}
	u.PasswordHash = passwordHash
	u.PasswordSalt = passwordSalt
	u.touch("")
	return nil
}

func (u *User) HasPermission(permission string) bool {
	return slices.Contains(u.Permissions, permission)
}

func (u *User) IsLocalAuthUser() bool { return u.AuthProvider == AuthProviderLocal }
func (u *User) IsActive() bool        { return u.Status == UserStatusActive }

// Permission sets are cumulative per role; Administrator holds the wildcard.
func (u *User) setDefaultPermissions() {
	u.Permissions = DefaultPermissions(u.Role)
}

// DefaultPermissions returns a fresh copy of the permission set a role
// grants. Each call allocates so callers can never alias another user's set.
func DefaultPermissions(role UserRole) []string {
	switch role {
	case RoleReader:
		return []string{"read:pages", "comment:pages"}
	case RoleWriter:
		return []string{"read:pages", "write:pages", "comment:pages", "create:pages"}
	case RoleReviewer:
		return []string{"read:pages", "write:pages", "comment:pages", "create:pages", "review:pages", "approve:changes"}
	case RoleAdministrator:
		return []string{"*"}
	default:
		return []string{}
	}
}
