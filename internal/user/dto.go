package user

import (
	"time"

	"wikiarea-backend/internal/domain"
)

// UserDTO is the full transfer shape, used for the profile and admin views.
type UserDTO struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	Department   string    `json:"department"`
	AvatarURL    string    `json:"avatarUrl"`
	AuthProvider string    `json:"authProvider"`
	Permissions  []string  `json:"permissions"`
	CreatedAt    time.Time `json:"createdAt"`
	LastLoginAt  time.Time `json:"lastLoginAt"`
	IsActive     bool      `json:"isActive"`
}

// UserSummaryDTO is the reduced shape returned by search.
type UserSummaryDTO struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Department  string `json:"department"`
	Role        string `json:"role"`
}

// AvailabilityDTO answers the signup form's username/email probe.
type AvailabilityDTO struct {
	UsernameAvailable bool `json:"usernameAvailable"`
	EmailAvailable    bool `json:"emailAvailable"`
}

// RolePermissionsDTO pairs a role name with the permission set it grants.
type RolePermissionsDTO struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// RolesPermissionsDTO is the catalog the admin panel renders when assigning
// roles. Permissions is the flat list of every permission string the
// authorization checks recognize.
type RolesPermissionsDTO struct {
	Roles       []RolePermissionsDTO `json:"roles"`
	Permissions []string             `json:"permissions"`
}

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserDTO   `json:"user"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		Role:         string(u.Role),
		Status:       string(u.Status),
		Department:   u.Department,
		AvatarURL:    u.AvatarURL,
		AuthProvider: u.AuthProvider,
		Permissions:  u.Permissions,
		CreatedAt:    u.CreatedAt,
		LastLoginAt:  u.LastLoginAt,
		IsActive:     u.IsActive(),
	}
}

func toUserSummaryDTO(u *domain.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Department:  u.Department,
		Role:        string(u.Role),
	}
}
