package user

import (
	"context"
	"regexp"
	"strings"

	"wikiarea-backend/auth"
	"wikiarea-backend/internal/domain"
	"wikiarea-backend/internal/errors"
)

// Service defines the user business logic, including local authentication
// and administrator account management.
type Service interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResponse, error)
	Signin(ctx context.Context, usernameOrEmail, password string) (*AuthResponse, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	SearchUsers(ctx context.Context, term string) ([]UserSummaryDTO, error)
	GetAllUsers(ctx context.Context) ([]UserDTO, error)
	GetUsersByRole(ctx context.Context, roleName string) ([]UserSummaryDTO, error)
	CheckAvailability(ctx context.Context, username, email string) (*AvailabilityDTO, error)
	CreateFederatedUser(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	UpdateUserRole(ctx context.Context, userID, roleName string) (*UserDTO, error)
	UpdateUserStatus(ctx context.Context, userID, statusName string) (*UserDTO, error)
	DeleteUser(ctx context.Context, actor *domain.User, userID string) error
	GetRolesPermissions() RolesPermissionsDTO
}

type SignupInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Department  string
}

type CreateUserInput struct {
	Username    string
	Email       string
	DisplayName string
	AdfsID      string
	Role        string
	Department  string
}

type DefaultService struct {
	repository UserRepository
}

func NewService(repository UserRepository) Service {
	return &DefaultService{repository: repository}
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Signup registers a local-credential account. New users default to Writer.
func (s *DefaultService) Signup(ctx context.Context, input SignupInput) (*AuthResponse, error) {
	if !usernamePattern.MatchString(input.Username) {
		return nil, errors.BadRequest("Username can only contain letters, numbers, and underscores", nil)
	}
	if err := validatePasswordComplexity(input.Password); err != nil {
		return nil, err
	}

	existing, err := s.repository.GetByUsernameOrEmail(ctx, strings.ToLower(input.Username), strings.ToLower(input.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("Username or email already exists", nil)
	}

	hash, salt, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, errors.Internal(err)
	}

	newUser, err := domain.NewLocalUser(input.Username, input.Email, input.DisplayName, domain.RoleWriter, input.Department, hash, salt)
	if err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}

	if err := s.repository.Create(ctx, newUser); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(newUser)
}

// Signin authenticates by username or email. Lookup misses, bad passwords
// and inactive accounts all surface as Unauthorized so credentials cannot
// be probed.
func (s *DefaultService) Signin(ctx context.Context, usernameOrEmail, password string) (*AuthResponse, error) {
	found, err := s.repository.GetByUsernameOrEmail(ctx, usernameOrEmail, usernameOrEmail)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, errors.Unauthorized("Invalid credentials", nil)
	}

	if !auth.VerifyPassword(password, found.PasswordHash, found.PasswordSalt) {
		return nil, errors.Unauthorized("Invalid credentials", nil)
	}

	if !found.IsActive() {
		return nil, errors.Unauthorized("Account is not active", nil)
	}

	found.UpdateLastLogin()
	if err := s.repository.Update(ctx, found); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(found)
}

func (s *DefaultService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	found, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, errors.NotFound("User not found", nil)
	}
	return found, nil
}

func (s *DefaultService) SearchUsers(ctx context.Context, term string) ([]UserSummaryDTO, error) {
	if strings.TrimSpace(term) == "" {
		return []UserSummaryDTO{}, nil
	}
	found, err := s.repository.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	results := make([]UserSummaryDTO, 0, len(found))
	for i := range found {
		results = append(results, toUserSummaryDTO(&found[i]))
	}
	return results, nil
}

func (s *DefaultService) GetAllUsers(ctx context.Context) ([]UserDTO, error) {
	all, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]UserDTO, 0, len(all))
	for i := range all {
		results = append(results, toUserDTO(&all[i]))
	}
	return results, nil
}

func (s *DefaultService) GetUsersByRole(ctx context.Context, roleName string) ([]UserSummaryDTO, error) {
	role, err := domain.ParseUserRole(roleName)
	if err != nil {
		return nil, errors.BadRequest("Invalid role", err)
	}
	found, err := s.repository.GetByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	results := make([]UserSummaryDTO, 0, len(found))
	for i := range found {
		results = append(results, toUserSummaryDTO(&found[i]))
	}
	return results, nil
}

// CheckAvailability answers the signup form's live username/email probe.
func (s *DefaultService) CheckAvailability(ctx context.Context, username, email string) (*AvailabilityDTO, error) {
	result := &AvailabilityDTO{UsernameAvailable: true, EmailAvailable: true}
	if username != "" {
		free, err := s.repository.IsUsernameUnique(ctx, strings.ToLower(username), "")
		if err != nil {
			return nil, err
		}
		result.UsernameAvailable = free
	}
	if email != "" {
		free, err := s.repository.IsEmailUnique(ctx, strings.ToLower(email), "")
		if err != nil {
			return nil, err
		}
		result.EmailAvailable = free
	}
	return result, nil
}

// CreateFederatedUser bootstraps an ADFS account (administrator only; the
// federated callback exchange itself lives outside this service).
func (s *DefaultService) CreateFederatedUser(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	role, err := domain.ParseUserRole(input.Role)
	if err != nil {
		return nil, errors.BadRequest("Invalid role", err)
	}

	existing, err := s.repository.GetByUsernameOrEmail(ctx, strings.ToLower(input.Username), strings.ToLower(input.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("Username or email already exists", nil)
	}
	if byAdfs, err := s.repository.GetByAdfsID(ctx, input.AdfsID); err != nil {
		return nil, err
	} else if byAdfs != nil {
		return nil, errors.Conflict("ADFS id already registered", nil)
	}

	newUser, err := domain.NewFederatedUser(input.Username, input.Email, input.DisplayName, input.AdfsID, role, input.Department)
	if err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}

	if err := s.repository.Create(ctx, newUser); err != nil {
		return nil, err
	}

	dto := toUserDTO(newUser)
	return &dto, nil
}

func (s *DefaultService) UpdateUserRole(ctx context.Context, userID, roleName string) (*UserDTO, error) {
	role, err := domain.ParseUserRole(roleName)
	if err != nil {
		return nil, errors.BadRequest("Invalid role", err)
	}

	found, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	found.UpdateRole(role)
	if err := s.repository.Update(ctx, found); err != nil {
		return nil, err
	}

	dto := toUserDTO(found)
	return &dto, nil
}

func (s *DefaultService) UpdateUserStatus(ctx context.Context, userID, statusName string) (*UserDTO, error) {
	status, err := domain.ParseUserStatus(statusName)
	if err != nil {
		return nil, errors.BadRequest("Invalid status", err)
	}

	found, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch status {
	case domain.UserStatusActive:
		found.Activate()
	case domain.UserStatusInactive:
		found.Deactivate()
	case domain.UserStatusSuspended:
		found.Suspend()
	}

	if err := s.repository.Update(ctx, found); err != nil {
		return nil, err
	}

	dto := toUserDTO(found)
	return &dto, nil
}

// DeleteUser soft-deletes an account. The actor cannot delete their own
// account, and the last remaining administrator cannot be deleted at all, so
// the system always keeps at least one account that can manage users.
func (s *DefaultService) DeleteUser(ctx context.Context, actor *domain.User, userID string) error {
	found, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if found.ID == actor.ID {
		return errors.BadRequest("You cannot delete your own account", nil)
	}
	if found.Role == domain.RoleAdministrator {
		admins, err := s.repository.GetByRole(ctx, domain.RoleAdministrator)
		if err != nil {
			return err
		}
		if len(admins) <= 1 {
			return errors.Conflict("Cannot delete the last administrator account", nil)
		}
	}

	return s.repository.SoftDelete(ctx, found.ID)
}

// GetRolesPermissions returns the static role/permission catalog. The flat
// permission list covers every string the authorization checks look for,
// including resolve:comments, which no default role set grants.
func (s *DefaultService) GetRolesPermissions() RolesPermissionsDTO {
	roles := domain.AllUserRoles()
	catalog := RolesPermissionsDTO{
		Roles: make([]RolePermissionsDTO, 0, len(roles)),
		Permissions: []string{
			"read:pages",
			"write:pages",
			"comment:pages",
			"create:pages",
			"review:pages",
			"approve:changes",
			"resolve:comments",
			"*",
		},
	}
	for _, role := range roles {
		catalog.Roles = append(catalog.Roles, RolePermissionsDTO{
			Role:        string(role),
			Permissions: domain.DefaultPermissions(role),
		})
	}
	return catalog
}

func (s *DefaultService) buildAuthResponse(u *domain.User) (*AuthResponse, error) {
	token, expiresAt, err := auth.GenerateToken(u)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: toUserDTO(u)}, nil
}

func validatePasswordComplexity(password string) error {
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit {
		return errors.BadRequest("Password must contain at least one lowercase letter, one uppercase letter, and one number", nil)
	}
	return nil
}
