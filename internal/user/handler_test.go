package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wikiarea-backend/internal/domain"
	"wikiarea-backend/internal/errors"
	"wikiarea-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockService is a mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) Signup(ctx context.Context, input SignupInput) (*AuthResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResponse), args.Error(1)
}

func (m *MockService) Signin(ctx context.Context, usernameOrEmail, password string) (*AuthResponse, error) {
	args := m.Called(ctx, usernameOrEmail, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResponse), args.Error(1)
}

func (m *MockService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockService) SearchUsers(ctx context.Context, term string) ([]UserSummaryDTO, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return []UserSummaryDTO{}, args.Error(1)
	}
	return args.Get(0).([]UserSummaryDTO), args.Error(1)
}

func (m *MockService) GetAllUsers(ctx context.Context) ([]UserDTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return []UserDTO{}, args.Error(1)
	}
	return args.Get(0).([]UserDTO), args.Error(1)
}

func (m *MockService) GetUsersByRole(ctx context.Context, roleName string) ([]UserSummaryDTO, error) {
	args := m.Called(ctx, roleName)
	if args.Get(0) == nil {
		return []UserSummaryDTO{}, args.Error(1)
	}
	return args.Get(0).([]UserSummaryDTO), args.Error(1)
}

func (m *MockService) CheckAvailability(ctx context.Context, username, email string) (*AvailabilityDTO, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AvailabilityDTO), args.Error(1)
}

func (m *MockService) CreateFederatedUser(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UserDTO), args.Error(1)
}

func (m *MockService) UpdateUserRole(ctx context.Context, userID, roleName string) (*UserDTO, error) {
	args := m.Called(ctx, userID, roleName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UserDTO), args.Error(1)
}

func (m *MockService) UpdateUserStatus(ctx context.Context, userID, statusName string) (*UserDTO, error) {
	args := m.Called(ctx, userID, statusName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UserDTO), args.Error(1)
}

func (m *MockService) DeleteUser(ctx context.Context, actor *domain.User, userID string) error {
	args := m.Called(ctx, actor, userID)
	return args.Error(0)
}

func (m *MockService) GetRolesPermissions() RolesPermissionsDTO {
	args := m.Called()
	return args.Get(0).(RolesPermissionsDTO)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	return router
}

func TestSignupHandler_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()
	router.POST("/auth/signup", handler.Signup)

	mockService.On("Signup", mock.Anything, mock.MatchedBy(func(input SignupInput) bool {
		return input.Username == "jdoe" && input.Email == "jdoe@example.com"
	})).Return(&AuthResponse{
		Token:     "signed-token",
		ExpiresAt: time.Now().Add(24 * time.Hour),
		User:      UserDTO{Username: "jdoe", Role: "Writer"},
	}, nil)

	payload := FormSignup{
		Username:    "jdoe",
		Email:       "jdoe@example.com",
		Password:    "Passw0rd",
		DisplayName: "John Doe",
		Department:  "Engineering",
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "signed-token", response.Token)
	assert.Equal(t, "jdoe", response.User.Username)
	mockService.AssertExpectations(t)
}

func TestSignupHandler_MissingFields(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()
	router.POST("/auth/signup", handler.Signup)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(`{"username":"jdoe"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestSigninHandler_InvalidCredentials(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()
	router.POST("/auth/signin", handler.Signin)

	mockService.On("Signin", mock.Anything, "jdoe", "wrong").
		Return(nil, errors.Unauthorized("Invalid credentials", nil))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/signin", bytes.NewBufferString(`{"usernameOrEmail":"jdoe","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "Invalid credentials", envelope["message"])
}

func TestGetProfileHandler(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()

	current, err := domain.NewLocalUser("jdoe", "jdoe@example.com", "John Doe", domain.RoleWriter, "Engineering", "h", "s")
	require.NoError(t, err)

	router.GET("/profile", func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, current)
		handler.GetProfile(c)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/profile", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var dto UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, "jdoe", dto.Username)
	assert.True(t, dto.IsActive)
}

func TestSearchHandler(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()
	router.GET("/users", handler.Search)

	mockService.On("SearchUsers", mock.Anything, "jd").Return([]UserSummaryDTO{
		{ID: "u1", Username: "jdoe", DisplayName: "John Doe"},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/users?q=jd", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var results []UserSummaryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "jdoe", results[0].Username)
}

func TestDeleteUserHandler(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()

	actor, err := domain.NewLocalUser("root", "root@example.com", "Root", domain.RoleAdministrator, "IT", "h", "s")
	require.NoError(t, err)

	router.DELETE("/admin/users/:id", func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, actor)
		handler.Delete(c)
	})

	mockService.On("DeleteUser", mock.Anything, actor, "u1").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/admin/users/u1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestDeleteUserHandler_LastAdministrator(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()

	actor, err := domain.NewLocalUser("root", "root@example.com", "Root", domain.RoleAdministrator, "IT", "h", "s")
	require.NoError(t, err)

	router.DELETE("/admin/users/:id", func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, actor)
		handler.Delete(c)
	})

	mockService.On("DeleteUser", mock.Anything, actor, "u2").
		Return(errors.Conflict("Cannot delete the last administrator account", nil))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/admin/users/u2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRolesPermissionsHandler(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()
	router.GET("/admin/roles-permissions", handler.RolesPermissions)

	mockService.On("GetRolesPermissions").Return(RolesPermissionsDTO{
		Roles: []RolePermissionsDTO{
			{Role: "Administrator", Permissions: []string{"*"}},
		},
		Permissions: []string{"read:pages", "*"},
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/roles-permissions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var catalog RolesPermissionsDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	require.Len(t, catalog.Roles, 1)
	assert.Equal(t, "Administrator", catalog.Roles[0].Role)
	assert.Contains(t, catalog.Permissions, "*")
}

func TestUpdateRoleHandler(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter()
	router.PUT("/admin/users/:id/role", handler.UpdateRole)

	mockService.On("UpdateUserRole", mock.Anything, "u1", "Reviewer").
		Return(&UserDTO{ID: "u1", Role: "Reviewer"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/admin/users/u1/role", bytes.NewBufferString(`{"role":"Reviewer"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var dto UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, "Reviewer", dto.Role)
}
