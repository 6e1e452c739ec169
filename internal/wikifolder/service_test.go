package wikifolder

import (
	"context"
	"testing"

	"wikiarea-backend/internal/domain"
	"wikiarea-backend/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the FolderRepository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, folder *domain.WikiFolder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, folder *domain.WikiFolder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*domain.WikiFolder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WikiFolder), args.Error(1)
}

func (m *MockRepository) GetByPath(ctx context.Context, path string) (*domain.WikiFolder, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WikiFolder), args.Error(1)
}

func (m *MockRepository) GetByParentID(ctx context.Context, parentID string) ([]domain.WikiFolder, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]domain.WikiFolder), args.Error(1)
}

func (m *MockRepository) GetRootFolders(ctx context.Context) ([]domain.WikiFolder, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.WikiFolder), args.Error(1)
}

func (m *MockRepository) GetDescendants(ctx context.Context, folderID string) ([]domain.WikiFolder, error) {
	args := m.Called(ctx, folderID)
	return args.Get(0).([]domain.WikiFolder), args.Error(1)
}

func (m *MockRepository) GetAncestors(ctx context.Context, folderID string) ([]domain.WikiFolder, error) {
	args := m.Called(ctx, folderID)
	return args.Get(0).([]domain.WikiFolder), args.Error(1)
}

func (m *MockRepository) IsPathUnique(ctx context.Context, path, excludeFolderID string) (bool, error) {
	args := m.Called(ctx, path, excludeFolderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) HasChildren(ctx context.Context, folderID string) (bool, error) {
	args := m.Called(ctx, folderID)
	return args.Bool(0), args.Error(1)
}

func userWithRole(role domain.UserRole) *domain.User {
	u := &domain.User{Role: role}
	u.UpdateRole(role)
	return u
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	apiErr, ok := err.(*errors.APIError)
	require.True(t, ok, "expected *errors.APIError, got %T", err)
	assert.Equal(t, status, apiErr.Status)
}

func publicFolder(t *testing.T) *domain.WikiFolder {
	t.Helper()
	f, err := domain.NewWikiFolder("Guides", "", "/guides", "", true, "admin-1")
	require.NoError(t, err)
	f.ClearEvents()
	return f
}

func TestCreateFolder_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil)

	mockRepo.On("IsPathUnique", mock.Anything, "/guides", "").Return(true, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(f *domain.WikiFolder) bool {
		return f.Name == "Guides" && f.Path == "/guides"
	})).Return(nil)

	created, err := service.CreateFolder(context.Background(), userWithRole(domain.RoleWriter), CreateFolderInput{
		Name: "Guides",
		Path: "/guides",
	})

	require.NoError(t, err)
	assert.True(t, created.IsRoot)
	mockRepo.AssertExpectations(t)
}

func TestCreateFolder_PathConflict(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil)

	mockRepo.On("IsPathUnique", mock.Anything, "/guides", "").Return(false, nil)

	_, err := service.CreateFolder(context.Background(), userWithRole(domain.RoleWriter), CreateFolderInput{
		Name: "Guides",
		Path: "/guides",
	})

	assertStatus(t, err, 409)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateFolder_ReaderForbidden(t *testing.T) {
	service := NewService(new(MockRepository), nil)

	_, err := service.CreateFolder(context.Background(), userWithRole(domain.RoleReader), CreateFolderInput{
		Name: "Guides",
		Path: "/guides",
	})

	assertStatus(t, err, 403)
}

func TestUpdateFolderPath_Conflict(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil)

	folder := publicFolder(t)
	mockRepo.On("GetByID", mock.Anything, folder.ID).Return(folder, nil)
	mockRepo.On("IsPathUnique", mock.Anything, "/taken", folder.ID).Return(false, nil)

	_, err := service.UpdateFolderPath(context.Background(), userWithRole(domain.RoleWriter), folder.ID, "/taken")
	assertStatus(t, err, 409)
}

func TestMoveFolder_SelfParentRejected(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil)

	folder := publicFolder(t)
	mockRepo.On("GetByID", mock.Anything, folder.ID).Return(folder, nil)

	_, err := service.MoveFolder(context.Background(), userWithRole(domain.RoleWriter), folder.ID, folder.ID)
	assertStatus(t, err, 400)
}

func TestMoveFolder_MissingTarget(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil)

	folder := publicFolder(t)
	mockRepo.On("GetByID", mock.Anything, folder.ID).Return(folder, nil)
	mockRepo.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := service.MoveFolder(context.Background(), userWithRole(domain.RoleWriter), folder.ID, "ghost")
	assertStatus(t, err, 404)
}

func TestDeleteFolder_RefusesWithChildren(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil)

	folder := publicFolder(t)
	mockRepo.On("GetByID", mock.Anything, folder.ID).Return(folder, nil)
	mockRepo.On("HasChildren", mock.Anything, folder.ID).Return(true, nil)

	err := service.DeleteFolder(context.Background(), userWithRole(domain.RoleWriter), folder.ID)
	assertStatus(t, err, 409)
	mockRepo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}

func TestDeleteFolder_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil)

	folder := publicFolder(t)
	mockRepo.On("GetByID", mock.Anything, folder.ID).Return(folder, nil)
	mockRepo.On("HasChildren", mock.Anything, folder.ID).Return(false, nil)
	mockRepo.On("SoftDelete", mock.Anything, folder.ID).Return(nil)

	require.NoError(t, service.DeleteFolder(context.Background(), userWithRole(domain.RoleWriter), folder.ID))
	mockRepo.AssertExpectations(t)
}

func TestGetRootFolders_FiltersByAccess(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil)

	visible := publicFolder(t)
	hidden, err := domain.NewWikiFolder("Internal", "", "/internal", "", false, "admin-1")
	require.NoError(t, err)
	hidden.SetAllowedRoles([]string{"Reviewer"})

	mockRepo.On("GetRootFolders", mock.Anything).Return([]domain.WikiFolder{*visible, *hidden}, nil)

	results, err := service.GetRootFolders(context.Background(), userWithRole(domain.RoleReader))

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, visible.ID, results[0].ID)
}

func TestGetAncestors_ChecksAccessFirst(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil)

	hidden, err := domain.NewWikiFolder("Internal", "", "/internal", "", false, "admin-1")
	require.NoError(t, err)
	hidden.SetAllowedRoles([]string{"Reviewer"})
	mockRepo.On("GetByID", mock.Anything, hidden.ID).Return(hidden, nil)

	_, err = service.GetAncestors(context.Background(), userWithRole(domain.RoleReader), hidden.ID)
	assertStatus(t, err, 403)
}
