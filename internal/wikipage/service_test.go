package wikipage

import (
	"context"
	"testing"

	"wikiarea-backend/internal/domain"
	"wikiarea-backend/internal/errors"
	"wikiarea-backend/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the PageRepository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, page *domain.WikiPage) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, page *domain.WikiPage) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *MockRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*domain.WikiPage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WikiPage), args.Error(1)
}

func (m *MockRepository) GetBySlug(ctx context.Context, slug string) (*domain.WikiPage, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WikiPage), args.Error(1)
}

func (m *MockRepository) GetByFolderID(ctx context.Context, folderID string) ([]domain.WikiPage, error) {
	args := m.Called(ctx, folderID)
	return args.Get(0).([]domain.WikiPage), args.Error(1)
}

func (m *MockRepository) GetByTag(ctx context.Context, tag string) ([]domain.WikiPage, error) {
	args := m.Called(ctx, tag)
	return args.Get(0).([]domain.WikiPage), args.Error(1)
}

func (m *MockRepository) GetByStatus(ctx context.Context, status domain.PageStatus) ([]domain.WikiPage, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.WikiPage), args.Error(1)
}

func (m *MockRepository) GetByAuthor(ctx context.Context, authorID string) ([]domain.WikiPage, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]domain.WikiPage), args.Error(1)
}

func (m *MockRepository) Search(ctx context.Context, term string) ([]domain.WikiPage, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]domain.WikiPage), args.Error(1)
}

func (m *MockRepository) GetRecentlyUpdated(ctx context.Context, count int) ([]domain.WikiPage, error) {
	args := m.Called(ctx, count)
	return args.Get(0).([]domain.WikiPage), args.Error(1)
}

func (m *MockRepository) GetMostViewed(ctx context.Context, count int) ([]domain.WikiPage, error) {
	args := m.Called(ctx, count)
	return args.Get(0).([]domain.WikiPage), args.Error(1)
}

func (m *MockRepository) GetForReview(ctx context.Context) ([]domain.WikiPage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.WikiPage), args.Error(1)
}

func (m *MockRepository) IsSlugUnique(ctx context.Context, slug, excludePageID string) (bool, error) {
	args := m.Called(ctx, slug, excludePageID)
	return args.Bool(0), args.Error(1)
}

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	events []domain.Event
}

func (p *capturingPublisher) Publish(events ...domain.Event) {
	p.events = append(p.events, events...)
}

func userWithRole(role domain.UserRole) *domain.User {
	u := &domain.User{Role: role}
	u.UpdateRole(role)
	return u
}

func newService(repo PageRepository, pub EventPublisher) Service {
	return NewService(repo, redis.NewCache(nil), pub)
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	apiErr, ok := err.(*errors.APIError)
	require.True(t, ok, "expected *errors.APIError, got %T", err)
	assert.Equal(t, status, apiErr.Status)
}

func publicPage(t *testing.T) *domain.WikiPage {
	t.Helper()
	page, err := domain.NewWikiPage("Getting Started", "content", domain.ContentTypeMarkdown, "", true, "author-1")
	require.NoError(t, err)
	page.ClearEvents()
	return page
}

func TestCreatePage_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	publisher := &capturingPublisher{}
	service := newService(mockRepo, publisher)

	mockRepo.On("IsSlugUnique", mock.Anything, "getting-started", "").Return(true, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	created, err := service.CreatePage(context.Background(), userWithRole(domain.RoleWriter), CreatePageInput{
		Title:   "Getting Started",
		Content: "# Welcome",
		Tags:    []string{"Intro", "intro", "Setup"},
	})

	require.NoError(t, err)
	assert.Equal(t, "getting-started", created.Slug)
	assert.Equal(t, "Draft", created.Status)
	assert.Equal(t, "Markdown", created.ContentType)
	assert.Equal(t, []string{"intro", "setup"}, created.Tags)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "wikipage.created", publisher.events[0].EventName())
}

func TestCreatePage_SlugConflict(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, nil)

	mockRepo.On("IsSlugUnique", mock.Anything, "getting-started", "").Return(false, nil)

	_, err := service.CreatePage(context.Background(), userWithRole(domain.RoleWriter), CreatePageInput{
		Title:   "Getting Started",
		Content: "body",
	})

	assertStatus(t, err, 409)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePage_TooManyTags(t *testing.T) {
	service := newService(new(MockRepository), nil)

	tags := make([]string, 11)
	for i := range tags {
		tags[i] = string(rune('a' + i))
	}
	_, err := service.CreatePage(context.Background(), userWithRole(domain.RoleWriter), CreatePageInput{
		Title:   "T",
		Content: "c",
		Tags:    tags,
	})

	assertStatus(t, err, 422)
}

func TestCreatePage_InvalidContentType(t *testing.T) {
	service := newService(new(MockRepository), nil)

	_, err := service.CreatePage(context.Background(), userWithRole(domain.RoleWriter), CreatePageInput{
		Title:       "T",
		Content:     "c",
		ContentType: "Spreadsheet",
	})

	assertStatus(t, err, 400)
}

func TestGetPageBySlug_CountsView(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, nil)

	page := publicPage(t)
	mockRepo.On("GetBySlug", mock.Anything, "getting-started").Return(page, nil)
	mockRepo.On("Update", mock.Anything, page).Return(nil)

	found, err := service.GetPageBySlug(context.Background(), userWithRole(domain.RoleReader), "getting-started")

	require.NoError(t, err)
	assert.Equal(t, 1, found.ViewCount)
	mockRepo.AssertExpectations(t)
}

func TestGetPageBySlug_Forbidden(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, nil)

	page := publicPage(t)
	page.IsPublic = false
	page.SetAllowedRoles([]string{"Reviewer"})
	mockRepo.On("GetBySlug", mock.Anything, "getting-started").Return(page, nil)

	_, err := service.GetPageBySlug(context.Background(), userWithRole(domain.RoleReader), "getting-started")
	assertStatus(t, err, 403)
}

func TestGetPageByID_NotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, nil)

	mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	_, err := service.GetPageByID(context.Background(), userWithRole(domain.RoleReader), "missing")
	assertStatus(t, err, 404)
}

func TestUpdatePage_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	publisher := &capturingPublisher{}
	service := newService(mockRepo, publisher)

	page := publicPage(t)
	page.AddTag("old")
	mockRepo.On("GetByID", mock.Anything, page.ID).Return(page, nil)
	mockRepo.On("IsSlugUnique", mock.Anything, "advanced-setup", page.ID).Return(true, nil)
	mockRepo.On("Update", mock.Anything, page).Return(nil)

	updated, err := service.UpdatePage(context.Background(), userWithRole(domain.RoleWriter), page.ID, UpdatePageInput{
		Title:    "Advanced Setup",
		Content:  "new body",
		IsPublic: true,
		Tags:     []string{"new"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "advanced-setup", updated.Slug)
	assert.Equal(t, []string{"new"}, updated.Tags)
	assert.NotEmpty(t, publisher.events)
}

func TestUpdatePage_ReaderForbidden(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, nil)

	page := publicPage(t)
	mockRepo.On("GetByID", mock.Anything, page.ID).Return(page, nil)

	_, err := service.UpdatePage(context.Background(), userWithRole(domain.RoleReader), page.ID, UpdatePageInput{
		Title:   "X",
		Content: "y",
	})

	assertStatus(t, err, 403)
}

func TestApprovePage_RequiresReviewer(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, nil)

	page := publicPage(t)
	page.SubmitForReview("author-1")
	mockRepo.On("GetByID", mock.Anything, page.ID).Return(page, nil)

	_, err := service.ApprovePage(context.Background(), userWithRole(domain.RoleWriter), page.ID, "lgtm")
	assertStatus(t, err, 403)
}

func TestApprovePage_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, nil)

	page := publicPage(t)
	page.SubmitForReview("author-1")
	mockRepo.On("GetByID", mock.Anything, page.ID).Return(page, nil)
	mockRepo.On("Update", mock.Anything, page).Return(nil)

	approved, err := service.ApprovePage(context.Background(), userWithRole(domain.RoleReviewer), page.ID, "lgtm")

	require.NoError(t, err)
	assert.Equal(t, "Published", approved.Status)
	assert.Equal(t, "lgtm", approved.ReviewNotes)
}

func TestRejectPage_NotesRequired(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, nil)

	page := publicPage(t)
	page.SubmitForReview("author-1")
	mockRepo.On("GetByID", mock.Anything, page.ID).Return(page, nil)

	_, err := service.RejectPage(context.Background(), userWithRole(domain.RoleReviewer), page.ID, "  ")
	assertStatus(t, err, 400)
}

func TestDeletePage_SoftDeletes(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, nil)

	page := publicPage(t)
	mockRepo.On("GetByID", mock.Anything, page.ID).Return(page, nil)
	mockRepo.On("SoftDelete", mock.Anything, page.ID).Return(nil)

	err := service.DeletePage(context.Background(), userWithRole(domain.RoleWriter), page.ID)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestGetRecentPages_FiltersByAccess(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, nil)

	visible := publicPage(t)
	hidden := publicPage(t)
	hidden.IsPublic = false
	hidden.SetAllowedRoles([]string{"Reviewer"})

	mockRepo.On("GetRecentlyUpdated", mock.Anything, 10).Return([]domain.WikiPage{*visible, *hidden}, nil)

	results, err := service.GetRecentPages(context.Background(), userWithRole(domain.RoleReader), 10)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, visible.ID, results[0].ID)
}

func TestGetPagesForReview_RequiresPermission(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, nil)

	_, err := service.GetPagesForReview(context.Background(), userWithRole(domain.RoleWriter))
	assertStatus(t, err, 403)

	mockRepo.On("GetForReview", mock.Anything).Return([]domain.WikiPage{}, nil)
	results, err := service.GetPagesForReview(context.Background(), userWithRole(domain.RoleAdministrator))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchPages_BlankTerm(t *testing.T) {
	service := newService(new(MockRepository), nil)

	results, err := service.SearchPages(context.Background(), userWithRole(domain.RoleReader), "   ")

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLikeUnlikePage(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo, nil)

	page := publicPage(t)
	mockRepo.On("GetByID", mock.Anything, page.ID).Return(page, nil)
	mockRepo.On("Update", mock.Anything, page).Return(nil)

	liked, err := service.LikePage(context.Background(), userWithRole(domain.RoleReader), page.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.LikeCount)

	unliked, err := service.UnlikePage(context.Background(), userWithRole(domain.RoleReader), page.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unliked.LikeCount)
}
