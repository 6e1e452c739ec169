package wikipage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wikiarea-backend/internal/domain"
	"wikiarea-backend/internal/errors"
	"wikiarea-backend/redis"
)

const (
	maxTagsPerPage = 10

	pageListVersionKey = "pages:list:version"
	pageListTTL        = 10 * time.Minute
)

// EventPublisher receives domain events after a successful commit. Satisfied
// by worker.AuditPool; nil disables publishing.
type EventPublisher interface {
	Publish(events ...domain.Event)
}

// Service defines the wiki page business logic. Every operation takes the
// acting user so access and permission checks happen in one place.
type Service interface {
	CreatePage(ctx context.Context, actor *domain.User, input CreatePageInput) (*WikiPageDTO, error)
	GetPageByID(ctx context.Context, actor *domain.User, id string) (*WikiPageDTO, error)
	GetPageBySlug(ctx context.Context, actor *domain.User, slug string) (*WikiPageDTO, error)
	UpdatePage(ctx context.Context, actor *domain.User, id string, input UpdatePageInput) (*WikiPageDTO, error)
	DeletePage(ctx context.Context, actor *domain.User, id string) error
	PublishPage(ctx context.Context, actor *domain.User, id string) (*WikiPageDTO, error)
	SubmitForReview(ctx context.Context, actor *domain.User, id string) (*WikiPageDTO, error)
	ApprovePage(ctx context.Context, actor *domain.User, id, notes string) (*WikiPageDTO, error)
	RejectPage(ctx context.Context, actor *domain.User, id, notes string) (*WikiPageDTO, error)
	ArchivePage(ctx context.Context, actor *domain.User, id string) (*WikiPageDTO, error)
	MovePage(ctx context.Context, actor *domain.User, id, folderID string) (*WikiPageDTO, error)
	LikePage(ctx context.Context, actor *domain.User, id string) (*WikiPageDTO, error)
	UnlikePage(ctx context.Context, actor *domain.User, id string) (*WikiPageDTO, error)
	SearchPages(ctx context.Context, actor *domain.User, term string) ([]WikiPageSummaryDTO, error)
	GetRecentPages(ctx context.Context, actor *domain.User, count int) ([]WikiPageSummaryDTO, error)
	GetPagesByFolder(ctx context.Context, actor *domain.User, folderID string) ([]WikiPageSummaryDTO, error)
	GetPagesByTag(ctx context.Context, actor *domain.User, tag string) ([]WikiPageSummaryDTO, error)
	GetPagesByStatus(ctx context.Context, actor *domain.User, statusName string) ([]WikiPageSummaryDTO, error)
	GetPagesByAuthor(ctx context.Context, actor *domain.User, authorID string) ([]WikiPageSummaryDTO, error)
	GetMostViewedPages(ctx context.Context, actor *domain.User, count int) ([]WikiPageSummaryDTO, error)
	GetPagesForReview(ctx context.Context, actor *domain.User) ([]WikiPageSummaryDTO, error)
}

type CreatePageInput struct {
	Title        string
	Content      string
	ContentType  string
	FolderID     string
	IsPublic     bool
	Tags         []string
	AllowedRoles []string
}

type UpdatePageInput struct {
	Title        string
	Content      string
	FolderID     string
	IsPublic     bool
	Tags         []string
	AllowedRoles []string
}

type DefaultService struct {
	repository PageRepository
	cache      *redis.Cache
	events     EventPublisher
}

func NewService(repository PageRepository, cache *redis.Cache, events EventPublisher) Service {
	return &DefaultService{repository: repository, cache: cache, events: events}
}

func (s *DefaultService) CreatePage(ctx context.Context, actor *domain.User, input CreatePageInput) (*WikiPageDTO, error) {
	contentType := domain.ContentTypeMarkdown
	if input.ContentType != "" {
		parsed, err := domain.ParseContentType(input.ContentType)
		if err != nil {
			return nil, errors.BadRequest("Invalid content type", err)
		}
		contentType = parsed
	}
	if len(input.Tags) > maxTagsPerPage {
		return nil, errors.UnprocessableEntity(fmt.Sprintf("A page cannot have more than %d tags", maxTagsPerPage), nil)
	}

	page, err := domain.NewWikiPage(input.Title, input.Content, contentType, input.FolderID, input.IsPublic, actor.ID)
	if err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}

	unique, err := s.repository.IsSlugUnique(ctx, page.Slug, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, errors.Conflict("A page with this slug already exists", nil)
	}

	for _, tag := range input.Tags {
		page.AddTag(tag)
	}
	if len(input.AllowedRoles) > 0 {
		page.SetAllowedRoles(input.AllowedRoles)
	}

	if err := s.repository.Create(ctx, page); err != nil {
		return nil, err
	}
	s.commit(ctx, page)

	dto := toWikiPageDTO(page)
	return &dto, nil
}

func (s *DefaultService) GetPageByID(ctx context.Context, actor *domain.User, id string) (*WikiPageDTO, error) {
	page, err := s.getAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	dto := toWikiPageDTO(page)
	return &dto, nil
}

// GetPageBySlug is the public read path; it counts the view.
func (s *DefaultService) GetPageBySlug(ctx context.Context, actor *domain.User, slug string) (*WikiPageDTO, error) {
	page, err := s.repository.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, errors.NotFound("Page not found", nil)
	}
	if !page.HasAccess(actor) {
		return nil, errors.Forbidden("You do not have access to this page", nil)
	}

	page.IncrementViewCount()
	if err := s.repository.Update(ctx, page); err != nil {
		return nil, err
	}

	dto := toWikiPageDTO(page)
	return &dto, nil
}

func (s *DefaultService) UpdatePage(ctx context.Context, actor *domain.User, id string, input UpdatePageInput) (*WikiPageDTO, error) {
	page, err := s.getEditable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if len(input.Tags) > maxTagsPerPage {
		return nil, errors.UnprocessableEntity(fmt.Sprintf("A page cannot have more than %d tags", maxTagsPerPage), nil)
	}

	if err := page.UpdateContent(input.Title, input.Content, actor.ID); err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}

	unique, err := s.repository.IsSlugUnique(ctx, page.Slug, page.ID)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, errors.Conflict("A page with this slug already exists", nil)
	}

	if input.FolderID != page.FolderID {
		page.Move(input.FolderID, actor.ID)
	}
	page.IsPublic = input.IsPublic
	s.reconcileTags(page, input.Tags)
	page.SetAllowedRoles(input.AllowedRoles)

	if err := s.repository.Update(ctx, page); err != nil {
		return nil, err
	}
	s.commit(ctx, page)

	dto := toWikiPageDTO(page)
	return &dto, nil
}

func (s *DefaultService) DeletePage(ctx context.Context, actor *domain.User, id string) error {
	page, err := s.getEditable(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repository.SoftDelete(ctx, page.ID); err != nil {
		return err
	}
	s.invalidateListings(ctx)
	return nil
}

func (s *DefaultService) PublishPage(ctx context.Context, actor *domain.User, id string) (*WikiPageDTO, error) {
	return s.mutate(ctx, actor, id, func(page *domain.WikiPage) error {
		page.Publish(actor.ID)
		return nil
	})
}

func (s *DefaultService) SubmitForReview(ctx context.Context, actor *domain.User, id string) (*WikiPageDTO, error) {
	return s.mutate(ctx, actor, id, func(page *domain.WikiPage) error {
		page.SubmitForReview(actor.ID)
		return nil
	})
}

func (s *DefaultService) ApprovePage(ctx context.Context, actor *domain.User, id, notes string) (*WikiPageDTO, error) {
	return s.review(ctx, actor, id, func(page *domain.WikiPage) error {
		page.ApproveReview(actor.ID, notes)
		return nil
	})
}

func (s *DefaultService) RejectPage(ctx context.Context, actor *domain.User, id, notes string) (*WikiPageDTO, error) {
	return s.review(ctx, actor, id, func(page *domain.WikiPage) error {
		if err := page.RejectReview(actor.ID, notes); err != nil {
			return errors.BadRequest(err.Error(), err)
		}
		return nil
	})
}

func (s *DefaultService) ArchivePage(ctx context.Context, actor *domain.User, id string) (*WikiPageDTO, error) {
	return s.mutate(ctx, actor, id, func(page *domain.WikiPage) error {
		page.Archive(actor.ID)
		return nil
	})
}

func (s *DefaultService) MovePage(ctx context.Context, actor *domain.User, id, folderID string) (*WikiPageDTO, error) {
	return s.mutate(ctx, actor, id, func(page *domain.WikiPage) error {
		page.Move(folderID, actor.ID)
		return nil
	})
}

// LikePage requires read access only; liking is not an edit.
func (s *DefaultService) LikePage(ctx context.Context, actor *domain.User, id string) (*WikiPageDTO, error) {
	page, err := s.getAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	page.IncrementLikeCount()
	if err := s.repository.Update(ctx, page); err != nil {
		return nil, err
	}
	dto := toWikiPageDTO(page)
	return &dto, nil
}

func (s *DefaultService) UnlikePage(ctx context.Context, actor *domain.User, id string) (*WikiPageDTO, error) {
	page, err := s.getAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	page.DecrementLikeCount()
	if err := s.repository.Update(ctx, page); err != nil {
		return nil, err
	}
	dto := toWikiPageDTO(page)
	return &dto, nil
}

func (s *DefaultService) SearchPages(ctx context.Context, actor *domain.User, term string) ([]WikiPageSummaryDTO, error) {
	if strings.TrimSpace(term) == "" {
		return []WikiPageSummaryDTO{}, nil
	}
	pages, err := s.repository.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return summarizeAccessible(pages, actor), nil
}

// GetRecentPages serves from the version-keyed cache. Access filtering is
// purely role-based, so results are safe to share per role.
func (s *DefaultService) GetRecentPages(ctx context.Context, actor *domain.User, count int) ([]WikiPageSummaryDTO, error) {
	version := s.cache.GetVersion(ctx, pageListVersionKey)
	cacheKey := fmt.Sprintf("pages:recent:v%d:%s:%d", version, actor.Role, count)

	var cached []WikiPageSummaryDTO
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	pages, err := s.repository.GetRecentlyUpdated(ctx, count)
	if err != nil {
		return nil, err
	}
	results := summarizeAccessible(pages, actor)
	_ = s.cache.Set(ctx, cacheKey, results, pageListTTL)
	return results, nil
}

func (s *DefaultService) GetPagesByFolder(ctx context.Context, actor *domain.User, folderID string) ([]WikiPageSummaryDTO, error) {
	version := s.cache.GetVersion(ctx, pageListVersionKey)
	cacheKey := fmt.Sprintf("pages:folder:v%d:%s:%s", version, actor.Role, folderID)

	var cached []WikiPageSummaryDTO
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	pages, err := s.repository.GetByFolderID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	results := summarizeAccessible(pages, actor)
	_ = s.cache.Set(ctx, cacheKey, results, pageListTTL)
	return results, nil
}

func (s *DefaultService) GetPagesByTag(ctx context.Context, actor *domain.User, tag string) ([]WikiPageSummaryDTO, error) {
	pages, err := s.repository.GetByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	return summarizeAccessible(pages, actor), nil
}

func (s *DefaultService) GetPagesByStatus(ctx context.Context, actor *domain.User, statusName string) ([]WikiPageSummaryDTO, error) {
	status, err := domain.ParsePageStatus(statusName)
	if err != nil {
		return nil, errors.BadRequest("Invalid page status", err)
	}
	pages, err := s.repository.GetByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return summarizeAccessible(pages, actor), nil
}

func (s *DefaultService) GetPagesByAuthor(ctx context.Context, actor *domain.User, authorID string) ([]WikiPageSummaryDTO, error) {
	pages, err := s.repository.GetByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return summarizeAccessible(pages, actor), nil
}

func (s *DefaultService) GetMostViewedPages(ctx context.Context, actor *domain.User, count int) ([]WikiPageSummaryDTO, error) {
	pages, err := s.repository.GetMostViewed(ctx, count)
	if err != nil {
		return nil, err
	}
	return summarizeAccessible(pages, actor), nil
}

// GetPagesForReview lists the review queue for reviewers and administrators.
func (s *DefaultService) GetPagesForReview(ctx context.Context, actor *domain.User) ([]WikiPageSummaryDTO, error) {
	if !actor.HasPermission("review:pages") && !actor.HasPermission("*") {
		return nil, errors.Forbidden("You do not have review permissions", nil)
	}
	pages, err := s.repository.GetForReview(ctx)
	if err != nil {
		return nil, err
	}
	return summarizeAccessible(pages, actor), nil
}

// mutate runs an edit-gated state change and persists the result.
func (s *DefaultService) mutate(ctx context.Context, actor *domain.User, id string, apply func(*domain.WikiPage) error) (*WikiPageDTO, error) {
	page, err := s.getEditable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := apply(page); err != nil {
		return nil, err
	}
	if err := s.repository.Update(ctx, page); err != nil {
		return nil, err
	}
	s.commit(ctx, page)

	dto := toWikiPageDTO(page)
	return &dto, nil
}

// review runs a reviewer-gated state change and persists the result.
func (s *DefaultService) review(ctx context.Context, actor *domain.User, id string, apply func(*domain.WikiPage) error) (*WikiPageDTO, error) {
	page, err := s.getAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !page.CanReview(actor) {
		return nil, errors.Forbidden("You do not have review permissions", nil)
	}
	if err := apply(page); err != nil {
		return nil, err
	}
	if err := s.repository.Update(ctx, page); err != nil {
		return nil, err
	}
	s.commit(ctx, page)

	dto := toWikiPageDTO(page)
	return &dto, nil
}

func (s *DefaultService) getAccessible(ctx context.Context, actor *domain.User, id string) (*domain.WikiPage, error) {
	page, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, errors.NotFound("Page not found", nil)
	}
	if !page.HasAccess(actor) {
		return nil, errors.Forbidden("You do not have access to this page", nil)
	}
	return page, nil
}

func (s *DefaultService) getEditable(ctx context.Context, actor *domain.User, id string) (*domain.WikiPage, error) {
	page, err := s.getAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !page.CanEdit(actor) {
		return nil, errors.Forbidden("You do not have edit permissions for this page", nil)
	}
	return page, nil
}

// commit publishes the events recorded during the mutation and invalidates
// the cached listings. Call only after a successful persist.
func (s *DefaultService) commit(ctx context.Context, page *domain.WikiPage) {
	if s.events != nil {
		s.events.Publish(page.Events()...)
	}
	page.ClearEvents()
	s.invalidateListings(ctx)
}

func (s *DefaultService) invalidateListings(ctx context.Context) {
	s.cache.IncrementVersion(ctx, pageListVersionKey)
}

func (s *DefaultService) reconcileTags(page *domain.WikiPage, tags []string) {
	desired := make(map[string]bool, len(tags))
	for _, tag := range tags {
		desired[strings.ToLower(strings.TrimSpace(tag))] = true
	}
	for _, existing := range append([]string{}, page.Tags...) {
		if !desired[existing] {
			page.RemoveTag(existing)
		}
	}
	for _, tag := range tags {
		page.AddTag(tag)
	}
}

func summarizeAccessible(pages []domain.WikiPage, actor *domain.User) []WikiPageSummaryDTO {
	results := make([]WikiPageSummaryDTO, 0, len(pages))
	for i := range pages {
		if pages[i].HasAccess(actor) {
			results = append(results, toWikiPageSummaryDTO(&pages[i]))
		}
	}
	return results
}
