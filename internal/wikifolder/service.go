package wikifolder

import (
	"context"
	"strings"

	"wikiarea-backend/internal/domain"
	"wikiarea-backend/internal/errors"
)

// EventPublisher receives domain events after a successful commit. Satisfied
// by worker.AuditPool; nil disables publishing.
type EventPublisher interface {
	Publish(events ...domain.Event)
}

// Service defines the folder hierarchy business logic.
type Service interface {
	CreateFolder(ctx context.Context, actor *domain.User, input CreateFolderInput) (*WikiFolderDTO, error)
	GetFolderByID(ctx context.Context, actor *domain.User, id string) (*WikiFolderDTO, error)
	GetFolderByPath(ctx context.Context, actor *domain.User, path string) (*WikiFolderDTO, error)
	UpdateFolder(ctx context.Context, actor *domain.User, id string, input UpdateFolderInput) (*WikiFolderDTO, error)
	UpdateFolderPath(ctx context.Context, actor *domain.User, id, path string) (*WikiFolderDTO, error)
	MoveFolder(ctx context.Context, actor *domain.User, id, parentFolderID string) (*WikiFolderDTO, error)
	DeleteFolder(ctx context.Context, actor *domain.User, id string) error
	GetRootFolders(ctx context.Context, actor *domain.User) ([]WikiFolderDTO, error)
	GetChildFolders(ctx context.Context, actor *domain.User, parentID string) ([]WikiFolderDTO, error)
	GetDescendants(ctx context.Context, actor *domain.User, id string) ([]WikiFolderDTO, error)
	GetAncestors(ctx context.Context, actor *domain.User, id string) ([]WikiFolderDTO, error)
}

type CreateFolderInput struct {
	Name           string
	Description    string
	Path           string
	ParentFolderID string
	IsPublic       bool
	Tags           []string
	AllowedRoles   []string
}

type UpdateFolderInput struct {
	Name         string
	Description  string
	IsPublic     bool
	SortOrder    int
	Tags         []string
	AllowedRoles []string
}

type DefaultService struct {
	repository FolderRepository
	events     EventPublisher
}

func NewService(repository FolderRepository, events EventPublisher) Service {
	return &DefaultService{repository: repository, events: events}
}

func (s *DefaultService) CreateFolder(ctx context.Context, actor *domain.User, input CreateFolderInput) (*WikiFolderDTO, error) {
	if !canManage(actor) {
		return nil, errors.Forbidden("You do not have permission to manage folders", nil)
	}

	unique, err := s.repository.IsPathUnique(ctx, input.Path, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, errors.Conflict("A folder with this path already exists", nil)
	}

	folder, err := domain.NewWikiFolder(input.Name, input.Description, input.Path, input.ParentFolderID, input.IsPublic, actor.ID)
	if err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}
	for _, tag := range input.Tags {
		folder.AddTag(tag)
	}
	if len(input.AllowedRoles) > 0 {
		folder.SetAllowedRoles(input.AllowedRoles)
	}

	if err := s.repository.Create(ctx, folder); err != nil {
		return nil, err
	}
	s.commit(folder)

	dto := toWikiFolderDTO(folder)
	return &dto, nil
}

func (s *DefaultService) GetFolderByID(ctx context.Context, actor *domain.User, id string) (*WikiFolderDTO, error) {
	folder, err := s.getAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	dto := toWikiFolderDTO(folder)
	return &dto, nil
}

func (s *DefaultService) GetFolderByPath(ctx context.Context, actor *domain.User, path string) (*WikiFolderDTO, error) {
	folder, err := s.repository.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, errors.NotFound("Folder not found", nil)
	}
	if !folder.HasAccess(actor) {
		return nil, errors.Forbidden("You do not have access to this folder", nil)
	}
	dto := toWikiFolderDTO(folder)
	return &dto, nil
}

func (s *DefaultService) UpdateFolder(ctx context.Context, actor *domain.User, id string, input UpdateFolderInput) (*WikiFolderDTO, error) {
	folder, err := s.getManageable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := folder.UpdateDetails(input.Name, input.Description, input.IsPublic, actor.ID); err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}
	folder.UpdateSortOrder(input.SortOrder)
	s.reconcileTags(folder, input.Tags)
	folder.SetAllowedRoles(input.AllowedRoles)

	if err := s.repository.Update(ctx, folder); err != nil {
		return nil, err
	}
	s.commit(folder)

	dto := toWikiFolderDTO(folder)
	return &dto, nil
}

// UpdateFolderPath changes the path key only. Descendant paths are curated
// independently and are not rewritten here.
func (s *DefaultService) UpdateFolderPath(ctx context.Context, actor *domain.User, id, path string) (*WikiFolderDTO, error) {
	folder, err := s.getManageable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	unique, err := s.repository.IsPathUnique(ctx, path, folder.ID)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, errors.Conflict("A folder with this path already exists", nil)
	}

	if err := folder.UpdatePath(path, actor.ID); err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}

	if err := s.repository.Update(ctx, folder); err != nil {
		return nil, err
	}
	s.commit(folder)

	dto := toWikiFolderDTO(folder)
	return &dto, nil
}

func (s *DefaultService) MoveFolder(ctx context.Context, actor *domain.User, id, parentFolderID string) (*WikiFolderDTO, error) {
	folder, err := s.getManageable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if parentFolderID == folder.ID {
		return nil, errors.BadRequest("A folder cannot be its own parent", nil)
	}
	if parentFolderID != "" {
		parent, err := s.repository.GetByID(ctx, parentFolderID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, errors.NotFound("Target folder not found", nil)
		}
	}

	folder.Move(parentFolderID, actor.ID)
	if err := s.repository.Update(ctx, folder); err != nil {
		return nil, err
	}
	s.commit(folder)

	dto := toWikiFolderDTO(folder)
	return &dto, nil
}

// DeleteFolder refuses to delete a folder that still has child folders.
func (s *DefaultService) DeleteFolder(ctx context.Context, actor *domain.User, id string) error {
	folder, err := s.getManageable(ctx, actor, id)
	if err != nil {
		return err
	}

	hasChildren, err := s.repository.HasChildren(ctx, folder.ID)
	if err != nil {
		return err
	}
	if hasChildren {
		return errors.Conflict("Folder has child folders and cannot be deleted", nil)
	}

	return s.repository.SoftDelete(ctx, folder.ID)
}

func (s *DefaultService) GetRootFolders(ctx context.Context, actor *domain.User) ([]WikiFolderDTO, error) {
	folders, err := s.repository.GetRootFolders(ctx)
	if err != nil {
		return nil, err
	}
	return filterAccessible(folders, actor), nil
}

func (s *DefaultService) GetChildFolders(ctx context.Context, actor *domain.User, parentID string) ([]WikiFolderDTO, error) {
	folders, err := s.repository.GetByParentID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return filterAccessible(folders, actor), nil
}

func (s *DefaultService) GetDescendants(ctx context.Context, actor *domain.User, id string) ([]WikiFolderDTO, error) {
	if _, err := s.getAccessible(ctx, actor, id); err != nil {
		return nil, err
	}
	folders, err := s.repository.GetDescendants(ctx, id)
	if err != nil {
		return nil, err
	}
	return filterAccessible(folders, actor), nil
}

// GetAncestors returns the breadcrumb chain, root first.
func (s *DefaultService) GetAncestors(ctx context.Context, actor *domain.User, id string) ([]WikiFolderDTO, error) {
	if _, err := s.getAccessible(ctx, actor, id); err != nil {
		return nil, err
	}
	folders, err := s.repository.GetAncestors(ctx, id)
	if err != nil {
		return nil, err
	}
	return filterAccessible(folders, actor), nil
}

func (s *DefaultService) getAccessible(ctx context.Context, actor *domain.User, id string) (*domain.WikiFolder, error) {
	folder, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, errors.NotFound("Folder not found", nil)
	}
	if !folder.HasAccess(actor) {
		return nil, errors.Forbidden("You do not have access to this folder", nil)
	}
	return folder, nil
}

func (s *DefaultService) getManageable(ctx context.Context, actor *domain.User, id string) (*domain.WikiFolder, error) {
	folder, err := s.getAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor) {
		return nil, errors.Forbidden("You do not have permission to manage folders", nil)
	}
	return folder, nil
}

func (s *DefaultService) commit(folder *domain.WikiFolder) {
	if s.events != nil {
		s.events.Publish(folder.Events()...)
	}
	folder.ClearEvents()
}

func (s *DefaultService) reconcileTags(folder *domain.WikiFolder, tags []string) {
	desired := make(map[string]bool, len(tags))
	for _, tag := range tags {
		desired[normalizeTag(tag)] = true
	}
	for _, existing := range append([]string{}, folder.Tags...) {
		if !desired[existing] {
			folder.RemoveTag(existing)
		}
	}
	for _, tag := range tags {
		folder.AddTag(tag)
	}
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// canManage gates folder mutations on page-write permissions; there is no
// separate folder permission in the role model.
func canManage(u *domain.User) bool {
	return u.HasPermission("write:pages") || u.HasPermission("*")
}

func filterAccessible(folders []domain.WikiFolder, actor *domain.User) []WikiFolderDTO {
	results := make([]WikiFolderDTO, 0, len(folders))
	for i := range folders {
		if folders[i].HasAccess(actor) {
			results = append(results, toWikiFolderDTO(&folders[i]))
		}
	}
	return results
}
