package comment

import (
	"context"

	"wikiarea-backend/internal/domain"
	"wikiarea-backend/internal/errors"
)

// EventPublisher receives domain events after a successful commit. Satisfied
// by worker.AuditPool; nil disables publishing.
type EventPublisher interface {
	Publish(events ...domain.Event)
}

// PageProvider resolves the page a comment belongs to, for access checks.
// Satisfied by the wiki page repository.
type PageProvider interface {
	GetByID(ctx context.Context, id string) (*domain.WikiPage, error)
}

// Service defines the comment business logic.
type Service interface {
	CreateComment(ctx context.Context, actor *domain.User, input CreateCommentInput) (*CommentDTO, error)
	GetCommentByID(ctx context.Context, actor *domain.User, id string) (*CommentDTO, error)
	UpdateComment(ctx context.Context, actor *domain.User, id, content string) (*CommentDTO, error)
	DeleteComment(ctx context.Context, actor *domain.User, id string) error
	ResolveComment(ctx context.Context, actor *domain.User, id string) (*CommentDTO, error)
	UnresolveComment(ctx context.Context, actor *domain.User, id string) (*CommentDTO, error)
	LikeComment(ctx context.Context, actor *domain.User, id string) (*CommentDTO, error)
	UnlikeComment(ctx context.Context, actor *domain.User, id string) (*CommentDTO, error)
	GetCommentsByPage(ctx context.Context, actor *domain.User, wikiPageID string) ([]CommentDTO, error)
	GetReplies(ctx context.Context, actor *domain.User, parentCommentID string) ([]CommentDTO, error)
	GetUnresolvedComments(ctx context.Context, actor *domain.User, wikiPageID string) ([]CommentDTO, error)
	GetCommentsByMention(ctx context.Context, actor *domain.User, username string) ([]CommentDTO, error)
	GetCommentsByAuthor(ctx context.Context, actor *domain.User, authorID string) ([]CommentDTO, error)
	GetCommentCount(ctx context.Context, actor *domain.User, wikiPageID string) (int64, error)
}

type CreateCommentInput struct {
	WikiPageID      string
	Content         string
	ParentCommentID string
}

type DefaultService struct {
	repository CommentRepository
	pages      PageProvider
	events     EventPublisher
}

func NewService(repository CommentRepository, pages PageProvider, events EventPublisher) Service {
	return &DefaultService{repository: repository, pages: pages, events: events}
}

func (s *DefaultService) CreateComment(ctx context.Context, actor *domain.User, input CreateCommentInput) (*CommentDTO, error) {
	if !actor.HasPermission("comment:pages") && !actor.HasPermission("*") {
		return nil, errors.Forbidden("You do not have permission to comment", nil)
	}
	if _, err := s.accessiblePage(ctx, actor, input.WikiPageID); err != nil {
		return nil, err
	}

	if input.ParentCommentID != "" {
		parent, err := s.repository.GetByID(ctx, input.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, errors.NotFound("Parent comment not found", nil)
		}
		if parent.WikiPageID != input.WikiPageID {
			return nil, errors.BadRequest("Parent comment belongs to a different page", nil)
		}
	}

	created, err := domain.NewComment(input.WikiPageID, actor.ID, input.Content, input.ParentCommentID)
	if err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}

	if err := s.repository.Create(ctx, created); err != nil {
		return nil, err
	}
	s.commit(created)

	dto := toCommentDTO(created)
	return &dto, nil
}

func (s *DefaultService) GetCommentByID(ctx context.Context, actor *domain.User, id string) (*CommentDTO, error) {
	found, err := s.getOnAccessiblePage(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	dto := toCommentDTO(found)
	return &dto, nil
}

// UpdateComment allows authors to edit their own comments only.
func (s *DefaultService) UpdateComment(ctx context.Context, actor *domain.User, id, content string) (*CommentDTO, error) {
	found, err := s.getOnAccessiblePage(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if found.AuthorID != actor.ID {
		return nil, errors.Forbidden("You can only edit your own comments", nil)
	}

	if err := found.UpdateContent(content, actor.ID); err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}
	if err := s.repository.Update(ctx, found); err != nil {
		return nil, err
	}
	s.commit(found)

	dto := toCommentDTO(found)
	return &dto, nil
}

// DeleteComment allows the author or an administrator.
func (s *DefaultService) DeleteComment(ctx context.Context, actor *domain.User, id string) error {
	found, err := s.getOnAccessiblePage(ctx, actor, id)
	if err != nil {
		return err
	}
	if found.AuthorID != actor.ID && actor.Role != domain.RoleAdministrator {
		return errors.Forbidden("You can only delete your own comments", nil)
	}
	return s.repository.SoftDelete(ctx, found.ID)
}

func (s *DefaultService) ResolveComment(ctx context.Context, actor *domain.User, id string) (*CommentDTO, error) {
	return s.resolveState(ctx, actor, id, func(c *domain.Comment) { c.Resolve(actor.ID) })
}

func (s *DefaultService) UnresolveComment(ctx context.Context, actor *domain.User, id string) (*CommentDTO, error) {
	return s.resolveState(ctx, actor, id, func(c *domain.Comment) { c.Unresolve() })
}

func (s *DefaultService) LikeComment(ctx context.Context, actor *domain.User, id string) (*CommentDTO, error) {
	found, err := s.getOnAccessiblePage(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	found.IncrementLikeCount()
	if err := s.repository.Update(ctx, found); err != nil {
		return nil, err
	}
	dto := toCommentDTO(found)
	return &dto, nil
}

func (s *DefaultService) UnlikeComment(ctx context.Context, actor *domain.User, id string) (*CommentDTO, error) {
	found, err := s.getOnAccessiblePage(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	found.DecrementLikeCount()
	if err := s.repository.Update(ctx, found); err != nil {
		return nil, err
	}
	dto := toCommentDTO(found)
	return &dto, nil
}

func (s *DefaultService) GetCommentsByPage(ctx context.Context, actor *domain.User, wikiPageID string) ([]CommentDTO, error) {
	if _, err := s.accessiblePage(ctx, actor, wikiPageID); err != nil {
		return nil, err
	}
	comments, err := s.repository.GetByWikiPageID(ctx, wikiPageID)
	if err != nil {
		return nil, err
	}
	return toCommentDTOs(comments), nil
}

func (s *DefaultService) GetReplies(ctx context.Context, actor *domain.User, parentCommentID string) ([]CommentDTO, error) {
	if _, err := s.getOnAccessiblePage(ctx, actor, parentCommentID); err != nil {
		return nil, err
	}
	replies, err := s.repository.GetReplies(ctx, parentCommentID)
	if err != nil {
		return nil, err
	}
	return toCommentDTOs(replies), nil
}

func (s *DefaultService) GetUnresolvedComments(ctx context.Context, actor *domain.User, wikiPageID string) ([]CommentDTO, error) {
	if _, err := s.accessiblePage(ctx, actor, wikiPageID); err != nil {
		return nil, err
	}
	comments, err := s.repository.GetUnresolved(ctx, wikiPageID)
	if err != nil {
		return nil, err
	}
	return toCommentDTOs(comments), nil
}

// GetCommentsByMention lists comments mentioning a username. Mentions are
// free-form tokens, so no user lookup happens here.
func (s *DefaultService) GetCommentsByMention(ctx context.Context, actor *domain.User, username string) ([]CommentDTO, error) {
	comments, err := s.repository.GetByMention(ctx, username)
	if err != nil {
		return nil, err
	}
	return toCommentDTOs(comments), nil
}

// GetCommentsByAuthor lists a user's comment history, newest first.
func (s *DefaultService) GetCommentsByAuthor(ctx context.Context, actor *domain.User, authorID string) ([]CommentDTO, error) {
	comments, err := s.repository.GetByAuthorID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return toCommentDTOs(comments), nil
}

func (s *DefaultService) GetCommentCount(ctx context.Context, actor *domain.User, wikiPageID string) (int64, error) {
	if _, err := s.accessiblePage(ctx, actor, wikiPageID); err != nil {
		return 0, err
	}
	return s.repository.CountByWikiPageID(ctx, wikiPageID)
}

// resolveState gates resolve and unresolve behind the resolve permission,
// which only the administrator wildcard grants in the current role model.
func (s *DefaultService) resolveState(ctx context.Context, actor *domain.User, id string, apply func(*domain.Comment)) (*CommentDTO, error) {
	if !actor.HasPermission("resolve:comments") && !actor.HasPermission("*") {
		return nil, errors.Forbidden("You do not have permission to resolve comments", nil)
	}

	found, err := s.getOnAccessiblePage(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	apply(found)
	if err := s.repository.Update(ctx, found); err != nil {
		return nil, err
	}
	s.commit(found)

	dto := toCommentDTO(found)
	return &dto, nil
}

func (s *DefaultService) getOnAccessiblePage(ctx context.Context, actor *domain.User, id string) (*domain.Comment, error) {
	found, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, errors.NotFound("Comment not found", nil)
	}
	if _, err := s.accessiblePage(ctx, actor, found.WikiPageID); err != nil {
		return nil, err
	}
	return found, nil
}

func (s *DefaultService) accessiblePage(ctx context.Context, actor *domain.User, wikiPageID string) (*domain.WikiPage, error) {
	page, err := s.pages.GetByID(ctx, wikiPageID)
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

func (s *DefaultService) commit(c *domain.Comment) {
	if s.events != nil {
		s.events.Publish(c.Events()...)
	}
	c.ClearEvents()
}
