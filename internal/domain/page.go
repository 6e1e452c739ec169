package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
	ErrNotesRequired   = errors.New("review notes are required")
)

// WikiPage is the aggregate root for a single wiki article. Status moves
// through Draft -> UnderReview -> Published, with Archive as a one-way exit.
type WikiPage struct {
	Base `bson:",inline"`

	Title        string       `bson:"title" json:"title"`
	Slug         string       `bson:"slug" json:"slug"`
	Content      string       `bson:"content" json:"content"`
	ContentType  ContentType  `bson:"contentType" json:"contentType"`
	FolderID     string       `bson:"folderId,omitempty" json:"folderId,omitempty"`
	Status       PageStatus   `bson:"status" json:"status"`
	Version      int          `bson:"version" json:"version"`
	Tags         []string     `bson:"tags" json:"tags"`
	Attachments  []string     `bson:"attachments" json:"attachments"`
	IsPublic     bool         `bson:"isPublic" json:"isPublic"`
	AllowedRoles []string     `bson:"allowedRoles" json:"allowedRoles"`
	ReviewerID   string       `bson:"reviewerId,omitempty" json:"reviewerId,omitempty"`
	ReviewedAt   *time.Time   `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ReviewNotes  string       `bson:"reviewNotes" json:"reviewNotes"`
	ViewCount    int          `bson:"viewCount" json:"viewCount"`
	LikeCount    int          `bson:"likeCount" json:"likeCount"`
	Metadata     PageMetadata `bson:"metadata" json:"metadata"`
}

// NewWikiPage creates a page in Draft at version 1 with a slug derived from
// the title. folderID may be empty for pages outside any folder.
func NewWikiPage(title, content string, contentType ContentType, folderID string, isPublic bool, createdBy string) (*WikiPage, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	p := &WikiPage{
		Base:         newBase(createdBy),
		Title:        title,
		Slug:         GenerateSlug(title),
		Content:      content,
		ContentType:  contentType,
		FolderID:     folderID,
		Status:       PageStatusDraft,
		Version:      1,
		Tags:         []string{},
		Attachments:  []string{},
		IsPublic:     isPublic,
		AllowedRoles: []string{},
		Metadata:     NewPageMetadata(),
	}
	p.record(PageCreated{PageID: p.ID, Title: p.Title, Slug: p.Slug})
	return p, nil
}

// UpdateContent replaces title and content, recomputes the slug and bumps
// the version. A published page drops back to Draft; any other status is
// left alone.
func (p *WikiPage) UpdateContent(title, content, updatedBy string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(content) == "" {
		return ErrContentRequired
	}

	p.Title = title
	p.Content = content
	p.Slug = GenerateSlug(title)
	p.Version++
	if p.Status == PageStatusPublished {
		p.Status = PageStatusDraft
	}
	p.touch(updatedBy)
	p.record(PageContentUpdated{PageID: p.ID, Version: p.Version, UpdatedBy: updatedBy})
	return nil
}

// Publish sets the page live directly, bypassing review.
func (p *WikiPage) Publish(publishedBy string) {
	p.Status = PageStatusPublished
	p.touch(publishedBy)
	p.record(PagePublished{PageID: p.ID, PublishedBy: publishedBy})
}

func (p *WikiPage) SubmitForReview(submittedBy string) {
	p.Status = PageStatusUnderReview
	p.touch(submittedBy)
	p.record(PageSubmittedForReview{PageID: p.ID, SubmittedBy: submittedBy})
}

func (p *WikiPage) ApproveReview(reviewerID, notes string) {
	now := time.Now().UTC()
	p.ReviewerID = reviewerID
	p.ReviewedAt = &now
	p.ReviewNotes = notes
	p.Status = PageStatusPublished
	p.touch(reviewerID)
	p.record(PageReviewApproved{PageID: p.ID, ReviewerID: reviewerID, Notes: notes})
}

// RejectReview sends the page back to Draft. Notes are mandatory so the
// author knows what to fix.
func (p *WikiPage) RejectReview(reviewerID, notes string) error {
	if strings.TrimSpace(notes) == "" {
		return ErrNotesRequired
	}
	now := time.Now().UTC()
	p.ReviewerID = reviewerID
	p.ReviewedAt = &now
	p.ReviewNotes = notes
	p.Status = PageStatusDraft
	p.touch(reviewerID)
	p.record(PageReviewRejected{PageID: p.ID, ReviewerID: reviewerID, Notes: notes})
	return nil
}

// Archive is terminal in this version; no verb reverses it.
func (p *WikiPage) Archive(archivedBy string) {
	p.Status = PageStatusArchived
	p.touch(archivedBy)
	p.record(PageArchived{PageID: p.ID})
}

func (p *WikiPage) Move(newFolderID, movedBy string) {
	p.FolderID = newFolderID
	p.touch(movedBy)
	p.record(PageMoved{PageID: p.ID, NewFolderID: newFolderID})
}

// AddTag stores tags lower-cased and deduplicated.
func (p *WikiPage) AddTag(tag string) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if !slices.Contains(p.Tags, normalized) {
		p.Tags = append(p.Tags, normalized)
		p.touch("")
	}
}

func (p *WikiPage) RemoveTag(tag string) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if i := slices.Index(p.Tags, normalized); i >= 0 {
		p.Tags = slices.Delete(p.Tags, i, i+1)
		p.touch("")
	}
}

func (p *WikiPage) AddAttachment(attachmentID string) {
	if !slices.Contains(p.Attachments, attachmentID) {
		p.Attachments = append(p.Attachments, attachmentID)
		p.touch("")
	}
}

func (p *WikiPage) RemoveAttachment(attachmentID string) {
	if i := slices.Index(p.Attachments, attachmentID); i >= 0 {
		p.Attachments = slices.Delete(p.Attachments, i, i+1)
		p.touch("")
	}
}

func (p *WikiPage) IncrementViewCount() {
	p.ViewCount++
	p.touch("")
}

func (p *WikiPage) IncrementLikeCount() {
	p.LikeCount++
	p.touch("")
}

// DecrementLikeCount never lets the counter go negative.
func (p *WikiPage) DecrementLikeCount() {
	if p.LikeCount > 0 {
		p.LikeCount--
		p.touch("")
	}
}

func (p *WikiPage) SetAllowedRoles(roles []string) {
	p.AllowedRoles = append([]string{}, roles...)
	p.touch("")
}

// HasAccess: public pages are readable by anyone, administrators see
// everything, otherwise the user's role must be in the allow list.
func (p *WikiPage) HasAccess(u *User) bool {
	if p.IsPublic {
		return true
	}
	if u.Role == RoleAdministrator {
		return true
	}
	return slices.Contains(p.AllowedRoles, string(u.Role))
}

func (p *WikiPage) CanEdit(u *User) bool {
	if !p.HasAccess(u) {
		return false
	}
	return u.HasPermission("write:pages") || u.HasPermission("*")
}

func (p *WikiPage) CanReview(u *User) bool {
	return u.HasPermission("review:pages") || u.HasPermission("*")
}
