package wikipage

import (
	"time"

	"wikiarea-backend/internal/domain"
)

// WikiPageDTO is the full transfer shape, returned by single-page reads and
// by every mutation.
type WikiPageDTO struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Slug         string              `json:"slug"`
	Content      string              `json:"content"`
	ContentType  string              `json:"contentType"`
	FolderID     string              `json:"folderId,omitempty"`
	Status       string              `json:"status"`
	Version      int                 `json:"version"`
	Tags         []string            `json:"tags"`
	Attachments  []string            `json:"attachments"`
	IsPublic     bool                `json:"isPublic"`
	AllowedRoles []string            `json:"allowedRoles"`
	ReviewerID   string              `json:"reviewerId,omitempty"`
	ReviewedAt   *time.Time          `json:"reviewedAt,omitempty"`
	ReviewNotes  string              `json:"reviewNotes,omitempty"`
	ViewCount    int                 `json:"viewCount"`
	LikeCount    int                 `json:"likeCount"`
	Metadata     domain.PageMetadata `json:"metadata"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	CreatedBy    string              `json:"createdBy"`
	UpdatedBy    string              `json:"updatedBy,omitempty"`
}

// WikiPageSummaryDTO is the reduced shape used by listings and search, it
// omits the content body.
type WikiPageSummaryDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	FolderID  string    `json:"folderId,omitempty"`
	Status    string    `json:"status"`
	Version   int       `json:"version"`
	Tags      []string  `json:"tags"`
	IsPublic  bool      `json:"isPublic"`
	ViewCount int       `json:"viewCount"`
	LikeCount int       `json:"likeCount"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

func toWikiPageDTO(p *domain.WikiPage) WikiPageDTO {
	return WikiPageDTO{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Content:      p.Content,
		ContentType:  string(p.ContentType),
		FolderID:     p.FolderID,
		Status:       string(p.Status),
		Version:      p.Version,
		Tags:         p.Tags,
		Attachments:  p.Attachments,
		IsPublic:     p.IsPublic,
		AllowedRoles: p.AllowedRoles,
		ReviewerID:   p.ReviewerID,
		ReviewedAt:   p.ReviewedAt,
		ReviewNotes:  p.ReviewNotes,
		ViewCount:    p.ViewCount,
		LikeCount:    p.LikeCount,
		Metadata:     p.Metadata,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		CreatedBy:    p.CreatedBy,
		UpdatedBy:    p.UpdatedBy,
	}
}

func toWikiPageSummaryDTO(p *domain.WikiPage) WikiPageSummaryDTO {
	return WikiPageSummaryDTO{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		FolderID:  p.FolderID,
		Status:    string(p.Status),
		Version:   p.Version,
		Tags:      p.Tags,
		IsPublic:  p.IsPublic,
		ViewCount: p.ViewCount,
		LikeCount: p.LikeCount,
		UpdatedAt: p.UpdatedAt,
		UpdatedBy: p.UpdatedBy,
	}
}
