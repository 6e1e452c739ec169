package comment

import (
	"time"

	"wikiarea-backend/internal/domain"
)

type CommentDTO struct {
	ID              string     `json:"id"`
	WikiPageID      string     `json:"wikiPageId"`
	AuthorID        string     `json:"authorId"`
	Content         string     `json:"content"`
	ParentCommentID string     `json:"parentCommentId,omitempty"`
	IsResolved      bool       `json:"isResolved"`
	ResolvedBy      string     `json:"resolvedBy,omitempty"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`
	Mentions        []string   `json:"mentions"`
	LikeCount       int        `json:"likeCount"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func toCommentDTO(c *domain.Comment) CommentDTO {
	return CommentDTO{
		ID:              c.ID,
		WikiPageID:      c.WikiPageID,
		AuthorID:        c.AuthorID,
		Content:         c.Content,
		ParentCommentID: c.ParentCommentID,
		IsResolved:      c.IsResolved,
		ResolvedBy:      c.ResolvedBy,
		ResolvedAt:      c.ResolvedAt,
		Mentions:        c.Mentions,
		LikeCount:       c.LikeCount,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toCommentDTOs(comments []domain.Comment) []CommentDTO {
	results := make([]CommentDTO, 0, len(comments))
	for i := range comments {
		results = append(results, toCommentDTO(&comments[i]))
	}
	return results
}
