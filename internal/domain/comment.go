package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
)

var ErrCommentContentRequired = errors.New("comment content is required")

// Comment belongs to a wiki page, optionally threaded one level deep via
// ParentCommentID.
type Comment struct {
	Base `bson:",inline"`

	WikiPageID      string     `bson:"wikiPageId" json:"wikiPageId"`
	AuthorID        string     `bson:"authorId" json:"authorId"`
	Content         string     `bson:"content" json:"content"`
	ParentCommentID string     `bson:"parentCommentId,omitempty" json:"parentCommentId,omitempty"`
	IsResolved      bool       `bson:"isResolved" json:"isResolved"`
	ResolvedBy      string     `bson:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`
	ResolvedAt      *time.Time `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	Mentions        []string   `bson:"mentions" json:"mentions"`
	LikeCount       int        `bson:"likeCount" json:"likeCount"`
}

func NewComment(wikiPageID, authorID, content, parentCommentID string) (*Comment, error) {
	if strings.TrimSpace(wikiPageID) == "" {
		return nil, errors.New("wiki page id is required")
	}
	if strings.TrimSpace(authorID) == "" {
		return nil, errors.New("author id is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrCommentContentRequired
	}

	c := &Comment{
		Base:            newBase(authorID),
		WikiPageID:      wikiPageID,
		AuthorID:        authorID,
		Content:         content,
		ParentCommentID: parentCommentID,
	}
	c.extractMentions()
	c.record(CommentCreated{CommentID: c.ID, PageID: c.WikiPageID, AuthorID: c.AuthorID, Mentions: c.Mentions})
	return c, nil
}

func (c *Comment) UpdateContent(newContent, updatedBy string) error {
	if strings.TrimSpace(newContent) == "" {
		return ErrCommentContentRequired
	}
	c.Content = newContent
	c.touch(updatedBy)
	c.extractMentions()
	c.record(CommentUpdated{CommentID: c.ID, PageID: c.WikiPageID, UpdatedBy: updatedBy})
	return nil
}

func (c *Comment) Resolve(resolvedBy string) {
	now := time.Now().UTC()
	c.IsResolved = true
	c.ResolvedBy = resolvedBy
	c.ResolvedAt = &now
	c.touch("")
	c.record(CommentResolved{CommentID: c.ID, PageID: c.WikiPageID, ResolvedBy: resolvedBy})
}

func (c *Comment) Unresolve() {
	c.IsResolved = false
	c.ResolvedBy = ""
	c.ResolvedAt = nil
	c.touch("")
}

func (c *Comment) IncrementLikeCount() {
	c.LikeCount++
	c.touch("")
}

func (c *Comment) DecrementLikeCount() {
	if c.LikeCount > 0 {
		c.LikeCount--
		c.touch("")
	}
}

// extractMentions rebuilds the mention set from scratch: a mention is any
// whitespace-delimited token starting with '@', with trailing punctuation
// trimmed. Deduplicated, case preserved, not validated against real users.
func (c *Comment) extractMentions() {
	c.Mentions = []string{}
	for _, word := range strings.Fields(c.Content) {
		if !strings.HasPrefix(word, "@") || len(word) <= 1 {
			continue
		}
		mention := strings.TrimRight(word[1:], ",.!?;:")
		if strings.TrimSpace(mention) == "" {
			continue
		}
		if !slices.Contains(c.Mentions, mention) {
			c.Mentions = append(c.Mentions, mention)
		}
	}
}
