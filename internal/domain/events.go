package domain

// Event marks a notable state change on an aggregate. Events are recorded
// in memory only; the worker pool logs them for audit after commit.
type Event interface {
	EventName() string
}

type PageCreated struct {
	PageID string `json:"pageId"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
}

func (PageCreated) EventName() string { return "wikipage.created" }

type PageContentUpdated struct {
	PageID    string `json:"pageId"`
	Version   int    `json:"version"`
	UpdatedBy string `json:"updatedBy"`
}

func (PageContentUpdated) EventName() string { return "wikipage.content_updated" }

type PagePublished struct {
	PageID      string `json:"pageId"`
	PublishedBy string `json:"publishedBy"`
}

func (PagePublished) EventName() string { return "wikipage.published" }

type PageSubmittedForReview struct {
	PageID      string `json:"pageId"`
	SubmittedBy string `json:"submittedBy"`
}

func (PageSubmittedForReview) EventName() string { return "wikipage.submitted_for_review" }

type PageReviewApproved struct {
	PageID     string `json:"pageId"`
	ReviewerID string `json:"reviewerId"`
	Notes      string `json:"notes"`
}

func (PageReviewApproved) EventName() string { return "wikipage.review_approved" }

type PageReviewRejected struct {
	PageID     string `json:"pageId"`
	ReviewerID string `json:"reviewerId"`
	Notes      string `json:"notes"`
}

func (PageReviewRejected) EventName() string { return "wikipage.review_rejected" }

type PageArchived struct {
	PageID string `json:"pageId"`
}

func (PageArchived) EventName() string { return "wikipage.archived" }

type PageMoved struct {
	PageID      string `json:"pageId"`
	NewFolderID string `json:"newFolderId"`
}

func (PageMoved) EventName() string { return "wikipage.moved" }

type FolderCreated struct {
	FolderID string `json:"folderId"`
	Name     string `json:"name"`
	Path     string `json:"path"`
}

func (FolderCreated) EventName() string { return "wikifolder.created" }

type FolderPathChanged struct {
	FolderID string `json:"folderId"`
	OldPath  string `json:"oldPath"`
	NewPath  string `json:"newPath"`
}

func (FolderPathChanged) EventName() string { return "wikifolder.path_changed" }

type FolderMoved struct {
	FolderID    string `json:"folderId"`
	NewParentID string `json:"newParentId"`
}

func (FolderMoved) EventName() string { return "wikifolder.moved" }

type CommentCreated struct {
	CommentID string   `json:"commentId"`
	PageID    string   `json:"pageId"`
	AuthorID  string   `json:"authorId"`
	Mentions  []string `json:"mentions"`
}

func (CommentCreated) EventName() string { return "comment.created" }

type CommentUpdated struct {
	CommentID string `json:"commentId"`
	PageID    string `json:"pageId"`
	UpdatedBy string `json:"updatedBy"`
}

func (CommentUpdated) EventName() string { return "comment.updated" }

type CommentResolved struct {
	CommentID  string `json:"commentId"`
	PageID     string `json:"pageId"`
	ResolvedBy string `json:"resolvedBy"`
}

func (CommentResolved) EventName() string { return "comment.resolved" }
