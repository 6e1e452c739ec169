package comment

import (
	"net/http"

	"wikiarea-backend/internal/errors"
	"wikiarea-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for comments
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// FormCreateComment represents the create-comment form data
type FormCreateComment struct {
	WikiPageID      string `json:"wikiPageId" binding:"required"`
	Content         string `json:"content" binding:"required,max=2000"`
	ParentCommentID string `json:"parentCommentId"`
}

type FormUpdateComment struct {
	Content string `json:"content" binding:"required,max=2000"`
}

func (h *Handler) Create(c *gin.Context) {
	var form FormCreateComment
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	created, err := h.service.CreateComment(c.Request.Context(), middleware.CurrentUser(c), CreateCommentInput{
		WikiPageID:      form.WikiPageID,
		Content:         form.Content,
		ParentCommentID: form.ParentCommentID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetByID(c *gin.Context) {
	found, err := h.service.GetCommentByID(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *Handler) Update(c *gin.Context) {
	var form FormUpdateComment
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	updated, err := h.service.UpdateComment(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), form.Content)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.DeleteComment(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Resolve(c *gin.Context) {
	updated, err := h.service.ResolveComment(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Unresolve(c *gin.Context) {
	updated, err := h.service.UnresolveComment(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Like(c *gin.Context) {
	updated, err := h.service.LikeComment(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Unlike(c *gin.Context) {
	updated, err := h.service.UnlikeComment(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) ByPage(c *gin.Context) {
	results, err := h.service.GetCommentsByPage(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) Replies(c *gin.Context) {
	results, err := h.service.GetReplies(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) Unresolved(c *gin.Context) {
	results, err := h.service.GetUnresolvedComments(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) ByMention(c *gin.Context) {
	results, err := h.service.GetCommentsByMention(c.Request.Context(), middleware.CurrentUser(c), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) ByAuthor(c *gin.Context) {
	results, err := h.service.GetCommentsByAuthor(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// Count returns the live comment total for a page.
func (h *Handler) Count(c *gin.Context) {
	count, err := h.service.GetCommentCount(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
