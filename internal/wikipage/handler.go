package wikipage

import (
	"context"
	"net/http"

	"wikiarea-backend/internal/domain"
	"wikiarea-backend/internal/errors"
	"wikiarea-backend/internal/middleware"
	"wikiarea-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for wiki pages
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// FormCreatePage represents the create-page form data
type FormCreatePage struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Content      string   `json:"content" binding:"required"`
	ContentType  string   `json:"contentType"`
	FolderID     string   `json:"folderId"`
	IsPublic     bool     `json:"isPublic"`
	Tags         []string `json:"tags"`
	AllowedRoles []string `json:"allowedRoles"`
}

// FormUpdatePage represents the update-page form data
type FormUpdatePage struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Content      string   `json:"content" binding:"required"`
	FolderID     string   `json:"folderId"`
	IsPublic     bool     `json:"isPublic"`
	Tags         []string `json:"tags"`
	AllowedRoles []string `json:"allowedRoles"`
}

type FormReview struct {
	Notes string `json:"notes"`
}

type FormMovePage struct {
	FolderID string `json:"folderId"`
}

func (h *Handler) Create(c *gin.Context) {
	var form FormCreatePage
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	created, err := h.service.CreatePage(c.Request.Context(), middleware.CurrentUser(c), CreatePageInput{
		Title:        form.Title,
		Content:      form.Content,
		ContentType:  form.ContentType,
		FolderID:     form.FolderID,
		IsPublic:     form.IsPublic,
		Tags:         form.Tags,
		AllowedRoles: form.AllowedRoles,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetByID(c *gin.Context) {
	found, err := h.service.GetPageByID(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	found, err := h.service.GetPageBySlug(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *Handler) Update(c *gin.Context) {
	var form FormUpdatePage
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	updated, err := h.service.UpdatePage(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), UpdatePageInput{
		Title:        form.Title,
		Content:      form.Content,
		FolderID:     form.FolderID,
		IsPublic:     form.IsPublic,
		Tags:         form.Tags,
		AllowedRoles: form.AllowedRoles,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.DeletePage(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Publish(c *gin.Context) {
	h.stateChange(c, h.service.PublishPage)
}

func (h *Handler) SubmitForReview(c *gin.Context) {
	h.stateChange(c, h.service.SubmitForReview)
}

func (h *Handler) Archive(c *gin.Context) {
	h.stateChange(c, h.service.ArchivePage)
}

func (h *Handler) Like(c *gin.Context) {
	h.stateChange(c, h.service.LikePage)
}

func (h *Handler) Unlike(c *gin.Context) {
	h.stateChange(c, h.service.UnlikePage)
}

func (h *Handler) Approve(c *gin.Context) {
	var form FormReview
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	updated, err := h.service.ApprovePage(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), form.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Reject(c *gin.Context) {
	var form FormReview
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	updated, err := h.service.RejectPage(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), form.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Move(c *gin.Context) {
	var form FormMovePage
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	updated, err := h.service.MovePage(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), form.FolderID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Search(c *gin.Context) {
	results, err := h.service.SearchPages(c.Request.Context(), middleware.CurrentUser(c), c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) Recent(c *gin.Context) {
	count := utils.GetCountParam(c, 10)
	results, err := h.service.GetRecentPages(c.Request.Context(), middleware.CurrentUser(c), count)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) ByFolder(c *gin.Context) {
	results, err := h.service.GetPagesByFolder(c.Request.Context(), middleware.CurrentUser(c), c.Query("folderId"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) ByTag(c *gin.Context) {
	results, err := h.service.GetPagesByTag(c.Request.Context(), middleware.CurrentUser(c), c.Param("tag"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) ByStatus(c *gin.Context) {
	results, err := h.service.GetPagesByStatus(c.Request.Context(), middleware.CurrentUser(c), c.Param("status"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) ByAuthor(c *gin.Context) {
	results, err := h.service.GetPagesByAuthor(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) MostViewed(c *gin.Context) {
	count := utils.GetCountParam(c, 10)
	results, err := h.service.GetMostViewedPages(c.Request.Context(), middleware.CurrentUser(c), count)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) ForReview(c *gin.Context) {
	results, err := h.service.GetPagesForReview(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// stateChange handles the id-only POST verbs that share a response shape.
func (h *Handler) stateChange(c *gin.Context, op func(ctx context.Context, actor *domain.User, id string) (*WikiPageDTO, error)) {
	updated, err := op(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
