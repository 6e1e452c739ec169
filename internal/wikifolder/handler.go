package wikifolder

import (
	"net/http"

	"wikiarea-backend/internal/errors"
	"wikiarea-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for wiki folders
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// FormCreateFolder represents the create-folder form data
type FormCreateFolder struct {
	Name           string   `json:"name" binding:"required,max=100"`
	Description    string   `json:"description" binding:"max=500"`
	Path           string   `json:"path" binding:"required,max=500"`
	ParentFolderID string   `json:"parentFolderId"`
	IsPublic       bool     `json:"isPublic"`
	Tags           []string `json:"tags"`
	AllowedRoles   []string `json:"allowedRoles"`
}

// FormUpdateFolder represents the update-folder form data
type FormUpdateFolder struct {
	Name         string   `json:"name" binding:"required,max=100"`
	Description  string   `json:"description" binding:"max=500"`
	IsPublic     bool     `json:"isPublic"`
	SortOrder    int      `json:"sortOrder"`
	Tags         []string `json:"tags"`
	AllowedRoles []string `json:"allowedRoles"`
}

type FormUpdatePath struct {
	Path string `json:"path" binding:"required,max=500"`
}

type FormMoveFolder struct {
	ParentFolderID string `json:"parentFolderId"`
}

func (h *Handler) Create(c *gin.Context) {
	var form FormCreateFolder
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	created, err := h.service.CreateFolder(c.Request.Context(), middleware.CurrentUser(c), CreateFolderInput{
		Name:           form.Name,
		Description:    form.Description,
		Path:           form.Path,
		ParentFolderID: form.ParentFolderID,
		IsPublic:       form.IsPublic,
		Tags:           form.Tags,
		AllowedRoles:   form.AllowedRoles,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetByID(c *gin.Context) {
	found, err := h.service.GetFolderByID(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, found)
}

// GetByPath resolves a folder from the path query parameter.
func (h *Handler) GetByPath(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.Error(errors.BadRequest("Query parameter 'path' is required", nil))
		return
	}

	found, err := h.service.GetFolderByPath(c.Request.Context(), middleware.CurrentUser(c), path)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *Handler) Update(c *gin.Context) {
	var form FormUpdateFolder
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	updated, err := h.service.UpdateFolder(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), UpdateFolderInput{
		Name:         form.Name,
		Description:  form.Description,
		IsPublic:     form.IsPublic,
		SortOrder:    form.SortOrder,
		Tags:         form.Tags,
		AllowedRoles: form.AllowedRoles,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) UpdatePath(c *gin.Context) {
	var form FormUpdatePath
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	updated, err := h.service.UpdateFolderPath(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), form.Path)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Move(c *gin.Context) {
	var form FormMoveFolder
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	updated, err := h.service.MoveFolder(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), form.ParentFolderID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.DeleteFolder(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Roots(c *gin.Context) {
	results, err := h.service.GetRootFolders(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) Children(c *gin.Context) {
	results, err := h.service.GetChildFolders(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) Descendants(c *gin.Context) {
	results, err := h.service.GetDescendants(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) Ancestors(c *gin.Context) {
	results, err := h.service.GetAncestors(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}
