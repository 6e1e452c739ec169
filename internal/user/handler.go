package user

import (
	"net/http"

	"wikiarea-backend/internal/errors"
	"wikiarea-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for users and authentication
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// FormSignup represents signup form data
type FormSignup struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"required,email,max=100"`
	Password    string `json:"password" binding:"required,min=6,max=100"`
	DisplayName string `json:"displayName" binding:"required,max=100"`
	Department  string `json:"department" binding:"required,max=100"`
}

// FormSignin represents signin form data
type FormSignin struct {
	UsernameOrEmail string `json:"usernameOrEmail" binding:"required,max=100"`
	Password        string `json:"password" binding:"required,max=100"`
}

// FormCreateUser represents the administrator create-user form.
type FormCreateUser struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"required,email,max=100"`
	DisplayName string `json:"displayName" binding:"required,max=100"`
	AdfsID      string `json:"adfsId" binding:"required"`
	Role        string `json:"role" binding:"required"`
	Department  string `json:"department" binding:"required,max=100"`
}

type FormUpdateRole struct {
	Role string `json:"role" binding:"required"`
}

type FormUpdateStatus struct {
	Status string `json:"status" binding:"required"`
}

// Signup handles local account registration
func (h *Handler) Signup(c *gin.Context) {
	var form FormSignup
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	response, err := h.service.Signup(c.Request.Context(), SignupInput{
		Username:    form.Username,
		Email:       form.Email,
		Password:    form.Password,
		DisplayName: form.DisplayName,
		Department:  form.Department,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Signin handles local login
func (h *Handler) Signin(c *gin.Context) {
	var form FormSignin
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	response, err := h.service.Signin(c.Request.Context(), form.UsernameOrEmail, form.Password)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CheckAvailability is unauthenticated; the signup form polls it.
func (h *Handler) CheckAvailability(c *gin.Context) {
	result, err := h.service.CheckAvailability(c.Request.Context(), c.Query("username"), c.Query("email"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProfile returns the authenticated user's own record
func (h *Handler) GetProfile(c *gin.Context) {
	current := middleware.CurrentUser(c)
	if current == nil {
		c.Error(errors.Unauthorized("Authentication required", nil))
		return
	}

	c.JSON(http.StatusOK, toUserDTO(current))
}

func (h *Handler) GetByID(c *gin.Context) {
	found, err := h.service.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, toUserDTO(found))
}

func (h *Handler) Search(c *gin.Context) {
	results, err := h.service.SearchUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// Admin endpoints. Routes are gated on the Administrator role.

func (h *Handler) ListAll(c *gin.Context) {
	results, err := h.service.GetAllUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) ByRole(c *gin.Context) {
	results, err := h.service.GetUsersByRole(c.Request.Context(), c.Param("role"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) Create(c *gin.Context) {
	var form FormCreateUser
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	created, err := h.service.CreateFederatedUser(c.Request.Context(), CreateUserInput{
		Username:    form.Username,
		Email:       form.Email,
		DisplayName: form.DisplayName,
		AdfsID:      form.AdfsID,
		Role:        form.Role,
		Department:  form.Department,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateRole(c *gin.Context) {
	var form FormUpdateRole
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	updated, err := h.service.UpdateUserRole(c.Request.Context(), c.Param("id"), form.Role)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete soft-deletes a user account. The service refuses self-deletion and
// removal of the last administrator.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) RolesPermissions(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.GetRolesPermissions())
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var form FormUpdateStatus
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.BadRequest("Invalid input", err))
		return
	}

	updated, err := h.service.UpdateUserStatus(c.Request.Context(), c.Param("id"), form.Status)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
