package middleware

import (
	"context"
	"strings"

	"wikiarea-backend/auth"
	"wikiarea-backend/internal/domain"
	"wikiarea-backend/internal/errors"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
)

type UserProvider interface {
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

type Auth struct {
	UserService UserProvider
}

// AuthMiddleware verifies the bearer token, loads the authenticated user
// and stashes it in the request context for handlers and services.
func (m *Auth) AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.Error(errors.Unauthorized("Authorization header is not found", nil))
			ctx.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := auth.VerifyToken(token)
		if err != nil {
			ctx.Error(errors.Unauthorized("Invalid token", err))
			ctx.Abort()
			return
		}

		user, err := m.UserService.GetUserByID(ctx.Request.Context(), claims.Subject)
		if err != nil {
			ctx.Error(errors.Unauthorized("Unknown user", err))
			ctx.Abort()
			return
		}

		if !user.IsActive() {
			ctx.Error(errors.Unauthorized("Account is not active", nil))
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserKey, user)
		ctx.Set(ContextUserIDKey, user.ID)
		ctx.Next()
	}
}

// RequireRole gates a route on a minimum role; role ordinals form a total
// order of privilege so Administrator passes every gate.
func RequireRole(minRole domain.UserRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user := CurrentUser(ctx)
		if user == nil {
			ctx.Error(errors.Unauthorized("Authentication required", nil))
			ctx.Abort()
			return
		}
		if user.Role.Ordinal() < minRole.Ordinal() {
			ctx.Error(errors.Forbidden("Insufficient role for this operation", nil))
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware, or nil.
func CurrentUser(ctx *gin.Context) *domain.User {
	value, exists := ctx.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*domain.User)
	if !ok {
		return nil
	}
	return user
}
