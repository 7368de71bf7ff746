package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"todo-api/internal/constants"
	apierrors "todo-api/internal/errors"
	"todo-api/internal/models"
	"todo-api/internal/token"
)

// RequireAuth verifies the bearer token and injects the caller's identity
// into the request context.
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "No token provided")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apierrors.Unauthorized(c, "No token provided")
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAuthToken(parts[1])
		if err != nil {
			apierrors.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUsername, claims.Username)
		c.Set(constants.ContextKeyAccountType, claims.AccountType)
		c.Next()
	}
}

// RequireNormalAccount refuses destructive operations to demo accounts.
func RequireNormalAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountType, exists := GetAccountType(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if accountType == models.AccountTypeDemo {
			apierrors.Unauthorized(c, "Action forbidden for account type")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// GetAccountType retrieves the current account type from context
func GetAccountType(c *gin.Context) (models.AccountType, bool) {
	accountType, exists := c.Get(constants.ContextKeyAccountType)
	if !exists {
		return 0, false
	}

	t, ok := accountType.(models.AccountType)
	if !ok {
		return 0, false
	}
	return t, true
}
