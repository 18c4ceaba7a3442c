package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/auth"
	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authentication required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Authentication required.")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid_token", "Invalid or expired token.")
			return
		}

		if !access.Role(claims.Role).Valid() {
			abort(c, http.StatusUnauthorized, "invalid_token_payload", "Invalid or expired token.")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles. It must
// run after AuthMiddleware.
func RequireRole(roles ...access.Role) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if !allowed[role] {
			abort(c, http.StatusForbidden, "not_authorized", "Not authorized.")
			return
		}
		c.Next()
	}
}

// Actor returns the authenticated caller set by AuthMiddleware.
func Actor(c *gin.Context) access.Actor {
	return access.Actor{
		ID:   c.MustGet(ContextUserID).(uuid.UUID),
		Role: access.Role(c.GetString(ContextUserRole)),
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, httperr.HTTPError{
		Code:    code,
		Message: message,
	})
}
