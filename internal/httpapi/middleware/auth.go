package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/httpapi/apierrors"
	"reviewhub/internal/httpapi/auth"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// Authenticator resolves the Authorization header into a live user row.
// The user is loaded per request so role changes and deletions take
// effect immediately, not at token expiry.
type Authenticator struct {
	signer *auth.TokenSigner
	users  repository.UserRepository
}

func NewAuthenticator(signer *auth.TokenSigner, users repository.UserRepository) *Authenticator {
	return &Authenticator{signer: signer, users: users}
}

// RequireAuth rejects requests without a valid bearer token.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := a.userFromHeader(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": apierrors.ErrUnauthorized.Error(),
			})
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAdmin gates a route to admin users. It must run after
// RequireAuth.
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.Role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"detail": apierrors.ErrForbidden.Error(),
			})
			return
		}
		c.Next()
	}
}

func (a *Authenticator) userFromHeader(c *gin.Context) (*models.User, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return nil, false
	}

	claims, err := a.signer.Parse(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return nil, false
	}

	user, err := a.users.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil, false
	}
	return user, true
}

// CurrentUser returns the authenticated user set by RequireAuth, or nil
// on unauthenticated routes.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
