package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vishwajithsandaru/govhack-2025-factshield/app"
	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
)

const userContextKey = "authenticated_user"

// requireAuth rejects requests without a valid bearer token and stores
// the resolved user in the request context for downstream handlers.
func requireAuth(auth *app.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: errorMessage(err)})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// currentUser returns the user stored by requireAuth, if any.
func currentUser(c *gin.Context) (*models.FactCheckerUser, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.FactCheckerUser)
	return user, ok
}
