package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ibizabroker/520-project/internal/models"
	"github.com/ibizabroker/520-project/internal/services"
	"github.com/ibizabroker/520-project/internal/utils"
)

const userContextKey = "current_user"

// RequireAuth guards a route group with bearer authentication. The
// token is fully resolved to a user record here, so handlers get the
// caller's identity and role without another lookup.
func RequireAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Header("WWW-Authenticate", "Bearer")
			utils.RespondError(c, utils.Unauthorized("missing bearer token"))
			c.Abort()
			return
		}

		user, err := auth.Resolve(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			utils.RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity RequireAuth resolved for this
// request.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}
