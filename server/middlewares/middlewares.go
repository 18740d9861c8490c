package middlewares

import (
	"strings"

	"github.com/ArjunKaliyath/socials/auth"
	"github.com/ArjunKaliyath/socials/server/apperr"
	"github.com/gin-gonic/gin"
)

// userIdKey is the gin context key the authenticated user id is stored under.
const userIdKey = "userId"

const bearerPrefix = "Bearer "

// JWT is the auth gate for all protected routes. It extracts the bearer token
// from the Authorization header, verifies it against the given manager and
// stores the resolved user id on the request context. A missing header and a
// failed verification (bad signature, malformed payload, elapsed expiry) are
// both rejected as 401: the client's credential is unusable either way.
func JWT(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperr.Abort(c, apperr.Unauthenticated("Not authenticated."))
			return
		}

		tokenString := strings.TrimPrefix(header, bearerPrefix)
		claims, err := tokens.Verify(tokenString)
		if err != nil {
			apperr.Abort(c, apperr.Unauthenticated("Not authenticated."))
			return
		}

		c.Set(userIdKey, claims.UserId)
		c.Next()
	}
}

// UserId returns the authenticated user id attached by JWT, or the empty
// string on an unauthenticated request.
func UserId(c *gin.Context) string {
	return c.GetString(userIdKey)
}
