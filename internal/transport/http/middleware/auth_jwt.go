package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"construction-pm/internal/core/auth"
	resp "construction-pm/internal/transport/http/response"
)

const KeyClaims = "claims"

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// AuthJWT requires a valid bearer token and stores its claims on the
// context. Roles are carried but not enforced.
func AuthJWT(j TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, "Missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimSpace(strings.TrimPrefix(ah, "Bearer ")))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}
		c.Set(KeyClaims, claims)
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
