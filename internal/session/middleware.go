package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const contextKey = "session"

// Middleware authenticates requests with a Bearer session token and stores
// the resulting Session in the gin context. The token cache is refreshed as
// a side effect so background jobs can act for recently seen users.
func Middleware(manager *Manager, cache *TokenCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		sess, err := manager.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is expired or invalid: " + err.Error()})
			return
		}

		if sess.ProviderToken != "" && cache != nil {
			cache.Put(sess.UserID, sess.ProviderToken)
		}

		c.Set(contextKey, sess)
		c.Next()
	}
}

// FromContext returns the Session stored by Middleware.
func FromContext(c *gin.Context) Session {
	return c.MustGet(contextKey).(Session)
}
