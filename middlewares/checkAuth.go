package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ChurchPortal/services"
	"github.com/gin-gonic/gin"
)

// CheckAuth resolves the login token to a live session and puts the account
// on the context as currentUser, with admin and sessionID alongside.
func CheckAuth(c *gin.Context) {
	tokenString, ok := requestToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Authorization token is missing or malformed"})
		return
	}

	user, claims, err := services.Authenticate(c.Request.Context(), tokenString)
	if err != nil {
		if errors.Is(err, services.ErrAuth) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
			return
		}
		c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "Failed to load session"})
		return
	}

	c.Set("currentUser", user)
	c.Set("admin", user.IsAdmin())
	c.Set("sessionID", claims.SessionID)

	c.Next()
}

// requestToken reads a Bearer token, falling back to the token cookie when
// no Authorization header is sent.
func requestToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := c.Cookie(services.TokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}
