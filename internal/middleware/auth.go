package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// sessionUserKey is the session field holding the logged-in user's ID.
const sessionUserKey = "userID"

// RequireLogin aborts with 401 unless the request carries a session with a
// logged-in user. The user ID is stashed in the gin context for handlers.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		v := session.Get(sessionUserKey)
		userID, ok := v.(uint)
		if !ok || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "User not logged in!",
			})
			return
		}
		c.Set(sessionUserKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID. Only meaningful on
// routes behind RequireLogin.
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(sessionUserKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// SetSessionUser records a successful login in the session.
func SetSessionUser(c *gin.Context, userID uint) error {
	session := sessions.Default(c)
	session.Set(sessionUserKey, userID)
	return session.Save()
}

// ClearSession logs the user out.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(sessionUserKey)
	return session.Save()
}
