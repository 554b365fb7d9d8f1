package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trivora/trivora/internal/session"
)

// CurrentUser resolves the session cookie, if any, and stores the
// identity in the request context. Invalid or expired cookies are
// treated as anonymous.
func CurrentUser(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(session.CookieName)
		if err == nil {
			if id, err := sessions.Parse(cookie); err == nil {
				c.Set("user_id", id.UserID)
				c.Set("username", id.Username)
			}
		}
		c.Next()
	}
}

// RequireAuth sends anonymous requests to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user_id"); !exists {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
