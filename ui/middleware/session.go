package middleware

import (
	"net/http"

	"strbrowser/internal"
	"strbrowser/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionCookie names the cookie carrying the browser's session ID
const SessionCookie = "strbrowser_session"

const sessionKey = "strbrowser.session"

// Sessions is middleware that binds each request to its browser session, creating one (and
// issuing the cookie) when the cookie is missing, malformed or expired
func Sessions(manager *session.Manager, logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(SessionCookie)

		sess, created := manager.Resolve(raw)
		if created {
			if raw != "" {
				logger.Debug("[Sessions] Session %q unknown or expired, issued %s", raw, sess.ID)
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sess.ID.String(), 0, "/", "", false, true)
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the session bound by Sessions. It panics when the middleware is not
// installed on the route.
func SessionFrom(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
