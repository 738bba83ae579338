package handlers

import (
	"net/http"
	"time"

	"recipeshare/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	// sessionCookie is the opaque client-held token. The session itself
	// lives server-side.
	sessionCookie = "recipe_session"

	ctxKeyUserID = "userId"
	ctxKeyToken  = "sessionToken"
)

// sessionMiddleware resolves the session cookie to a user id and stores
// both on the context. It never aborts: anonymous requests proceed with
// userId=0 and each handler returns its own 401 message.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, err := c.Cookie(sessionCookie)
	if err != nil {
		// No cookie at all.
		c.Set(ctxKeyUserID, 0)
		c.Set(ctxKeyToken, "")
		c.Next()
		return
	}

	userID, err := h.services.ResolveSession(c.Request.Context(), token)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("session_resolve_failed", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "failed to resolve session",
		})
		return
	}

	c.Set(ctxKeyUserID, userID)
	c.Set(ctxKeyToken, token)
	c.Next()
}

// currentUserID returns the user id resolved by sessionMiddleware, 0 when
// anonymous.
func currentUserID(c *gin.Context) int {
	return c.GetInt(ctxKeyUserID)
}

// sessionToken returns the raw cookie token, "" when absent.
func sessionToken(c *gin.Context) string {
	return c.GetString(ctxKeyToken)
}

// setSessionCookie hands the opaque token to the client.
func setSessionCookie(c *gin.Context, s *models.Session) {
	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	c.SetCookie(sessionCookie, s.Token, maxAge, "/", "", false, true)
}

// clearSessionCookie expires the cookie on the client.
func clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}
