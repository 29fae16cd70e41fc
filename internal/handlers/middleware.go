package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName = "session_token"

	errNotAuthenticated = "Not authenticated"

	// gin context key for the authenticated user id
	ctxUserID = "userId"
)

// sessionMiddleware resolves the session cookie to a user id. A missing or
// invalid token makes the request anonymous, which on a protected route
// means 401; nothing stored server-side changes.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNotAuthenticated})
		return
	}

	userID, err := h.services.Sessions.Validate(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNotAuthenticated})
		return
	}

	c.Set(ctxUserID, userID)
	c.Next()
}

// setSessionCookie hands the signed token to the client. HttpOnly keeps it
// away from scripts; SameSite=Lax still sends it on top-level navigation.
func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", false, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}
