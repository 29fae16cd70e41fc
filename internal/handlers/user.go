package handlers

import (
	"errors"
	"net/http"

	"crowdcount/internal/service"

	"github.com/gin-gonic/gin"
)

const errGetUserFailed = "Failed to get user"

// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "user"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/user [get]
// @Security     SessionCookie
func (h *Handler) getCurrentUser(c *gin.Context) {
	userID := c.GetInt(ctxUserID)

	u, err := h.services.Accounts.GetByID(c.Request.Context(), userID)
	if err != nil {
		// Users are never deleted; a dangling session id is a defensive case.
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.internalError(c, errGetUserFailed, "get_current_user_failed", err, "userId", userID)
		return
	}

	// PasswordHash is json:"-"; the full model marshals id, username,
	// email and created_at only.
	c.JSON(http.StatusOK, gin.H{"user": u})
}
