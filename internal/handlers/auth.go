package handlers

import (
	"errors"
	"net/http"

	"crowdcount/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgRegistered = "Registration successful"
	msgLoggedIn   = "Login successful"
	msgLoggedOut  = "Logout successful"

	errRegisterFailed = "Registration failed"
	errLoginFailed    = "Login failed"

	errInvalidBodyPref = "invalid body: "
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userSummary is the shape returned by register and login; created_at is
// only exposed by the current-user lookup.
type userSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled, true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// internalError logs the failure and responds 500 with a details field.
func (h *Handler) internalError(c *gin.Context, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": userMsg, "details": err.Error()})
}

// startSession issues a token for the user and hands it to the client as an
// HttpOnly cookie. Returns false if the response was already written.
func (h *Handler) startSession(c *gin.Context, userID int, failMsg, logKey string) bool {
	token, err := h.services.Sessions.Issue(userID)
	if err != nil {
		h.internalError(c, failMsg, logKey, err, "userId", userID)
		return false
	}
	h.setSessionCookie(c, token, int(h.cfg.SessionTTL.Seconds()))
	return true
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "Credentials"
// @Success      201  {object}  map[string]interface{}  "message, user"
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Accounts.Register(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFieldsRequired), errors.Is(err, service.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.internalError(c, errRegisterFailed, "register_failed", err, "username", input.Username)
		}
		return
	}

	if ok := h.startSession(c, u.ID, errRegisterFailed, "register_session_failed"); !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": msgRegistered,
		"user":    userSummary{ID: u.ID, Username: u.Username, Email: u.Email},
	})
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      200  {object}  map[string]interface{}  "message, user"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Accounts.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidCredentials):
			// Same body for wrong password and unknown email.
			if h.log != nil {
				h.log.Infow("login_rejected", "email", input.Email)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			h.internalError(c, errLoginFailed, "login_failed", err, "email", input.Email)
		}
		return
	}

	if ok := h.startSession(c, u.ID, errLoginFailed, "login_session_failed"); !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": msgLoggedIn,
		"user":    userSummary{ID: u.ID, Username: u.Username, Email: u.Email},
	})
}

// @Summary      Log out
// @Description  Revokes the caller's session if one exists. Idempotent.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/logout [post]
func (h *Handler) logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookieName); err == nil && token != "" {
		h.services.Sessions.Invalidate(token)
	}
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": msgLoggedOut})
}
