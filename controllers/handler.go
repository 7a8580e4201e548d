package controllers

import (
	"errors"
	"net/http"

	"news-reader/apiclient"
	"news-reader/services"
	"news-reader/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionKey    = "session_id"
	sessionHeader = "X-Session-ID"
)

// Handler holds the dependencies of every HTTP endpoint.
type Handler struct {
	Store    storage.Store
	Sessions *services.Sessions
	Pages    *services.PageLoader
	TTS      *services.TTSRelay
	Admin    *services.AdminService
	Logger   *zap.Logger

	// SessionCookie names the cookie carrying the session id.
	SessionCookie string
	// SecureCookie sets the Secure flag on the session cookie.
	SecureCookie bool
}

// SessionMiddleware resolves the caller's session id from the session cookie
// or the X-Session-ID header, issuing a new one when neither is present.
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			id, _ = c.Cookie(h.SessionCookie)
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.SessionCookie, id, 0, "/", "", h.SecureCookie, true)
		c.Header(sessionHeader, id)
		c.Set(sessionKey, id)
		c.Next()
	}
}

func (h *Handler) session(c *gin.Context) (*services.SessionState, bool) {
	st, err := h.Sessions.Get(c.Request.Context(), c.GetString(sessionKey))
	if err != nil {
		h.Logger.Error("load session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return nil, false
	}
	return st, true
}

// fail maps service and upstream errors to a status code and a JSON error.
func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotLoggedIn):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrAlreadyPlaying):
		status = http.StatusConflict
	case apiclient.IsUnauthorized(err):
		status = http.StatusUnauthorized
		msg = "session expired, please log in again"
	case apiclient.StatusCode(err) != 0:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": msg})
}
