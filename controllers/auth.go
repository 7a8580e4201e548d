package controllers

import (
	"net/http"

	"news-reader/models"

	"github.com/gin-gonic/gin"
)

// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, ok := h.session(c)
	if !ok {
		return
	}
	user, err := h.Sessions.Login(c.Request.Context(), st, creds)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// POST /api/v1/auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	st, ok := h.session(c)
	if !ok {
		return
	}
	if err := h.Sessions.Refresh(c.Request.Context(), st); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": st.User()})
}

// POST /api/v1/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	if err := h.Sessions.Logout(c.Request.Context(), c.GetString(sessionKey)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/v1/auth/me?refresh=true
//
// Answers from the cached profile unless refresh is set.
func (h *Handler) Me(c *gin.Context) {
	st, ok := h.session(c)
	if !ok {
		return
	}
	if c.Query("refresh") == "true" {
		user, err := h.Sessions.Profile(c.Request.Context(), st)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
		return
	}
	user := st.User()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type interestsRequest struct {
	Interests []string `json:"interests" binding:"required"`
}

// PUT /api/v1/auth/me/interests
func (h *Handler) UpdateInterests(c *gin.Context) {
	var req interestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, ok := h.session(c)
	if !ok {
		return
	}
	user, err := h.Sessions.UpdateInterests(c.Request.Context(), st, req.Interests)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
