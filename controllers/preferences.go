package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/preferences
func (h *Handler) GetPreferences(c *gin.Context) {
	st, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, st.Preferences())
}

// Nil fields are left unchanged.
type preferencesRequest struct {
	Theme    *string `json:"theme"`
	Category *string `json:"category"`
	Language *string `json:"language"`
}

// PUT /api/v1/preferences
func (h *Handler) UpdatePreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, ok := h.session(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if req.Theme != nil {
		if err := st.SetTheme(ctx, *req.Theme); err != nil {
			h.fail(c, err)
			return
		}
	}
	if req.Language != nil {
		if err := st.SetLanguage(ctx, *req.Language); err != nil {
			h.fail(c, err)
			return
		}
	}
	if req.Category != nil {
		if err := st.SetCategory(ctx, *req.Category); err != nil {
			h.fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, st.Preferences())
}
