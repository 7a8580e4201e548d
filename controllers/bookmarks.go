package controllers

import (
	"net/http"

	"news-reader/apiclient"
	"news-reader/services"

	"github.com/gin-gonic/gin"
)

// POST /api/v1/bookmarks/:id/toggle
//
// On failure the body still carries the (rolled back) membership so the
// client can redraw the icon.
func (h *Handler) ToggleBookmark(c *gin.Context) {
	st, ok := h.session(c)
	if !ok {
		return
	}
	if !st.LoggedIn() {
		h.fail(c, services.ErrNotLoggedIn)
		return
	}
	id := c.Param("id")
	saved, err := st.Bookmarks.Toggle(c.Request.Context(), st.API(), id)
	if err != nil {
		_ = c.Error(err)
		status, msg := http.StatusBadGateway, "Could not update bookmark. Please try again."
		if apiclient.IsUnauthorized(err) {
			status, msg = http.StatusUnauthorized, "session expired, please log in again"
		}
		c.JSON(status, gin.H{"news_id": id, "bookmarked": saved, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"news_id": id, "bookmarked": saved})
}
