package controllers

import (
	"net/http"

	"news-reader/services"

	"github.com/gin-gonic/gin"
)

// Page endpoints always answer 200: a failed load is rendered as the page's
// error string, not as an HTTP error.

// GET /api/v1/pages/home
func (h *Handler) HomePage(c *gin.Context) {
	h.page(c, func(st *services.SessionState) services.Page {
		return h.Pages.Home(c.Request.Context(), st)
	})
}

// GET /api/v1/pages/topics/:slug
func (h *Handler) TopicPage(c *gin.Context) {
	h.page(c, func(st *services.SessionState) services.Page {
		return h.Pages.Topic(c.Request.Context(), st, c.Param("slug"))
	})
}

// GET /api/v1/pages/for-you
func (h *Handler) ForYouPage(c *gin.Context) {
	h.page(c, func(st *services.SessionState) services.Page {
		return h.Pages.ForYou(c.Request.Context(), st)
	})
}

// GET /api/v1/pages/saved
func (h *Handler) SavedPage(c *gin.Context) {
	h.page(c, func(st *services.SessionState) services.Page {
		return h.Pages.Saved(c.Request.Context(), st)
	})
}

// GET /api/v1/pages/news/:id
func (h *Handler) DetailPage(c *gin.Context) {
	h.page(c, func(st *services.SessionState) services.Page {
		return h.Pages.Detail(c.Request.Context(), st, c.Param("id"))
	})
}

func (h *Handler) page(c *gin.Context, load func(*services.SessionState) services.Page) {
	st, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, load(st))
}

// GET /api/v1/topics
func (h *Handler) ListTopics(c *gin.Context) {
	st, ok := h.session(c)
	if !ok {
		return
	}
	topics, err := st.API().ListTopics(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": services.TopicViews(topics, st.Language()), "total": len(topics)})
}

// GET /api/v1/sources
func (h *Handler) ListSources(c *gin.Context) {
	st, ok := h.session(c)
	if !ok {
		return
	}
	sources, err := st.API().ListSources(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sources": sources, "total": len(sources)})
}
