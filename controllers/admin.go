package controllers

import (
	"net/http"

	"news-reader/models"

	"github.com/gin-gonic/gin"
)

// POST /api/v1/admin/sources
func (h *Handler) CreateSource(c *gin.Context) {
	var in models.SourceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, ok := h.session(c)
	if !ok {
		return
	}
	src, err := h.Admin.SubmitSource(c.Request.Context(), st, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, src)
}

// POST /api/v1/admin/topics
func (h *Handler) CreateTopic(c *gin.Context) {
	var in models.TopicInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, ok := h.session(c)
	if !ok {
		return
	}
	topic, err := h.Admin.SubmitTopic(c.Request.Context(), st, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, topic)
}

// POST /api/v1/admin/news
func (h *Handler) CreateNews(c *gin.Context) {
	var in models.NewsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, ok := h.session(c)
	if !ok {
		return
	}
	n, err := h.Admin.SubmitNews(c.Request.Context(), st, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}
