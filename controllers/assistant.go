package controllers

import (
	"net/http"

	"news-reader/services"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// POST /api/v1/chat
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, ok := h.session(c)
	if !ok {
		return
	}
	reply, err := services.SendChat(c.Request.Context(), st, req.Message)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply, "history": st.ChatHistory()})
}

type ttsRequest struct {
	NewsID  string `json:"news_id"`
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
}

// POST /api/v1/tts
//
// Either news_id (read the article aloud) or text must be given. Responds
// with the audio bytes.
func (h *Handler) Speak(c *gin.Context) {
	var req ttsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, ok := h.session(c)
	if !ok {
		return
	}

	var (
		audio services.Audio
		err   error
	)
	switch {
	case req.NewsID != "":
		audio, err = h.TTS.NarrateNews(c.Request.Context(), st, req.NewsID, req.VoiceID)
	case req.Text != "":
		audio, err = h.TTS.Synthesize(c.Request.Context(), req.Text, req.VoiceID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "news_id or text required"})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, audio.ContentType, audio.Data)
}

// DELETE /api/v1/tts/playback/:id
//
// Called by the client when an article's audio finished or was stopped.
func (h *Handler) StopPlayback(c *gin.Context) {
	st, ok := h.session(c)
	if !ok {
		return
	}
	st.Playback.End(c.Param("id"))
	c.Status(http.StatusNoContent)
}
