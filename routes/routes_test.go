package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"news-reader/controllers"
	"news-reader/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &controllers.Handler{Store: storage.NewMemory(), Logger: zap.NewNop(), SessionCookie: "nr_session"}
	SetupRoutes(r, h, []string{"http://app.test"})

	registered := map[string]bool{}
	for _, ri := range r.Routes() {
		registered[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"POST /api/v1/auth/login",
		"GET /api/v1/pages/home",
		"GET /api/v1/pages/topics/:slug",
		"GET /api/v1/pages/news/:id",
		"POST /api/v1/bookmarks/:id/toggle",
		"POST /api/v1/admin/news",
		"POST /api/v1/tts",
	} {
		assert.True(t, registered[want], want)
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/pages/home", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSConfigAllOrigins(t *testing.T) {
	cfg := CORSConfig(nil)
	assert.True(t, cfg.AllowAllOrigins)
	assert.False(t, cfg.AllowCredentials)
	assert.NoError(t, cfg.Validate())
}

func TestCORSConfigListedOrigins(t *testing.T) {
	cfg := CORSConfig([]string{"http://app.test"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"http://app.test"}, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
	assert.NoError(t, cfg.Validate())
}
