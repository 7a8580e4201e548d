package routes

import (
	"time"

	"news-reader/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig allows the given origins, or every origin when none are listed.
// Credentials (the session cookie) are only allowed for listed origins.
func CORSConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Session-ID"}
	config.ExposeHeaders = []string{"X-Session-ID"}
	config.MaxAge = 12 * time.Hour
	return config
}

func SetupRoutes(router *gin.Engine, h *controllers.Handler, origins []string) {
	router.Use(cors.New(CORSConfig(origins)))

	router.GET("/health", h.HealthCheck)

	api := router.Group("/api/v1", h.SessionMiddleware())
	{
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
		auth.PUT("/me/interests", h.UpdateInterests)

		api.GET("/preferences", h.GetPreferences)
		api.PUT("/preferences", h.UpdatePreferences)

		pages := api.Group("/pages")
		pages.GET("/home", h.HomePage)
		pages.GET("/topics/:slug", h.TopicPage)
		pages.GET("/for-you", h.ForYouPage)
		pages.GET("/saved", h.SavedPage)
		pages.GET("/news/:id", h.DetailPage)

		api.GET("/topics", h.ListTopics)
		api.GET("/sources", h.ListSources)
		api.POST("/bookmarks/:id/toggle", h.ToggleBookmark)

		admin := api.Group("/admin")
		admin.POST("/sources", h.CreateSource)
		admin.POST("/topics", h.CreateTopic)
		admin.POST("/news", h.CreateNews)

		api.POST("/chat", h.Chat)
		api.POST("/tts", h.Speak)
		api.DELETE("/tts/playback/:id", h.StopPlayback)
	}
}
