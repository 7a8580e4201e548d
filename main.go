package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"news-reader/apiclient"
	"news-reader/config"
	"news-reader/controllers"
	"news-reader/logging"
	"news-reader/routes"
	"news-reader/services"
	"news-reader/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "newsreader",
	Short:        "Backend-for-frontend of the news reader web app",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Create a context that listens for the interrupt signal
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	content := apiclient.New(cfg.ContentAPI.BaseURL, &http.Client{Timeout: cfg.ContentAPI.Timeout})
	sessions := services.NewSessions(store, services.ClientFactory(content), logger, cfg.SessionIdle)
	go sessions.Run(ctx)

	h := &controllers.Handler{
		Store:         store,
		Sessions:      sessions,
		Pages:         services.NewPageLoader(services.NewCoverPicker(cfg.Covers), logger),
		TTS:           services.NewTTSRelay(cfg.TTS, logger),
		Admin:         services.NewAdminService(logger),
		Logger:        logger,
		SessionCookie: cfg.SessionCookie,
		SecureCookie:  cfg.CookieSecure(),
	}

	router := gin.New()
	router.Use(logging.Middleware(logger))
	router.Use(gin.Recovery())
	routes.SetupRoutes(router, h, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.Addr),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("content_api", cfg.ContentAPI.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	// Restore default behavior on the interrupt signal
	stop()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server exiting")
	return nil
}
