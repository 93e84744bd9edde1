package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homecall/app"
	"homecall/config"
	"homecall/handlers"
	"homecall/middleware"
	"homecall/routes"
	"homecall/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Restore stored sessions and serve the dashboards",
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
		logger := utils.GetLogger()

		a, err := app.New(config.AppConfig)
		if err != nil {
			logger.Sugar().Fatalf("serve: failed to initialize: %v", err)
		}
		defer a.Close()

		if err := a.Start(); err != nil {
			logger.Sugar().Fatalf("serve: failed to restore sessions: %v", err)
		}

		router := NewRouter(a)

		srv := &http.Server{
			Addr:    ":" + config.AppConfig.DashboardPort,
			Handler: router,
		}

		go func() {
			logger.Info("Dashboard listening", zap.String("port", config.AppConfig.DashboardPort))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Sugar().Fatalf("serve: %v", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("Forced shutdown", zap.Error(err))
		}
	},
}

// NewRouter assembles the gin engine serving both dashboards.
func NewRouter(a *app.App) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	routes.RegisterOwnerRoutes(router, handlers.NewOwnerHandler(a.Owner))
	routes.RegisterProviderRoutes(router, handlers.NewProviderHandler(a.Provider))
	return router
}
