//go:build !lambda
// +build !lambda

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyphera/cyphera-autotax/apps/api/server"
	"github.com/cyphera/cyphera-autotax/constants"
	"github.com/cyphera/cyphera-autotax/helpers"
	"github.com/cyphera/cyphera-autotax/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           Cyphera Autotax API
// @version         1.0
// @description     Vehicle sales and lease tax quotes

// @host      localhost:8000
// @BasePath  /api/v1

func main() {
	server.InitializeHandlers()
	defer logger.Sync()

	router := gin.New()
	router.Use(gin.Recovery())
	server.InitializeRoutes(router)

	port := helpers.GetEnvWithDefault("API_PORT", constants.DefaultAPIPort)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	server.Shutdown()

	logger.Info("Server exiting")
}
