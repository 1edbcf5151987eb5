package server

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cyphera/cyphera-autotax/apps/api/handlers"
	awsclient "github.com/cyphera/cyphera-autotax/client/aws"
	"github.com/cyphera/cyphera-autotax/constants"
	"github.com/cyphera/cyphera-autotax/helpers"
	"github.com/cyphera/cyphera-autotax/interfaces"
	"github.com/cyphera/cyphera-autotax/logger"
	"github.com/cyphera/cyphera-autotax/middleware"
	"github.com/cyphera/cyphera-autotax/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handler Definitions
var (
	healthHandler  *handlers.HealthHandler
	catalogHandler *handlers.CatalogHandler
	quoteHandler   *handlers.QuoteHandler

	rateLimiter *middleware.RateLimiter
)

// InitializeHandlers loads the environment and the rules catalog and builds
// the handlers. Any failure is fatal.
func InitializeHandlers() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = helpers.StageLocal
		log.Printf("Warning: STAGE environment variable not set, defaulting to '%s'", stage)
	}
	if !helpers.IsValidStage(stage) {
		log.Fatalf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s",
			stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal)
	}

	logger.InitLogger(stage)
	logger.Info("Initializing handlers for stage", zap.String("stage", stage))

	catalog, err := LoadCatalogFromEnv(context.Background())
	if err != nil {
		logger.Fatal("Failed to load rules catalog", zap.Error(err))
	}

	RegisterServices(handlers.NewCommonServices(handlers.CommonServicesConfig{
		Engine:  services.NewTaxEngine(),
		Catalog: catalog,
	}))
}

// RegisterServices builds the handlers around common.
func RegisterServices(common *handlers.CommonServices) {
	healthHandler = handlers.NewHealthHandler(common.Catalog)
	catalogHandler = handlers.NewCatalogHandler(common)
	quoteHandler = handlers.NewQuoteHandler(common)
}

// LoadCatalogFromEnv reads the catalog from S3 when RULES_CATALOG_S3_BUCKET is
// set, and from RULES_CATALOG_DIR otherwise.
func LoadCatalogFromEnv(ctx context.Context) (*services.RulesCatalogService, error) {
	loader, err := services.NewCatalogLoader(
		helpers.GetEnvWithDefault("RULES_CATALOG_VERSION_CONSTRAINT", constants.DefaultCatalogVersionConstraint))
	if err != nil {
		return nil, err
	}

	var source interfaces.CatalogSource
	if bucket := os.Getenv("RULES_CATALOG_S3_BUCKET"); bucket != "" {
		key := os.Getenv("RULES_CATALOG_S3_KEY")
		if key == "" {
			return nil, errors.New("RULES_CATALOG_S3_KEY is required when RULES_CATALOG_S3_BUCKET is set")
		}
		s3Source, err := awsclient.NewS3CatalogSource(ctx, bucket, key)
		if err != nil {
			return nil, err
		}
		source = s3Source
	} else {
		source = services.NewDirectorySource(helpers.GetEnvWithDefault("RULES_CATALOG_DIR", constants.DefaultRulesCatalogDir))
	}

	return loader.Load(ctx, source)
}

// InitializeRoutes attaches middleware and routes to router.
func InitializeRoutes(router *gin.Engine) {
	router.Use(configureCORS())
	router.Use(middleware.CorrelationIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware())

	if rateLimiter != nil {
		rateLimiter.Stop()
	}
	rateLimiter = middleware.NewRateLimiter(
		envInt("RATE_LIMIT_RPS", constants.DefaultRateLimitRPS),
		envInt("RATE_LIMIT_BURST", constants.DefaultRateLimitBurst))
	router.Use(rateLimiter.Middleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/jurisdictions", catalogHandler.ListJurisdictions)
		v1.GET("/jurisdictions/:code", catalogHandler.GetJurisdiction)
		v1.POST("/quotes", middleware.BodySizeLimit(constants.MaxQuoteBodyBytes), quoteHandler.CreateQuote)
	}
}

// Shutdown releases background resources started by InitializeRoutes.
func Shutdown() {
	if rateLimiter != nil {
		rateLimiter.Stop()
	}
}

func envInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		logger.Warn("Ignoring invalid integer environment variable",
			zap.String("key", key),
			zap.String("value", raw))
		return defaultValue
	}
	return value
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.CorrelationIDHeader}
	corsConfig.ExposeHeaders = []string{
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"X-RateLimit-Reset",
		"Retry-After",
		middleware.CorrelationIDHeader,
	}

	return cors.New(corsConfig)
}
