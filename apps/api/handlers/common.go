package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/cyphera/cyphera-autotax/constants"
	"github.com/cyphera/cyphera-autotax/interfaces"
	"github.com/cyphera/cyphera-autotax/logger"
	"github.com/cyphera/cyphera-autotax/middleware"
	"github.com/cyphera/cyphera-autotax/services"
	"github.com/cyphera/cyphera-autotax/types/api/responses"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommonServices holds common dependencies used across handlers
type CommonServices struct {
	Engine  interfaces.TaxEngine
	Catalog interfaces.RulesCatalog
	logger  *zap.Logger
}

// CommonServicesConfig contains all dependencies needed to create CommonServices
type CommonServicesConfig struct {
	Engine  interfaces.TaxEngine
	Catalog interfaces.RulesCatalog
	Logger  *zap.Logger
}

// NewCommonServices creates a new instance of CommonServices with interface dependencies
func NewCommonServices(config CommonServicesConfig) *CommonServices {
	if config.Logger == nil {
		config.Logger = logger.Component("api")
	}

	return &CommonServices{
		Engine:  config.Engine,
		Catalog: config.Catalog,
		logger:  config.Logger,
	}
}

// ErrorResponse is the body of every failed request
type ErrorResponse = responses.ErrorResponse

// sendError logs the failure with the request's correlation ID and sends a
// JSON error response.
func (s *CommonServices) sendError(c *gin.Context, statusCode int, message string, err error) {
	log := s.logger.With(
		zap.String("correlation_id", middleware.GetCorrelationID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", statusCode),
	)
	if statusCode >= http.StatusInternalServerError {
		log.Error(message, zap.Error(err))
	} else {
		log.Warn(message, zap.Error(err))
	}
	if err != nil {
		_ = c.Error(err)
	}

	c.JSON(statusCode, ErrorResponse{Error: message})
}

// sendSuccess is a helper function that sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// handleServiceError maps catalog and engine errors to HTTP status codes.
func (s *CommonServices) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrJurisdictionNotFound):
		s.sendError(c, http.StatusNotFound, constants.JurisdictionNotFound, err)
	case errors.Is(err, services.ErrInvalidRulesConfig), errors.Is(err, services.ErrUnknownScheme):
		s.sendError(c, http.StatusUnprocessableEntity, constants.InvalidRulesConfig+": "+err.Error(), err)
	case errors.Is(err, services.ErrUnknownDealType):
		s.sendError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.sendError(c, http.StatusServiceUnavailable, constants.CalculationFailed, err)
	default:
		s.sendError(c, http.StatusInternalServerError, constants.CalculationFailed, err)
	}
}
