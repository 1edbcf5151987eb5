package middleware

import (
	"context"

	"github.com/cyphera/cyphera-autotax/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CorrelationIDHeader carries the request's correlation ID in both directions.
const CorrelationIDHeader = "X-Correlation-ID"

// maxCorrelationIDLength bounds caller-supplied IDs before they reach logs.
const maxCorrelationIDLength = 128

type correlationCtxKey struct{}

const correlationGinKey = "correlation_id"

// CorrelationIDMiddleware tags every request with a correlation ID. A usable
// caller-supplied ID is echoed back; anything else is replaced by a UUID.
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if !validCorrelationID(id) {
			id = uuid.NewString()
		}

		c.Set(correlationGinKey, id)
		c.Header(CorrelationIDHeader, id)
		c.Request = c.Request.WithContext(WithCorrelationID(c.Request.Context(), id))
		c.Next()
	}
}

// validCorrelationID accepts non-empty printable ASCII up to the length bound.
func validCorrelationID(id string) bool {
	if id == "" || len(id) > maxCorrelationIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetCorrelationID returns the ID set by CorrelationIDMiddleware, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(correlationGinKey)
}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationCtxKey{}, id)
}

func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationCtxKey{}).(string)
	return id
}

// LogWithCorrelationID returns the "http" logger, tagged with the request's
// correlation ID when ctx carries one.
func LogWithCorrelationID(ctx context.Context) *zap.Logger {
	log := logger.Component("http")
	if id := CorrelationIDFromContext(ctx); id != "" {
		log = log.With(zap.String(correlationGinKey, id))
	}
	return log
}
