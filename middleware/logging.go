package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestLoggingMiddleware writes one access line per request once the
// handler chain returns.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := make([]zap.Field, 0, 6+len(c.Errors))
		fields = append(fields,
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(began)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("bytes_out", c.Writer.Size()),
		)
		for _, e := range c.Errors {
			fields = append(fields, zap.NamedError("handler_error", e.Err))
		}

		log := LogWithCorrelationID(c.Request.Context())
		if ce := log.Check(accessLevel(status), "Request completed"); ce != nil {
			ce.Write(fields...)
		}
	}
}

func accessLevel(status int) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
