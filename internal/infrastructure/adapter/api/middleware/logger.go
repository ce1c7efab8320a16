package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
)

// RequestIDHeader carries the request id in and out
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// RequestID propagates the caller's request id or assigns a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Logger middleware logs incoming requests and their responses
func Logger(logger coreport.Logger, timeProvider coreport.TimeProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := timeProvider.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		statusCode := c.Writer.Status()
		fields := map[string]any{
			"method":      method,
			"path":        path,
			"route":       c.FullPath(),
			"status":      statusCode,
			"latency_ms":  timeProvider.Since(start).Std().Milliseconds(),
			"ip":          c.ClientIP(),
			"request_id":  c.GetString(RequestIDKey),
			"status_text": statusText(statusCode),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.Errors()
		}

		if statusCode >= 500 {
			logger.Warn("Request processed", fields)
			return
		}
		logger.Info("Request processed", fields)
	}
}

// statusText returns the text for the HTTP status code
func statusText(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "Informational"
	case code >= 200 && code < 300:
		return "Success"
	case code >= 300 && code < 400:
		return "Redirect"
	case code >= 400 && code < 500:
		return "Client Error"
	default:
		return "Server Error"
	}
}
