package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-nft-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-nft-ledger/internal/logger"
	"github.com/feral-file/ff-nft-ledger/internal/metrics"
)

// REQUEST_ID_HEADER carries the request id in and out of the API
const REQUEST_ID_HEADER = "X-Request-ID"

// RequestID tags each request with an id, reusing the caller's when present.
// The id is echoed in the response and attached to every log line of the request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(REQUEST_ID_HEADER)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Header(REQUEST_ID_HEADER, requestID)
		ctx := logger.WithFields(c.Request.Context(), zap.String("requestID", requestID))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Logger returns a gin middleware for structured logging using zap.
// It also records request metrics by route template.
func Logger(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		duration := time.Since(start)
		m.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), duration)

		logger.InfoCtx(c.Request.Context(), "API request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}

// Recovery returns a gin middleware for panic recovery with logging
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorCtx(c.Request.Context(), fmt.Errorf("panic recovered: %v", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierrors.NewInternalError("Internal server error"))
			}
		}()
		c.Next()
	}
}
