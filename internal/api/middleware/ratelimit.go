package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-nft-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-nft-ledger/internal/logger"
	"github.com/feral-file/ff-nft-ledger/internal/ratelimit"
)

// RateLimit throttles requests per authenticated caller, or per client IP when there is none.
// It must run after Auth to see the caller.
func RateLimit(l *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := Caller(c)
		if key == "" {
			key = c.ClientIP()
		}

		if !l.Allow(key) {
			logger.WarnCtx(c.Request.Context(), "Rate limit exceeded",
				zap.String("key", key),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierrors.NewRateLimitedError("Too many requests"))
			return
		}

		c.Next()
	}
}
