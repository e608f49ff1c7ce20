package handlers

import (
	"net/http"
	"time"

	"github.com/ArtemKriachko/voidlink/internal/services"
	"github.com/ArtemKriachko/voidlink/pkg/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := limiter.GetLimiter(ip)
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

// RequestLogger tags every request with an id and logs its outcome.
func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := utils.GenerateRequestID()
		c.Set("request_id", requestID)
		start := time.Now()

		c.Next()

		h.logger.Info("request",
			"id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"ip", c.ClientIP(),
		)
	}
}
