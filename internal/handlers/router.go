package handlers

import (
	"github.com/ArtemKriachko/voidlink/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.RequestLogger())

	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Auth
	r.POST("/register", h.Register)
	r.POST("/token", h.Login)

	user := r.Group("/user")
	user.Use(h.TokenRequired())
	{
		user.POST("/change-password", h.ChangePassword)
		user.POST("/change-username", h.ChangeUsername)
	}

	// Links: shorten and list accept either credential, detail and delete
	// are bearer-only
	r.POST("/shorten", h.IdentityRequired(), h.ShortenURL)
	r.GET("/my-urls", h.IdentityRequired(), h.ListMyURLs)
	r.GET("/my-urls/:short_key", h.TokenRequired(), h.GetMyURL)
	r.DELETE("/my-urls/:short_key", h.TokenRequired(), h.DeleteMyURL)

	// Catch-all Redirect
	r.GET("/:short_key", h.RedirectToURL)

	return r
}
