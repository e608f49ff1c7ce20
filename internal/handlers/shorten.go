package handlers

import (
	"net/http"

	"github.com/ArtemKriachko/voidlink/internal/services"

	"github.com/gin-gonic/gin"
)

type ShortenRequest struct {
	TargetURL string `json:"target_url" binding:"required"`
}

// ShortenURL handles the API request to shorten a URL
func (h *Handler) ShortenURL(c *gin.Context) {
	var req ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.shortenerService.Shorten(c.Request.Context(), services.ShortenInput{
		Owner:     currentUser(c),
		TargetURL: req.TargetURL,
		ClientIP:  c.ClientIP(),
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}
