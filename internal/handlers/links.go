package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListMyURLs returns the caller's links, oldest first.
func (h *Handler) ListMyURLs(c *gin.Context) {
	links, err := h.shortenerService.ListOwned(currentUser(c))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, links)
}

// GetMyURL returns one owned link with its click count. A key owned by
// someone else answers 404, same as a key that does not exist.
func (h *Handler) GetMyURL(c *gin.Context) {
	shortKey := c.Param("short_key")

	link, err := h.shortenerService.GetOwned(shortKey, currentUser(c))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

// DeleteMyURL removes an owned link. The key becomes available again.
func (h *Handler) DeleteMyURL(c *gin.Context) {
	shortKey := c.Param("short_key")

	if err := h.shortenerService.DeleteOwned(c.Request.Context(), shortKey, currentUser(c), c.ClientIP()); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}
