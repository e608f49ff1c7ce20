package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RedirectToURL resolves a short key and answers 307 so clients preserve
// the request method. The click is counted before the response; a counting
// failure on a live row is logged by the service and never blocks the
// redirect.
func (h *Handler) RedirectToURL(c *gin.Context) {
	shortKey := c.Param("short_key")

	link, err := h.shortenerService.Resolve(c.Request.Context(), shortKey)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, link.TargetURL)
}
