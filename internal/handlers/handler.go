package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ArtemKriachko/voidlink/internal/auth"
	"github.com/ArtemKriachko/voidlink/internal/config"
	"github.com/ArtemKriachko/voidlink/internal/errs"
	"github.com/ArtemKriachko/voidlink/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	cfg              config.Config
	logger           *slog.Logger
	db               *gorm.DB
	tokens           *auth.TokenIssuer
	shortenerService *services.ShortenerService
	auditService     *services.AuditService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	tokens *auth.TokenIssuer,
	shortenerService *services.ShortenerService,
	auditService *services.AuditService,
) *Handler {
	return &Handler{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		tokens:           tokens,
		shortenerService: shortenerService,
		auditService:     auditService,
	}
}

// abortWithError collapses the service error taxonomy to a stable status
// code. Anything outside the taxonomy is logged with context and returned
// as a generic 500 so internal detail never reaches the client.
func (h *Handler) abortWithError(c *gin.Context, err error) {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, errs.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		h.logger.Error("upstream collaborator failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream service unavailable"})
	case errors.Is(err, errs.ErrCapacityExhausted):
		h.logger.Error("short key retry budget exhausted", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not allocate a short key"})
	default:
		h.logger.Error("unexpected error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
