package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ArtemKriachko/voidlink/internal/errs"
	"github.com/ArtemKriachko/voidlink/internal/models"

	"github.com/gin-gonic/gin"
)

const headerTelegramID = "X-Telegram-ID"

const ctxUserKey = "current_user"

// resolveIdentity implements the dual-authentication precedence: a mapped
// X-Telegram-ID header wins over a bearer token, so the bot integration
// and a web session share one API surface. A header naming no known user
// falls through to the token; if neither resolves, the request is
// unauthorized.
func (h *Handler) resolveIdentity(c *gin.Context) (*models.User, error) {
	if raw := c.GetHeader(headerTelegramID); raw != "" {
		if tgID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			var user models.User
			if err := h.db.Where("telegram_id = ?", tgID).First(&user).Error; err == nil {
				return &user, nil
			}
		}
	}

	if token := bearerToken(c); token != "" {
		if claims, err := h.tokens.ValidateToken(token); err == nil {
			var user models.User
			if err := h.db.Where("username = ?", claims.Username).First(&user).Error; err == nil {
				return &user, nil
			}
		}
	}

	return nil, errs.ErrUnauthorized
}

// resolveTokenUser accepts only a bearer token; the telegram header does
// not grant access to owner-scoped detail and delete.
func (h *Handler) resolveTokenUser(c *gin.Context) (*models.User, error) {
	token := bearerToken(c)
	if token == "" {
		return nil, errs.ErrUnauthorized
	}
	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		return nil, errs.ErrUnauthorized
	}
	var user models.User
	if err := h.db.Where("username = ?", claims.Username).First(&user).Error; err != nil {
		return nil, errs.ErrUnauthorized
	}
	return &user, nil
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// IdentityRequired guards endpoints that accept either credential.
func (h *Handler) IdentityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.resolveIdentity(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// TokenRequired guards endpoints that accept only a bearer token.
func (h *Handler) TokenRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.resolveTokenUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	val, exists := c.Get(ctxUserKey)
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}
