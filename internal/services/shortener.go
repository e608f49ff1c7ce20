package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ArtemKriachko/voidlink/internal/errs"
	"github.com/ArtemKriachko/voidlink/internal/models"
	"github.com/ArtemKriachko/voidlink/internal/repository"
	"github.com/ArtemKriachko/voidlink/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const (
	shortKeyLength = 5
	// Collisions are expected at ~N/62^5 probability and recovered by
	// retrying with a fresh key; past this budget the key space is
	// considered exhausted for practical purposes.
	maxKeyAttempts = 5

	cacheTTL = 10 * time.Minute
)

type ShortenInput struct {
	Owner     *models.User
	TargetURL string
	ClientIP  string // For Audit Log
}

// ShortenerService orchestrates the link lifecycle: validate, mint, persist,
// resolve, count, delete. It holds no cross-request state; the store and the
// optional redis cache are the only shared resources.
type ShortenerService struct {
	links         *repository.LinkRepository
	rdb           *redis.Client
	safety        *SafetyService
	auditService  *AuditService
	logger        *slog.Logger
	baseURL       string
	codeGenerator func(int) string
}

func NewShortenerService(
	links *repository.LinkRepository,
	rdb *redis.Client,
	safety *SafetyService,
	auditService *AuditService,
	logger *slog.Logger,
	baseURL string,
) *ShortenerService {
	return &ShortenerService{
		links:         links,
		rdb:           rdb,
		safety:        safety,
		auditService:  auditService,
		logger:        logger,
		baseURL:       baseURL,
		codeGenerator: utils.GenerateShortKey,
	}
}

func cacheKey(shortKey string) string {
	return "url:" + shortKey
}

// Shorten validates the target, screens it against the reputation
// collaborator, then mints a key and inserts. The unique index arbitrates
// collisions; a duplicate-key insert is retried with a fresh key up to
// maxKeyAttempts times and never surfaces to the caller.
func (s *ShortenerService) Shorten(ctx context.Context, in ShortenInput) (*models.Link, error) {
	if in.Owner == nil {
		// No key-space consumption on anonymous requests
		return nil, errs.ErrUnauthorized
	}

	target, err := ValidateTargetURL(in.TargetURL)
	if err != nil {
		return nil, err
	}

	if err := s.safety.Screen(ctx, target); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		key := s.codeGenerator(shortKeyLength)

		link := &models.Link{
			ShortKey:  key,
			TargetURL: target,
			OwnerID:   in.Owner.ID,
		}
		if qr, qrErr := EncodeQR(s.baseURL + "/" + key); qrErr == nil {
			link.QRCode = qr
		} else {
			s.logger.Warn("QR encoding failed", "short_key", key, "error", qrErr)
		}

		err := s.links.Insert(link)
		if err == nil {
			s.auditService.LogAction(&in.Owner.ID, "CREATE_LINK", key, map[string]interface{}{
				"target_url": target,
			}, in.ClientIP)
			return link, nil
		}
		if !errors.Is(err, errs.ErrDuplicateKey) {
			return nil, err
		}
		s.logger.Debug("short key collision, retrying", "short_key", key, "attempt", attempt+1)
	}

	return nil, errs.ErrCapacityExhausted
}

// Resolve looks up a short key for redirecting and counts the click.
// The increment is synchronous and best-effort: a transient failure is
// logged and the redirect proceeds, but a vanished row (deleted link,
// possibly behind a stale cache entry) converts the hit into NotFound.
func (s *ShortenerService) Resolve(ctx context.Context, shortKey string) (*models.Link, error) {
	var link *models.Link

	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, cacheKey(shortKey)).Result(); err == nil {
			var cached models.Link
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				link = &cached
			}
		}
	}

	if link == nil {
		found, err := s.links.FindByKey(shortKey)
		if err != nil {
			return nil, err
		}
		link = found
		if s.rdb != nil {
			if data, err := json.Marshal(link); err == nil {
				s.rdb.Set(ctx, cacheKey(shortKey), data, cacheTTL)
			}
		}
	}

	newCount, err := s.links.IncrementClicks(shortKey)
	switch {
	case err == nil:
		link.Clicks = newCount
	case errors.Is(err, errs.ErrNotFound):
		if s.rdb != nil {
			s.rdb.Del(ctx, cacheKey(shortKey))
		}
		return nil, errs.ErrNotFound
	default:
		s.logger.Warn("click increment failed, redirect proceeds", "short_key", shortKey, "error", err)
	}

	return link, nil
}

// ListOwned returns the caller's links, oldest first.
func (s *ShortenerService) ListOwned(owner *models.User) ([]models.Link, error) {
	if owner == nil {
		return nil, errs.ErrUnauthorized
	}
	return s.links.ListByOwner(owner.ID)
}

// GetOwned returns one of the caller's links. A key owned by someone else
// reads as NotFound.
func (s *ShortenerService) GetOwned(shortKey string, owner *models.User) (*models.Link, error) {
	if owner == nil {
		return nil, errs.ErrUnauthorized
	}
	return s.links.FindByKeyAndOwner(shortKey, owner.ID)
}

// DeleteOwned removes the caller's link physically and evicts the cache
// entry so a stale hit cannot keep redirecting a dead key.
func (s *ShortenerService) DeleteOwned(ctx context.Context, shortKey string, owner *models.User, clientIP string) error {
	if owner == nil {
		return errs.ErrUnauthorized
	}

	deleted, err := s.links.DeleteByKeyAndOwner(shortKey, owner.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.ErrNotFound
	}

	if s.rdb != nil {
		s.rdb.Del(ctx, cacheKey(shortKey))
	}

	s.auditService.LogAction(&owner.ID, "DELETE_LINK", shortKey, nil, clientIP)
	return nil
}
