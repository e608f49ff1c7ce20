package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/ArtemKriachko/voidlink/internal/errs"
	"github.com/ArtemKriachko/voidlink/internal/models"
	"github.com/ArtemKriachko/voidlink/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newCachedTestService(t *testing.T, db *gorm.DB) (*ShortenerService, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	audit := NewAuditService(db, logger)
	safety := NewSafetyService("", false, logger)
	links := repository.NewLinkRepository(db)
	return NewShortenerService(links, rdb, safety, audit, logger, "http://localhost:8080"), mr
}

func TestResolveCache(t *testing.T) {
	db := setupTestDB()
	service, mr := newCachedTestService(t, db)
	owner := newTestOwner(db, "tester")
	ctx := context.Background()

	link, err := service.Shorten(ctx, ShortenInput{Owner: owner, TargetURL: "https://cached.example"})
	assert.NoError(t, err)

	t.Run("First resolve fills the cache", func(t *testing.T) {
		resolved, err := service.Resolve(ctx, link.ShortKey)
		assert.NoError(t, err)
		assert.Equal(t, "https://cached.example", resolved.TargetURL)
		assert.True(t, mr.Exists("url:" + link.ShortKey))
	})

	t.Run("Hit is served from cache, click still lands", func(t *testing.T) {
		// Change the row behind the cache's back; a cached hit keeps
		// answering the old target until the entry expires.
		assert.NoError(t, db.Model(&models.Link{}).
			Where("short_key = ?", link.ShortKey).
			Update("target_url", "https://rewritten.example").Error)

		resolved, err := service.Resolve(ctx, link.ShortKey)
		assert.NoError(t, err)
		assert.Equal(t, "https://cached.example", resolved.TargetURL)
		assert.EqualValues(t, 2, resolved.Clicks)
	})

	t.Run("Entry expires after the TTL", func(t *testing.T) {
		mr.FastForward(cacheTTL + 1)
		assert.False(t, mr.Exists("url:" + link.ShortKey))

		resolved, err := service.Resolve(ctx, link.ShortKey)
		assert.NoError(t, err)
		assert.Equal(t, "https://rewritten.example", resolved.TargetURL)
	})
}

func TestDeleteEvictsCache(t *testing.T) {
	db := setupTestDB()
	service, mr := newCachedTestService(t, db)
	owner := newTestOwner(db, "tester")
	ctx := context.Background()

	link, err := service.Shorten(ctx, ShortenInput{Owner: owner, TargetURL: "https://doomed.example"})
	assert.NoError(t, err)

	_, err = service.Resolve(ctx, link.ShortKey)
	assert.NoError(t, err)
	assert.True(t, mr.Exists("url:" + link.ShortKey))

	assert.NoError(t, service.DeleteOwned(ctx, link.ShortKey, owner, "127.0.0.1"))

	assert.False(t, mr.Exists("url:" + link.ShortKey))
	_, err = service.Resolve(ctx, link.ShortKey)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestStaleCacheHitForDeletedRow(t *testing.T) {
	db := setupTestDB()
	service, mr := newCachedTestService(t, db)
	owner := newTestOwner(db, "tester")
	ctx := context.Background()

	link, err := service.Shorten(ctx, ShortenInput{Owner: owner, TargetURL: "https://stale.example"})
	assert.NoError(t, err)

	_, err = service.Resolve(ctx, link.ShortKey)
	assert.NoError(t, err)
	assert.True(t, mr.Exists("url:" + link.ShortKey))

	// Remove the row directly, leaving the cache entry in place. The next
	// hit finds no row to count and must not redirect to a dead key.
	assert.NoError(t, db.Where("short_key = ?", link.ShortKey).Delete(&models.Link{}).Error)

	_, err = service.Resolve(ctx, link.ShortKey)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.False(t, mr.Exists("url:" + link.ShortKey))
}
