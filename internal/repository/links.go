package repository

import (
	"errors"
	"fmt"

	"github.com/ArtemKriachko/voidlink/internal/errs"
	"github.com/ArtemKriachko/voidlink/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LinkRepository is the durable link store. Short-key uniqueness and click
// serialization are enforced here, at the database, not by callers.
type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// Insert persists a new link. A short-key collision surfaces as
// errs.ErrDuplicateKey; concurrent inserts of the same candidate key are
// arbitrated by the unique index, so exactly one of them succeeds.
func (r *LinkRepository) Insert(link *models.Link) error {
	if err := r.db.Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create link: %w", err)
	}
	return nil
}

func (r *LinkRepository) FindByKey(shortKey string) (*models.Link, error) {
	var link models.Link
	if err := r.db.Where("short_key = ?", shortKey).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch link: %w", err)
	}
	return &link, nil
}

// IncrementClicks bumps the counter in a single UPDATE so concurrent
// redirects to the same key never lose an update, and returns the new
// count. A vanished row reports errs.ErrNotFound.
func (r *LinkRepository) IncrementClicks(shortKey string) (int64, error) {
	var link models.Link
	res := r.db.Model(&link).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "clicks"}}}).
		Where("short_key = ?", shortKey).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to increment clicks: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, errs.ErrNotFound
	}
	return link.Clicks, nil
}

// ListByOwner returns the owner's links oldest first (creation order).
func (r *LinkRepository) ListByOwner(ownerID uint) ([]models.Link, error) {
	var links []models.Link
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at asc, id asc").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch links: %w", err)
	}
	return links, nil
}

// FindByKeyAndOwner returns errs.ErrNotFound for a missing key and for a
// key owned by someone else; the caller cannot tell the two apart.
func (r *LinkRepository) FindByKeyAndOwner(shortKey string, ownerID uint) (*models.Link, error) {
	var link models.Link
	err := r.db.Where("short_key = ? AND owner_id = ?", shortKey, ownerID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch link: %w", err)
	}
	return &link, nil
}

// DeleteByKeyAndOwner removes the row physically and reports whether
// anything was deleted. Zero rows (missing key or wrong owner) is a normal
// outcome, not an error.
func (r *LinkRepository) DeleteByKeyAndOwner(shortKey string, ownerID uint) (bool, error) {
	res := r.db.Where("short_key = ? AND owner_id = ?", shortKey, ownerID).Delete(&models.Link{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete link: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
