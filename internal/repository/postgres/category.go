package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/farahcakes/bakery-engine/internal/domain"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListBySite(ctx context.Context, siteID string) ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Order("position").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Replace deletes and re-inserts the tenant's list so ordering survives
// arbitrary edits.
func (r *CategoryRepository) Replace(ctx context.Context, siteID string, categories []domain.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("site_id = ?", siteID).Delete(&domain.Category{}).Error; err != nil {
			return err
		}
		if len(categories) == 0 {
			return nil
		}
		return tx.Create(&categories).Error
	})
}
