package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/farahcakes/bakery-engine/internal/domain"
)

type CakeRepository struct {
	db *gorm.DB
}

func NewCakeRepository(db *gorm.DB) *CakeRepository {
	return &CakeRepository{db: db}
}

func (r *CakeRepository) ListBySite(ctx context.Context, siteID string) ([]domain.Cake, error) {
	var cakes []domain.Cake
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Order("created_at desc").Find(&cakes).Error; err != nil {
		return nil, err
	}
	return cakes, nil
}

func (r *CakeRepository) ListSeeds(ctx context.Context) ([]domain.Cake, error) {
	var cakes []domain.Cake
	if err := r.db.WithContext(ctx).Where("site_id = '' OR site_id IS NULL").Order("created_at").Find(&cakes).Error; err != nil {
		return nil, err
	}
	return cakes, nil
}

func (r *CakeRepository) ReplaceSeeds(ctx context.Context, cakes []domain.Cake) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("site_id = '' OR site_id IS NULL").Delete(&domain.Cake{}).Error; err != nil {
			return err
		}
		if len(cakes) == 0 {
			return nil
		}
		return tx.Create(&cakes).Error
	})
}

func (r *CakeRepository) Upsert(ctx context.Context, cake *domain.Cake) error {
	if cake.ID == "" {
		cake.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(cake).Error
}

func (r *CakeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Cake{}, "id = ?", id).Error
}
