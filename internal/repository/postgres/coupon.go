package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/farahcakes/bakery-engine/internal/domain"
)

type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) ListBySite(ctx context.Context, siteID string) ([]domain.Coupon, error) {
	var coupons []domain.Coupon
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Order("code").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *CouponRepository) Upsert(ctx context.Context, coupon *domain.Coupon) error {
	coupon.Code = strings.ToUpper(coupon.Code)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}, {Name: "site_id"}},
		UpdateAll: true,
	}).Create(coupon).Error
}

func (r *CouponRepository) Delete(ctx context.Context, code, siteID string) error {
	return r.db.WithContext(ctx).
		Where("upper(code) = ? AND site_id = ?", strings.ToUpper(code), siteID).
		Delete(&domain.Coupon{}).Error
}
