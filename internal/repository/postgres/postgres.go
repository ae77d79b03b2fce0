package postgres

import (
	"gorm.io/gorm"

	"github.com/farahcakes/bakery-engine/internal/domain"
	"github.com/farahcakes/bakery-engine/internal/repository"
)

// AutoMigrate keeps the backend schema in step with the domain models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Site{},
		&domain.Cake{},
		&domain.Coupon{},
		&domain.Category{},
	)
}

type postgresRepository struct {
	db           *gorm.DB
	siteRepo     repository.SiteRepository
	cakeRepo     repository.CakeRepository
	couponRepo   repository.CouponRepository
	categoryRepo repository.CategoryRepository
}

func NewPostgresRepository(db *gorm.DB) repository.Repository {
	return &postgresRepository{
		db:           db,
		siteRepo:     NewSiteRepository(db),
		cakeRepo:     NewCakeRepository(db),
		couponRepo:   NewCouponRepository(db),
		categoryRepo: NewCategoryRepository(db),
	}
}

func (r *postgresRepository) Site() repository.SiteRepository {
	return r.siteRepo
}

func (r *postgresRepository) Cake() repository.CakeRepository {
	return r.cakeRepo
}

func (r *postgresRepository) Coupon() repository.CouponRepository {
	return r.couponRepo
}

func (r *postgresRepository) Category() repository.CategoryRepository {
	return r.categoryRepo
}
