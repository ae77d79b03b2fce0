package repository

import (
	"context"

	"github.com/farahcakes/bakery-engine/internal/domain"
)

type SiteRepository interface {
	List(ctx context.Context) ([]domain.Site, error)
	GetByID(ctx context.Context, id string) (*domain.Site, error)
	Upsert(ctx context.Context, site *domain.Site) error
	Delete(ctx context.Context, id string) error
}

type CakeRepository interface {
	ListBySite(ctx context.Context, siteID string) ([]domain.Cake, error)
	// ListSeeds returns the global template cakes (empty site_id).
	ListSeeds(ctx context.Context) ([]domain.Cake, error)
	// ReplaceSeeds swaps the whole global template catalog so seed removals
	// converge too.
	ReplaceSeeds(ctx context.Context, cakes []domain.Cake) error
	Upsert(ctx context.Context, cake *domain.Cake) error
	Delete(ctx context.Context, id string) error
}

type CouponRepository interface {
	ListBySite(ctx context.Context, siteID string) ([]domain.Coupon, error)
	Upsert(ctx context.Context, coupon *domain.Coupon) error
	// Delete removes a coupon by its composite (code, siteID) key.
	Delete(ctx context.Context, code, siteID string) error
}

type CategoryRepository interface {
	ListBySite(ctx context.Context, siteID string) ([]domain.Category, error)
	// Replace swaps a tenant's whole ordered category list in one transaction.
	Replace(ctx context.Context, siteID string, categories []domain.Category) error
}

type Repository interface {
	Site() SiteRepository
	Cake() CakeRepository
	Coupon() CouponRepository
	Category() CategoryRepository
}

// LocalStore is the process-local key-value surface backing the cache side of
// reconciliation. Values are JSON blobs; a missing key is not an error.
type LocalStore interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte) error
	Delete(key string) error
}
