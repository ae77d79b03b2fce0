// Package remote wraps the backend repository behind a fault-isolating
// surface: reads come back with a tri-state availability status instead of an
// error, writes are best-effort no-ops on failure, and every call is bounded
// by a deadline so a hung backend can never stall a tenant load.
package remote

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/farahcakes/bakery-engine/internal/domain"
	"github.com/farahcakes/bakery-engine/internal/repository"
	"github.com/farahcakes/bakery-engine/pkg/logger"
)

// Status distinguishes a legitimately empty table from an unreachable
// backend. Callers fall back to cache on both, but only Populated results may
// overwrite a healthy cache entry.
type Status int

const (
	StatusUnavailable Status = iota
	StatusEmpty
	StatusPopulated
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusPopulated:
		return "populated"
	default:
		return "unavailable"
	}
}

type Store struct {
	repo    repository.Repository
	logger  *logger.Logger
	timeout time.Duration
}

// NewStore wraps repo. A nil repo is legal and reads as permanently
// unavailable: the engine then runs cache-only.
func NewStore(repo repository.Repository, logger *logger.Logger, timeout time.Duration) *Store {
	return &Store{repo: repo, logger: logger, timeout: timeout}
}

// Available reports whether a backend is configured at all. It says nothing
// about reachability; reads still carry their own status.
func (s *Store) Available() bool {
	return s.repo != nil
}

func (s *Store) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func statusOf[T any](records []T) Status {
	if len(records) == 0 {
		return StatusEmpty
	}
	return StatusPopulated
}

func (s *Store) Sites(ctx context.Context) ([]domain.Site, Status) {
	if s.repo == nil {
		return nil, StatusUnavailable
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	sites, err := s.repo.Site().List(ctx)
	if err != nil {
		s.logger.Warn("remote sites read failed, operating on cache", zap.Error(err))
		return nil, StatusUnavailable
	}
	return sites, statusOf(sites)
}

func (s *Store) CakesBySite(ctx context.Context, siteID string) ([]domain.Cake, Status) {
	if s.repo == nil {
		return nil, StatusUnavailable
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	cakes, err := s.repo.Cake().ListBySite(ctx, siteID)
	if err != nil {
		s.logger.Warn("remote cakes read failed", zap.String("site_id", siteID), zap.Error(err))
		return nil, StatusUnavailable
	}
	return cakes, statusOf(cakes)
}

func (s *Store) SeedCakes(ctx context.Context) ([]domain.Cake, Status) {
	if s.repo == nil {
		return nil, StatusUnavailable
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	cakes, err := s.repo.Cake().ListSeeds(ctx)
	if err != nil {
		s.logger.Warn("remote seed cakes read failed", zap.Error(err))
		return nil, StatusUnavailable
	}
	return cakes, statusOf(cakes)
}

func (s *Store) CouponsBySite(ctx context.Context, siteID string) ([]domain.Coupon, Status) {
	if s.repo == nil {
		return nil, StatusUnavailable
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	coupons, err := s.repo.Coupon().ListBySite(ctx, siteID)
	if err != nil {
		s.logger.Warn("remote coupons read failed", zap.String("site_id", siteID), zap.Error(err))
		return nil, StatusUnavailable
	}
	return coupons, statusOf(coupons)
}

func (s *Store) CategoriesBySite(ctx context.Context, siteID string) ([]domain.Category, Status) {
	if s.repo == nil {
		return nil, StatusUnavailable
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	categories, err := s.repo.Category().ListBySite(ctx, siteID)
	if err != nil {
		s.logger.Warn("remote categories read failed", zap.String("site_id", siteID), zap.Error(err))
		return nil, StatusUnavailable
	}
	return categories, statusOf(categories)
}

// Writes. Each one swallows its error after logging: backend unavailability
// must never reverse an already-applied local mutation.

func (s *Store) SaveSite(ctx context.Context, site domain.Site) {
	if s.repo == nil {
		s.logger.Warn("remote save site skipped, backend not configured", zap.String("site_id", site.ID))
		return
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.repo.Site().Upsert(ctx, &site); err != nil {
		s.logger.Warn("remote save site failed", zap.String("site_id", site.ID), zap.Error(err))
	}
}

func (s *Store) DeleteSite(ctx context.Context, id string) {
	if s.repo == nil {
		return
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.repo.Site().Delete(ctx, id); err != nil {
		s.logger.Warn("remote delete site failed", zap.String("site_id", id), zap.Error(err))
	}
}

func (s *Store) SaveCake(ctx context.Context, cake domain.Cake) {
	if s.repo == nil {
		return
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.repo.Cake().Upsert(ctx, &cake); err != nil {
		s.logger.Warn("remote save cake failed", zap.String("cake_id", cake.ID), zap.Error(err))
	}
}

func (s *Store) DeleteCake(ctx context.Context, id string) {
	if s.repo == nil {
		return
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.repo.Cake().Delete(ctx, id); err != nil {
		s.logger.Warn("remote delete cake failed", zap.String("cake_id", id), zap.Error(err))
	}
}

func (s *Store) SaveCoupon(ctx context.Context, coupon domain.Coupon) {
	if s.repo == nil {
		return
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.repo.Coupon().Upsert(ctx, &coupon); err != nil {
		s.logger.Warn("remote save coupon failed", zap.String("code", coupon.Code), zap.Error(err))
	}
}

func (s *Store) DeleteCoupon(ctx context.Context, code, siteID string) {
	if s.repo == nil {
		return
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.repo.Coupon().Delete(ctx, code, siteID); err != nil {
		s.logger.Warn("remote delete coupon failed", zap.String("code", code), zap.Error(err))
	}
}

func (s *Store) ReplaceSeedCakes(ctx context.Context, cakes []domain.Cake) {
	if s.repo == nil {
		return
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.repo.Cake().ReplaceSeeds(ctx, cakes); err != nil {
		s.logger.Warn("remote replace seed cakes failed", zap.Error(err))
	}
}

func (s *Store) ReplaceCategories(ctx context.Context, siteID string, names []string) {
	if s.repo == nil {
		return
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	categories := domain.CategoriesFromNames(siteID, names)
	if err := s.repo.Category().Replace(ctx, siteID, categories); err != nil {
		s.logger.Warn("remote replace categories failed", zap.String("site_id", siteID), zap.Error(err))
	}
}
