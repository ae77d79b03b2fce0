package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/farahcakes/bakery-engine/internal/api/dto"
	"github.com/farahcakes/bakery-engine/internal/domain"
	"github.com/farahcakes/bakery-engine/internal/repository/remote"
	"github.com/farahcakes/bakery-engine/internal/worker"
	"github.com/farahcakes/bakery-engine/pkg/logger"
)

// Catalog fallbacks applied to cakes saved with blank fields.
const (
	defaultCakeName        = "Unnamed Cake"
	defaultCakeDescription = "Artisanal creation."
	defaultCakeImageURL    = "https://images.unsplash.com/photo-1578985545062-69928b1d9587?auto=format&fit=crop&q=80&w=800"
	defaultCakeCategory    = "Birthday"
)

// CatalogService handles per-tenant catalog mutations: cakes, coupons, and
// categories. Every write lands locally first; the remote push rides the
// background writer and never blocks or fails the request.
type CatalogService struct {
	rec       *Reconciler
	remote    *remote.Store
	writer    *worker.RemoteWriter
	publisher Publisher
	logger    *logger.Logger
}

func NewCatalogService(rec *Reconciler, remoteStore *remote.Store, writer *worker.RemoteWriter, publisher Publisher, logger *logger.Logger) *CatalogService {
	return &CatalogService{
		rec:       rec,
		remote:    remoteStore,
		writer:    writer,
		publisher: publisher,
		logger:    logger,
	}
}

// SetPublisher wires the event publisher after construction; the WebSocket
// hub needs the service first.
func (c *CatalogService) SetPublisher(publisher Publisher) {
	c.publisher = publisher
}

// Load runs the reconciled fan-out read for one tenant's storefront.
func (c *CatalogService) Load(ctx context.Context, siteID string) *TenantData {
	return c.rec.LoadTenant(ctx, siteID)
}

// SaveCake creates or replaces a cake. The whole read-modify-write cycle runs
// under the catalog's key lock, and the capacity check for new cakes reads the
// local cache only, so a full boutique rejects before any network cost.
func (c *CatalogService) SaveCake(ctx context.Context, site *domain.Site, req dto.SaveCakeRequest) (dto.CakeResponse, error) {
	var saved domain.Cake
	err := c.rec.UpdateCatalog(site.ID, func(cakes []domain.Cake) ([]domain.Cake, error) {
		isNew := true
		if req.ID != "" {
			for i := range cakes {
				if cakes[i].ID == req.ID {
					isNew = false
					break
				}
			}
		}

		if isNew {
			limit := site.MaxItems
			if limit <= 0 {
				limit = defaultMaxItems
			}
			if len(cakes) >= limit {
				return nil, ErrCapacityReached
			}
		}

		cake := req.ToCake()
		cake.SiteID = site.ID
		if cake.Name == "" {
			cake.Name = defaultCakeName
		}
		if cake.Description == "" {
			cake.Description = defaultCakeDescription
		}
		if cake.ImageURL == "" {
			cake.ImageURL = defaultCakeImageURL
		}
		if cake.Category == "" {
			if names := c.rec.CategoriesLocal(site.ID); len(names) > 0 {
				cake.Category = names[0]
			} else {
				cake.Category = defaultCakeCategory
			}
		}

		if isNew {
			cake.ID = uuid.New().String()
			// Newest first, matching storefront display order.
			cakes = append([]domain.Cake{*cake}, cakes...)
		} else {
			for i := range cakes {
				if cakes[i].ID == cake.ID {
					cakes[i] = *cake
					break
				}
			}
		}

		saved = *cake
		return cakes, nil
	})
	if err != nil {
		return dto.CakeResponse{}, err
	}

	pushed := saved
	c.writer.Enqueue("save cake "+pushed.ID, func(ctx context.Context) {
		c.remote.SaveCake(ctx, pushed)
	})
	c.publish(ctx, &dto.StorefrontEvent{Type: dto.EventCakeSaved, SiteID: site.ID})

	return *dto.FromCake(&saved), nil
}

func (c *CatalogService) DeleteCake(ctx context.Context, siteID, cakeID string) error {
	err := c.rec.UpdateCatalog(siteID, func(cakes []domain.Cake) ([]domain.Cake, error) {
		kept := cakes[:0:0]
		found := false
		for _, cake := range cakes {
			if cake.ID == cakeID {
				found = true
				continue
			}
			kept = append(kept, cake)
		}
		if !found {
			return nil, ErrCakeNotFound
		}
		return kept, nil
	})
	if err != nil {
		return err
	}

	c.writer.Enqueue("delete cake "+cakeID, func(ctx context.Context) {
		c.remote.DeleteCake(ctx, cakeID)
	})
	c.publish(ctx, &dto.StorefrontEvent{Type: dto.EventCakeDeleted, SiteID: siteID})

	return nil
}

// SaveCoupon creates or replaces a coupon. Codes are stored uppercase and
// compared case-insensitively; saving an existing code replaces its discount.
func (c *CatalogService) SaveCoupon(ctx context.Context, siteID string, req dto.SaveCouponRequest) (dto.CouponResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return dto.CouponResponse{}, ErrCouponCodeEmpty
	}

	coupon := domain.Coupon{
		Code:            code,
		SiteID:          siteID,
		DiscountPercent: req.DiscountPercent,
	}

	if err := c.rec.UpdateCoupons(siteID, func(coupons []domain.Coupon) ([]domain.Coupon, error) {
		for i := range coupons {
			if coupons[i].Matches(code) {
				coupons[i] = coupon
				return coupons, nil
			}
		}
		return append(coupons, coupon), nil
	}); err != nil {
		return dto.CouponResponse{}, err
	}

	c.writer.Enqueue("save coupon "+code, func(ctx context.Context) {
		c.remote.SaveCoupon(ctx, coupon)
	})
	c.publish(ctx, &dto.StorefrontEvent{Type: dto.EventCouponSaved, SiteID: siteID})

	return *dto.FromCoupon(&coupon), nil
}

func (c *CatalogService) DeleteCoupon(ctx context.Context, siteID, code string) error {
	var deletedCode string
	err := c.rec.UpdateCoupons(siteID, func(coupons []domain.Coupon) ([]domain.Coupon, error) {
		kept := coupons[:0:0]
		found := false
		for _, coupon := range coupons {
			if coupon.Matches(code) {
				deletedCode = coupon.Code
				found = true
				continue
			}
			kept = append(kept, coupon)
		}
		if !found {
			return nil, ErrCouponNotFound
		}
		return kept, nil
	})
	if err != nil {
		return err
	}

	c.writer.Enqueue("delete coupon "+deletedCode, func(ctx context.Context) {
		c.remote.DeleteCoupon(ctx, deletedCode, siteID)
	})
	c.publish(ctx, &dto.StorefrontEvent{Type: dto.EventCouponDeleted, SiteID: siteID})

	return nil
}

// ApplyCoupon validates a checkout code against the tenant's coupon list.
// Lookup is reconciled (remote first) so a freshly issued code works even on
// a storefront served from another node's cache.
func (c *CatalogService) ApplyCoupon(ctx context.Context, siteID, code string) (dto.ApplyCouponResponse, error) {
	for _, coupon := range c.rec.Coupons(ctx, siteID) {
		if coupon.Matches(code) {
			return dto.ApplyCouponResponse{
				Valid:           true,
				Code:            coupon.Code,
				DiscountPercent: coupon.DiscountPercent,
			}, nil
		}
	}
	return dto.ApplyCouponResponse{Valid: false}, ErrCouponNotFound
}

// AddCategory appends a category name; duplicates compare case-insensitively.
func (c *CatalogService) AddCategory(ctx context.Context, siteID, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	var result []string
	err := c.rec.UpdateCategories(siteID, func(names []string) ([]string, error) {
		for _, existing := range names {
			if strings.EqualFold(existing, name) {
				return nil, ErrCategoryExists
			}
		}
		result = append(names, name)
		return result, nil
	})
	if err != nil {
		return nil, err
	}

	c.pushCategories(ctx, siteID, result)
	return result, nil
}

func (c *CatalogService) RemoveCategory(ctx context.Context, siteID, name string) ([]string, error) {
	var result []string
	err := c.rec.UpdateCategories(siteID, func(names []string) ([]string, error) {
		kept := names[:0:0]
		found := false
		for _, existing := range names {
			if strings.EqualFold(existing, name) {
				found = true
				continue
			}
			kept = append(kept, existing)
		}
		if !found {
			return nil, ErrCategoryNotFound
		}
		result = kept
		return kept, nil
	})
	if err != nil {
		return nil, err
	}

	c.pushCategories(ctx, siteID, result)
	return result, nil
}

// ReplaceCategories swaps the tenant's whole category list in one shot.
func (c *CatalogService) ReplaceCategories(ctx context.Context, siteID string, names []string) ([]string, error) {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		duplicate := false
		for _, existing := range cleaned {
			if strings.EqualFold(existing, name) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			cleaned = append(cleaned, name)
		}
	}

	if err := c.rec.UpdateCategories(siteID, func([]string) ([]string, error) {
		return cleaned, nil
	}); err != nil {
		return nil, err
	}

	c.pushCategories(ctx, siteID, cleaned)
	return cleaned, nil
}

func (c *CatalogService) pushCategories(ctx context.Context, siteID string, names []string) {
	pushed := make([]string, len(names))
	copy(pushed, names)
	c.writer.Enqueue("replace categories "+siteID, func(ctx context.Context) {
		c.remote.ReplaceCategories(ctx, siteID, pushed)
	})
	c.publish(ctx, &dto.StorefrontEvent{Type: dto.EventCategoriesReplaced, SiteID: siteID})
}

func (c *CatalogService) publish(ctx context.Context, event *dto.StorefrontEvent) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.logger.Warn("failed to publish storefront event",
			zap.String("type", event.Type),
			zap.String("site_id", event.SiteID),
			zap.Error(err))
	}
}
