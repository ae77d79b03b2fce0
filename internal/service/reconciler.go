package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/farahcakes/bakery-engine/internal/domain"
	"github.com/farahcakes/bakery-engine/internal/repository"
	"github.com/farahcakes/bakery-engine/internal/repository/localstore"
	"github.com/farahcakes/bakery-engine/internal/repository/remote"
	"github.com/farahcakes/bakery-engine/pkg/logger"
)

// Reconciler converges remote and local state per collection. Reads follow the
// precedence chain remote -> local cache -> built-in seed; a populated remote
// result is authoritative and overwrites the cache, while an empty or
// unavailable remote never clobbers a healthy cache entry. Writes go the other
// way: cache first and synchronously, remote best-effort in the background.
type Reconciler struct {
	remote *remote.Store
	local  repository.LocalStore
	logger *logger.Logger

	// Per-key serialization for read-modify-write cycles on cached
	// collections. The underlying store is transactional per write but a
	// whole-collection update must not interleave with another.
	keyMu sync.Mutex
	keys  map[string]*sync.Mutex
}

func NewReconciler(remoteStore *remote.Store, local repository.LocalStore, logger *logger.Logger) *Reconciler {
	return &Reconciler{
		remote: remoteStore,
		local:  local,
		logger: logger,
		keys:   make(map[string]*sync.Mutex),
	}
}

func (r *Reconciler) keyLock(key string) *sync.Mutex {
	r.keyMu.Lock()
	defer r.keyMu.Unlock()
	mu, ok := r.keys[key]
	if !ok {
		mu = &sync.Mutex{}
		r.keys[key] = mu
	}
	return mu
}

// readCache unmarshals the cached blob for key into out. Unparsable JSON is
// treated as a missing key: the cache fails open to defaults.
func (r *Reconciler) readCache(key string, out any) bool {
	blob, ok := r.local.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(blob, out); err != nil {
		r.logger.Warn("corrupt cache entry, treating as absent", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *Reconciler) writeCache(key string, value any) {
	blob, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("failed to marshal cache entry", err, zap.String("key", key))
		return
	}
	if err := r.local.Put(key, blob); err != nil {
		r.logger.Error("failed to write cache entry", err, zap.String("key", key))
	}
}

// Sites resolves the platform-wide tenant list. Default is the empty list: a
// fresh install has no boutiques until the wizard creates one.
func (r *Reconciler) Sites(ctx context.Context) []domain.Site {
	if sites, status := r.remote.Sites(ctx); status == remote.StatusPopulated {
		r.storeLocked(localstore.SitesKey, sites)
		return sites
	}

	var cached []domain.Site
	if r.readCache(localstore.SitesKey, &cached) {
		return cached
	}
	return []domain.Site{}
}

// Catalog resolves a tenant's cake list. When neither remote nor cache has
// anything the tenant gets a fresh clone of the global default catalog.
func (r *Reconciler) Catalog(ctx context.Context, siteID string) []domain.Cake {
	key := localstore.CakesKey(siteID)

	if cakes, status := r.remote.CakesBySite(ctx, siteID); status == remote.StatusPopulated {
		r.storeLocked(key, cakes)
		return cakes
	}

	var cached []domain.Cake
	if r.readCache(key, &cached) {
		return cached
	}

	seeded := CloneSeedCatalog(r.DefaultCatalog(ctx), siteID)
	r.storeLocked(key, seeded)
	return seeded
}

// Coupons resolves a tenant's coupon list. Default is empty; coupons are never
// seeded.
func (r *Reconciler) Coupons(ctx context.Context, siteID string) []domain.Coupon {
	key := localstore.CouponsKey(siteID)

	if coupons, status := r.remote.CouponsBySite(ctx, siteID); status == remote.StatusPopulated {
		r.storeLocked(key, coupons)
		return coupons
	}

	var cached []domain.Coupon
	if r.readCache(key, &cached) {
		return cached
	}
	return []domain.Coupon{}
}

// Categories resolves a tenant's ordered category labels.
func (r *Reconciler) Categories(ctx context.Context, siteID string) []string {
	key := localstore.CategoriesKey(siteID)

	if categories, status := r.remote.CategoriesBySite(ctx, siteID); status == remote.StatusPopulated {
		names := domain.CategoryNames(categories)
		r.storeLocked(key, names)
		return names
	}

	var cached []string
	if r.readCache(key, &cached) {
		return cached
	}
	return r.DefaultCategories(ctx)
}

// DefaultCatalog resolves the global seed catalog through the same precedence
// chain, scoped to the platform-wide key.
func (r *Reconciler) DefaultCatalog(ctx context.Context) []domain.Cake {
	if cakes, status := r.remote.SeedCakes(ctx); status == remote.StatusPopulated {
		r.storeLocked(localstore.DefaultCakesKey, cakes)
		return cakes
	}

	var cached []domain.Cake
	if r.readCache(localstore.DefaultCakesKey, &cached) {
		return cached
	}
	return domain.SeedCakes
}

func (r *Reconciler) DefaultCategories(ctx context.Context) []string {
	var cached []string
	if r.readCache(localstore.DefaultCategoriesKey, &cached) {
		return cached
	}
	return domain.SeedCategories
}

// TenantData bundles everything a storefront needs for one tenant.
type TenantData struct {
	Cakes      []domain.Cake
	Coupons    []domain.Coupon
	Categories []string
}

// LoadTenant fans out the three tenant-scoped reads concurrently and joins
// them. A slow or failed leg degrades independently: each read carries its own
// deadline and its own fallback chain.
func (r *Reconciler) LoadTenant(ctx context.Context, siteID string) *TenantData {
	data := &TenantData{}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		data.Cakes = r.Catalog(ctx, siteID)
	}()
	go func() {
		defer wg.Done()
		data.Coupons = r.Coupons(ctx, siteID)
	}()
	go func() {
		defer wg.Done()
		data.Categories = r.Categories(ctx, siteID)
	}()
	wg.Wait()

	return data
}

// Local-only reads. Mutations build on these so validation (capacity,
// duplicate checks) never costs a remote round-trip.

func (r *Reconciler) CatalogLocal(siteID string) []domain.Cake {
	var cached []domain.Cake
	if r.readCache(localstore.CakesKey(siteID), &cached) {
		return cached
	}
	return CloneSeedCatalog(r.defaultCatalogLocal(), siteID)
}

func (r *Reconciler) CouponsLocal(siteID string) []domain.Coupon {
	var cached []domain.Coupon
	if r.readCache(localstore.CouponsKey(siteID), &cached) {
		return cached
	}
	return []domain.Coupon{}
}

func (r *Reconciler) CategoriesLocal(siteID string) []string {
	var cached []string
	if r.readCache(localstore.CategoriesKey(siteID), &cached) {
		return cached
	}
	var defaults []string
	if r.readCache(localstore.DefaultCategoriesKey, &defaults) {
		return defaults
	}
	return domain.SeedCategories
}

func (r *Reconciler) defaultCatalogLocal() []domain.Cake {
	var cached []domain.Cake
	if r.readCache(localstore.DefaultCakesKey, &cached) {
		return cached
	}
	return domain.SeedCakes
}

// Mutation-side updates. Each runs the caller's read-modify-write closure
// while holding the collection's key lock, so concurrent mutations on the same
// collection cannot interleave between the read and the write and drop an
// acknowledged change. A closure returning an error leaves the cache untouched.

func (r *Reconciler) UpdateCatalog(siteID string, fn func(cakes []domain.Cake) ([]domain.Cake, error)) error {
	key := localstore.CakesKey(siteID)
	mu := r.keyLock(key)
	mu.Lock()
	defer mu.Unlock()

	updated, err := fn(r.CatalogLocal(siteID))
	if err != nil {
		return err
	}
	r.writeCache(key, updated)
	return nil
}

func (r *Reconciler) UpdateCoupons(siteID string, fn func(coupons []domain.Coupon) ([]domain.Coupon, error)) error {
	key := localstore.CouponsKey(siteID)
	mu := r.keyLock(key)
	mu.Lock()
	defer mu.Unlock()

	updated, err := fn(r.CouponsLocal(siteID))
	if err != nil {
		return err
	}
	r.writeCache(key, updated)
	return nil
}

func (r *Reconciler) UpdateCategories(siteID string, fn func(names []string) ([]string, error)) error {
	key := localstore.CategoriesKey(siteID)
	mu := r.keyLock(key)
	mu.Lock()
	defer mu.Unlock()

	updated, err := fn(r.CategoriesLocal(siteID))
	if err != nil {
		return err
	}
	r.writeCache(key, updated)
	return nil
}

// Whole-collection replacements. These still lock the key so a replacement
// cannot land in the middle of an update cycle.

func (r *Reconciler) StoreSites(sites []domain.Site) {
	r.storeLocked(localstore.SitesKey, sites)
}

func (r *Reconciler) StoreCatalog(siteID string, cakes []domain.Cake) {
	r.storeLocked(localstore.CakesKey(siteID), cakes)
}

func (r *Reconciler) StoreCoupons(siteID string, coupons []domain.Coupon) {
	r.storeLocked(localstore.CouponsKey(siteID), coupons)
}

func (r *Reconciler) StoreCategories(siteID string, names []string) {
	r.storeLocked(localstore.CategoriesKey(siteID), names)
}

func (r *Reconciler) storeLocked(key string, value any) {
	mu := r.keyLock(key)
	mu.Lock()
	defer mu.Unlock()
	r.writeCache(key, value)
}

func (r *Reconciler) StoreDefaults(cakes []domain.Cake, categories []string) {
	r.writeCache(localstore.DefaultCakesKey, cakes)
	r.writeCache(localstore.DefaultCategoriesKey, categories)
}

// DropTenant removes a deleted tenant's cache keys so a recreated site with
// the same ID cannot resurrect stale data.
func (r *Reconciler) DropTenant(siteID string) {
	for _, key := range []string{
		localstore.CakesKey(siteID),
		localstore.CouponsKey(siteID),
		localstore.CategoriesKey(siteID),
	} {
		if err := r.local.Delete(key); err != nil {
			r.logger.Warn("failed to drop tenant cache key", zap.String("key", key), zap.Error(err))
		}
	}
}

// CloneSeedCatalog duplicates seed cakes for a tenant: fresh identity, the
// tenant's SiteID stamped on, originals untouched.
func CloneSeedCatalog(seeds []domain.Cake, siteID string) []domain.Cake {
	clones := make([]domain.Cake, len(seeds))
	for i, seed := range seeds {
		clone := seed
		clone.ID = uuid.New().String()
		clone.SiteID = siteID
		clones[i] = clone
	}
	return clones
}
