package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/farahcakes/bakery-engine/internal/domain"
	"github.com/farahcakes/bakery-engine/internal/repository/localstore"
	"github.com/farahcakes/bakery-engine/internal/repository/remote"
	"github.com/farahcakes/bakery-engine/pkg/logger"
)

type ReconcilerTestSuite struct {
	suite.Suite
	mockRepo     *MockRepository
	mockSite     *MockSiteRepository
	mockCake     *MockCakeRepository
	mockCoupon   *MockCouponRepository
	mockCategory *MockCategoryRepository
	local        *memStore
	reconciler   *Reconciler
}

func (s *ReconcilerTestSuite) SetupTest() {
	s.mockRepo = new(MockRepository)
	s.mockSite = new(MockSiteRepository)
	s.mockCake = new(MockCakeRepository)
	s.mockCoupon = new(MockCouponRepository)
	s.mockCategory = new(MockCategoryRepository)

	s.mockRepo.On("Site").Return(s.mockSite)
	s.mockRepo.On("Cake").Return(s.mockCake)
	s.mockRepo.On("Coupon").Return(s.mockCoupon)
	s.mockRepo.On("Category").Return(s.mockCategory)

	s.local = newMemStore()
	testLogger := logger.NewLogger("test")
	remoteStore := remote.NewStore(s.mockRepo, testLogger, time.Second)
	s.reconciler = NewReconciler(remoteStore, s.local, testLogger)
}

func TestReconciler(t *testing.T) {
	suite.Run(t, new(ReconcilerTestSuite))
}

// cacheOnlyReconciler builds a reconciler with no backend at all.
func cacheOnlyReconciler(local *memStore) *Reconciler {
	testLogger := logger.NewLogger("test")
	return NewReconciler(remote.NewStore(nil, testLogger, time.Second), local, testLogger)
}

func (s *ReconcilerTestSuite) TestSites_RemotePopulatedOverwritesCache() {
	// Arrange
	ctx := context.Background()
	stale := []domain.Site{{ID: "stale", Slug: "stale"}}
	blob, _ := json.Marshal(stale)
	s.local.Put(localstore.SitesKey, blob)

	fresh := []domain.Site{{ID: "site1", Slug: "farah-cakes"}}
	s.mockSite.On("List", mock.Anything).Return(fresh, nil)

	// Act
	sites := s.reconciler.Sites(ctx)

	// Assert
	s.Len(sites, 1)
	s.Equal("site1", sites[0].ID)

	var cached []domain.Site
	cachedBlob, ok := s.local.Get(localstore.SitesKey)
	s.True(ok)
	s.NoError(json.Unmarshal(cachedBlob, &cached))
	s.Equal("site1", cached[0].ID)
}

func (s *ReconcilerTestSuite) TestSites_RemoteUnavailableKeepsCache() {
	// Arrange
	ctx := context.Background()
	cached := []domain.Site{{ID: "site1", Slug: "farah-cakes"}}
	blob, _ := json.Marshal(cached)
	s.local.Put(localstore.SitesKey, blob)

	s.mockSite.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	// Act
	sites := s.reconciler.Sites(ctx)

	// Assert
	s.Len(sites, 1)
	s.Equal("site1", sites[0].ID)

	// The healthy cache entry survives the outage.
	stillCached, ok := s.local.Get(localstore.SitesKey)
	s.True(ok)
	s.JSONEq(string(blob), string(stillCached))
}

func (s *ReconcilerTestSuite) TestSites_RemoteEmptyDoesNotClobberCache() {
	// Arrange
	ctx := context.Background()
	cached := []domain.Site{{ID: "site1", Slug: "farah-cakes"}}
	blob, _ := json.Marshal(cached)
	s.local.Put(localstore.SitesKey, blob)

	s.mockSite.On("List", mock.Anything).Return([]domain.Site{}, nil)

	// Act
	sites := s.reconciler.Sites(ctx)

	// Assert: empty is ambiguous, the cache wins.
	s.Len(sites, 1)
	s.Equal("site1", sites[0].ID)
}

func (s *ReconcilerTestSuite) TestSites_NoRemoteNoCacheIsEmpty() {
	local := newMemStore()
	rec := cacheOnlyReconciler(local)

	sites := rec.Sites(context.Background())

	s.Empty(sites)
}

func (s *ReconcilerTestSuite) TestSites_CorruptCacheTreatedAsAbsent() {
	local := newMemStore()
	local.Put(localstore.SitesKey, []byte("{not json"))
	rec := cacheOnlyReconciler(local)

	sites := rec.Sites(context.Background())

	s.Empty(sites)
}

func (s *ReconcilerTestSuite) TestCatalog_FallsBackToSeededClone() {
	// Arrange: no backend, no cache for the tenant.
	local := newMemStore()
	rec := cacheOnlyReconciler(local)

	// Act
	cakes := rec.Catalog(context.Background(), "site1")

	// Assert: built-in seeds, cloned for the tenant.
	s.Len(cakes, len(domain.SeedCakes))
	for i, cake := range cakes {
		s.Equal("site1", cake.SiteID)
		s.NotEqual(domain.SeedCakes[i].ID, cake.ID)
		s.Equal(domain.SeedCakes[i].Name, cake.Name)
	}

	// The clone was persisted so the tenant keeps stable cake IDs.
	again := rec.Catalog(context.Background(), "site1")
	s.Equal(cakes[0].ID, again[0].ID)
}

func (s *ReconcilerTestSuite) TestCoupons_DefaultIsEmptyNotSeeded() {
	local := newMemStore()
	rec := cacheOnlyReconciler(local)

	coupons := rec.Coupons(context.Background(), "site1")

	s.Empty(coupons)
}

func (s *ReconcilerTestSuite) TestCategories_RemotePopulatedWins() {
	ctx := context.Background()
	remoteCategories := []domain.Category{
		{SiteID: "site1", Name: "Cupcakes", Position: 0},
		{SiteID: "site1", Name: "Tarts", Position: 1},
	}
	s.mockCategory.On("ListBySite", mock.Anything, "site1").Return(remoteCategories, nil)

	names := s.reconciler.Categories(ctx, "site1")

	s.Equal([]string{"Cupcakes", "Tarts"}, names)
}

func (s *ReconcilerTestSuite) TestCategories_FallBackToBuiltins() {
	local := newMemStore()
	rec := cacheOnlyReconciler(local)

	names := rec.Categories(context.Background(), "site1")

	s.Equal(domain.SeedCategories, names)
}

func (s *ReconcilerTestSuite) TestLoadTenant_JoinsAllThreeCollections() {
	local := newMemStore()
	rec := cacheOnlyReconciler(local)
	rec.StoreCatalog("site1", []domain.Cake{{ID: "c1", SiteID: "site1"}})
	rec.StoreCoupons("site1", []domain.Coupon{{Code: "FARAH10", SiteID: "site1", DiscountPercent: 10}})
	rec.StoreCategories("site1", []string{"Birthday"})

	data := rec.LoadTenant(context.Background(), "site1")

	s.Len(data.Cakes, 1)
	s.Len(data.Coupons, 1)
	s.Equal([]string{"Birthday"}, data.Categories)
}

func (s *ReconcilerTestSuite) TestDropTenant_RemovesTenantKeys() {
	local := newMemStore()
	rec := cacheOnlyReconciler(local)
	rec.StoreCatalog("site1", []domain.Cake{{ID: "c1"}})
	rec.StoreCoupons("site1", []domain.Coupon{{Code: "X"}})
	rec.StoreCategories("site1", []string{"Birthday"})

	rec.DropTenant("site1")

	_, ok := local.Get(localstore.CakesKey("site1"))
	s.False(ok)
	_, ok = local.Get(localstore.CouponsKey("site1"))
	s.False(ok)
	_, ok = local.Get(localstore.CategoriesKey("site1"))
	s.False(ok)
}

func (s *ReconcilerTestSuite) TestCloneSeedCatalog_LeavesOriginalsUntouched() {
	seeds := []domain.Cake{
		{ID: "seed-1", Name: "Seed One"},
		{ID: "seed-2", Name: "Seed Two"},
	}

	clones := CloneSeedCatalog(seeds, "site1")

	s.Len(clones, 2)
	s.Equal("seed-1", seeds[0].ID)
	s.Empty(seeds[0].SiteID)
	s.NotEqual(seeds[0].ID, clones[0].ID)
	s.NotEqual(clones[0].ID, clones[1].ID)
	s.Equal("site1", clones[0].SiteID)
	s.Equal("Seed One", clones[0].Name)
}
