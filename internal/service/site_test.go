package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/farahcakes/bakery-engine/internal/api/dto"
	"github.com/farahcakes/bakery-engine/internal/domain"
	"github.com/farahcakes/bakery-engine/internal/repository/remote"
	"github.com/farahcakes/bakery-engine/internal/worker"
	"github.com/farahcakes/bakery-engine/pkg/logger"
)

type SiteServiceTestSuite struct {
	suite.Suite
	local      *memStore
	reconciler *Reconciler
	writer     *worker.RemoteWriter
	service    *SiteService
}

func (s *SiteServiceTestSuite) SetupTest() {
	testLogger := logger.NewLogger("test")
	remoteStore := remote.NewStore(nil, testLogger, time.Second)

	s.local = newMemStore()
	s.reconciler = NewReconciler(remoteStore, s.local, testLogger)
	s.writer = worker.NewRemoteWriter(testLogger, 1, 16, time.Second)
	s.writer.Start()
	s.service = NewSiteService(s.reconciler, remoteStore, s.writer, nil, testLogger)
	s.service.Init(context.Background())
}

func (s *SiteServiceTestSuite) TearDownTest() {
	s.writer.Stop()
}

func TestSiteService(t *testing.T) {
	suite.Run(t, new(SiteServiceTestSuite))
}

func (s *SiteServiceTestSuite) TestCreate_DerivesSlugAndSeedsCatalog() {
	ctx := context.Background()

	site, err := s.service.Create(ctx, dto.CreateSiteRequest{Name: "Farah's Cakes & Bakes!"})

	s.NoError(err)
	s.NotEmpty(site.ID)
	s.Equal("farahs-cakes-bakes", site.Slug)

	// The new boutique starts with an independent clone of the seed catalog.
	cakes := s.reconciler.CatalogLocal(site.ID)
	s.Len(cakes, len(domain.SeedCakes))
	for i, cake := range cakes {
		s.Equal(site.ID, cake.SiteID)
		s.NotEqual(domain.SeedCakes[i].ID, cake.ID)
	}

	// Coupons start empty; categories start from the defaults.
	s.Empty(s.reconciler.CouponsLocal(site.ID))
	s.Equal(domain.SeedCategories, s.reconciler.CategoriesLocal(site.ID))
}

func (s *SiteServiceTestSuite) TestCreate_BlankFieldsGetWizardDefaults() {
	ctx := context.Background()

	site, err := s.service.Create(ctx, dto.CreateSiteRequest{Name: "My Shop"})

	s.NoError(err)
	s.Equal("admin", site.AdminUser)
	s.Equal("password", site.AdminPass)
	s.Equal("#F7C04A", site.ThemeColor)
	s.Equal(100, site.MaxItems)
}

func (s *SiteServiceTestSuite) TestCreate_SlugCollisionGetsNumericSuffix() {
	ctx := context.Background()

	first, err := s.service.Create(ctx, dto.CreateSiteRequest{Name: "Sweet Tooth"})
	s.NoError(err)
	second, err := s.service.Create(ctx, dto.CreateSiteRequest{Name: "Sweet Tooth"})
	s.NoError(err)
	third, err := s.service.Create(ctx, dto.CreateSiteRequest{Name: "Sweet tooth"})
	s.NoError(err)

	s.Equal("sweet-tooth", first.Slug)
	s.Equal("sweet-tooth-2", second.Slug)
	s.Equal("sweet-tooth-3", third.Slug)
}

func (s *SiteServiceTestSuite) TestCreate_DuplicateCustomDomainRejected() {
	ctx := context.Background()

	_, err := s.service.Create(ctx, dto.CreateSiteRequest{Name: "One", CustomDomain: "cakes.example.com"})
	s.NoError(err)

	_, err = s.service.Create(ctx, dto.CreateSiteRequest{Name: "Two", CustomDomain: "cakes.example.com"})
	s.ErrorIs(err, ErrDomainTaken)
}

func (s *SiteServiceTestSuite) TestUpdate_SlugSurvivesRename() {
	ctx := context.Background()
	created, _ := s.service.Create(ctx, dto.CreateSiteRequest{Name: "Sweet Tooth"})

	updated, err := s.service.Update(ctx, created.ID, dto.UpdateSiteRequest{Name: "Completely Different"})

	s.NoError(err)
	s.Equal("Completely Different", updated.Name)
	s.Equal("sweet-tooth", updated.Slug)
}

func (s *SiteServiceTestSuite) TestUpdate_UnknownSite() {
	_, err := s.service.Update(context.Background(), "missing", dto.UpdateSiteRequest{Name: "X"})
	s.ErrorIs(err, ErrSiteNotFound)
}

func (s *SiteServiceTestSuite) TestDelete_DropsTenantCache() {
	ctx := context.Background()
	created, _ := s.service.Create(ctx, dto.CreateSiteRequest{Name: "Sweet Tooth"})
	s.NotEmpty(s.reconciler.CatalogLocal(created.ID))

	err := s.service.Delete(ctx, created.ID)

	s.NoError(err)
	_, lookupErr := s.service.GetByID(created.ID)
	s.ErrorIs(lookupErr, ErrSiteNotFound)
}

func (s *SiteServiceTestSuite) TestAuthenticate_ConfiguredCredentials() {
	ctx := context.Background()
	created, _ := s.service.Create(ctx, dto.CreateSiteRequest{
		Name:      "Sweet Tooth",
		AdminUser: "Farah",
		AdminPass: "s3cret",
	})

	// Usernames compare case-insensitively; passwords exactly.
	site, err := s.service.Authenticate(created.Slug, "farah", "s3cret")
	s.NoError(err)
	s.Equal(created.ID, site.ID)

	_, err = s.service.Authenticate(created.Slug, "farah", "S3CRET")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *SiteServiceTestSuite) TestAuthenticate_AcceptsSiteID() {
	ctx := context.Background()
	created, _ := s.service.Create(ctx, dto.CreateSiteRequest{Name: "Sweet Tooth"})

	site, err := s.service.Authenticate(created.ID, "admin", "password")

	s.NoError(err)
	s.Equal(created.ID, site.ID)
}

func (s *SiteServiceTestSuite) TestAuthenticate_UnknownSite() {
	_, err := s.service.Authenticate("no-such-slug", "admin", "password")
	s.ErrorIs(err, ErrSiteNotFound)
}

func (s *SiteServiceTestSuite) TestUpdateDefaults_AssignsIDsAndClearsSiteID() {
	ctx := context.Background()

	cakes, categories := s.service.UpdateDefaults(ctx, []domain.Cake{
		{Name: "New Seed", SiteID: "should-be-cleared"},
	}, []string{"Birthday", "Vegan"})

	s.Len(cakes, 1)
	s.NotEmpty(cakes[0].ID)
	s.Empty(cakes[0].SiteID)
	s.Equal([]string{"Birthday", "Vegan"}, categories)

	// New boutiques clone the replaced defaults, not the built-ins.
	created, _ := s.service.Create(ctx, dto.CreateSiteRequest{Name: "Fresh"})
	seeded := s.reconciler.CatalogLocal(created.ID)
	s.Len(seeded, 1)
	s.Equal("New Seed", seeded[0].Name)
}

// Concurrent wizard creates must leave the cached site list holding every
// boutique: the snapshot is persisted under the same lock that mutates the
// in-memory list, so two creates cannot write their snapshots in inverted
// order.
func (s *SiteServiceTestSuite) TestCreate_ConcurrentCreatesAllPersisted() {
	ctx := context.Background()

	const creators = 8
	var wg sync.WaitGroup

	wg.Add(creators)
	for i := 0; i < creators; i++ {
		go func(n int) {
			defer wg.Done()
			_, err := s.service.Create(ctx, dto.CreateSiteRequest{Name: fmt.Sprintf("Bakery %d", n)})
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	s.Len(s.service.Snapshot(), creators)
	// The cache must agree with the in-memory list, not a stale snapshot.
	s.Len(s.reconciler.Sites(ctx), creators)
}
