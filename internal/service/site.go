package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/farahcakes/bakery-engine/internal/api/dto"
	"github.com/farahcakes/bakery-engine/internal/domain"
	"github.com/farahcakes/bakery-engine/internal/repository/remote"
	"github.com/farahcakes/bakery-engine/internal/tenant"
	"github.com/farahcakes/bakery-engine/internal/worker"
	"github.com/farahcakes/bakery-engine/pkg/logger"
)

// Wizard fallbacks for fields the creation form left blank.
const (
	defaultSiteName   = "Bakery"
	defaultAdminUser  = "admin"
	defaultAdminPass  = "password"
	defaultThemeColor = "#F7C04A"
	defaultMaxItems   = 100
)

// Publisher fans storefront change events out to live clients. A nil
// publisher is legal; events are then dropped.
type Publisher interface {
	Publish(ctx context.Context, event *dto.StorefrontEvent) error
}

// SiteService owns the process-wide site list: an explicit store object with
// a defined init (load-or-seed) rather than ambient shared state. All
// tenant-list reads during routing hit the in-memory snapshot.
type SiteService struct {
	rec       *Reconciler
	remote    *remote.Store
	writer    *worker.RemoteWriter
	publisher Publisher
	logger    *logger.Logger

	mu    sync.RWMutex
	sites []domain.Site
}

func NewSiteService(rec *Reconciler, remoteStore *remote.Store, writer *worker.RemoteWriter, publisher Publisher, logger *logger.Logger) *SiteService {
	return &SiteService{
		rec:       rec,
		remote:    remoteStore,
		writer:    writer,
		publisher: publisher,
		logger:    logger,
	}
}

// SetPublisher wires the event publisher after construction; the WebSocket
// hub needs the service first.
func (s *SiteService) SetPublisher(publisher Publisher) {
	s.publisher = publisher
}

// Init loads the site list through the reconciler and pins it in memory.
func (s *SiteService) Init(ctx context.Context) {
	sites := s.rec.Sites(ctx)
	s.mu.Lock()
	s.sites = sites
	s.mu.Unlock()
	s.logger.Infof("Site list initialized with %d boutique(s)", len(sites))
}

// Snapshot returns a copy of the current in-memory site list. Routing and
// resolver lookups use this; no remote call is involved.
func (s *SiteService) Snapshot() []domain.Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sites := make([]domain.Site, len(s.sites))
	copy(sites, s.sites)
	return sites
}

// Refresh re-runs reconciliation for the site list and returns the result.
func (s *SiteService) Refresh(ctx context.Context) []domain.Site {
	sites := s.rec.Sites(ctx)
	s.mu.Lock()
	s.sites = sites
	s.mu.Unlock()
	return sites
}

func (s *SiteService) List(ctx context.Context) []dto.SiteResponse {
	return dto.FromSites(s.Refresh(ctx))
}

func (s *SiteService) GetByID(id string) (*domain.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if site := tenant.FindByID(s.sites, id); site != nil {
		copied := *site
		return &copied, nil
	}
	return nil, ErrSiteNotFound
}

// Create builds a new boutique: fresh identity, collision-free slug derived
// from the name, seed catalog cloned in, optimistic local persistence, and a
// best-effort background push to the remote store.
func (s *SiteService) Create(ctx context.Context, req dto.CreateSiteRequest) (dto.SiteResponse, error) {
	site := req.ToSite()
	applySiteDefaults(site)

	s.mu.Lock()
	if tenant.DomainTaken(s.sites, site.CustomDomain, "") {
		s.mu.Unlock()
		return dto.SiteResponse{}, ErrDomainTaken
	}
	site.ID = uuid.New().String()
	site.Slug = tenant.UniqueSlug(s.sites, site.Name, "")
	s.sites = append(s.sites, *site)
	updated := make([]domain.Site, len(s.sites))
	copy(updated, s.sites)
	// Persist while still holding the list lock so two creates cannot write
	// their cache snapshots in inverted order.
	s.rec.StoreSites(updated)
	s.mu.Unlock()

	// Clone the global seed catalog into the new tenant. The clone is
	// independent: fresh IDs, the tenant's SiteID, originals untouched.
	seeds := s.rec.DefaultCatalog(ctx)
	clones := CloneSeedCatalog(seeds, site.ID)
	categories := s.rec.DefaultCategories(ctx)
	s.rec.StoreCatalog(site.ID, clones)
	s.rec.StoreCategories(site.ID, categories)
	s.rec.StoreCoupons(site.ID, []domain.Coupon{})

	created := *site
	s.writer.Enqueue("save site "+created.ID, func(ctx context.Context) {
		s.remote.SaveSite(ctx, created)
		for _, clone := range clones {
			s.remote.SaveCake(ctx, clone)
		}
		s.remote.ReplaceCategories(ctx, created.ID, categories)
	})

	s.logger.Info("Boutique created",
		zap.String("site_id", site.ID),
		zap.String("slug", site.Slug))

	return *dto.FromSite(site), nil
}

// Update edits a boutique's configuration. The slug is fixed at creation and
// never re-derived from a rename.
func (s *SiteService) Update(ctx context.Context, id string, req dto.UpdateSiteRequest) (dto.SiteResponse, error) {
	s.mu.Lock()
	existing := tenant.FindByID(s.sites, id)
	if existing == nil {
		s.mu.Unlock()
		return dto.SiteResponse{}, ErrSiteNotFound
	}
	if tenant.DomainTaken(s.sites, req.CustomDomain, id) {
		s.mu.Unlock()
		return dto.SiteResponse{}, ErrDomainTaken
	}

	existing.Name = req.Name
	existing.Tagline = req.Tagline
	existing.Logo = req.Logo
	existing.ThemeColor = req.ThemeColor
	existing.Phone = req.Phone
	existing.AdminUser = req.AdminUser
	existing.AdminPass = req.AdminPass
	existing.AdminSurname = req.AdminSurname
	existing.CustomDomain = req.CustomDomain
	existing.MaxItems = req.MaxItems
	applySiteDefaults(existing)

	updated := make([]domain.Site, len(s.sites))
	copy(updated, s.sites)
	site := *existing
	s.rec.StoreSites(updated)
	s.mu.Unlock()

	s.writer.Enqueue("save site "+site.ID, func(ctx context.Context) {
		s.remote.SaveSite(ctx, site)
	})
	s.publish(ctx, &dto.StorefrontEvent{Type: dto.EventSiteUpdated, SiteID: site.ID})

	return *dto.FromSite(&site), nil
}

// Delete removes a boutique and drops its tenant-scoped cache keys.
func (s *SiteService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	kept := s.sites[:0:0]
	found := false
	for _, site := range s.sites {
		if site.ID == id {
			found = true
			continue
		}
		kept = append(kept, site)
	}
	if !found {
		s.mu.Unlock()
		return ErrSiteNotFound
	}
	s.sites = kept
	updated := make([]domain.Site, len(kept))
	copy(updated, kept)
	s.rec.StoreSites(updated)
	s.mu.Unlock()

	s.rec.DropTenant(id)
	s.writer.Enqueue("delete site "+id, func(ctx context.Context) {
		s.remote.DeleteSite(ctx, id)
	})

	s.logger.Info("Boutique deleted", zap.String("site_id", id))
	return nil
}

// Authenticate checks manager credentials for a boutique addressed by slug or
// ID. Usernames compare case-insensitively, passwords exactly; there is no
// lockout or rate limiting on this path.
func (s *SiteService) Authenticate(siteRef, username, password string) (*domain.Site, error) {
	s.mu.RLock()
	site := tenant.FindBySlug(s.sites, siteRef)
	if site == nil {
		site = tenant.FindByID(s.sites, siteRef)
	}
	s.mu.RUnlock()
	if site == nil {
		return nil, ErrSiteNotFound
	}

	configUser := site.AdminUser
	if configUser == "" {
		configUser = defaultAdminUser
	}
	configPass := site.AdminPass
	if configPass == "" {
		configPass = defaultAdminPass
	}

	if !strings.EqualFold(username, configUser) || password != configPass {
		return nil, ErrInvalidCredentials
	}

	copied := *site
	return &copied, nil
}

// Defaults returns the global seed catalog and category list.
func (s *SiteService) Defaults(ctx context.Context) ([]domain.Cake, []string) {
	return s.rec.DefaultCatalog(ctx), s.rec.DefaultCategories(ctx)
}

// UpdateDefaults replaces the global seeds. Replace semantics carry to the
// remote store so removed seeds do not resurrect on the next reconciled read.
func (s *SiteService) UpdateDefaults(ctx context.Context, cakes []domain.Cake, categories []string) ([]domain.Cake, []string) {
	for i := range cakes {
		if cakes[i].ID == "" {
			cakes[i].ID = uuid.New().String()
		}
		cakes[i].SiteID = ""
	}

	s.rec.StoreDefaults(cakes, categories)

	seeds := make([]domain.Cake, len(cakes))
	copy(seeds, cakes)
	s.writer.Enqueue("replace seed catalog", func(ctx context.Context) {
		s.remote.ReplaceSeedCakes(ctx, seeds)
	})

	return cakes, categories
}

func (s *SiteService) publish(ctx context.Context, event *dto.StorefrontEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish storefront event",
			zap.String("type", event.Type),
			zap.String("site_id", event.SiteID),
			zap.Error(err))
	}
}

func applySiteDefaults(site *domain.Site) {
	if site.Name == "" {
		site.Name = defaultSiteName
	}
	if site.AdminUser == "" {
		site.AdminUser = defaultAdminUser
	}
	if site.AdminPass == "" {
		site.AdminPass = defaultAdminPass
	}
	if site.ThemeColor == "" {
		site.ThemeColor = defaultThemeColor
	}
	if site.MaxItems <= 0 {
		site.MaxItems = defaultMaxItems
	}
}
