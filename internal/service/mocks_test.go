package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/farahcakes/bakery-engine/internal/domain"
	"github.com/farahcakes/bakery-engine/internal/repository"
)

// memStore is an in-memory LocalStore for tests. Like the bbolt store it
// stands in for, individual operations are safe under concurrent use.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.data[key]
	return blob, ok
}

func (s *memStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Site() repository.SiteRepository {
	return m.Called().Get(0).(repository.SiteRepository)
}

func (m *MockRepository) Cake() repository.CakeRepository {
	return m.Called().Get(0).(repository.CakeRepository)
}

func (m *MockRepository) Coupon() repository.CouponRepository {
	return m.Called().Get(0).(repository.CouponRepository)
}

func (m *MockRepository) Category() repository.CategoryRepository {
	return m.Called().Get(0).(repository.CategoryRepository)
}

type MockSiteRepository struct {
	mock.Mock
}

func (m *MockSiteRepository) List(ctx context.Context) ([]domain.Site, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Site), args.Error(1)
}

func (m *MockSiteRepository) GetByID(ctx context.Context, id string) (*domain.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteRepository) Upsert(ctx context.Context, site *domain.Site) error {
	return m.Called(ctx, site).Error(0)
}

func (m *MockSiteRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCakeRepository struct {
	mock.Mock
}

func (m *MockCakeRepository) ListBySite(ctx context.Context, siteID string) ([]domain.Cake, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cake), args.Error(1)
}

func (m *MockCakeRepository) ListSeeds(ctx context.Context) ([]domain.Cake, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cake), args.Error(1)
}

func (m *MockCakeRepository) ReplaceSeeds(ctx context.Context, cakes []domain.Cake) error {
	return m.Called(ctx, cakes).Error(0)
}

func (m *MockCakeRepository) Upsert(ctx context.Context, cake *domain.Cake) error {
	return m.Called(ctx, cake).Error(0)
}

func (m *MockCakeRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) ListBySite(ctx context.Context, siteID string) ([]domain.Coupon, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Upsert(ctx context.Context, coupon *domain.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *MockCouponRepository) Delete(ctx context.Context, code, siteID string) error {
	return m.Called(ctx, code, siteID).Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListBySite(ctx context.Context, siteID string) ([]domain.Category, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Replace(ctx context.Context, siteID string, categories []domain.Category) error {
	return m.Called(ctx, siteID, categories).Error(0)
}
