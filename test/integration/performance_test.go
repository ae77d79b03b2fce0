package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farahcakes/bakery-engine/internal/api"
	"github.com/farahcakes/bakery-engine/internal/api/dto"
	"github.com/farahcakes/bakery-engine/internal/repository/localstore"
	"github.com/farahcakes/bakery-engine/internal/repository/remote"
	"github.com/farahcakes/bakery-engine/internal/service"
	"github.com/farahcakes/bakery-engine/internal/worker"
	"github.com/farahcakes/bakery-engine/pkg/logger"
)

// benchStack wires the full request path over a real bbolt store in
// cache-only mode, which is the hot path every storefront render takes.
type benchStack struct {
	router *gin.Engine
	sites  *service.SiteService
	site   dto.SiteResponse
}

func newBenchStack(tb testing.TB) *benchStack {
	tb.Helper()
	gin.SetMode(gin.TestMode)
	testLogger := logger.NewLogger("test")

	local, err := localstore.Open(filepath.Join(tb.TempDir(), "engine.db"))
	require.NoError(tb, err)

	remoteStore := remote.NewStore(nil, testLogger, time.Second)
	reconciler := service.NewReconciler(remoteStore, local, testLogger)
	writer := worker.NewRemoteWriter(testLogger, 1, 256, time.Second)
	writer.Start()

	sites := service.NewSiteService(reconciler, remoteStore, writer, nil, testLogger)
	sites.Init(context.Background())
	catalog := service.NewCatalogService(reconciler, remoteStore, writer, nil, testLogger)

	site, err := sites.Create(context.Background(), dto.CreateSiteRequest{Name: "Bench Bakery"})
	require.NoError(tb, err)

	storefrontHandler := api.NewStorefrontHandler(sites, catalog)
	catalogHandler := api.NewCatalogHandler(sites, catalog, nil, nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("site_id", site.ID)
		c.Set("claims", map[string]interface{}{
			"user_id": "admin",
			"site_id": site.ID,
			"roles":   []interface{}{"operator"},
		})
		c.Next()
	})

	router.GET("/storefront/:slug", storefrontHandler.GetStorefront)
	router.POST("/storefront/:slug/coupons/apply", storefrontHandler.ApplyCoupon)
	router.POST("/sites/:siteId/cakes", catalogHandler.SaveCake)

	tb.Cleanup(func() {
		writer.Stop()
		local.Close()
	})

	return &benchStack{router: router, sites: sites, site: site}
}

func BenchmarkGetStorefront(b *testing.B) {
	stack := newBenchStack(b)

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest("GET", "/storefront/"+stack.site.Slug, nil)

			w := httptest.NewRecorder()
			stack.router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				b.Errorf("Expected status 200, got %d", w.Code)
			}
		}
	})
}

func BenchmarkSaveCake(b *testing.B) {
	stack := newBenchStack(b)

	// A fixed ID keeps every iteration a replace, so the boutique never
	// grows toward its item limit.
	payload := dto.SaveCakeRequest{
		ID:       "bench-cake-1",
		Name:     "Velvet Bench Dream",
		Price:    110000,
		Category: "Birthday",
	}
	payloadBytes, _ := json.Marshal(payload)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req, _ := http.NewRequest("POST", "/sites/"+stack.site.ID+"/cakes", bytes.NewBuffer(payloadBytes))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		stack.router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			b.Errorf("Expected status 200, got %d", w.Code)
		}
	}
}

// TestHighConcurrencyStorefrontReads drives concurrent render-path traffic
// against one boutique and checks nothing drops or degrades badly.
func TestHighConcurrencyStorefrontReads(t *testing.T) {
	stack := newBenchStack(t)

	numGoroutines := 50
	requestsPerGoroutine := 20
	totalRequests := numGoroutines * requestsPerGoroutine

	var successCount int32
	var errorCount int32
	var totalLatency time.Duration
	var maxLatency time.Duration
	var minLatency time.Duration = time.Hour
	var mutex sync.Mutex

	startTime := time.Now()
	var wg sync.WaitGroup

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < requestsPerGoroutine; j++ {
				reqStart := time.Now()

				req, _ := http.NewRequest("GET", "/storefront/"+stack.site.Slug, nil)
				w := httptest.NewRecorder()
				stack.router.ServeHTTP(w, req)

				reqLatency := time.Since(reqStart)

				mutex.Lock()
				totalLatency += reqLatency
				if reqLatency > maxLatency {
					maxLatency = reqLatency
				}
				if reqLatency < minLatency {
					minLatency = reqLatency
				}

				if w.Code == http.StatusOK {
					successCount++
				} else {
					errorCount++
				}
				mutex.Unlock()
			}
		}()
	}

	wg.Wait()
	totalTime := time.Since(startTime)

	avgLatency := totalLatency / time.Duration(totalRequests)
	throughput := float64(totalRequests) / totalTime.Seconds()

	t.Logf("=== High Concurrency Test Results ===")
	t.Logf("Total requests: %d", totalRequests)
	t.Logf("Successful requests: %d", successCount)
	t.Logf("Failed requests: %d", errorCount)
	t.Logf("Total time: %v", totalTime)
	t.Logf("Throughput: %.2f requests/second", throughput)
	t.Logf("Average latency: %v", avgLatency)
	t.Logf("Min latency: %v", minLatency)
	t.Logf("Max latency: %v", maxLatency)

	assert.Equal(t, int32(totalRequests), successCount, "All requests should succeed")
	assert.Equal(t, int32(0), errorCount, "No requests should fail")
	assert.True(t, avgLatency < 250*time.Millisecond, "Average latency should stay under 250ms, got %v", avgLatency)
}

// TestSustainedMixedLoad interleaves storefront renders with coupon checks
// and cake writes for a few seconds of wall time.
func TestSustainedMixedLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping sustained load test in short mode")
	}

	stack := newBenchStack(t)

	duration := 3 * time.Second
	startTime := time.Now()
	requestCount := 0

	for time.Since(startTime) < duration {
		req, _ := http.NewRequest("GET", "/storefront/"+stack.site.Slug, nil)
		w := httptest.NewRecorder()
		stack.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		if requestCount%100 == 0 {
			payload := dto.SaveCakeRequest{
				ID:       "sustained-cake-1",
				Name:     fmt.Sprintf("Sustained Bake %d", requestCount),
				Price:    95000,
				Category: "Wedding",
			}
			payloadBytes, _ := json.Marshal(payload)
			req, _ := http.NewRequest("POST", "/sites/"+stack.site.ID+"/cakes", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			stack.router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		requestCount++
	}

	totalTime := time.Since(startTime)
	throughput := float64(requestCount) / totalTime.Seconds()

	t.Logf("=== Sustained Load Test Results ===")
	t.Logf("Duration: %v", duration)
	t.Logf("Total requests: %d", requestCount)
	t.Logf("Average throughput: %.2f requests/second", throughput)

	assert.True(t, throughput >= 100, "Should maintain at least 100 requests/second under sustained load")
}

// TestConcurrentCakeSavesAllPersisted drives parallel saves through the HTTP
// handler over the real local store and checks every acknowledged save is
// visible in the rendered storefront afterward.
func TestConcurrentCakeSavesAllPersisted(t *testing.T) {
	stack := newBenchStack(t)

	const savers = 64
	var wg sync.WaitGroup
	var acknowledged int32
	var ackMu sync.Mutex

	wg.Add(savers)
	for i := 0; i < savers; i++ {
		go func(n int) {
			defer wg.Done()

			payload := dto.SaveCakeRequest{
				Name:  fmt.Sprintf("Parallel Bake %d", n),
				Price: 1000,
			}
			payloadBytes, _ := json.Marshal(payload)
			req, _ := http.NewRequest("POST", "/sites/"+stack.site.ID+"/cakes", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			stack.router.ServeHTTP(w, req)

			if w.Code == http.StatusOK {
				ackMu.Lock()
				acknowledged++
				ackMu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	req, _ := http.NewRequest("GET", "/storefront/"+stack.site.Slug, nil)
	w := httptest.NewRecorder()
	stack.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Cakes []dto.CakeResponse `json:"cakes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	named := 0
	for _, cake := range resp.Cakes {
		if len(cake.Name) >= 8 && cake.Name[:8] == "Parallel" {
			named++
		}
	}
	assert.Equal(t, int32(savers), acknowledged, "every save should be acknowledged")
	assert.Equal(t, savers, named, "every acknowledged save should be in the catalog")
}
