package matcatalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrameCraft_Go/internal/domain"
)

// fakeCatalog serves mats and records every query it receives.
type fakeCatalog struct {
	mu      sync.Mutex
	queries []string
	status  int
	mats    []domain.MatBoard
}

func (f *fakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.queries = append(f.queries, r.URL.RawQuery)
	f.mu.Unlock()

	if r.URL.Path != DefaultCatalogPath {
		http.NotFound(w, r)
		return
	}
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(domain.MatCatalog{Version: "1", LastUpdated: "2026-01-01", Mats: f.mats})
}

func (f *fakeCatalog) lastQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return ""
	}
	return f.queries[len(f.queries)-1]
}

func (f *fakeCatalog) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func testBoards() []domain.MatBoard {
	return []domain.MatBoard{
		{
			ID: "mat-white", ColorName: "White", ColorHex: "#FFFFFF", Brand: domain.BrandPeterboro,
			Category:       domain.MatCategoryRegular,
			SKUs:           map[domain.MatSheetSize]string{domain.Sheet32x40: "PB-100", domain.Sheet40x60: "PB-100-XL"},
			AvailableSizes: []domain.MatSheetSize{domain.Sheet32x40, domain.Sheet40x60},
			Pricing:        domain.MatPricing{CostPer32x40: 10, CostPer40x60: 22, Markup: 2.5},
		},
		{
			ID: "mat-suede-navy", ColorName: "Navy Suede", ColorHex: "#1F2A44", Brand: domain.BrandCrescent,
			Category:       domain.MatCategoryPremium,
			SKUs:           map[domain.MatSheetSize]string{domain.Sheet32x40: "CR-7001"},
			AvailableSizes: []domain.MatSheetSize{domain.Sheet32x40},
			Pricing:        domain.MatPricing{CostPer32x40: 18, Markup: 2},
		},
	}
}

func newFakeServer(t *testing.T, f *fakeCatalog) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func TestClientFetch_SendsFilter(t *testing.T) {
	f := &fakeCatalog{mats: testBoards()}
	c := newFakeServer(t, f)

	catalog, err := c.Fetch(context.Background(), domain.MatFilter{
		RequiredSize: domain.Sheet40x60,
		Category:     domain.MatCategoryPremium,
		Brand:        domain.BrandCrescent,
		ExcludeSite:  "shop-b",
	})
	require.NoError(t, err)
	assert.Len(t, catalog.Mats, 2)
	assert.Equal(t, "1", catalog.Version)
	assert.Equal(t, "brand=Crescent&category=premium&excludeSite=shop-b&requiredSize=40x60", f.lastQuery())
}

func TestClientFetch_NoFilterSendsNoQuery(t *testing.T) {
	f := &fakeCatalog{}
	c := newFakeServer(t, f)

	_, err := c.Fetch(context.Background(), domain.MatFilter{})
	require.NoError(t, err)
	assert.Empty(t, f.lastQuery())
}

func TestClientFetch_Non2xxIsError(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			c := newFakeServer(t, &fakeCatalog{status: status})

			catalog, err := c.Fetch(context.Background(), domain.MatFilter{})
			require.Error(t, err)
			assert.Nil(t, catalog)
			assert.Contains(t, err.Error(), ErrMsgFetchFailed)
		})
	}
}

func TestClientFetch_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background(), domain.MatFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestClientFetch_ContextCancelled(t *testing.T) {
	c := newFakeServer(t, &fakeCatalog{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx, domain.MatFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
