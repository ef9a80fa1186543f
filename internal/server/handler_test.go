package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/Samod99/NourishFoods-sub000/internal/cart/application"
	catalogdomain "github.com/Samod99/NourishFoods-sub000/internal/catalog/domain"
	catalogmem "github.com/Samod99/NourishFoods-sub000/internal/catalog/infrastructure/memory"
	"github.com/Samod99/NourishFoods-sub000/internal/delivery"
	"github.com/Samod99/NourishFoods-sub000/internal/geo"
	healthapp "github.com/Samod99/NourishFoods-sub000/internal/health/application"
	"github.com/Samod99/NourishFoods-sub000/internal/identity"
	"github.com/Samod99/NourishFoods-sub000/internal/kvstore"
	"github.com/Samod99/NourishFoods-sub000/internal/notify"
	orderapp "github.com/Samod99/NourishFoods-sub000/internal/order/application"
	orderkv "github.com/Samod99/NourishFoods-sub000/internal/order/infrastructure/kv"
	"github.com/Samod99/NourishFoods-sub000/pkg/idempotency"
	"github.com/Samod99/NourishFoods-sub000/pkg/logging"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	log := logging.New("error")
	kv := kvstore.NewMemory()
	sink := notify.NewInApp()
	ident := identity.NewStatic("u1")

	catalog := catalogmem.NewStore()
	require.NoError(t, catalog.SeedVendor(catalogdomain.Vendor{
		ID:                 "v1",
		Name:               "Green Bowl Kitchen",
		Location:           geo.Point{Lat: 0, Lng: 0},
		Open:               true,
		AvgDeliveryMinutes: 15,
		Rating:             4.0,
		RatingCount:        1,
	}))

	carts := cartapp.NewService(log, kv, ident, sink)
	orders := orderkv.NewHistory(log, kv)
	health := healthapp.NewEngine(log, kv, catalog, ident, sink, time.UTC)
	assembler := orderapp.NewAssembler(log, carts, catalog, orders, ident, sink)
	sim := delivery.NewSimulator(log)
	idem := idempotency.NewGuard(kv, time.Hour)

	return NewHandler(log, catalog, carts, assembler, health, sim, idem).Routes()
}

func TestListVendorsWithDestinationEstimate(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vendors?lat=0&lng=0.02", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	// 15 minutes prep plus ~27 minutes of travel at courier speed.
	assert.EqualValues(t, 42, got[0]["estimatedMinutes"])
}

func TestListVendorsWithoutDestination(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vendors", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.NotContains(t, got[0], "estimatedMinutes")
}

func TestRateVendorEndpoint(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vendors/v1/ratings", strings.NewReader(`{"value":5}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var got catalogdomain.Vendor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.InDelta(t, 4.5, got.Rating, 1e-9)
	assert.Equal(t, 2, got.RatingCount)
}

func TestRateVendorUnknownReturnsNotFound(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vendors/nope/ratings", strings.NewReader(`{"value":4}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
