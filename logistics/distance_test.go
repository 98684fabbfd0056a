package logistics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Kariqs/agroxhub-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryCache struct {
	values map[string]float64
}

func (m *memoryCache) Get(_ context.Context, key string) (float64, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *memoryCache) Set(_ context.Context, key string, km float64) {
	m.values[key] = km
}

func coords(lat, long float64) Coordinates {
	return Coordinates{Lat: &lat, Long: &long}
}

func TestResolveDistanceKm(t *testing.T) {
	var calls atomic.Int32
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":2000}]}`))
	}))
	defer srv.Close()

	cache := &memoryCache{values: map[string]float64{}}
	r := NewOSRMResolver(srv.URL, time.Second, cache, zap.NewNop())

	km, err := r.ResolveDistanceKm(context.Background(), coords(-1.28, 36.82), coords(-0.3, 36.07))
	require.NoError(t, err)
	assert.InDelta(t, 2.3, km, 1e-9)
	assert.Equal(t, "/36.82,-1.28;36.07,-0.3", gotPath)
	assert.Equal(t, "overview=false", gotQuery)

	km, err = r.ResolveDistanceKm(context.Background(), coords(-1.28, 36.82), coords(-0.3, 36.07))
	require.NoError(t, err)
	assert.InDelta(t, 2.3, km, 1e-9)
	assert.Equal(t, int32(1), calls.Load(), "second lookup is served from cache")
}

func TestResolveDistanceKmSamePoint(t *testing.T) {
	r := NewOSRMResolver("http://127.0.0.1:1", time.Second, nil, zap.NewNop())

	km, err := r.ResolveDistanceKm(context.Background(), coords(1, 2), coords(1, 2))
	require.NoError(t, err)
	assert.InDelta(t, 1.725, km, 1e-9)
}

func TestResolveDistanceKmMissingCoordinates(t *testing.T) {
	r := NewOSRMResolver("http://127.0.0.1:1", time.Second, nil, zap.NewNop())

	_, err := r.ResolveDistanceKm(context.Background(), Coordinates{}, coords(1, 2))
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestResolveDistanceKmServiceFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"upstream error", http.StatusBadGateway, `{"code":"Error"}`},
		{"no route", http.StatusOK, `{"code":"NoRoute","routes":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			r := NewOSRMResolver(srv.URL, time.Second, nil, zap.NewNop())
			_, err := r.ResolveDistanceKm(context.Background(), coords(1, 2), coords(3, 4))
			require.Error(t, err)
			assert.Equal(t, utils.KindService, utils.KindOf(err))
		})
	}
}
