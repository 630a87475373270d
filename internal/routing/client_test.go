package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/nurpe/fleet-logistics/internal/config"
)

func testConfig(baseURL string) config.RoutingConfig {
	return config.RoutingConfig{
		APIKey:       "AIzaTestKey",
		BaseURL:      baseURL,
		Timeout:      time.Second,
		FallbackKm:   50,
		FallbackToll: 10,
		TollPerKm:    0.20,
	}
}

func TestEstimateParsesDistance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/distancematrix/json", r.URL.Path)
		assert.Equal(t, "AIzaTestKey", r.URL.Query().Get("key"))
		assert.Equal(t, "Sorocaba", r.URL.Query().Get("origins"))
		assert.Equal(t, "driving", r.URL.Query().Get("mode"))
		_, _ = w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"status":"OK","distance":{"value":120000}}]}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zerolog.Nop())
	estimate := client.Estimate(context.Background(), "Sorocaba", "Campinas")

	assert.False(t, estimate.Fallback)
	assert.InDelta(t, 120.0, estimate.DistanceKm, 1e-9)
	assert.InDelta(t, 24.0, estimate.Toll, 1e-9)
}

func TestEstimateFallsBack(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"empty rows": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"OK","rows":[]}`))
		},
		"element not found": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"status":"NOT_FOUND"}]}]}`))
		},
		"denied": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED"}`))
		},
		"garbage": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		},
		"timeout": func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(handler)
			defer server.Close()

			cfg := testConfig(server.URL)
			cfg.Timeout = 100 * time.Millisecond
			estimate := NewClient(cfg, zerolog.Nop()).Estimate(context.Background(), "a", "b")

			assert.Equal(t, Estimate{DistanceKm: 50, Toll: 10, Fallback: true}, estimate)
		})
	}
}

func TestEstimateWithoutKeySkipsNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.APIKey = "  "
	estimate := NewClient(cfg, zerolog.Nop()).Estimate(context.Background(), "a", "b")

	assert.True(t, estimate.Fallback)
	assert.False(t, called)
}
