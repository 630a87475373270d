package routing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"googlemaps.github.io/maps"

	"github.com/nurpe/fleet-logistics/internal/config"
)

var (
	errNoAPIKey    = errors.New("routing api key not configured")
	errEmptyResult = errors.New("routing returned no distance")
)

// Estimate is the route cost between two addresses. Fallback is set when the
// values come from the configured defaults instead of the mapping API.
type Estimate struct {
	DistanceKm float64
	Toll       float64
	Fallback   bool
}

// Client looks up driving distances on the Distance Matrix API.
type Client struct {
	maps      *maps.Client
	initErr   error
	timeout   time.Duration
	tollPerKm float64
	fallback  Estimate
	log       zerolog.Logger
}

func NewClient(cfg config.RoutingConfig, log zerolog.Logger) *Client {
	c := &Client{
		timeout:   cfg.Timeout,
		tollPerKm: cfg.TollPerKm,
		fallback:  Estimate{DistanceKm: cfg.FallbackKm, Toll: cfg.FallbackToll, Fallback: true},
		log:       log,
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		c.initErr = errNoAPIKey
		return c
	}

	opts := []maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}
	c.maps, c.initErr = maps.NewClient(opts...)
	if c.initErr != nil {
		log.Warn().Err(c.initErr).Msg("routing client disabled")
	}
	return c
}

// Estimate never fails: any lookup problem yields the fallback pair.
func (c *Client) Estimate(ctx context.Context, origin, destination string) Estimate {
	estimate, err := c.lookup(ctx, origin, destination)
	if err != nil {
		c.log.Warn().
			Err(err).
			Str("origin", origin).
			Str("destination", destination).
			Float64("distance_km", c.fallback.DistanceKm).
			Float64("toll", c.fallback.Toll).
			Msg("route lookup failed, using fallback")
		return c.fallback
	}
	return estimate
}

func (c *Client) lookup(ctx context.Context, origin, destination string) (Estimate, error) {
	if c.initErr != nil {
		return Estimate{}, c.initErr
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.maps.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
	})
	if err != nil {
		return Estimate{}, fmt.Errorf("distance matrix: %w", err)
	}
	if resp == nil || len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return Estimate{}, errEmptyResult
	}

	element := resp.Rows[0].Elements[0]
	if element == nil || element.Status != "OK" {
		return Estimate{}, errEmptyResult
	}

	distanceKm := float64(element.Distance.Meters) / 1000.0
	toll := distanceKm * c.tollPerKm

	c.log.Debug().
		Str("origin", origin).
		Str("destination", destination).
		Float64("distance_km", distanceKm).
		Float64("toll", toll).
		Msg("route estimated")

	return Estimate{DistanceKm: distanceKm, Toll: toll}, nil
}
