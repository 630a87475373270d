package service

import (
	"context"
	"math"
	"math/big"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/nurpe/fleet-logistics/internal/config"
	"github.com/nurpe/fleet-logistics/internal/model"
)

type Rates struct {
	PerKm  float64
	PerBox float64
	PerKg  float64
}

type FreightInput struct {
	WeightReal  float64
	WeightCubic float64
	BoxCount    int
	Origin      string
	Destination string
	Rates       Rates
}

// FreightBreakdown keeps both pricing models next to the rounded result.
type FreightBreakdown struct {
	ConsideredWeight float64
	DistanceKm       float64
	Toll             float64
	ByWeight         float64
	ByBox            float64
	Freight          float64
	RouteFallback    bool
}

type Pricing struct {
	routes      RouteEstimator
	defaults    Rates
	cubicFactor float64
	tollCap     float64
	log         zerolog.Logger
}

func NewPricing(routes RouteEstimator, cfg config.PricingConfig, log zerolog.Logger) *Pricing {
	return &Pricing{
		routes: routes,
		defaults: Rates{
			PerKm:  cfg.RatePerKm,
			PerBox: cfg.RatePerBox,
			PerKg:  cfg.RatePerKg,
		},
		cubicFactor: cfg.CubicFactor,
		tollCap:     cfg.TollCap,
		log:         log,
	}
}

func (p *Pricing) DefaultRates() Rates {
	return p.defaults
}

// RatesFor falls back to the global default for every rate the carrier leaves unset.
func (p *Pricing) RatesFor(carrier *model.Carrier) Rates {
	rates := p.defaults
	if carrier == nil {
		return rates
	}
	if carrier.RatePerKm != nil {
		rates.PerKm = *carrier.RatePerKm
	}
	if carrier.RatePerBox != nil {
		rates.PerBox = *carrier.RatePerBox
	}
	if carrier.RatePerKg != nil {
		rates.PerKg = *carrier.RatePerKg
	}
	return rates
}

func (p *Pricing) CubicWeight(length, width, height float64) float64 {
	return length * width * height * p.cubicFactor
}

func (p *Pricing) CalculateFreight(ctx context.Context, in FreightInput) FreightBreakdown {
	estimate := p.routes.Estimate(ctx, in.Origin, in.Destination)
	breakdown := p.price(in, estimate.DistanceKm, estimate.Toll)
	breakdown.RouteFallback = estimate.Fallback
	return breakdown
}

func (p *Pricing) price(in FreightInput, distanceKm, toll float64) FreightBreakdown {
	considered := math.Max(in.WeightReal, in.WeightCubic)
	toll = math.Min(toll, p.tollCap)

	route := in.Rates.PerKm*distanceKm + toll
	byWeight := considered*in.Rates.PerKg + route
	byBox := float64(in.BoxCount)*in.Rates.PerBox + route

	result := FreightBreakdown{
		ConsideredWeight: considered,
		DistanceKm:       distanceKm,
		Toll:             toll,
		ByWeight:         byWeight,
		ByBox:            byBox,
		Freight:          roundHalfUp(math.Max(byWeight, byBox), 2),
	}

	p.log.Debug().
		Float64("considered_weight", considered).
		Float64("distance_km", distanceKm).
		Float64("toll", toll).
		Float64("by_weight", byWeight).
		Float64("by_box", byBox).
		Float64("freight", result.Freight).
		Msg("freight calculated")

	return result
}

// roundHalfUp rounds the shortest decimal form of v, so 2.675 becomes 2.68.
func roundHalfUp(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	if !ok {
		return v
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	negative := r.Sign() < 0
	r.Abs(r)
	r.Mul(r, new(big.Rat).SetInt(scale))
	r.Add(r, big.NewRat(1, 2))

	scaled := new(big.Int).Quo(r.Num(), r.Denom())
	if negative {
		scaled.Neg(scaled)
	}
	out, _ := new(big.Rat).SetFrac(scaled, scale).Float64()
	return out
}
