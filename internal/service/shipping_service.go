package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/steelstack/crm-api/internal/config"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/shipping"
	"go.uber.org/zap"
)

// ZipGeocoder resolves a ZIP code to coordinates
type ZipGeocoder interface {
	Lookup(ctx context.Context, zip string) (*shipping.Location, error)
}

// RouteProvider returns driving distance in miles between two locations
type RouteProvider interface {
	DriveMiles(ctx context.Context, from, to *shipping.Location) (float64, error)
}

// ShippingService estimates freight cost between two ZIP codes.
//
// cost_per_truck = max(distance_miles x rate_per_mile, minimum_charge).
// A manual override replaces the computed cost but the distance and rate
// are still returned so the caller can see what the formula would have
// produced. A failed external lookup is an error, never a zero estimate.
type ShippingService struct {
	geocoder ZipGeocoder
	router   RouteProvider
	rate     decimal.Decimal
	minimum  decimal.Decimal
	logger   *zap.Logger
}

func NewShippingService(geocoder ZipGeocoder, router RouteProvider, cfg *config.ShippingConfig, logger *zap.Logger) *ShippingService {
	return &ShippingService{
		geocoder: geocoder,
		router:   router,
		rate:     decimal.NewFromFloat(cfg.RatePerMile),
		minimum:  decimal.NewFromFloat(cfg.MinimumCharge),
		logger:   logger,
	}
}

func (s *ShippingService) Estimate(ctx context.Context, req *domain.ShippingEstimateRequest) (*domain.ShippingEstimateDTO, error) {
	origin, err := s.geocoder.Lookup(ctx, req.OriginZip)
	if err != nil {
		s.logger.Warn("origin zip lookup failed", zap.String("zip", req.OriginZip), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExternalUnavailable, err)
	}
	dest, err := s.geocoder.Lookup(ctx, req.DestinationZip)
	if err != nil {
		s.logger.Warn("destination zip lookup failed", zap.String("zip", req.DestinationZip), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExternalUnavailable, err)
	}

	miles, err := s.router.DriveMiles(ctx, origin, dest)
	if err != nil {
		s.logger.Warn("route lookup failed",
			zap.String("origin", req.OriginZip),
			zap.String("destination", req.DestinationZip),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrExternalUnavailable, err)
	}

	rate := s.rate
	if req.RatePerMile != nil && req.RatePerMile.IsPositive() {
		rate = *req.RatePerMile
	}

	distance := decimal.NewFromFloat(miles).Round(1)
	computed := distance.Mul(rate).Round(2)

	cost := computed
	minimumApplied := false
	if cost.LessThan(s.minimum) {
		cost = s.minimum
		minimumApplied = true
	}

	overrideApplied := false
	if req.OverridePrice != nil && req.OverridePrice.IsPositive() {
		cost = req.OverridePrice.Round(2)
		overrideApplied = true
		minimumApplied = false
	}

	trucks := req.TruckCount
	if trucks < 1 {
		trucks = 1
	}

	return &domain.ShippingEstimateDTO{
		OriginZip:        origin.Zip,
		OriginCity:       origin.City,
		OriginState:      origin.State,
		DestinationZip:   dest.Zip,
		DestinationCity:  dest.City,
		DestinationState: dest.State,
		DistanceMiles:    distance,
		RatePerMile:      rate,
		CostPerTruck:     cost,
		TruckCount:       trucks,
		Total:            cost.Mul(decimal.NewFromInt(int64(trucks))),
		MinimumApplied:   minimumApplied,
		OverrideApplied:  overrideApplied,
	}, nil
}
