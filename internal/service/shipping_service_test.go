package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/steelstack/crm-api/internal/config"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/shipping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGeocoder struct {
	locations map[string]*shipping.Location
	err       error
}

func (f *fakeGeocoder) Lookup(ctx context.Context, zip string) (*shipping.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	loc, ok := f.locations[zip]
	if !ok {
		return nil, errors.New("unknown zip")
	}
	return loc, nil
}

type fakeRouter struct {
	miles float64
	err   error
}

func (f *fakeRouter) DriveMiles(ctx context.Context, from, to *shipping.Location) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.miles, nil
}

func shippingCfg() *config.ShippingConfig {
	return &config.ShippingConfig{
		RatePerMile:   3.85,
		MinimumCharge: 1200,
	}
}

func coastToCoast() *fakeGeocoder {
	return &fakeGeocoder{locations: map[string]*shipping.Location{
		"90210": {Zip: "90210", City: "Beverly Hills", State: "CA", Latitude: 34.09, Longitude: -118.41},
		"10001": {Zip: "10001", City: "New York", State: "NY", Latitude: 40.75, Longitude: -73.99},
	}}
}

func TestShippingEstimate_RateTimesDistance(t *testing.T) {
	svc := NewShippingService(coastToCoast(), &fakeRouter{miles: 2776.04}, shippingCfg(), zap.NewNop())

	est, err := svc.Estimate(context.Background(), &domain.ShippingEstimateRequest{
		OriginZip:      "90210",
		DestinationZip: "10001",
	})
	require.NoError(t, err)

	// 2776.04 rounds to 2776.0 miles; 2776.0 x 3.85 = 10687.60
	assert.True(t, decimal.RequireFromString("2776").Equal(est.DistanceMiles), "distance %s", est.DistanceMiles)
	assert.True(t, decimal.RequireFromString("10687.60").Equal(est.CostPerTruck), "cost %s", est.CostPerTruck)
	assert.Equal(t, 1, est.TruckCount)
	assert.True(t, est.CostPerTruck.Equal(est.Total))
	assert.False(t, est.MinimumApplied)
	assert.False(t, est.OverrideApplied)
	assert.Equal(t, "Beverly Hills", est.OriginCity)
	assert.Equal(t, "NY", est.DestinationState)
}

func TestShippingEstimate_MinimumChargeFloor(t *testing.T) {
	svc := NewShippingService(coastToCoast(), &fakeRouter{miles: 50}, shippingCfg(), zap.NewNop())

	est, err := svc.Estimate(context.Background(), &domain.ShippingEstimateRequest{
		OriginZip:      "90210",
		DestinationZip: "10001",
	})
	require.NoError(t, err)

	// 50 x 3.85 = 192.50, well under the floor
	assert.True(t, decimal.RequireFromString("1200").Equal(est.CostPerTruck))
	assert.True(t, est.MinimumApplied)
}

func TestShippingEstimate_CustomRateAndMultipleTrucks(t *testing.T) {
	svc := NewShippingService(coastToCoast(), &fakeRouter{miles: 1000}, shippingCfg(), zap.NewNop())

	rate := decimal.RequireFromString("2.50")
	est, err := svc.Estimate(context.Background(), &domain.ShippingEstimateRequest{
		OriginZip:      "90210",
		DestinationZip: "10001",
		RatePerMile:    &rate,
		TruckCount:     3,
	})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("2500").Equal(est.CostPerTruck))
	assert.Equal(t, 3, est.TruckCount)
	assert.True(t, decimal.RequireFromString("7500").Equal(est.Total))
}

func TestShippingEstimate_OverrideReplacesCost(t *testing.T) {
	svc := NewShippingService(coastToCoast(), &fakeRouter{miles: 100}, shippingCfg(), zap.NewNop())

	override := decimal.RequireFromString("950.00")
	est, err := svc.Estimate(context.Background(), &domain.ShippingEstimateRequest{
		OriginZip:      "90210",
		DestinationZip: "10001",
		OverridePrice:  &override,
	})
	require.NoError(t, err)

	// override wins, even below the minimum, and the formula inputs are
	// still reported
	assert.True(t, decimal.RequireFromString("950.00").Equal(est.CostPerTruck))
	assert.True(t, est.OverrideApplied)
	assert.False(t, est.MinimumApplied)
	assert.True(t, decimal.RequireFromString("100").Equal(est.DistanceMiles))
	assert.True(t, decimal.RequireFromString("3.85").Equal(est.RatePerMile))
}

func TestShippingEstimate_GeocoderFailureIsUnavailable(t *testing.T) {
	svc := NewShippingService(&fakeGeocoder{err: errors.New("boom")}, &fakeRouter{miles: 100}, shippingCfg(), zap.NewNop())

	_, err := svc.Estimate(context.Background(), &domain.ShippingEstimateRequest{
		OriginZip:      "90210",
		DestinationZip: "10001",
	})
	assert.ErrorIs(t, err, ErrExternalUnavailable)
}

func TestShippingEstimate_RouterFailureIsUnavailable(t *testing.T) {
	svc := NewShippingService(coastToCoast(), &fakeRouter{err: errors.New("osrm down")}, shippingCfg(), zap.NewNop())

	_, err := svc.Estimate(context.Background(), &domain.ShippingEstimateRequest{
		OriginZip:      "90210",
		DestinationZip: "10001",
	})
	// the caller must never see a zero-cost estimate on backend failure
	assert.ErrorIs(t, err, ErrExternalUnavailable)
}
