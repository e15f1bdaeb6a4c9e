package shipping

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocoderLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/us/35953", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"post code": "35953",
			"places": [{
				"place name": "Ashville",
				"state abbreviation": "AL",
				"latitude": "33.8312",
				"longitude": "-86.2547"
			}]
		}`))
	}))
	defer srv.Close()

	g := NewGeocoder(srv.URL, 2*time.Second)
	loc, err := g.Lookup(context.Background(), "35953")
	require.NoError(t, err)

	assert.Equal(t, "35953", loc.Zip)
	assert.Equal(t, "Ashville", loc.City)
	assert.Equal(t, "AL", loc.State)
	assert.InDelta(t, 33.8312, loc.Latitude, 0.0001)
	assert.InDelta(t, -86.2547, loc.Longitude, 0.0001)
}

func TestGeocoderLookup_UnknownZip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	g := NewGeocoder(srv.URL, 2*time.Second)
	_, err := g.Lookup(context.Background(), "00000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown zip")
}

func TestGeocoderLookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewGeocoder(srv.URL, 2*time.Second)
	_, err := g.Lookup(context.Background(), "35953")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestGeocoderLookup_NoPlaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"post code": "35953", "places": []}`))
	}))
	defer srv.Close()

	g := NewGeocoder(srv.URL, 2*time.Second)
	_, err := g.Lookup(context.Background(), "35953")
	assert.Error(t, err)
}
