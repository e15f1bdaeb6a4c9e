package shipping

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterDriveMiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/route/v1/driving/"))
		assert.Equal(t, "false", r.URL.Query().Get("overview"))
		w.Header().Set("Content-Type", "application/json")
		// 160934.4 meters is exactly 100 miles
		w.Write([]byte(`{"code": "Ok", "routes": [{"distance": 160934.4}]}`))
	}))
	defer srv.Close()

	rt := NewRouter(srv.URL, 2*time.Second)
	miles, err := rt.DriveMiles(context.Background(),
		&Location{Latitude: 34.09, Longitude: -118.41},
		&Location{Latitude: 40.75, Longitude: -73.99},
	)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, miles, 0.001)
}

func TestRouterDriveMiles_NoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	rt := NewRouter(srv.URL, 2*time.Second)
	_, err := rt.DriveMiles(context.Background(), &Location{}, &Location{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoRoute")
}

func TestRouterDriveMiles_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	rt := NewRouter(srv.URL, 2*time.Second)
	_, err := rt.DriveMiles(context.Background(), &Location{}, &Location{})
	assert.Error(t, err)
}
