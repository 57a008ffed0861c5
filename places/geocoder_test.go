// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package places

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeocoder(handler http.HandlerFunc) (*GoogleMapsGeocoder, *httptest.Server) {
	server := httptest.NewServer(handler)
	geocoder := NewGoogleMapsGeocoder("test-key", "us")
	geocoder.baseURL = server.URL

	return geocoder, server
}

func TestGeocode(t *testing.T) {
	geocoder, server := newTestGeocoder(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1600 Pennsylvania Ave", r.URL.Query().Get("address"))
		assert.Equal(t, "us", r.URL.Query().Get("region"))

		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"geometry": {
					"location": {"lat": 38.8977, "lng": -77.0365},
					"location_type": "ROOFTOP"
				},
				"formatted_address": "1600 Pennsylvania Ave NW, Washington, DC"
			}]
		}`))
	})
	defer server.Close()

	result, err := geocoder.Geocode("1600 Pennsylvania Ave")
	require.NoError(t, err)

	assert.InDelta(t, 38.8977, result.Point.Lat, 1e-9)
	assert.InDelta(t, -77.0365, result.Point.Lng, 1e-9)
	assert.Equal(t, "high", result.Confidence)
	assert.Equal(t, "google_maps", result.Provider)
	assert.Equal(t, "1600 Pennsylvania Ave NW, Washington, DC", result.DisplayName)
}

func TestGeocodeConfidenceMapping(t *testing.T) {
	tests := []struct {
		locationType string
		want         string
	}{
		{"ROOFTOP", "high"},
		{"RANGE_INTERPOLATED", "high"},
		{"GEOMETRIC_CENTER", "medium"},
		{"APPROXIMATE", "low"},
		{"SOMETHING_NEW", "low"},
	}

	for _, tt := range tests {
		t.Run(tt.locationType, func(t *testing.T) {
			geocoder, server := newTestGeocoder(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{
					"status": "OK",
					"results": [{
						"geometry": {"location": {"lat": 1, "lng": 2}, "location_type": "` + tt.locationType + `"},
						"formatted_address": "x"
					}]
				}`))
			})
			defer server.Close()

			result, err := geocoder.Geocode("x")
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Confidence)
		})
	}
}

func TestGeocodeNonOKStatus(t *testing.T) {
	geocoder, server := newTestGeocoder(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})
	defer server.Close()

	_, err := geocoder.Geocode("nowhere at all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZERO_RESULTS")
}
