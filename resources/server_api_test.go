// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package resources

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nearcare/nearcare/places"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeocoder struct {
	result *places.GeocodingResult
	err    error
}

func (g *fakeGeocoder) Geocode(_ string) (*places.GeocodingResult, error) {
	return g.result, g.err
}

func setupServerTest(gateway PlacesSearcher, geocoder places.Geocoder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	server := NewServer(newTestAggregator(gateway, nil), geocoder)

	router.GET("/healthz", server.health)
	router.GET("/api/categories", server.listCategories)
	router.GET("/api/geocode", server.geocode)
	router.POST("/api/resources/search", server.search)

	return router
}

func TestHealthEndpoint(t *testing.T) {
	router := setupServerTest(&fakeGateway{}, &fakeGeocoder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListCategoriesEndpoint(t *testing.T) {
	router := setupServerTest(&fakeGateway{}, &fakeGeocoder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var categories []categoryInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 6)
	assert.Equal(t, "medical", categories[0].ID)
	assert.Equal(t, "Medical Care", categories[0].Display)
}

func TestGeocodeEndpoint(t *testing.T) {
	geocoder := &fakeGeocoder{
		result: &places.GeocodingResult{
			Point:       searchCenter,
			Confidence:  "high",
			Provider:    "google_maps",
			DisplayName: "Somewhere, KS",
		},
	}

	router := setupServerTest(&fakeGateway{}, geocoder)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/geocode?address=somewhere", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result places.GeocodingResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Somewhere, KS", result.DisplayName)
}

func TestGeocodeEndpointRequiresAddress(t *testing.T) {
	router := setupServerTest(&fakeGateway{}, &fakeGeocoder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/geocode", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEndpointWithCoordinates(t *testing.T) {
	gateway := &fakeGateway{
		responses: map[string][]places.Place{
			"doctor": {
				{
					ID:    "clinic-1",
					Name:  "Children's Developmental Pediatrics Clinic",
					Point: pointAtMiles(3.2),
					Types: []string{"doctor"},
				},
			},
		},
	}

	router := setupServerTest(gateway, &fakeGeocoder{})

	body, _ := json.Marshal(map[string]any{
		"center":       map[string]float64{"lat": searchCenter.Lat, "lng": searchCenter.Lng},
		"radius_miles": 10,
		"categories":   []string{"medical"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/resources/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var report SearchReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Len(t, report.Results, 1)
	assert.Equal(t, "clinic-1", report.Results[0].PlaceID)
	assert.Equal(t, 2, report.QueriesAttempted)
}

func TestSearchEndpointGeocodesAddress(t *testing.T) {
	geocoder := &fakeGeocoder{
		result: &places.GeocodingResult{Point: searchCenter},
	}

	gateway := &fakeGateway{
		responses: map[string][]places.Place{
			"doctor": {
				{
					ID:    "clinic-1",
					Name:  "Pediatric Clinic",
					Point: pointAtMiles(2.0),
					Types: []string{"doctor"},
				},
			},
		},
	}

	router := setupServerTest(gateway, geocoder)

	body, _ := json.Marshal(map[string]any{
		"address":      "100 Main St, Anytown",
		"radius_miles": 10,
		"categories":   []string{"medical"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/resources/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var report SearchReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Len(t, report.Results, 1)
}

func TestSearchEndpointRejectsMissingLocation(t *testing.T) {
	router := setupServerTest(&fakeGateway{}, &fakeGeocoder{})

	body, _ := json.Marshal(map[string]any{
		"radius_miles": 10,
		"categories":   []string{"medical"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/resources/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEndpointRejectsInvalidFilters(t *testing.T) {
	router := setupServerTest(&fakeGateway{}, &fakeGeocoder{})

	body, _ := json.Marshal(map[string]any{
		"center":       map[string]float64{"lat": 39, "lng": -98},
		"radius_miles": 10,
		"categories":   []string{},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/resources/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEndpointGeocoderFailure(t *testing.T) {
	geocoder := &fakeGeocoder{err: errors.New("geocoder down")}
	router := setupServerTest(&fakeGateway{}, geocoder)

	body, _ := json.Marshal(map[string]any{
		"address":      "somewhere",
		"radius_miles": 10,
		"categories":   []string{"medical"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/resources/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
