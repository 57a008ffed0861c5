// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package places

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nearcare/nearcare/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okResponse = `{
	"status": "OK",
	"results": [
		{
			"place_id": "place-42",
			"name": "Children's Developmental Pediatrics Clinic",
			"formatted_address": "123 Main St, Anytown",
			"geometry": {"location": {"lat": 39.0463, "lng": -98.0}},
			"rating": 4.7,
			"types": ["doctor", "health"],
			"opening_hours": {"open_now": true},
			"photos": [{"photo_reference": "ref-1"}]
		},
		{
			"name": "Unlisted Family Resource Center",
			"formatted_address": "9 Elm St, Anytown",
			"geometry": {"location": {"lat": 39.01, "lng": -98.01}},
			"types": ["establishment"]
		}
	]
}`

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)

	client := NewClient(&ClientOptions{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})

	return client, server
}

func TestSearchNormalizesRecords(t *testing.T) {
	var gotQuery, gotRadius, gotType string

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/textsearch/json", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotRadius = r.URL.Query().Get("radius")
		gotType = r.URL.Query().Get("type")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(okResponse))
	})
	defer server.Close()

	center := spatial.Point{Lat: 39.0, Lng: -98.0}

	records, err := client.Search(context.Background(), center, 16093, "doctor", "developmental pediatrics")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "developmental pediatrics", gotQuery)
	assert.Equal(t, "16093", gotRadius)
	assert.Equal(t, "doctor", gotType)

	clinic := records[0]
	assert.Equal(t, "place-42", clinic.ID)
	assert.Equal(t, "Children's Developmental Pediatrics Clinic", clinic.Name)
	assert.Equal(t, "123 Main St, Anytown", clinic.Address)
	assert.InDelta(t, 39.0463, clinic.Point.Lat, 1e-9)
	require.NotNil(t, clinic.Rating)
	assert.InDelta(t, 4.7, *clinic.Rating, 1e-9)
	require.NotNil(t, clinic.OpenNow)
	assert.True(t, *clinic.OpenNow)
	assert.Contains(t, clinic.PhotoURL, "/photo?")
	assert.Contains(t, clinic.PhotoURL, "photoreference=ref-1")

	// Missing place_id gets a synthetic, stable identifier
	unlisted := records[1]
	assert.Equal(t, "synthetic:unlisted family resource center:39.01000:-98.01000", unlisted.ID)
	assert.Nil(t, unlisted.Rating)
	assert.Nil(t, unlisted.OpenNow)
	assert.Empty(t, unlisted.PhotoURL)
}

func TestSearchClampsRadius(t *testing.T) {
	var gotRadius string

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotRadius = r.URL.Query().Get("radius")
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})
	defer server.Close()

	_, err := client.Search(context.Background(), spatial.Point{}, 80000, "doctor", "x")
	require.NoError(t, err)
	assert.Equal(t, "25000", gotRadius)

	_, err = client.Search(context.Background(), spatial.Point{}, 0, "doctor", "x")
	require.NoError(t, err)
	assert.Equal(t, "25000", gotRadius)
}

func TestSearchZeroResultsIsEmptySuccess(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})
	defer server.Close()

	records, err := client.Search(context.Background(), spatial.Point{}, 1000, "doctor", "x")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestSearchProviderStatusError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OVER_QUERY_LIMIT", "error_message": "daily quota exceeded", "results": []}`))
	})
	defer server.Close()

	_, err := client.Search(context.Background(), spatial.Point{}, 1000, "doctor", "x")
	require.Error(t, err)

	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "OVER_QUERY_LIMIT", provErr.Status)
	assert.Equal(t, ErrorKindQuotaExceeded, provErr.Kind)
	assert.Contains(t, provErr.Error(), "daily quota exceeded")
}

func TestSearchHTTPError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer server.Close()

	_, err := client.Search(context.Background(), spatial.Point{}, 1000, "doctor", "x")
	require.Error(t, err)
	assert.True(t, IsRateLimitError(err))
}

func TestSearchMalformedResponse(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OK", "results": [`))
	})
	defer server.Close()

	_, err := client.Search(context.Background(), spatial.Point{}, 1000, "doctor", "x")
	require.Error(t, err)

	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.True(t, strings.Contains(provErr.Error(), "decoding"))
}

func TestSearchTransportError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server.Close() // closed before use: connection refused

	_, err := client.Search(context.Background(), spatial.Point{}, 1000, "doctor", "x")
	require.Error(t, err)

	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, ErrorKindNetwork, provErr.Kind)
}
