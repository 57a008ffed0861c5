// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package places is the boundary with the Google Places index: it maps
// abstract resource categories to provider queries, issues bounded
// text searches, and normalizes the raw records into a common shape.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/nearcare/nearcare/spatial"
	"github.com/nearcare/nearcare/utils/httputils"
	"github.com/nearcare/nearcare/utils/textutils"
)

// MaxRadiusMeters is the largest search bias radius the provider accepts.
// Requests for a wider area are clamped; the exact mile filter happens
// downstream in the aggregator.
const MaxRadiusMeters = 25000

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Place is a normalized provider record for a single point of interest.
type Place struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Address  string        `json:"address"`
	Point    spatial.Point `json:"point"`
	Rating   *float64      `json:"rating,omitempty"`
	Price    *int          `json:"price_level,omitempty"`
	OpenNow  *bool         `json:"open_now,omitempty"`
	Phone    string        `json:"phone,omitempty"`
	Website  string        `json:"website,omitempty"`
	PhotoURL string        `json:"photo_url,omitempty"`
	Types    []string      `json:"types"`
}

// ClientOptions configuration for the places Client.
type ClientOptions struct {
	// APIKey is the Google Maps Platform key. Required.
	APIKey string

	// BaseURL overrides the provider endpoint, used by tests.
	BaseURL string

	// UserAgent is the User-Agent header to use in HTTP requests.
	UserAgent string

	// Enables light tracing of HTTP requests and responses.
	EnableHTTPTrace bool

	// Enables full HTTP body tracing.
	EnableHTTPBodyTrace bool

	// Timeout for a single provider call. Defaults to 10s.
	Timeout time.Duration
}

// Client issues text searches against the Google Places API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a places client with the provided options.
func NewClient(options *ClientOptions) *Client {
	if options == nil {
		options = &ClientOptions{}
	}

	var httpLogWriter io.Writer
	if options.EnableHTTPTrace {
		httpLogWriter = os.Stderr
	}

	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   4,
		MaxConnsPerHost:       4,
		IdleConnTimeout:       30 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
	}

	loggingTransport := &httputils.LoggingRoundTripper{
		Writer:    httpLogWriter,
		DumpBody:  options.EnableHTTPBodyTrace,
		Transport: transport,
	}

	userAgent := "nearcare/unknown"
	if options.UserAgent != "" {
		userAgent = options.UserAgent
	}

	headerTransport := &httputils.AppendRequestHeadersRoundTripper{
		Headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "application/json",
		},
		Transport: loggingTransport,
	}

	timeout := options.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey:  options.APIKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   timeout,
			Transport: headerTransport,
		},
	}
}

// textSearchResponse mirrors the provider's JSON envelope.
type textSearchResponse struct {
	Results []struct {
		PlaceID          string `json:"place_id"`
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Rating               *float64 `json:"rating"`
		PriceLevel           *int     `json:"price_level"`
		FormattedPhoneNumber string   `json:"formatted_phone_number"`
		Website              string   `json:"website"`
		Types                []string `json:"types"`
		OpeningHours         *struct {
			OpenNow *bool `json:"open_now"`
		} `json:"opening_hours"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
	Status       string `json:"status"` // OK, ZERO_RESULTS, OVER_QUERY_LIMIT, ...
	ErrorMessage string `json:"error_message"`
}

// Search issues one bounded text search for a place type. Zero matches is
// a normal empty success; any non-success provider status or transport
// failure is reported as a *ProviderError.
func (c *Client) Search(ctx context.Context, center spatial.Point, radiusMeters int, placeType, phrase string) ([]Place, error) {
	if radiusMeters <= 0 || radiusMeters > MaxRadiusMeters {
		radiusMeters = MaxRadiusMeters
	}

	params := url.Values{}
	params.Set("query", phrase)
	params.Set("location", fmt.Sprintf("%f,%f", center.Lat, center.Lng))
	params.Set("radius", strconv.Itoa(radiusMeters))
	params.Set("type", placeType)
	params.Set("key", c.apiKey)

	reqURL := c.baseURL + "/textsearch/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &ProviderError{
			Kind:    ErrorKindInvalidRequest,
			Message: "creating search request",
			Err:     err,
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		kind := ErrorKindNetwork
		if errors.Is(err, context.DeadlineExceeded) {
			kind = ErrorKindTimeout
		}

		return nil, &ProviderError{
			Kind:    kind,
			Message: "search request failed",
			Err:     err,
		}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ClassifyHTTPStatus(resp.StatusCode)
	}

	var searchResp textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, &ProviderError{
			Kind:    ErrorKindUnknown,
			Message: "decoding search response",
			Err:     err,
		}
	}

	switch searchResp.Status {
	case "OK":
		// fall through to normalization
	case "ZERO_RESULTS":
		return []Place{}, nil
	default:
		return nil, ClassifyProviderStatus(searchResp.Status, searchResp.ErrorMessage)
	}

	records := make([]Place, 0, len(searchResp.Results))

	for _, result := range searchResp.Results {
		point := spatial.Point{
			Lat: result.Geometry.Location.Lat,
			Lng: result.Geometry.Location.Lng,
		}

		id := result.PlaceID
		if id == "" {
			id = synthesizeID(result.Name, point)
		}

		record := Place{
			ID:      id,
			Name:    result.Name,
			Address: result.FormattedAddress,
			Point:   point,
			Rating:  result.Rating,
			Price:   result.PriceLevel,
			Phone:   result.FormattedPhoneNumber,
			Website: result.Website,
			Types:   result.Types,
		}

		if result.OpeningHours != nil {
			record.OpenNow = result.OpeningHours.OpenNow
		}

		if len(result.Photos) > 0 && result.Photos[0].PhotoReference != "" {
			record.PhotoURL = c.photoURL(result.Photos[0].PhotoReference)
		}

		records = append(records, record)
	}

	return records, nil
}

// photoURL builds a fetchable URL for the first photo of a result.
func (c *Client) photoURL(reference string) string {
	params := url.Values{}
	params.Set("maxwidth", "400")
	params.Set("photoreference", reference)
	params.Set("key", c.apiKey)

	return c.baseURL + "/photo?" + params.Encode()
}

// synthesizeID builds a stable identifier for records the provider
// returned without a place id, so deduplication still works.
func synthesizeID(name string, point spatial.Point) string {
	return fmt.Sprintf("synthetic:%s:%.5f:%.5f", textutils.LowerASCIIFolding(name), point.Lat, point.Lng)
}
