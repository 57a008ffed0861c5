// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package resources implements the aggregation and ranking engine: it
// turns a location, radius, and category list into a deduplicated,
// proximity-ordered list of at most MaxResults relevant places.
package resources

import (
	"errors"

	"github.com/nearcare/nearcare/places"
	"github.com/nearcare/nearcare/spatial"
)

// MaxResults bounds the final result list.
const MaxResults = 10

// Provenance tags for results.
const (
	SourceProvider = "places-provider"
	SourceCurated  = "curated"
)

// Errors returned for caller-level precondition violations. Provider-side
// failures never surface as errors; they degrade to a partial result.
var (
	ErrNoCategories  = errors.New("at least one category is required")
	ErrInvalidRadius = errors.New("radius must be a positive number of miles")
)

// SearchFilters is the immutable per-call input.
type SearchFilters struct {
	Center      spatial.Point     `json:"center"`
	RadiusMiles float64           `json:"radius_miles"`
	Categories  []places.Category `json:"categories"`

	// Keyword is optional free text appended to every provider query.
	Keyword string `json:"keyword,omitempty"`
}

// Validate checks caller-level preconditions.
func (f *SearchFilters) Validate() error {
	if len(f.Categories) == 0 {
		return ErrNoCategories
	}

	if f.RadiusMiles <= 0 {
		return ErrInvalidRadius
	}

	return nil
}

// Result is one aggregated, ranked point of interest.
type Result struct {
	PlaceID       string        `json:"place_id"`
	Name          string        `json:"name"`
	Category      string        `json:"category"` // human-readable, from the requested category
	Address       string        `json:"address"`
	Point         spatial.Point `json:"point"`
	DistanceMiles float64       `json:"distance_miles"` // always computed by the engine, never provider-supplied
	Rating        *float64      `json:"rating,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Website       string        `json:"website,omitempty"`
	PhotoURL      string        `json:"photo_url,omitempty"`
	Source        string        `json:"source"`

	// score is the relevance score at evaluation time; it orders a batch
	// before the final distance sort and never leaves the engine.
	score int
}

// QueryFailure records one failed (category, place type) combination.
type QueryFailure struct {
	Category  places.Category `json:"category"`
	PlaceType string          `json:"place_type"`
	Err       error           `json:"-"`
	Message   string          `json:"message"`
}

// SearchReport is the outcome of one search: the ranked results plus
// enough diagnostics to tell "nothing nearby" apart from "every provider
// query failed".
type SearchReport struct {
	Results          []Result       `json:"results"`
	Failures         []QueryFailure `json:"failures,omitempty"`
	QueriesAttempted int            `json:"queries_attempted"`
}

// AllQueriesFailed reports whether no provider query succeeded.
func (r *SearchReport) AllQueriesFailed() bool {
	return r.QueriesAttempted > 0 && len(r.Failures) == r.QueriesAttempted
}
