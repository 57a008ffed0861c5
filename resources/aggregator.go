// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package resources

import (
	"context"
	"log"
	"sort"

	"github.com/nearcare/nearcare/places"
	"github.com/nearcare/nearcare/spatial"
)

// PlacesSearcher is the provider boundary the aggregator depends on.
// *places.Client satisfies it.
type PlacesSearcher interface {
	Search(ctx context.Context, center spatial.Point, radiusMeters int, placeType, phrase string) ([]places.Place, error)
}

// CatalogSource supplies curated entries near a point. *CatalogRepository
// implementations satisfy it; it is optional.
type CatalogSource interface {
	Within(center spatial.Point, radiusMiles float64, categories []places.Category) ([]CatalogEntry, error)
}

// AggregatorOptions configures an Aggregator. The zero value gets the
// default query tables, the fixed-delay pacer, and the standard result
// bound.
type AggregatorOptions struct {
	// Config holds the category-to-type and type-to-phrase tables.
	Config *places.CategoryConfig

	// Pacer spaces provider queries. Defaults to a 200ms fixed delay.
	Pacer Pacer

	// Catalog is an optional curated data source merged into results.
	Catalog CatalogSource

	// Limit bounds the final result list. Defaults to MaxResults.
	Limit int
}

// Aggregator orchestrates the per-category provider queries, filtering,
// scoring, deduplication, and ranking. It holds no per-search state;
// concurrent searches need no synchronization.
type Aggregator struct {
	gateway PlacesSearcher
	config  *places.CategoryConfig
	pacer   Pacer
	catalog CatalogSource
	limit   int
}

// NewAggregator creates an aggregator over the given provider gateway.
func NewAggregator(gateway PlacesSearcher, options *AggregatorOptions) *Aggregator {
	if options == nil {
		options = &AggregatorOptions{}
	}

	config := options.Config
	if config == nil {
		config = places.DefaultCategoryConfig()
	}

	pacer := options.Pacer
	if pacer == nil {
		pacer = NewFixedDelayPacer(DefaultQueryDelay)
	}

	limit := options.Limit
	if limit <= 0 {
		limit = MaxResults
	}

	return &Aggregator{
		gateway: gateway,
		config:  config,
		pacer:   pacer,
		catalog: options.Catalog,
		limit:   limit,
	}
}

// Search runs one full aggregation pass. Provider-side failures are
// recorded in the report and never abort the search; the only errors
// returned are caller precondition violations and context cancellation.
func (a *Aggregator) Search(ctx context.Context, filters *SearchFilters) (*SearchReport, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	// The meter clamp biases the provider query; the exact mile filter
	// below is what enforces the caller's radius.
	radiusMeters := int(filters.RadiusMiles * spatial.MetersPerMile)
	if radiusMeters > places.MaxRadiusMeters {
		radiusMeters = places.MaxRadiusMeters
	}

	report := &SearchReport{Results: []Result{}}
	first := true

	for _, category := range filters.Categories {
		for _, placeType := range a.config.QueriesFor(category) {
			if !first {
				if err := a.pacer.Wait(ctx); err != nil {
					return nil, err
				}
			}

			first = false
			report.QueriesAttempted++

			phrase := a.config.SearchPhrase(placeType, filters.Keyword)

			records, err := a.gateway.Search(ctx, filters.Center, radiusMeters, placeType, phrase)
			if err != nil {
				log.Printf("Search - query failed for %s/%s: %v", category, placeType, err)
				report.Failures = append(report.Failures, QueryFailure{
					Category:  category,
					PlaceType: placeType,
					Err:       err,
					Message:   err.Error(),
				})

				continue
			}

			batch := a.convertBatch(records, category, filters)
			report.Results = append(report.Results, batch...)
		}
	}

	if a.catalog != nil {
		report.Results = append(report.Results, a.curatedBatch(filters)...)
	}

	report.Results = Dedupe(report.Results)

	// Final presentation order is purely proximity-based; relevance
	// already gated what is in the list.
	sort.SliceStable(report.Results, func(i, j int) bool {
		return report.Results[i].DistanceMiles < report.Results[j].DistanceMiles
	})

	if len(report.Results) > a.limit {
		report.Results = report.Results[:a.limit]
	}

	return report, nil
}

// convertBatch turns raw provider records into result stubs, applies the
// exact radius and relevance filters, and orders the batch by score.
func (a *Aggregator) convertBatch(records []places.Place, category places.Category, filters *SearchFilters) []Result {
	batch := make([]Result, 0, len(records))

	for _, record := range records {
		distance := filters.Center.DistanceMiles(record.Point)
		if distance > filters.RadiusMiles {
			continue
		}

		score := Score(record.Name, record.Types)
		if score <= 0 {
			continue
		}

		batch = append(batch, Result{
			PlaceID:       record.ID,
			Name:          record.Name,
			Category:      category.Display(),
			Address:       record.Address,
			Point:         record.Point,
			DistanceMiles: distance,
			Rating:        record.Rating,
			Phone:         record.Phone,
			Website:       record.Website,
			PhotoURL:      record.PhotoURL,
			Source:        SourceProvider,
			score:         score,
		})
	}

	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].score > batch[j].score
	})

	return batch
}

// curatedBatch pulls curated catalog entries through the same distance
// and relevance gates as provider records. Catalog errors are logged and
// skipped; curated data is supplemental.
func (a *Aggregator) curatedBatch(filters *SearchFilters) []Result {
	entries, err := a.catalog.Within(filters.Center, filters.RadiusMiles, filters.Categories)
	if err != nil {
		log.Printf("Search - curated catalog query failed: %v", err)

		return nil
	}

	batch := make([]Result, 0, len(entries))

	for _, entry := range entries {
		distance := filters.Center.DistanceMiles(entry.Point)
		if distance > filters.RadiusMiles {
			continue
		}

		score := Score(entry.Name, entry.Tags)
		if score <= 0 {
			continue
		}

		batch = append(batch, Result{
			PlaceID:       entry.ID,
			Name:          entry.Name,
			Category:      entry.Category.Display(),
			Address:       entry.Address,
			Point:         entry.Point,
			DistanceMiles: distance,
			Rating:        nil,
			Phone:         entry.Phone,
			Website:       entry.Website,
			Source:        SourceCurated,
			score:         score,
		})
	}

	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].score > batch[j].score
	})

	return batch
}
