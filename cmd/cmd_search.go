// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nearcare/nearcare/places"
	"github.com/nearcare/nearcare/resources"
	"github.com/nearcare/nearcare/spatial"
	"github.com/spf13/cobra"
)

var searchOptions struct {
	Lat         float64
	Lng         float64
	RadiusMiles float64
	Categories  []string
	Keyword     string
	NoCatalog   bool
}

var searchCmd = &cobra.Command{
	Use:   "search [address]",
	Short: "Run a one-shot resource search from the command line",
	Long: `
Searches for disability-support resources near an address (or explicit
--lat/--lng coordinates) and prints the ranked results.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var catalog resources.CatalogSource

		if !searchOptions.NoCatalog {
			db, repo, err := openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()

			catalog = repo
		}

		aggregator, geocoder, err := buildEngine(cmd.Context(), catalog)
		if err != nil {
			return err
		}

		var center spatial.Point

		switch {
		case len(args) == 1:
			geocoded, err := geocoder.Geocode(args[0])
			if err != nil {
				return fmt.Errorf("geocoding %q: %w", args[0], err)
			}

			log.Printf("Geocoded %q to %s (%s confidence)", args[0], geocoded.DisplayName, geocoded.Confidence)
			center = geocoded.Point
		case cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng"):
			center = spatial.Point{Lat: searchOptions.Lat, Lng: searchOptions.Lng}
		default:
			return errors.New("an address argument or both --lat and --lng are required")
		}

		categories := make([]places.Category, 0, len(searchOptions.Categories))
		for _, category := range searchOptions.Categories {
			categories = append(categories, places.ParseCategory(category))
		}

		report, err := aggregator.Search(cmd.Context(), &resources.SearchFilters{
			Center:      center,
			RadiusMiles: searchOptions.RadiusMiles,
			Categories:  categories,
			Keyword:     searchOptions.Keyword,
		})
		if err != nil {
			return err
		}

		printReport(report)

		return nil
	},
}

func printReport(report *resources.SearchReport) {
	if len(report.Results) == 0 {
		if report.AllQueriesFailed() {
			fmt.Println("Every provider query failed; try again later.")
		} else {
			fmt.Println("No relevant resources found within the radius.")
		}

		return
	}

	for i, result := range report.Results {
		fmt.Printf("%2d. %s (%.1f mi) [%s]\n", i+1, result.Name, result.DistanceMiles, result.Category)

		if result.Address != "" {
			fmt.Printf("    %s\n", result.Address)
		}

		details := make([]string, 0, 3)
		if result.Phone != "" {
			details = append(details, result.Phone)
		}

		if result.Website != "" {
			details = append(details, result.Website)
		}

		if result.Rating != nil {
			details = append(details, fmt.Sprintf("rated %.1f", *result.Rating))
		}

		if result.Source == resources.SourceCurated {
			details = append(details, "curated")
		}

		if len(details) > 0 {
			fmt.Printf("    %s\n", strings.Join(details, " | "))
		}
	}

	if len(report.Failures) > 0 {
		log.Printf("%d of %d provider queries failed", len(report.Failures), report.QueriesAttempted)
	}
}

func init() {
	searchCmd.Flags().Float64Var(&searchOptions.Lat, "lat", 0, "latitude of the search center")
	searchCmd.Flags().Float64Var(&searchOptions.Lng, "lng", 0, "longitude of the search center")
	searchCmd.Flags().Float64VarP(&searchOptions.RadiusMiles, "radius", "r", 25, "search radius in miles")
	searchCmd.Flags().StringSliceVarP(&searchOptions.Categories, "categories", "c",
		[]string{"medical", "therapy", "education", "support", "recreation"},
		"resource categories to search")
	searchCmd.Flags().StringVarP(&searchOptions.Keyword, "keyword", "k", "", "extra keyword appended to every query")
	searchCmd.Flags().BoolVar(&searchOptions.NoCatalog, "no-catalog", false, "skip the curated local catalog")

	rootCmd.AddCommand(searchCmd)
}
