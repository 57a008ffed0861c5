// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/nearcare/nearcare/places"
	"github.com/nearcare/nearcare/resources"
	"github.com/spf13/cobra"
)

const (
	catalogDBFile   = "nearcare.duckdb"
	catalogSeedFile = "catalog.json"

	// adcKeyDisplayName is the display name of the Maps key looked up
	// via Application Default Credentials when no key is configured.
	adcKeyDisplayName = "NearCare Maps Key"
)

var serveOptions struct {
	Listen string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the resource search HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, repo, err := openCatalog()
		if err != nil {
			return err
		}
		defer db.Close()

		aggregator, geocoder, err := buildEngine(cmd.Context(), repo)
		if err != nil {
			return err
		}

		server := resources.NewServer(aggregator, geocoder)

		log.Printf("Resource search server listening on %s", serveOptions.Listen)

		return server.Run(serveOptions.Listen)
	},
}

// openCatalog opens (or creates) the curated catalog database and seeds
// it from the bundled JSON file on first run.
func openCatalog() (*sql.DB, resources.CatalogRepository, error) {
	if err := os.MkdirAll(rootOptions.DataPath, 0o750); err != nil {
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbpath := filepath.Join(rootOptions.DataPath, catalogDBFile)

	db, err := sql.Open("duckdb", dbpath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening catalog database: %w", err)
	}

	repo := resources.NewCatalogRepository(db)
	if err := repo.CreateSchema(); err != nil {
		_ = db.Close()

		return nil, nil, fmt.Errorf("creating catalog schema: %w", err)
	}

	seeded, count, err := resources.SeedIfEmpty(repo, filepath.Join(rootOptions.DataPath, catalogSeedFile))
	if err != nil {
		_ = db.Close()

		return nil, nil, fmt.Errorf("seeding catalog: %w", err)
	}

	if seeded {
		log.Printf("Seeded curated catalog with %d entries", count)
	} else {
		log.Printf("Curated catalog holds %d entries", count)
	}

	return db, repo, nil
}

// buildEngine wires the provider client, geocoder, and aggregator from
// the shared command-line options.
func buildEngine(ctx context.Context, catalog resources.CatalogSource) (*resources.Aggregator, places.Geocoder, error) {
	apiKey, err := places.ResolveAPIKey(ctx, rootOptions.APIKey, adcKeyDisplayName)
	if err != nil {
		return nil, nil, err
	}

	client := places.NewClient(&places.ClientOptions{
		APIKey:              apiKey,
		UserAgent:           "nearcare/" + Version,
		EnableHTTPTrace:     rootOptions.EnableHTTPTrace,
		EnableHTTPBodyTrace: rootOptions.EnableHTTPBodyTrace,
	})

	aggregator := resources.NewAggregator(client, &resources.AggregatorOptions{
		Catalog: catalog,
	})

	geocoder := places.NewGoogleMapsGeocoder(apiKey, rootOptions.Region)

	return aggregator, geocoder, nil
}

func init() {
	serveCmd.Flags().StringVar(&serveOptions.Listen, "listen", "localhost:8080", "address to listen on")

	rootCmd.AddCommand(serveCmd)
}
