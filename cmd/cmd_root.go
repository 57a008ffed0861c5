// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

// rootOptions are shared by every subcommand.
var rootOptions struct {
	// DataPath is the directory holding the curated catalog database.
	DataPath string

	// APIKey is the Google Maps Platform key. Falls back to the
	// GOOGLE_MAPS_API_KEY environment variable, then to ADC lookup.
	APIKey string

	// Region biases geocoding of ambiguous addresses.
	Region string

	// Enables light tracing of provider HTTP traffic.
	EnableHTTPTrace bool

	// Enables full HTTP body tracing.
	EnableHTTPBodyTrace bool
}

var rootCmd = &cobra.Command{
	Use:   "nearcare",
	Short: "find disability-support resources near a location",
	Long: `
nearcare locates medical, therapy, education, support, and recreation
resources for people with developmental disabilities near an address,
combining a live places index with a curated local catalog.
`,
}

var Version = "dev"

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOptions.DataPath, "data", "data", "directory for the curated catalog database")
	rootCmd.PersistentFlags().StringVar(&rootOptions.APIKey, "api-key", "", "Google Maps Platform API key (defaults to $GOOGLE_MAPS_API_KEY, then ADC)")
	rootCmd.PersistentFlags().StringVar(&rootOptions.Region, "region", "us", "region code biasing geocoding of ambiguous addresses")
	rootCmd.PersistentFlags().BoolVar(&rootOptions.EnableHTTPTrace, "http-trace", false, "trace provider HTTP requests to stderr")
	rootCmd.PersistentFlags().BoolVar(&rootOptions.EnableHTTPBodyTrace, "http-body-trace", false, "include bodies in the HTTP trace")
}

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
