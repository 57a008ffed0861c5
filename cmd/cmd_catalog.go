// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nearcare/nearcare/resources"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the curated resource catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <seed-file>",
	Short: "Import curated entries from a JSON seed file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		db, repo, err := openCatalog()
		if err != nil {
			return err
		}
		defer db.Close()

		seed, err := resources.LoadSeed(args[0])
		if err != nil {
			return err
		}

		n := len(seed.Entries)

		var bar *progressbar.ProgressBar
		if isatty.IsTerminal(os.Stderr.Fd()) {
			bar = progressbar.NewOptions(n,
				progressbar.OptionSetDescription("Importing catalog"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		const batchSize = 200

		for start := 0; start < n; start += batchSize {
			end := min(start+batchSize, n)

			if err := repo.BulkInsertEntries(seed.Entries[start:end]); err != nil {
				return fmt.Errorf("importing entries %d-%d: %w", start, end, err)
			}

			if bar != nil {
				_ = bar.Add(end - start)
			}
		}

		log.Printf("Imported %d curated entries from %s", n, args[0])

		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export <seed-file>",
	Short: "Export the curated catalog to a JSON seed file",
	Long:  `Exports all curated entries to a local JSON file. The file is sorted to minimize diffs when checking into version control.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		db, repo, err := openCatalog()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := resources.ExportToJSON(repo, args[0]); err != nil {
			return err
		}

		count, err := repo.CountEntries()
		if err != nil {
			return err
		}

		log.Printf("Exported %d curated entries to %s", count, args[0])

		return nil
	},
}

var catalogCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of curated entries",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		db, repo, err := openCatalog()
		if err != nil {
			return err
		}
		defer db.Close()

		count, err := repo.CountEntries()
		if err != nil {
			return err
		}

		fmt.Println(count)

		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogCountCmd)
	rootCmd.AddCommand(catalogCmd)
}
