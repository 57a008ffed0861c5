// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package resources

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// SeedData represents the JSON catalog seed file format.
type SeedData struct {
	Version     string          `json:"version"`
	LastUpdated time.Time       `json:"last_updated"`
	Entries     []*CatalogEntry `json:"entries"`
}

// LoadSeed reads a catalog seed file.
func LoadSeed(filepath string) (*SeedData, error) {
	data, err := os.ReadFile(filepath) // #nosec G304 - filepath is provided by admin
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var seed SeedData
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	return &seed, nil
}

// ExportToJSON exports all catalog entries to a JSON file. Entries are
// sorted to minimize diffs when the file is checked into version control.
func ExportToJSON(repo CatalogRepository, filepath string) error {
	entries, err := repo.ListEntries()
	if err != nil {
		return fmt.Errorf("listing catalog entries: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})

	seed := &SeedData{
		Version:     "1.0",
		LastUpdated: time.Now(),
		Entries:     entries,
	}

	data, err := json.MarshalIndent(seed, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}

	err = os.WriteFile(filepath, data, 0o600)
	if err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}

// ImportFromJSON imports catalog entries from a seed file.
func ImportFromJSON(repo CatalogRepository, filepath string) (int, error) {
	seed, err := LoadSeed(filepath)
	if err != nil {
		return 0, err
	}

	if err := repo.BulkInsertEntries(seed.Entries); err != nil {
		return 0, fmt.Errorf("inserting entries: %w", err)
	}

	return len(seed.Entries), nil
}

// SeedIfEmpty seeds the catalog from a JSON file if it has no entries.
func SeedIfEmpty(repo CatalogRepository, filepath string) (bool, int, error) {
	count, err := repo.CountEntries()
	if err != nil {
		return false, 0, fmt.Errorf("counting catalog entries: %w", err)
	}

	if count > 0 {
		return false, count, nil
	}

	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		// No seed file exists, that's okay
		return false, 0, nil
	}

	imported, err := ImportFromJSON(repo, filepath)
	if err != nil {
		return false, 0, err
	}

	return true, imported, nil
}
