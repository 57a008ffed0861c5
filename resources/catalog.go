// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package resources

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nearcare/nearcare/places"
	"github.com/nearcare/nearcare/spatial"
	"github.com/uber/h3-go/v4"
)

// catalogH3Resolution indexes curated entries at H3 resolution 7
// (hexagons roughly 1.2km across), fine enough for neighborhood-scale
// radii and coarse enough to keep the grid-disk cover small.
const catalogH3Resolution = 7

// metersPerH3Res7Cell is a conservative lower bound on the width of a
// res-7 cell, used to size the grid-disk cover.
const metersPerH3Res7Cell = 1100

// CatalogEntry is a hand-curated resource shipped with the install, the
// "curated" provenance source merged alongside provider results.
type CatalogEntry struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category places.Category `json:"category"`
	Address  string          `json:"address"`
	Phone    string          `json:"phone,omitempty"`
	Website  string          `json:"website,omitempty"`
	Point    spatial.Point   `json:"point"`

	// Tags play the role of provider type tags for relevance scoring.
	Tags []string `json:"tags,omitempty"`

	h3Res7 int64
}

func (e *CatalogEntry) computeH3() error {
	latLng := h3.NewLatLng(e.Point.Lat, e.Point.Lng)

	cell, err := h3.LatLngToCell(latLng, catalogH3Resolution)
	if err != nil {
		return fmt.Errorf("converting to h3 cell: %w", err)
	}

	e.h3Res7 = int64(cell)

	return nil
}

// CatalogRepository handles persistence of curated catalog entries.
type CatalogRepository interface {
	// CreateSchema creates the catalog table.
	CreateSchema() error

	// BulkInsertEntries inserts a slice of entries, replacing existing ids.
	BulkInsertEntries(entries []*CatalogEntry) error

	// ListEntries returns all entries sorted by id.
	ListEntries() ([]*CatalogEntry, error)

	// CountEntries returns the total number of entries.
	CountEntries() (int, error)

	// Within returns entries inside the radius, restricted to categories.
	Within(center spatial.Point, radiusMiles float64, categories []places.Category) ([]CatalogEntry, error)
}

type sqlCatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a catalog repository over a DuckDB handle.
func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &sqlCatalogRepository{db: db}
}

func (r *sqlCatalogRepository) CreateSchema() error {
	// DuckDB needs to load the spatial extension
	_, err := r.db.Exec(`INSTALL spatial; LOAD spatial;`)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		CREATE TABLE IF NOT EXISTS catalog_entries (
			id VARCHAR PRIMARY KEY,
			name VARCHAR NOT NULL,
			category VARCHAR NOT NULL,
			address VARCHAR NOT NULL,
			phone VARCHAR,
			website VARCHAR,
			tags VARCHAR,
			point POINT_2D NOT NULL,
			h3_res7 UBIGINT NOT NULL
		);
	`)

	return err
}

func (r *sqlCatalogRepository) BulkInsertEntries(entries []*CatalogEntry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO catalog_entries (
			id, name, category, address, phone, website, tags, point, h3_res7
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ST_Point(?, ?), ?)
	`)
	if err != nil {
		if rErr := tx.Rollback(); rErr != nil {
			err = rErr
		}

		return err
	}
	defer stmt.Close()

	for _, entry := range entries {
		if entry.ID == "" {
			if rErr := tx.Rollback(); rErr != nil {
				return rErr
			}

			return errors.New("catalog entry id can't be empty")
		}

		if err = entry.computeH3(); err != nil {
			if rErr := tx.Rollback(); rErr != nil {
				return rErr
			}

			return err
		}

		_, err = stmt.Exec(
			entry.ID,
			entry.Name,
			string(entry.Category),
			entry.Address,
			entry.Phone,
			entry.Website,
			strings.Join(entry.Tags, ","),
			entry.Point.Lng,
			entry.Point.Lat,
			entry.h3Res7,
		)
		if err != nil {
			if rErr := tx.Rollback(); rErr != nil {
				err = rErr
			}

			return err
		}
	}

	return tx.Commit()
}

func (r *sqlCatalogRepository) ListEntries() ([]*CatalogEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, name, category, address, phone, website, tags, point, h3_res7
		FROM catalog_entries
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *sqlCatalogRepository) CountEntries() (int, error) {
	var count int

	err := r.db.QueryRow("SELECT COUNT(*) FROM catalog_entries").Scan(&count)

	return count, err
}

func (r *sqlCatalogRepository) Within(center spatial.Point, radiusMiles float64, categories []places.Category) ([]CatalogEntry, error) {
	cells, err := coverCells(center, radiusMiles)
	if err != nil {
		return nil, err
	}

	query := strings.Builder{}
	query.WriteString(`
		SELECT id, name, category, address, phone, website, tags, point, h3_res7
		FROM catalog_entries
		WHERE h3_res7 IN (`)

	args := make([]any, 0, len(cells)+len(categories))

	for i, cell := range cells {
		if i > 0 {
			query.WriteString(", ")
		}

		query.WriteString("?")
		args = append(args, cell)
	}

	query.WriteString(")")

	if len(categories) > 0 {
		query.WriteString(" AND category IN (")

		for i, category := range categories {
			if i > 0 {
				query.WriteString(", ")
			}

			query.WriteString("?")
			args = append(args, string(category))
		}

		query.WriteString(")")
	}

	rows, err := r.db.Query(query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}

	// The grid disk over-covers; refine with the exact distance.
	within := make([]CatalogEntry, 0, len(entries))

	for _, entry := range entries {
		if center.DistanceMiles(entry.Point) <= radiusMiles {
			within = append(within, *entry)
		}
	}

	return within, nil
}

// coverCells returns the H3 res-7 cells whose union contains the circle.
func coverCells(center spatial.Point, radiusMiles float64) ([]int64, error) {
	latLng := h3.NewLatLng(center.Lat, center.Lng)

	origin, err := h3.LatLngToCell(latLng, catalogH3Resolution)
	if err != nil {
		return nil, fmt.Errorf("converting center to h3 cell: %w", err)
	}

	k := int(radiusMiles*spatial.MetersPerMile/metersPerH3Res7Cell) + 1

	disk, err := h3.GridDisk(origin, k)
	if err != nil {
		return nil, fmt.Errorf("computing h3 grid disk: %w", err)
	}

	cells := make([]int64, len(disk))
	for i, cell := range disk {
		cells[i] = int64(cell)
	}

	return cells, nil
}

func scanEntries(rows *sql.Rows) ([]*CatalogEntry, error) {
	var entries []*CatalogEntry

	for rows.Next() {
		entry := &CatalogEntry{}

		var phone, website, tags sql.NullString

		var category string

		err := rows.Scan(
			&entry.ID,
			&entry.Name,
			&category,
			&entry.Address,
			&phone,
			&website,
			&tags,
			&entry.Point,
			&entry.h3Res7,
		)
		if err != nil {
			return nil, err
		}

		entry.Category = places.Category(category)

		if phone.Valid {
			entry.Phone = phone.String
		}

		if website.Valid {
			entry.Website = website.String
		}

		if tags.Valid && tags.String != "" {
			entry.Tags = strings.Split(tags.String, ",")
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
