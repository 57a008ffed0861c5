// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package places

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Category is an abstract resource category requested by the caller. The
// set is closed; anything else is treated as CategoryOther.
type Category string

const (
	CategoryMedical    Category = "medical"
	CategoryTherapy    Category = "therapy"
	CategoryEducation  Category = "education"
	CategorySupport    Category = "support"
	CategoryRecreation Category = "recreation"
	CategoryOther      Category = "other"
)

// Categories lists all known categories in presentation order.
func Categories() []Category {
	return []Category{
		CategoryMedical,
		CategoryTherapy,
		CategoryEducation,
		CategorySupport,
		CategoryRecreation,
		CategoryOther,
	}
}

// displayNames maps a category to the human-readable label shown to users.
var displayNames = map[Category]string{
	CategoryMedical:    "Medical Care",
	CategoryTherapy:    "Therapy Services",
	CategoryEducation:  "Education",
	CategorySupport:    "Support Groups",
	CategoryRecreation: "Recreation",
	CategoryOther:      "Other Resources",
}

// Display returns the human-readable label for the category.
func (c Category) Display() string {
	if name, ok := displayNames[c]; ok {
		return name
	}

	return displayNames[CategoryOther]
}

// ParseCategory normalizes a user-supplied category string.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryMedical:
		return CategoryMedical
	case CategoryTherapy:
		return CategoryTherapy
	case CategoryEducation:
		return CategoryEducation
	case CategorySupport:
		return CategorySupport
	case CategoryRecreation:
		return CategoryRecreation
	default:
		return CategoryOther
	}
}

// CategoryConfig maps categories to provider place types and place types
// to domain-biased search phrases. The tables are data, not logic: the
// defaults are tuned for Down syndrome / developmental disability
// services, a deployment for another population overrides them from a
// JSON file.
type CategoryConfig struct {
	// Types maps a category to 1-2 provider place-type tokens.
	Types map[Category][]string `json:"types"`

	// Phrases maps a provider place type to the free-text phrase that
	// biases the provider's search toward the supported population.
	Phrases map[string]string `json:"phrases"`
}

// DefaultCategoryConfig returns the built-in query tables.
func DefaultCategoryConfig() *CategoryConfig {
	return &CategoryConfig{
		Types: map[Category][]string{
			CategoryMedical:    {"doctor", "hospital"},
			CategoryTherapy:    {"physiotherapist", "health"},
			CategoryEducation:  {"school", "library"},
			CategorySupport:    {"establishment"},
			CategoryRecreation: {"park", "gym"},
			CategoryOther:      {"establishment"},
		},
		Phrases: map[string]string{
			"doctor":          "developmental pediatrics special needs doctor Down syndrome",
			"hospital":        "children's hospital developmental medicine Down syndrome clinic",
			"physiotherapist": "pediatric physical therapy occupational therapy special needs",
			"health":          "speech therapy early intervention developmental disabilities",
			"school":          "special education school inclusive learning Down syndrome",
			"library":         "inclusive library programs children special needs",
			"establishment":   "Down syndrome support group family resource center",
			"park":            "adaptive recreation inclusive playground special needs",
			"gym":             "adaptive sports therapeutic recreation special needs",
		},
	}
}

// LoadCategoryConfig reads query table overrides from a JSON file. Tables
// missing from the file keep their built-in defaults.
func LoadCategoryConfig(filepath string) (*CategoryConfig, error) {
	data, err := os.ReadFile(filepath) // #nosec G304 - filepath is provided by admin
	if err != nil {
		return nil, fmt.Errorf("reading category config: %w", err)
	}

	var override CategoryConfig
	if err := json.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parsing category config: %w", err)
	}

	config := DefaultCategoryConfig()
	if len(override.Types) > 0 {
		config.Types = override.Types
	}

	if len(override.Phrases) > 0 {
		config.Phrases = override.Phrases
	}

	return config, nil
}

// QueriesFor returns the provider place types to issue for a category.
// Unknown categories fall back to the CategoryOther mapping.
func (c *CategoryConfig) QueriesFor(category Category) []string {
	if types, ok := c.Types[category]; ok && len(types) > 0 {
		return types
	}

	if types, ok := c.Types[CategoryOther]; ok && len(types) > 0 {
		return types
	}

	return []string{"establishment"}
}

// SearchPhrase builds the free-text query for a place type, appending the
// caller keyword if present.
func (c *CategoryConfig) SearchPhrase(placeType, keyword string) string {
	phrase, ok := c.Phrases[placeType]
	if !ok {
		phrase = fmt.Sprintf("%s special needs developmental disabilities", placeType)
	}

	keyword = strings.TrimSpace(keyword)
	if keyword != "" {
		phrase = phrase + " " + keyword
	}

	return phrase
}
