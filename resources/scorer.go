// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package resources

import (
	"strings"

	"github.com/nearcare/nearcare/utils/textutils"
)

// scoreRule awards points when a folded name contains the term.
type scoreRule struct {
	term   string
	points int
}

// nameRules reward names that signal disability-support services. The
// "developmental disabilit" stem matches both the singular and plural.
var nameRules = []scoreRule{
	{"down syndrome", 10},
	{"developmental disabilit", 10},
	{"special needs", 8},
	{"inclusion", 8},
	{"adaptive", 6},
	{"therapeutic", 6},
	{"children", 4},
	{"pediatric", 4},
}

// typeRules reward provider type tags associated with care, schooling,
// and community settings.
var typeRules = []scoreRule{
	{"health", 3},
	{"doctor", 3},
	{"hospital", 3},
	{"school", 3},
	{"education", 3},
	{"community", 2},
}

// typePenalties push down tags that signal drive-by commerce rather than
// services.
var typePenalties = []scoreRule{
	{"gas_station", -5},
	{"convenience_store", -5},
}

// nameDenylist penalizes generic commercial chains that match the broad
// provider queries but are never the resource being looked for.
var nameDenylist = []scoreRule{
	{"planet fitness", -10},
	{"anytime fitness", -8},
	{"la fitness", -8},
	{"gold's gym", -8},
	{"24 hour fitness", -8},
	{"mcdonald", -10},
	{"burger king", -10},
	{"kfc", -8},
	{"taco bell", -8},
	{"subway", -5},
	{"starbucks", -5},
	{"walmart", -8},
	{"7-eleven", -5},
}

// Score assigns an integer relevance score to a place from its name and
// type tags. A record is relevant iff the score is strictly positive.
// Ties are broken later by distance only.
func Score(name string, types []string) int {
	foldedName := textutils.LowerASCIIFolding(name)
	foldedTypes := textutils.LowerASCIIFolding(strings.Join(types, " "))

	score := 0

	for _, rule := range nameRules {
		if strings.Contains(foldedName, rule.term) {
			score += rule.points
		}
	}

	for _, rule := range typeRules {
		if strings.Contains(foldedTypes, rule.term) {
			score += rule.points
		}
	}

	for _, rule := range typePenalties {
		if strings.Contains(foldedTypes, rule.term) {
			score += rule.points
		}
	}

	for _, rule := range nameDenylist {
		if strings.Contains(foldedName, rule.term) {
			score += rule.points
		}
	}

	return score
}
