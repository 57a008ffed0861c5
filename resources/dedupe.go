// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package resources

// Dedupe collapses records referring to the same place. First occurrence
// wins entirely; no field merging. The same physical place is frequently
// returned by more than one place-type query within a category (a
// children's hospital satisfies both doctor and hospital queries).
func Dedupe(results []Result) []Result {
	seen := make(map[string]bool, len(results))
	deduped := make([]Result, 0, len(results))

	for _, result := range results {
		if seen[result.PlaceID] {
			continue
		}

		seen[result.PlaceID] = true
		deduped = append(deduped, result)
	}

	return deduped
}
