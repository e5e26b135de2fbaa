package matching

import (
	"strings"

	"github.com/spanapp/span-backend/internal/domain"
)

// Filter keeps candidates inside the distance radius, optionally narrowed
// by a free-text query over tags, name, bio, and personality code.
func Filter(candidates []*domain.CandidateProfile, maxDistanceKm float64, query string) []*domain.CandidateProfile {
	results := make([]*domain.CandidateProfile, 0, len(candidates))
	for _, c := range candidates {
		if c.DistanceKm <= maxDistanceKm {
			results = append(results, c)
		}
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return results
	}

	matched := results[:0]
	for _, c := range results {
		if matchesQuery(c, q) {
			matched = append(matched, c)
		}
	}
	return matched
}

func matchesQuery(c *domain.CandidateProfile, q string) bool {
	for _, t := range c.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Bio), q) ||
		strings.Contains(strings.ToLower(c.PersonalityType), q)
}
