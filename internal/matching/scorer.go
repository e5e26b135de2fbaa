package matching

import (
	"strings"

	"github.com/spanapp/span-backend/internal/domain"
)

// Fixed factor weights for the combined static score. They sum to 1.0, so
// the combined score stays in [0, 1] as long as every sub-score does.
const (
	weightTags        = 0.30
	weightIntent      = 0.20
	weightValues      = 0.15
	weightAge         = 0.12
	weightDistance    = 0.12
	weightPersonality = 0.06
	weightBio         = 0.05
)

// ageFalloffYears is the age gap at which the age sub-score reaches zero.
const ageFalloffYears = 15.0

// Breakdown carries the per-factor sub-scores behind one static score.
type Breakdown struct {
	Tags        float64 `json:"tags"`
	Age         float64 `json:"age"`
	Distance    float64 `json:"distance"`
	Personality float64 `json:"personality"`
	Intent      float64 `json:"intent"`
	Values      float64 `json:"values"`
	Bio         float64 `json:"bio"`
	Static      float64 `json:"static"`
}

// StaticScore computes the preference-only compatibility score in [0, 1].
func StaticScore(candidate *domain.CandidateProfile, prefs *domain.UserPreferences) float64 {
	return ScoreBreakdown(candidate, prefs).Static
}

// ScoreBreakdown computes all seven sub-scores and their weighted
// combination. Deterministic for fixed inputs.
func ScoreBreakdown(candidate *domain.CandidateProfile, prefs *domain.UserPreferences) Breakdown {
	b := Breakdown{
		Tags:        tagScore(candidate.Tags, prefs.Tags),
		Age:         ageScore(candidate.Age, prefs.Age),
		Distance:    distanceScore(candidate.DistanceKm, prefs.MaxDistanceKm),
		Personality: personalityScore(candidate.PersonalityType, prefs.PersonalityType),
		Intent:      intentScore(candidate.Intent, prefs.Intent),
		Values:      valuesScore(candidate, prefs),
		Bio:         bioScore(candidate.Bio),
	}
	b.Static = b.Tags*weightTags +
		b.Intent*weightIntent +
		b.Values*weightValues +
		b.Age*weightAge +
		b.Distance*weightDistance +
		b.Personality*weightPersonality +
		b.Bio*weightBio
	return b
}

// tagScore is the case-insensitive overlap over the larger tag set.
func tagScore(candidateTags, userTags []string) float64 {
	userSet := make(map[string]struct{}, len(userTags))
	for _, t := range userTags {
		userSet[strings.ToLower(t)] = struct{}{}
	}

	overlap := 0
	for _, t := range candidateTags {
		if _, ok := userSet[strings.ToLower(t)]; ok {
			overlap++
		}
	}

	maxTags := len(userSet)
	if len(candidateTags) > maxTags {
		maxTags = len(candidateTags)
	}
	if maxTags < 1 {
		maxTags = 1
	}
	return float64(overlap) / float64(maxTags)
}

// ageScore falls off linearly, reaching zero at a 15-year gap.
func ageScore(candidateAge, prefAge int) float64 {
	diff := candidateAge - prefAge
	if diff < 0 {
		diff = -diff
	}
	score := 1.0 - float64(diff)/ageFalloffYears
	if score < 0 {
		return 0
	}
	return score
}

// distanceScore decays linearly inside the preference radius and cuts hard
// to zero beyond it.
func distanceScore(distanceKm, maxDistanceKm float64) float64 {
	if maxDistanceKm <= 0 || distanceKm > maxDistanceKm {
		return 0
	}
	score := 1.0 - distanceKm/maxDistanceKm
	if score < 0 {
		return 0
	}
	return score
}

// personalityScore gives full credit for a curated pairing and otherwise
// partial credit per position-wise shared letter of the two codes.
func personalityScore(candidateType, userType string) float64 {
	for _, t := range personalityCompat[userType] {
		if t == candidateType {
			return 1.0
		}
	}
	shared := 0
	for i := 0; i < len(userType) && i < len(candidateType) && i < 4; i++ {
		if userType[i] == candidateType[i] {
			shared++
		}
	}
	return float64(shared) / 4.0
}

// intentScore: exact match 1.0, listed-compatible 0.6, anything else 0.1.
func intentScore(candidateIntent, userIntent domain.RelationshipIntent) float64 {
	if candidateIntent == userIntent {
		return 1.0
	}
	for _, i := range intentCompat[userIntent] {
		if i == candidateIntent {
			return 0.6
		}
	}
	return 0.1
}

// valuesScore combines exclusivity, desired-children, and substance-use
// agreement. Exclusivity carries the heaviest weight: a monogamy mismatch
// is the dominant lifestyle friction factor.
func valuesScore(candidate *domain.CandidateProfile, prefs *domain.UserPreferences) float64 {
	const totalWeight = 3.0

	exclusivity := 0.0
	switch {
	case candidate.Exclusivity == prefs.Exclusivity:
		exclusivity = 1.0
	case candidate.Exclusivity == domain.OpenExclusivity || prefs.Exclusivity == domain.OpenExclusivity:
		exclusivity = 0.5
	}

	kids := 0.0
	switch {
	case candidate.WantsKids == prefs.WantsKids:
		kids = 1.0
	case candidate.WantsKids == domain.ChildrenMaybe || prefs.WantsKids == domain.ChildrenMaybe:
		kids = 0.5
	}

	substances := 0.0
	if candidate.Smoker == prefs.Smoker {
		substances += 0.3
	}
	if candidate.UsesCannabis == prefs.UsesCannabis {
		substances += 0.2
	}

	return (exclusivity*1.5 + kids*1.0 + substances) / totalWeight
}

// bioScore is a step function of bio length, rewarding profile investment.
func bioScore(bio string) float64 {
	switch n := len(bio); {
	case n < 20:
		return 0.2
	case n < 50:
		return 0.5
	case n < 120:
		return 0.8
	default:
		return 1.0
	}
}
