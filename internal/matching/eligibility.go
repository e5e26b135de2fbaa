package matching

import "github.com/spanapp/span-backend/internal/domain"

// IsEligible reports whether the candidate passes the mutual orientation
// gate: the user must be looking for the candidate's gender and the
// candidate must be looking for the user's. A hard boolean — ineligible
// candidates never reach scoring.
func IsEligible(candidate *domain.CandidateProfile, prefs *domain.UserPreferences) bool {
	return containsGender(prefs.LookingFor, candidate.Gender) &&
		containsGender(candidate.LookingFor, prefs.Gender)
}

func containsGender(lookingFor []string, gender string) bool {
	for _, g := range lookingFor {
		if g == gender {
			return true
		}
	}
	return false
}
