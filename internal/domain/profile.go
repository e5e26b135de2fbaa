package domain

import "time"

// DesiredChildren is a profile's stated position on wanting kids.
type DesiredChildren string

const (
	ChildrenYes   DesiredChildren = "yes"
	ChildrenNo    DesiredChildren = "no"
	ChildrenMaybe DesiredChildren = "maybe"
)

// RelationshipIntent is what a profile is looking for out of a match.
type RelationshipIntent string

const (
	IntentCasual  RelationshipIntent = "casual"
	IntentSerious RelationshipIntent = "serious"
	IntentFriends RelationshipIntent = "friends"
	IntentOpen    RelationshipIntent = "open"
)

// Exclusivity is a profile's stated exclusivity preference.
type Exclusivity string

const (
	Monogamous      Exclusivity = "monogamous"
	NonMonogamous   Exclusivity = "non-monogamous"
	OpenExclusivity Exclusivity = "open"
)

// CandidateProfile is a fully loaded profile as handed to the matching core.
// The profile source normalizes missing optional fields (empty personality
// code, empty tag list) before the core ever sees the value; the core does
// no input validation of its own.
type CandidateProfile struct {
	ID              string             `json:"id" db:"id"`
	UserID          string             `json:"user_id" db:"user_id"`
	Name            string             `json:"name" db:"name"`
	Age             int                `json:"age" db:"age"`
	Bio             string             `json:"bio" db:"bio"`
	Tags            []string           `json:"tags" db:"tags"`
	Location        string             `json:"location" db:"location"`
	DistanceKm      float64            `json:"distance_km" db:"distance_km"`
	ImageURL        string             `json:"image_url" db:"image_url"`
	PersonalityType string             `json:"personality_type" db:"personality_type"`
	Smoker          bool               `json:"smoker" db:"smoker"`
	UsesCannabis    bool               `json:"uses_cannabis" db:"uses_cannabis"`
	WantsKids       DesiredChildren    `json:"wants_kids" db:"wants_kids"`
	Intent          RelationshipIntent `json:"intent" db:"intent"`
	Exclusivity     Exclusivity        `json:"exclusivity" db:"exclusivity"`
	Gender          string             `json:"gender" db:"gender"`
	LookingFor      []string           `json:"looking_for" db:"looking_for"`
	AnchorAnswer    *string            `json:"anchor_answer,omitempty" db:"anchor_answer"`

	// PrefMaxDistanceKm only carries meaning on the requesting user's own
	// profile; for candidates the loader leaves it at its default.
	PrefMaxDistanceKm float64 `json:"pref_max_distance_km" db:"pref_max_distance_km"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Preferences extracts the user's own stated values from their profile for
// use as the preference side of a ranking call.
func (p *CandidateProfile) Preferences() *UserPreferences {
	return &UserPreferences{
		Tags:            p.Tags,
		Age:             p.Age,
		MaxDistanceKm:   p.PrefMaxDistanceKm,
		PersonalityType: p.PersonalityType,
		Smoker:          p.Smoker,
		UsesCannabis:    p.UsesCannabis,
		WantsKids:       p.WantsKids,
		Intent:          p.Intent,
		Exclusivity:     p.Exclusivity,
		Gender:          p.Gender,
		LookingFor:      p.LookingFor,
	}
}

// UserPreferences holds the ranking user's own stated values, read-only
// per ranking call.
type UserPreferences struct {
	Tags            []string           `json:"tags"`
	Age             int                `json:"age"`
	MaxDistanceKm   float64            `json:"max_distance_km"`
	PersonalityType string             `json:"personality_type"`
	Smoker          bool               `json:"smoker"`
	UsesCannabis    bool               `json:"uses_cannabis"`
	WantsKids       DesiredChildren    `json:"wants_kids"`
	Intent          RelationshipIntent `json:"intent"`
	Exclusivity     Exclusivity        `json:"exclusivity"`
	Gender          string             `json:"gender"`
	LookingFor      []string           `json:"looking_for"`
}
