package profile

import (
	"context"
	"fmt"

	"github.com/spanapp/span-backend/internal/domain"
	"github.com/spanapp/span-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: profileRepo}
}

// UpdateProfileRequest carries the editable profile and preference fields.
// Enum fields are validated at the binding layer; the personality code uses
// the registered custom rule.
type UpdateProfileRequest struct {
	Name              *string  `json:"name"`
	Age               *int     `json:"age" binding:"omitempty,gte=18,lte=120"`
	Bio               *string  `json:"bio"`
	Tags              []string `json:"tags"`
	Location          *string  `json:"location"`
	ImageURL          *string  `json:"image_url"`
	PersonalityType   *string  `json:"personality_type" binding:"omitempty,personality"`
	Smoker            *bool    `json:"smoker"`
	UsesCannabis      *bool    `json:"uses_cannabis"`
	WantsKids         *string  `json:"wants_kids" binding:"omitempty,oneof=yes no maybe"`
	Intent            *string  `json:"intent" binding:"omitempty,oneof=casual serious friends open"`
	Exclusivity       *string  `json:"exclusivity" binding:"omitempty,oneof=monogamous non-monogamous open"`
	Gender            *string  `json:"gender"`
	LookingFor        []string `json:"looking_for"`
	AnchorAnswer      *string  `json:"anchor_answer"`
	PrefMaxDistanceKm *float64 `json:"pref_max_distance_km" binding:"omitempty,gt=0"`
}

func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domain.CandidateProfile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyUpdate(profile, req)

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

func applyUpdate(p *domain.CandidateProfile, req *UpdateProfileRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Age != nil {
		p.Age = *req.Age
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.Tags != nil {
		p.Tags = req.Tags
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.PersonalityType != nil {
		p.PersonalityType = *req.PersonalityType
	}
	if req.Smoker != nil {
		p.Smoker = *req.Smoker
	}
	if req.UsesCannabis != nil {
		p.UsesCannabis = *req.UsesCannabis
	}
	if req.WantsKids != nil {
		p.WantsKids = domain.DesiredChildren(*req.WantsKids)
	}
	if req.Intent != nil {
		p.Intent = domain.RelationshipIntent(*req.Intent)
	}
	if req.Exclusivity != nil {
		p.Exclusivity = domain.Exclusivity(*req.Exclusivity)
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.LookingFor != nil {
		p.LookingFor = req.LookingFor
	}
	if req.AnchorAnswer != nil {
		p.AnchorAnswer = req.AnchorAnswer
	}
	if req.PrefMaxDistanceKm != nil {
		p.PrefMaxDistanceKm = *req.PrefMaxDistanceKm
	}
}
