package repository

import (
	"context"

	"github.com/spanapp/span-backend/internal/domain"
)

// ProfileRepository is the profile source collaborator: it loads the
// requesting user's own profile and the raw candidate set. Pagination and
// baseline exclusion (self, incomplete profiles) live here; the matching
// core never queries anything.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error)
	GetByID(ctx context.Context, id string) (*domain.CandidateProfile, error)
	ListCandidates(ctx context.Context, excludeUserID string, limit int) ([]*domain.CandidateProfile, error)
	Update(ctx context.Context, profile *domain.CandidateProfile) error
}
