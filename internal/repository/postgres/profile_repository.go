package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/spanapp/span-backend/internal/domain"
	"github.com/spanapp/span-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, user_id, name, age, bio, tags, location, distance_km, image_url,
	personality_type, smoker, uses_cannabis, wants_kids, intent, exclusivity,
	gender, looking_for, anchor_answer, pref_max_distance_km,
	created_at, updated_at
`

func scanProfile(row interface {
	Scan(dest ...interface{}) error
}) (*domain.CandidateProfile, error) {
	var p domain.CandidateProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Age, &p.Bio, pq.Array(&p.Tags),
		&p.Location, &p.DistanceKm, &p.ImageURL,
		&p.PersonalityType, &p.Smoker, &p.UsesCannabis, &p.WantsKids,
		&p.Intent, &p.Exclusivity, &p.Gender, pq.Array(&p.LookingFor),
		&p.AnchorAnswer, &p.PrefMaxDistanceKm,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, userID))
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.CandidateProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *profileRepository) ListCandidates(ctx context.Context, excludeUserID string, limit int) ([]*domain.CandidateProfile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id != $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, excludeUserID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.CandidateProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.CandidateProfile) error {
	query := `
		UPDATE profiles
		SET name = $1, age = $2, bio = $3, tags = $4, location = $5,
		    image_url = $6, personality_type = $7, smoker = $8,
		    uses_cannabis = $9, wants_kids = $10, intent = $11,
		    exclusivity = $12, gender = $13, looking_for = $14,
		    anchor_answer = $15, pref_max_distance_km = $16,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $17
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.Name, profile.Age, profile.Bio, pq.Array(profile.Tags),
		profile.Location, profile.ImageURL, profile.PersonalityType,
		profile.Smoker, profile.UsesCannabis, profile.WantsKids,
		profile.Intent, profile.Exclusivity, profile.Gender,
		pq.Array(profile.LookingFor), profile.AnchorAnswer,
		profile.PrefMaxDistanceKm, profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}
