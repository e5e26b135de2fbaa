package feed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/spanapp/span-backend/internal/domain"
	"github.com/spanapp/span-backend/internal/matching"
	"github.com/spanapp/span-backend/internal/repository"
)

// LedgerSource hands the feed the requesting user's current signal ledger.
// Implemented by the signal use case.
type LedgerSource interface {
	LoadLedger(ctx context.Context, userID string) (*domain.SignalLedger, error)
}

type FeedUseCase struct {
	profileRepo    repository.ProfileRepository
	ledgers        LedgerSource
	ranker         *matching.Ranker
	candidateLimit int
	logger         zerolog.Logger
}

func NewFeedUseCase(
	profileRepo repository.ProfileRepository,
	ledgers LedgerSource,
	ranker *matching.Ranker,
	candidateLimit int,
	logger zerolog.Logger,
) *FeedUseCase {
	return &FeedUseCase{
		profileRepo:    profileRepo,
		ledgers:        ledgers,
		ranker:         ranker,
		candidateLimit: candidateLimit,
		logger:         logger,
	}
}

// FeedCandidateResponse is one card in the ranked feed.
type FeedCandidateResponse struct {
	Profile *domain.CandidateProfile `json:"profile"`
	Score   float64                  `json:"score"`
}

// BreakdownResponse exposes the per-factor scores behind one candidate's
// placement.
type BreakdownResponse struct {
	ProfileID        string             `json:"profile_id"`
	Breakdown        matching.Breakdown `json:"breakdown"`
	Affinity         float64            `json:"affinity"`
	BehavioralWeight float64            `json:"behavioral_weight"`
	Blended          float64            `json:"blended"`
	Eligible         bool               `json:"eligible"`
}

// GetFeed ranks the candidate set for the user. An empty feed is a valid
// result, not an error.
func (uc *FeedUseCase) GetFeed(ctx context.Context, userID string) ([]FeedCandidateResponse, error) {
	prefs, candidates, ledger, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates = uc.dropSeen(candidates, ledger)
	ranked := uc.ranker.Rank(candidates, prefs, ledger)

	uc.logger.Debug().
		Str("user_id", userID).
		Int("candidates", len(candidates)).
		Int("ranked", len(ranked)).
		Int("signals", ledger.SignalCount()).
		Msg("feed ranked")

	out := make([]FeedCandidateResponse, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, FeedCandidateResponse{
			Profile: c,
			Score:   matching.BlendedScore(c, prefs, ledger),
		})
	}
	return out, nil
}

// Search filters eligible candidates by distance and a free-text query
// without reshaping the order.
func (uc *FeedUseCase) Search(ctx context.Context, userID, query string, maxDistanceKm float64) ([]*domain.CandidateProfile, error) {
	prefs, candidates, ledger, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if maxDistanceKm <= 0 {
		maxDistanceKm = prefs.MaxDistanceKm
	}

	eligible := make([]*domain.CandidateProfile, 0, len(candidates))
	for _, c := range uc.dropSeen(candidates, ledger) {
		if matching.IsEligible(c, prefs) {
			eligible = append(eligible, c)
		}
	}
	return matching.Filter(eligible, maxDistanceKm, query), nil
}

// GetBreakdown explains a single candidate's score for the user.
func (uc *FeedUseCase) GetBreakdown(ctx context.Context, userID, profileID string) (*BreakdownResponse, error) {
	me, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get own profile: %w", err)
	}
	if me.ID == profileID {
		return nil, domain.ErrCannotRankSelf
	}

	candidate, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	ledger, err := uc.ledgers.LoadLedger(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	prefs := me.Preferences()
	breakdown := matching.ScoreBreakdown(candidate, prefs)
	return &BreakdownResponse{
		ProfileID:        profileID,
		Breakdown:        breakdown,
		Affinity:         matching.AffinityFor(ledger, candidate),
		BehavioralWeight: matching.BehavioralWeight(ledger.SignalCount()),
		Blended:          matching.BlendedScore(candidate, prefs, ledger),
		Eligible:         matching.IsEligible(candidate, prefs),
	}, nil
}

// load fetches the user's preferences, the raw candidate set, and the
// ledger. Profile and ledger loads run concurrently; the candidate query
// needs nothing from either.
func (uc *FeedUseCase) load(ctx context.Context, userID string) (*domain.UserPreferences, []*domain.CandidateProfile, *domain.SignalLedger, error) {
	var (
		me         *domain.CandidateProfile
		candidates []*domain.CandidateProfile
		ledger     *domain.SignalLedger
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		me, err = uc.profileRepo.GetByUserID(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get own profile: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		candidates, err = uc.profileRepo.ListCandidates(gctx, userID, uc.candidateLimit)
		if err != nil {
			return fmt.Errorf("failed to list candidates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ledger, err = uc.ledgers.LoadLedger(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load ledger: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	return me.Preferences(), candidates, ledger, nil
}

// dropSeen removes candidates already interacted with inside the live
// ledger window; they come back once their signals decay out.
func (uc *FeedUseCase) dropSeen(candidates []*domain.CandidateProfile, ledger *domain.SignalLedger) []*domain.CandidateProfile {
	if ledger.SignalCount() == 0 {
		return candidates
	}
	fresh := make([]*domain.CandidateProfile, 0, len(candidates))
	for _, c := range candidates {
		if !ledger.Seen(c.ID) {
			fresh = append(fresh, c)
		}
	}
	return fresh
}
