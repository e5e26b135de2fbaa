package signal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spanapp/span-backend/internal/domain"
	"github.com/spanapp/span-backend/internal/matching"
	"github.com/spanapp/span-backend/internal/repository"
)

// ledgerWindowMs mirrors the core's decay window so the repository query
// never loads signals the derivation would drop anyway.
const ledgerWindowMs = 7 * 24 * 60 * 60 * 1000

// SignalUseCase owns the ledger lifecycle: recording interaction signals,
// loading ledgers for ranking, session pacing, and resets. Record is a
// read-modify-write over the full signal set, so it is serialized per user
// with a keyed mutex — two racing records for one user never lose a write.
type SignalUseCase struct {
	signalRepo  repository.SignalRepository
	ledgerCache repository.LedgerCache
	logger      zerolog.Logger

	locks keyedMutex

	// Session swipe times live in process memory; pacing is a
	// per-session nudge, not durable state.
	sessionMu     sync.Mutex
	sessionSwipes map[string][]int64

	now func() time.Time
}

func NewSignalUseCase(
	signalRepo repository.SignalRepository,
	ledgerCache repository.LedgerCache,
	logger zerolog.Logger,
) *SignalUseCase {
	return &SignalUseCase{
		signalRepo:    signalRepo,
		ledgerCache:   ledgerCache,
		logger:        logger,
		sessionSwipes: make(map[string][]int64),
		now:           time.Now,
	}
}

// RecordRequest is one interaction with a candidate card.
type RecordRequest struct {
	ProfileID        string   `json:"profile_id" binding:"required"`
	DwellMs          int64    `json:"dwell_ms" binding:"min=0"`
	DetailViewOpened bool     `json:"detail_view_opened"`
	Outcome          string   `json:"outcome" binding:"required,oneof=like pass"`
	Tags             []string `json:"tags"`
}

// RecordResponse reports the ledger state after the signal landed.
type RecordResponse struct {
	SignalID    string `json:"signal_id"`
	SignalCount int    `json:"signal_count"`
	TooFast     bool   `json:"too_fast"`
}

// Record creates the signal, folds it into the user's ledger, persists it,
// and refreshes the cached snapshot.
func (uc *SignalUseCase) Record(ctx context.Context, userID string, req *RecordRequest) (*RecordResponse, error) {
	unlock := uc.locks.lock(userID)
	defer unlock()

	nowMs := uc.now().UnixMilli()
	sig := domain.InteractionSignal{
		ID:               uuid.NewString(),
		UserID:           userID,
		ProfileID:        req.ProfileID,
		DwellMs:          req.DwellMs,
		DetailViewOpened: req.DetailViewOpened,
		Outcome:          domain.SignalOutcome(req.Outcome),
		Tags:             req.Tags,
		TimestampMs:      nowMs,
	}

	ledger, err := uc.loadLedger(ctx, userID, nowMs)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	next := matching.Record(ledger, sig, nowMs)

	if err := uc.signalRepo.Insert(ctx, &sig); err != nil {
		return nil, fmt.Errorf("failed to persist signal: %w", err)
	}
	if err := uc.ledgerCache.Set(ctx, next); err != nil {
		uc.logger.Warn().Err(err).Str("user_id", userID).Msg("ledger cache refresh failed")
	}

	return &RecordResponse{
		SignalID:    sig.ID,
		SignalCount: next.SignalCount(),
		TooFast:     uc.trackSwipe(userID, nowMs),
	}, nil
}

// LoadLedger returns the user's current ledger for ranking. Cache first,
// postgres rebuild on miss.
func (uc *SignalUseCase) LoadLedger(ctx context.Context, userID string) (*domain.SignalLedger, error) {
	return uc.loadLedger(ctx, userID, uc.now().UnixMilli())
}

func (uc *SignalUseCase) loadLedger(ctx context.Context, userID string, nowMs int64) (*domain.SignalLedger, error) {
	cached, err := uc.ledgerCache.Get(ctx, userID)
	if err != nil {
		uc.logger.Warn().Err(err).Str("user_id", userID).Msg("ledger cache read failed")
	}
	if cached != nil {
		// Snapshots age inside their TTL; re-derive over the live window.
		return matching.NewLedger(userID, cached.Signals, nowMs), nil
	}

	signals, err := uc.signalRepo.ListByUser(ctx, userID, nowMs-ledgerWindowMs)
	if err != nil {
		return nil, err
	}
	ledger := matching.NewLedger(userID, signals, nowMs)

	if err := uc.ledgerCache.Set(ctx, ledger); err != nil {
		uc.logger.Warn().Err(err).Str("user_id", userID).Msg("ledger cache write failed")
	}
	return ledger, nil
}

// Stats summarizes today's recorded activity.
func (uc *SignalUseCase) Stats(ctx context.Context, userID string) (matching.SessionStats, error) {
	ledger, err := uc.LoadLedger(ctx, userID)
	if err != nil {
		return matching.SessionStats{}, fmt.Errorf("failed to load ledger: %w", err)
	}
	return matching.Stats(ledger, uc.now()), nil
}

// Reset clears the user's behavioral history: persisted signals, cached
// snapshot, and session pacing.
func (uc *SignalUseCase) Reset(ctx context.Context, userID string) error {
	unlock := uc.locks.lock(userID)
	defer unlock()

	if err := uc.signalRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete signals: %w", err)
	}
	if err := uc.ledgerCache.Delete(ctx, userID); err != nil {
		uc.logger.Warn().Err(err).Str("user_id", userID).Msg("ledger cache delete failed")
	}

	uc.sessionMu.Lock()
	delete(uc.sessionSwipes, userID)
	uc.sessionMu.Unlock()

	return nil
}

// trackSwipe appends the swipe time and reports pacing. Only the most
// recent window is retained.
func (uc *SignalUseCase) trackSwipe(userID string, nowMs int64) bool {
	uc.sessionMu.Lock()
	defer uc.sessionMu.Unlock()

	times := append(uc.sessionSwipes[userID], nowMs)
	if len(times) > 64 {
		times = times[len(times)-64:]
	}
	uc.sessionSwipes[userID] = times
	return matching.TooFast(times)
}
