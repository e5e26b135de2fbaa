package repository

import (
	"context"

	"github.com/spanapp/span-backend/internal/domain"
)

// LedgerCache holds derived ledger snapshots so ranking calls do not
// rebuild affinities from persisted signals every time. A miss returns
// (nil, nil); the cache is an optimization, never the source of truth.
type LedgerCache interface {
	Get(ctx context.Context, userID string) (*domain.SignalLedger, error)
	Set(ctx context.Context, ledger *domain.SignalLedger) error
	Delete(ctx context.Context, userID string) error
}
