package repository

import (
	"context"

	"github.com/spanapp/span-backend/internal/domain"
)

// SignalRepository is the signal persistence collaborator. Inserts are
// keyed by the signal's client-generated ID, so at-least-once delivery of
// the same signal is absorbed rather than double counted.
type SignalRepository interface {
	Insert(ctx context.Context, signal *domain.InteractionSignal) error
	ListByUser(ctx context.Context, userID string, sinceMs int64) ([]domain.InteractionSignal, error)
	DeleteByUser(ctx context.Context, userID string) error
}
