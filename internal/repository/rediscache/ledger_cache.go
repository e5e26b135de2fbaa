package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spanapp/span-backend/internal/domain"
	"github.com/spanapp/span-backend/internal/repository"
)

type ledgerCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLedgerCache stores derived ledgers as JSON snapshots under a per-user
// key with a TTL.
func NewLedgerCache(client *redis.Client, ttl time.Duration) repository.LedgerCache {
	return &ledgerCache{client: client, ttl: ttl}
}

func ledgerKey(userID string) string {
	return fmt.Sprintf("ledger:%s", userID)
}

func (c *ledgerCache) Get(ctx context.Context, userID string) (*domain.SignalLedger, error) {
	data, err := c.client.Get(ctx, ledgerKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var ledger domain.SignalLedger
	if err := json.Unmarshal(data, &ledger); err != nil {
		// A corrupt snapshot is a miss; the caller rebuilds from postgres.
		return nil, nil
	}
	return &ledger, nil
}

func (c *ledgerCache) Set(ctx context.Context, ledger *domain.SignalLedger) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, ledgerKey(ledger.UserID), data, c.ttl).Err()
}

func (c *ledgerCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, ledgerKey(userID)).Err()
}

type noopCache struct{}

// NewNoopCache is used when redis is not configured; every Get is a miss.
func NewNoopCache() repository.LedgerCache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string) (*domain.SignalLedger, error) { return nil, nil }
func (noopCache) Set(context.Context, *domain.SignalLedger) error           { return nil }
func (noopCache) Delete(context.Context, string) error                      { return nil }
