package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spanapp/span-backend/internal/domain"
)

const dayMs = 24 * 60 * 60 * 1000

func signalAt(tsMs int64, outcome domain.SignalOutcome, tags ...string) domain.InteractionSignal {
	return domain.InteractionSignal{
		ID:          "sig",
		UserID:      "u1",
		ProfileID:   "p1",
		DwellMs:     4000,
		Outcome:     outcome,
		Tags:        tags,
		TimestampMs: tsMs,
	}
}

func TestDecaySignals(t *testing.T) {
	now := int64(100 * dayMs)
	cutoff := now - 7*dayMs

	tests := []struct {
		name string
		ts   int64
		kept bool
	}{
		{name: "fresh signal kept", ts: now - dayMs, kept: true},
		{name: "just inside window kept", ts: cutoff + 1, kept: true},
		{name: "exactly at boundary dropped", ts: cutoff, kept: false},
		{name: "older than window dropped", ts: cutoff - dayMs, kept: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept := DecaySignals([]domain.InteractionSignal{signalAt(tt.ts, domain.OutcomeLike, "art")}, now)
			if tt.kept {
				assert.Len(t, kept, 1)
			} else {
				assert.Empty(t, kept)
			}
		})
	}
}

func TestComputeAffinitiesEventWeights(t *testing.T) {
	// One tag per signal isolates each per-event score.
	signals := []domain.InteractionSignal{
		{DwellMs: 4000, Outcome: domain.OutcomeLike, Tags: []string{"like"}},
		{DwellMs: 4000, Outcome: domain.OutcomePass, Tags: []string{"pass"}},
		{DwellMs: 4000, Outcome: domain.OutcomeLike, DetailViewOpened: true, Tags: []string{"detail"}},
		{DwellMs: 40000, Outcome: domain.OutcomeLike, Tags: []string{"capped"}},
	}

	aff := ComputeAffinities(signals)
	require.Len(t, aff, 4)

	// Raw per-event scores: like 1.5, pass 0.4, detail 2.7, capped 2.5*1.5=3.75.
	// Normalized by 3.75.
	assert.InDelta(t, 1.5/3.75, aff["like"], 1e-9)
	assert.InDelta(t, 0.4/3.75, aff["pass"], 1e-9)
	assert.InDelta(t, 2.7/3.75, aff["detail"], 1e-9)
	assert.InDelta(t, 1.0, aff["capped"], 1e-9)
}

func TestComputeAffinitiesNormalization(t *testing.T) {
	signals := []domain.InteractionSignal{
		{DwellMs: 2000, Outcome: domain.OutcomeLike, Tags: []string{"Coffee", "art"}},
		{DwellMs: 8000, Outcome: domain.OutcomePass, Tags: []string{"coffee"}},
		{DwellMs: 1000, Outcome: domain.OutcomeLike, Tags: []string{"film"}},
	}

	aff := ComputeAffinities(signals)
	require.NotEmpty(t, aff)

	maxWeight := 0.0
	for _, w := range aff {
		assert.GreaterOrEqual(t, w, 0.0)
		assert.LessOrEqual(t, w, 1.0)
		if w > maxWeight {
			maxWeight = w
		}
	}
	assert.InDelta(t, 1.0, maxWeight, 1e-9, "top tag must normalize to exactly 1.0")

	_, upper := aff["Coffee"]
	assert.False(t, upper, "tag keys are lowercased")
	_, lower := aff["coffee"]
	assert.True(t, lower)
}

func TestComputeAffinitiesEmpty(t *testing.T) {
	assert.Empty(t, ComputeAffinities(nil))
}

func TestAffinityForNeutralDefaults(t *testing.T) {
	candidate := &domain.CandidateProfile{Tags: []string{"coffee", "art"}}

	assert.InDelta(t, 0.5, AffinityFor(nil, candidate), 1e-9, "nil ledger")

	empty := &domain.SignalLedger{UserID: "u1", TagAffinities: map[string]float64{}}
	assert.InDelta(t, 0.5, AffinityFor(empty, candidate), 1e-9, "empty ledger")

	unrelated := &domain.SignalLedger{UserID: "u1", TagAffinities: map[string]float64{"gym": 1.0}}
	assert.InDelta(t, 0.5, AffinityFor(unrelated, candidate), 1e-9, "no tags in common")
}

func TestAffinityForAveragesMatchedTags(t *testing.T) {
	ledger := &domain.SignalLedger{
		UserID: "u1",
		TagAffinities: map[string]float64{
			"coffee": 1.0,
			"art":    0.5,
			"gym":    0.1,
		},
	}
	candidate := &domain.CandidateProfile{Tags: []string{"Coffee", "Art", "sailing"}}

	// Only matched tags count: (1.0 + 0.5) / 2. Unknown tags are not zeros.
	assert.InDelta(t, 0.75, AffinityFor(ledger, candidate), 1e-9)
}

func TestRecordRecomputesOverDecayedWindow(t *testing.T) {
	now := int64(100 * dayMs)
	stale := signalAt(now-8*dayMs, domain.OutcomeLike, "stale")
	ledger := &domain.SignalLedger{
		UserID:        "u1",
		Signals:       []domain.InteractionSignal{stale},
		TagAffinities: ComputeAffinities([]domain.InteractionSignal{stale}),
	}

	fresh := signalAt(now-dayMs, domain.OutcomeLike, "fresh")
	next := Record(ledger, fresh, now)

	require.Equal(t, 1, next.SignalCount())
	assert.Contains(t, next.TagAffinities, "fresh")
	assert.NotContains(t, next.TagAffinities, "stale", "decayed signal must leave the affinities")

	// Input ledger untouched.
	assert.Equal(t, 1, ledger.SignalCount())
	assert.Contains(t, ledger.TagAffinities, "stale")
}

func TestRecordOnNilLedger(t *testing.T) {
	now := int64(100 * dayMs)
	next := Record(nil, signalAt(now, domain.OutcomeLike, "art"), now)

	require.NotNil(t, next)
	assert.Equal(t, "u1", next.UserID)
	assert.Equal(t, 1, next.SignalCount())
	assert.InDelta(t, 1.0, next.TagAffinities["art"], 1e-9)
}

func TestNewLedgerAppliesDecay(t *testing.T) {
	now := int64(100 * dayMs)
	signals := []domain.InteractionSignal{
		signalAt(now-dayMs, domain.OutcomeLike, "fresh"),
		signalAt(now-9*dayMs, domain.OutcomePass, "stale"),
	}

	ledger := NewLedger("u1", signals, now)
	assert.Equal(t, 1, ledger.SignalCount())
	assert.Contains(t, ledger.TagAffinities, "fresh")
	assert.NotContains(t, ledger.TagAffinities, "stale")
}

func TestStats(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	today := now.Add(-2 * time.Hour).UnixMilli()
	yesterday := now.Add(-26 * time.Hour).UnixMilli()

	ledger := &domain.SignalLedger{
		UserID: "u1",
		Signals: []domain.InteractionSignal{
			{DwellMs: 2000, Outcome: domain.OutcomeLike, DetailViewOpened: true, TimestampMs: today},
			{DwellMs: 6000, Outcome: domain.OutcomePass, TimestampMs: today},
			{DwellMs: 9000, Outcome: domain.OutcomeLike, TimestampMs: yesterday},
		},
	}

	stats := Stats(ledger, now)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Likes)
	assert.Equal(t, 1, stats.Passes)
	assert.Equal(t, 1, stats.DetailOpens)
	assert.InDelta(t, 4000.0, stats.AvgDwellMs, 1e-9)

	assert.Zero(t, Stats(nil, now).Total)
}

func TestTooFast(t *testing.T) {
	base := int64(1_000_000)

	fast := make([]int64, 15)
	for i := range fast {
		fast[i] = base + int64(i)*5000 // 15 swipes in 70s
	}
	assert.True(t, TooFast(fast))

	slow := make([]int64, 15)
	for i := range slow {
		slow[i] = base + int64(i)*10000 // 15 swipes in 140s
	}
	assert.False(t, TooFast(slow))

	assert.False(t, TooFast(fast[:14]), "needs a full window")
}
