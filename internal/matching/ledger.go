package matching

import (
	"strings"
	"time"

	"github.com/spanapp/span-backend/internal/domain"
)

// decayWindowMs drops signals older than seven days from derivation.
const decayWindowMs = 7 * 24 * 60 * 60 * 1000

// Per-event weight constants. Dwell saturates at 2.5 after 10 seconds,
// a like counts nearly four times a pass, and opening the detail view
// nearly doubles the event.
const (
	dwellUnitMs      = 4000.0
	dwellCap         = 2.5
	likeWeight       = 1.5
	passWeight       = 0.4
	detailViewWeight = 1.8
)

// neutralAffinity is returned for behaviorally unknown candidates so the
// ledger never penalizes a lack of evidence.
const neutralAffinity = 0.5

// NewLedger builds a ledger from persisted signals, applying decay and
// deriving affinities in one pass.
func NewLedger(userID string, signals []domain.InteractionSignal, nowMs int64) *domain.SignalLedger {
	decayed := DecaySignals(signals, nowMs)
	return &domain.SignalLedger{
		UserID:        userID,
		Signals:       decayed,
		TagAffinities: ComputeAffinities(decayed),
	}
}

// Record appends a signal and returns a fresh ledger with affinities
// recomputed over the decayed window. The input ledger is not mutated;
// callers must serialize Record calls per user.
func Record(ledger *domain.SignalLedger, signal domain.InteractionSignal, nowMs int64) *domain.SignalLedger {
	var (
		userID string
		prior  []domain.InteractionSignal
	)
	if ledger != nil {
		userID = ledger.UserID
		prior = ledger.Signals
	}
	if userID == "" {
		userID = signal.UserID
	}

	decayed := DecaySignals(prior, nowMs)
	signals := make([]domain.InteractionSignal, 0, len(decayed)+1)
	signals = append(signals, decayed...)
	signals = append(signals, signal)

	return &domain.SignalLedger{
		UserID:        userID,
		Signals:       signals,
		TagAffinities: ComputeAffinities(signals),
	}
}

// DecaySignals keeps only signals strictly newer than the seven-day cutoff.
// A signal exactly at the boundary is dropped.
func DecaySignals(signals []domain.InteractionSignal, nowMs int64) []domain.InteractionSignal {
	cutoff := nowMs - decayWindowMs
	kept := make([]domain.InteractionSignal, 0, len(signals))
	for _, s := range signals {
		if s.TimestampMs > cutoff {
			kept = append(kept, s)
		}
	}
	return kept
}

// ComputeAffinities derives per-tag weights from a signal set. Each event
// scores dwell × outcome × detail-view; tags average their event scores and
// the averages are normalized by the maximum, so the top tag of any
// non-empty mapping is exactly 1.0.
func ComputeAffinities(signals []domain.InteractionSignal) map[string]float64 {
	type tagAccum struct {
		total float64
		count int
	}
	accum := make(map[string]*tagAccum)

	for _, s := range signals {
		dwell := float64(s.DwellMs) / dwellUnitMs
		if dwell > dwellCap {
			dwell = dwellCap
		}
		outcome := passWeight
		if s.Outcome == domain.OutcomeLike {
			outcome = likeWeight
		}
		detail := 1.0
		if s.DetailViewOpened {
			detail = detailViewWeight
		}
		score := dwell * outcome * detail

		for _, tag := range s.Tags {
			key := strings.ToLower(tag)
			a, ok := accum[key]
			if !ok {
				a = &tagAccum{}
				accum[key] = a
			}
			a.total += score
			a.count++
		}
	}

	averages := make(map[string]float64, len(accum))
	maxAvg := 0.0
	for tag, a := range accum {
		avg := a.total / float64(a.count)
		averages[tag] = avg
		if avg > maxAvg {
			maxAvg = avg
		}
	}

	affinities := make(map[string]float64, len(averages))
	if maxAvg > 0 {
		for tag, avg := range averages {
			affinities[tag] = avg / maxAvg
		}
	}
	return affinities
}

// AffinityFor averages the ledger's affinity over the candidate's tags.
// Candidates with no recorded tags — or an empty ledger — get the neutral
// 0.5 so behavioral unknowns are not penalized.
func AffinityFor(ledger *domain.SignalLedger, candidate *domain.CandidateProfile) float64 {
	if ledger == nil || len(ledger.TagAffinities) == 0 {
		return neutralAffinity
	}

	total := 0.0
	matched := 0
	for _, tag := range candidate.Tags {
		if w, ok := ledger.TagAffinities[strings.ToLower(tag)]; ok {
			total += w
			matched++
		}
	}
	if matched == 0 {
		return neutralAffinity
	}
	return total / float64(matched)
}

// SessionStats summarizes today's signals.
type SessionStats struct {
	Likes       int     `json:"likes"`
	Passes      int     `json:"passes"`
	AvgDwellMs  float64 `json:"avg_dwell_ms"`
	DetailOpens int     `json:"detail_opens"`
	Total       int     `json:"total"`
}

// Stats derives same-day counters from the ledger's signal window.
func Stats(ledger *domain.SignalLedger, now time.Time) SessionStats {
	var stats SessionStats
	if ledger == nil {
		return stats
	}

	day := now.Format("2006-01-02")
	totalDwell := int64(0)
	for _, s := range ledger.Signals {
		if time.UnixMilli(s.TimestampMs).In(now.Location()).Format("2006-01-02") != day {
			continue
		}
		stats.Total++
		totalDwell += s.DwellMs
		if s.Outcome == domain.OutcomeLike {
			stats.Likes++
		} else {
			stats.Passes++
		}
		if s.DetailViewOpened {
			stats.DetailOpens++
		}
	}
	if stats.Total > 0 {
		stats.AvgDwellMs = float64(totalDwell) / float64(stats.Total)
	}
	return stats
}

// Pacing thresholds: fifteen swipes inside two minutes reads as
// swiping on autopilot.
const (
	pacingWindow    = 15
	pacingElapsedMs = 120_000
)

// TooFast reports whether the most recent swipe timestamps indicate
// autopilot pacing.
func TooFast(swipeTimesMs []int64) bool {
	if len(swipeTimesMs) < pacingWindow {
		return false
	}
	recent := swipeTimesMs[len(swipeTimesMs)-pacingWindow:]
	return recent[len(recent)-1]-recent[0] < pacingElapsedMs
}
