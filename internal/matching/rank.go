package matching

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/spanapp/span-backend/internal/domain"
)

// explorationRatio is the share of eligible candidates diverted into the
// exploration pool, floored but never below one candidate.
const explorationRatio = 0.25

// Ranker orders eligible candidates by blended score and reshapes the list
// to interleave a diversified exploration segment. Safe for concurrent use;
// the random source is guarded by a mutex the way a shared rand.Rand must be.
type Ranker struct {
	rng *rand.Rand
	mu  sync.Mutex
}

// NewRanker builds a Ranker around the given random source. Passing nil
// uses a time-seeded source, which keeps the exploration shuffle
// intentionally non-reproducible in production.
func NewRanker(rng *rand.Rand) *Ranker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Ranker{rng: rng}
}

// BlendedScore is the per-candidate final score fed to the ranker.
func BlendedScore(candidate *domain.CandidateProfile, prefs *domain.UserPreferences, ledger *domain.SignalLedger) float64 {
	return Blend(StaticScore(candidate, prefs), AffinityFor(ledger, candidate), ledger.SignalCount())
}

// Rank filters for eligibility, scores, sorts, splits off the exploration
// pool, diversifies it against the user's personality family, and
// interleaves the segments so every four-candidate window carries at least
// one exploration slot. A nil ledger is a valid cold start. An empty result
// is valid and meaningful; the caller decides what to show.
func (r *Ranker) Rank(candidates []*domain.CandidateProfile, prefs *domain.UserPreferences, ledger *domain.SignalLedger) []*domain.CandidateProfile {
	eligible := make([]*domain.CandidateProfile, 0, len(candidates))
	for _, c := range candidates {
		if IsEligible(c, prefs) {
			eligible = append(eligible, c)
		}
	}
	n := len(eligible)
	if n == 0 {
		return []*domain.CandidateProfile{}
	}

	type scored struct {
		profile *domain.CandidateProfile
		score   float64
	}
	list := make([]scored, n)
	for i, c := range eligible {
		list[i] = scored{profile: c, score: BlendedScore(c, prefs, ledger)}
	}

	// Stable sort: ties keep original input order.
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})

	explorationCount := int(float64(n) * explorationRatio)
	if explorationCount < 1 {
		explorationCount = 1
	}
	exploitCount := n - explorationCount

	exploitation := make([]*domain.CandidateProfile, 0, exploitCount)
	for _, s := range list[:exploitCount] {
		exploitation = append(exploitation, s.profile)
	}
	exploration := make([]*domain.CandidateProfile, 0, explorationCount)
	for _, s := range list[exploitCount:] {
		exploration = append(exploration, s.profile)
	}

	r.diversify(exploration, Family(prefs.PersonalityType))

	return interleave(exploitation, exploration, n)
}

// diversify stably partitions the exploration pool so candidates outside
// the user's personality family come first, then shuffles within each tier.
// The tiers fix priority; the order inside a tier is randomized per call.
func (r *Ranker) diversify(pool []*domain.CandidateProfile, userFamily string) {
	other := make([]*domain.CandidateProfile, 0, len(pool))
	same := make([]*domain.CandidateProfile, 0, len(pool))
	for _, c := range pool {
		if Family(c.PersonalityType) != userFamily {
			other = append(other, c)
		} else {
			same = append(same, c)
		}
	}

	r.mu.Lock()
	r.rng.Shuffle(len(other), func(i, j int) { other[i], other[j] = other[j], other[i] })
	r.rng.Shuffle(len(same), func(i, j int) { same[i], same[j] = same[j], same[i] })
	r.mu.Unlock()

	copy(pool, other)
	copy(pool[len(other):], same)
}

// interleave fills every 4th output position from the exploration pool and
// the rest from exploitation, backfilling from the other segment once one
// runs dry. The cadence is load-bearing: changing it changes the felt
// exploration ratio.
func interleave(exploitation, exploration []*domain.CandidateProfile, n int) []*domain.CandidateProfile {
	out := make([]*domain.CandidateProfile, 0, n)
	ei, xi := 0, 0
	for pos := 0; pos < n; pos++ {
		if (pos+1)%4 == 0 {
			if xi < len(exploration) {
				out = append(out, exploration[xi])
				xi++
			} else {
				out = append(out, exploitation[ei])
				ei++
			}
			continue
		}
		if ei < len(exploitation) {
			out = append(out, exploitation[ei])
			ei++
		} else {
			out = append(out, exploration[xi])
			xi++
		}
	}
	return out
}
