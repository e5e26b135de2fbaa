package matching

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spanapp/span-backend/internal/domain"
)

func testPrefs() *domain.UserPreferences {
	return &domain.UserPreferences{
		Tags:            []string{"coffee", "art"},
		Age:             25,
		MaxDistanceKm:   20,
		PersonalityType: "INFJ",
		Intent:          domain.IntentSerious,
		Exclusivity:     domain.Monogamous,
		WantsKids:       domain.ChildrenYes,
		Gender:          "woman",
		LookingFor:      []string{"man"},
	}
}

// rankableCandidate builds an eligible candidate whose static score is
// driven by age distance from the preference, so scores are distinct and
// ordered by index.
func rankableCandidate(i int) *domain.CandidateProfile {
	return &domain.CandidateProfile{
		ID:              fmt.Sprintf("c%02d", i),
		Age:             25 + i,
		DistanceKm:      5,
		PersonalityType: "INFJ",
		Intent:          domain.IntentSerious,
		Exclusivity:     domain.Monogamous,
		WantsKids:       domain.ChildrenYes,
		Gender:          "man",
		LookingFor:      []string{"woman"},
	}
}

func seededRanker() *Ranker {
	return NewRanker(rand.New(rand.NewSource(42)))
}

func TestIsEligible(t *testing.T) {
	prefs := testPrefs()

	tests := []struct {
		name       string
		gender     string
		lookingFor []string
		eligible   bool
	}{
		{name: "mutual", gender: "man", lookingFor: []string{"woman"}, eligible: true},
		{name: "mutual among several", gender: "man", lookingFor: []string{"man", "woman"}, eligible: true},
		{name: "user not looking for gender", gender: "woman", lookingFor: []string{"woman"}, eligible: false},
		{name: "candidate not looking back", gender: "man", lookingFor: []string{"man"}, eligible: false},
		{name: "empty looking for", gender: "man", lookingFor: nil, eligible: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := rankableCandidate(0)
			c.Gender = tt.gender
			c.LookingFor = tt.lookingFor
			assert.Equal(t, tt.eligible, IsEligible(c, prefs))
		})
	}
}

func TestRankEmptyInput(t *testing.T) {
	out := seededRanker().Rank(nil, testPrefs(), nil)
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestRankExcludesIneligible(t *testing.T) {
	ineligible := rankableCandidate(0)
	ineligible.ID = "blocked"
	ineligible.LookingFor = []string{"man"} // not looking back

	candidates := []*domain.CandidateProfile{ineligible}
	for i := 1; i <= 5; i++ {
		candidates = append(candidates, rankableCandidate(i))
	}

	out := seededRanker().Rank(candidates, testPrefs(), nil)
	require.Len(t, out, 5)
	for _, c := range out {
		assert.NotEqual(t, "blocked", c.ID)
	}
}

func TestRankSingleCandidate(t *testing.T) {
	// n=1: the exploration pool takes the only candidate and the
	// interleave backfills position one from it.
	out := seededRanker().Rank([]*domain.CandidateProfile{rankableCandidate(0)}, testPrefs(), nil)
	require.Len(t, out, 1)
	assert.Equal(t, "c00", out[0].ID)
}

func TestRankExplorationQuotaAndCadence(t *testing.T) {
	n := 12 // explorationCount = 3
	candidates := make([]*domain.CandidateProfile, 0, n)
	for i := 0; i < n; i++ {
		candidates = append(candidates, rankableCandidate(i))
	}

	// Scores fall with index, so the exploration pool is exactly the
	// three worst candidates c09..c11.
	explorationPool := map[string]bool{"c09": true, "c10": true, "c11": true}

	out := seededRanker().Rank(candidates, testPrefs(), nil)
	require.Len(t, out, n)

	fromExploration := 0
	for i, c := range out {
		if explorationPool[c.ID] {
			fromExploration++
			assert.Equal(t, 0, (i+1)%4, "exploration candidate %s surfaced outside a 4th slot", c.ID)
		}
	}
	assert.Equal(t, 3, fromExploration, "exactly max(1, floor(n*0.25)) exploration candidates")

	// Exploitation order stays score-descending around the injected slots.
	assert.Equal(t, "c00", out[0].ID)
	assert.Equal(t, "c01", out[1].ID)
	assert.Equal(t, "c02", out[2].ID)
	assert.Equal(t, "c03", out[4].ID)
}

func TestRankQuotaAcrossSizes(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 16, 33} {
		candidates := make([]*domain.CandidateProfile, 0, n)
		for i := 0; i < n; i++ {
			candidates = append(candidates, rankableCandidate(i))
		}

		want := n / 4
		if want < 1 {
			want = 1
		}
		pool := make(map[string]bool, want)
		for i := n - want; i < n; i++ {
			pool[fmt.Sprintf("c%02d", i)] = true
		}

		out := seededRanker().Rank(candidates, testPrefs(), nil)
		require.Len(t, out, n, "n=%d", n)

		got := 0
		for _, c := range out {
			if pool[c.ID] {
				got++
			}
		}
		assert.Equal(t, want, got, "n=%d", n)
	}
}

func TestRankStableOnTies(t *testing.T) {
	// Identical candidates score identically; stable sort must keep
	// input order inside the exploitation segment.
	n := 8
	candidates := make([]*domain.CandidateProfile, 0, n)
	for i := 0; i < n; i++ {
		c := rankableCandidate(0)
		c.ID = fmt.Sprintf("c%02d", i)
		candidates = append(candidates, c)
	}

	out := seededRanker().Rank(candidates, testPrefs(), nil)
	require.Len(t, out, n)

	// explorationCount = 2, so c00..c05 exploit in input order and the
	// exploration slots land at positions 4 and 8.
	assert.Equal(t, "c00", out[0].ID)
	assert.Equal(t, "c01", out[1].ID)
	assert.Equal(t, "c02", out[2].ID)
	assert.Equal(t, "c03", out[4].ID)
	assert.Equal(t, "c04", out[5].ID)
	assert.Equal(t, "c05", out[6].ID)
}

func TestRankDiversityTierOrder(t *testing.T) {
	// Eight candidates, exploration pool of two: one sharing the user's
	// diplomat family, one analyst. The analyst must take the earlier
	// exploration slot regardless of shuffle outcome.
	candidates := make([]*domain.CandidateProfile, 0, 8)
	for i := 0; i < 6; i++ {
		candidates = append(candidates, rankableCandidate(i))
	}

	sameFamily := rankableCandidate(10)
	sameFamily.ID = "same-family"
	sameFamily.PersonalityType = "ENFP" // diplomat, like INFJ

	otherFamily := rankableCandidate(11)
	otherFamily.ID = "other-family"
	otherFamily.PersonalityType = "INTJ" // analyst
	// Score both below the rest so they form the exploration pool.
	sameFamily.Age = 60
	otherFamily.Age = 61

	candidates = append(candidates, sameFamily, otherFamily)

	out := seededRanker().Rank(candidates, testPrefs(), nil)
	require.Len(t, out, 8)

	posSame, posOther := -1, -1
	for i, c := range out {
		switch c.ID {
		case "same-family":
			posSame = i
		case "other-family":
			posOther = i
		}
	}
	require.NotEqual(t, -1, posSame)
	require.NotEqual(t, -1, posOther)
	assert.Less(t, posOther, posSame, "cross-family candidate leads the exploration tier")
}

func TestRankUsesLedgerAffinity(t *testing.T) {
	// Two otherwise-identical candidates; behavioral affinity for one tag
	// must pull its holder ahead once enough signals accumulate.
	liked := rankableCandidate(0)
	liked.ID = "liked-tag"
	liked.Tags = []string{"climbing"}

	plain := rankableCandidate(0)
	plain.ID = "plain"
	plain.Tags = []string{"stamps"}

	signals := make([]domain.InteractionSignal, 0, 10)
	for i := 0; i < 10; i++ {
		signals = append(signals, domain.InteractionSignal{
			ID:          fmt.Sprintf("s%d", i),
			UserID:      "u1",
			ProfileID:   fmt.Sprintf("seen%d", i),
			DwellMs:     8000,
			Outcome:     domain.OutcomeLike,
			Tags:        []string{"climbing"},
			TimestampMs: int64(100 * dayMs),
		})
	}
	ledger := NewLedger("u1", signals, int64(100*dayMs)+1)
	require.Equal(t, 10, ledger.SignalCount())

	// plain first in input: only the ledger can reorder them.
	out := seededRanker().Rank([]*domain.CandidateProfile{plain, liked}, testPrefs(), ledger)
	require.Len(t, out, 2)
	assert.Equal(t, "liked-tag", out[0].ID)

	// Affinity 1.0 vs neutral 0.5 at the 20% ceiling.
	staticScore := StaticScore(plain, testPrefs())
	assert.InDelta(t, staticScore*0.8+1.0*0.2, BlendedScore(liked, testPrefs(), ledger), 1e-9)
	assert.InDelta(t, staticScore*0.8+0.5*0.2, BlendedScore(plain, testPrefs(), ledger), 1e-9)
}

func TestFamily(t *testing.T) {
	tests := []struct {
		code   string
		family string
	}{
		{code: "INTJ", family: "analyst"},
		{code: "ENTP", family: "analyst"},
		{code: "INFJ", family: "diplomat"},
		{code: "ENFP", family: "diplomat"},
		{code: "ISTJ", family: "sentinel"},
		{code: "ESFJ", family: "sentinel"},
		{code: "ISTP", family: "explorer"},
		{code: "ESFP", family: "explorer"},
		{code: "", family: ""},
		{code: "XXXX", family: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.family, Family(tt.code), "code %q", tt.code)
	}
}

func TestFilter(t *testing.T) {
	near := rankableCandidate(0)
	near.Name = "Avery"
	near.Tags = []string{"Coffee", "Art"}
	near.Bio = "gallery weekends"

	far := rankableCandidate(1)
	far.DistanceKm = 30

	other := rankableCandidate(2)
	other.Name = "Sam"
	other.Tags = []string{"Fitness"}
	other.Bio = "gym first thing"

	all := []*domain.CandidateProfile{near, far, other}

	t.Run("distance cutoff", func(t *testing.T) {
		assert.Len(t, Filter(all, 20, ""), 2)
	})

	t.Run("tag query", func(t *testing.T) {
		out := Filter(all, 20, "coffee")
		require.Len(t, out, 1)
		assert.Equal(t, near.ID, out[0].ID)
	})

	t.Run("bio query", func(t *testing.T) {
		out := Filter(all, 20, "gym")
		require.Len(t, out, 1)
		assert.Equal(t, other.ID, out[0].ID)
	})

	t.Run("whitespace query is no filter", func(t *testing.T) {
		assert.Len(t, Filter(all, 20, "   "), 2)
	})
}
