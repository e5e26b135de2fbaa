package domain

// SignalOutcome is the explicit action that closed an interaction.
type SignalOutcome string

const (
	OutcomeLike SignalOutcome = "like"
	OutcomePass SignalOutcome = "pass"
)

// InteractionSignal captures one complete interaction with a candidate card.
// Immutable after creation; the ID is the dedup key for at-least-once
// delivery to the persistence layer.
type InteractionSignal struct {
	ID               string        `json:"id" db:"id"`
	UserID           string        `json:"user_id" db:"user_id"`
	ProfileID        string        `json:"profile_id" db:"profile_id"`
	DwellMs          int64         `json:"dwell_ms" db:"dwell_ms"`
	DetailViewOpened bool          `json:"detail_view_opened" db:"detail_view_opened"`
	Outcome          SignalOutcome `json:"outcome" db:"outcome"`
	Tags             []string      `json:"tags" db:"tags"`
	TimestampMs      int64         `json:"timestamp_ms" db:"timestamp_ms"`
}

// SignalLedger is a user's decayed interaction history together with the
// per-tag affinity weights derived from it.
//
// TagAffinities must only ever be produced by recomputation over Signals;
// matching.Record and matching.NewLedger are the only constructors that
// populate it, so the two fields cannot drift apart.
type SignalLedger struct {
	UserID        string              `json:"user_id"`
	Signals       []InteractionSignal `json:"signals"`
	TagAffinities map[string]float64  `json:"tag_affinities"`
}

// SignalCount reports how many signals survive in the decayed window.
func (l *SignalLedger) SignalCount() int {
	if l == nil {
		return 0
	}
	return len(l.Signals)
}

// Seen reports whether the ledger already holds a signal for the profile.
func (l *SignalLedger) Seen(profileID string) bool {
	if l == nil {
		return false
	}
	for _, s := range l.Signals {
		if s.ProfileID == profileID {
			return true
		}
	}
	return false
}
