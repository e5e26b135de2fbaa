package matching

// Behavioral weight ramp: zero evidence means zero behavioral influence,
// and ten or more signals pin it at the 20% ceiling. The static,
// preference-declared score always dominates.
const (
	rampFullAt        = 10.0
	behavioralCeiling = 0.20
)

// BehavioralWeight ramps linearly with recorded signal count.
// Non-decreasing in signalCount; exactly 0 at 0 and 0.20 at 10+.
func BehavioralWeight(signalCount int) float64 {
	if signalCount <= 0 {
		return 0
	}
	ratio := float64(signalCount) / rampFullAt
	if ratio > 1 {
		ratio = 1
	}
	return ratio * behavioralCeiling
}

// Blend combines the static score with the learned affinity using the
// evidence-ramped behavioral weight.
func Blend(staticScore, affinityScore float64, signalCount int) float64 {
	bw := BehavioralWeight(signalCount)
	return staticScore*(1-bw) + affinityScore*bw
}
