// Package sampling converts a video duration and a target frame count
// into a deterministic set of extraction instants.
package sampling

// Timestamps returns the instants (seconds) at which stills should be
// extracted from a video of the given duration. The result is never
// empty, strictly non-decreasing, and at most n entries long. minGap
// floors the step between instants so short videos are not oversampled
// into near-duplicate frames.
//
// An unknown or zero duration yields [0.0]: nothing beyond the start
// of the source can be sampled.
func Timestamps(duration float64, n int, minGap float64) []float64 {
	if n < 1 {
		n = 1
	}
	if minGap < 0 {
		minGap = 0
	}
	if duration <= 0 {
		return []float64{0}
	}

	step := duration / float64(n)
	if step < minGap {
		step = minGap
	}

	ts := make([]float64, 0, n)
	for t := 0.0; t < duration && len(ts) < n; t += step {
		ts = append(ts, t)
	}

	// step >= duration straight away: take one frame near the end
	// rather than none.
	if len(ts) == 0 {
		fallback := duration - 0.1
		if fallback < 0 {
			fallback = 0
		}
		ts = append(ts, fallback)
	}

	return ts
}
