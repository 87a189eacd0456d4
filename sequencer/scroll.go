package sequencer

import "time"

// AnimationTarget describes one linear scroll of the tile strip.
// Offsets are in cells; a negative offset moves the strip left.
type AnimationTarget struct {
	StartOffset float64
	EndOffset   float64
	Duration    time.Duration

	// Generation is stamped by the sequencer on every start. A view that sees a
	// new generation must drop whatever it was animating and begin again.
	Generation uint64
}

// ComputeAnimation returns the scroll for a pass starting at index.
// Duration always covers the whole pass (tileCount beats), not only the beats
// remaining after index.
func ComputeAnimation(index, tileCount int, tileExtent float64, beatInterval time.Duration) AnimationTarget {
	start := -(float64(index) * tileExtent)
	return AnimationTarget{
		StartOffset: start,
		EndOffset:   start - float64(tileCount)*tileExtent,
		Duration:    beatInterval * time.Duration(tileCount),
	}
}

// Seconds returns Duration in seconds
func (a AnimationTarget) Seconds() float64 {
	return a.Duration.Seconds()
}

// OffsetAt returns the interpolated offset after elapsed time, clamped to the
// start and end offsets.
func (a AnimationTarget) OffsetAt(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return a.StartOffset
	}
	if a.Duration <= 0 || elapsed >= a.Duration {
		return a.EndOffset
	}
	frac := float64(elapsed) / float64(a.Duration)
	return a.StartOffset + (a.EndOffset-a.StartOffset)*frac
}

// Done reports whether the animation has reached its end offset
func (a AnimationTarget) Done(elapsed time.Duration) bool {
	return elapsed >= a.Duration
}
