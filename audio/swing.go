package audio

import "time"

func stepStride(subdivision int) int {
	if subdivision <= 0 {
		return 1
	}
	if s := NumSteps / subdivision; s > 1 {
		return s
	}
	return 1
}

// StepAllowed reports whether step lies on the grid of the given subdivision.
// Subdivisions finer than 16 use every step.
func StepAllowed(step, subdivision int) bool {
	return step%stepStride(subdivision) == 0
}

// IsDue reports whether a pad with the given subdivision is checked on subStep.
func IsDue(subStep, subdivision int) bool {
	return subStep%SubStepsPerStep == 0 && StepAllowed(VisualStep(subStep), subdivision)
}

// IsMusicalOffBeat reports whether a step is swung. Only odd steps are, so a
// pad on a quarter note grid never swings.
func IsMusicalOffBeat(step, subdivision int) bool {
	return step%2 == 1
}

// SwingDelay returns how late an off-beat step sounds. The larger of the
// global and pad swing amounts (0-100) wins, and 100 delays by half a
// subdivision interval.
func SwingDelay(bpm float64, subdivision int, globalSwing, padSwing float64) time.Duration {
	amount := globalSwing
	if padSwing > amount {
		amount = padSwing
	}
	if amount <= 0 || bpm <= 0 || subdivision <= 0 {
		return 0
	}
	ms := amount / 100 * (60000 / bpm) / float64(subdivision) * 0.5
	return time.Duration(ms * float64(time.Millisecond))
}

// ShouldPlay applies the mute and solo gate: when any pad is soloed only
// soloed pads sound, otherwise every pad that is not muted does.
func ShouldPlay(pad int, muted, soloed []bool) bool {
	for _, s := range soloed {
		if s {
			return soloed[pad]
		}
	}
	return !muted[pad]
}
