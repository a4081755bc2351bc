package audio

import "math"

type envelopeState int

const (
	stateAttack envelopeState = iota
	stateDecay
	stateSustain
	stateRelease
	stateDone
)

// sustainDwell is how long the sustain level is held before the release
// starts on its own.
const sustainDwell = 0.1

// envelope produces a normalized gain curve. The segments are fixed when the
// voice starts: 0 to 1 over attack, 1 to sustain over decay, sustain for
// sustainDwell, then sustain to 0 over release. A one-shot envelope is a
// constant 1.
type envelope struct {
	oneShot bool
	hold    bool // stay in sustain until the voice is stopped
	sustain float64

	// segment lengths in frames, indexed by state
	lengths [stateDone]int

	state envelopeState
	pos   int // frames into the current state
}

func newEnvelope(s envelopeSettings, sampleRate float64) envelope {
	frames := func(sec float64) int { return int(math.Round(sec * sampleRate)) }
	e := envelope{sustain: s.sustain}
	e.lengths[stateAttack] = frames(s.attack)
	e.lengths[stateDecay] = frames(s.decay)
	e.lengths[stateSustain] = frames(sustainDwell)
	e.lengths[stateRelease] = frames(s.release)
	return e
}

func oneShotEnvelope() envelope {
	return envelope{oneShot: true}
}

// seconds returns the length of the full schedule.
func (s envelopeSettings) seconds() float64 {
	return s.attack + s.decay + sustainDwell + s.release
}

func (e *envelope) value() float64 {
	if e.oneShot {
		return 1
	}
	for e.state < stateDone && e.pos >= e.lengths[e.state] {
		if e.state == stateSustain && e.hold {
			break
		}
		e.state++
		e.pos = 0
	}
	var v float64
	switch e.state {
	case stateAttack:
		v = float64(e.pos) / float64(e.lengths[stateAttack])
	case stateDecay:
		v = 1 - (1-e.sustain)*float64(e.pos)/float64(e.lengths[stateDecay])
	case stateSustain:
		v = e.sustain
	case stateRelease:
		v = e.sustain * (1 - float64(e.pos)/float64(e.lengths[stateRelease]))
	case stateDone:
		return 0
	}
	e.pos++
	return v
}

func (e *envelope) done() bool {
	return !e.oneShot && e.state == stateDone
}
