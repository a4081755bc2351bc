package audio

import (
	"math"
	"time"
)

const (
	NumPads  = 16
	NumBanks = 4
	NumSteps = 16

	// MaxSubdivision is the finest grid a pad can follow.
	MaxSubdivision = 32
	// SubStepsPerBar is the resolution of the step clock.
	SubStepsPerBar  = MaxSubdivision * 4
	SubStepsPerStep = SubStepsPerBar / NumSteps

	MinTempo     = 60.
	MaxTempo     = 200.
	DefaultTempo = 120.
)

// SubStepDuration returns the time between two sub-step ticks.
func SubStepDuration(bpm float64) time.Duration {
	return time.Duration(60 / bpm / MaxSubdivision * float64(time.Second))
}

// VisualStep maps a sub-step onto the 16 step grid.
func VisualStep(subStep int) int {
	return (subStep / SubStepsPerStep) % NumSteps
}

// clock advances the sub-step counter against the number of rendered frames.
// Tick positions are tracked as fractional frames so rounding never
// accumulates over long runs.
type clock struct {
	sampleRate float64
	bpm        float64
	running    bool
	subStep    int     // most recently fired sub-step, -1 before the first tick
	nextTick   float64 // frame position of the next tick
}

func newClock(sampleRate, bpm float64) clock {
	return clock{sampleRate: sampleRate, bpm: bpm, subStep: -1}
}

func (c *clock) framesPerTick() float64 {
	return c.sampleRate * 60 / c.bpm / MaxSubdivision
}

// start schedules the first tick at frame now.
func (c *clock) start(now uint64) {
	c.running = true
	c.subStep = -1
	c.nextTick = float64(now)
}

func (c *clock) stop() {
	c.running = false
	c.subStep = -1
}

// setTempo changes the tick interval. A running clock restarts from sub-step
// zero at frame now.
func (c *clock) setTempo(bpm float64, now uint64) {
	c.bpm = bpm
	if c.running {
		c.start(now)
	}
}

// next returns the frame of the next tick if it falls before end.
func (c *clock) next(end uint64) (uint64, bool) {
	if !c.running {
		return 0, false
	}
	at := uint64(math.Ceil(c.nextTick))
	if at >= end {
		return 0, false
	}
	return at, true
}

// advance fires the pending tick and returns its sub-step.
func (c *clock) advance() int {
	c.subStep = (c.subStep + 1) % SubStepsPerBar
	c.nextTick += c.framesPerTick()
	return c.subStep
}

// visualStep returns the current grid position, or -1 while stopped.
func (c *clock) visualStep() int {
	if !c.running || c.subStep < 0 {
		return -1
	}
	return VisualStep(c.subStep)
}
