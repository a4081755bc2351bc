package audio

import "time"

// Status is a snapshot of the engine published after every buffer.
type Status struct {
	Running bool
	Step    int // visual step, -1 while stopped
	SubStep int
	Bank    int
	Armed   bool
	Tempo   float64
	Swing   float64
	Frame   uint64
	Pending int // swing delayed triggers waiting to fire
	Pads    [NumPads]PadStatus
	Grid    [NumPads][NumSteps]bool // steps of the current bank
}

type PadStatus struct {
	HasSample bool
	Sample    string
	Duration  time.Duration
	Voices    int
	OffGrid   int
	Muted     bool
	Soloed    bool
	Held      bool
}

// Status returns the most recently published snapshot.
func (e *Engine) Status() Status {
	return *e.status.Load()
}

func (e *Engine) publish() {
	s := &Status{
		Running: e.clock.running,
		Step:    e.clock.visualStep(),
		SubStep: e.clock.subStep,
		Bank:    e.bank,
		Armed:   e.armed,
		Tempo:   e.clock.bpm,
		Swing:   e.swing.Load().(float64),
		Frame:   e.frame,
		Pending: len(e.pending),
	}
	for pad := range s.Pads {
		ps := &s.Pads[pad]
		if snd := e.samples[pad]; snd != nil {
			ps.HasSample = true
			ps.Sample = snd.Name()
			ps.Duration = snd.Duration()
		}
		ps.Voices = len(e.active[pad])
		ps.OffGrid = len(e.pattern.offGrid[e.bank][pad])
		ps.Muted = e.muted[pad]
		ps.Soloed = e.soloed[pad]
		ps.Held = e.held[pad]
		s.Grid[pad] = e.pattern.steps[e.bank][pad]
	}
	e.status.Store(s)
}
