package audio

import (
	"container/heap"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"
)

const (
	blockSize = 16 // this gives about 0.35ms accuracy for sequenced events

	PropTempo = "bpm"
	PropSwing = "swing"
)

// Engine is the sampler and step sequencer. Process is called from the audio
// thread, which owns all pattern and voice state. Other goroutines talk to it
// through an Input, the property setters and Status.
type Engine struct {
	*Props
	sampleRate float64
	params     [NumPads]*PadParams
	bpm        *atomic.Value
	swing      *atomic.Value

	mu     sync.Mutex
	inputs atomic.Pointer[[]*eventBuffer]

	clock      clock
	pattern    Pattern
	bank       int
	armed      bool
	samples    [NumPads]*Sample
	muted      [NumPads]bool
	soloed     [NumPads]bool
	held       [NumPads]bool
	active     [NumPads][]*voice
	free       []*voice
	pending    triggerQueue
	seq        uint64
	frame      uint64
	blockEnd   uint64
	mixL, mixR []float64

	status  atomic.Pointer[Status]
	verbose atomic.Bool
}

func NewEngine(sampleRate int, props *Props) *Engine {
	e := &Engine{
		Props:      props,
		sampleRate: float64(sampleRate),
		bpm:        props.MustRegister(PropTempo, clampFloat64(MinTempo, MaxTempo), DefaultTempo),
		swing:      props.MustRegister(PropSwing, setFloat64(0, 100), 0.0),
		mixL:       make([]float64, blockSize),
		mixR:       make([]float64, blockSize),
		pending:    make(triggerQueue, 0, 64),
	}
	for pad := range e.params {
		e.params[pad] = registerPadParams(props, pad)
	}
	e.clock = newClock(e.sampleRate, DefaultTempo)
	e.inputs.Store(&[]*eventBuffer{})
	e.publish()
	return e
}

// NewInput returns a command queue for one producer goroutine.
func (e *Engine) NewInput() *Input {
	e.mu.Lock()
	defer e.mu.Unlock()
	buf := newEventBuffer(inputQueueSize)
	inputs := append(append([]*eventBuffer(nil), *e.inputs.Load()...), buf)
	e.inputs.Store(&inputs)
	return &Input{events: buf}
}

func (e *Engine) SampleRate() int { return int(e.sampleRate) }

// SetVerbose enables logging of every trigger.
func (e *Engine) SetVerbose(v bool) { e.verbose.Store(v) }

func (e *Engine) Params(pad int) *PadParams {
	if checkPad(pad) != nil {
		return nil
	}
	return e.params[pad]
}

// SetParam sets a pad parameter by name. The tune parameter is given in
// semitones and stored as pitch.
func (e *Engine) SetParam(pad int, name string, value interface{}) error {
	if err := checkPad(pad); err != nil {
		return err
	}
	if name == ParamTune {
		st, err := toFloat64(value)
		if err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
		if st < -24 || st > 24 {
			return fmt.Errorf("set %s: %v is not in valid range -24 - 24", name, st)
		}
		name, value = ParamPitch, TuneToPitch(st)
	}
	return e.Set(padKey(name, pad), value)
}

func (e *Engine) GetParam(pad int, name string) (interface{}, error) {
	if err := checkPad(pad); err != nil {
		return nil, err
	}
	if name == ParamTune {
		return math.Round(e.params[pad].Tune()), nil
	}
	return e.Get(padKey(name, pad))
}

// SetTempo changes the tempo. Values outside 60 - 200 are clamped.
func (e *Engine) SetTempo(bpm float64) error { return e.Set(PropTempo, bpm) }

func (e *Engine) Tempo() float64 { return e.bpm.Load().(float64) }

// SetGlobalSwing sets the swing amount (0 - 100) applied to all pads.
func (e *Engine) SetGlobalSwing(amount float64) error { return e.Set(PropSwing, amount) }

// SetSubdivision sets the grid a pad follows: 1, 2, 4, 8, 16 or 32 steps per
// bar.
func (e *Engine) SetSubdivision(pad, d int) error { return e.SetParam(pad, ParamSubdivision, d) }

// Process renders the next buffer. out holds one slice per channel; the
// engine adds to what is already there.
func (e *Engine) Process(out [][]float32) {
	if len(out) == 0 {
		return
	}
	for _, events := range *e.inputs.Load() {
		events.drain(e.apply)
	}
	if bpm := e.bpm.Load().(float64); bpm != e.clock.bpm {
		e.clock.setTempo(bpm, e.frame)
	}

	n := len(out[0])
	for pos := 0; pos < n; pos += blockSize {
		end := pos + blockSize
		if end > n {
			end = n
		}
		e.blockEnd = e.frame + uint64(end-pos)
		for {
			at, ok := e.clock.next(e.blockEnd)
			if !ok {
				break
			}
			e.tick(e.clock.advance(), at)
		}
		for len(e.pending) > 0 && e.pending[0].frame < e.blockEnd {
			t := heap.Pop(&e.pending).(pendingTrigger)
			e.play(t.pad, t.frame)
		}
		e.render(out, pos, end)
		e.frame = e.blockEnd
	}
	e.publish()
}

func (e *Engine) apply(cmd command) {
	switch cmd.kind {
	case cmdPadDown:
		e.held[cmd.pad] = true
		e.play(cmd.pad, e.frame)
		if e.armed && e.clock.running {
			e.record(cmd.pad)
		}
	case cmdPadUp:
		e.held[cmd.pad] = false
		for _, v := range e.active[cmd.pad] {
			if v.loop {
				v.stop()
			}
		}
	case cmdToggleStep:
		e.pattern.Toggle(e.bank, cmd.pad, cmd.step, e.params[cmd.pad].Subdivision())
	case cmdSetStep:
		e.pattern.Set(e.bank, cmd.pad, cmd.step, e.params[cmd.pad].Subdivision(), cmd.on)
	case cmdPlay:
		if !e.clock.running {
			e.clock.bpm = e.bpm.Load().(float64)
			e.clock.start(e.frame)
		}
	case cmdStop:
		e.clock.stop()
	case cmdSetBank:
		e.bank = cmd.bank
	case cmdClearPattern:
		e.pattern.Clear(cmd.bank, cmd.pad)
	case cmdCopyPattern:
		e.pattern.Copy(cmd.bank, cmd.pad, cmd.toBank, cmd.toPad)
	case cmdToggleMute:
		e.muted[cmd.pad] = !e.muted[cmd.pad]
	case cmdToggleSolo:
		e.soloed[cmd.pad] = !e.soloed[cmd.pad]
	case cmdArm:
		e.armed = cmd.on
	case cmdLoadSample:
		e.samples[cmd.pad] = cmd.sample
	case cmdSilence:
		for pad := range e.active {
			for _, v := range e.active[pad] {
				v.stop()
			}
		}
	}
}

// record stores a live hit. Hits on the pad's grid set the step, anything
// else becomes an off-grid note at the current sub-step.
func (e *Engine) record(pad int) {
	s := e.clock.subStep
	if s < 0 {
		s = 0
	}
	sub := e.params[pad].Subdivision()
	if IsDue(s, sub) {
		e.pattern.Set(e.bank, pad, VisualStep(s), sub, true)
		return
	}
	e.pattern.AddOffGrid(e.bank, pad, OffGridNote{SubStep: s, Frame: e.frame})
}

func (e *Engine) tick(subStep int, at uint64) {
	step := VisualStep(subStep)
	bpm := e.clock.bpm
	global := e.swing.Load().(float64)
	for pad, p := range e.params {
		sub := p.Subdivision()
		if IsDue(subStep, sub) && e.pattern.steps[e.bank][pad][step] {
			var delay uint64
			if IsMusicalOffBeat(step, sub) {
				d := SwingDelay(bpm, sub, global, p.Swing())
				delay = uint64(math.Round(d.Seconds() * e.sampleRate))
			}
			e.schedule(pad, at+delay)
		}
		for _, note := range e.pattern.offGrid[e.bank][pad] {
			if note.SubStep == subStep {
				e.schedule(pad, at)
			}
		}
	}
}

func (e *Engine) schedule(pad int, at uint64) {
	if at < e.blockEnd {
		e.play(pad, at)
		return
	}
	e.seq++
	heap.Push(&e.pending, pendingTrigger{frame: at, pad: pad, seq: e.seq})
}

// play triggers a pad at frame at if the mute and solo gate lets it through.
func (e *Engine) play(pad int, at uint64) {
	if !ShouldPlay(pad, e.muted[:], e.soloed[:]) {
		return
	}
	var wait int
	if at > e.frame {
		wait = int(at - e.frame)
	}
	err := e.trigger(pad, wait)
	switch {
	case err == nil:
		if e.verbose.Load() {
			log.Printf("engine: pad %d triggered at frame %d", pad+1, at)
		}
	case errors.Is(err, ErrMissingSample):
	default:
		log.Printf("engine: pad %d: %v", pad+1, err)
	}
}

func (e *Engine) trigger(pad, wait int) error {
	snd := e.samples[pad]
	if snd == nil {
		return ErrMissingSample
	}
	set := e.params[pad].triggerSettings()
	frames := float64(snd.Frames())
	start := set.trimStart * frames
	end := set.trimEnd * frames
	if end-start < 1 {
		return fmt.Errorf("%w: empty trim window", ErrVoiceStart)
	}
	if set.mono {
		for _, v := range e.active[pad] {
			v.stopAfter(wait)
		}
		e.active[pad] = e.reap(e.active[pad])
	}

	trimSeconds := (end - start) / float64(snd.rate)
	v := e.newVoice()
	v.sample = snd
	v.start, v.end, v.pos = start, end, start
	v.wait = wait
	v.loop = set.loopOnHold && e.held[pad]
	if set.oneShot {
		v.env = oneShotEnvelope()
	} else {
		v.env = newEnvelope(set.env, e.sampleRate)
	}
	switch {
	case v.loop:
		v.env.hold = true
		v.life = -1
	case set.oneShot:
		v.life = e.frames(trimSeconds)
	default:
		v.life = e.frames(math.Min(set.env.seconds(), trimSeconds))
	}
	if v.life == 0 {
		e.free = append(e.free, v)
		return fmt.Errorf("%w: zero length", ErrVoiceStart)
	}
	e.active[pad] = append(e.active[pad], v)
	return nil
}

func (e *Engine) frames(seconds float64) int {
	return int(math.Round(seconds * e.sampleRate))
}

func (e *Engine) newVoice() *voice {
	if n := len(e.free); n > 0 {
		v := e.free[n-1]
		e.free = e.free[:n-1]
		return v
	}
	return &voice{}
}

// reap removes finished voices and returns them to the free list.
func (e *Engine) reap(voices []*voice) []*voice {
	kept := voices[:0]
	for _, v := range voices {
		if v.done {
			v.reset()
			e.free = append(e.free, v)
			continue
		}
		kept = append(kept, v)
	}
	for i := len(kept); i < len(voices); i++ {
		voices[i] = nil
	}
	return kept
}

func (e *Engine) render(out [][]float32, from, to int) {
	l := e.mixL[:to-from]
	r := e.mixR[:to-from]
	for pad := range e.active {
		if len(e.active[pad]) == 0 {
			continue
		}
		live := e.params[pad].liveSettings()
		for _, v := range e.active[pad] {
			v.render(l, r, live, e.sampleRate)
		}
		e.active[pad] = e.reap(e.active[pad])
	}
	if len(out) == 1 {
		for n := range l {
			out[0][from+n] += float32((l[n] + r[n]) / 2)
		}
	} else {
		for n := range l {
			out[0][from+n] += float32(l[n])
			out[1][from+n] += float32(r[n])
		}
	}
	for n := range l {
		l[n], r[n] = 0, 0
	}
}

type pendingTrigger struct {
	frame uint64
	pad   int
	seq   uint64
}

// triggerQueue orders swing delayed triggers by frame.
type triggerQueue []pendingTrigger

func (q triggerQueue) Len() int { return len(q) }
func (q triggerQueue) Less(i, j int) bool {
	if q[i].frame != q[j].frame {
		return q[i].frame < q[j].frame
	}
	return q[i].seq < q[j].seq
}
func (q triggerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *triggerQueue) Push(x interface{}) { *q = append(*q, x.(pendingTrigger)) }
func (q *triggerQueue) Pop() interface{} {
	old := *q
	n := len(old)
	t := old[n-1]
	*q = old[:n-1]
	return t
}
