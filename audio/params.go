package audio

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Names of the per pad parameters. The property key of a parameter is the name
// followed by the 1-based pad number, e.g. "attack.3".
const (
	ParamAttack      = "attack"
	ParamDecay       = "decay"
	ParamSustain     = "sustain"
	ParamRelease     = "release"
	ParamPitch       = "pitch"
	ParamTune        = "tune"
	ParamVolume      = "volume"
	ParamFilterType  = "filter"
	ParamFilterFreq  = "freq"
	ParamFilterRes   = "res"
	ParamTrimStart   = "start"
	ParamTrimEnd     = "end"
	ParamPolyMode    = "poly"
	ParamLoopOnHold  = "loop"
	ParamOneShot     = "oneshot"
	ParamSwing       = "swing"
	ParamSubdivision = "sub"
)

// ParamNames lists the settable pad parameters in display order.
var ParamNames = []string{
	ParamVolume, ParamPitch, ParamTune, ParamAttack, ParamDecay, ParamSustain, ParamRelease,
	ParamFilterType, ParamFilterFreq, ParamFilterRes, ParamTrimStart, ParamTrimEnd,
	ParamPolyMode, ParamLoopOnHold, ParamOneShot, ParamSwing, ParamSubdivision,
}

const (
	FilterLowpass  = "lowpass"
	FilterHighpass = "highpass"
	FilterBandpass = "bandpass"
	FilterNotch    = "notch"
	FilterAllpass  = "allpass"

	Poly = "poly"
	Mono = "mono"
)

// minTrim is the smallest distance kept between trim start and trim end.
const minTrim = 0.01

func padKey(name string, pad int) string {
	return name + "." + strconv.Itoa(pad+1)
}

// PadParams holds the settings of a single pad. Every field is backed by a
// property so the control thread can write while the audio thread reads.
type PadParams struct {
	attack      *atomic.Value
	decay       *atomic.Value
	sustain     *atomic.Value
	release     *atomic.Value
	pitch       *atomic.Value
	volume      *atomic.Value
	filterType  *atomic.Value
	filterFreq  *atomic.Value
	filterRes   *atomic.Value
	trimStart   *atomic.Value
	trimEnd     *atomic.Value
	polyMode    *atomic.Value
	loopOnHold  *atomic.Value
	oneShot     *atomic.Value
	swing       *atomic.Value
	subdivision *atomic.Value
}

func registerPadParams(props *Props, pad int) *PadParams {
	p := &PadParams{}
	key := func(name string) string { return padKey(name, pad) }

	p.attack = props.MustRegister(key(ParamAttack), setFloat64(0, 10), 0.01)
	p.decay = props.MustRegister(key(ParamDecay), setFloat64(0, 10), 7.0)
	p.sustain = props.MustRegister(key(ParamSustain), setFloat64(0, 1), 0.8)
	p.release = props.MustRegister(key(ParamRelease), setFloat64(0, 10), 8.0)
	p.pitch = props.MustRegister(key(ParamPitch), setFloat64(0.25, 4), 1.0)
	p.volume = props.MustRegister(key(ParamVolume), setFloat64(0, 1), 0.8)
	p.filterType = props.MustRegister(key(ParamFilterType),
		setChoice(FilterLowpass, FilterHighpass, FilterBandpass, FilterNotch, FilterAllpass), FilterLowpass)
	p.filterFreq = props.MustRegister(key(ParamFilterFreq), setFloat64(20, 20_000), 8000.0)
	p.filterRes = props.MustRegister(key(ParamFilterRes), setFloat64(0.1, 20), 1.0)
	p.trimEnd = props.MustRegister(key(ParamTrimEnd), setTrim(false, func() *atomic.Value { return p.trimStart }), 1.0)
	p.trimStart = props.MustRegister(key(ParamTrimStart), setTrim(true, func() *atomic.Value { return p.trimEnd }), 0.0)
	p.polyMode = props.MustRegister(key(ParamPolyMode), setChoice(Poly, Mono), Poly)
	p.loopOnHold = props.MustRegister(key(ParamLoopOnHold), setBool, false)
	p.oneShot = props.MustRegister(key(ParamOneShot), setBool, false)
	p.swing = props.MustRegister(key(ParamSwing), setFloat64(0, 100), 0.0)
	p.subdivision = props.MustRegister(key(ParamSubdivision), setIntChoice(1, 2, 4, 8, 16, 32), 16)
	return p
}

// setTrim keeps trim start at least minTrim below trim end. other returns the
// opposite bound, which may not be registered yet.
func setTrim(isStart bool, other func() *atomic.Value) setter {
	return func(v interface{}, dest *atomic.Value) error {
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		if f < 0 || f > 1 {
			return fmt.Errorf("property value is not in valid range 0 - 1: %v", f)
		}
		if o := other(); o != nil {
			bound := o.Load().(float64)
			if isStart {
				f = math.Max(0, math.Min(f, bound-minTrim))
			} else {
				f = math.Min(1, math.Max(f, bound+minTrim))
			}
		}
		dest.Store(f)
		return nil
	}
}

// envelopeSettings are captured once per trigger.
type envelopeSettings struct {
	attack, decay, sustain, release float64
}

type triggerSettings struct {
	env        envelopeSettings
	trimStart  float64
	trimEnd    float64
	mono       bool
	loopOnHold bool
	oneShot    bool
}

// liveSettings are read again for every rendered block.
type liveSettings struct {
	volume     float64
	pitch      float64
	filterType string
	filterFreq float64
	filterRes  float64
}

func (p *PadParams) triggerSettings() triggerSettings {
	return triggerSettings{
		env: envelopeSettings{
			attack:  p.attack.Load().(float64),
			decay:   p.decay.Load().(float64),
			sustain: p.sustain.Load().(float64),
			release: p.release.Load().(float64),
		},
		trimStart:  p.trimStart.Load().(float64),
		trimEnd:    p.trimEnd.Load().(float64),
		mono:       p.polyMode.Load().(string) == Mono,
		loopOnHold: p.loopOnHold.Load().(bool),
		oneShot:    p.oneShot.Load().(bool),
	}
}

func (p *PadParams) liveSettings() liveSettings {
	return liveSettings{
		volume:     p.volume.Load().(float64),
		pitch:      p.pitch.Load().(float64),
		filterType: p.filterType.Load().(string),
		filterFreq: p.filterFreq.Load().(float64),
		filterRes:  p.filterRes.Load().(float64),
	}
}

func (p *PadParams) Subdivision() int { return p.subdivision.Load().(int) }
func (p *PadParams) Swing() float64 { return p.swing.Load().(float64) }
func (p *PadParams) LoopOnHold() bool { return p.loopOnHold.Load().(bool) }
func (p *PadParams) TrimStart() float64 { return p.trimStart.Load().(float64) }
func (p *PadParams) TrimEnd() float64 { return p.trimEnd.Load().(float64) }
func (p *PadParams) Pitch() float64 { return p.pitch.Load().(float64) }
func (p *PadParams) FilterType() string { return p.filterType.Load().(string) }
func (p *PadParams) PolyMode() string { return p.polyMode.Load().(string) }

// Tune returns the pitch expressed in semitones.
func (p *PadParams) Tune() float64 {
	return 12 * math.Log2(p.Pitch())
}

// TuneToPitch converts a transposition in semitones to a playback rate.
func TuneToPitch(semitones float64) float64 {
	return math.Pow(2, semitones/12)
}
