package audio

import (
	"fmt"
	"sort"
)

// PadSetter is implemented by Engine.
type PadSetter interface {
	SetParam(pad int, name string, value interface{}) error
}

type preset map[string]interface{}

var presets = map[string]preset{
	"default": {
		ParamAttack:     0.01,
		ParamDecay:      7.,
		ParamSustain:    0.8,
		ParamRelease:    8.,
		ParamPitch:      1.,
		ParamVolume:     0.8,
		ParamFilterType: FilterLowpass,
		ParamFilterFreq: 8000.,
		ParamFilterRes:  1.,
		ParamPolyMode:   Poly,
		ParamLoopOnHold: false,
		ParamOneShot:    false,
	},
	"tight": {
		ParamAttack:   0.001,
		ParamDecay:    0.08,
		ParamSustain:  0.,
		ParamRelease:  0.05,
		ParamPolyMode: Mono,
	},
	"oneshot": {
		ParamOneShot:  true,
		ParamPolyMode: Poly,
	},
	"hat": {
		ParamFilterType: FilterHighpass,
		ParamFilterFreq: 6000.,
		ParamDecay:      0.15,
		ParamSustain:    0.,
		ParamRelease:    0.05,
		ParamPolyMode:   Mono,
	},
	"lofi": {
		ParamFilterType: FilterLowpass,
		ParamFilterFreq: 1800.,
		ParamFilterRes:  3.,
		ParamTune:       -2.,
	},
	"pad": {
		ParamAttack:     0.6,
		ParamSustain:    0.7,
		ParamRelease:    2.,
		ParamLoopOnHold: true,
		ParamPolyMode:   Mono,
	},
	"sub": {
		ParamTune:       -12.,
		ParamFilterType: FilterLowpass,
		ParamFilterFreq: 400.,
	},
}

// LoadPreset applies a named parameter bundle to a pad.
func LoadPreset(name string, pad int, d PadSetter) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %v", name)
	}
	for k, v := range p {
		if err := d.SetParam(pad, k, v); err != nil {
			return err
		}
	}
	return nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
