package audio

import (
	"fmt"

	"github.com/xyproto/synth"
)

const kitBitDepth = 16

var kitSounds = []synth.SoundType{
	synth.Kick, synth.Snare, synth.ClosedHH, synth.OpenHH,
	synth.Clap, synth.Rimshot, synth.Tom, synth.Percussion,
	synth.Ride, synth.Crash, synth.Bass, synth.Xylophone,
	synth.Lead, synth.Kick, synth.Snare, synth.ClosedHH,
}

// Kit synthesizes a drum sound for every pad.
func Kit(sampleRate int) ([NumPads]*Sample, error) {
	var kit [NumPads]*Sample
	for pad := range kit {
		kind := kitSounds[pad%len(kitSounds)]
		settings := synth.NewRandom(kind, nil, sampleRate, kitBitDepth, 1)
		wave, err := settings.Generate()
		if err != nil {
			return kit, fmt.Errorf("kit: pad %d: %w", pad+1, err)
		}
		if settings.SampleRate != sampleRate {
			wave = synth.Resample(wave, settings.SampleRate, sampleRate)
		}
		snd, err := NewSample(fmt.Sprintf("%s-%d", kitName(kind), pad+1), sampleRate, wave)
		if err != nil {
			return kit, fmt.Errorf("kit: pad %d: %w", pad+1, err)
		}
		kit[pad] = snd
	}
	return kit, nil
}

func kitName(kind synth.SoundType) string {
	switch kind {
	case synth.Kick:
		return "kick"
	case synth.Snare:
		return "snare"
	case synth.ClosedHH:
		return "closed-hh"
	case synth.OpenHH:
		return "open-hh"
	case synth.Clap:
		return "clap"
	case synth.Rimshot:
		return "rimshot"
	case synth.Tom:
		return "tom"
	case synth.Percussion:
		return "perc"
	case synth.Ride:
		return "ride"
	case synth.Crash:
		return "crash"
	case synth.Bass:
		return "bass"
	case synth.Xylophone:
		return "xylo"
	case synth.Lead:
		return "lead"
	}
	return "synth"
}
