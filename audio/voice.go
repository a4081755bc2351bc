package audio

import "math"

// voice plays one trigger of a pad's sample.
type voice struct {
	sample *Sample
	pos    float64 // read position in sample frames
	start  float64 // trim window in sample frames
	end    float64
	loop   bool
	env    envelope
	filter filter
	age    int // frames rendered since onset
	life   int // frames until the voice stops, -1 while looping
	wait   int // frames to skip before onset
	done   bool

	// a mono retrigger ends the voice at the new voice's onset
	stopping bool
	stopAt   int // frames into the next rendered block
}

func (v *voice) reset() {
	*v = voice{filter: v.filter}
	v.filter.reset()
}

// render mixes the voice into l and r. Volume, pitch and filter come from the
// pad's current settings.
func (v *voice) render(l, r []float64, live liveSettings, sampleRate float64) {
	if v.done {
		return
	}
	v.filter.update(live.filterType, live.filterFreq, live.filterRes, sampleRate)
	step := live.pitch * float64(v.sample.rate) / sampleRate
	n := len(l)
	if v.stopping && v.stopAt < n {
		n = v.stopAt
	}
	for i := 0; i < n; i++ {
		if v.wait > 0 {
			v.wait--
			continue
		}
		if v.pos >= v.end {
			if !v.loop {
				v.done = true
				return
			}
			v.pos = v.start + math.Mod(v.pos-v.start, v.end-v.start)
		}
		sl, sr := v.sample.frame(v.pos)
		gain := v.env.value() * live.volume
		l[i] += v.filter.process(0, sl) * gain
		r[i] += v.filter.process(1, sr) * gain
		v.pos += step
		v.age++
		if (v.life >= 0 && v.age >= v.life) || v.env.done() {
			v.done = true
			return
		}
	}
	if v.stopping {
		if v.stopAt <= len(l) {
			v.done = true
		} else {
			v.stopAt -= len(l)
		}
	}
}

// stopAfter ends the voice once frames more frames have been rendered.
func (v *voice) stopAfter(frames int) {
	if v.stopping && v.stopAt <= frames {
		return
	}
	v.stopping, v.stopAt = true, frames
}

func (v *voice) stop() {
	v.done = true
}
