package audio

import "math"

const numCoefficients = 5

// filter is a stereo biquad based on https://www.w3.org/2011/audio/audio-eq-cookbook.html
type filter struct {
	coefficients [numCoefficients]float64

	// last settings the coefficients were computed for
	kind string
	freq float64
	q    float64

	// state per channel
	y1, y2 [2]float64 // y[n-1] y[n-2]
}

func (f *filter) reset() {
	f.y1 = [2]float64{}
	f.y2 = [2]float64{}
	f.kind = ""
}

// update recalculates the coefficients when the settings changed.
func (f *filter) update(kind string, freq, q, sampleRate float64) {
	if kind == f.kind && freq == f.freq && q == f.q {
		return
	}
	f.kind, f.freq, f.q = kind, freq, q
	f.calculateCoefficients(sampleRate)
}

func (f *filter) calculateCoefficients(sampleRate float64) {
	freq := math.Min(f.freq, sampleRate*0.49)
	q := math.Max(f.q, 0.0001)
	omega := 2 * math.Pi * freq / sampleRate
	cos := math.Cos(omega)
	sin := math.Sin(omega)
	alpha := sin / (2. * q)

	var b0, b1, b2 float64
	a0 := 1 + alpha
	a1 := -2 * cos
	a2 := 1 - alpha

	switch f.kind {
	case FilterHighpass:
		b0 = (1 + cos) / 2
		b1 = -(1 + cos)
		b2 = b0
	case FilterBandpass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
	case FilterNotch:
		b0 = 1
		b1 = -2 * cos
		b2 = 1
	case FilterAllpass:
		b0 = 1 - alpha
		b1 = -2 * cos
		b2 = 1 + alpha
	default:
		b0 = (1 - cos) / 2
		b1 = 1 - cos
		b2 = b0
	}

	f.coefficients[0] = b0 / a0
	f.coefficients[1] = b1 / a0
	f.coefficients[2] = b2 / a0
	f.coefficients[3] = a1 / a0
	f.coefficients[4] = a2 / a0
}

func (f *filter) process(ch int, in float64) float64 {
	c := &f.coefficients
	out := c[0]*in + f.y1[ch]
	f.y1[ch] = c[1]*in - c[3]*out + f.y2[ch]
	f.y2[ch] = c[2]*in - c[4]*out
	return out
}
