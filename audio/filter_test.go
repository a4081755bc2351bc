package audio

import (
	"math"
	"testing"
)

func settle(f *filter, in float64, n int) float64 {
	var out float64
	for i := 0; i < n; i++ {
		out = f.process(0, in)
	}
	return out
}

func TestFilterDC(t *testing.T) {
	tests := []struct {
		kind string
		want float64
	}{
		{FilterLowpass, 1},
		{FilterHighpass, 0},
		{FilterBandpass, 0},
		{FilterNotch, 1},
		{FilterAllpass, 1},
	}
	for _, test := range tests {
		var f filter
		f.update(test.kind, 1000, 1, 44100)
		if got := settle(&f, 1, 20000); !almostEqual(test.want, got, 1e-3) {
			t.Errorf("%s: DC gain want %v, got %v", test.kind, test.want, got)
		}
	}
}

func TestFilterLowpassAttenuatesHighFrequencies(t *testing.T) {
	var f filter
	f.update(FilterLowpass, 200, 1, 44100)
	var peak float64
	for n := 0; n < 44100; n++ {
		out := f.process(0, math.Sin(2*math.Pi*5000*float64(n)/44100))
		if n > 1000 {
			peak = math.Max(peak, math.Abs(out))
		}
	}
	if peak > 0.01 {
		t.Errorf("5kHz tone through 200Hz lowpass should be attenuated, peak %v", peak)
	}
}

func TestFilterChannelsIndependent(t *testing.T) {
	var f filter
	f.update(FilterLowpass, 1000, 1, 44100)
	settle(&f, 1, 100)
	if got := f.process(1, 0); got != 0 {
		t.Errorf("right channel picked up left channel state: %v", got)
	}
}
