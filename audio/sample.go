package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/xyproto/synth"
	"github.com/youpy/go-wav"
)

// Sample is decoded audio that can be assigned to a pad. It is immutable once
// created, so the audio thread can read it without synchronization.
type Sample struct {
	name     string
	rate     int
	channels [][]float64
}

func NewSample(name string, rate int, channels ...[]float64) (*Sample, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", rate)
	}
	if len(channels) == 0 {
		return nil, errors.New("sample has no channels")
	}
	for _, ch := range channels[1:] {
		if len(ch) != len(channels[0]) {
			return nil, errors.New("sample channels differ in length")
		}
	}
	return &Sample{name: name, rate: rate, channels: channels}, nil
}

func (s *Sample) Name() string    { return s.name }
func (s *Sample) SampleRate() int { return s.rate }
func (s *Sample) Channels() int   { return len(s.channels) }
func (s *Sample) Frames() int     { return len(s.channels[0]) }

func (s *Sample) Duration() time.Duration {
	return time.Duration(float64(s.Frames()) / float64(s.rate) * float64(time.Second))
}

// frame returns the stereo value at a fractional position using linear
// interpolation. Mono samples are copied to both channels.
func (s *Sample) frame(pos float64) (float64, float64) {
	n := s.Frames()
	i := int(pos)
	if i < 0 || i >= n {
		return 0, 0
	}
	frac := pos - float64(i)
	j := i + 1
	if j >= n {
		j = i
	}
	left := s.channels[0]
	l := left[i] + (left[j]-left[i])*frac
	r := l
	if len(s.channels) > 1 {
		right := s.channels[1]
		r = right[i] + (right[j]-right[i])*frac
	}
	return l, r
}

// Resample returns the sample converted to rate.
func (s *Sample) Resample(rate int) *Sample {
	if rate == s.rate || rate <= 0 {
		return s
	}
	channels := make([][]float64, len(s.channels))
	for n, ch := range s.channels {
		channels[n] = synth.Resample(ch, s.rate, rate)
	}
	return &Sample{name: s.name, rate: rate, channels: channels}
}

// LoadSample decodes a WAV file. A leading ~ in path is expanded to the home
// directory.
func LoadSample(path string) (*Sample, error) {
	file, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	snd, err := DecodeSample(filepath.Base(file), f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", file, err)
	}
	return snd, nil
}

type readerAt interface {
	io.Reader
	io.ReaderAt
}

// DecodeSample reads WAV data. Only the first two channels are kept.
func DecodeSample(name string, data readerAt) (*Sample, error) {
	r := wav.NewReader(data)
	format, err := r.Format()
	if err != nil {
		return nil, err
	}
	numChannels := int(format.NumChannels)
	if numChannels == 0 {
		return nil, errors.New("no channels in wav data")
	}
	if numChannels > 2 {
		numChannels = 2
	}
	channels := make([][]float64, numChannels)
	for {
		samples, err := r.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, sample := range samples {
			for ch := range channels {
				channels[ch] = append(channels[ch], r.FloatValue(sample, uint(ch)))
			}
		}
	}
	if len(channels[0]) == 0 {
		return nil, errors.New("wav data contains no samples")
	}
	return NewSample(name, int(format.SampleRate), channels...)
}
