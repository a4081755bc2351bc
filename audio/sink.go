package audio

import (
	"github.com/gordonklaus/portaudio"
)

// Source renders audio into non-interleaved channel buffers, adding to their
// contents.
type Source interface {
	Process([][]float32)
}

// Output is an audio backend pulling from its sources.
type Output interface {
	Start() error
	Stop() error
}

// Sink plays its sources on the default portaudio output device.
type Sink struct {
	sources []Source
	stream  *portaudio.Stream
}

func NewSink(sampleRate, bufferSize int, sources ...Source) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	s := &Sink{sources: sources}
	stream, err := portaudio.OpenDefaultStream(0, 2, float64(sampleRate), bufferSize, s.Process)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	s.stream = stream
	return s, nil
}

func (s *Sink) Start() error {
	return s.stream.Start()
}

func (s *Sink) Stop() error {
	s.stream.Close()
	return portaudio.Terminate()
}

func (s *Sink) Process(samples [][]float32) {
	mix(samples, s.sources)
}

func mix(samples [][]float32, sources []Source) {
	for i := range samples {
		for j := range samples[i] {
			samples[i][j] = 0.
		}
	}
	for _, source := range sources {
		source.Process(samples)
	}
}
