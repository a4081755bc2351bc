package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// StreamReader exposes sources as interleaved stereo float32 little endian
// frames.
type StreamReader struct {
	mu      sync.Mutex
	sources []Source
	bufs    [2][]float32
}

func NewStreamReader(sources ...Source) *StreamReader {
	return &StreamReader{sources: sources}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	for ch := range r.bufs {
		if cap(r.bufs[ch]) < frames {
			r.bufs[ch] = make([]float32, frames)
		}
		r.bufs[ch] = r.bufs[ch][:frames]
	}
	mix(r.bufs[:], r.sources)
	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint32(p[i*8:], math.Float32bits(r.bufs[0][i]))
		binary.LittleEndian.PutUint32(p[i*8+4:], math.Float32bits(r.bufs[1][i]))
	}
	return frames * 8, nil
}

func (r *StreamReader) Close() error { return nil }

// StreamPlayer plays sources through the ebiten audio context.
type StreamPlayer struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

var (
	contextOnce       sync.Once
	contextSampleRate int
	audioContext      *ebitaudio.Context
)

func sharedContext(sampleRate int) (*ebitaudio.Context, error) {
	contextOnce.Do(func() {
		contextSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if contextSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", contextSampleRate, sampleRate)
	}
	return audioContext, nil
}

func NewStreamPlayer(sampleRate int, sources ...Source) (*StreamPlayer, error) {
	ctx, err := sharedContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(sources...)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	return &StreamPlayer{player: pl, reader: reader}, nil
}

func (p *StreamPlayer) Start() error {
	p.player.Play()
	return nil
}

func (p *StreamPlayer) Stop() error {
	p.player.Pause()
	if err := p.player.Close(); err != nil {
		return err
	}
	return p.reader.Close()
}
