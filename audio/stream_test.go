package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

type constSource struct {
	left, right float32
}

func (s constSource) Process(out [][]float32) {
	for n := range out[0] {
		out[0][n] += s.left
		out[1][n] += s.right
	}
}

func TestStreamReader(t *testing.T) {
	r := NewStreamReader(constSource{0.25, -0.5}, constSource{0.25, 0})
	p := make([]byte, 8*32+3)
	n, err := r.Read(p)
	if err != nil {
		t.Fatal(err)
	}
	if want, got := 8*32, n; want != got {
		t.Fatalf("want %d bytes, got %d", want, got)
	}
	for frame := 0; frame < 32; frame++ {
		left := math.Float32frombits(binary.LittleEndian.Uint32(p[frame*8:]))
		right := math.Float32frombits(binary.LittleEndian.Uint32(p[frame*8+4:]))
		if left != 0.5 || right != -0.5 {
			t.Fatalf("frame %d: want 0.5 -0.5, got %v %v", frame, left, right)
		}
	}

	// buffers are cleared between reads
	if _, err := r.Read(p); err != nil {
		t.Fatal(err)
	}
	if l := math.Float32frombits(binary.LittleEndian.Uint32(p)); l != 0.5 {
		t.Errorf("second read: want 0.5, got %v", l)
	}
}

func TestStreamReaderEngine(t *testing.T) {
	e, in := newTestEngine()
	must(t, in.LoadSample(0, constSample(t, testRate)))
	must(t, in.PadDown(0))
	r := NewStreamReader(e)
	p := make([]byte, 8*256)
	if _, err := r.Read(p); err != nil {
		t.Fatal(err)
	}
	if l := math.Float32frombits(binary.LittleEndian.Uint32(p[8*200:])); l == 0 {
		t.Errorf("expected engine output in the stream")
	}
}
