package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mitchellh/go-homedir"
	"github.com/mrdg/pads/audio"
	"github.com/mrdg/pads/config"
)

func newTestEnv() (*env, *bytes.Buffer) {
	engine := audio.NewEngine(22050, audio.NewProps())
	var out bytes.Buffer
	return &env{engine: engine, input: engine.NewInput(), out: &out}, &out
}

// flush lets the engine apply queued commands.
func flush(e *env) {
	buf := [][]float32{make([]float32, 64), make([]float32, 64)}
	e.engine.Process(buf)
}

func mustEval(t *testing.T, e *env, input string) {
	t.Helper()
	if err := e.eval(input); err != nil {
		t.Fatalf("%s: %v", input, err)
	}
}

func gridSteps(st audio.Status, pad int) []int {
	var steps []int
	for step, on := range st.Grid[pad] {
		if on {
			steps = append(steps, step)
		}
	}
	return steps
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStepCommands(t *testing.T) {
	e, _ := newTestEnv()
	mustEval(t, e, "step 1 1 5 9 13; steps 3 '*/2")
	mustEval(t, e, "select 4; toggle 2 3")
	flush(e)

	st := e.engine.Status()
	if want, got := []int{0, 4, 8, 12}, gridSteps(st, 0); !equalInts(want, got) {
		t.Errorf("pad 1: want %v, got %v", want, got)
	}
	if want, got := []int{2, 6, 10, 14}, gridSteps(st, 2); !equalInts(want, got) {
		t.Errorf("pad 3: want %v, got %v", want, got)
	}
	if want, got := []int{1, 2}, gridSteps(st, 3); !equalInts(want, got) {
		t.Errorf("pad 4: want %v, got %v", want, got)
	}

	mustEval(t, e, "clear 1; toggle 3")
	flush(e)
	st = e.engine.Status()
	if got := gridSteps(st, 0); len(got) != 0 {
		t.Errorf("pad 1 should be cleared, got %v", got)
	}
	if want, got := []int{1}, gridSteps(st, 3); !equalInts(want, got) {
		t.Errorf("pad 4: want %v, got %v", want, got)
	}
}

func TestStepOffGrid(t *testing.T) {
	e, out := newTestEnv()
	mustEval(t, e, "sub 2 4")
	if err := e.eval("step 2 2"); err == nil {
		t.Errorf("expected error for a step off the quarter note grid")
	}
	mustEval(t, e, "steps 2 '*//*")
	flush(e)
	if want, got := []int{0, 4, 8, 12}, gridSteps(e.engine.Status(), 1); !equalInts(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}
	if !strings.Contains(out.String(), "skipped 12 steps") {
		t.Errorf("expected skipped steps to be reported, got %q", out.String())
	}
}

func TestTransportCommands(t *testing.T) {
	e, _ := newTestEnv()
	mustEval(t, e, "tempo 90; swing 40; bank 2; write")
	flush(e)

	if want, got := 90., e.engine.Tempo(); want != got {
		t.Errorf("want %v, got %v", want, got)
	}
	st := e.engine.Status()
	if want, got := 40., st.Swing; want != got {
		t.Errorf("want %v, got %v", want, got)
	}
	if want, got := 1, st.Bank; want != got {
		t.Errorf("want %v, got %v", want, got)
	}
	if !st.Armed {
		t.Errorf("expected recording to be armed")
	}

	mustEval(t, e, "tempo reset; write; play")
	flush(e)
	st = e.engine.Status()
	if want, got := audio.DefaultTempo, e.engine.Tempo(); want != got {
		t.Errorf("want %v, got %v", want, got)
	}
	if st.Armed {
		t.Errorf("expected recording to be disarmed")
	}
	if !st.Running {
		t.Errorf("expected the clock to run")
	}
}

func TestMuteSolo(t *testing.T) {
	e, _ := newTestEnv()
	mustEval(t, e, "mute 1 2; select 5; solo")
	flush(e)
	st := e.engine.Status()
	if !st.Pads[0].Muted || !st.Pads[1].Muted || st.Pads[2].Muted {
		t.Errorf("want pads 1 and 2 muted, got %+v", st.Pads[:3])
	}
	if !st.Pads[4].Soloed {
		t.Errorf("want pad 5 soloed")
	}
}

func TestSetGet(t *testing.T) {
	e, out := newTestEnv()
	mustEval(t, e, "set 1 volume 0.5; set 1 filter highpass; set 1 tune 12; preset 2 hat")
	mustEval(t, e, "get 1 volume")
	if want, got := "volume   0.5\n", out.String(); want != got {
		t.Errorf("want %q, got %q", want, got)
	}
	if want, got := 2., e.engine.Params(0).Pitch(); want != got {
		t.Errorf("want %v, got %v", want, got)
	}
	if want, got := audio.FilterHighpass, e.engine.Params(0).FilterType(); want != got {
		t.Errorf("want %v, got %v", want, got)
	}
	if want, got := audio.Mono, e.engine.Params(1).PolyMode(); want != got {
		t.Errorf("want %v, got %v", want, got)
	}
	if err := e.eval("set 1 volume 2"); err == nil {
		t.Errorf("expected range error")
	}
	if err := e.eval("preset 1 nope"); err == nil {
		t.Errorf("expected error for an unknown preset")
	}
}

func TestKitAndInfo(t *testing.T) {
	e, out := newTestEnv()
	if err := e.eval("info 1"); !errors.Is(err, audio.ErrMissingSample) {
		t.Errorf("want %v, got %v", audio.ErrMissingSample, err)
	}
	mustEval(t, e, "kit")
	flush(e)
	st := e.engine.Status()
	for pad, ps := range st.Pads {
		if !ps.HasSample {
			t.Errorf("pad %d has no sample after loading the kit", pad+1)
		}
	}
	mustEval(t, e, "info 1")
	if !strings.Contains(out.String(), "trim 0.000s") {
		t.Errorf("unexpected info output: %q", out.String())
	}
	out.Reset()
	mustEval(t, e, "show")
	if !strings.Contains(out.String(), "bpm") {
		t.Errorf("unexpected show output: %q", out.String())
	}
}

func TestEvalErrors(t *testing.T) {
	e, _ := newTestEnv()
	for _, input := range []string{
		"nope",
		"play 1",
		"step 1",
		"step 17 1",
		"step 1 17",
		"bank 5",
		"hit 0",
		"copy 1 2 3",
		"write maybe",
		"tempo fast",
		`load 1 "does-not-exist.wav"`,
	} {
		if err := e.eval(input); err == nil {
			t.Errorf("expected error for input: %q", input)
		}
	}
	if err := e.eval("quit"); !errors.Is(err, errQuit) {
		t.Errorf("want %v, got %v", errQuit, err)
	}
}

func TestInfoShowsLoop(t *testing.T) {
	e, out := newTestEnv()
	mustEval(t, e, "kit; set 1 loop on")
	flush(e)
	mustEval(t, e, "info 1")
	if !strings.Contains(out.String(), "poly, loop") {
		t.Errorf("unexpected info output: %q", out.String())
	}
	out.Reset()
	mustEval(t, e, "info 2")
	if strings.Contains(out.String(), "loop") {
		t.Errorf("pad 2 does not loop: %q", out.String())
	}
}

func TestSave(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()

	e, _ := newTestEnv()
	if err := e.eval("save"); err == nil {
		t.Errorf("expected error without a config")
	}
	e.cfg = config.Default()
	mustEval(t, e, "tempo 100; swing 30")
	flush(e)
	mustEval(t, e, "save")

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if want, got := 100., cfg.Tempo; want != got {
		t.Errorf("want %v, got %v", want, got)
	}
	if want, got := 30., cfg.Swing; want != got {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestSampleNameTruncation(t *testing.T) {
	tests := []struct {
		sample string
		want   string
	}{
		{"kick.wav", "kick      "},
		{"ääääääääää.wav", "ääääääääää"},
		{"ääääääääääää.wav", "äääääääää…"},
		{"日本語のサンプル名前です.wav", "日本語のサンプル名…"},
	}
	for _, test := range tests {
		got := formatSampleName(audio.PadStatus{HasSample: true, Sample: test.sample}, 10)
		if !utf8.ValidString(got) {
			t.Errorf("%s: invalid utf-8 %q", test.sample, got)
		}
		if !strings.Contains(got, strings.TrimRight(test.want, " ")) {
			t.Errorf("%s: want %q, got %q", test.sample, test.want, got)
		}
	}
}
