package audio

import (
	"reflect"
	"testing"
)

func TestToggleRespectsSubdivision(t *testing.T) {
	var p Pattern
	for step := 0; step < NumSteps; step++ {
		p.Toggle(0, 0, step, 4)
	}
	for step := 0; step < NumSteps; step++ {
		if want, got := step%4 == 0, p.Step(0, 0, step); want != got {
			t.Errorf("step %d: want %v, got %v", step, want, got)
		}
	}
	if p.Toggle(0, 0, 3, 4) {
		t.Errorf("toggle of an unaligned step reported a change")
	}
	if !p.Toggle(0, 0, 4, 4) || p.Step(0, 0, 4) {
		t.Errorf("second toggle should clear step 4")
	}
}

func TestToggleOutOfRange(t *testing.T) {
	var p Pattern
	for _, args := range [][3]int{{-1, 0, 0}, {NumBanks, 0, 0}, {0, NumPads, 0}, {0, 0, NumSteps}} {
		if p.Toggle(args[0], args[1], args[2], 16) {
			t.Errorf("toggle %v should be ignored", args)
		}
	}
}

func TestCopyIsDeep(t *testing.T) {
	var p Pattern
	p.Set(0, 0, 2, 16, true)
	p.AddOffGrid(0, 0, OffGridNote{SubStep: 3})

	p.Copy(0, 0, 1, 5)
	if want, got := p.Steps(0, 0), p.Steps(1, 5); want != got {
		t.Errorf("copied steps differ: want %v, got %v", want, got)
	}
	if want, got := []OffGridNote{{SubStep: 3}}, p.OffGrid(1, 5); !reflect.DeepEqual(want, got) {
		t.Errorf("copied off-grid notes: want %v, got %v", want, got)
	}

	p.Set(0, 0, 2, 16, false)
	p.AddOffGrid(0, 0, OffGridNote{SubStep: 11})
	if !p.Step(1, 5, 2) {
		t.Errorf("changing the source changed the copy")
	}
	if want, got := 1, len(p.OffGrid(1, 5)); want != got {
		t.Errorf("copy has %d off-grid notes, want %d", got, want)
	}
}

func TestClear(t *testing.T) {
	var p Pattern
	p.Set(2, 7, 0, 16, true)
	p.AddOffGrid(2, 7, OffGridNote{SubStep: 5})
	p.Clear(2, 7)
	if p.Steps(2, 7) != ([NumSteps]bool{}) {
		t.Errorf("steps not cleared")
	}
	if n := len(p.OffGrid(2, 7)); n != 0 {
		t.Errorf("want no off-grid notes, got %d", n)
	}
}
