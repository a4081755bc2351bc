package midi

import (
	"reflect"
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
)

type padEvent struct {
	pad  int
	down bool
}

type fakePads struct {
	events []padEvent
}

func (f *fakePads) PadDown(pad int) error {
	f.events = append(f.events, padEvent{pad, true})
	return nil
}

func (f *fakePads) PadUp(pad int) error {
	f.events = append(f.events, padEvent{pad, false})
	return nil
}

func TestDispatch(t *testing.T) {
	pads := &fakePads{}
	msgs := []gomidi.Message{
		gomidi.NoteOn(9, 36, 100),
		gomidi.NoteOff(9, 36),
		gomidi.NoteOn(0, 51, 127),
		gomidi.NoteOn(0, 51, 0),
		gomidi.NoteOn(9, 35, 100),      // below the pads
		gomidi.NoteOn(9, 52, 100),      // above the pads
		gomidi.ControlChange(0, 1, 64), // ignored
	}
	for _, msg := range msgs {
		if err := dispatch(msg, 36, pads); err != nil {
			t.Fatal(err)
		}
	}
	want := []padEvent{
		{0, true},
		{0, false},
		{15, true},
		{15, false},
	}
	if !reflect.DeepEqual(want, pads.events) {
		t.Errorf("want %v, got %v", want, pads.events)
	}
}

func TestPadForNote(t *testing.T) {
	tests := []struct {
		note, base uint8
		pad        int
		ok         bool
	}{
		{36, 36, 0, true},
		{40, 36, 4, true},
		{51, 36, 15, true},
		{52, 36, 0, false},
		{35, 36, 0, false},
		{0, 0, 0, true},
	}
	for _, test := range tests {
		pad, ok := PadForNote(test.note, test.base)
		if pad != test.pad || ok != test.ok {
			t.Errorf("note %d base %d: want (%d, %v), got (%d, %v)",
				test.note, test.base, test.pad, test.ok, pad, ok)
		}
	}
}
