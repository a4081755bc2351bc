package midi

import (
	"fmt"
	"log"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

const numPads = 16

// Pads receives pad presses.
type Pads interface {
	PadDown(pad int) error
	PadUp(pad int) error
}

// Input maps the notes of a MIDI controller to pads. Notes base to base+15
// are pads 1 to 16, on any channel.
type Input struct {
	port drivers.In
	base uint8
	pads Pads
	stop func()
}

// Open starts listening on the first input port whose name contains port.
func Open(port string, base uint8, pads Pads) (*Input, error) {
	in, err := gomidi.FindInPort(port)
	if err != nil {
		return nil, fmt.Errorf("midi: can't find input port %q: %w", port, err)
	}
	input := &Input{port: in, base: base, pads: pads}
	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		if err := dispatch(msg, input.base, input.pads); err != nil {
			log.Printf("midi: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("midi: open input: %w", err)
	}
	input.stop = stop
	return input, nil
}

// Name returns the name of the port being listened to.
func (in *Input) Name() string {
	return in.port.String()
}

func (in *Input) Close() error {
	if in.stop != nil {
		in.stop()
	}
	return nil
}

// PadForNote returns the pad for a note, or false if the note is outside the
// pad range.
func PadForNote(note, base uint8) (int, bool) {
	if note < base || int(note-base) >= numPads {
		return 0, false
	}
	return int(note - base), true
}

func dispatch(msg gomidi.Message, base uint8, pads Pads) error {
	var channel, note, velocity uint8
	switch {
	case msg.GetNoteOn(&channel, &note, &velocity):
		pad, ok := PadForNote(note, base)
		if !ok {
			return nil
		}
		// note on with zero velocity is a note off
		if velocity == 0 {
			return pads.PadUp(pad)
		}
		return pads.PadDown(pad)
	case msg.GetNoteOff(&channel, &note, &velocity):
		pad, ok := PadForNote(note, base)
		if !ok {
			return nil
		}
		return pads.PadUp(pad)
	}
	return nil
}

// Ports lists the names of the available input ports.
func Ports() []string {
	var names []string
	for _, in := range gomidi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}
