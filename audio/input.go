package audio

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSample is returned internally when a pad without a sample is
	// triggered. It is never logged.
	ErrMissingSample = errors.New("no sample loaded")
	// ErrVoiceStart means a voice could not be started, e.g. because the trim
	// window is empty.
	ErrVoiceStart = errors.New("voice start failed")
	// ErrQueueFull is returned when the audio thread has not consumed earlier
	// commands yet.
	ErrQueueFull = errors.New("command queue full")
)

const inputQueueSize = 256

// Input sends control commands to the engine. An Input must only be used by a
// single goroutine; create one per producer with Engine.NewInput.
type Input struct {
	events *eventBuffer
}

func checkPad(pad int) error {
	if pad < 0 || pad >= NumPads {
		return fmt.Errorf("pad %d out of range 1 - %d", pad+1, NumPads)
	}
	return nil
}

func checkBank(bank int) error {
	if bank < 0 || bank >= NumBanks {
		return fmt.Errorf("bank %d out of range 1 - %d", bank+1, NumBanks)
	}
	return nil
}

func checkStep(step int) error {
	if step < 0 || step >= NumSteps {
		return fmt.Errorf("step %d out of range 1 - %d", step+1, NumSteps)
	}
	return nil
}

func (in *Input) send(cmd command) error {
	if !in.events.push(cmd) {
		return ErrQueueFull
	}
	return nil
}

func (in *Input) sendPad(kind commandKind, pad int) error {
	if err := checkPad(pad); err != nil {
		return err
	}
	return in.send(command{kind: kind, pad: pad})
}

// PadDown plays a pad and, while recording, records the hit.
func (in *Input) PadDown(pad int) error { return in.sendPad(cmdPadDown, pad) }

// PadUp releases a pad. Looping voices of the pad stop.
func (in *Input) PadUp(pad int) error { return in.sendPad(cmdPadUp, pad) }

// ToggleStep flips a step of a pad in the current bank. Steps off the pad's
// subdivision grid are ignored.
func (in *Input) ToggleStep(pad, step int) error {
	if err := checkPad(pad); err != nil {
		return err
	}
	if err := checkStep(step); err != nil {
		return err
	}
	return in.send(command{kind: cmdToggleStep, pad: pad, step: step})
}

func (in *Input) SetStep(pad, step int, on bool) error {
	if err := checkPad(pad); err != nil {
		return err
	}
	if err := checkStep(step); err != nil {
		return err
	}
	return in.send(command{kind: cmdSetStep, pad: pad, step: step, on: on})
}

func (in *Input) Play() error { return in.send(command{kind: cmdPlay}) }
func (in *Input) Stop() error { return in.send(command{kind: cmdStop}) }

func (in *Input) SetBank(bank int) error {
	if err := checkBank(bank); err != nil {
		return err
	}
	return in.send(command{kind: cmdSetBank, bank: bank})
}

// ClearPattern removes the steps and off-grid notes of a pad in bank.
func (in *Input) ClearPattern(bank, pad int) error {
	if err := checkBank(bank); err != nil {
		return err
	}
	if err := checkPad(pad); err != nil {
		return err
	}
	return in.send(command{kind: cmdClearPattern, bank: bank, pad: pad})
}

// CopyPattern deep copies the pattern of one bank and pad onto another.
func (in *Input) CopyPattern(fromBank, fromPad, toBank, toPad int) error {
	for _, b := range []int{fromBank, toBank} {
		if err := checkBank(b); err != nil {
			return err
		}
	}
	for _, p := range []int{fromPad, toPad} {
		if err := checkPad(p); err != nil {
			return err
		}
	}
	return in.send(command{kind: cmdCopyPattern, bank: fromBank, pad: fromPad, toBank: toBank, toPad: toPad})
}

func (in *Input) ToggleMute(pad int) error { return in.sendPad(cmdToggleMute, pad) }
func (in *Input) ToggleSolo(pad int) error { return in.sendPad(cmdToggleSolo, pad) }

// Arm enables or disables recording of pad hits.
func (in *Input) Arm(on bool) error { return in.send(command{kind: cmdArm, on: on}) }

// LoadSample assigns a sample to a pad. A nil sample unloads the pad.
func (in *Input) LoadSample(pad int, snd *Sample) error {
	if err := checkPad(pad); err != nil {
		return err
	}
	return in.send(command{kind: cmdLoadSample, pad: pad, sample: snd})
}

// Silence stops every active voice.
func (in *Input) Silence() error { return in.send(command{kind: cmdSilence}) }
