package audio

// OffGridNote is a recorded hit that did not line up with the pad's step
// grid. It replays whenever the clock reaches SubStep again.
type OffGridNote struct {
	SubStep int
	Frame   uint64 // engine frame at which the hit was recorded
}

// Pattern stores the step grid and the off-grid notes of every bank and pad.
// It is owned by the audio thread.
type Pattern struct {
	steps   [NumBanks][NumPads][NumSteps]bool
	offGrid [NumBanks][NumPads][]OffGridNote
}

func validSlot(bank, pad int) bool {
	return bank >= 0 && bank < NumBanks && pad >= 0 && pad < NumPads
}

func (p *Pattern) Step(bank, pad, step int) bool {
	if !validSlot(bank, pad) || step < 0 || step >= NumSteps {
		return false
	}
	return p.steps[bank][pad][step]
}

func (p *Pattern) Steps(bank, pad int) [NumSteps]bool {
	if !validSlot(bank, pad) {
		return [NumSteps]bool{}
	}
	return p.steps[bank][pad]
}

// OffGrid returns a copy of the off-grid notes recorded for a pad.
func (p *Pattern) OffGrid(bank, pad int) []OffGridNote {
	if !validSlot(bank, pad) {
		return nil
	}
	return append([]OffGridNote(nil), p.offGrid[bank][pad]...)
}

// Toggle flips a step. Steps that are not on the subdivision grid are left
// alone and Toggle reports false.
func (p *Pattern) Toggle(bank, pad, step, subdivision int) bool {
	if !validSlot(bank, pad) || step < 0 || step >= NumSteps || !StepAllowed(step, subdivision) {
		return false
	}
	p.steps[bank][pad][step] = !p.steps[bank][pad][step]
	return true
}

// Set is like Toggle but assigns the step.
func (p *Pattern) Set(bank, pad, step, subdivision int, on bool) bool {
	if !validSlot(bank, pad) || step < 0 || step >= NumSteps || !StepAllowed(step, subdivision) {
		return false
	}
	p.steps[bank][pad][step] = on
	return true
}

func (p *Pattern) AddOffGrid(bank, pad int, n OffGridNote) {
	if !validSlot(bank, pad) || n.SubStep < 0 || n.SubStep >= SubStepsPerBar {
		return
	}
	p.offGrid[bank][pad] = append(p.offGrid[bank][pad], n)
}

// Clear removes all steps and off-grid notes of a pad.
func (p *Pattern) Clear(bank, pad int) {
	if !validSlot(bank, pad) {
		return
	}
	p.steps[bank][pad] = [NumSteps]bool{}
	p.offGrid[bank][pad] = nil
}

// Copy replaces the destination with a deep copy of the source.
func (p *Pattern) Copy(fromBank, fromPad, toBank, toPad int) {
	if !validSlot(fromBank, fromPad) || !validSlot(toBank, toPad) {
		return
	}
	if fromBank == toBank && fromPad == toPad {
		return
	}
	p.steps[toBank][toPad] = p.steps[fromBank][fromPad]
	p.offGrid[toBank][toPad] = append([]OffGridNote(nil), p.offGrid[fromBank][fromPad]...)
}
