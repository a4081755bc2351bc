package cue

import (
	"fmt"
	"math"
)

type matchItem struct {
	level   int
	matcher matcher
}

type matcher interface {
	match(i int) bool
}

type rangeMatch struct {
	start, end int
}

func (r rangeMatch) match(i int) bool {
	return (i >= r.start || r.start == -1) && (i <= r.end || r.end == -1)
}

var matchAll = rangeMatch{-1, -1}

type listMatch []int

func (l listMatch) match(i int) bool {
	for _, k := range l {
		if k == i {
			return true
		}
	}
	return false
}

// Steps evaluates the expression against a 4/4 bar divided into stepsPerBar
// steps.
func (m MatchExpr) Steps(stepsPerBar int) ([]bool, error) {
	return m.Eval(4, 4, stepsPerBar)
}

// Eval evaluates the expression for a bar with the given time signature. The
// first level of the expression selects beats, every following level halves
// the note value. stepSize is the number of steps in a whole note.
func (m MatchExpr) Eval(numerator, denominator, stepSize int) ([]bool, error) {
	if denominator <= 0 || stepSize < denominator {
		return nil, fmt.Errorf("invalid time signature %d/%d for step size %d", numerator, denominator, stepSize)
	}
	seq := make([]bool, (stepSize/denominator)*numerator)

	for i := len(m.matchers) - 1; i >= 0; i-- {
		item := m.matchers[i]
		level := int(float64(denominator) * math.Pow(2.0, float64(item.level)))
		if level > stepSize {
			return nil, fmt.Errorf("can't match on %d notes with step size %d", level, stepSize)
		}
		skip := stepSize / level
		notesPerBeat := level / denominator

		for note, steps := 0, 0; note < len(seq); note += skip {
			// number the note relative to others on the same division, e.g. the 16th
			// notes within a beat are numbered 0 to 3
			noteNum := steps % notesPerBeat
			if notesPerBeat == 1 {
				noteNum = steps
			}
			steps++

			// matchers count from 1
			if item.matcher.match(noteNum + 1) {
				if i == len(m.matchers)-1 {
					seq[note] = true
				}
			} else {
				for j := note; j < note+skip && j < len(seq); j++ {
					seq[j] = false
				}
			}
		}
	}
	return seq, nil
}
