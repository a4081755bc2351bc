package audio

import (
	"sync/atomic"
)

type commandKind int

const (
	cmdPadDown commandKind = iota
	cmdPadUp
	cmdToggleStep
	cmdSetStep
	cmdPlay
	cmdStop
	cmdSetBank
	cmdClearPattern
	cmdCopyPattern
	cmdToggleMute
	cmdToggleSolo
	cmdArm
	cmdLoadSample
	cmdSilence
)

// command is a control message applied by the audio thread at the start of
// the next buffer.
type command struct {
	kind   commandKind
	pad    int
	bank   int
	step   int
	toPad  int
	toBank int
	on     bool
	sample *Sample
}

// eventBuffer is a lock-free spsc queue.
type eventBuffer struct {
	events      []command
	read, write *uint32
}

func newEventBuffer(size int) *eventBuffer {
	if size <= 0 || size&(size-1) != 0 {
		panic("event buffer size must be a power of 2")
	}
	return &eventBuffer{
		events: make([]command, size),
		read:   new(uint32),
		write:  new(uint32),
	}
}

// push adds a command and reports false when the buffer is full.
func (b *eventBuffer) push(cmd command) bool {
	write := atomic.LoadUint32(b.write)
	if write-atomic.LoadUint32(b.read) == uint32(len(b.events)) {
		return false
	}
	b.events[write%uint32(len(b.events))] = cmd
	atomic.StoreUint32(b.write, write+1)
	return true
}

// drain calls f for every queued command in order.
func (b *eventBuffer) drain(f func(command)) {
	read := atomic.LoadUint32(b.read)
	write := atomic.LoadUint32(b.write)
	for read != write {
		idx := read % uint32(len(b.events))
		cmd := b.events[idx]
		b.events[idx].sample = nil
		f(cmd)
		read++
	}
	atomic.StoreUint32(b.read, read)
}
