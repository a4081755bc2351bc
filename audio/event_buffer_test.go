package audio

import (
	"context"
	"runtime"
	"testing"
)

func TestEventBufferFull(t *testing.T) {
	buf := newEventBuffer(4)
	for n := 0; n < 4; n++ {
		if !buf.push(command{step: n}) {
			t.Fatalf("push %d failed", n)
		}
	}
	if buf.push(command{}) {
		t.Errorf("push into a full buffer should fail")
	}

	var steps []int
	buf.drain(func(cmd command) {
		steps = append(steps, cmd.step)
	})
	if want, got := 4, len(steps); want != got {
		t.Errorf("expected %v commands, got %v", want, got)
	}
	if !buf.push(command{}) {
		t.Errorf("push after drain should succeed")
	}
}

func TestEventBuffer(t *testing.T) {
	buf := newEventBuffer(8)

	done := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	var commands []command
	collect := func(cmd command) {
		commands = append(commands, cmd)
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				buf.drain(collect)
				done <- struct{}{}
				return
			default:
				buf.drain(collect)
				runtime.Gosched()
			}
		}
	}()

	const numCommands = 1_000_000
	for n := 0; n < numCommands; n++ {
		for !buf.push(command{step: n}) {
			runtime.Gosched()
		}
	}

	cancel()
	<-done

	if len(commands) != numCommands {
		t.Errorf("wrong number of commands: want %v, got %v", numCommands, len(commands))
	}

	prev := -1
	for _, cmd := range commands {
		if want, got := prev+1, cmd.step; want != got {
			t.Errorf("discontinuous command sequence: want: %v, got %v", want, got)
		}
		prev++
	}
}
