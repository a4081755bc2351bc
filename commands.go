package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mrdg/pads/audio"
	"github.com/mrdg/pads/config"
	"github.com/mrdg/pads/cue"
	"github.com/mrdg/pads/midi"
)

var errQuit = errors.New("quit")

type command struct {
	name    string
	usage   string
	run     func(*env, []cue.Node) error
	minArgs int
	maxArgs int // -1 means no limit
}

var commands []command

func init() {
	commands = []command{
		{"play", "play", playCommand, 0, 0},
		{"stop", "stop", stopCommand, 0, 0},
		{"tempo", "tempo <bpm>|reset", tempoCommand, 1, 1},
		{"swing", "swing <0-100>", swingCommand, 1, 1},
		{"bank", "bank <1-4>", bankCommand, 1, 1},
		{"hit", "hit <pad>...", hitCommand, 1, -1},
		{"down", "down <pad>", downCommand, 1, 1},
		{"up", "up <pad>", upCommand, 1, 1},
		{"select", "select <pad>", selectCommand, 1, 1},
		{"step", "step <pad> <step>...", stepCommand, 2, -1},
		{"toggle", "toggle <step>...", toggleCommand, 1, -1},
		{"steps", "steps [pad] '<match>", stepsCommand, 1, 2},
		{"clear", "clear [pad] [bank]", clearCommand, 0, 2},
		{"copy", "copy <pad> <pad> | copy <bank> <pad> <bank> <pad>", copyCommand, 2, 4},
		{"mute", "mute [pad]...", muteCommand, 0, -1},
		{"solo", "solo [pad]...", soloCommand, 0, -1},
		{"write", "write [on|off]", writeCommand, 0, 1},
		{"load", `load <pad> "<file>"`, loadCommand, 2, 2},
		{"kit", "kit [all]", kitCommand, 0, 1},
		{"set", "set <pad> <param> <value>", setCommand, 3, 3},
		{"get", "get <pad> [param]", getCommand, 1, 2},
		{"sub", "sub <pad> <1|2|4|8|16|32>", subCommand, 2, 2},
		{"preset", "preset <pad> <name>", presetCommand, 2, 2},
		{"info", "info [pad]", infoCommand, 0, 1},
		{"save", "save", saveCommand, 0, 0},
		{"show", "show", showCommand, 0, 0},
		{"silence", "silence", silenceCommand, 0, 0},
		{"ports", "ports", portsCommand, 0, 0},
		{"help", "help", helpCommand, 0, 0},
		{"quit", "quit", quitCommand, 0, 0},
	}
}

func playCommand(e *env, args []cue.Node) error { return e.input.Play() }
func stopCommand(e *env, args []cue.Node) error { return e.input.Stop() }

func silenceCommand(e *env, args []cue.Node) error { return e.input.Silence() }

func quitCommand(e *env, args []cue.Node) error { return errQuit }

func tempoCommand(e *env, args []cue.Node) error {
	if id, ok := args[0].(cue.Identifier); ok {
		if id != "reset" {
			return fmt.Errorf("expected a tempo or reset, got %s", id)
		}
		return e.engine.SetTempo(audio.DefaultTempo)
	}
	var bpm float64
	if err := readArgs(args, &bpm); err != nil {
		return err
	}
	return e.engine.SetTempo(bpm)
}

func swingCommand(e *env, args []cue.Node) error {
	var amount float64
	if err := readArgs(args, &amount); err != nil {
		return err
	}
	return e.engine.SetGlobalSwing(amount)
}

func bankCommand(e *env, args []cue.Node) error {
	var bank int
	if err := readArgs(args, &bank); err != nil {
		return err
	}
	return e.input.SetBank(bank - 1)
}

func hitCommand(e *env, args []cue.Node) error {
	pads, err := readPads(args)
	if err != nil {
		return err
	}
	for _, pad := range pads {
		if err := e.input.PadDown(pad); err != nil {
			return err
		}
		if err := e.input.PadUp(pad); err != nil {
			return err
		}
	}
	return nil
}

func downCommand(e *env, args []cue.Node) error {
	pad, err := readPad(args[0])
	if err != nil {
		return err
	}
	return e.input.PadDown(pad)
}

func upCommand(e *env, args []cue.Node) error {
	pad, err := readPad(args[0])
	if err != nil {
		return err
	}
	return e.input.PadUp(pad)
}

func selectCommand(e *env, args []cue.Node) error {
	pad, err := readPad(args[0])
	if err != nil {
		return err
	}
	e.selected = pad
	return nil
}

func stepCommand(e *env, args []cue.Node) error {
	pad, err := readPad(args[0])
	if err != nil {
		return err
	}
	return e.toggleSteps(pad, args[1:])
}

func toggleCommand(e *env, args []cue.Node) error {
	return e.toggleSteps(e.selected, args)
}

func (e *env) toggleSteps(pad int, args []cue.Node) error {
	steps, err := e.readSteps(pad, args)
	if err != nil {
		return err
	}
	for _, step := range steps {
		if err := e.input.ToggleStep(pad, step); err != nil {
			return err
		}
	}
	return nil
}

// readSteps reads 1-based step numbers and checks them against the pad's
// subdivision.
func (e *env) readSteps(pad int, args []cue.Node) ([]int, error) {
	sub := e.engine.Params(pad).Subdivision()
	steps := make([]int, len(args))
	for i, arg := range args {
		n, ok := arg.(cue.Int)
		if !ok {
			return nil, fmt.Errorf("argument error: expected a step number")
		}
		if n < 1 || n > audio.NumSteps {
			return nil, fmt.Errorf("step %d out of range 1-%d", n, audio.NumSteps)
		}
		if !audio.StepAllowed(int(n)-1, sub) {
			return nil, fmt.Errorf("step %d is not on the 1/%d grid of pad %d", n, sub, pad+1)
		}
		steps[i] = int(n) - 1
	}
	return steps, nil
}

func stepsCommand(e *env, args []cue.Node) error {
	pad := e.selected
	if len(args) == 2 {
		p, err := readPad(args[0])
		if err != nil {
			return err
		}
		pad = p
		args = args[1:]
	}
	var expr cue.MatchExpr
	if err := readArgs(args, &expr); err != nil {
		return err
	}
	seq, err := expr.Steps(audio.NumSteps)
	if err != nil {
		return err
	}
	sub := e.engine.Params(pad).Subdivision()
	var skipped int
	for step, on := range seq {
		if !on {
			continue
		}
		if !audio.StepAllowed(step, sub) {
			skipped++
			continue
		}
		if err := e.input.SetStep(pad, step, true); err != nil {
			return err
		}
	}
	if skipped > 0 {
		fmt.Fprintf(e.out, "skipped %d steps off the 1/%d grid\n", skipped, sub)
	}
	return nil
}

func clearCommand(e *env, args []cue.Node) error {
	pad, bank := e.selected, e.engine.Status().Bank
	if len(args) > 0 {
		p, err := readPad(args[0])
		if err != nil {
			return err
		}
		pad = p
	}
	if len(args) > 1 {
		if err := readArgs(args[1:], &bank); err != nil {
			return err
		}
		bank--
	}
	return e.input.ClearPattern(bank, pad)
}

func copyCommand(e *env, args []cue.Node) error {
	switch len(args) {
	case 2:
		pads, err := readPads(args)
		if err != nil {
			return err
		}
		bank := e.engine.Status().Bank
		return e.input.CopyPattern(bank, pads[0], bank, pads[1])
	case 4:
		var fromBank, fromPad, toBank, toPad int
		if err := readArgs(args, &fromBank, &fromPad, &toBank, &toPad); err != nil {
			return err
		}
		return e.input.CopyPattern(fromBank-1, fromPad-1, toBank-1, toPad-1)
	default:
		return fmt.Errorf("copy takes 2 or 4 arguments, got %d", len(args))
	}
}

func muteCommand(e *env, args []cue.Node) error {
	return e.eachPad(args, e.input.ToggleMute)
}

func soloCommand(e *env, args []cue.Node) error {
	return e.eachPad(args, e.input.ToggleSolo)
}

func (e *env) eachPad(args []cue.Node, f func(int) error) error {
	pads := []int{e.selected}
	if len(args) > 0 {
		var err error
		if pads, err = readPads(args); err != nil {
			return err
		}
	}
	for _, pad := range pads {
		if err := f(pad); err != nil {
			return err
		}
	}
	return nil
}

func writeCommand(e *env, args []cue.Node) error {
	on := !e.engine.Status().Armed
	if len(args) == 1 {
		var v string
		if err := readArgs(args, &v); err != nil {
			return err
		}
		switch v {
		case "on":
			on = true
		case "off":
			on = false
		default:
			return fmt.Errorf("expected on or off, got %s", v)
		}
	}
	return e.input.Arm(on)
}

func loadCommand(e *env, args []cue.Node) error {
	pad, err := readPad(args[0])
	if err != nil {
		return err
	}
	var file string
	if err := readArgs(args[1:], &file); err != nil {
		return err
	}
	snd, err := audio.LoadSample(file)
	if err != nil {
		return err
	}
	if err := e.loadSample(pad, snd); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "pad %d: %s (%v)\n", pad+1, snd.Name(), snd.Duration())
	return nil
}

func (e *env) loadSample(pad int, snd *audio.Sample) error {
	if rate := e.engine.SampleRate(); snd.SampleRate() != rate {
		snd = snd.Resample(rate)
	}
	return e.input.LoadSample(pad, snd)
}

func kitCommand(e *env, args []cue.Node) error {
	all := false
	if len(args) == 1 {
		var v string
		if err := readArgs(args, &v); err != nil {
			return err
		}
		if v != "all" {
			return fmt.Errorf("expected all, got %s", v)
		}
		all = true
	}
	return e.loadKit(all)
}

// loadKit puts a synthesized sound on every pad, or only on the pads without
// a sample unless all is set.
func (e *env) loadKit(all bool) error {
	kit, err := audio.Kit(e.engine.SampleRate())
	if err != nil {
		return err
	}
	st := e.engine.Status()
	for pad, snd := range kit {
		if !all && st.Pads[pad].HasSample {
			continue
		}
		if err := e.input.LoadSample(pad, snd); err != nil {
			return err
		}
	}
	return nil
}

func setCommand(e *env, args []cue.Node) error {
	pad, err := readPad(args[0])
	if err != nil {
		return err
	}
	var name string
	var value interface{}
	if err := readArgs(args[1:], &name, &value); err != nil {
		return err
	}
	return e.engine.SetParam(pad, name, value)
}

func getCommand(e *env, args []cue.Node) error {
	pad, err := readPad(args[0])
	if err != nil {
		return err
	}
	names := audio.ParamNames
	if len(args) == 2 {
		var name string
		if err := readArgs(args[1:], &name); err != nil {
			return err
		}
		names = []string{name}
	}
	for _, name := range names {
		v, err := e.engine.GetParam(pad, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.out, "%-8s %v\n", name, v)
	}
	return nil
}

func subCommand(e *env, args []cue.Node) error {
	pad, err := readPad(args[0])
	if err != nil {
		return err
	}
	var d int
	if err := readArgs(args[1:], &d); err != nil {
		return err
	}
	return e.engine.SetSubdivision(pad, d)
}

func presetCommand(e *env, args []cue.Node) error {
	pad, err := readPad(args[0])
	if err != nil {
		return err
	}
	var name string
	if err := readArgs(args[1:], &name); err != nil {
		return err
	}
	return audio.LoadPreset(name, pad, e.engine)
}

func infoCommand(e *env, args []cue.Node) error {
	pad := e.selected
	if len(args) == 1 {
		p, err := readPad(args[0])
		if err != nil {
			return err
		}
		pad = p
	}
	ps := e.engine.Status().Pads[pad]
	if !ps.HasSample {
		return fmt.Errorf("pad %d: %w", pad+1, audio.ErrMissingSample)
	}
	params := e.engine.Params(pad)
	length := ps.Duration.Seconds()
	start, end := params.TrimStart()*length, params.TrimEnd()*length
	fmt.Fprintf(e.out, "pad %d: %s\n", pad+1, ps.Sample)
	fmt.Fprintf(e.out, "  length %.3fs, trim %.3fs - %.3fs (%.3fs)\n", length, start, end, end-start)
	mode := params.PolyMode()
	if params.LoopOnHold() {
		mode += ", loop"
	}
	fmt.Fprintf(e.out, "  sub 1/%d, swing %.0f, %s, tune %+.0f\n",
		params.Subdivision(), params.Swing(), mode, params.Tune())
	return nil
}

// saveCommand stores the current tempo and swing as the startup defaults.
func saveCommand(e *env, args []cue.Node) error {
	if e.cfg == nil {
		return errors.New("no config to save")
	}
	e.cfg.Tempo = e.engine.Tempo()
	e.cfg.Swing = e.engine.Status().Swing
	if err := e.cfg.Save(); err != nil {
		return err
	}
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "saved %s\n", path)
	return nil
}

func showCommand(e *env, args []cue.Node) error {
	renderStatus(e.engine.Status(), e.selected, e.out)
	return nil
}

func portsCommand(e *env, args []cue.Node) error {
	ports := midi.Ports()
	if len(ports) == 0 {
		fmt.Fprintln(e.out, "no midi input ports")
		return nil
	}
	for _, port := range ports {
		fmt.Fprintln(e.out, port)
	}
	return nil
}

func helpCommand(e *env, args []cue.Node) error {
	for _, cmd := range commands {
		fmt.Fprintf(e.out, "  %s\n", cmd.usage)
	}
	fmt.Fprintf(e.out, "params:  %s\n", strings.Join(audio.ParamNames, " "))
	fmt.Fprintf(e.out, "presets: %s\n", strings.Join(audio.PresetNames(), " "))
	return nil
}
