package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mitchellh/go-homedir"
	"github.com/mrdg/pads/audio"
	"github.com/mrdg/pads/config"
	"github.com/mrdg/pads/cue"
)

type env struct {
	engine   *audio.Engine
	input    *audio.Input
	selected int // pad used by commands that take no pad argument
	out      io.Writer
	cfg      *config.Config // nil when settings can't be saved
}

func (e *env) eval(input string) error {
	cmds, err := cue.Parse(input)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		if err := e.run(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (e *env) run(c cue.Command) error {
	name := string(c.Name)
	for _, cmd := range commands {
		if name != cmd.name {
			continue
		}
		if n := len(c.Args); n < cmd.minArgs || (cmd.maxArgs >= 0 && n > cmd.maxArgs) {
			return fmt.Errorf("%s: wrong number of arguments: usage: %s", cmd.name, cmd.usage)
		}
		if err := cmd.run(e, c.Args); err != nil {
			return fmt.Errorf("%s error: %w", cmd.name, err)
		}
		return nil
	}
	return fmt.Errorf("unknown command: %s", name)
}

func repl(e *env, historyFile string) error {
	if historyFile != "" {
		path, err := homedir.Expand(historyFile)
		if err != nil {
			return err
		}
		historyFile = path
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	e.out = rl.Stdout()

	for {
		line, err := rl.Readline()
		if err == io.EOF || errors.Is(err, errQuit) {
			return nil
		}
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err != nil {
			fmt.Fprintln(e.out, err)
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		if err := e.eval(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(e.out, err)
		}
	}
}

func readArgs(args []cue.Node, slots ...interface{}) error {
	if len(args) != len(slots) {
		return errors.New("wrong number of arguments")
	}
	for n, arg := range args {
		dest := slots[n]
		switch p := dest.(type) {
		case *string:
			switch s := arg.(type) {
			case cue.String:
				*p = string(s)
			case cue.Identifier:
				*p = string(s)
			default:
				return fmt.Errorf("argument error: expected a string or identifier")
			}
		case *float64:
			switch f := arg.(type) {
			case cue.Float:
				*p = float64(f)
			case cue.Int:
				*p = float64(f)
			default:
				return fmt.Errorf("argument error: expected a number")
			}
		case *int:
			n, ok := arg.(cue.Int)
			if !ok {
				return fmt.Errorf("argument error: expected an integer")
			}
			*p = int(n)
		case *cue.MatchExpr:
			expr, ok := arg.(cue.MatchExpr)
			if !ok {
				return fmt.Errorf("argument error: expected a match expression")
			}
			*p = expr
		case *interface{}:
			switch v := arg.(type) {
			case cue.Int:
				*p = int(v)
			case cue.Float:
				*p = float64(v)
			case cue.String:
				*p = string(v)
			case cue.Identifier:
				*p = string(v)
			default:
				return fmt.Errorf("argument error: unsupported value %v", v)
			}
		default:
			panic("readArgs: unhandled destination type: " + fmt.Sprint(p))
		}
	}
	return nil
}

// readPads reads 1-based pad numbers.
func readPads(args []cue.Node) ([]int, error) {
	pads := make([]int, len(args))
	for i, arg := range args {
		n, ok := arg.(cue.Int)
		if !ok {
			return nil, fmt.Errorf("argument error: expected a pad number")
		}
		if n < 1 || n > audio.NumPads {
			return nil, fmt.Errorf("pad %d out of range 1-%d", n, audio.NumPads)
		}
		pads[i] = int(n) - 1
	}
	return pads, nil
}

func readPad(arg cue.Node) (int, error) {
	pads, err := readPads([]cue.Node{arg})
	if err != nil {
		return 0, err
	}
	return pads[0], nil
}
