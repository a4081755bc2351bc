package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/mrdg/pads/audio"
	"github.com/mrdg/pads/config"
	"github.com/mrdg/pads/midi"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var (
		bpm        = flag.Float64("bpm", cfg.Tempo, "initial tempo (60-200)")
		swing      = flag.Float64("swing", cfg.Swing, "global swing (0-100)")
		files      = flag.String("sounds", cfg.Sounds, "glob of wav files loaded onto pads 1-16")
		kit        = flag.Bool("kit", cfg.Kit, "fill empty pads with a synthesized drum kit")
		backend    = flag.String("backend", cfg.Backend, "audio output: portaudio or ebiten")
		sampleRate = flag.Int("rate", cfg.SampleRate, "sample rate")
		bufferSize = flag.Int("buffer", cfg.BufferSize, "buffer size in frames (portaudio)")
		midiPort   = flag.String("midi", cfg.MIDIPort, "midi input port to play the pads with")
		midiBase   = flag.Int("midi-base", cfg.MIDIBaseNote, "midi note of pad 1")
		run        = flag.String("run", "", "file with commands to run at startup")
		verbose    = flag.Bool("v", cfg.Verbose, "log every trigger")
	)
	flag.Parse()

	cfg.Tempo, cfg.Swing = *bpm, *swing
	cfg.Sounds, cfg.Kit = *files, *kit
	cfg.Backend = *backend
	cfg.SampleRate, cfg.BufferSize = *sampleRate, *bufferSize
	cfg.MIDIPort, cfg.MIDIBaseNote = *midiPort, *midiBase
	cfg.Verbose = *verbose
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	engine := audio.NewEngine(cfg.SampleRate, audio.NewProps())
	engine.SetVerbose(cfg.Verbose)
	if err := engine.SetTempo(cfg.Tempo); err != nil {
		log.Fatal(err)
	}
	if err := engine.SetGlobalSwing(cfg.Swing); err != nil {
		log.Fatal(err)
	}

	env := &env{
		engine: engine,
		input:  engine.NewInput(),
		out:    os.Stdout,
		cfg:    cfg,
	}
	// inputs have to exist before the audio thread starts
	var pads *audio.Input
	if cfg.MIDIPort != "" {
		pads = engine.NewInput()
	}

	if cfg.Kit {
		if err := env.loadKit(true); err != nil {
			log.Print(err)
		}
	}
	if err := loadSounds(env, cfg.Sounds); err != nil {
		log.Fatal(err)
	}

	var out audio.Output
	switch cfg.Backend {
	case config.BackendEbiten:
		out, err = audio.NewStreamPlayer(cfg.SampleRate, engine)
	default:
		out, err = audio.NewSink(cfg.SampleRate, cfg.BufferSize, engine)
	}
	if err != nil {
		log.Fatal(err)
	}
	if err := out.Start(); err != nil {
		log.Fatal(err)
	}
	defer out.Stop()

	if pads != nil {
		in, err := midi.Open(cfg.MIDIPort, uint8(cfg.MIDIBaseNote), pads)
		if err != nil {
			log.Printf("%v (available: %s)", err, strings.Join(midi.Ports(), ", "))
		} else {
			defer in.Close()
			log.Printf("midi: listening on %s", in.Name())
		}
	}

	if *run != "" {
		if err := runFile(env, *run); err != nil {
			log.Fatal(err)
		}
	}

	if err := repl(env, cfg.HistoryFile); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadSounds puts the files matching pattern onto the pads in order.
func loadSounds(env *env, pattern string) error {
	if pattern == "" {
		return nil
	}
	pattern, err := homedir.Expand(pattern)
	if err != nil {
		return err
	}
	files, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	if len(files) > audio.NumPads {
		log.Printf("found %d sounds, only loading the first %d", len(files), audio.NumPads)
		files = files[:audio.NumPads]
	}
	for pad, file := range files {
		snd, err := audio.LoadSample(file)
		if err != nil {
			return err
		}
		if err := env.loadSample(pad, snd); err != nil {
			return err
		}
	}
	return nil
}

func runFile(env *env, path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := env.eval(line); err != nil {
			return fmt.Errorf("%s:%d: %w", path, n, err)
		}
	}
	return scanner.Err()
}
