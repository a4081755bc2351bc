package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mitchellh/go-homedir"
)

const (
	BackendPortaudio = "portaudio"
	BackendEbiten    = "ebiten"
)

// Config holds the startup settings. Values are read from the config file,
// then overridden by PADS_* environment variables and finally by flags.
type Config struct {
	SampleRate   int     `json:"sampleRate"`
	BufferSize   int     `json:"bufferSize"`
	Backend      string  `json:"backend"`
	Tempo        float64 `json:"tempo"`
	Swing        float64 `json:"swing"`
	Sounds       string  `json:"sounds"`
	Kit          bool    `json:"kit"`
	MIDIPort     string  `json:"midiPort,omitempty"`
	MIDIBaseNote int     `json:"midiBaseNote"`
	HistoryFile  string  `json:"historyFile,omitempty"`
	Verbose      bool    `json:"verbose"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SampleRate:   44100,
		BufferSize:   256,
		Backend:      BackendPortaudio,
		Tempo:        120,
		Swing:        0,
		Sounds:       "*.wav",
		Kit:          true,
		MIDIBaseNote: 36, // C1, the first pad on most controllers
		HistoryFile:  "~/.pads_history",
	}
}

// Dir returns the directory holding the config file.
func Dir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pads"), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file, or the defaults if there is none, and applies
// environment overrides.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		return cfg, cfg.applyEnv()
	}
	return LoadFile(path)
}

// LoadFile is like Load but reads the given file. A missing file is not an
// error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config file, creating its directory if needed.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

func (c *Config) applyEnv() error {
	var err error
	if c.SampleRate, err = envInt("PADS_SAMPLE_RATE", c.SampleRate); err != nil {
		return err
	}
	if c.BufferSize, err = envInt("PADS_BUFFER_SIZE", c.BufferSize); err != nil {
		return err
	}
	if c.Tempo, err = envFloat("PADS_TEMPO", c.Tempo); err != nil {
		return err
	}
	if c.Swing, err = envFloat("PADS_SWING", c.Swing); err != nil {
		return err
	}
	if c.MIDIBaseNote, err = envInt("PADS_MIDI_BASE_NOTE", c.MIDIBaseNote); err != nil {
		return err
	}
	if c.Verbose, err = envBool("PADS_VERBOSE", c.Verbose); err != nil {
		return err
	}
	if c.Kit, err = envBool("PADS_KIT", c.Kit); err != nil {
		return err
	}
	c.Backend = envStr("PADS_BACKEND", c.Backend)
	c.Sounds = envStr("PADS_SOUNDS", c.Sounds)
	c.MIDIPort = envStr("PADS_MIDI_PORT", c.MIDIPort)
	c.HistoryFile = envStr("PADS_HISTORY", c.HistoryFile)
	return nil
}

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("sample rate out of range 8000-192000: %d", c.SampleRate)
	}
	if c.BufferSize < 16 || c.BufferSize > 8192 {
		return fmt.Errorf("buffer size out of range 16-8192: %d", c.BufferSize)
	}
	if c.Tempo < 60 || c.Tempo > 200 {
		return fmt.Errorf("tempo out of range 60-200: %v", c.Tempo)
	}
	if c.Swing < 0 || c.Swing > 100 {
		return fmt.Errorf("swing out of range 0-100: %v", c.Swing)
	}
	if c.MIDIBaseNote < 0 || c.MIDIBaseNote > 127-15 {
		return fmt.Errorf("midi base note out of range 0-112: %d", c.MIDIBaseNote)
	}
	switch c.Backend {
	case BackendPortaudio, BackendEbiten:
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
