// Package config provides configuration loading and access for the listening room.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all runtime configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Camera     CameraConfig     `yaml:"camera"`
	Bob        BobConfig        `yaml:"bob"`
	Input      InputConfig      `yaml:"input"`
	Noise      NoiseConfig      `yaml:"noise"`
	Grid       GridConfig       `yaml:"grid"`
	Audio      AudioConfig      `yaml:"audio"`
	Visualizer VisualizerConfig `yaml:"visualizer"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	FOV       float64 `yaml:"fov"` // Vertical field of view in degrees
}

// CameraConfig holds first-person controller parameters.
type CameraConfig struct {
	Start            [3]float64 `yaml:"start"`             // Initial logical position
	YawSensitivity   float64    `yaml:"yaw_sensitivity"`   // Radians per viewport width of pointer travel
	PitchSensitivity float64    `yaml:"pitch_sensitivity"` // Radians per viewport height of pointer travel
	PitchLimit       float64    `yaml:"pitch_limit"`       // Symmetric pitch clamp in radians
	MoveSpeed        float64    `yaml:"move_speed"`        // World units per second
	SmoothingBase    float64    `yaml:"smoothing_base"`    // t = 1 - base^(rate*dt)
	SmoothingRate    float64    `yaml:"smoothing_rate"`
	LookDistance     float64    `yaml:"look_distance"` // Far point used when the look ray hits nothing
}

// BobConfig holds head bob oscillator parameters.
type BobConfig struct {
	Magnitude float64 `yaml:"magnitude"`
	Frequency float64 `yaml:"frequency"`
}

// InputConfig holds key bindings by name (single letters, digits, or arrow names).
type InputConfig struct {
	Forward string `yaml:"forward"`
	Back    string `yaml:"back"`
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
}

// NoiseConfig holds coherent noise parameters for grid jitter.
type NoiseConfig struct {
	Octaves        int     `yaml:"octaves"`
	Persistence    float64 `yaml:"persistence"`
	Lacunarity     float64 `yaml:"lacunarity"`
	Exponentiation float64 `yaml:"exponentiation"`
	Height         float64 `yaml:"height"`
	Scale          float64 `yaml:"scale"`
	Seed           int64   `yaml:"seed"`
}

// GridConfig holds spectrum-to-grid mapping parameters.
type GridConfig struct {
	Rows      int     `yaml:"rows"`       // History depth, one row per frame
	TimeRate  float64 `yaml:"time_rate"`  // Noise time index advance per second
	RowStep   float64 `yaml:"row_step"`   // Noise coordinate per row
	ColStep   float64 `yaml:"col_step"`   // Noise coordinate per column
	ScaleGain float64 `yaml:"scale_gain"` // Scale added at full amplitude
}

// AudioConfig holds the two independent audio streams.
type AudioConfig struct {
	Grid       StreamConfig `yaml:"grid"`
	Visualizer StreamConfig `yaml:"visualizer"`
}

// StreamConfig describes one music file and its analyser.
type StreamConfig struct {
	Path       string  `yaml:"path"`
	FFTSize    int     `yaml:"fft_size"`    // Power of two; yields FFTSize/2 bins
	Smoothing  float64 `yaml:"smoothing"`   // Analyser smoothing time constant (0-1)
	MinDB      float64 `yaml:"min_db"`      // Maps to 0
	MaxDB      float64 `yaml:"max_db"`      // Maps to 255
	StartDelay float64 `yaml:"start_delay"` // Seconds after load before playback starts
	Volume     float64 `yaml:"volume"`
}

// VisualizerConfig holds radial bar visualizer parameters.
type VisualizerConfig struct {
	Resolution [2]float64 `yaml:"resolution"` // Logical surface resolution used for aspect correction
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32  float32 // Screen.Width as float32
	ScreenH32  float32 // Screen.Height as float32
	KeyForward int32
	KeyBack    int32
	KeyLeft    int32
	KeyRight   int32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects values the frame loop cannot work with.
func (c *Config) validate() error {
	if c.Grid.Rows < 1 {
		return fmt.Errorf("grid.rows must be positive, got %d", c.Grid.Rows)
	}
	for name, s := range map[string]StreamConfig{"grid": c.Audio.Grid, "visualizer": c.Audio.Visualizer} {
		if s.FFTSize < 2 || s.FFTSize&(s.FFTSize-1) != 0 {
			return fmt.Errorf("audio.%s.fft_size must be a power of two >= 2, got %d", name, s.FFTSize)
		}
		if s.MaxDB <= s.MinDB {
			return fmt.Errorf("audio.%s: max_db (%g) must exceed min_db (%g)", name, s.MaxDB, s.MinDB)
		}
	}
	if c.Visualizer.Resolution[0] <= 0 || c.Visualizer.Resolution[1] <= 0 {
		return fmt.Errorf("visualizer.resolution must be positive, got %v", c.Visualizer.Resolution)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	bindings := []struct {
		name string
		dst  *int32
	}{
		{c.Input.Forward, &c.Derived.KeyForward},
		{c.Input.Back, &c.Derived.KeyBack},
		{c.Input.Left, &c.Derived.KeyLeft},
		{c.Input.Right, &c.Derived.KeyRight},
	}
	for _, b := range bindings {
		code, err := KeyCode(b.name)
		if err != nil {
			return fmt.Errorf("input binding: %w", err)
		}
		*b.dst = code
	}
	return nil
}

// namedKeys maps non-printable key names to their platform key codes.
var namedKeys = map[string]int32{
	"SPACE": 32,
	"RIGHT": 262,
	"LEFT":  263,
	"DOWN":  264,
	"UP":    265,
}

// KeyCode converts a key name to its key code. Letters and digits map to
// their uppercase ASCII code, which matches both raylib and DOM key codes.
func KeyCode(name string) (int32, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if code, ok := namedKeys[n]; ok {
		return code, nil
	}
	if len(n) == 1 {
		ch := n[0]
		if (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			return int32(ch), nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
