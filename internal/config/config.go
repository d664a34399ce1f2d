package config

import (
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rcsim/internal/circuit"
)

const (
	DefaultResistance    = 1000.0
	DefaultCapacitanceUF = 10.0
	DefaultVoltage       = 5.0
	DefaultPoints        = circuit.DefaultPoints
	DefaultSpeed         = 1.0
	DefaultOutput        = "rc_circuit.png"
	DefaultTheme         = "cyberpunk"
)

// ErrInvalidSpeed is returned for an animation speed that is not a finite
// positive factor.
var ErrInvalidSpeed = errors.New("config: speed must be a finite positive factor")

// Range is the span a slider may take.
type Range struct {
	Min, Max, Step float64
}

// Clamp limits v to the range. NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Slider ranges of the interactive tool.
var (
	ResistanceRange    = Range{Min: 100, Max: 10000, Step: 100}
	CapacitanceUFRange = Range{Min: 1, Max: 100, Step: 1}
	VoltageRange       = Range{Min: 1, Max: 12, Step: 0.5}
	SpeedRange         = Range{Min: 0.25, Max: 16, Step: 2}
)

type Config struct {
	Circuit CircuitConfig `yaml:"circuit"`
	Sim     SimConfig     `yaml:"simulation"`
	View    ViewConfig    `yaml:"view"`
}

type CircuitConfig struct {
	Resistance    float64 `yaml:"resistance"`
	CapacitanceUF float64 `yaml:"capacitance_uf"`
	Voltage       float64 `yaml:"voltage"`
}

type SimConfig struct {
	Mode      circuit.Mode `yaml:"mode"`
	NumPoints int          `yaml:"num_points"`
	WindowMS  float64      `yaml:"window_ms"` // 0 selects 5τ (10τ for both)
	Speed     float64      `yaml:"speed"`
}

type ViewConfig struct {
	Output string `yaml:"output"`
	Theme  string `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Circuit: CircuitConfig{
			Resistance:    DefaultResistance,
			CapacitanceUF: DefaultCapacitanceUF,
			Voltage:       DefaultVoltage,
		},
		Sim: SimConfig{
			Mode:      circuit.Charging,
			NumPoints: DefaultPoints,
			Speed:     DefaultSpeed,
		},
		View: ViewConfig{
			Output: DefaultOutput,
			Theme:  DefaultTheme,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "failed to write config %s", path)
}

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Sim.NumPoints < 1 {
		return fmt.Errorf("%w: got %d", circuit.ErrInvalidPoints, c.Sim.NumPoints)
	}
	if !(c.Sim.WindowMS >= 0) || math.IsInf(c.Sim.WindowMS, 0) {
		return fmt.Errorf("%w: %v ms", circuit.ErrInvalidWindow, c.Sim.WindowMS)
	}
	if !c.Sim.Mode.Valid() {
		return fmt.Errorf("%w: %d", circuit.ErrUnknownMode, int(c.Sim.Mode))
	}
	if !(c.Sim.Speed > 0) || math.IsInf(c.Sim.Speed, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidSpeed, c.Sim.Speed)
	}
	return nil
}

// Params converts the μF-based file values into SI circuit parameters.
func (c *Config) Params() circuit.Params {
	return circuit.Params{
		Resistance:  c.Circuit.Resistance,
		Capacitance: c.Circuit.CapacitanceUF * 1e-6,
		Voltage:     c.Circuit.Voltage,
	}
}

// Window returns the simulation window in seconds.
func (c *Config) Window() float64 {
	if c.Sim.WindowMS > 0 {
		return c.Sim.WindowMS / 1000
	}
	return circuit.DefaultWindow(c.Params().Tau(), c.Sim.Mode)
}

// InSliderRange reports whether the circuit values fit the interactive sliders.
func (c *Config) InSliderRange() bool {
	return ResistanceRange.Contains(c.Circuit.Resistance) &&
		CapacitanceUFRange.Contains(c.Circuit.CapacitanceUF) &&
		VoltageRange.Contains(c.Circuit.Voltage)
}
