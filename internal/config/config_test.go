package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/rcsim/internal/circuit"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	p := cfg.Params()
	if p.Resistance != 1000 || math.Abs(p.Capacitance-10e-6) > 1e-18 || p.Voltage != 5 {
		t.Errorf("unexpected defaults: %+v", p)
	}
	if math.Abs(cfg.Window()-0.05) > 1e-12 {
		t.Errorf("expected 5τ window, got %v", cfg.Window())
	}
	if !cfg.InSliderRange() {
		t.Error("defaults should fit the sliders")
	}
}

func TestWindowOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sim.WindowMS = 120
	if math.Abs(cfg.Window()-0.12) > 1e-12 {
		t.Errorf("expected 0.12s, got %v", cfg.Window())
	}

	cfg.Sim.WindowMS = 0
	cfg.Sim.Mode = circuit.Both
	if math.Abs(cfg.Window()-0.1) > 1e-12 {
		t.Errorf("expected 10τ for both, got %v", cfg.Window())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero resistance", func(c *Config) { c.Circuit.Resistance = 0 }, circuit.ErrInvalidParams},
		{"negative capacitance", func(c *Config) { c.Circuit.CapacitanceUF = -1 }, circuit.ErrInvalidParams},
		{"no points", func(c *Config) { c.Sim.NumPoints = 0 }, circuit.ErrInvalidPoints},
		{"negative window", func(c *Config) { c.Sim.WindowMS = -5 }, circuit.ErrInvalidWindow},
		{"NaN window", func(c *Config) { c.Sim.WindowMS = math.NaN() }, circuit.ErrInvalidWindow},
		{"infinite window", func(c *Config) { c.Sim.WindowMS = math.Inf(1) }, circuit.ErrInvalidWindow},
		{"bad mode", func(c *Config) { c.Sim.Mode = circuit.Mode(7) }, circuit.ErrUnknownMode},
		{"zero speed", func(c *Config) { c.Sim.Speed = 0 }, ErrInvalidSpeed},
		{"NaN speed", func(c *Config) { c.Sim.Speed = math.NaN() }, ErrInvalidSpeed},
		{"infinite speed", func(c *Config) { c.Sim.Speed = math.Inf(1) }, ErrInvalidSpeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc.yaml")

	cfg := DefaultConfig()
	cfg.Circuit.Resistance = 2200
	cfg.Sim.Mode = circuit.Discharging
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Circuit.Resistance != 2200 || loaded.Sim.Mode != circuit.Discharging {
		t.Errorf("unexpected loaded config: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc.yaml")
	data := "circuit:\n  voltage: 9\nsimulation:\n  mode: both\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Circuit.Voltage != 9 || cfg.Circuit.Resistance != DefaultResistance {
		t.Errorf("unexpected circuit: %+v", cfg.Circuit)
	}
	if cfg.Sim.Mode != circuit.Both || cfg.Sim.NumPoints != DefaultPoints {
		t.Errorf("unexpected sim: %+v", cfg.Sim)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc.yaml")
	if err := os.WriteFile(path, []byte("circuit:\n  resistance: -4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, circuit.ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("slow")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Circuit.Resistance != 10000 {
		t.Errorf("expected 10kΩ, got %v", cfg.Circuit.Resistance)
	}
	if cfg.View.Output != DefaultOutput {
		t.Errorf("expected default output, got %q", cfg.View.Output)
	}

	cfg.Circuit.Resistance = 1
	if Presets["slow"].Circuit.Resistance != 10000 {
		t.Error("GetPreset must not hand out the shared preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
		if !cfg.InSliderRange() {
			t.Errorf("preset %s outside slider ranges", name)
		}
	}
}

func TestRangeClamp(t *testing.T) {
	if got := ResistanceRange.Clamp(50); got != 100 {
		t.Errorf("expected 100, got %v", got)
	}
	if got := VoltageRange.Clamp(20); got != 12 {
		t.Errorf("expected 12, got %v", got)
	}
	if got := CapacitanceUFRange.Clamp(47); got != 47 {
		t.Errorf("expected 47, got %v", got)
	}
	if got := SpeedRange.Clamp(math.NaN()); got != SpeedRange.Min {
		t.Errorf("expected NaN to clamp to %v, got %v", SpeedRange.Min, got)
	}
	if got := SpeedRange.Clamp(math.Inf(1)); got != SpeedRange.Max {
		t.Errorf("expected %v, got %v", SpeedRange.Max, got)
	}
}

func TestLoadRejectsNaNSpeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc.yaml")
	if err := os.WriteFile(path, []byte("simulation:\n  speed: .nan\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("expected ErrInvalidSpeed, got %v", err)
	}
}
