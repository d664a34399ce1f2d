package config

import (
	"sort"

	"github.com/san-kum/rcsim/internal/circuit"
)

var Presets = map[string]*Config{
	"default": {
		Circuit: CircuitConfig{Resistance: 1000, CapacitanceUF: 10, Voltage: 5},
		Sim:     SimConfig{Mode: circuit.Charging, NumPoints: 1000, Speed: 1},
	},
	"slow": {
		Circuit: CircuitConfig{Resistance: 10000, CapacitanceUF: 100, Voltage: 12},
		Sim:     SimConfig{Mode: circuit.Charging, NumPoints: 1000, Speed: 4},
	},
	"fast": {
		Circuit: CircuitConfig{Resistance: 100, CapacitanceUF: 1, Voltage: 5},
		Sim:     SimConfig{Mode: circuit.Charging, NumPoints: 1000, Speed: 1},
	},
	"discharge": {
		Circuit: CircuitConfig{Resistance: 4700, CapacitanceUF: 47, Voltage: 9},
		Sim:     SimConfig{Mode: circuit.Discharging, NumPoints: 1000, Speed: 1},
	},
	"cycle": {
		Circuit: CircuitConfig{Resistance: 2200, CapacitanceUF: 22, Voltage: 3.3},
		Sim:     SimConfig{Mode: circuit.Both, NumPoints: 1000, Speed: 1},
	},
}

// GetPreset returns a copy of the named preset with view defaults filled in.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.View == (ViewConfig{}) {
		cfg.View = DefaultConfig().View
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
