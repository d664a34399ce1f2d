package session

import (
	"fmt"

	"github.com/san-kum/rcsim/internal/config"
)

type Param int

const (
	Resistance Param = iota
	Capacitance
	Voltage
	numParams
)

// Slider is a bounded control; values outside the range are clamped.
type Slider struct {
	Label  string
	Unit   string
	Format string
	Range  config.Range
	Value  float64
}

func (s *Slider) set(v float64) {
	s.Value = s.Range.Clamp(v)
}

// Fraction is the slider position in [0, 1].
func (s Slider) Fraction() float64 {
	span := s.Range.Max - s.Range.Min
	if span <= 0 {
		return 0
	}
	return (s.Value - s.Range.Min) / span
}

func (s Slider) String() string {
	return fmt.Sprintf(s.Format, s.Value) + " " + s.Unit
}

func newSliders(cfg *config.Config) [numParams]Slider {
	sliders := [numParams]Slider{
		Resistance:  {Label: "Resistance", Unit: "Ω", Format: "%.0f", Range: config.ResistanceRange},
		Capacitance: {Label: "Capacitance", Unit: "μF", Format: "%.0f", Range: config.CapacitanceUFRange},
		Voltage:     {Label: "Voltage", Unit: "V", Format: "%.1f", Range: config.VoltageRange},
	}
	sliders[Resistance].set(cfg.Circuit.Resistance)
	sliders[Capacitance].set(cfg.Circuit.CapacitanceUF)
	sliders[Voltage].set(cfg.Circuit.Voltage)
	return sliders
}
