package circuit

import (
	"fmt"
	"math"
)

// Params describes a series RC circuit. Capacitance is in farads.
type Params struct {
	Resistance  float64 `json:"resistance" yaml:"resistance"`
	Capacitance float64 `json:"capacitance" yaml:"capacitance"`
	Voltage     float64 `json:"voltage" yaml:"voltage"`
}

// Default matches the values offered by the prompts: 1 kΩ, 10 μF, 5 V.
func Default() Params {
	return Params{Resistance: 1000, Capacitance: 10e-6, Voltage: 5}
}

// Tau returns the time constant R·C in seconds.
func (p Params) Tau() float64 {
	return p.Resistance * p.Capacitance
}

func (p Params) Validate() error {
	if !(p.Resistance > 0) || math.IsInf(p.Resistance, 0) {
		return fmt.Errorf("%w: resistance %v", ErrInvalidParams, p.Resistance)
	}
	if !(p.Capacitance > 0) || math.IsInf(p.Capacitance, 0) {
		return fmt.Errorf("%w: capacitance %v", ErrInvalidParams, p.Capacitance)
	}
	if math.IsNaN(p.Voltage) || math.IsInf(p.Voltage, 0) {
		return fmt.Errorf("%w: voltage %v", ErrInvalidParams, p.Voltage)
	}
	return nil
}

func (p Params) decay(t float64) float64 {
	return math.Exp(-t / p.Tau())
}

func (p Params) ChargingVoltage(t float64) float64 {
	return p.Voltage * (1 - p.decay(t))
}

func (p Params) DischargingVoltage(t float64) float64 {
	return p.Voltage * p.decay(t)
}

func (p Params) ChargingCurrent(t float64) float64 {
	return p.Voltage / p.Resistance * p.decay(t)
}

func (p Params) DischargingCurrent(t float64) float64 {
	return -p.Voltage / p.Resistance * p.decay(t)
}

// At returns capacitor voltage and current at t for a single-regime mode.
// Both has no meaning for a lone instant and is evaluated as Charging.
func (p Params) At(mode Mode, t float64) (v, i float64) {
	if mode == Discharging {
		return p.DischargingVoltage(t), p.DischargingCurrent(t)
	}
	return p.ChargingVoltage(t), p.ChargingCurrent(t)
}

func (p Params) ChargingVoltages(ts []float64) []float64 {
	return apply(ts, p.ChargingVoltage)
}

func (p Params) DischargingVoltages(ts []float64) []float64 {
	return apply(ts, p.DischargingVoltage)
}

func (p Params) ChargingCurrents(ts []float64) []float64 {
	return apply(ts, p.ChargingCurrent)
}

func (p Params) DischargingCurrents(ts []float64) []float64 {
	return apply(ts, p.DischargingCurrent)
}

func apply(ts []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = f(t)
	}
	return out
}
