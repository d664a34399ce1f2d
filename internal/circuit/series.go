package circuit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const DefaultPoints = 1000

// Sample is one grid point of a simulation.
type Sample struct {
	T float64
	V float64
	I float64
}

// Series holds parallel time, voltage and current samples.
type Series struct {
	Mode Mode
	T    []float64
	V    []float64
	I    []float64
}

func (s *Series) Len() int { return len(s.T) }

func (s *Series) At(k int) Sample {
	return Sample{T: s.T[k], V: s.V[k], I: s.I[k]}
}

// Window is the last sample time.
func (s *Series) Window() float64 {
	if len(s.T) == 0 {
		return 0
	}
	return s.T[len(s.T)-1]
}

// PeakCurrent returns max |i| over the series.
func (s *Series) PeakCurrent() float64 {
	peak := 0.0
	for _, i := range s.I {
		peak = math.Max(peak, math.Abs(i))
	}
	return peak
}

// Grid returns n evenly spaced times from 0 to total inclusive.
func Grid(total float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	ts := make([]float64, n)
	if n == 1 {
		return ts
	}
	floats.Span(ts, 0, total)
	ts[n-1] = total
	return ts
}

// Simulate samples the circuit over [0, total] on n points. In Both mode the
// grid is split at n/2: the first half charges from t=0, the second half
// discharges from V with time restarted at the split sample.
func Simulate(p Params, total float64, n int, mode Mode) (*Series, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPoints, n)
	}
	if total < 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, total)
	}

	ts := Grid(total, n)
	s := &Series{Mode: mode, T: ts}

	switch mode {
	case Charging:
		s.V = p.ChargingVoltages(ts)
		s.I = p.ChargingCurrents(ts)
	case Discharging:
		s.V = p.DischargingVoltages(ts)
		s.I = p.DischargingCurrents(ts)
	case Both:
		half := n / 2
		shifted := make([]float64, n-half)
		for k := range shifted {
			shifted[k] = ts[half+k] - ts[half]
		}
		s.V = append(p.ChargingVoltages(ts[:half]), p.DischargingVoltages(shifted)...)
		s.I = append(p.ChargingCurrents(ts[:half]), p.DischargingCurrents(shifted)...)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}

	return s, nil
}
