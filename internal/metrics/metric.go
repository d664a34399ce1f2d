package metrics

import "github.com/san-kum/rcsim/internal/circuit"

// Metric folds a sample series into a single number.
type Metric interface {
	Name() string
	Observe(s circuit.Sample)
	Value() float64
	Reset()
}

// Default returns the metrics reported for a run of p.
func Default(p circuit.Params, mode circuit.Mode) []Metric {
	// Both ends with the discharge half, so it settles toward 0 like Discharging.
	target := 0.0
	if mode == circuit.Charging {
		target = p.Voltage
	}
	return []Metric{
		NewPeakCurrent(),
		NewCharge(),
		NewEnergy(p.Resistance),
		NewSettling(target, 0.01*p.Voltage),
	}
}

// Collect resets each metric, feeds it every sample and returns the values by name.
func Collect(series *circuit.Series, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
	}
	for k := 0; k < series.Len(); k++ {
		s := series.At(k)
		for _, m := range ms {
			m.Observe(s)
		}
	}
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
