package circuit

import "math"

// Summary holds the derived quantities printed next to a simulation.
type Summary struct {
	Tau           float64 // seconds
	ChargedAtTau  float64 // volts, 63.2 % of V
	DischargedTau float64 // volts, 36.8 % of V
	SettleTime    float64 // 5τ, seconds
	PeakCurrent   float64 // V/R, amperes
	StoredEnergy  float64 // ½CV², joules
	FractionOneT  float64 // charged fraction after 1τ
	FractionFiveT float64 // charged fraction after 5τ
}

func Summarize(p Params) Summary {
	return Summary{
		Tau:           p.Tau(),
		ChargedAtTau:  p.Voltage * 0.632,
		DischargedTau: p.Voltage * 0.368,
		SettleTime:    5 * p.Tau(),
		PeakCurrent:   p.Voltage / p.Resistance,
		StoredEnergy:  0.5 * p.Capacitance * p.Voltage * p.Voltage,
		FractionOneT:  1 - math.Exp(-1),
		FractionFiveT: 1 - math.Exp(-5),
	}
}

// TauMarker returns the analytic voltage at t=τ for a single-regime mode:
// 63.2 % of V while charging and 36.8 % while discharging.
func (p Params) TauMarker(mode Mode) (t, v float64) {
	t = p.Tau()
	if mode == Discharging {
		return t, p.Voltage * math.Exp(-1)
	}
	return t, p.Voltage * (1 - math.Exp(-1))
}
