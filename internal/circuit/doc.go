// Package circuit provides the closed-form model of a series RC circuit.
//
// A single resistor and capacitor are driven by a DC source. The capacitor
// voltage and branch current follow exponential laws with time constant
// τ = R·C, so no integration is needed:
//
//   - [Params]: resistance, capacitance and source voltage
//   - [Mode]: charging, discharging, or both (half and half)
//   - [Series]: samples of time, voltage and current on a uniform grid
//   - [Simulate]: builds a [Series] for a window and mode
//
// # Example
//
//	p := circuit.Params{Resistance: 1000, Capacitance: 10e-6, Voltage: 5}
//	s, _ := circuit.Simulate(p, circuit.DefaultWindow(p.Tau(), circuit.Charging), 1000, circuit.Charging)
//	fmt.Println(s.At(s.Len() - 1).V)
//
// All functions are pure; [Params] values may be shared freely.
package circuit
