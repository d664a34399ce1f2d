package metrics

import "github.com/san-kum/rcsim/internal/circuit"

// Charge integrates current over time (trapezoid rule), in coulombs.
type Charge struct {
	name    string
	last    circuit.Sample
	total   float64
	samples int
}

func NewCharge() *Charge {
	return &Charge{name: "charge"}
}

func (c *Charge) Name() string { return c.name }

func (c *Charge) Observe(s circuit.Sample) {
	if c.samples > 0 {
		c.total += 0.5 * (s.I + c.last.I) * (s.T - c.last.T)
	}
	c.last = s
	c.samples++
}

func (c *Charge) Value() float64 { return c.total }

func (c *Charge) Reset() {
	c.last = circuit.Sample{}
	c.total = 0
	c.samples = 0
}

// Energy integrates i²R over time: the heat dissipated in the resistor, in joules.
type Energy struct {
	name       string
	resistance float64
	last       circuit.Sample
	total      float64
	samples    int
}

func NewEnergy(resistance float64) *Energy {
	return &Energy{
		name:       "resistor_energy",
		resistance: resistance,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s circuit.Sample) {
	if e.samples > 0 {
		p0 := e.last.I * e.last.I * e.resistance
		p1 := s.I * s.I * e.resistance
		e.total += 0.5 * (p0 + p1) * (s.T - e.last.T)
	}
	e.last = s
	e.samples++
}

func (e *Energy) Value() float64 { return e.total }

func (e *Energy) Reset() {
	e.last = circuit.Sample{}
	e.total = 0
	e.samples = 0
}
