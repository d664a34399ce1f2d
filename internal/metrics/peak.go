package metrics

import (
	"math"

	"github.com/san-kum/rcsim/internal/circuit"
)

type PeakCurrent struct {
	name string
	peak float64
}

func NewPeakCurrent() *PeakCurrent {
	return &PeakCurrent{name: "peak_current"}
}

func (p *PeakCurrent) Name() string { return p.name }

func (p *PeakCurrent) Observe(s circuit.Sample) {
	p.peak = math.Max(p.peak, math.Abs(s.I))
}

func (p *PeakCurrent) Value() float64 { return p.peak }

func (p *PeakCurrent) Reset() { p.peak = 0 }
