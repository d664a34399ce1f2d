package metrics

import (
	"math"

	"github.com/san-kum/rcsim/internal/circuit"
)

// Settling reports the time of the last sample whose voltage lies outside
// target±band. A series that never settles reports its final time.
type Settling struct {
	name      string
	target    float64
	band      float64
	lastOut   float64
	anyInside bool
}

func NewSettling(target, band float64) *Settling {
	return &Settling{
		name:   "settling_time",
		target: target,
		band:   band,
	}
}

func (s *Settling) Name() string { return s.name }

func (s *Settling) Observe(x circuit.Sample) {
	if math.Abs(x.V-s.target) > s.band {
		s.lastOut = x.T
		s.anyInside = false
		return
	}
	s.anyInside = true
}

func (s *Settling) Value() float64 {
	return s.lastOut
}

// Settled reports whether the series ended inside the band.
func (s *Settling) Settled() bool { return s.anyInside }

func (s *Settling) Reset() {
	s.lastOut = 0
	s.anyInside = false
}
