package session_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rcsim/internal/circuit"
	"github.com/san-kum/rcsim/internal/config"
	"github.com/san-kum/rcsim/internal/session"
)

func tick(s *session.Session) bool {
	return s.Handle(session.Tick{Gen: s.Generation()})
}

func tickN(s *session.Session, n int) {
	for k := 0; k < n; k++ {
		tick(s)
	}
}

var _ = Describe("Session", func() {
	var (
		cfg *config.Config
		s   *session.Session
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		cfg.Sim.NumPoints = 100
		s = session.New(cfg)
	})

	Describe("start-up", func() {
		It("starts idle at t=0 with the default circuit", func() {
			Expect(s.State()).To(Equal(session.Idle))
			Expect(s.Cursor()).To(BeZero())
			Expect(s.Mode()).To(Equal(circuit.Charging))
			Expect(s.Params().Tau()).To(BeNumerically("~", 0.01, 1e-12))
			Expect(s.Window()).To(BeNumerically("~", 0.05, 1e-12))
			Expect(s.Series().Len()).To(Equal(100))
			Expect(s.TimerActive()).To(BeFalse())
		})

		It("clamps out-of-range config values onto the sliders", func() {
			cfg.Circuit.Resistance = 50
			cfg.Circuit.Voltage = 40
			s = session.New(cfg)
			Expect(s.Slider(session.Resistance).Value).To(Equal(100.0))
			Expect(s.Slider(session.Voltage).Value).To(Equal(12.0))
		})

		It("falls back to charging when configured for both", func() {
			cfg.Sim.Mode = circuit.Both
			Expect(session.New(cfg).Mode()).To(Equal(circuit.Charging))
		})
	})

	Describe("start and pause", func() {
		It("runs the timer at 50ms divided by the speed factor", func() {
			Expect(s.Period()).To(Equal(session.BasePeriod))
			s.Handle(session.SpeedChanged{Factor: 2})
			Expect(s.Period()).To(Equal(25 * time.Millisecond))
		})

		It("keeps a positive period for a NaN speed", func() {
			s.Handle(session.SpeedChanged{Factor: math.NaN()})
			Expect(s.Speed()).To(Equal(config.SpeedRange.Min))
			Expect(s.Period()).To(Equal(200 * time.Millisecond))

			cfg.Sim.Speed = math.NaN()
			Expect(session.New(cfg).Period()).To(BeNumerically(">", 0))
		})

		It("advances one grid sample per tick", func() {
			Expect(s.Handle(session.StartPause{})).To(BeTrue())
			Expect(s.State()).To(Equal(session.Running))

			Expect(tick(s)).To(BeTrue())
			Expect(s.Cursor()).To(BeZero())
			Expect(tick(s)).To(BeTrue())
			Expect(s.Cursor()).To(Equal(s.Series().T[1]))

			f := s.Frame()
			Expect(f.Cursor.V).To(BeNumerically("~", s.Params().ChargingVoltage(s.Series().T[1]), 1e-12))
			Expect(f.Cursor.I).To(BeNumerically("~", s.Params().ChargingCurrent(s.Series().T[1]), 1e-12))
		})

		It("keeps the cursor when paused and resumes from it", func() {
			s.Handle(session.StartPause{})
			tickN(s, 10)
			staleGen := s.Generation()

			Expect(s.Handle(session.StartPause{})).To(BeFalse())
			Expect(s.State()).To(Equal(session.Paused))
			Expect(s.TimerActive()).To(BeFalse())
			Expect(s.CursorIndex()).To(Equal(9))

			By("dropping ticks that were already scheduled")
			Expect(s.Handle(session.Tick{Gen: staleGen})).To(BeFalse())
			Expect(s.CursorIndex()).To(Equal(9))

			Expect(s.Handle(session.StartPause{})).To(BeTrue())
			tick(s)
			Expect(s.CursorIndex()).To(Equal(10))
		})
	})

	Describe("natural completion", func() {
		It("stops after exactly one tick per sample and returns to idle", func() {
			s.Handle(session.StartPause{})
			for k := 0; k < 99; k++ {
				Expect(tick(s)).To(BeTrue())
			}
			Expect(tick(s)).To(BeFalse())

			Expect(s.State()).To(Equal(session.Idle))
			Expect(s.TimerActive()).To(BeFalse())
			Expect(s.Cursor()).To(Equal(s.Window()))
			Expect(tick(s)).To(BeFalse())
		})

		It("replays from the beginning on the next start", func() {
			s.Handle(session.StartPause{})
			tickN(s, 100)

			Expect(s.Handle(session.StartPause{})).To(BeTrue())
			Expect(s.State()).To(Equal(session.Running))
			Expect(s.Cursor()).To(BeZero())
			tick(s)
			Expect(s.CursorIndex()).To(Equal(0))
		})
	})

	Describe("reset", func() {
		It("rewinds and stops a running animation", func() {
			s.Handle(session.StartPause{})
			tickN(s, 20)
			gen := s.Generation()

			Expect(s.Handle(session.Reset{})).To(BeFalse())
			Expect(s.State()).To(Equal(session.Idle))
			Expect(s.Cursor()).To(BeZero())
			Expect(s.Handle(session.Tick{Gen: gen})).To(BeFalse())
			Expect(s.Frame().Diagram.Arrows).To(BeEmpty())
		})
	})

	Describe("parameter changes", func() {
		It("recomputes τ, window and the τ marker", func() {
			before := s.Series()
			Expect(s.Frame().TauMarker.T).To(BeNumerically("~", 0.01, 1e-12))

			s.Handle(session.ParamChanged{Param: session.Resistance, Value: 2000})

			Expect(s.Params().Tau()).To(BeNumerically("~", 0.02, 1e-12))
			Expect(s.Window()).To(BeNumerically("~", 0.1, 1e-12))
			Expect(s.Series()).NotTo(BeIdenticalTo(before))
			Expect(s.Series().Window()).To(BeNumerically("~", 0.1, 1e-12))

			f := s.Frame()
			Expect(f.TauMarker.Visible).To(BeTrue())
			Expect(f.TauMarker.T).To(BeNumerically("~", 0.02, 1e-12))
			Expect(f.TauMarker.V).To(BeNumerically("~", 5*(1-math.Exp(-1)), 1e-9))
			Expect(f.TimeAxis.Max).To(BeNumerically("~", 100, 1e-9))
			Expect(f.Diagram.Resistance).To(Equal(2000.0))
		})

		It("refreshes the axis limits", func() {
			s.Handle(session.ParamChanged{Param: session.Voltage, Value: 10})
			f := s.Frame()
			Expect(f.VoltageAxis.Min).To(Equal(-0.1))
			Expect(f.VoltageAxis.Max).To(BeNumerically("~", 11, 1e-9))
			// peak current 10V / 1kΩ = 10mA
			Expect(f.CurrentAxis.Max).To(BeNumerically("~", 11, 1e-9))
			Expect(f.CurrentAxis.Min).To(BeNumerically("~", -11, 1e-9))
		})

		It("clamps slider values to their ranges", func() {
			s.Handle(session.ParamChanged{Param: session.Capacitance, Value: 1000})
			Expect(s.Slider(session.Capacitance).Value).To(Equal(100.0))
			Expect(s.Params().Capacitance).To(BeNumerically("~", 100e-6, 1e-15))
		})

		It("restarts a running animation from the beginning", func() {
			s.Handle(session.StartPause{})
			tickN(s, 30)
			oldGen := s.Generation()

			Expect(s.Handle(session.ParamChanged{Param: session.Resistance, Value: 3000})).To(BeTrue())
			Expect(s.State()).To(Equal(session.Running))
			Expect(s.Generation()).NotTo(Equal(oldGen))
			Expect(s.Cursor()).To(BeZero())
			Expect(s.Handle(session.Tick{Gen: oldGen})).To(BeFalse())

			tick(s)
			Expect(s.CursorIndex()).To(Equal(0))
		})

		It("keeps the cursor time while paused", func() {
			s.Handle(session.StartPause{})
			tickN(s, 41)
			s.Handle(session.StartPause{})
			t := s.Cursor()

			Expect(s.Handle(session.ParamChanged{Param: session.Resistance, Value: 2000})).To(BeFalse())
			Expect(s.State()).To(Equal(session.Paused))
			Expect(s.Cursor()).To(Equal(t))
		})
	})

	Describe("mode changes", func() {
		It("resets the cursor and switches to discharging curves", func() {
			s.Handle(session.StartPause{})
			tickN(s, 10)

			Expect(s.Handle(session.ModeChanged{Mode: circuit.Discharging})).To(BeTrue())
			Expect(s.Mode()).To(Equal(circuit.Discharging))
			Expect(s.Cursor()).To(BeZero())
			Expect(s.Series().V[0]).To(Equal(5.0))

			f := s.Frame()
			Expect(f.Diagram.SwitchClosed).To(BeFalse())
			Expect(f.TauMarker.V).To(BeNumerically("~", 5*math.Exp(-1), 1e-9))
		})

		It("ignores both", func() {
			Expect(s.Handle(session.ModeChanged{Mode: circuit.Both})).To(BeFalse())
			Expect(s.Mode()).To(Equal(circuit.Charging))
		})

		It("does not start a stopped animation", func() {
			Expect(s.Handle(session.ModeChanged{Mode: circuit.Discharging})).To(BeFalse())
			Expect(s.State()).To(Equal(session.Idle))
		})
	})

	Describe("schematic", func() {
		It("draws current arrows only while running", func() {
			Expect(s.Frame().Diagram.Arrows).To(BeEmpty())

			s.Handle(session.StartPause{})
			Expect(s.Frame().Diagram.Arrows).To(ConsistOf(
				session.Arrow{Wire: session.TopWire, Dir: session.Right},
				session.Arrow{Wire: session.CapacitorLeg, Dir: session.Down},
			))

			s.Handle(session.ModeChanged{Mode: circuit.Discharging})
			Expect(s.Frame().Diagram.Arrows).To(ConsistOf(
				session.Arrow{Wire: session.BottomWire, Dir: session.Right},
			))

			s.Handle(session.StartPause{})
			Expect(s.Frame().Diagram.Arrows).To(BeEmpty())
		})

		It("shows the live capacitor voltage", func() {
			s.Handle(session.StartPause{})
			tickN(s, 50)
			f := s.Frame()
			Expect(f.Diagram.Vcap).To(Equal(f.Cursor.V))
			Expect(f.Diagram.Vcap).To(BeNumerically(">", 0))
		})
	})

	Describe("trace", func() {
		It("covers the samples shown so far", func() {
			s.Handle(session.StartPause{})
			tickN(s, 25)
			Expect(s.Frame().Trace()).To(HaveLen(25))
		})
	})
})
