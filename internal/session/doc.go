// Package session holds the interactive simulator's state machine.
//
// A [Session] owns the circuit sliders, the selected mode, the sampled
// series and a playback cursor. It changes only through [Session.Handle],
// which takes one [Event] at a time: slider moves, mode changes, the
// Start/Pause and Reset buttons, animation speed, and timer ticks.
//
// Play states are Idle, Running and Paused. The animation timer is finite:
// one run shows every grid sample once. Starting, restarting or stopping the
// timer bumps its generation; a [Tick] carries the generation it was
// scheduled for and stale ticks are dropped. When Handle returns true the
// caller must deliver Tick{Gen: s.Generation()} after s.Period().
//
// # Thread Safety
//
// Session is NOT safe for concurrent use. Deliver every event, ticks
// included, from one loop.
package session
