// Package viz is the terminal front end of the interactive RC session.
//
// [Model] wraps a session.Session in a Bubble Tea program: keys become
// session events, and every event that (re)starts the animation timer
// schedules a [TickMsg] tagged with the timer generation. Plots are drawn on
// a braille [Canvas]; the schematic, sliders and info panel are plain text
// styled with lipgloss.
//
// # Key Bindings
//
//	Tab/↑↓  - Select resistance, capacitance or voltage
//	←→      - Adjust the selected parameter by one step
//	M       - Toggle charging / discharging
//	Space   - Start / pause
//	R       - Reset to t = 0
//	+/-     - Double / halve the animation speed
//	T       - Cycle color themes
//	?       - Show help
//	Q       - Quit
package viz
