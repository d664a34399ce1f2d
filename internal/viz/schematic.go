package viz

import (
	"fmt"

	"github.com/san-kum/rcsim/internal/session"
)

func arrowRune(d session.Direction) string {
	if d == session.Down {
		return "↓"
	}
	return "→"
}

// Schematic draws the series RC loop: the source on the left leg, the
// resistor on the top wire, the capacitor on the right leg and the switch on
// the bottom wire.
func Schematic(d session.Diagram) []string {
	top, leg, bottom := "─", " ", "─"
	for _, a := range d.Arrows {
		switch a.Wire {
		case session.TopWire:
			top = arrowRune(a.Dir)
		case session.CapacitorLeg:
			leg = arrowRune(a.Dir)
		case session.BottomWire:
			bottom = arrowRune(a.Dir)
		}
	}
	sw, state := "─╱ ", "open"
	if d.SwitchClosed {
		sw, state = "───", "closed"
	}

	return []string{
		fmt.Sprintf("        R = %.0f Ω", d.Resistance),
		"   ┌─" + top + "─/\\/\\/\\/\\──────┐",
		"   │               ──┴──",
		fmt.Sprintf(" ──┴──             ──┬──  C = %.0f μF", d.CapacitanceUF),
		fmt.Sprintf("  ───%-16s│%s  Vc = %.2f V", fmt.Sprintf("  V = %.1f V", d.Voltage), leg, d.Vcap),
		"   │                 │",
		"   └─" + bottom + "─" + sw + "───────────┘  switch " + state,
	}
}
