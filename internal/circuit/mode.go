package circuit

import (
	"fmt"
	"strings"
)

type Mode int

const (
	Charging Mode = iota
	Discharging
	Both
)

var modeNames = map[Mode]string{
	Charging:    "charging",
	Discharging: "discharging",
	Both:        "both",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Title is the capitalised name shown on widgets.
func (m Mode) Title() string {
	s := m.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode accepts a mode name or its menu number (1, 2, 3).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "charging", "charge", "1":
		return Charging, nil
	case "discharging", "discharge", "2":
		return Discharging, nil
	case "both", "3":
		return Both, nil
	}
	return Charging, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// DefaultWindow is the span shown for a time constant: 5τ, or 10τ for Both.
func DefaultWindow(tau float64, mode Mode) float64 {
	if mode == Both {
		return 10 * tau
	}
	return 5 * tau
}
