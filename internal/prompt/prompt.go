// Package prompt implements the question-and-answer entry flow of the static
// plotter: circuit values, a derived-quantity summary and the mode menu.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/rcsim/internal/circuit"
)

// ErrInput marks a value the user typed that is not a usable number.
var ErrInput = errors.New("invalid numeric input")

var (
	bold    = color.New(color.Bold)
	warn    = color.New(color.FgYellow)
	failure = color.New(color.FgRed, color.Bold)
)

// Request is everything the plotter needs after prompting.
type Request struct {
	Params circuit.Params
	Mode   circuit.Mode
	Window float64 // seconds
}

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Run asks for the circuit, prints its summary and asks for the mode.
func (p *Prompter) Run(defaults circuit.Params) (*Request, error) {
	bold.Fprintln(p.out, "RC Circuit Simulator")
	fmt.Fprintln(p.out, "--------------------")

	params, err := p.Params(defaults)
	if err != nil {
		return nil, err
	}
	PrintSummary(p.out, params)

	mode := p.Mode()
	return &Request{
		Params: params,
		Mode:   mode,
		Window: RoundWindow(circuit.DefaultWindow(params.Tau(), mode)),
	}, nil
}

// Params reads resistance (Ω), capacitance (μF) and voltage (V). Blank
// answers keep the defaults. All three questions are asked before any
// answer is parsed.
func (p *Prompter) Params(defaults circuit.Params) (circuit.Params, error) {
	rawR := p.ask(fmt.Sprintf("Enter resistance in ohms (default: %g Ω): ", defaults.Resistance))
	rawC := p.ask(fmt.Sprintf("Enter capacitance in microfarads (default: %.6g μF): ", defaults.Capacitance*1e6))
	rawV := p.ask(fmt.Sprintf("Enter voltage in volts (default: %g V): ", defaults.Voltage))

	params := defaults
	var err error
	if params.Resistance, err = parse("resistance", rawR, defaults.Resistance); err != nil {
		return params, err
	}
	if rawC != "" {
		capUF, err := parse("capacitance", rawC, 0)
		if err != nil {
			return params, err
		}
		params.Capacitance = capUF * 1e-6
	}
	if params.Voltage, err = parse("voltage", rawV, defaults.Voltage); err != nil {
		return params, err
	}

	if err := params.Validate(); err != nil {
		return params, fmt.Errorf("%w: %v", ErrInput, err)
	}
	logrus.WithFields(logrus.Fields{
		"resistance":  params.Resistance,
		"capacitance": params.Capacitance,
		"voltage":     params.Voltage,
	}).Debug("circuit parameters accepted")
	return params, nil
}

// Mode shows the menu. Anything but 1, 2 or 3 falls back to charging.
func (p *Prompter) Mode() circuit.Mode {
	fmt.Fprintln(p.out, "\nSelect simulation mode:")
	fmt.Fprintln(p.out, "1. Charging")
	fmt.Fprintln(p.out, "2. Discharging")
	fmt.Fprintln(p.out, "3. Both (charging then discharging)")

	choice := strings.TrimSpace(p.ask("Enter your choice (1/2/3): "))
	switch choice {
	case "1":
		return circuit.Charging
	case "2":
		return circuit.Discharging
	case "3":
		return circuit.Both
	}
	warn.Fprintln(p.out, "Invalid choice. Using 'charging' mode.")
	logrus.WithField("choice", choice).Warn("invalid mode choice, using charging")
	return circuit.Charging
}

// ReportError prints err the way the static tool presents failures.
func ReportError(w io.Writer, err error) {
	if errors.Is(err, ErrInput) {
		failure.Fprintf(w, "Error: %v\n", err)
		fmt.Fprintln(w, "Please enter valid numerical values.")
		return
	}
	failure.Fprintf(w, "Unexpected error: %v\n", err)
}

// PrintSummary prints τ and the landmark voltages for p.
func PrintSummary(w io.Writer, p circuit.Params) {
	s := circuit.Summarize(p)
	tauMS := s.Tau * 1000

	fmt.Fprintf(w, "\nTime Constant (τ = RC): %s\n", bold.Sprintf("%.2f ms", tauMS))
	fmt.Fprintf(w, "After one time constant (%.2f ms):\n", tauMS)
	fmt.Fprintf(w, "- During charging: The capacitor reaches 63.2%% of full voltage (%.2f V)\n", s.ChargedAtTau)
	fmt.Fprintf(w, "- During discharging: The capacitor discharges to 36.8%% of initial voltage (%.2f V)\n", s.DischargedTau)
	fmt.Fprintf(w, "- After 5 time constants (%.2f ms): The capacitor is nearly fully charged/discharged\n", s.SettleTime*1000)
}

// RoundWindow rounds a window to one decimal place in milliseconds. A window
// that would round to zero is returned unchanged.
func RoundWindow(seconds float64) float64 {
	rounded := math.Round(seconds*1e4) / 1e4
	if rounded == 0 {
		return seconds
	}
	return rounded
}

func (p *Prompter) ask(question string) string {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		logrus.WithError(err).Debug("prompt read failed")
	}
	return strings.TrimSpace(line)
}

func parse(field, raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: could not convert %s %q to a number", ErrInput, field, raw)
	}
	return v, nil
}
