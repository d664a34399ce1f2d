package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/rcsim/internal/circuit"
	"github.com/san-kum/rcsim/internal/config"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestSamplesCSV(t *testing.T) {
	out, err := execute(t, "", "samples", "-n", "5")
	if err != nil {
		t.Fatalf("samples: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 || lines[0] != "t_s,v_V,i_A" {
		t.Errorf("unexpected csv:\n%s", out)
	}
}

func TestSamplesJSONPreset(t *testing.T) {
	out, err := execute(t, "", "samples", "--json", "--preset", "discharge", "-n", "10")
	if err != nil {
		t.Fatalf("samples: %v", err)
	}
	var got struct {
		Mode    string             `json:"mode"`
		Params  circuit.Params     `json:"params"`
		Metrics map[string]float64 `json:"metrics"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if got.Mode != "discharging" || got.Params.Resistance != 4700 {
		t.Errorf("preset not applied: %+v", got)
	}
	if len(got.Metrics) == 0 {
		t.Error("expected metrics in json output")
	}
}

func TestFlagsOverridePreset(t *testing.T) {
	out, err := execute(t, "", "samples", "--json", "--preset", "discharge", "-R", "220", "-m", "charging", "-n", "3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"resistance": 220`) || !strings.Contains(out, `"mode": "charging"`) {
		t.Errorf("flags did not override preset:\n%s", out)
	}
}

func TestPresets(t *testing.T) {
	out, err := execute(t, "", "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range config.ListPresets() {
		if !strings.Contains(out, name) {
			t.Errorf("presets output missing %q", name)
		}
	}
}

func TestUnknownPreset(t *testing.T) {
	if _, err := execute(t, "", "samples", "--preset", "nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestInvalidFlagValue(t *testing.T) {
	if _, err := execute(t, "", "samples", "--resistance=-5"); err == nil {
		t.Error("expected validation error")
	}
}

func TestNaNSpeedRejected(t *testing.T) {
	for _, sub := range []string{"live", "gui"} {
		_, err := execute(t, "", sub, "--speed", "NaN")
		if !errors.Is(err, config.ErrInvalidSpeed) {
			t.Errorf("%s: expected ErrInvalidSpeed, got %v", sub, err)
		}
	}
}

type failingCloser struct{}

func (failingCloser) Close() error { return errors.New("disk full") }

func TestCloseLogReportsError(t *testing.T) {
	var buf bytes.Buffer
	level := logrus.GetLevel()
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetOutput(&buf)
	defer func() {
		logrus.SetLevel(level)
		logrus.SetOutput(os.Stderr)
	}()

	closeLog(failingCloser{})
	if !strings.Contains(buf.String(), "failed to close log file") || !strings.Contains(buf.String(), "disk full") {
		t.Errorf("close error not logged: %q", buf.String())
	}
}

func TestPlotNoPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fig.svg")
	out, err := execute(t, "", "plot", "--no-prompt", "-o", path, "-m", "both")
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("figure not written: %v", err)
	}
	if !strings.Contains(out, "Figure saved to "+path) {
		t.Errorf("output:\n%s", out)
	}
}

func TestPlotPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fig.png")
	out, err := execute(t, "2000\n\n\n2\n", "plot", "-o", path)
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	if !strings.Contains(out, "After one time constant (20.00 ms)") {
		t.Errorf("missing summary:\n%s", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("figure not written: %v", err)
	}
}

func TestPlotBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fig.png")
	out, err := execute(t, "abc\n\n\n", "plot", "-o", path)
	if err != nil {
		t.Fatalf("bad input should be reported, not returned: %v", err)
	}
	if !strings.Contains(out, "Please enter valid numerical values.") {
		t.Errorf("output:\n%s", out)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("figure should not be written")
	}
}
