package figure

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/guptarohit/asciigraph"
)

// Preview prints both panels as ascii charts.
func Preview(w io.Writer, f Figure) {
	if f.Series == nil || f.Series.Len() == 0 {
		return
	}

	currentMA := make([]float64, f.Series.Len())
	for k, i := range f.Series.I {
		currentMA[k] = i * 1000
	}

	caption := fmt.Sprintf("voltage (V), 0 to %.1f ms, %s", f.windowMS(), f.mode())
	if x, y, ok := f.tauMarker(); ok {
		caption += fmt.Sprintf(", τ = %.2f ms at %.2f V", x, y)
	}
	fmt.Fprintln(w, asciigraph.Plot(f.Series.V,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))
	fmt.Fprintln(w)
	fmt.Fprintln(w, asciigraph.Plot(currentMA,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("current (mA)"),
	))
	fmt.Fprintln(w)
	for _, line := range f.InfoLines() {
		fmt.Fprintln(w, line)
	}
}

// Open hands a written figure to the platform viewer.
func Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
