package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/san-kum/rcsim/internal/circuit"
)

var csvHeader = []string{"t_s", "v_V", "i_A"}

// ExportData is the JSON form of a simulated series.
type ExportData struct {
	Mode     circuit.Mode       `json:"mode"`
	Params   circuit.Params     `json:"params"`
	Tau      float64            `json:"tau"`
	Window   float64            `json:"window"`
	Points   int                `json:"points"`
	Times    []float64          `json:"times"`
	Voltages []float64          `json:"voltages"`
	Currents []float64          `json:"currents"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

func NewExportData(p circuit.Params, s *circuit.Series, metrics map[string]float64) ExportData {
	return ExportData{
		Mode:     s.Mode,
		Params:   p,
		Tau:      p.Tau(),
		Window:   s.Window(),
		Points:   s.Len(),
		Times:    s.T,
		Voltages: s.V,
		Currents: s.I,
		Metrics:  metrics,
	}
}

func WriteJSON(w io.Writer, data ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(data), "encode json")
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', 10, 64) }

// WriteCSV writes one row per sample under a t,v,i header.
func WriteCSV(w io.Writer, s *circuit.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for k := range s.T {
		row := []string{formatFloat(s.T[k]), formatFloat(s.V[k]), formatFloat(s.I[k])}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "write csv row %d", k)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

// ReadCSV parses what WriteCSV produced. The mode is not part of the CSV
// and is left to the caller.
func ReadCSV(r io.Reader) (*circuit.Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	s := &circuit.Series{}
	for k, rec := range records {
		if k == 0 {
			continue
		}
		var vals [3]float64
		for j, field := range rec {
			if vals[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, errors.Wrapf(err, "row %d column %s", k, csvHeader[j])
			}
		}
		s.T = append(s.T, vals[0])
		s.V = append(s.V, vals[1])
		s.I = append(s.I, vals[2])
	}
	return s, nil
}
