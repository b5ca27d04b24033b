package polar

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteJSON encodes the dataset as indented JSON.
func (d *Dataset) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// ReadJSON decodes a dataset written by [Dataset.WriteJSON].
func ReadJSON(r io.Reader) (*Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	for i, e := range d.Entries {
		if err := e.Curve.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d (Re=%g): %w", i, e.Reynolds, err)
		}
	}
	return &d, nil
}

// ReadJSONFile reads a dataset from path.
func ReadJSONFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteCSV writes converged samples in long format:
// reynolds,alpha,cl,cd,cm. Failed and not-run entries produce no rows.
func (d *Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"reynolds", "alpha", "cl", "cd", "cm"}); err != nil {
		return err
	}
	for _, e := range d.Entries {
		if !e.Converged() {
			continue
		}
		re := strconv.FormatFloat(e.Reynolds, 'g', -1, 64)
		for i := range e.Curve.Alpha {
			rec := []string{
				re,
				formatFloat(e.Curve.Alpha[i]),
				formatFloat(e.Curve.CL[i]),
				formatFloat(e.Curve.CD[i]),
				formatFloat(e.Curve.CM[i]),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
