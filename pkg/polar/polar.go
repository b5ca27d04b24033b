package polar

import (
	"errors"
	"fmt"
	"time"
)

// Status tags the outcome of one Reynolds-number run.
type Status string

const (
	StatusConverged Status = "converged"
	StatusFailed    Status = "failed"
	StatusNotRun    Status = "not_run"
)

// Curve is the polar at a single Reynolds number.
type Curve struct {
	Alpha []float64 `json:"alpha"`
	CL    []float64 `json:"cl"`
	CD    []float64 `json:"cd"`
	CM    []float64 `json:"cm"`
}

// Len returns the number of samples in the curve.
func (c Curve) Len() int { return len(c.Alpha) }

// Validate checks that the parallel slices have equal length.
func (c Curve) Validate() error {
	n := len(c.Alpha)
	if len(c.CL) != n || len(c.CD) != n || len(c.CM) != n {
		return fmt.Errorf("curve length mismatch: alpha=%d cl=%d cd=%d cm=%d",
			n, len(c.CL), len(c.CD), len(c.CM))
	}
	return nil
}

// LiftToDrag returns CL/CD per sample. Samples with zero drag yield 0.
func (c Curve) LiftToDrag() []float64 {
	out := make([]float64, len(c.CL))
	for i := range c.CL {
		if i < len(c.CD) && c.CD[i] != 0 {
			out[i] = c.CL[i] / c.CD[i]
		}
	}
	return out
}

// Clone returns a deep copy of the curve.
func (c Curve) Clone() Curve {
	return Curve{
		Alpha: append([]float64(nil), c.Alpha...),
		CL:    append([]float64(nil), c.CL...),
		CD:    append([]float64(nil), c.CD...),
		CM:    append([]float64(nil), c.CM...),
	}
}

// Entry is the result slot for one requested Reynolds number.
type Entry struct {
	Reynolds float64       `json:"reynolds"`
	Status   Status        `json:"status"`
	Curve    Curve         `json:"curve"`
	Reason   string        `json:"reason,omitempty"`
	Cached   bool          `json:"cached,omitempty"`
	Duration time.Duration `json:"duration_ns,omitempty"`
}

// Samples returns the number of angle-of-attack samples in the entry.
func (e Entry) Samples() int { return e.Curve.Len() }

// Converged reports whether the solver produced a curve for this entry.
func (e Entry) Converged() bool { return e.Status == StatusConverged }

// WellConverged reports whether the entry converged with at least min samples.
func (e Entry) WellConverged(min int) bool {
	return e.Converged() && e.Samples() >= min
}

// Dataset is an ordered mapping from Reynolds number to polar entry.
type Dataset struct {
	Airfoil   string  `json:"airfoil"`
	MinPoints int     `json:"min_points"`
	Entries   []Entry `json:"entries"`
}

// Len returns the number of entries.
func (d *Dataset) Len() int { return len(d.Entries) }

// Reynolds returns the Reynolds numbers in entry order.
func (d *Dataset) Reynolds() []float64 {
	out := make([]float64, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.Reynolds
	}
	return out
}

// Lookup returns the entry for re.
func (d *Dataset) Lookup(re float64) (Entry, bool) {
	for _, e := range d.Entries {
		if e.Reynolds == re {
			return e, true
		}
	}
	return Entry{}, false
}

// Filter returns a dataset holding only the entries keep accepts, in order.
func (d *Dataset) Filter(keep func(Entry) bool) *Dataset {
	out := &Dataset{Airfoil: d.Airfoil, MinPoints: d.MinPoints}
	for _, e := range d.Entries {
		if keep(e) {
			out.Entries = append(out.Entries, e)
		}
	}
	return out
}

// Converged returns the entries whose solver run produced a curve.
func (d *Dataset) Converged() *Dataset {
	return d.Filter(Entry.Converged)
}

// WellConverged returns converged entries with at least MinPoints samples.
func (d *Dataset) WellConverged() *Dataset {
	return d.Filter(func(e Entry) bool { return e.WellConverged(d.MinPoints) })
}

// Failed returns the entries whose solver run failed.
func (d *Dataset) Failed() []Entry {
	var out []Entry
	for _, e := range d.Entries {
		if e.Status == StatusFailed {
			out = append(out, e)
		}
	}
	return out
}

// Counts returns how many entries have each status.
func (d *Dataset) Counts() map[Status]int {
	m := make(map[Status]int, 3)
	for _, e := range d.Entries {
		m[e.Status]++
	}
	return m
}

// Err joins the failure reasons of all failed entries, or returns nil.
func (d *Dataset) Err() error {
	var errs []error
	for _, e := range d.Entries {
		if e.Status == StatusFailed {
			errs = append(errs, fmt.Errorf("Re=%s: %s", EngString(e.Reynolds), e.Reason))
		}
	}
	return errors.Join(errs...)
}
