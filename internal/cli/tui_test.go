package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/foilsweep/pkg/polar"
)

func TestSweepModel(t *testing.T) {
	cancelled := 0
	m := NewSweepModel("naca2412", []float64{1e5, 2e5}, func() { cancelled++ })

	for _, e := range m.Entries {
		if e.Status != polar.StatusNotRun {
			t.Fatalf("initial status = %s, want not_run", e.Status)
		}
	}

	next, _ := m.Update(runDoneMsg{done: 1, entry: polar.Entry{
		Reynolds: 2e5,
		Status:   polar.StatusFailed,
		Reason:   "VISCAL: Convergence failed",
	}})
	m = next.(SweepModel)
	if m.Done != 1 || m.Entries[1].Status != polar.StatusFailed {
		t.Errorf("after run: done=%d entry=%+v", m.Done, m.Entries[1])
	}
	view := m.View()
	for _, want := range []string{"Sweeping naca2412", "1/2", "Convergence failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(SweepModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(SweepModel)
	if !m.Cancelling || cancelled != 1 {
		t.Errorf("cancelling=%v cancelled=%d, want true and 1", m.Cancelling, cancelled)
	}

	ds := &polar.Dataset{Airfoil: "naca2412", Entries: []polar.Entry{
		{Reynolds: 1e5, Status: polar.StatusNotRun, Reason: "interrupted: context canceled"},
		{Reynolds: 2e5, Status: polar.StatusFailed, Reason: "VISCAL: Convergence failed"},
	}}
	next, cmd := m.Update(sweepDoneMsg{ds: ds})
	m = next.(SweepModel)
	if !m.Finished {
		t.Error("model should be finished")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("command should quit the program")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("line one\nline two", 8); got != "line on…" {
		t.Errorf("truncate = %q", got)
	}
}
