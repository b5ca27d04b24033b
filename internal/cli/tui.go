package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/foilsweep/pkg/geometry"
	"github.com/matzehuels/foilsweep/pkg/polar"
	"github.com/matzehuels/foilsweep/pkg/sweep"
)

// Messages sent from the running sweep into the program.
type (
	runDoneMsg struct {
		done  int
		entry polar.Entry
	}
	sweepDoneMsg struct {
		ds  *polar.Dataset
		err error
	}
)

// SweepModel is the bubbletea model for the live sweep view.
type SweepModel struct {
	Airfoil string
	Entries []polar.Entry // One per requested Reynolds number, in order
	Done    int

	Finished   bool
	Cancelling bool

	cancel   context.CancelFunc
	start    time.Time
	elapsed  time.Duration
	progress bprogress.Model
	spinner  spinner.Model
}

// NewSweepModel creates a model for a sweep of airfoil over reynolds.
// cancel is called when the user interrupts.
func NewSweepModel(airfoil string, reynolds []float64, cancel context.CancelFunc) SweepModel {
	entries := make([]polar.Entry, len(reynolds))
	for i, re := range reynolds {
		entries[i] = polar.Entry{Reynolds: re, Status: polar.StatusNotRun}
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleIconSpinner

	p := bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithoutPercentage())
	p.Width = 40

	return SweepModel{
		Airfoil:  airfoil,
		Entries:  entries,
		cancel:   cancel,
		start:    time.Now(),
		progress: p,
		spinner:  sp,
	}
}

func (m SweepModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m SweepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.Cancelling && m.cancel != nil {
				m.cancel()
			}
			m.Cancelling = true
		}
	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-20, 10), 60)
	case runDoneMsg:
		m.Done = max(m.Done, msg.done)
		for i := range m.Entries {
			if m.Entries[i].Reynolds == msg.entry.Reynolds {
				m.Entries[i] = msg.entry
				break
			}
		}
	case sweepDoneMsg:
		m.Finished = true
		m.elapsed = time.Since(m.start)
		if msg.ds != nil {
			m.Entries = msg.ds.Entries
		}
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SweepModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Sweeping " + m.Airfoil))
	b.WriteString("\n\n")

	total := len(m.Entries)
	frac := 0.0
	if total > 0 {
		frac = float64(m.Done) / float64(total)
	}
	b.WriteString(m.progress.ViewAs(frac))
	b.WriteString(StyleNumber.Render(fmt.Sprintf("  %d/%d", m.Done, total)))
	b.WriteString("\n\n")

	for _, e := range m.Entries {
		icon := statusIcon(e.Status)
		if e.Status == polar.StatusNotRun && e.Reason == "" && !m.Finished {
			icon = m.spinner.View()
		}
		line := fmt.Sprintf("%s %-8s", icon, polar.EngString(e.Reynolds))
		switch {
		case e.Converged() && e.Cached:
			line += StyleDim.Render(fmt.Sprintf("%3d points  cached", e.Samples()))
		case e.Converged():
			line += StyleDim.Render(fmt.Sprintf("%3d points  %s", e.Samples(), e.Duration.Round(time.Millisecond)))
		case e.Reason != "":
			line += StyleError.Render(truncate(e.Reason, 60))
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.Finished:
		b.WriteString(StyleDim.Render(fmt.Sprintf("done in %s", m.elapsed.Round(time.Millisecond))))
	case m.Cancelling:
		b.WriteString(StyleWarning.Render("cancelling, waiting for running solves..."))
	default:
		b.WriteString(lipgloss.NewStyle().Foreground(colorDim).Render("q cancel"))
	}
	b.WriteString("\n")
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

// teaHooks forwards sweep progress into a running program.
type teaHooks struct {
	p *tea.Program
}

func (h teaHooks) OnSweepStart(context.Context, string, int) {}

func (h teaHooks) OnRunComplete(_ context.Context, done, _ int, e polar.Entry) {
	h.p.Send(runDoneMsg{done: done, entry: e})
}

func (h teaHooks) OnSweepComplete(context.Context, string, *polar.Dataset, time.Duration) {}

// runSweepTUI runs the sweep behind a live progress view on out. The
// runner's logger is silenced for the duration so it does not tear the view.
func runSweepTUI(ctx context.Context, out io.Writer, r *sweep.Runner, a *geometry.Airfoil, opts sweep.Options) (*polar.Dataset, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSweepModel(a.Name(), opts.Reynolds, cancel), tea.WithOutput(out))

	runner := *r
	runner.Hooks = teaHooks{p: p}
	runner.Logger = newLogger(io.Discard, LogInfo)

	result := make(chan sweepDoneMsg, 1)
	go func() {
		ds, err := runner.Run(ctx, a, opts)
		msg := sweepDoneMsg{ds: ds, err: err}
		result <- msg
		p.Send(msg)
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		res := <-result
		return res.ds, stderrors.Join(err, res.err)
	}
	res := <-result
	return res.ds, res.err
}
