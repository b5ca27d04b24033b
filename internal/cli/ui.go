package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/foilsweep/pkg/polar"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	StyleError   = lipgloss.NewStyle().Foreground(colorRed)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconPending = "·"
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// statusIcon renders the outcome marker for a sweep entry.
func statusIcon(s polar.Status) string {
	switch s {
	case polar.StatusConverged:
		return styleIconSuccess.Render(iconSuccess)
	case polar.StatusFailed:
		return styleIconError.Render(iconError)
	default:
		return StyleDim.Render(iconPending)
	}
}

// sweepTable renders one row per Reynolds number.
func sweepTable(ds *polar.Dataset) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, ds.Len())
	for _, e := range ds.Entries {
		points, maxLD, note := "—", "—", ""
		if e.Converged() {
			points = strconv.Itoa(e.Samples())
			if ld := e.Curve.LiftToDrag(); len(ld) > 0 {
				m := ld[0]
				for _, v := range ld[1:] {
					m = max(m, v)
				}
				maxLD = strconv.FormatFloat(m, 'f', 1, 64)
			}
			switch {
			case e.Cached:
				note = "cached"
			case e.Duration > 0:
				note = e.Duration.Round(time.Millisecond).String()
			}
			if !e.WellConverged(ds.MinPoints) {
				note += " (sparse)"
			}
		} else if e.Reason != "" {
			note = e.Reason
		}
		rows = append(rows, []string{statusIcon(e.Status), polar.EngString(e.Reynolds), points, maxLD, note})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Re", "Points", "max CL/CD", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 4 {
				return StyleDim
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// printSweepSummary prints the result table and a one-line tally.
func printSweepSummary(ds *polar.Dataset) {
	fmt.Println(sweepTable(ds))
	counts := ds.Counts()
	line := fmt.Sprintf("%d converged", counts[polar.StatusConverged])
	if n := counts[polar.StatusFailed]; n > 0 {
		line += StyleDim.Render(" · ") + StyleError.Render(fmt.Sprintf("%d failed", n))
	}
	if n := counts[polar.StatusNotRun]; n > 0 {
		line += StyleDim.Render(" · ") + StyleWarning.Render(fmt.Sprintf("%d not run", n))
	}
	fmt.Println("  " + line)
}
