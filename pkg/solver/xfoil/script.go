package xfoil

import (
	"strconv"
	"strings"
)

// ScriptParams are the inputs to [Script].
type ScriptParams struct {
	CoordinateFile string
	PolarFile      string
	Reynolds       float64
	MaxIter        int
	AlphaStart     float64
	AlphaEnd       float64
	AlphaStep      float64
	Repanel        bool
}

// Script returns the keystroke sequence that loads the coordinates, enables
// viscous mode, accumulates an alpha sequence into the polar file and quits.
// Graphics are switched off first so XFOIL can run headless.
func Script(p ScriptParams) string {
	lines := []string{
		"PLOP",
		"G F",
		"",
		"LOAD " + p.CoordinateFile,
	}
	if p.Repanel {
		lines = append(lines, "PANE")
	}
	lines = append(lines,
		"OPER",
		"VISC "+num(p.Reynolds),
		"ITER "+strconv.Itoa(p.MaxIter),
		"PACC",
		p.PolarFile,
		"",
		"ASEQ "+num(p.AlphaStart)+" "+num(p.AlphaEnd)+" "+num(p.AlphaStep),
		"PACC",
		"",
		"QUIT",
	)
	return strings.Join(lines, "\n") + "\n"
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
