package xfoil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/polar"
)

// ParsePolar reads an XFOIL polar save file. The header block is skipped up
// to the dashed rule under the column titles; every following non-blank row
// must carry at least alpha, CL, CD, CDp and CM.
func ParsePolar(r io.Reader) (polar.Curve, error) {
	var c polar.Curve
	sc := bufio.NewScanner(r)
	inTable := false
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if !inTable {
			if strings.HasPrefix(line, "-----") {
				inTable = true
			}
			continue
		}
		if line == "" {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 5 {
			return polar.Curve{}, errors.New(errors.ErrCodeInvalidFormat, "polar line %d: expected at least 5 columns, got %d", lineNo, len(f))
		}
		var v [4]float64
		for i, idx := range [...]int{0, 1, 2, 4} {
			x, err := strconv.ParseFloat(f[idx], 64)
			if err != nil {
				return polar.Curve{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "polar line %d", lineNo)
			}
			v[i] = x
		}
		c.Alpha = append(c.Alpha, v[0])
		c.CL = append(c.CL, v[1])
		c.CD = append(c.CD, v[2])
		c.CM = append(c.CM, v[3])
	}
	if err := sc.Err(); err != nil {
		return polar.Curve{}, fmt.Errorf("read polar: %w", err)
	}
	return c, nil
}

// ReadPolarFile parses the polar file at path. A missing file is returned
// as an os.ErrNotExist error.
func ReadPolarFile(path string) (polar.Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return polar.Curve{}, err
	}
	defer f.Close()
	return ParsePolar(f)
}
