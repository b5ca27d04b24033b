package datfile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/geometry"
)

// File is a decoded coordinate file.
type File struct {
	Name   string           // First line, if it was not numeric
	Points []geometry.Point // Boundary walk in Selig order
}

// Format renders points as .dat text. When includeName is true the first
// line is name. Each point uses six decimals; lines are joined by "\n" with
// no trailing newline.
func Format(points []geometry.Point, name string, includeName bool) string {
	lines := make([]string, 0, len(points)+1)
	if includeName {
		lines = append(lines, name)
	}
	for _, p := range points {
		lines = append(lines, fmt.Sprintf("%f %f", p.X, p.Y))
	}
	return strings.Join(lines, "\n")
}

// WriteFile formats points and writes them to path. The text is returned
// whether or not path is empty; an empty path skips the write.
func WriteFile(path string, points []geometry.Point, name string, includeName bool) (string, error) {
	text := Format(points, name, includeName)
	if path == "" {
		return text, nil
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return text, fmt.Errorf("write %s: %w", path, err)
	}
	return text, nil
}

// Read parses .dat text from r. Blank lines are ignored. A non-numeric first
// line is taken as the name; a malformed pair on the first line or any later
// line that is not exactly two numbers is a COORDINATE_PARSE error.
func Read(r io.Reader) (*File, error) {
	return read(r, "<input>")
}

// ReadFile opens and parses the coordinate file at path.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "coordinate file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeCoordinateParse, err, "open %s", path)
	}
	defer f.Close()
	return read(f, path)
}

// Reader adapts ReadFile to geometry.FileReader.
type Reader struct{}

// ReadCoordinates implements geometry.FileReader.
func (Reader) ReadCoordinates(ctx context.Context, path string) (string, []geometry.Point, error) {
	f, err := ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return f.Name, f.Points, nil
}

func read(r io.Reader, src string) (*File, error) {
	out := &File{}
	var pts []geometry.Point
	first := true

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		p, err := parsePair(line)
		if err != nil {
			if first && !looksLikeRow(line) {
				out.Name = line
				first = false
				continue
			}
			return nil, errors.Wrap(errors.ErrCodeCoordinateParse, err, "%s:%d", src, lineNo)
		}
		first = false
		pts = append(pts, p)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCoordinateParse, err, "read %s", src)
	}
	if len(pts) == 0 {
		return nil, errors.New(errors.ErrCodeCoordinateParse, "%s: no coordinates", src)
	}

	if nu, nl, ok := lednicerCounts(pts); ok {
		converted, err := fromLednicer(pts[1:], nu, nl)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCoordinateParse, err, "%s", src)
		}
		pts = converted
	}
	out.Points = pts
	return out, nil
}

func parsePair(line string) (geometry.Point, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return geometry.Point{}, fmt.Errorf("expected 2 values, got %d in %q", len(fields), line)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid x %q", fields[0])
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid y %q", fields[1])
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return geometry.Point{}, fmt.Errorf("non-finite value in %q", line)
	}
	return geometry.Point{X: x, Y: y}, nil
}

// looksLikeRow reports whether a line that failed to parse was meant as a
// coordinate pair rather than a name.
func looksLikeRow(line string) bool {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return false
	}
	_, err := strconv.ParseFloat(fields[0], 64)
	return err == nil
}

// lednicerCounts recognises a leading "upper lower" count pair. Chord
// fractions never exceed a few units, so two integral values above 1 whose
// sum matches the remaining point count are unambiguous.
func lednicerCounts(pts []geometry.Point) (int, int, bool) {
	head := pts[0]
	if head.X <= 1.5 || head.Y <= 1.5 || head.X != math.Trunc(head.X) || head.Y != math.Trunc(head.Y) {
		return 0, 0, false
	}
	nu, nl := int(head.X), int(head.Y)
	if nu+nl != len(pts)-1 {
		return 0, 0, false
	}
	return nu, nl, true
}

// fromLednicer reorders LE->TE upper and lower surfaces into one TE->TE walk.
func fromLednicer(pts []geometry.Point, nu, nl int) ([]geometry.Point, error) {
	if nu < 2 || nl < 2 {
		return nil, fmt.Errorf("lednicer surfaces need at least 2 points (upper=%d lower=%d)", nu, nl)
	}
	upper, lower := pts[:nu], pts[nu:nu+nl]
	out := make([]geometry.Point, 0, nu+nl)
	for i := len(upper) - 1; i >= 0; i-- {
		out = append(out, upper[i])
	}
	if lower[0] == upper[0] {
		lower = lower[1:]
	}
	return append(out, lower...), nil
}
