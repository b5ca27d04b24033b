package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/foilsweep/pkg/errors"
)

const clarky = `CLARK Y AIRFOIL
1.0000 0.0006
0.5000 0.0900
0.0000 0.0000
0.5000 -0.0200
1.0000 -0.0006
`

func writeCatalog(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLookup(t *testing.T) {
	dir := writeCatalog(t, map[string]string{
		"clarky.dat":   clarky,
		"e387":         clarky,
		"FX63-137.dat": clarky,
		"broken.dat":   "header\n1 0\nnot numbers here\n",
	})
	c := New(dir)
	ctx := context.Background()

	tests := []struct {
		key     string
		ok      bool
		wantErr bool
	}{
		{"clarky", true, false},
		{"  ClarkY ", true, false},
		{"e387", true, false},
		{"E387", true, false},
		{"FX63-137", true, false},
		{"fx63-137.DAT", true, false},
		{"s1223", false, false},
		{"../etc/passwd", false, false},
		{"broken", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			pts, ok, err := c.Lookup(ctx, tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lookup(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrCodeCoordinateParse) {
				t.Errorf("Lookup(%q) error code = %v", tt.key, errors.GetCode(err))
			}
			if ok != tt.ok {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.key, ok, tt.ok)
			}
			if ok && len(pts) != 5 {
				t.Errorf("Lookup(%q) returned %d points, want 5", tt.key, len(pts))
			}
		})
	}
}

func TestLookupMissingDir(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "nope"))
	if _, ok, err := c.Lookup(context.Background(), "clarky"); ok || err != nil {
		t.Errorf("missing dir: ok %v err %v, want decline", ok, err)
	}

	empty := New("")
	if _, ok, err := empty.Lookup(context.Background(), "clarky"); ok || err != nil {
		t.Errorf("empty dir: ok %v err %v, want decline", ok, err)
	}
}

func TestNames(t *testing.T) {
	dir := writeCatalog(t, map[string]string{
		"e387":       clarky,
		"clarky.dat": clarky,
		".hidden":    clarky,
	})
	names, err := New(dir).Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if len(names) != 2 || names[0] != "clarky" || names[1] != "e387" {
		t.Errorf("Names() = %v", names)
	}
}
