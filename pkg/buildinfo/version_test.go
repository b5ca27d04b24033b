package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v1.2.3"

	if got := Template(); !strings.HasPrefix(got, "{{.Name}} v1.2.3 ") {
		t.Errorf("Template() = %q", got)
	}
	if !strings.Contains(String(), "version: v1.2.3") {
		t.Errorf("String() = %q", String())
	}
	if UserAgent() != "foilsweep/v1.2.3" {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
}
