package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/foilsweep/pkg/buildinfo"
)

func TestVersionFlag(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), appName+" "+buildinfo.Version) {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	for _, name := range []string{"resolve", "export", "sweep", "plot", "polars", "cache", "completion"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	if err := Execute(context.Background(), []string{"no-such-command"}); err == nil {
		t.Error("expected error for unknown command")
	}
}
