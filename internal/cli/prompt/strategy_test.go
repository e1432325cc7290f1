package prompt

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/thoreinstein/themesnap/internal/probe"
	"github.com/thoreinstein/themesnap/internal/resolve"
)

var blocked = []probe.Access{{
	Path:   "/usr/share/plymouth/themes/spinner",
	Type:   probe.TypeDirectory,
	Mode:   os.ModeDir | 0o700,
	Exists: true,
	Err:    os.ErrPermission,
}}

func TestChooseStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		tool          string
		input         string
		commandsShown bool
		want          resolve.Strategy
	}{
		{"default escalates", "sudo", "\n", false, resolve.StrategyEscalate},
		{"commands", "sudo", "2\n", false, resolve.StrategyCommands},
		{"abort", "sudo", "4\n", false, resolve.StrategyAbort},
		{"retry is default after commands", "sudo", "\n", true, resolve.StrategyRetry},
		{"no tool: default commands", "", "\n", false, resolve.StrategyCommands},
		{"no tool: numbering shifts", "", "2\n", false, resolve.StrategyRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			c := NewStrategyChooser(NewSelectorWithIO(strings.NewReader(tt.input), &buf), tt.tool)

			got, err := c.ChooseStrategy(context.Background(), blocked, tt.commandsShown)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ChooseStrategy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChooseStrategy_ListsBlockedPaths(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewStrategyChooser(NewSelectorWithIO(strings.NewReader("4\n"), &buf), "pkexec")
	if _, err := c.ChooseStrategy(context.Background(), blocked, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"1 path(s) cannot be read",
		"drwx------  /usr/share/plymouth/themes/spinner",
		"Re-run with pkexec",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestChooseStrategy_EOFCancels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewStrategyChooser(NewSelectorWithIO(strings.NewReader(""), &buf), "sudo")
	if _, err := c.ChooseStrategy(context.Background(), blocked, false); err == nil {
		t.Fatal("expected error on EOF")
	}
}
