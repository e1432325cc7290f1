package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/themesnap/internal/config"
	"github.com/thoreinstein/themesnap/internal/host"
	"github.com/thoreinstein/themesnap/internal/paths"
	"github.com/thoreinstein/themesnap/internal/resolve"
	"github.com/thoreinstein/themesnap/internal/selection"
	"github.com/thoreinstein/themesnap/internal/tui"
)

const testHome = "/home/alice"

// fakeEscalator records the arguments it was asked to re-run with.
type fakeEscalator struct {
	tool  string
	err   error
	calls int
	args  []string
}

func (f *fakeEscalator) Tool(context.Context) string { return f.tool }

func (f *fakeEscalator) Escalate(_ context.Context, args []string) error {
	f.calls++
	f.args = args
	return f.err
}

// testEnv runs commands against an in-memory home directory.
type testEnv struct {
	base   afero.Fs
	fs     *host.RestrictedFs
	runner *host.MockRunner
	host   *host.Host
	esc    *fakeEscalator
	out    *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv(paths.ConfigDirEnv, t.TempDir())
	t.Setenv(debugEnv, "")
	resetFlags()

	base := afero.NewMemMapFs()
	env := &testEnv{
		base:   base,
		fs:     host.NewRestrictedFs(base),
		runner: host.NewMockRunner(nil),
		esc:    &fakeEscalator{tool: "sudo"},
		out:    &bytes.Buffer{},
	}
	env.host = host.New(
		host.WithFS(env.fs),
		host.WithHome(testHome),
		host.WithRunner(env.runner),
		host.WithEnv(map[string]string{"USER": "alice", "HOME": testHome}),
	)

	origHost, origEsc, origClip, origTerm := newHost, newEscalator, newClipboard, isTerminal
	origTUI, origFuzzy, origNow := runTUI, pickFuzzy, now
	origClipUnsupported := clipboardUnsupported
	t.Cleanup(func() {
		newHost, newEscalator, newClipboard, isTerminal = origHost, origEsc, origClip, origTerm
		runTUI, pickFuzzy, now = origTUI, origFuzzy, origNow
		clipboardUnsupported = origClipUnsupported
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	newHost = func(*config.Config) (*host.Host, error) { return env.host, nil }
	newEscalator = func(*config.Config) resolve.Escalator { return env.esc }
	newClipboard = func(*config.Config) resolve.Clipboard { return nil }
	isTerminal = func(any) bool { return false }
	clipboardUnsupported = func() bool { return false }
	now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	runTUI = func(context.Context, *selection.State, string, string, ...tea.ProgramOption) (tui.Result, error) {
		t.Fatal("unexpected full-screen interface")
		return tui.Result{}, nil
	}
	pickFuzzy = func(*selection.State) error {
		t.Fatal("unexpected fuzzy finder")
		return nil
	}

	resetFlags()
	rootCmd.SetOut(env.out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(""))
	return env
}

// resetFlags restores every flag variable to its default, since cobra keeps
// values between executions of the same command tree.
func resetFlags() {
	verbosity, quiet, logFormat, logFile, configFile = 0, false, "text", "", ""
	createOpts = createOptions{picker: pickerTUI}
	detectJSON, detectPaths = false, false
	checkSelect, checkAll = "", false
	listRoot = ""
	doctorJSON, doctorFix = false, false
	versionCheck = false
	cfg, configLoadErr = config.Default(), nil
	config.Init()
	clearContexts(rootCmd)
}

// clearContexts drops the contexts left on commands by earlier executions.
// cobra hands the root context only to commands that have none, so a
// context from a finished test would otherwise reach the next one already
// cancelled.
func clearContexts(c *cobra.Command) {
	c.SetContext(nil) //nolint:staticcheck // nil lets cobra inherit the next root context
	for _, sub := range c.Commands() {
		clearContexts(sub)
	}
}

// run executes the root command with args and returns its error. Output is
// collected in e.out.
func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	e.out.Reset()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(t.Context())
}

// interactive makes the command see a terminal and answers prompts from
// input.
func (e *testEnv) interactive(input string) {
	isTerminal = func(any) bool { return true }
	rootCmd.SetIn(strings.NewReader(input))
}

func (e *testEnv) writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(e.base, path, []byte(content), 0o644))
}

func (e *testEnv) exists(path string) bool {
	ok, _ := afero.Exists(e.base, path)
	return ok
}

// withFonts installs a fontconfig file so the fonts component has something
// to copy.
func (e *testEnv) withFonts(t *testing.T) {
	t.Helper()
	e.writeFile(t, testHome+"/.config/fontconfig/fonts.conf",
		"<fontconfig><alias><family>Inter</family></alias></fontconfig>\n")
}

// writeOSFile writes a file on the real filesystem, for config files read
// through viper.
func (e *testEnv) writeOSFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
