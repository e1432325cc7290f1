package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thoreinstein/themesnap/internal/backup"
	"github.com/thoreinstein/themesnap/internal/cli/prompt"
	"github.com/thoreinstein/themesnap/internal/config"
	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/host"
	"github.com/thoreinstein/themesnap/internal/logging"
	"github.com/thoreinstein/themesnap/internal/paths"
	"github.com/thoreinstein/themesnap/internal/picker"
	"github.com/thoreinstein/themesnap/internal/resolve"
	"github.com/thoreinstein/themesnap/internal/selection"
	"github.com/thoreinstein/themesnap/internal/tui"
)

// Selection interfaces accepted by --picker.
const (
	pickerTUI   = "tui"
	pickerFuzzy = "fuzzy"
)

type createOptions struct {
	name      string
	root      string
	selectIDs string
	all       bool
	resume    bool
	detected  []string
	picker    string
	yes       bool
}

// createOpts is shared by the root command and `create`.
var createOpts = createOptions{picker: pickerTUI}

// runTUI shows the full-screen selection interface.
var runTUI = tui.Run

// pickFuzzy shows the fuzzy finder over sel.
var pickFuzzy = func(sel *selection.State) error {
	return picker.New().Pick(sel)
}

// now is the clock used for default backup names.
var now = time.Now

func addCreateFlags(fs *pflag.FlagSet, o *createOptions) {
	fs.StringVar(&o.name, resolve.FlagName, "",
		"backup name (default theme-YYYY-MM-DD)")
	fs.StringVar(&o.root, resolve.FlagRoot, "",
		"directory backups are saved under (default from config, ~/CustomThemes)")
	fs.StringVar(&o.selectIDs, resolve.FlagSelect, "",
		"comma-separated component IDs to back up")
	fs.BoolVar(&o.all, "all", false,
		"back up every component")
	fs.StringVar(&o.picker, "picker", pickerTUI,
		"selection interface: tui, fuzzy")
	fs.BoolVarP(&o.yes, "yes", "y", false,
		"do not prompt; requires --select or --all")
	fs.BoolVar(&o.resume, resolve.FlagResume, false,
		"continue a backup after privilege escalation")
	_ = fs.MarkHidden(resolve.FlagResume)
	fs.StringArrayVar(&o.detected, resolve.FlagDetected, nil,
		"summary detected before privilege escalation, as id=summary")
	_ = fs.MarkHidden(resolve.FlagDetected)
}

func init() {
	addCreateFlags(createCmd.Flags(), &createOpts)
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a theme backup",
	Long: `Detect the active desktop configuration, choose components and copy
them into <root>/<name>.

In a terminal, a full-screen list lets you toggle components, name the
backup and confirm. With --picker fuzzy a fuzzy finder is used instead.
With --yes (or when not attached to a terminal) the components come from
--select or --all.

When selected paths cannot be read, themesnap offers to re-run itself with
sudo, pkexec or doas, or prints chmod commands that grant read access.

Exit codes:
  0 - Backup created (possibly partial), or cancelled before confirming
  1 - Aborted or invalid input
  2 - Backup root not creatable or every component failed`,
	Example: `  # Interactive
  themesnap create

  # Scripted
  themesnap create --yes --select gtk-themes,icons,fonts --name nord

  # Everything, into a custom root
  themesnap create --yes --all --root /mnt/usb/themes

See Also: themesnap detect, themesnap check, themesnap list`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	out := cmd.OutOrStdout()
	o := createOpts

	h, err := loadHost()
	if err != nil {
		return err
	}
	sel, err := detectSelection(ctx, h)
	if err != nil {
		return err
	}
	if err := applyIDs(sel, o.selectIDs, o.all); err != nil {
		return err
	}
	if o.resume {
		summaries, err := resolve.ParseDetected(o.detected)
		if err != nil {
			return errors.NewUserError(err, "--detected is set by themesnap itself when it re-runs elevated")
		}
		sel.RestoreSummaries(summaries)
	}

	name := o.name
	if name == "" {
		name = tui.DefaultName(now())
	}
	root := o.root
	if root == "" {
		root = cfg.ResolveBackupRoot(h.Home)
	}

	terminal := isTerminal(cmd.InOrStdin()) && isTerminal(out)
	prompting := terminal && !o.yes && !o.resume
	if !prompting && !o.resume && o.selectIDs == "" && !o.all {
		return errors.NewUserError(errors.New("no components selected"),
			"pass --select <ids> or --all, or run in a terminal")
	}

	input := prompt.NewSelectorWithIO(cmd.InOrStdin(), out)
	if prompting {
		var confirmed bool
		name, root, confirmed, err = choose(ctx, input, sel, name, root, o.picker)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, "Cancelled. No backup was created.")
			return nil
		}
	}

	logger.Debug("selection", "name", name, "root", root, "selected", sel.SelectedIDs())

	r := resolve.Resume{
		Name:     name,
		Root:     root,
		Selected: sel.SelectedIDs(),
		Config:   config.InUse(),
		Detected: detectedSummaries(sel),
	}
	state, err := resolveAccess(ctx, h, sel, r, input, terminal && !o.yes)
	switch state {
	case resolve.Delegated:
		fmt.Fprintln(out, "The elevated run completed the backup.")
		return nil
	case resolve.Aborted:
		return abortError(err)
	case resolve.Clean:
	default:
		if err == nil {
			err = errors.Newf("access check stopped in state %s", state)
		}
		return errors.NewSystemError(err, "re-run with -vv for details")
	}

	m, err := backup.NewExecutor(h).Execute(ctx, backup.NewJob(name, root, sel))
	if m != nil && (err == nil || errors.Is(err, backup.ErrAllEntriesFailed)) {
		backup.WriteSummary(out, m)
	}
	if err != nil {
		return backupError(err, h, name, root)
	}
	return nil
}

// detectedSummaries returns the summaries of selected entries that were
// detected, keyed by component ID.
func detectedSummaries(sel *selection.State) map[string]string {
	var m map[string]string
	for e := range sel.SelectedEntries() {
		if !e.Detected.Detected() {
			continue
		}
		if m == nil {
			m = make(map[string]string)
		}
		m[e.Spec.ID] = e.Detected.Summary
	}
	return m
}

// choose runs the interactive selection and returns the confirmed name and
// root. confirmed is false when the user quit.
func choose(ctx context.Context, input *prompt.Selector, sel *selection.State, name, root, mode string) (string, string, bool, error) {
	switch mode {
	case pickerTUI, "":
		res, err := runTUI(ctx, sel, name, root)
		if err != nil {
			return "", "", false, errors.NewSystemError(err, "use --picker fuzzy or --yes --select <ids>")
		}
		return res.Name, res.Root, res.Confirmed, nil

	case pickerFuzzy:
		if err := pickFuzzy(sel); err != nil {
			if errors.Is(err, picker.ErrCancelled) {
				return "", "", false, nil
			}
			return "", "", false, errors.NewSystemError(err, "use --picker tui or --yes --select <ids>")
		}
		name, root, confirmed, err := confirmLines(input, sel, name, root)
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return "", "", false, nil
		}
		if err != nil {
			return "", "", false, errors.NewUserError(err, "answer y or n")
		}
		return name, root, confirmed, nil

	default:
		return "", "", false, errors.NewUserError(errors.Newf("unknown picker %q", mode),
			"use --picker tui or --picker fuzzy")
	}
}

// confirmLines asks for the name and root on plain lines and confirms.
func confirmLines(input *prompt.Selector, sel *selection.State, name, root string) (string, string, bool, error) {
	w := input.Writer()
	var err error
	for {
		name, err = input.Input("Backup name", name)
		if err != nil {
			return "", "", false, err
		}
		if err := paths.ValidateName(name); err != nil {
			fmt.Fprintf(w, "%v\n", err)
			continue
		}
		break
	}
	root, err = input.Input("Save under", root)
	if err != nil {
		return "", "", false, err
	}

	fmt.Fprintf(w, "\n%d component(s) will be saved to %s\n", sel.Count(), filepath.Join(root, name))
	for e := range sel.SelectedEntries() {
		fmt.Fprintf(w, "  - %s (%s)\n", e.Spec.DisplayName, e.Detected.Display())
	}
	if sel.Count() == 0 {
		fmt.Fprintln(w, "  No components selected; the backup will only contain its manifest.")
	}

	ok, err := input.Confirm("Create backup?", true)
	if err != nil {
		return "", "", false, err
	}
	return name, root, ok, nil
}

func abortError(err error) error {
	if err == nil {
		err = errors.ErrAborted
	}
	if errors.Is(err, resolve.ErrEscalationUnavailable) {
		return errors.NewUserError(err, "choose 'Show chmod commands' and run them instead")
	}
	if errors.Is(err, resolve.ErrEscalationFailed) {
		return errors.NewUserError(err, "re-run with -vv to see the elevated run's output")
	}
	return errors.NewUserError(err, "grant read access with 'themesnap check', or deselect the blocked components")
}

func backupError(err error, h *host.Host, name, root string) error {
	dir := filepath.Join(h.Expand(root), name)
	switch {
	case errors.Is(err, paths.ErrInvalidPath):
		return errors.NewUserError(err, "choose a name without slashes, or '.' and '..'")
	case errors.Is(err, backup.ErrBackupExists):
		return errors.NewUserError(err, "choose another name with --name")
	case errors.Is(err, backup.ErrRootNotCreatable):
		return errors.NewSystemError(err, "check that the parent directory is writable, or pass --root")
	case errors.Is(err, backup.ErrAllEntriesFailed):
		return errors.NewSystemError(err, "run 'themesnap check' to see which paths cannot be read")
	case errors.Is(err, context.Canceled):
		return errors.NewUserError(err, fmt.Sprintf("the incomplete backup in %s can be deleted", dir))
	default:
		return errors.NewSystemError(err, "re-run with -vv for details")
	}
}
