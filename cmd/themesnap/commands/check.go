package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/probe"
	"github.com/thoreinstein/themesnap/internal/resolve"
)

var (
	checkSelect string
	checkAll    bool
)

func init() {
	checkCmd.Flags().StringVar(&checkSelect, resolve.FlagSelect, "",
		"comma-separated component IDs to check")
	checkCmd.Flags().BoolVar(&checkAll, "all", false,
		"check every component (default when --select is not given)")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that component source paths can be read",
	Long: `Probe the source paths of the chosen components the same way a backup
would, and print chmod commands for any path that cannot be read.

Absent paths are fine: they are skipped during a backup.

Exit codes:
  0 - Every path is readable or absent
  1 - At least one path cannot be read`,
	Example: `  # Everything
  themesnap check

  # Only the login screen and boot splash
  themesnap check --select sddm,splash

See Also: themesnap create, themesnap doctor`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	h, err := loadHost()
	if err != nil {
		return err
	}
	sel, err := detectSelection(ctx, h)
	if err != nil {
		return err
	}
	if err := applyIDs(sel, checkSelect, checkAll || checkSelect == ""); err != nil {
		return err
	}

	report := probe.Probe(h.FS, resolve.SourcePaths(sel, h))
	writeProbeReport(out, report)
	if report.Clean() {
		return nil
	}

	tool := newEscalator(cfg).Tool(ctx)
	resolve.WriteBlock(out, resolve.Remediation(tool, report.BlockedPaths()))
	return errors.NewUserError(
		errors.Newf("%d path(s) cannot be read", len(report.Blocked())),
		"run the commands above, or use 'themesnap create' to re-run with elevated privileges")
}

func writeProbeReport(w io.Writer, report probe.Report) {
	for _, a := range report.Accesses {
		switch {
		case !a.Exists:
			fmt.Fprintf(w, "%s %s %s\n", styleDim("-"), a.Path, styleDim("(absent)"))
		case a.Accessible:
			fmt.Fprintf(w, "%s %s %s\n", styleGreen("✓"), a.Path, styleDim(a.Permissions()))
		default:
			fmt.Fprintf(w, "%s %s %s\n", styleRed("✗"), a.Path, a.Permissions())
			if a.Err != nil {
				fmt.Fprintf(w, "    %v\n", a.Err)
			}
		}
	}

	blocked := len(report.Blocked())
	fmt.Fprintf(w, "\n%d path(s) checked, %d blocked\n", len(report.Accesses), blocked)
}
