package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/themesnap/internal/config"
	"github.com/thoreinstein/themesnap/internal/doctor"
	"github.com/thoreinstein/themesnap/internal/errors"
)

var (
	doctorJSON bool
	doctorFix  bool
)

// clipboardUnsupported reports whether no clipboard utility was found.
var clipboardUnsupported = func() bool { return clipboard.Unsupported }

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("errors found")

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"fix issues that can be fixed automatically")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the backup environment",
	Long: `Run diagnostic checks on the environment themesnap depends on: the
config file, gsettings and kreadconfig, the privilege escalation tool, the
clipboard, component source permissions and the backup root.

Output modes:
  (default)   Show errors and warnings
  -v          Show all checks including passed ones
  -q          No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  themesnap doctor
  themesnap doctor -v
  themesnap doctor --fix`,
	Args:        cobra.NoArgs,
	Annotations: skipConfigCheck(),
	RunE:        runDoctor,
}

func doctorRunner() (*doctor.Runner, error) {
	h, err := loadHost()
	if err != nil {
		return nil, err
	}

	path := config.Path()
	exists, _ := afero.Exists(configFS, path)

	runner := doctor.NewRunner()
	runner.AddCheck(&doctor.ConfigCheck{Path: path, LoadErr: configLoadErr, Exists: exists})
	runner.AddCheck(&doctor.SettingsToolsCheck{Runner: h.Runner})
	runner.AddCheck(&doctor.EscalationCheck{Runner: h.Runner, Tools: cfg.Escalation.Tools, UID: h.UID})
	runner.AddCheck(&doctor.ClipboardCheck{Enabled: cfg.Clipboard, Unsupported: clipboardUnsupported()})
	if reg, err := cfg.Registry(); err == nil {
		runner.AddCheck(&doctor.SourcesCheck{Host: h, Registry: reg})
	}
	runner.AddCheck(&doctor.BackupRootCheck{FS: h.FS, Root: cfg.ResolveBackupRoot(h.Home)})
	return runner, nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	runner, err := doctorRunner()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	report := runner.Run(cmd.Context())
	if doctorFix {
		fixes := runner.Fix()
		if len(fixes) > 0 {
			if !quiet && !doctorJSON {
				writeFixes(out, fixes)
			}
			report = runner.Run(cmd.Context())
		}
	}

	if err := outputDoctorReport(out, report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport) error {
	if quiet {
		return nil
	}
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
		return nil
	}
	writeDoctorText(w, report, verbosity > 0)
	return nil
}

func writeDoctorText(w io.Writer, report *doctor.DoctorReport, showAll bool) {
	hasOutput := false
	for _, result := range report.Results {
		problem := result.Problem()
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && (problem || result.Fixable) {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func writeFixes(w io.Writer, fixes []doctor.FixResult) {
	for _, f := range fixes {
		if f.Fixed {
			fmt.Fprintf(w, "%s fixed %s: %s\n", styleGreen("✓"), f.Path, f.Description)
			continue
		}
		fmt.Fprintf(w, "%s could not fix %s: %v\n", styleRed("✗"), f.Path, f.Error)
	}
	fmt.Fprintln(w)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return styleGreen("✓")
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return styleYellow("⚠")
	case doctor.SeverityError:
		return styleRed("✗")
	default:
		return "?"
	}
}
