package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tcnksm/go-latest"

	"github.com/thoreinstein/themesnap/cmd"
	"github.com/thoreinstein/themesnap/internal/errors"
)

var versionCheck bool

// latestSource is the release source queried by --check.
var latestSource latest.Source = &latest.GithubTag{
	Owner:      cmd.RepoOwner,
	Repository: cmd.RepoName,
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false,
		"check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long: `Print the version, commit, and build date of themesnap.

With --check, the latest release tag on GitHub is compared with this build.`,
	Args:        cobra.NoArgs,
	Annotations: skipConfigCheck(),
	RunE: func(c *cobra.Command, _ []string) error {
		out := c.OutOrStdout()
		b := cmd.Current()
		fmt.Fprintf(out, "themesnap version %s\n", b.Version)
		fmt.Fprintf(out, "  commit:    %s\n", b.Commit)
		fmt.Fprintf(out, "  built:     %s\n", b.Date)
		fmt.Fprintf(out, "  go:        %s\n", b.GoVersion)

		if !versionCheck {
			return nil
		}
		return checkLatest(out, b.Version)
	},
}

func checkLatest(w io.Writer, current string) error {
	if current == "dev" {
		fmt.Fprintln(w, "\nDevelopment build; skipping the update check.")
		return nil
	}

	res, err := latest.Check(latestSource, current)
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "checking for updates"),
			"check your network connection")
	}

	if res.Outdated {
		fmt.Fprintf(w, "\nA new version is available: %s (you have %s)\n", res.Current, current)
		fmt.Fprintf(w, "Download it from https://github.com/%s/%s/releases\n", cmd.RepoOwner, cmd.RepoName)
		return nil
	}
	fmt.Fprintf(w, "\nYou are using the latest version: %s\n", current)
	return nil
}
