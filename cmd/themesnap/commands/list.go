package commands

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/themesnap/internal/backup"
	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/host"
)

var listRoot string

func init() {
	listCmd.Flags().StringVar(&listRoot, "root", "",
		"backup root to list (default from config)")
	verifyCmd.Flags().StringVar(&listRoot, "root", "",
		"backup root NAME is looked up in (default from config)")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(verifyCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List completed backups",
	Long: `List the completed backups under the backup root, newest first.

Directories without backup_info.txt are incomplete (interrupted) backups
and are not listed.`,
	Example: `  themesnap list
  themesnap list --root /mnt/usb/themes

See Also: themesnap verify, themesnap create`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var verifyCmd = &cobra.Command{
	Use:   "verify NAME|DIR",
	Short: "Verify a backup against its manifest checksums",
	Long: `Re-hash every file recorded in a backup's manifest.json and report files
that are missing or were modified since the backup was created.

NAME is looked up under the backup root; a path containing a slash is used
as the backup directory directly.`,
	Example: `  themesnap verify nord
  themesnap verify /mnt/usb/themes/nord

See Also: themesnap list`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

// backupRoot returns --root or the configured root, expanded.
func backupRoot(h *host.Host) string {
	if listRoot != "" {
		return h.Expand(listRoot)
	}
	return cfg.ResolveBackupRoot(h.Home)
}

func runList(cmd *cobra.Command, _ []string) error {
	h, err := loadHost()
	if err != nil {
		return err
	}
	root := backupRoot(h)

	manifests, err := backup.List(h.FS, root)
	if err != nil {
		return errors.NewSystemError(err, "check that the backup root is readable")
	}

	out := cmd.OutOrStdout()
	if len(manifests) == 0 {
		fmt.Fprintf(out, "No backups in %s\n", root)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCREATED\tCOMPONENTS\tFILES\tFAILED")
	for _, m := range manifests {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n",
			m.Name,
			m.CreatedAt.Local().Format("2006-01-02 15:04"),
			len(m.Entries),
			m.Copied(),
			len(m.Failed()))
	}
	return tw.Flush()
}

func runVerify(cmd *cobra.Command, args []string) error {
	h, err := loadHost()
	if err != nil {
		return err
	}

	dir := h.Expand(args[0])
	if filepath.Base(dir) == dir {
		dir = filepath.Join(backupRoot(h), args[0])
	}

	out := cmd.OutOrStdout()
	bad, err := backup.Verify(h.FS, dir)
	for _, rel := range bad {
		fmt.Fprintf(out, "%s %s\n", styleRed("✗"), rel)
	}
	switch {
	case errors.Is(err, backup.ErrIncomplete):
		return errors.NewUserError(err, "the backup was interrupted; create it again")
	case errors.Is(err, backup.ErrBackupCorrupted):
		return errors.NewSystemError(err, "restore the listed files or create a new backup")
	case err != nil:
		return errors.NewSystemError(err, "check that the backup directory is readable")
	}

	fmt.Fprintf(out, "%s %s matches its manifest\n", styleGreen("✓"), dir)
	return nil
}
