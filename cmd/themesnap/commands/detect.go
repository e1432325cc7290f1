package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/selection"
)

var (
	detectJSON  bool
	detectPaths bool
)

func init() {
	detectCmd.Flags().BoolVar(&detectJSON, "json", false,
		"output results as JSON")
	detectCmd.Flags().BoolVar(&detectPaths, "paths", false,
		"list the source paths of each component")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show the active style of every component",
	Long: `Detect the active desktop configuration without creating a backup.

Each component is listed with its ID (for --select), category and the
style that is currently active, or "not detected".`,
	Example: `  # Table
  themesnap detect

  # With source paths
  themesnap detect --paths

  # Machine readable
  themesnap detect --json

See Also: themesnap create, themesnap check`,
	Args: cobra.NoArgs,
	RunE: runDetect,
}

// detectedComponent is the JSON form of one detect row.
type detectedComponent struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Detected bool     `json:"detected"`
	Summary  string   `json:"summary"`
	Paths    []string `json:"paths"`
}

func runDetect(cmd *cobra.Command, _ []string) error {
	h, err := loadHost()
	if err != nil {
		return err
	}
	sel, err := detectSelection(cmd.Context(), h)
	if err != nil {
		return err
	}

	if detectJSON {
		return writeDetectJSON(cmd.OutOrStdout(), sel.Entries())
	}
	writeDetectTable(cmd.OutOrStdout(), sel.Entries(), detectPaths)
	return nil
}

func writeDetectJSON(w io.Writer, entries []selection.Entry) error {
	out := make([]detectedComponent, 0, len(entries))
	for _, e := range entries {
		paths := e.Detected.Paths
		if paths == nil {
			paths = []string{}
		}
		out = append(out, detectedComponent{
			ID:       e.Spec.ID,
			Name:     e.Spec.DisplayName,
			Category: e.Spec.Category,
			Detected: e.Detected.Detected(),
			Summary:  e.Detected.Summary,
			Paths:    paths,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func writeDetectTable(w io.Writer, entries []selection.Entry, withPaths bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOMPONENT\tCATEGORY\tACTIVE")
	for _, e := range entries {
		summary := truncate(e.Detected.Display(), 80)
		if !e.Detected.Detected() {
			summary = styleDim(summary)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Spec.ID, e.Spec.DisplayName, e.Spec.Category, summary)
		if withPaths {
			for _, p := range e.Detected.Paths {
				fmt.Fprintf(tw, "\t  %s\t\t\n", p)
			}
		}
	}
	_ = tw.Flush()
}
