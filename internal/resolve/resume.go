package resolve

import (
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/thoreinstein/themesnap/internal/errors"
)

// Flag names used to carry a Resume across a re-execution.
const (
	FlagResume = "resume"
	FlagName   = "name"
	FlagRoot   = "root"
	FlagSelect = "select"
	FlagConfig = "config"

	FlagDetected = "detected"
)

// ErrInvalidResume indicates resume arguments that cannot be parsed.
var ErrInvalidResume = errors.New("invalid resume arguments")

// Resume is the user input a re-executed process needs so it does not ask
// again: the backup name, the backup root and the selected component IDs.
// Config names the configuration file the selection was made with, so
// components declared there are known to the elevated run. Detected holds
// the summaries shown to the user, keyed by component ID, so the backup
// records them even when the elevated environment detects differently.
type Resume struct {
	Name     string
	Root     string
	Selected []string
	Config   string
	Detected map[string]string
}

// Args encodes r as command-line flags understood by the create command.
func (r Resume) Args() []string {
	args := []string{
		"--" + FlagResume,
		"--" + FlagName + "=" + r.Name,
		"--" + FlagRoot + "=" + r.Root,
		"--" + FlagSelect + "=" + strings.Join(r.Selected, ","),
	}
	if r.Config != "" {
		args = append(args, "--"+FlagConfig+"="+r.Config)
	}
	for _, id := range slices.Sorted(maps.Keys(r.Detected)) {
		args = append(args, "--"+FlagDetected+"="+id+"="+r.Detected[id])
	}
	return args
}

// ParseResume decodes flags produced by Args.
func ParseResume(args []string) (Resume, error) {
	fs := pflag.NewFlagSet("resume", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	resume := fs.Bool(FlagResume, false, "")
	name := fs.String(FlagName, "", "")
	root := fs.String(FlagRoot, "", "")
	sel := fs.String(FlagSelect, "", "")
	cfg := fs.String(FlagConfig, "", "")
	detected := fs.StringArray(FlagDetected, nil, "")

	if err := fs.Parse(args); err != nil {
		return Resume{}, errors.Wrapf(ErrInvalidResume, "%v", err)
	}
	if !*resume {
		return Resume{}, errors.Wrapf(ErrInvalidResume, "missing --%s", FlagResume)
	}
	summaries, err := ParseDetected(*detected)
	if err != nil {
		return Resume{}, err
	}
	return Resume{Name: *name, Root: *root, Selected: SplitIDs(*sel), Config: *cfg, Detected: summaries}, nil
}

// ParseDetected decodes --detected values of the form id=summary. It returns
// nil when vals is empty.
func ParseDetected(vals []string) (map[string]string, error) {
	if len(vals) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(vals))
	for _, v := range vals {
		id, summary, ok := strings.Cut(v, "=")
		if !ok || id == "" {
			return nil, errors.Wrapf(ErrInvalidResume, "--%s %q: want id=summary", FlagDetected, v)
		}
		m[id] = summary
	}
	return m, nil
}

// SplitIDs splits a comma-separated ID list, dropping empty items.
func SplitIDs(s string) []string {
	var ids []string
	for id := range strings.SplitSeq(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
