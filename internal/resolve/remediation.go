package resolve

import (
	"fmt"
	"io"
	"strings"

	"github.com/alessio/shellescape"
)

// DefaultRemediationTool prefixes remediation commands when no elevation
// tool is installed.
const DefaultRemediationTool = "sudo"

const rule = "============================================================"

// Remediation returns one command per distinct path granting recursive read
// and directory traverse access, run through tool.
func Remediation(tool string, paths []string) []string {
	if tool == "" {
		tool = DefaultRemediationTool
	}
	seen := make(map[string]bool, len(paths))
	cmds := make([]string, 0, len(paths))
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		cmds = append(cmds, fmt.Sprintf("%s chmod -R a+rX %s", tool, shellescape.Quote(p)))
	}
	return cmds
}

// WriteBlock prints commands between rules so they can be copied by hand.
func WriteBlock(w io.Writer, cmds []string) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Run these commands, then choose retry:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Join(cmds, "\n"))
	fmt.Fprintln(w, rule)
}
