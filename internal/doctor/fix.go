package doctor

// Fixer is an optional interface for checks that can remediate what they
// report. Fix must be called after Run.
type Fixer interface {
	// CanFix returns true if the last Run found a fixable issue.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run.
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Path is the file or directory that was targeted for fixing.
	Path string `json:"path"`

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool `json:"fixed"`

	// Description explains what was fixed or why it couldn't be fixed.
	Description string `json:"description"`

	// Error contains the error if the fix failed.
	Error error `json:"-"`
}

// Fix runs Fix on every registered check that implements Fixer and reports
// it can fix something. Run must have been called first.
func (r *Runner) Fix() []FixResult {
	var results []FixResult
	for _, c := range r.checks {
		f, ok := c.(Fixer)
		if !ok || !f.CanFix() {
			continue
		}
		results = append(results, f.Fix()...)
	}
	return results
}
