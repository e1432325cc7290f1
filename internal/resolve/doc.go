// Package resolve handles selected paths the process cannot read.
//
// An [Engine] starts in Checking. [Engine.Check] probes the union of the
// selected components' sources and moves to Clean or Blocked. From Blocked
// the user picks a [Strategy]:
//
//   - escalate re-runs the program through sudo, pkexec or doas, passing
//     the selection and backup name as [Resume] flags so the elevated run
//     does not prompt again. It ends in Delegated or Aborted and never
//     falls back to an unprivileged copy.
//   - commands generates one "chmod -R a+rX" line per blocked path, copies
//     the block to the clipboard or prints it, and asks again.
//   - retry probes again.
//   - abort ends the run without a backup.
//
// Probe reports are never cached between attempts.
package resolve
