// Package detect reports the active style of each component.
//
// Each component lists detection methods in priority order. [Detect] runs
// them against a [host.Host] and keeps the first non-empty result; a method
// that cannot answer (file missing, tool not installed, key absent, value in
// the method's ignore list) is skipped rather than reported.
//
// Directory scans are deterministic. Directories are tried in order and the
// first one holding a matching entry decides. Within it, hidden entries are
// skipped and symlinks are preferred over plain entries. A symlink is
// reported by the base name of its target, without extension when the
// target is a file. Among equals the lexicographically last name wins.
package detect
