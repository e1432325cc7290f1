// Package component defines the configuration domains themesnap can back up.
//
// A [Spec] pairs an ordered list of detection [Method] values with the
// source paths to copy and the folder they land in. Adding a domain means
// adding a Spec; detection and backup code never switch on component IDs.
//
// [Default] returns the built-in catalog. Extra components can be declared in
// the configuration file and added with [FromConfig].
package component
