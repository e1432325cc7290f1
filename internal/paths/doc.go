// Package paths resolves the directories themesnap reads from and writes to.
//
// # Invoking User
//
// themesnap may be re-executed through sudo, doas or pkexec when a selected
// component lives in a directory the current user cannot read. The elevated
// process must still back up the original user's configuration, so
// [InvokingHome] consults SUDO_USER, DOAS_USER and PKEXEC_UID before HOME.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for the configuration location:
//
//	paths.ConfigFile() // ~/.config/themesnap/config.yaml
//
// # Tilde Expansion
//
// Registry entries and configuration values use "~/" for home-relative
// paths. [Expand] resolves them against an explicit home directory rather
// than the process environment so the caller controls which home is used.
package paths
