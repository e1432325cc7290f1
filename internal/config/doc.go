// Package config provides configuration management for the themesnap CLI.
//
// # Configuration File
//
// The default configuration file location is ~/.config/themesnap/config.yaml
// (or $THEMESNAP_CONFIG_DIR/config.yaml). Every key is optional:
//
//	version: 1
//	backup_root: ~/CustomThemes
//	escalation:
//	  tools: [sudo, pkexec, doas]
//	clipboard: true
//	detect:
//	  timeout: 2s
//	components:
//	  - id: conky
//	    name: Conky
//	    category: Desktop
//	    dest: Conky
//	    sources: [~/.config/conky]
//	    detectors:
//	      - kind: pattern
//	        path: ~/.config/conky/conky.conf
//	        pattern: 'font\s*=\s*''([^'']+)'''
//
// Environment variables override file values: THEMESNAP_BACKUP_ROOT,
// THEMESNAP_CLIPBOARD, THEMESNAP_DETECT_TIMEOUT and so on, with dots in
// keys replaced by underscores.
//
// # Loading Configuration
//
// Call [Init] once at startup, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load(flagConfigPath)
//
// An empty path searches the default location and falls back to [Default]
// when no file exists. An explicit path that does not exist is an error.
//
// # Validation
//
// [Load] validates automatically. [Validate] returns every problem found as
// a [*FieldError] wrapping one of the sentinel errors.
//
// # Components
//
// Entries under components are appended to the built-in catalog by
// [Config.Registry]. They use the same detector kinds as the catalog and
// cannot reuse a built-in id.
package config
