// Package backup writes the theme package for a set of selected components.
//
// # Layout
//
// Each backup is a directory named by the user under the backup root:
//
//	~/CustomThemes/
//	└── {name}/
//	    ├── GTK_Themes/
//	    │   └── home/.themes/...     sources under the invoking user's home
//	    ├── Splash_Screen/
//	    │   └── usr/share/plymouth/themes/...
//	    ├── manifest.json
//	    └── backup_info.txt
//
// Sources under the invoking user's home are stored under "home/" with the
// home prefix removed; other absolute paths keep their full path minus the
// leading slash.
//
// # Completion
//
// manifest.json is written once every component has been processed, and
// backup_info.txt is written after it. A directory without backup_info.txt
// is an interrupted backup. [Load] reports it with [ErrIncomplete].
//
// # Component Status
//
// Every selected component appears exactly once in the manifest:
//
//   - copied: every existing source was copied
//   - empty: none of the sources existed; the subfolder is kept
//   - partial: some sources or files failed
//   - failed: nothing could be copied; the subfolder is removed
//
// [Executor.Execute] returns [ErrAllEntriesFailed] only when at least one
// component was selected and every one of them failed.
//
// # Integrity
//
// Regular files carry the SHA256 of the copied bytes. [Verify] re-hashes a
// backup against its manifest.
package backup
