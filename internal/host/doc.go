// Package host describes the machine themesnap reads from.
//
// A [Host] bundles the filesystem (an afero.Fs), the environment, the
// invoking user's home directory and a [CommandRunner] for desktop settings
// queries. Everything downstream takes a *Host instead of reaching for the
// os package, so tests build one with [New] over an in-memory filesystem and
// a [MockRunner]:
//
//	h := host.New(
//	    host.WithHome("/home/alice"),
//	    host.WithRunner(host.NewMockRunner(map[string]host.MockResponse{
//	        "gsettings get org.gnome.desktop.interface gtk-theme": {Output: "'Nordic'"},
//	    })),
//	)
//
// [Local] builds the Host for the running machine.
package host
