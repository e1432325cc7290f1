package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResume_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		resume Resume
	}{
		{"typical", Resume{Name: "nord-rice", Root: "/home/alice/CustomThemes", Selected: []string{"gtk-themes", "icons", "sddm"}}},
		{"spaces and equals", Resume{Name: "My Theme = v2", Root: "/home/alice/My Backups", Selected: []string{"fonts"}}},
		{"leading dashes in name", Resume{Name: "--name", Root: "/tmp", Selected: []string{"shell"}}},
		{"empty selection", Resume{Name: "empty", Root: "/tmp/x"}},
		{"config file", Resume{Name: "nord", Root: "/backups", Selected: []string{"wallpapers"}, Config: "/home/alice/my conf/themesnap.yaml"}},
		{"detected summaries", Resume{Name: "nord", Root: "/backups", Selected: []string{"gtk-themes", "fonts"}, Detected: map[string]string{
			"gtk-themes": "Available: GTK3, Qt5",
			"fonts":      "Font=Inter 11",
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResume(tt.resume.Args())
			require.NoError(t, err)
			assert.Equal(t, tt.resume, got)
		})
	}
}

func TestResume_Args(t *testing.T) {
	r := Resume{Name: "rice", Root: "/r", Selected: []string{"a", "b"}}
	assert.Equal(t, []string{"--resume", "--name=rice", "--root=/r", "--select=a,b"}, r.Args())

	r.Config = "/etc/themesnap.yaml"
	assert.Equal(t, "--config=/etc/themesnap.yaml", r.Args()[4])

	r.Detected = map[string]string{"icons": "Icons: Papirus", "fonts": "Font: Inter"}
	assert.Equal(t, []string{"--detected=fonts=Font: Inter", "--detected=icons=Icons: Papirus"}, r.Args()[5:])
}

func TestParseDetected(t *testing.T) {
	m, err := ParseDetected([]string{"sddm=Theme: breeze", "cursors="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"sddm": "Theme: breeze", "cursors": ""}, m)

	m, err = ParseDetected(nil)
	require.NoError(t, err)
	assert.Nil(t, m)

	_, err = ParseDetected([]string{"no-separator"})
	assert.ErrorIs(t, err, ErrInvalidResume)

	_, err = ParseDetected([]string{"=GTK3: Arc"})
	assert.ErrorIs(t, err, ErrInvalidResume)
}

func TestParseResume_Errors(t *testing.T) {
	_, err := ParseResume([]string{"--name=x"})
	assert.ErrorIs(t, err, ErrInvalidResume)

	_, err = ParseResume([]string{"--resume", "--bogus"})
	assert.ErrorIs(t, err, ErrInvalidResume)
}

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitIDs(" a, ,b,"))
	assert.Nil(t, SplitIDs(""))
}

func TestRemediation(t *testing.T) {
	cmds := Remediation("pkexec", []string{
		"/usr/share/sddm/themes",
		"/home/alice/My Themes",
		"/usr/share/sddm/themes",
		"/tmp/it's",
	})
	assert.Equal(t, []string{
		"pkexec chmod -R a+rX /usr/share/sddm/themes",
		"pkexec chmod -R a+rX '/home/alice/My Themes'",
		`pkexec chmod -R a+rX '/tmp/it'"'"'s'`,
	}, cmds)

	assert.Equal(t, []string{"sudo chmod -R a+rX /x"}, Remediation("", []string{"/x"}))
}
