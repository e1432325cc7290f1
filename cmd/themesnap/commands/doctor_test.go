package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/themesnap/internal/doctor"
	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/host"
)

// healthy installs the tools doctor looks for.
func (e *testEnv) healthy() {
	e.runner.Responses[host.ToolGSettings] = host.MockResponse{}
	e.runner.Responses["sudo"] = host.MockResponse{}
}

type doctorJSONReport struct {
	Results []struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Status   string `json:"status"`
		Message  string `json:"message"`
		Fixable  bool   `json:"fixable"`
	} `json:"results"`
	Summary doctor.Summary `json:"summary"`
}

func TestDoctor_Healthy(t *testing.T) {
	env := newTestEnv(t)
	env.healthy()

	require.NoError(t, env.run(t, "doctor"))

	out := env.out.String()
	assert.Contains(t, out, "Summary: 4 passed, 2 info, 0 warnings, 0 errors")
	assert.NotContains(t, out, "[detection]", "passed checks are hidden without -v")
}

func TestDoctor_Verbose(t *testing.T) {
	env := newTestEnv(t)
	env.healthy()

	require.NoError(t, env.run(t, "doctor", "-v"))

	out := env.out.String()
	assert.Contains(t, out, "[detection] settings-tools: found gsettings")
	assert.Contains(t, out, "[access] escalation: using sudo")
	assert.Contains(t, out, "[backup] backup-root:")
	assert.Contains(t, out, "hint: themesnap doctor --fix")
}

func TestDoctor_Warnings(t *testing.T) {
	env := newTestEnv(t)
	env.withFonts(t)
	env.fs.Deny(testHome + "/.config/fontconfig")

	err := env.run(t, "doctor")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	out := env.out.String()
	assert.Contains(t, out, "settings-tools")
	assert.Contains(t, out, "escalation")
	assert.Contains(t, out, "sources: 1 of")
	assert.Contains(t, out, "hint: themesnap check --all")
}

func TestDoctor_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.healthy()
	env.writeFile(t, testHome+"/CustomThemes", "not a directory")

	err := env.run(t, "doctor")
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))
	assert.Contains(t, env.out.String(), "exists but is not a directory")
}

func TestDoctor_BrokenConfig(t *testing.T) {
	env := newTestEnv(t)
	env.healthy()

	path := t.TempDir() + "/config.yaml"
	env.writeOSFile(t, path, "version: 9\n")

	err := env.run(t, "doctor", "--config", path)
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))
	assert.Contains(t, env.out.String(), "[config] config-file:")
	assert.Contains(t, env.out.String(), "hint: themesnap config edit")
}

func TestDoctor_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.healthy()

	require.NoError(t, env.run(t, "doctor", "--json"))

	var report doctorJSONReport
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &report))
	require.Len(t, report.Results, 6)

	names := make([]string, 0, len(report.Results))
	for _, r := range report.Results {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"config-file", "settings-tools", "escalation", "clipboard", "sources", "backup-root"}, names)
	assert.Equal(t, "info", report.Results[5].Status)
	assert.True(t, report.Results[5].Fixable)
	assert.Equal(t, 4, report.Summary.Passed)
}

func TestDoctor_Fix(t *testing.T) {
	env := newTestEnv(t)
	env.healthy()

	require.NoError(t, env.run(t, "doctor", "--fix"))

	assert.Contains(t, env.out.String(), "fixed "+testHome+"/CustomThemes")
	assert.Contains(t, env.out.String(), "Summary: 5 passed, 1 info")
	assert.True(t, env.exists(testHome+"/CustomThemes"))
}

func TestDoctor_Quiet(t *testing.T) {
	env := newTestEnv(t)

	err := env.run(t, "doctor", "-q")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.Empty(t, env.out.String())
}

func TestWriteDoctorText(t *testing.T) {
	report := &doctor.DoctorReport{
		Results: []*doctor.CheckResult{
			{Name: "clipboard", Category: "access", Status: doctor.SeverityPass, Message: "available"},
			{Name: "escalation", Category: "access", Status: doctor.SeverityWarning, Message: "none installed", FixHint: "install sudo"},
		},
		Summary: doctor.Summary{Passed: 1, Warnings: 1},
	}

	var buf bytes.Buffer
	writeDoctorText(&buf, report, false)
	out := buf.String()
	assert.NotContains(t, out, "clipboard")
	assert.Contains(t, out, "⚠ [access] escalation: none installed")
	assert.Contains(t, out, "  hint: install sudo")
	assert.Contains(t, out, "Summary: 1 passed, 0 info, 1 warnings, 0 errors")

	buf.Reset()
	writeDoctorText(&buf, report, true)
	assert.Contains(t, buf.String(), "✓ [access] clipboard: available")
}
