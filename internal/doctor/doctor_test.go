package doctor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run_Summary(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Severity
		want     Summary
	}{
		{"empty", nil, Summary{}},
		{"all pass", []Severity{SeverityPass, SeverityPass}, Summary{Passed: 2}},
		{
			"mixed",
			[]Severity{SeverityPass, SeverityInfo, SeverityWarning, SeverityWarning, SeverityError},
			Summary{Passed: 1, Info: 1, Warnings: 2, Errors: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner()
			for i, s := range tt.statuses {
				check := NewMockCheck(t)
				check.On("Run", mock.Anything).Return(&CheckResult{Name: string(rune('a' + i)), Category: "test", Status: s})
				r.AddCheck(check)
			}

			report := r.Run(t.Context())
			assert.Len(t, report.Results, len(tt.statuses))
			assert.Equal(t, tt.want, report.Summary)
			assert.Equal(t, tt.want.Errors > 0, report.HasErrors())
			assert.Equal(t, tt.want.Warnings > 0, report.HasWarnings())
		})
	}
}

func TestRunner_Run_FillsNameAndCategory(t *testing.T) {
	check := NewMockCheck(t)
	check.On("Run", mock.Anything).Return(&CheckResult{Status: SeverityPass})
	check.On("Name").Return("probe")
	check.On("Category").Return("access")

	r := NewRunner()
	r.AddCheck(check)
	report := r.Run(t.Context())

	require.Len(t, report.Results, 1)
	assert.Equal(t, "probe", report.Results[0].Name)
	assert.Equal(t, "access", report.Results[0].Category)
}

func TestRunner_Run_OrderAndTimestamp(t *testing.T) {
	r := NewRunner()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	r.now = func() time.Time { return fixed }

	names := []string{"first", "second", "third"}
	for _, name := range names {
		check := NewMockCheck(t)
		check.On("Run", mock.Anything).Return(&CheckResult{Name: name, Category: "c"})
		r.AddCheck(check)
	}

	report := r.Run(t.Context())
	for i, want := range names {
		assert.Equal(t, want, report.Results[i].Name)
	}
	assert.Equal(t, fixed.UTC(), report.Timestamp)
	assert.Len(t, r.Checks(), 3)
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityPass, "pass"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.s.String())
	}
}

func TestSeverity_UnmarshalText(t *testing.T) {
	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("warning")))
	assert.Equal(t, SeverityWarning, s)
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
	assert.Equal(t, SeverityWarning, s)
}

func TestCheckResult_Problem(t *testing.T) {
	assert.False(t, (&CheckResult{Status: SeverityPass}).Problem())
	assert.False(t, (&CheckResult{Status: SeverityInfo}).Problem())
	assert.True(t, (&CheckResult{Status: SeverityWarning}).Problem())
	assert.True(t, (&CheckResult{Status: SeverityError}).Problem())
}

func TestReport_JSON(t *testing.T) {
	report := &DoctorReport{}
	report.add(&CheckResult{Name: "clipboard", Category: CategoryAccess, Status: SeverityWarning, Message: "m"})

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"warning"`)
	assert.Contains(t, string(data), `"warnings":1`)

	var decoded DoctorReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, SeverityWarning, decoded.Results[0].Status)
}
