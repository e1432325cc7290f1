package host

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// CommandRunner abstracts command execution so settings queries and
// escalation checks can be faked in tests.
type CommandRunner interface {
	// Run executes a command and returns its stdout trimmed.
	Run(ctx context.Context, name string, args ...string) (string, error)
	// IsInstalled checks if a command is available in PATH.
	IsInstalled(ctx context.Context, name string) bool
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (ExecRunner) IsInstalled(_ context.Context, name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// MockResponse holds a predefined response for MockRunner.
type MockResponse struct {
	Output string
	Err    error
}

// MockRunner maps "name arg1 arg2" keys to predefined responses. A bare
// command name key marks that command as installed. Safe for concurrent use.
type MockRunner struct {
	Responses map[string]MockResponse

	mu    sync.Mutex
	calls []string
}

// NewMockRunner returns a MockRunner answering from responses.
func NewMockRunner(responses map[string]MockResponse) *MockRunner {
	if responses == nil {
		responses = map[string]MockResponse{}
	}
	return &MockRunner{Responses: responses}
}

func (m *MockRunner) key(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func (m *MockRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	k := m.key(name, args...)

	m.mu.Lock()
	m.calls = append(m.calls, k)
	m.mu.Unlock()

	resp, ok := m.Responses[k]
	if !ok {
		return "", fmt.Errorf("mock: unknown command %q", k)
	}
	return resp.Output, resp.Err
}

func (m *MockRunner) IsInstalled(_ context.Context, name string) bool {
	resp, ok := m.Responses[name]
	if !ok {
		return false
	}
	return resp.Err == nil
}

// Calls returns every command run so far, in order.
func (m *MockRunner) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
