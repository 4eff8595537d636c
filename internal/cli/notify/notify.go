// Package notify renders user-facing notices for centrally handled failures.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Console writes notices to the terminal.
type Console struct {
	Out io.Writer
}

// NewConsole creates a notifier writing to stderr.
func NewConsole() *Console {
	return &Console{Out: os.Stderr}
}

// SessionExpired announces that the active session was invalidated.
func (c *Console) SessionExpired() {
	fmt.Fprintln(c.Out, "Your session has expired. Please log in again with 'pactlens login'.")
}

// RequestFailed announces a failed request.
func (c *Console) RequestFailed(detail string) {
	if detail == "" {
		detail = "request failed"
	}
	fmt.Fprintf(c.Out, "Error: %s\n", detail)
}

// Memory records notices for tests.
type Memory struct {
	mu       sync.Mutex
	Expired  int
	Failures []string
}

func (m *Memory) SessionExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Expired++
}

func (m *Memory) RequestFailed(detail string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failures = append(m.Failures, detail)
}
