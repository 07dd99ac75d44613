// Package jobmgr tracks named background jobs with cancellation and
// lifecycle reporting. Jobs run in their own goroutines and remove
// themselves on completion; there is no retry logic and no persistence.
package jobmgr

import (
	"context"
	"fmt"
	"sync"
)

// StatusReporter receives lifecycle events, e.g. "running:orb-clock",
// "error:orb-clock:...", "done:orb-clock". May be nil.
type StatusReporter func(string)

// Manager starts, stops, and lists jobs. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	cancels  map[string]context.CancelFunc
	Reporter StatusReporter
}

// NewManager creates a Manager with an optional reporter.
func NewManager(reporter StatusReporter) *Manager {
	return &Manager{
		cancels:  make(map[string]context.CancelFunc),
		Reporter: reporter,
	}
}

// Start launches runner under the given name. The runner's context is
// cancelled by Stop or by parent. Starting a duplicate name is an error.
func (m *Manager) Start(parent context.Context, name string, runner func(ctx context.Context) error) error {
	m.mu.Lock()
	if _, exists := m.cancels[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("job %q is already running", name)
	}
	ctx, cancel := context.WithCancel(parent)
	m.cancels[name] = cancel
	m.mu.Unlock()

	go func() {
		m.report("running:" + name)
		if err := runner(ctx); err != nil {
			m.report("error:" + name + ":" + err.Error())
		} else {
			m.report("done:" + name)
		}
		m.mu.Lock()
		delete(m.cancels, name)
		m.mu.Unlock()
	}()
	return nil
}

// Stop cancels a running job by name.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cancel, ok := m.cancels[name]
	if !ok {
		return fmt.Errorf("job %q not running", name)
	}
	cancel()
	delete(m.cancels, name)
	return nil
}

// List returns the active job names.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.cancels))
	for name := range m.cancels {
		out = append(out, name)
	}
	return out
}

func (m *Manager) report(s string) {
	if m.Reporter != nil {
		m.Reporter(s)
	}
}
