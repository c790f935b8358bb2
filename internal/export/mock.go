package export

import (
	"context"
	"sync"
)

// MockLauncher records open and print requests.
type MockLauncher struct {
	OpenErr  error
	PrintErr error
	Opened   []string
	Printed  []string
	mu       sync.Mutex
}

// Open records the path and returns OpenErr.
func (m *MockLauncher) Open(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Opened = append(m.Opened, path)
	return m.OpenErr
}

// Print records the path and returns PrintErr.
func (m *MockLauncher) Print(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Printed = append(m.Printed, path)
	return m.PrintErr
}
