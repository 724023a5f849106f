package clock

import (
	"sync"
	"time"
)

// TimeProvider supplies wall-clock readings and the inter-tick wait
type TimeProvider interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// LocalTimeProvider reads the system clock in the local timezone
type LocalTimeProvider struct{}

// NewTimeProvider creates the system time provider
func NewTimeProvider() *LocalTimeProvider {
	return &LocalTimeProvider{}
}

// Now returns the current local time
func (p *LocalTimeProvider) Now() time.Time {
	return time.Now().Local()
}

// After waits for d on the system timer
func (p *LocalTimeProvider) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// MockTimeProvider is a deterministic time source for tests
// After advances the clock by d and fires immediately
type MockTimeProvider struct {
	mu         sync.Mutex
	current    time.Time
	afterCalls int
}

// NewMockTimeProvider creates a mock starting at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{current: start}
}

// Now returns the mock time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// After advances by d and returns an already-fired channel
func (m *MockTimeProvider) After(d time.Duration) <-chan time.Time {
	m.mu.Lock()
	m.current = m.current.Add(d)
	m.afterCalls++
	now := m.current
	m.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

// SetTime sets the mock time
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the mock time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

// AfterCalls returns how many waits have been requested
func (m *MockTimeProvider) AfterCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.afterCalls
}
