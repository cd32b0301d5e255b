// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"
)

// MockDeleter is a test double for [services.Deleter].
//
// FailFor maps identifiers to the error message they should fail with; every
// other identifier succeeds. Calls are recorded for assertions, and InFlight
// tracking captures the maximum observed concurrency.
type MockDeleter struct {
	FailFor map[string]string
	Err     error         // returned for every call when set
	Delay   time.Duration // simulated request latency

	mu          sync.Mutex
	calls       []string
	inFlight    int
	maxInFlight int
}

func (m *MockDeleter) Delete(ctx context.Context, identifier string) error {
	m.mu.Lock()
	m.calls = append(m.calls, identifier)
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.Delay):
		}
	}

	if m.Err != nil {
		return m.Err
	}
	if msg, ok := m.FailFor[identifier]; ok {
		return errors.New(msg)
	}
	return nil
}

// Calls returns a copy of the identifiers deleted so far.
func (m *MockDeleter) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// MaxInFlight returns the highest number of concurrent Delete calls observed.
func (m *MockDeleter) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
