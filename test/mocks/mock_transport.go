package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/kevin07696/ussd-push-service/internal/adapters/ports"
)

// MockTransport is a mock implementation of ports.Transport for testing
// Responses are keyed by URL so a login and a charge can be scripted independently
type MockTransport struct {
	mu sync.Mutex

	responses map[string]string
	errors    map[string]error

	// Call tracking
	Calls []*ports.TransportRequest
}

// NewMockTransport creates a new mock transport
func NewMockTransport() *MockTransport {
	return &MockTransport{
		responses: make(map[string]string),
		errors:    make(map[string]error),
	}
}

// SetResponse sets the raw body returned for url
func (m *MockTransport) SetResponse(url, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[url] = body
}

// SetError sets the transport error returned for url
func (m *MockTransport) SetError(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[url] = err
}

// Send implements ports.Transport
func (m *MockTransport) Send(ctx context.Context, req *ports.TransportRequest) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.errors[req.URL]; ok {
		return nil, err
	}
	if body, ok := m.responses[req.URL]; ok {
		return []byte(body), nil
	}
	return nil, fmt.Errorf("mock transport: no response scripted for %s", req.URL)
}

// CallCount returns the number of Send calls made
func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Reset clears scripted responses and captured calls
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = make(map[string]string)
	m.errors = make(map[string]error)
	m.Calls = nil
}
