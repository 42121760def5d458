package testutil

// MockGateway is an in-memory implementation of storage.Gateway with
// failure injection for exercising storage error paths.
type MockGateway struct {
	Values   map[string]string
	GetErr   error
	SetErr   error
	SetCalls int
}

// NewMockGateway creates a new MockGateway
func NewMockGateway() *MockGateway {
	return &MockGateway{Values: make(map[string]string)}
}

// Get returns the stored value for key, or GetErr when injected
func (m *MockGateway) Get(key string) (string, bool, error) {
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	value, ok := m.Values[key]
	return value, ok, nil
}

// Set stores the value under key, or fails with SetErr when injected
func (m *MockGateway) Set(key, value string) error {
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Values[key] = value
	return nil
}
