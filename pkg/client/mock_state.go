package client

import (
	"sync"
)

// MockState is an in-memory test implementation of StateInterface.
type MockState struct {
	mu sync.RWMutex

	config    map[string]string
	readState map[string]string
	dir       string

	// Error injection
	getConfigErr error
	setConfigErr error
	getReadErr   error
	setReadErr   error
}

// NewMockState creates a new mock state.
func NewMockState() *MockState {
	return &MockState{
		config:    make(map[string]string),
		readState: make(map[string]string),
		dir:       "/tmp/mock-state",
	}
}

// GetConfig retrieves a configuration value.
func (s *MockState) GetConfig(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.getConfigErr != nil {
		return "", s.getConfigErr
	}
	return s.config[key], nil
}

// SetConfig stores a configuration value.
func (s *MockState) SetConfig(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setConfigErr != nil {
		return s.setConfigErr
	}
	s.config[key] = value
	return nil
}

// GetLastConversation returns the remembered conversation id.
func (s *MockState) GetLastConversation() string {
	id, _ := s.GetConfig("last_conversation")
	return id
}

// SetLastConversation remembers a conversation id.
func (s *MockState) SetLastConversation(conversationID string) error {
	return s.SetConfig("last_conversation", conversationID)
}

// GetReadTs returns the cached read marker for a conversation.
func (s *MockState) GetReadTs(conversationID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.getReadErr != nil {
		return "", s.getReadErr
	}
	return s.readState[conversationID], nil
}

// SetReadTs caches a read marker.
func (s *MockState) SetReadTs(conversationID, ts string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setReadErr != nil {
		return s.setReadErr
	}
	s.readState[conversationID] = ts
	return nil
}

// GetFirstRun checks if this is the first time running the client.
func (s *MockState) GetFirstRun() bool {
	val, _ := s.GetConfig("first_run_complete")
	return val != "true"
}

// SetFirstRunComplete marks first run as complete.
func (s *MockState) SetFirstRunComplete() error {
	return s.SetConfig("first_run_complete", "true")
}

// SetFirstRun sets the first run state (test helper).
func (s *MockState) SetFirstRun(firstRun bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if firstRun {
		delete(s.config, "first_run_complete")
	} else {
		s.config["first_run_complete"] = "true"
	}
}

// GetStateDir returns the directory where state is stored.
func (s *MockState) GetStateDir() string {
	return s.dir
}

// Close closes the mock state (no-op for in-memory).
func (s *MockState) Close() error {
	return nil
}

// SetGetReadTsError sets an error to return from GetReadTs().
func (s *MockState) SetGetReadTsError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getReadErr = err
}

// SetSetReadTsError sets an error to return from SetReadTs().
func (s *MockState) SetSetReadTsError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setReadErr = err
}

// Verify that MockState implements StateInterface
var _ StateInterface = (*MockState)(nil)
