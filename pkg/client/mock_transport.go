package client

import (
	"sync"

	"github.com/Ben-Sheppard/terminal-slack/pkg/slack"
)

// MockTransport is a test implementation of Transport. Fetch results
// and errors are configured up front; realtime events are injected
// with InjectEvent.
type MockTransport struct {
	mu sync.RWMutex

	// Configured results
	Self        slack.Self
	Users       []slack.User
	Channels    []slack.Channel
	IMChannelID string
	JoinedID    string
	History     map[string]*slack.HistoryPage

	// Configured errors
	ConnectErr  error
	UsersErr    error
	ChannelsErr error
	OpenIMErr   error
	JoinErr     error
	HistoryErr  error
	SendErr     error
	MarkErr     error

	// Recorded calls for verification
	Sent        []MockSentMessage
	MarkedTs    map[string]string
	JoinedNames []string
	OpenedIMs   []string

	events chan slack.Event
	errs   chan error
	closed bool
}

// MockSentMessage records a SendMessage call.
type MockSentMessage struct {
	LocalID        uint64
	ConversationID string
	Text           string
}

// NewMockTransport creates a mock transport with empty results.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		History:  make(map[string]*slack.HistoryPage),
		MarkedTs: make(map[string]string),
		events:   make(chan slack.Event, 100),
		errs:     make(chan error, 10),
	}
}

// InjectEvent feeds a realtime event to the consumer.
func (m *MockTransport) InjectEvent(ev slack.Event) {
	m.events <- ev
}

// InjectError feeds a transport error to the consumer.
func (m *MockTransport) InjectError(err error) {
	m.errs <- err
}

func (m *MockTransport) Connect() (slack.Self, error) {
	if m.ConnectErr != nil {
		return slack.Self{}, m.ConnectErr
	}
	return m.Self, nil
}

func (m *MockTransport) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
		close(m.errs)
	}
}

func (m *MockTransport) Events() <-chan slack.Event {
	return m.events
}

func (m *MockTransport) Errors() <-chan error {
	return m.errs
}

func (m *MockTransport) SendMessage(localID uint64, conversationID, text string) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, MockSentMessage{
		LocalID:        localID,
		ConversationID: conversationID,
		Text:           text,
	})
	return nil
}

func (m *MockTransport) GetUsers() ([]slack.User, error) {
	if m.UsersErr != nil {
		return nil, m.UsersErr
	}
	return m.Users, nil
}

func (m *MockTransport) GetChannels() ([]slack.Channel, error) {
	if m.ChannelsErr != nil {
		return nil, m.ChannelsErr
	}
	return m.Channels, nil
}

func (m *MockTransport) OpenIM(userID string) (string, error) {
	if m.OpenIMErr != nil {
		return "", m.OpenIMErr
	}
	m.mu.Lock()
	m.OpenedIMs = append(m.OpenedIMs, userID)
	m.mu.Unlock()
	return m.IMChannelID, nil
}

func (m *MockTransport) JoinChannel(name string) (string, error) {
	if m.JoinErr != nil {
		return "", m.JoinErr
	}
	m.mu.Lock()
	m.JoinedNames = append(m.JoinedNames, name)
	m.mu.Unlock()
	return m.JoinedID, nil
}

func (m *MockTransport) ChannelHistory(conversationID string) (*slack.HistoryPage, error) {
	return m.historyFor(conversationID)
}

func (m *MockTransport) IMHistory(conversationID string) (*slack.HistoryPage, error) {
	return m.historyFor(conversationID)
}

func (m *MockTransport) historyFor(conversationID string) (*slack.HistoryPage, error) {
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	if page, ok := m.History[conversationID]; ok {
		return page, nil
	}
	return &slack.HistoryPage{}, nil
}

func (m *MockTransport) MarkChannel(conversationID, ts string) error {
	return m.mark(conversationID, ts)
}

func (m *MockTransport) MarkIM(conversationID, ts string) error {
	return m.mark(conversationID, ts)
}

func (m *MockTransport) mark(conversationID, ts string) error {
	if m.MarkErr != nil {
		return m.MarkErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MarkedTs[conversationID] = ts
	return nil
}
