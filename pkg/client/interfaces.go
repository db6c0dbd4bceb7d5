package client

import (
	"github.com/Ben-Sheppard/terminal-slack/pkg/slack"
)

// Transport defines the messaging-service surface the engine consumes.
// The real implementation talks to the Slack Web API and RTM stream;
// tests substitute MockTransport.
//
// Each fetch is a single-shot asynchronous call with an error-or-result
// outcome; the engine attempts no retries. Events() yields the
// realtime stream: an infinite, non-restartable sequence whose
// ordering relative to our own sends is unspecified.
type Transport interface {
	// Connection management
	Connect() (slack.Self, error)
	Close()

	// Realtime stream
	Events() <-chan slack.Event
	Errors() <-chan error

	// SendMessage is fire-and-forget. localID is echoed back by the
	// server in the acknowledgment's reply_to field.
	SendMessage(localID uint64, conversationID, text string) error

	// Roster and conversation fetches
	GetUsers() ([]slack.User, error)
	GetChannels() ([]slack.Channel, error)
	OpenIM(userID string) (string, error)
	JoinChannel(name string) (string, error)

	// History and read markers
	ChannelHistory(conversationID string) (*slack.HistoryPage, error)
	IMHistory(conversationID string) (*slack.HistoryPage, error)
	MarkChannel(conversationID, ts string) error
	MarkIM(conversationID, ts string) error
}

// StateInterface defines the interface for client state persistence.
// This allows for mocking in tests while the real State implements all
// these methods.
type StateInterface interface {
	GetConfig(key string) (string, error)
	SetConfig(key, value string) error

	GetLastConversation() string
	SetLastConversation(conversationID string) error

	GetReadTs(conversationID string) (string, error)
	SetReadTs(conversationID, ts string) error

	GetFirstRun() bool
	SetFirstRunComplete() error

	GetStateDir() string
	Close() error
}
