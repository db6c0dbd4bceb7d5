package client

import (
	"fmt"
	"log"

	"github.com/Ben-Sheppard/terminal-slack/pkg/slack"
)

// SlackTransport is the production Transport: Web API calls for the
// request/response surface and an RTM websocket for the realtime
// stream.
type SlackTransport struct {
	api    *slack.Client
	rtm    *slack.RTM
	logger *log.Logger
}

// NewSlackTransport creates a transport using the given Web API
// client. The realtime connection is established by Connect.
func NewSlackTransport(api *slack.Client, logger *log.Logger) *SlackTransport {
	return &SlackTransport{api: api, logger: logger}
}

// Connect starts a realtime session and dials its websocket. Returns
// the local operator's identity.
func (t *SlackTransport) Connect() (slack.Self, error) {
	start, err := t.api.RTMStart()
	if err != nil {
		return slack.Self{}, err
	}

	rtm := slack.NewRTM(start.URL)
	rtm.SetLogger(t.logger)
	if err := rtm.Connect(); err != nil {
		return slack.Self{}, err
	}
	t.rtm = rtm
	return start.Self, nil
}

// Close shuts down the realtime connection.
func (t *SlackTransport) Close() {
	if t.rtm != nil {
		t.rtm.Close()
	}
}

// Events returns the realtime event stream. Before a successful
// Connect there is no stream; the returned nil channel never fires, so
// a pump selecting on it simply stays parked.
func (t *SlackTransport) Events() <-chan slack.Event {
	if t.rtm == nil {
		return nil
	}
	return t.rtm.Events()
}

// Errors returns the realtime error stream, or a never-firing nil
// channel before Connect succeeds.
func (t *SlackTransport) Errors() <-chan error {
	if t.rtm == nil {
		return nil
	}
	return t.rtm.Errors()
}

// SendMessage queues a chat message on the realtime socket. The server
// echoes localID in its acknowledgment's reply_to field.
func (t *SlackTransport) SendMessage(localID uint64, conversationID, text string) error {
	if t.rtm == nil {
		return fmt.Errorf("not connected")
	}
	return t.rtm.Send(slack.OutgoingMessage{
		ID:      localID,
		Type:    "message",
		Channel: conversationID,
		Text:    text,
	})
}

// GetUsers fetches the workspace roster.
func (t *SlackTransport) GetUsers() ([]slack.User, error) {
	return t.api.GetUsers()
}

// GetChannels fetches the channel list.
func (t *SlackTransport) GetChannels() ([]slack.Channel, error) {
	return t.api.GetChannels()
}

// OpenIM opens a direct-message conversation.
func (t *SlackTransport) OpenIM(userID string) (string, error) {
	return t.api.OpenIM(userID)
}

// JoinChannel joins a channel by name.
func (t *SlackTransport) JoinChannel(name string) (string, error) {
	return t.api.JoinChannel(name)
}

// ChannelHistory fetches a channel's history page.
func (t *SlackTransport) ChannelHistory(conversationID string) (*slack.HistoryPage, error) {
	return t.api.ChannelHistory(conversationID)
}

// IMHistory fetches a direct-message conversation's history page.
func (t *SlackTransport) IMHistory(conversationID string) (*slack.HistoryPage, error) {
	return t.api.IMHistory(conversationID)
}

// MarkChannel updates a channel's read marker.
func (t *SlackTransport) MarkChannel(conversationID, ts string) error {
	return t.api.MarkChannel(conversationID, ts)
}

// MarkIM updates a direct-message conversation's read marker.
func (t *SlackTransport) MarkIM(conversationID, ts string) error {
	return t.api.MarkIM(conversationID, ts)
}
