package ui

import (
	"io"
	"log"
	"testing"

	"github.com/Ben-Sheppard/terminal-slack/pkg/client"
	"github.com/Ben-Sheppard/terminal-slack/pkg/slack"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// NewTestModel creates a Model with mock dependencies for testing
func NewTestModel() Model {
	transport := client.NewMockTransport()
	transport.Self = slack.Self{ID: "U0", Name: "ben"}
	transport.Users = []slack.User{
		{ID: "U1", Name: "alice"},
		{ID: "U2", Name: "bob"},
	}
	transport.Channels = []slack.Channel{
		{ID: "C1", Name: "general"},
		{ID: "C2", Name: "random"},
	}
	transport.JoinedID = "C1"
	transport.IMChannelID = "D1"

	state := client.NewMockState()
	logger := log.New(io.Discard, "", 0) // Discard logs in tests

	return NewModel(transport, state, client.DefaultConfig(), logger)
}

// SetupTestModelWithDimensions creates a test model with window dimensions set
func SetupTestModelWithDimensions(width, height int) Model {
	m := NewTestModel()
	m.width = width
	m.height = height

	chatWidth, chatHeight := m.chatPaneSize()
	m.chatViewport = viewport.New(chatWidth, chatHeight)
	m.input.SetWidth(chatWidth)

	return m
}

// ConnectTestModel runs the connect and fetch completions so the model
// has an identity, a roster and a channel list.
func ConnectTestModel(m Model) Model {
	transport := GetMockTransport(m)

	updated, _ := m.Update(ConnectedMsg{Self: transport.Self})
	m = updated.(Model)
	updated, _ = m.Update(UsersLoadedMsg{Users: transport.Users})
	m = updated.(Model)
	updated, _ = m.Update(ChannelsLoadedMsg{Channels: transport.Channels})
	return updated.(Model)
}

// OpenTestConversation drives a full conversation switch to the given
// channel: begin the open, deliver the open result, deliver history.
func OpenTestConversation(t *testing.T, m Model, id string, page *slack.HistoryPage) Model {
	t.Helper()

	updated, cmd := m.openConversation("general", client.ConversationChannel)
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("openConversation() returned nil cmd")
	}

	gen := m.Session().Generation()
	updated, cmd = m.Update(ConversationOpenedMsg{Generation: gen, ID: id})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("ConversationOpenedMsg produced no history fetch")
	}

	if page == nil {
		page = &slack.HistoryPage{}
	}
	updated, _ = m.Update(HistoryLoadedMsg{Generation: gen, ConversationID: id, Page: page})
	return updated.(Model)
}

// RunCmd executes a tea command and returns its message, following one
// level of batching.
func RunCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			if c == nil {
				continue
			}
			if inner := c(); inner != nil {
				msgs = append(msgs, inner)
			}
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// GetMockTransport extracts the mock transport from a model (for assertions)
func GetMockTransport(m Model) *client.MockTransport {
	if mock, ok := m.transport.(*client.MockTransport); ok {
		return mock
	}
	return nil
}

// GetMockState extracts the mock state from a model (for assertions)
func GetMockState(m Model) *client.MockState {
	if mock, ok := m.state.(*client.MockState); ok {
		return mock
	}
	return nil
}
