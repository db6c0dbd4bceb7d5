package ui

import (
	"io"
	"log"
	"testing"

	"github.com/Ben-Sheppard/terminal-slack/pkg/client"
	"github.com/Ben-Sheppard/terminal-slack/pkg/slack"
)

func TestNewModel(t *testing.T) {
	transport := client.NewMockTransport()
	state := client.NewMockState()
	logger := log.New(io.Discard, "", 0)

	m := NewModel(transport, state, client.DefaultConfig(), logger)

	if m.transport == nil {
		t.Error("NewModel() transport is nil")
	}
	if m.state == nil {
		t.Error("NewModel() state is nil")
	}
	if m.Transcript() == nil {
		t.Error("NewModel() transcript is nil")
	}
	if !m.connecting {
		t.Error("NewModel() connecting = false, want true")
	}
	if m.focus != FocusChannels {
		t.Errorf("NewModel() focus = %v, want FocusChannels", m.focus)
	}
	if m.Session().State() != client.SessionIdle {
		t.Errorf("NewModel() session state = %v, want SessionIdle", m.Session().State())
	}
}

func TestConnectedLoadsRosterAndChannels(t *testing.T) {
	m := SetupTestModelWithDimensions(120, 40)

	updated, cmd := m.Update(ConnectedMsg{Self: slack.Self{ID: "U0", Name: "ben"}})
	m = updated.(Model)

	if m.connecting {
		t.Error("connecting = true after ConnectedMsg")
	}
	if got := m.roster.Self().Name; got != "ben" {
		t.Errorf("Self().Name = %q, want %q", got, "ben")
	}
	if m.statusMessage == "" {
		t.Error("ConnectedMsg did not set status message")
	}
	if cmd == nil {
		t.Error("ConnectedMsg returned nil cmd, want fetches + event pump")
	}
}

func TestUsersLoadedExcludesSelf(t *testing.T) {
	m := ConnectTestModel(SetupTestModelWithDimensions(120, 40))

	users := m.roster.Users()
	if len(users) != 2 {
		t.Fatalf("Users() = %d entries, want 2", len(users))
	}
	for _, u := range users {
		if u.ID == "U0" {
			t.Error("roster list contains self")
		}
	}
}

func TestChannelsLoaded(t *testing.T) {
	m := ConnectTestModel(SetupTestModelWithDimensions(120, 40))

	if len(m.conversations) != 2 {
		t.Fatalf("conversations = %d, want 2", len(m.conversations))
	}
	if m.conversations[0].Name != "general" {
		t.Errorf("conversations[0].Name = %q, want %q", m.conversations[0].Name, "general")
	}
	if m.loadingChannels || m.loadingUsers {
		t.Error("loading flags still set after fetch completions")
	}
}

func TestViewRendersWithoutDimensions(t *testing.T) {
	m := NewTestModel()
	if got := m.View(); got == "" {
		t.Error("View() = empty before first WindowSizeMsg")
	}
}

func TestViewRendersTranscript(t *testing.T) {
	m := ConnectTestModel(SetupTestModelWithDimensions(120, 40))
	m = OpenTestConversation(t, m, "C1", &slack.HistoryPage{
		Messages: []slack.Message{
			{Type: "message", User: "U1", Text: "hi", Ts: "1"},
		},
	})

	out := m.View()
	if out == "" {
		t.Fatal("View() = empty")
	}
}
