package client

import (
	"testing"

	"github.com/Ben-Sheppard/terminal-slack/pkg/slack"
)

func uint64p(v uint64) *uint64 { return &v }
func boolp(v bool) *bool       { return &v }

func newTestRouter() (*Router, *Session, *Roster, *OutboundTracker) {
	session := NewSession()
	roster := NewRoster()
	roster.SetSelf(slack.Self{ID: "U0", Name: "ben"})
	roster.SetUsers([]slack.User{{ID: "U1", Name: "alice"}})
	tracker := NewOutboundTracker()
	return NewRouter(session, roster, tracker), session, roster, tracker
}

func openConversation(s *Session, id string) {
	s.BeginOpen("general", ConversationChannel)
	s.SetCurrent(id)
	s.Ready()
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		ev   slack.Event
		want EventKind
	}{
		{"ack", slack.Event{ReplyTo: uint64p(1), OK: boolp(true)}, EventAck},
		{"message", slack.Event{Type: "message", Channel: "C1"}, EventNewMessage},
		{"presence", slack.Event{Type: "presence_change"}, EventIgnore},
		{"empty", slack.Event{}, EventIgnore},
		// reply_to wins over type: an ack echoes our own send
		{"ack with type", slack.Event{Type: "message", ReplyTo: uint64p(2)}, EventAck},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.ev); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDispatchAckResolvesPending(t *testing.T) {
	router, session, _, tracker := newTestRouter()
	openConversation(session, "C1")

	tr := NewTranscript()
	msg := tracker.Submit("C1", "ben: hello")
	tr.AppendBottom(PendingLine(msg.Line, msg.LocalID))

	changed, err := router.Dispatch(tr, slack.Event{ReplyTo: uint64p(msg.LocalID), OK: boolp(true)})
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if !changed {
		t.Fatal("Dispatch() changed = false, want true")
	}
	if got := tr.Lines()[0]; got != "ben: hello" {
		t.Errorf("line = %q, want %q", got, "ben: hello")
	}
}

func TestDispatchAckForUnknownIDIsSilent(t *testing.T) {
	router, session, _, _ := newTestRouter()
	openConversation(session, "C1")

	tr := NewTranscript()
	tr.AppendBottom("alice: hi")

	changed, err := router.Dispatch(tr, slack.Event{ReplyTo: uint64p(7), OK: boolp(true)})
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if changed {
		t.Error("Dispatch() changed = true for unknown ack")
	}
}

func TestDispatchAckProcessedAfterConversationSwitch(t *testing.T) {
	router, session, _, tracker := newTestRouter()
	openConversation(session, "C1")

	tr := NewTranscript()
	msg := tracker.Submit("C1", "ben: hello")
	tr.AppendBottom(PendingLine(msg.Line, msg.LocalID))

	// Operator switches conversations before the ack lands
	openConversation(session, "C2")
	tr.Reset()

	changed, err := router.Dispatch(tr, slack.Event{ReplyTo: uint64p(msg.LocalID), OK: boolp(true)})
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if changed {
		t.Error("Dispatch() changed = true, transcript for C2 must be untouched")
	}
	if tracker.PendingCount() != 0 {
		t.Errorf("PendingCount() = %d, want 0 (bookkeeping must still clear)", tracker.PendingCount())
	}
}

func TestDispatchNewMessageAppends(t *testing.T) {
	router, session, _, _ := newTestRouter()
	openConversation(session, "C1")

	tr := NewTranscript()
	changed, err := router.Dispatch(tr, slack.Event{
		Type: "message", Channel: "C1", User: "U1", Text: "hi there",
	})
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if !changed {
		t.Fatal("Dispatch() changed = false, want true")
	}
	if got := tr.Lines()[0]; got != "alice: hi there" {
		t.Errorf("line = %q, want %q", got, "alice: hi there")
	}
}

func TestDispatchNewMessageFromSelf(t *testing.T) {
	router, session, _, _ := newTestRouter()
	openConversation(session, "C1")

	tr := NewTranscript()
	changed, _ := router.Dispatch(tr, slack.Event{
		Type: "message", Channel: "C1", User: "U0", Text: "from elsewhere",
	})
	if !changed {
		t.Fatal("Dispatch() changed = false, want true")
	}
	if got := tr.Lines()[0]; got != "ben: from elsewhere" {
		t.Errorf("line = %q, want %q", got, "ben: from elsewhere")
	}
}

func TestDispatchDropsOtherConversations(t *testing.T) {
	router, session, _, _ := newTestRouter()
	openConversation(session, "C1")

	tr := NewTranscript()
	tr.AppendBottom("alice: existing")

	changed, err := router.Dispatch(tr, slack.Event{
		Type: "message", Channel: "C2", User: "U1", Text: "elsewhere",
	})
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if changed {
		t.Error("Dispatch() changed = true for non-current conversation")
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tr.Len())
	}
}

func TestDispatchUnresolvedAuthorRendersPlaceholder(t *testing.T) {
	router, session, _, _ := newTestRouter()
	openConversation(session, "C1")

	tr := NewTranscript()
	changed, err := router.Dispatch(tr, slack.Event{
		Type: "message", Channel: "C1", User: "U9", Text: "who am I",
	})
	if err == nil {
		t.Error("Dispatch() error = nil, want ResolutionError")
	}
	if !changed {
		t.Fatal("Dispatch() changed = false, message must still render")
	}
	if got := tr.Lines()[0]; got != "unknown: who am I" {
		t.Errorf("line = %q, want %q", got, "unknown: who am I")
	}
}

func TestDispatchIgnoresUnknownEventTypes(t *testing.T) {
	router, session, _, _ := newTestRouter()
	openConversation(session, "C1")

	tr := NewTranscript()
	changed, err := router.Dispatch(tr, slack.Event{Type: "user_typing", Channel: "C1"})
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if changed {
		t.Error("Dispatch() changed = true for unknown event type")
	}
}
