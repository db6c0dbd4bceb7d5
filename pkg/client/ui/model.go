package ui

import (
	"log"

	"github.com/Ben-Sheppard/terminal-slack/pkg/client"
	"github.com/Ben-Sheppard/terminal-slack/pkg/slack"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Focus identifies which pane receives keyboard input.
type Focus int

const (
	FocusChannels Focus = iota
	FocusUsers
	FocusInput
)

// scrollPerMessage is how far the chat viewport scrolls after any
// mutation that can change visible height. The exact rendered height
// of wrapped multi-line text is not tracked; scrolling by a generous
// fixed budget per message guarantees the tail stays visible as long
// as no single message renders taller than this. A deliberate
// approximation, not an exact scroll-to-end computation.
const scrollPerMessage = 50

// loadingPlaceholder is shown while a conversation's history is being
// fetched. The history reconciler deletes it before merging.
const loadingPlaceholder = "Getting messages..."

// Model is the application state: the synchronization engine plus the
// terminal widgets rendering it. All mutation happens inside Update,
// one message at a time, so the engine structs need no locking.
type Model struct {
	transport client.Transport
	state     client.StateInterface
	config    client.Config
	logger    *log.Logger

	// Synchronization engine
	session    *client.Session
	roster     *client.Roster
	tracker    *client.OutboundTracker
	transcript *client.Transcript
	router     *client.Router
	reconciler *client.Reconciler

	conversations []slack.Channel

	// UI state
	width         int
	height        int
	chatViewport  viewport.Model
	input         textarea.Model
	spinner       spinner.Model
	focus         Focus
	channelCursor int
	userCursor    int

	connecting      bool
	loadingUsers    bool
	loadingChannels bool

	errorMessage  string
	statusMessage string
}

// NewModel creates the application model.
func NewModel(transport client.Transport, state client.StateInterface, config client.Config, logger *log.Logger) Model {
	session := client.NewSession()
	roster := client.NewRoster()
	tracker := client.NewOutboundTracker()

	input := textarea.New()
	input.Placeholder = "Type a message..."
	input.ShowLineNumbers = false
	input.SetHeight(1)
	input.CharLimit = 4000

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		transport:       transport,
		state:           state,
		config:          config,
		logger:          logger,
		session:         session,
		roster:          roster,
		tracker:         tracker,
		transcript:      client.NewTranscript(),
		router:          client.NewRouter(session, roster, tracker),
		reconciler:      client.NewReconciler(roster),
		input:           input,
		spinner:         sp,
		focus:           FocusChannels,
		connecting:      true,
		loadingUsers:    true,
		loadingChannels: true,
	}
}

// Message types for bubbletea

// ConnectedMsg is sent when the realtime session is established.
type ConnectedMsg struct {
	Self slack.Self
}

// RTMEventMsg wraps an incoming realtime event.
type RTMEventMsg struct {
	Event slack.Event
}

// ErrorMsg represents a transport or fetch error.
type ErrorMsg struct {
	Err error
}

// UsersLoadedMsg is sent when the roster fetch completes.
type UsersLoadedMsg struct {
	Users []slack.User
}

// ChannelsLoadedMsg is sent when the channel list fetch completes.
type ChannelsLoadedMsg struct {
	Channels []slack.Channel
}

// ConversationOpenedMsg is sent when a join/open call returns the
// conversation id. Generation stamps which open sequence it belongs
// to, so completions of a superseded switch are discarded.
type ConversationOpenedMsg struct {
	Generation uint64
	ID         string
}

// HistoryLoadedMsg is sent when a history fetch completes. It is
// stamped with the conversation the fetch was started for; a stale
// page must never reach the transcript.
type HistoryLoadedMsg struct {
	Generation     uint64
	ConversationID string
	Page           *slack.HistoryPage
}

// MarkedMsg is sent after a successful read-marker update.
type MarkedMsg struct {
	ConversationID string
	Ts             string
}

// Init starts the realtime connection and the event pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		connectCmd(m.transport),
		m.spinner.Tick,
	)
}

// listenForEvents waits for one realtime event or error and delivers
// it to Update. Update re-issues the command, so the stream is drained
// one event at a time on the single UI thread.
func listenForEvents(transport client.Transport) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev, ok := <-transport.Events():
			if !ok {
				return nil
			}
			return RTMEventMsg{Event: ev}
		case err, ok := <-transport.Errors():
			if !ok {
				return nil
			}
			return ErrorMsg{Err: err}
		}
	}
}

func connectCmd(transport client.Transport) tea.Cmd {
	return func() tea.Msg {
		self, err := transport.Connect()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConnectedMsg{Self: self}
	}
}

func fetchUsersCmd(transport client.Transport) tea.Cmd {
	return func() tea.Msg {
		users, err := transport.GetUsers()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return UsersLoadedMsg{Users: users}
	}
}

func fetchChannelsCmd(transport client.Transport) tea.Cmd {
	return func() tea.Msg {
		channels, err := transport.GetChannels()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ChannelsLoadedMsg{Channels: channels}
	}
}

func joinChannelCmd(transport client.Transport, generation uint64, name string) tea.Cmd {
	return func() tea.Msg {
		id, err := transport.JoinChannel(name)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConversationOpenedMsg{Generation: generation, ID: id}
	}
}

func openIMCmd(transport client.Transport, generation uint64, userID string) tea.Cmd {
	return func() tea.Msg {
		id, err := transport.OpenIM(userID)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConversationOpenedMsg{Generation: generation, ID: id}
	}
}

func fetchHistoryCmd(transport client.Transport, generation uint64, conversationID string, kind client.ConversationKind) tea.Cmd {
	return func() tea.Msg {
		var page *slack.HistoryPage
		var err error
		if kind == client.ConversationIM {
			page, err = transport.IMHistory(conversationID)
		} else {
			page, err = transport.ChannelHistory(conversationID)
		}
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return HistoryLoadedMsg{Generation: generation, ConversationID: conversationID, Page: page}
	}
}

func markReadCmd(transport client.Transport, conversationID string, kind client.ConversationKind, ts string) tea.Cmd {
	return func() tea.Msg {
		var err error
		if kind == client.ConversationIM {
			err = transport.MarkIM(conversationID, ts)
		} else {
			err = transport.MarkChannel(conversationID, ts)
		}
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return MarkedMsg{ConversationID: conversationID, Ts: ts}
	}
}

func sendMessageCmd(transport client.Transport, localID uint64, conversationID, text string) tea.Cmd {
	return func() tea.Msg {
		if err := transport.SendMessage(localID, conversationID, text); err != nil {
			return ErrorMsg{Err: err}
		}
		return nil
	}
}

// Transcript exposes the transcript for tests.
func (m Model) Transcript() *client.Transcript {
	return m.transcript
}

// Session exposes the session for tests.
func (m Model) Session() *client.Session {
	return m.session
}

// Tracker exposes the outbound tracker for tests.
func (m Model) Tracker() *client.OutboundTracker {
	return m.tracker
}
