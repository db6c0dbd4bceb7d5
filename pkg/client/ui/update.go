package ui

import (
	"strings"

	"github.com/Ben-Sheppard/terminal-slack/pkg/client"
	"github.com/Ben-Sheppard/terminal-slack/pkg/slack"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth, chatHeight := m.chatPaneSize()
		if m.chatViewport.Width == 0 || m.chatViewport.Height == 0 {
			m.chatViewport = viewport.New(chatWidth, chatHeight)
			m.chatViewport.SetContent(m.buildTranscriptContent())
		} else {
			m.chatViewport.Width = chatWidth
			m.chatViewport.Height = chatHeight
		}
		m.input.SetWidth(chatWidth)
		return m, nil

	case ConnectedMsg:
		return m.handleConnected(msg)

	case RTMEventMsg:
		return m.handleRTMEvent(msg.Event)

	case ErrorMsg:
		m.errorMessage = msg.Err.Error()
		m.logf("Transport error: %v", msg.Err)
		// Keep draining the stream; nothing here is fatal
		return m, listenForEvents(m.transport)

	case UsersLoadedMsg:
		m.loadingUsers = false
		m.roster.SetUsers(msg.Users)
		if m.userCursor >= len(m.roster.Users()) {
			m.userCursor = 0
		}
		return m, nil

	case ChannelsLoadedMsg:
		m.loadingChannels = false
		m.conversations = msg.Channels
		if m.channelCursor >= len(m.conversations) {
			m.channelCursor = 0
		}
		return m, nil

	case ConversationOpenedMsg:
		return m.handleConversationOpened(msg)

	case HistoryLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case MarkedMsg:
		if err := m.state.SetReadTs(msg.ConversationID, msg.Ts); err != nil {
			m.logf("Failed to cache read marker: %v", err)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.connecting || m.loadingUsers || m.loadingChannels || m.session.State() == client.SessionFetchingHistory {
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.focus = (m.focus + 1) % 3
		if m.focus == FocusInput {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
		return m, nil

	case "esc":
		if m.focus == FocusInput {
			m.input.Blur()
			m.focus = FocusChannels
			return m, nil
		}
		return m, tea.Quit
	}

	switch m.focus {
	case FocusChannels:
		return m.handleChannelListKeys(msg)
	case FocusUsers:
		return m.handleUserListKeys(msg)
	case FocusInput:
		return m.handleInputKeys(msg)
	}
	return m, nil
}

func (m Model) handleChannelListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.channelCursor > 0 {
			m.channelCursor--
		}
	case "down", "j":
		if m.channelCursor < len(m.conversations)-1 {
			m.channelCursor++
		}
	case "enter":
		if m.channelCursor < len(m.conversations) {
			ch := m.conversations[m.channelCursor]
			return m.openConversation(ch.Name, client.ConversationChannel)
		}
	}
	return m, nil
}

func (m Model) handleUserListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	users := m.roster.Users()
	switch msg.String() {
	case "up", "k":
		if m.userCursor > 0 {
			m.userCursor--
		}
	case "down", "j":
		if m.userCursor < len(users)-1 {
			m.userCursor++
		}
	case "enter":
		if m.userCursor < len(users) {
			u := users[m.userCursor]
			return m.openConversation(u.Name, client.ConversationIM)
		}
	}
	return m, nil
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		return m.submitMessage()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// openConversation starts a conversation switch: set the title and the
// loading placeholder immediately, then join/open asynchronously. The
// previous conversation id is invalidated right away so realtime
// messages for it stop landing in the transcript.
func (m Model) openConversation(name string, kind client.ConversationKind) (tea.Model, tea.Cmd) {
	generation := m.session.BeginOpen(name, kind)
	m.transcript.Reset(loadingPlaceholder)
	m.refreshTranscript()
	m.errorMessage = ""

	if kind == client.ConversationIM {
		user, ok := m.roster.FindByName(name)
		if !ok {
			m.errorMessage = (&client.ResolutionError{ID: name, Reason: "not in roster"}).Error()
			return m, nil
		}
		return m, openIMCmd(m.transport, generation, user.ID)
	}
	return m, joinChannelCmd(m.transport, generation, name)
}

// submitMessage optimistically echoes the typed message as a pending
// line, records it in the outbound tracker, and fires the send. The
// acknowledgment arrives later as a realtime event carrying the local
// id.
func (m Model) submitMessage() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.session.ID() == "" || m.session.State() != client.SessionReady {
		return m, nil
	}

	line := client.FormatLine(m.roster.Self().Name, text)
	record := m.tracker.Submit(m.session.ID(), line)
	m.transcript.AppendBottom(client.PendingLine(line, record.LocalID))

	m.input.Reset()
	m.input.Focus()
	m.refreshTranscript()
	m.chatViewport.GotoBottom()

	return m, sendMessageCmd(m.transport, record.LocalID, record.ConversationID, text)
}

func (m Model) handleConnected(msg ConnectedMsg) (tea.Model, tea.Cmd) {
	m.connecting = false
	m.roster.SetSelf(msg.Self)
	m.statusMessage = "Connected as " + msg.Self.Name
	m.logf("Connected as %s (%s)", msg.Self.Name, msg.Self.ID)

	return m, tea.Batch(
		fetchUsersCmd(m.transport),
		fetchChannelsCmd(m.transport),
		listenForEvents(m.transport),
	)
}

// handleRTMEvent routes one realtime event through the engine. The
// router decides whether the transcript changed; only then is the
// viewport refreshed and scrolled.
func (m Model) handleRTMEvent(ev slack.Event) (tea.Model, tea.Cmd) {
	changed, err := m.router.Dispatch(m.transcript, ev)
	if err != nil {
		// Author resolution failed; the line was rendered with a
		// placeholder label. Surface the diagnostic and move on.
		m.errorMessage = err.Error()
		m.logf("Resolution error: %v", err)
	}

	var cmds []tea.Cmd
	if changed {
		m.refreshTranscript()
	} else if m.isNotifiable(ev) {
		cmds = append(cmds, notifyCmd(m.roster, ev))
	}

	cmds = append(cmds, listenForEvents(m.transport))
	return m, tea.Batch(cmds...)
}

// isNotifiable reports whether an event should raise a desktop
// notification: a message for a conversation other than the one on
// screen, not sent by the operator.
func (m Model) isNotifiable(ev slack.Event) bool {
	if !m.config.UI.Notifications || !ev.IsMessage() {
		return false
	}
	if ev.User == m.roster.Self().ID {
		return false
	}
	return !m.session.IsCurrent(ev.Channel)
}

func notifyCmd(roster *client.Roster, ev slack.Event) tea.Cmd {
	return func() tea.Msg {
		author, err := roster.ResolveName(ev.User)
		if err != nil {
			author = client.UnknownAuthor
		}
		// Notification failures are not worth bothering the user about
		_ = beeep.Notify("terminal-slack", client.FormatLine(author, ev.Text), "")
		return nil
	}
}

func (m Model) handleConversationOpened(msg ConversationOpenedMsg) (tea.Model, tea.Cmd) {
	// A switch started after this open call supersedes it
	if !m.session.IsCurrentGeneration(msg.Generation) {
		m.logf("Discarding stale open result for %s", msg.ID)
		return m, nil
	}

	m.session.SetCurrent(msg.ID)
	if err := m.state.SetLastConversation(msg.ID); err != nil {
		m.logf("Failed to remember conversation: %v", err)
	}

	return m, fetchHistoryCmd(m.transport, msg.Generation, msg.ID, m.session.Kind())
}

func (m Model) handleHistoryLoaded(msg HistoryLoadedMsg) (tea.Model, tea.Cmd) {
	// A history page for a conversation that is no longer current must
	// not touch the transcript
	if !m.session.IsCurrentGeneration(msg.Generation) || !m.session.IsCurrent(msg.ConversationID) {
		m.logf("Discarding stale history page for %s", msg.ConversationID)
		return m, nil
	}

	m.session.BeginReconcile()
	markTs, errs := m.reconciler.Merge(m.transcript, msg.Page)
	for _, err := range errs {
		m.logf("Resolution error in history: %v", err)
	}
	if len(errs) > 0 {
		m.errorMessage = errs[0].Error()
	}
	m.session.Ready()

	m.input.Reset()
	m.input.Focus()
	m.focus = FocusInput
	m.refreshTranscript()
	m.chatViewport.GotoBottom()

	if markTs == "" {
		return m, nil
	}
	return m, markReadCmd(m.transport, msg.ConversationID, m.session.Kind(), markTs)
}

// refreshTranscript rebuilds the viewport content and scrolls far
// enough that the newest message's tail is visible (see
// scrollPerMessage).
func (m *Model) refreshTranscript() {
	m.chatViewport.SetContent(m.buildTranscriptContent())
	m.chatViewport.LineDown(scrollPerMessage)
}

func (m *Model) logf(format string, args ...interface{}) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
	}
}
