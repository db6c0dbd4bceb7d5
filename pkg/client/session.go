package client

// SessionState tracks a conversation switch.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionFetchingHistory
	SessionReconciling
	SessionReady
)

// ConversationKind distinguishes channels from direct messages; the
// two use different history and read-marker endpoints.
type ConversationKind int

const (
	ConversationChannel ConversationKind = iota
	ConversationIM
)

// Session is the top-level conversation state: which conversation is
// current and where we are in opening it. Exactly one conversation is
// current at a time; switching invalidates the rendering relevance of
// prior realtime events and in-flight fetches, which are filtered at
// completion time against the current id (there is no explicit
// cancellation).
type Session struct {
	state SessionState
	id    string
	kind  ConversationKind
	title string

	// generation increments on every BeginOpen so completions from a
	// superseded open sequence can be discarded even before the new
	// conversation id is known.
	generation uint64
}

// NewSession returns an idle session with no current conversation.
func NewSession() *Session {
	return &Session{}
}

// BeginOpen starts a conversation switch. The conversation id is not
// known yet (joining/opening is itself asynchronous), so the previous
// id is cleared immediately: realtime messages for the old
// conversation must not land in the new transcript.
func (s *Session) BeginOpen(title string, kind ConversationKind) uint64 {
	s.state = SessionFetchingHistory
	s.id = ""
	s.kind = kind
	s.title = title
	s.generation++
	return s.generation
}

// SetCurrent records the conversation id once the join/open call
// returns.
func (s *Session) SetCurrent(id string) {
	s.id = id
}

// BeginReconcile marks the history page as received and being merged.
func (s *Session) BeginReconcile() {
	s.state = SessionReconciling
}

// Ready marks the conversation fully open.
func (s *Session) Ready() {
	s.state = SessionReady
}

// State returns the current open-sequence state.
func (s *Session) State() SessionState {
	return s.state
}

// ID returns the current conversation id, or "" if none.
func (s *Session) ID() string {
	return s.id
}

// Kind returns the current conversation kind.
func (s *Session) Kind() ConversationKind {
	return s.kind
}

// Title returns the display title of the current conversation.
func (s *Session) Title() string {
	return s.title
}

// Generation returns the current open-sequence generation.
func (s *Session) Generation() uint64 {
	return s.generation
}

// IsCurrent reports whether id names the current conversation.
func (s *Session) IsCurrent(id string) bool {
	return s.id != "" && s.id == id
}

// IsCurrentGeneration reports whether a completion stamped with gen
// still belongs to the active open sequence.
func (s *Session) IsCurrentGeneration(gen uint64) bool {
	return gen == s.generation
}
