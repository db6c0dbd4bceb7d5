package slack

// User is a workspace member as returned by users.list.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

// Channel is a public channel as returned by channels.list.
type Channel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsArchived bool   `json:"is_archived"`
	IsMember   bool   `json:"is_member"`
}

// Message is a single transcript entry from a history endpoint.
// History pages are ordered newest-first.
type Message struct {
	Type string `json:"type"`
	User string `json:"user"`
	Text string `json:"text"`
	Ts   string `json:"ts"`
}

// HistoryPage is the result of channels.history or im.history.
type HistoryPage struct {
	Messages []Message `json:"messages"`
	HasMore  bool      `json:"has_more"`
}

// Self identifies the authenticated user, from rtm.start.
type Self struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RTMStartResponse is the subset of rtm.start we consume: the websocket
// URL and our own identity.
type RTMStartResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	URL   string `json:"url"`
	Self  Self   `json:"self"`
}

// Event is a decoded RTM event. The service distinguishes shapes by
// field presence rather than a tagged union: a send acknowledgment
// carries reply_to (echoing the client-assigned id from an outgoing
// message), while a new message carries type == "message". Pointer
// fields preserve presence so the router can tell the shapes apart.
type Event struct {
	Type    string  `json:"type"`
	ReplyTo *uint64 `json:"reply_to"`
	OK      *bool   `json:"ok"`
	Channel string  `json:"channel"`
	User    string  `json:"user"`
	Text    string  `json:"text"`
	Ts      string  `json:"ts"`
}

// IsAck reports whether the event is a send acknowledgment.
func (e *Event) IsAck() bool {
	return e.ReplyTo != nil
}

// IsMessage reports whether the event is a new chat message.
func (e *Event) IsMessage() bool {
	return e.ReplyTo == nil && e.Type == "message"
}

// OutgoingMessage is the payload sent over the RTM socket for a chat
// message. ID is the client-assigned correlation id; the server echoes
// it back as reply_to in its acknowledgment.
type OutgoingMessage struct {
	ID      uint64 `json:"id"`
	Type    string `json:"type"`
	Channel string `json:"channel"`
	Text    string `json:"text"`
}
