package client

import (
	"github.com/Ben-Sheppard/terminal-slack/pkg/slack"
)

// EventKind classifies a realtime event for dispatch.
type EventKind int

const (
	EventIgnore EventKind = iota
	EventAck
	EventNewMessage
)

// Classify determines what a realtime event is. Acknowledgments are
// recognized by the presence of the reply_to correlation field, new
// messages by their type discriminant. Anything else is ignored,
// keeping the client forward-compatible with event types it does not
// know.
func Classify(ev slack.Event) EventKind {
	switch {
	case ev.IsAck():
		return EventAck
	case ev.IsMessage():
		return EventNewMessage
	default:
		return EventIgnore
	}
}

// Router dispatches realtime events to the outbound tracker or the
// transcript.
type Router struct {
	session *Session
	roster  *Roster
	tracker *OutboundTracker
}

// NewRouter wires a router to the session, roster and tracker it
// consults.
func NewRouter(session *Session, roster *Roster, tracker *OutboundTracker) *Router {
	return &Router{session: session, roster: roster, tracker: tracker}
}

// Dispatch applies one realtime event. It returns whether the
// transcript changed (the caller repaints only then) and a resolution
// error when an author could not be named; the message is still
// rendered with a placeholder author in that case.
//
// Acknowledgments are processed regardless of the current
// conversation: even when the view has moved on, the tracker's
// bookkeeping must be cleared. A correlation miss (unknown or already
// resolved id) is silently ignored. New-message events are dropped
// unless they belong to the current conversation.
func (r *Router) Dispatch(t *Transcript, ev slack.Event) (changed bool, err error) {
	switch Classify(ev) {
	case EventAck:
		ok := ev.OK != nil && *ev.OK
		return r.tracker.Resolve(t, *ev.ReplyTo, ok), nil

	case EventNewMessage:
		if !r.session.IsCurrent(ev.Channel) {
			return false, nil
		}
		author, rerr := r.roster.ResolveName(ev.User)
		if rerr != nil {
			author = UnknownAuthor
		}
		t.AppendBottom(FormatLine(author, ev.Text))
		return true, rerr

	default:
		return false, nil
	}
}
