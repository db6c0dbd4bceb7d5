package client

import (
	"fmt"
	"strconv"
	"strings"
)

// OutboundState is the lifecycle of a locally sent message.
type OutboundState int

const (
	StatePending OutboundState = iota
	StateConfirmed
	StateFailed
)

// OutboundMessage records a message the operator has sent that may not
// have been acknowledged by the server yet.
type OutboundMessage struct {
	LocalID        uint64
	Line           string // rendered line without the pending tag, e.g. "ben: hello"
	ConversationID string // conversation that was current when the send started
	State          OutboundState
}

// The pending tag is in-band: a remote message whose text happens to
// end with a well-formed tag cannot be told apart from a locally
// pending line, so an acknowledgment for that id can patch it.
const (
	pendingTagPrefix  = " (pending - "
	pendingTagSuffix  = ")"
	failureAnnotation = " (FAILED)"
)

// PendingLine renders a line with its pending tag. The tag embeds the
// local id in textually recoverable form so the acknowledgment handler
// can find the line again by scanning, surviving any prepends that
// shifted its position in the meantime.
func PendingLine(line string, localID uint64) string {
	return fmt.Sprintf("%s%s%d%s", line, pendingTagPrefix, localID, pendingTagSuffix)
}

// parsePendingTag extracts the base line and local id from a tagged
// line. ok is false if the line carries no well-formed tag.
func parsePendingTag(line string) (base string, localID uint64, ok bool) {
	i := strings.LastIndex(line, pendingTagPrefix)
	if i < 0 || !strings.HasSuffix(line, pendingTagSuffix) {
		return "", 0, false
	}
	digits := line[i+len(pendingTagPrefix) : len(line)-len(pendingTagSuffix)]
	id, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return line[:i], id, true
}

// OutboundTracker assigns local ids to sent messages and correlates
// them with server acknowledgments. Ids are monotonic from 1 and
// unique for the process lifetime; there is no wraparound handling and
// no persistence across restarts.
type OutboundTracker struct {
	nextID  uint64
	pending map[uint64]*OutboundMessage
}

// NewOutboundTracker returns an empty tracker.
func NewOutboundTracker() *OutboundTracker {
	return &OutboundTracker{pending: make(map[uint64]*OutboundMessage)}
}

// Submit allocates the next local id and records the send as pending.
// line is the rendered transcript line without the pending tag;
// conversationID stamps the conversation that is current at send time.
func (ot *OutboundTracker) Submit(conversationID, line string) *OutboundMessage {
	ot.nextID++
	msg := &OutboundMessage{
		LocalID:        ot.nextID,
		Line:           line,
		ConversationID: conversationID,
		State:          StatePending,
	}
	ot.pending[msg.LocalID] = msg
	return msg
}

// Pending returns the unresolved record for a local id, if any.
func (ot *OutboundTracker) Pending(localID uint64) (*OutboundMessage, bool) {
	msg, ok := ot.pending[localID]
	return msg, ok
}

// PendingCount returns the number of unresolved sends.
func (ot *OutboundTracker) PendingCount() int {
	return len(ot.pending)
}

// Resolve correlates an acknowledgment with its pending send. The
// transcript line is located by scanning from the most recent line
// backward for the embedded tag: recent sends sit near the end, and a
// cached position could have been shifted by history prepends since
// the send. If found, the line is replaced in place with its final
// form. Returns whether the transcript changed.
//
// Resolution is at-most-once: after a successful patch the tag no
// longer appears, so a duplicate acknowledgment finds nothing and is a
// no-op. Bookkeeping is cleared even when the line is gone (the view
// may have moved to another conversation) so resolved records never
// leak.
func (ot *OutboundTracker) Resolve(t *Transcript, localID uint64, ok bool) bool {
	if msg, found := ot.pending[localID]; found {
		if ok {
			msg.State = StateConfirmed
		} else {
			msg.State = StateFailed
		}
		delete(ot.pending, localID)
	}

	lines := t.Lines()
	for i := len(lines) - 1; i >= 0; i-- {
		base, id, tagged := parsePendingTag(lines[i])
		if !tagged || id != localID {
			continue
		}
		if ok {
			t.ReplaceAt(i, base)
		} else {
			t.ReplaceAt(i, base+failureAnnotation)
		}
		return true
	}
	return false
}
