package client

import (
	"fmt"

	"github.com/Ben-Sheppard/terminal-slack/pkg/slack"
)

// ResolutionError reports a user or channel that could not be resolved
// against the currently loaded roster or conversation list. It is a
// diagnostic, not a fatal condition: callers render a placeholder
// label and keep going.
type ResolutionError struct {
	ID     string
	Reason string
}

func (e *ResolutionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot resolve %q: %s", e.ID, e.Reason)
	}
	return fmt.Sprintf("cannot resolve %q", e.ID)
}

// UnknownAuthor is the placeholder label rendered when author
// resolution fails.
const UnknownAuthor = "unknown"

// Roster holds the known set of users and the local operator's
// identity. The user list is replaced wholesale whenever a fresh list
// arrives, never merged incrementally.
type Roster struct {
	self   slack.Self
	users  []slack.User
	loaded bool
}

// NewRoster returns an empty, unloaded roster.
func NewRoster() *Roster {
	return &Roster{}
}

// SetSelf records the local operator's identity.
func (r *Roster) SetSelf(self slack.Self) {
	r.self = self
}

// Self returns the local operator's identity.
func (r *Roster) Self() slack.Self {
	return r.self
}

// SetUsers replaces the roster. The operator's own entry is kept out
// of the list so the user pane shows only potential conversation
// partners; ResolveName still resolves the operator via self.
func (r *Roster) SetUsers(users []slack.User) {
	filtered := make([]slack.User, 0, len(users))
	for _, u := range users {
		if u.ID != r.self.ID {
			filtered = append(filtered, u)
		}
	}
	r.users = filtered
	r.loaded = true
}

// Users returns the current roster, excluding the operator.
func (r *Roster) Users() []slack.User {
	return r.users
}

// Loaded reports whether a user list has arrived yet.
func (r *Roster) Loaded() bool {
	return r.loaded
}

// ResolveName resolves an author id to a display name. A realtime
// message can arrive before the roster has loaded; that is a
// reportable error, not a silent blank.
func (r *Roster) ResolveName(id string) (string, error) {
	if id == r.self.ID {
		return r.self.Name, nil
	}
	if !r.loaded {
		return "", &ResolutionError{ID: id, Reason: "roster not loaded"}
	}
	for _, u := range r.users {
		if u.ID == id {
			return u.Name, nil
		}
	}
	return "", &ResolutionError{ID: id, Reason: "not in roster"}
}

// FindByName looks a user up by display name, for opening a direct
// message from the user pane.
func (r *Roster) FindByName(name string) (slack.User, bool) {
	for _, u := range r.users {
		if u.Name == name {
			return u, true
		}
	}
	return slack.User{}, false
}
