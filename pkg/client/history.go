package client

import (
	"github.com/Ben-Sheppard/terminal-slack/pkg/slack"
)

// Reconciler merges bulk history pages into the transcript when a
// conversation is opened.
type Reconciler struct {
	roster *Roster
}

// NewReconciler returns a reconciler resolving authors against roster.
func NewReconciler(roster *Roster) *Reconciler {
	return &Reconciler{roster: roster}
}

// Merge folds a newest-first history page into the transcript. The
// loading placeholder is removed first, then each message-type entry
// is pushed to the top in feed order, which leaves the merged segment
// in chronological order top to bottom.
//
// markTs is the timestamp of the most recent entry, to be used for the
// read-marker update; it is empty when the page carried no entries.
// Authors that cannot be resolved are rendered with a placeholder
// label and reported in errs rather than dropped.
func (r *Reconciler) Merge(t *Transcript, page *slack.HistoryPage) (markTs string, errs []error) {
	t.DeleteTop()

	for _, msg := range page.Messages {
		if msg.Type != "message" {
			continue
		}
		author, err := r.roster.ResolveName(msg.User)
		if err != nil {
			author = UnknownAuthor
			errs = append(errs, err)
		}
		t.PrependTop(FormatLine(author, msg.Text))
	}

	if len(page.Messages) > 0 {
		markTs = page.Messages[0].Ts
	}
	return markTs, errs
}
