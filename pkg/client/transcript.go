package client

import "strings"

// Transcript is the ordered log of rendered lines for the current
// conversation. Positions are plain indexes and are NOT stable across
// structural edits: a prepend shifts every later line. Anything that
// needs to patch a line later (the outbound tracker) must re-locate it
// by its embedded tag at patch time instead of caching an index.
type Transcript struct {
	lines []string
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// AppendBottom adds a line at the end. Used for locally pending sends
// and realtime message events.
func (t *Transcript) AppendBottom(line string) {
	t.lines = append(t.lines, line)
}

// PrependTop adds a line at the start. History pages arrive newest
// first; pushing each line to the top in feed order leaves the final
// visual order chronological top-to-bottom.
func (t *Transcript) PrependTop(line string) {
	t.lines = append([]string{line}, t.lines...)
}

// ReplaceAt swaps the line at index i. Returns false if i is out of
// range.
func (t *Transcript) ReplaceAt(i int, line string) bool {
	if i < 0 || i >= len(t.lines) {
		return false
	}
	t.lines[i] = line
	return true
}

// DeleteTop removes the first line, if any. Used to drop the loading
// placeholder before a history merge.
func (t *Transcript) DeleteTop() {
	if len(t.lines) > 0 {
		t.lines = t.lines[1:]
	}
}

// Reset replaces the whole transcript with the given lines.
func (t *Transcript) Reset(lines ...string) {
	t.lines = append([]string(nil), lines...)
}

// Lines returns the transcript content. The returned slice is shared;
// callers must not mutate it.
func (t *Transcript) Lines() []string {
	return t.lines
}

// Len returns the number of lines.
func (t *Transcript) Len() int {
	return len(t.lines)
}

// Render joins the transcript into a single string for display.
func (t *Transcript) Render() string {
	return strings.Join(t.lines, "\n")
}

// FormatLine renders a message as it appears in the transcript.
func FormatLine(author, text string) string {
	return author + ": " + text
}
