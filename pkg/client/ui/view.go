package ui

import (
	"strings"

	"github.com/76creates/stickers/flexbox"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current view.
func (m Model) View() string {
	// Don't render until we have dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	layout := flexbox.NewHorizontal(m.width, m.height-2)

	sidebarWidth := m.sidebarWidth()
	paneHeight := (m.height - 2) / 2

	channelStyle := SidebarPaneStyle
	if m.focus == FocusChannels {
		channelStyle = SidebarFocusedStyle
	}
	userStyle := SidebarPaneStyle
	if m.focus == FocusUsers {
		userStyle = SidebarFocusedStyle
	}

	sidebarCol := layout.NewColumn().AddCells(
		flexbox.NewCell(1, 1).
			SetStyle(channelStyle.Width(sidebarWidth).Height(paneHeight-2)).
			SetContent(m.buildChannelPane()),
		flexbox.NewCell(1, 1).
			SetStyle(userStyle.Width(sidebarWidth).Height(paneHeight-2)).
			SetContent(m.buildUserPane()),
	)

	mainCol := layout.NewColumn().AddCells(
		flexbox.NewCell(3, 1).
			SetStyle(ChatPaneStyle).
			SetContent(m.buildMainPane()),
	)

	layout.AddColumns([]*flexbox.Column{sidebarCol, mainCol})

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		layout.Render(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.session.Title()
	if title == "" {
		title = "terminal-slack"
	}
	return HeaderStyle.Render(title)
}

func (m Model) renderFooter() string {
	if m.errorMessage != "" {
		return ErrorTextStyle.Render("Error: " + m.errorMessage)
	}
	if m.statusMessage != "" {
		return StatusTextStyle.Render(m.statusMessage)
	}
	return MutedTextStyle.Render("[Tab] switch focus  [Enter] open/send  [Esc] quit")
}

func (m Model) buildChannelPane() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Channels"))
	b.WriteString("\n")

	if m.connecting {
		b.WriteString(MutedTextStyle.Render(m.spinner.View() + " Connecting to Slack..."))
		return b.String()
	}
	if m.loadingChannels {
		b.WriteString(MutedTextStyle.Render(m.spinner.View() + " Loading channels..."))
		return b.String()
	}

	for i, ch := range m.conversations {
		line := "  " + ch.Name
		if i == m.channelCursor && m.focus == FocusChannels {
			line = SelectedItemStyle.Render("> " + ch.Name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) buildUserPane() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Users"))
	b.WriteString("\n")

	if m.loadingUsers {
		b.WriteString(MutedTextStyle.Render(m.spinner.View() + " Loading users..."))
		return b.String()
	}

	for i, u := range m.roster.Users() {
		line := "  " + u.Name
		if i == m.userCursor && m.focus == FocusUsers {
			line = SelectedItemStyle.Render("> " + u.Name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) buildMainPane() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.chatViewport.View(),
		m.input.View(),
	)
}

// buildTranscriptContent renders the transcript lines for the
// viewport. Lines are stored unstyled in the transcript (pending-tag
// scanning depends on plain text); the author prefix is emboldened
// here at render time.
func (m Model) buildTranscriptContent() string {
	lines := m.transcript.Lines()
	if len(lines) == 0 {
		return MutedTextStyle.Render("  (no conversation selected)")
	}

	styled := make([]string, 0, len(lines))
	for _, line := range lines {
		styled = append(styled, styleTranscriptLine(line))
	}
	return strings.Join(styled, "\n")
}

func styleTranscriptLine(line string) string {
	if line == loadingPlaceholder {
		return MutedTextStyle.Render(line)
	}
	i := strings.Index(line, ": ")
	if i < 0 {
		return line
	}
	author := AuthorStyle.Render(line[:i])
	rest := line[i:]

	switch {
	case strings.HasSuffix(rest, " (FAILED)"):
		return author + rest[:len(rest)-len(" (FAILED)")] + FailedTextStyle.Render(" (FAILED)")
	case strings.Contains(rest, " (pending - "):
		return author + PendingTextStyle.Render(rest)
	default:
		return author + rest
	}
}

func (m Model) sidebarWidth() int {
	w := m.width / 4
	if w < 20 {
		w = 20
	}
	return w
}

// chatPaneSize returns the inner size of the chat viewport: total
// width minus the sidebar and borders, total height minus header,
// footer, input and borders.
func (m Model) chatPaneSize() (width, height int) {
	width = m.width - m.sidebarWidth() - 6
	if width < 20 {
		width = 20
	}
	height = m.height - 2 - 1 - 3
	if height < 5 {
		height = 5
	}
	return width, height
}
