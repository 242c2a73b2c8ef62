package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/demandvibes/taskdesk/internal/service"
)

// detailsModel renders a single task: metadata, discussion thread,
// and the attachment list with local download.
type detailsModel struct {
	loading bool
	errMsg  string
	details service.Details

	comment    textinput.Model
	commenting bool
	attachment int
	busy       bool
	notice     string
}

func newDetailsModel() detailsModel {
	comment := textinput.New()
	comment.Placeholder = "Write a comment"
	comment.CharLimit = 500

	return detailsModel{loading: true, comment: comment}
}

func (m *detailsModel) typing() bool {
	return m.comment.Focused()
}

func (m *detailsModel) startComment() {
	m.commenting = true
	m.notice = ""
	m.comment.Focus()
}

func (m *detailsModel) stopComment() {
	m.commenting = false
	m.comment.SetValue("")
	m.comment.Blur()
}

func (m *detailsModel) moveAttachment(delta int) {
	n := len(m.details.Task.Attachments)
	if n == 0 {
		return
	}
	m.attachment += delta
	if m.attachment < 0 {
		m.attachment = 0
	}
	if m.attachment >= n {
		m.attachment = n - 1
	}
}

func (m *detailsModel) selectedAttachment() (string, bool) {
	atts := m.details.Task.Attachments
	if len(atts) == 0 || m.attachment >= len(atts) {
		return "", false
	}
	return atts[m.attachment], true
}

func (m detailsModel) view(t Theme) string {
	if m.loading {
		return t.Muted.Render("Loading task…")
	}
	if m.errMsg != "" {
		return t.Error.Render(m.errMsg)
	}

	task := m.details.Task
	var b strings.Builder

	b.WriteString(t.Title.Render(task.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s · %s · %s · due %s\n",
		priorityStyle(t, task.Priority), string(task.Status), task.AssignedTo, task.DueDate))
	if task.Description != "" {
		b.WriteString("\n" + task.Description + "\n")
	}

	b.WriteString("\n" + t.Accent.Render("Attachments") + "\n")
	if len(task.Attachments) == 0 {
		b.WriteString(t.Muted.Render("  none") + "\n")
	}
	for i, name := range task.Attachments {
		line := "  " + name
		if i == m.attachment {
			line = t.Selected.Render("▸ " + name)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + t.Accent.Render(fmt.Sprintf("Comments (%d)", len(m.details.Comments))) + "\n")
	for _, c := range m.details.Comments {
		b.WriteString(fmt.Sprintf("  %s: %s\n", t.Label.Render(c.Author), c.Text))
	}

	if m.commenting {
		b.WriteString("\n" + m.comment.View() + "\n")
		b.WriteString(t.Muted.Render("enter post · esc cancel"))
	} else {
		if m.notice != "" {
			b.WriteString("\n" + t.Success.Render(m.notice) + "\n")
		}
		if m.busy {
			b.WriteString("\n" + t.Muted.Render("Working…") + "\n")
		}
		b.WriteString("\n" + t.Muted.Render("c comment · ↑/↓ attachment · o save attachment · esc back"))
	}

	return b.String()
}
