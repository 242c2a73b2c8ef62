package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/demandvibes/taskdesk/internal/model"
	"github.com/demandvibes/taskdesk/internal/service"
)

// dashboardModel renders the bucketed task board, the team
// availability panel, and the assign-task form.
type dashboardModel struct {
	loading   bool
	errMsg    string
	board     service.Board
	employees []model.Employee
	cursor    int

	formOpen bool
	focus    int
	title    textinput.Model
	desc     textinput.Model
	due      textinput.Model
	assignee int
	priority model.Priority
	formErr  string
	busy     bool
}

const (
	fieldTitle = iota
	fieldDescription
	fieldDueDate
	fieldAssignee
	fieldPriority
	fieldCount
)

func newDashboardModel() dashboardModel {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 500

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10

	return dashboardModel{
		loading:  true,
		title:    title,
		desc:     desc,
		due:      due,
		priority: model.PriorityMedium,
	}
}

func (m *dashboardModel) typing() bool {
	return m.title.Focused() || m.desc.Focused() || m.due.Focused()
}

// rows flattens the board for cursor movement: overdue first, so the
// most urgent work is one keypress away.
func (m *dashboardModel) rows() []model.Task {
	rows := make([]model.Task, 0, len(m.board.Overdue)+len(m.board.Today)+len(m.board.Tomorrow))
	rows = append(rows, m.board.Overdue...)
	rows = append(rows, m.board.Today...)
	rows = append(rows, m.board.Tomorrow...)
	return rows
}

func (m *dashboardModel) selected() (model.Task, bool) {
	rows := m.rows()
	if len(rows) == 0 || m.cursor >= len(rows) {
		return model.Task{}, false
	}
	return rows[m.cursor], true
}

func (m *dashboardModel) moveCursor(delta int) {
	rows := m.rows()
	if len(rows) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
}

func (m *dashboardModel) openForm() {
	m.formOpen = true
	m.formErr = ""
	m.focus = fieldTitle
	m.title.Focus()
}

func (m *dashboardModel) closeForm() {
	m.formOpen = false
	m.formErr = ""
	m.busy = false
	m.title.SetValue("")
	m.desc.SetValue("")
	m.due.SetValue("")
	m.assignee = 0
	m.priority = model.PriorityMedium
	m.blurFields()
}

func (m *dashboardModel) blurFields() {
	m.title.Blur()
	m.desc.Blur()
	m.due.Blur()
}

func (m *dashboardModel) nextField() {
	m.focus = (m.focus + 1) % fieldCount
	m.blurFields()
	switch m.focus {
	case fieldTitle:
		m.title.Focus()
	case fieldDescription:
		m.desc.Focus()
	case fieldDueDate:
		m.due.Focus()
	}
}

// cycleOption adjusts the assignee or priority choice when one of the
// non-text fields is focused.
func (m *dashboardModel) cycleOption(delta int) {
	switch m.focus {
	case fieldAssignee:
		if len(m.employees) == 0 {
			return
		}
		m.assignee = (m.assignee + delta + len(m.employees)) % len(m.employees)
	case fieldPriority:
		order := []model.Priority{model.PriorityLow, model.PriorityMedium, model.PriorityHigh}
		for i, p := range order {
			if p == m.priority {
				m.priority = order[(i+delta+len(order))%len(order)]
				return
			}
		}
		m.priority = model.PriorityMedium
	}
}

func (m *dashboardModel) formParams() model.CreateTaskParams {
	params := model.CreateTaskParams{
		Title:       m.title.Value(),
		Description: m.desc.Value(),
		DueDate:     m.due.Value(),
		Priority:    m.priority,
	}
	if m.assignee < len(m.employees) {
		params.AssignedTo = m.employees[m.assignee].Name
	}
	return params
}

func priorityStyle(t Theme, p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return t.PriorityHigh.Render(string(p))
	case model.PriorityLow:
		return t.PriorityLow.Render(string(p))
	default:
		return t.PriorityMedium.Render(string(p))
	}
}

func availabilityLabel(e model.Employee) string {
	switch e.Status {
	case model.Available:
		return "available"
	case model.Busy:
		return fmt.Sprintf("busy, free %s", e.NextFree)
	case model.Overloaded:
		return "overloaded"
	default:
		return string(e.Status)
	}
}

func (m dashboardModel) view(t Theme) string {
	if m.loading {
		return t.Muted.Render("Loading your board…")
	}
	if m.errMsg != "" {
		return t.Error.Render(m.errMsg)
	}

	var b strings.Builder

	renderBucket := func(name string, tasks []model.Task, offset int) int {
		b.WriteString(t.Accent.Render(fmt.Sprintf("%s (%d)", name, len(tasks))))
		b.WriteString("\n")
		for i, task := range tasks {
			line := fmt.Sprintf("  %s  %s  %s · due %s",
				task.Title, priorityStyle(t, task.Priority), task.AssignedTo, task.DueDate)
			if offset+i == m.cursor {
				line = t.Selected.Render("▸" + line[1:])
			}
			b.WriteString(line + "\n")
		}
		if len(tasks) == 0 {
			b.WriteString(t.Muted.Render("  nothing here") + "\n")
		}
		return offset + len(tasks)
	}

	offset := renderBucket("Overdue", m.board.Overdue, 0)
	offset = renderBucket("Today", m.board.Today, offset)
	renderBucket("Tomorrow", m.board.Tomorrow, offset)

	b.WriteString("\n" + t.Accent.Render("Team") + "\n")
	for _, e := range m.employees {
		b.WriteString(fmt.Sprintf("  %s — %s\n", e.Name, availabilityLabel(e)))
	}

	if m.formOpen {
		b.WriteString("\n" + m.formView(t))
	} else {
		b.WriteString("\n" + t.Muted.Render("↑/↓ select · enter open · n new task · ctrl+l sign out"))
	}

	return b.String()
}

func (m dashboardModel) formView(t Theme) string {
	var b strings.Builder

	b.WriteString(t.Title.Render("Assign a task"))
	b.WriteString("\n")
	b.WriteString(t.Label.Render("Title") + "\n" + m.title.View() + "\n")
	b.WriteString(t.Label.Render("Description") + "\n" + m.desc.View() + "\n")
	b.WriteString(t.Label.Render("Due date") + "\n" + m.due.View() + "\n")

	assignee := "no employees loaded"
	if m.assignee < len(m.employees) {
		assignee = m.employees[m.assignee].Name
	}
	marker := func(field int, text string) string {
		if m.focus == field {
			return t.Selected.Render(text)
		}
		return text
	}
	b.WriteString(t.Label.Render("Assignee") + "\n" + marker(fieldAssignee, "< "+assignee+" >") + "\n")
	b.WriteString(t.Label.Render("Priority") + "\n" + marker(fieldPriority, "< "+string(m.priority)+" >") + "\n\n")

	if m.formErr != "" {
		b.WriteString(t.Error.Render(m.formErr) + "\n")
	}
	if m.busy {
		b.WriteString(t.Muted.Render("Creating…") + "\n")
	}
	b.WriteString(t.Muted.Render("enter create · tab next · ↑/↓ choose · esc cancel"))

	return t.Card.Render(b.String())
}
