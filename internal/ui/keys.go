package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the taskdesk TUI.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding // Next form field.
	Submit key.Binding
	Back   key.Binding

	// Sidebar navigation, matching the web app's left rail.
	GoDashboard key.Binding
	GoMyTasks   key.Binding
	GoEmployees key.Binding
	GoCalendar  key.Binding
	GoSettings  key.Binding

	ForgotPassword key.Binding // Login page: switch to the reset sub-view.
	NewTask        key.Binding // Dashboard: focus the assign-task form.
	Comment        key.Binding // Task details: focus the comment input.
	SaveAttachment key.Binding // Task details: download the selected attachment.
	SignOut        key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	GoDashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	GoMyTasks: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "my tasks"),
	),
	GoEmployees: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "employees"),
	),
	GoCalendar: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "calendar"),
	),
	GoSettings: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "settings"),
	),
	ForgotPassword: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "forgot password"),
	),
	NewTask: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new task"),
	),
	Comment: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "comment"),
	),
	SaveAttachment: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "save attachment"),
	),
	SignOut: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "sign out"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
