package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/demandvibes/taskdesk/internal/nav"
)

// View implements tea.Model.
func (a *App) View() string {
	var body string
	switch a.nav.Page() {
	case nav.PageHome:
		body = a.homeView()
	case nav.PageLogin:
		body = a.login.view(a.theme)
	case nav.PageSignup:
		body = a.signup.view(a.theme)
	case nav.PageResetPassword:
		body = a.reset.view(a.theme)
	case nav.PageDashboard:
		body = a.dashboard.view(a.theme)
	case nav.PageMyTasks:
		body = a.theme.Muted.Render("My Tasks is coming soon.")
	case nav.PageEmployees:
		body = a.employeesView()
	case nav.PageCalendar:
		body = a.theme.Muted.Render("Calendar is coming soon.")
	case nav.PageSettings:
		body = a.settingsView()
	case nav.PageTaskDetails:
		body = a.details.view(a.theme)
	default:
		return ""
	}

	header := a.headerView()
	if header == "" {
		return body + "\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body) + "\n"
}

// headerView renders the navigation rail on the signed-in pages.
func (a *App) headerView() string {
	switch a.nav.Page() {
	case nav.PageDashboard, nav.PageMyTasks, nav.PageEmployees,
		nav.PageCalendar, nav.PageSettings, nav.PageTaskDetails:
	default:
		return ""
	}

	entries := []struct {
		page  nav.Page
		label string
	}{
		{nav.PageDashboard, "1 Dashboard"},
		{nav.PageMyTasks, "2 My Tasks"},
		{nav.PageEmployees, "3 Employees"},
		{nav.PageCalendar, "4 Calendar"},
		{nav.PageSettings, "5 Settings"},
	}

	var parts []string
	current := a.nav.Page()
	if current == nav.PageTaskDetails {
		current = nav.PageDashboard
	}
	for _, e := range entries {
		if e.page == current {
			parts = append(parts, a.theme.NavActive.Render(e.label))
		} else {
			parts = append(parts, a.theme.NavItem.Render(e.label))
		}
	}

	name := ""
	if user := a.session.Get(); user != nil {
		name = a.theme.Muted.Render("  " + user.Name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + name + "\n"
}

func (a *App) homeView() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("TaskDesk"))
	b.WriteString("\n")
	b.WriteString("Plan, assign and track your team's work.\n\n")

	if user := a.session.Get(); user != nil {
		b.WriteString(fmt.Sprintf("Signed in as %s.\n\n", user.Name))
		b.WriteString(a.theme.Muted.Render("d dashboard · q quit"))
	} else {
		b.WriteString(a.theme.Muted.Render("l sign in · s create account · q quit"))
	}

	return a.theme.Card.Render(b.String())
}

func (a *App) employeesView() string {
	if a.rosterErr != "" {
		return a.theme.Error.Render(a.rosterErr)
	}
	if a.roster == nil {
		return a.theme.Muted.Render("Loading the team…")
	}

	var b strings.Builder
	b.WriteString(a.theme.Title.Render("Employees"))
	b.WriteString("\n")
	for _, e := range a.roster {
		b.WriteString(fmt.Sprintf("  %s — %s\n", e.Name, availabilityLabel(e)))
	}
	return b.String()
}

func (a *App) settingsView() string {
	var b strings.Builder
	b.WriteString(a.theme.Title.Render("Settings"))
	b.WriteString("\n")
	if user := a.session.Get(); user != nil {
		b.WriteString(fmt.Sprintf("Account: %s <%s>\n", user.Name, user.Email))
	}
	b.WriteString("Downloads: " + a.downloadDir + "\n\n")
	b.WriteString(a.theme.Muted.Render("ctrl+l sign out"))
	return b.String()
}
