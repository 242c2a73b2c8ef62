// Package ui is the bubbletea front end. The root App model owns the
// navigation controller, the per-page sub-models, and every timer; all
// service calls run as commands off the UI loop and report back as
// generation-stamped messages.
package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/demandvibes/taskdesk/internal/logger"
	"github.com/demandvibes/taskdesk/internal/model"
	"github.com/demandvibes/taskdesk/internal/nav"
	"github.com/demandvibes/taskdesk/internal/service"
)

const (
	// resetReturnDelay is how long the "check your email" notice stays
	// up before the login page returns to the credential form.
	resetReturnDelay = 3 * time.Second
	// dashboardRedirectDelay is how long the "password updated" notice
	// stays up before moving to the dashboard.
	dashboardRedirectDelay = 2 * time.Second
)

// App is the root model.
type App struct {
	ctx     context.Context
	nav     *nav.Controller
	auth    *service.Auth
	tasks   *service.Tasks
	session model.SessionStore
	gateway model.AuthGateway
	logger  *logger.Logger

	theme       Theme
	keys        KeyMap
	downloadDir string

	width  int
	height int

	// gen is bumped on every page transition. Async results and timers
	// carry the gen they were dispatched under; a mismatch means the
	// page they belong to is gone and the message is dropped.
	gen int

	events       <-chan model.AuthEvent
	cancelEvents func()

	login     loginModel
	signup    signupModel
	reset     resetModel
	dashboard dashboardModel
	details   detailsModel
	roster    []model.Employee
	rosterErr string
}

// NewApp wires the root model. The gateway subscription is taken here
// so no event emitted during startup is missed.
func NewApp(
	ctx context.Context,
	auth *service.Auth,
	tasks *service.Tasks,
	gateway model.AuthGateway,
	session model.SessionStore,
	downloadDir string,
	logger *logger.Logger,
) *App {
	events, cancel := gateway.Subscribe()

	recoveryPending := gateway.HasRecoverySession()

	app := &App{
		ctx:          ctx,
		nav:          nav.New(recoveryPending, logger),
		auth:         auth,
		tasks:        tasks,
		session:      session,
		gateway:      gateway,
		logger:       logger,
		theme:        DefaultTheme,
		keys:         DefaultKeyMap,
		downloadDir:  downloadDir,
		events:       events,
		cancelEvents: cancel,
		login:        newLoginModel(),
		signup:       newSignupModel(),
		reset:        newResetModel(recoveryPending),
		dashboard:    newDashboardModel(),
		details:      newDetailsModel(),
	}
	return app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.listenAuthEvents())
}

// listenAuthEvents blocks on the subscription channel and re-arms
// itself after every delivery.
func (a *App) listenAuthEvents() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-a.events
		if !ok {
			return authEventsClosedMsg{}
		}
		return authEventMsg{event: event}
	}
}

// goTo performs a page transition: route in the controller, invalidate
// everything in flight, rebuild the target page's model, and kick off
// its initial load.
func (a *App) goTo(page nav.Page, entityID string) tea.Cmd {
	a.nav.Navigate(page, entityID)
	a.gen++

	switch a.nav.Page() {
	case nav.PageLogin:
		a.login = newLoginModel()
	case nav.PageSignup:
		a.signup = newSignupModel()
	case nav.PageResetPassword:
		a.reset = newResetModel(a.gateway.HasRecoverySession())
	case nav.PageDashboard:
		a.dashboard = newDashboardModel()
		return a.loadBoard(a.gen)
	case nav.PageEmployees:
		a.roster = nil
		a.rosterErr = ""
		return a.loadRoster(a.gen)
	case nav.PageTaskDetails:
		a.details = newDetailsModel()
		return a.loadDetails(a.gen, a.nav.EntityID())
	}
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			a.cancelEvents()
			return a, tea.Quit
		}
		return a.updateKey(msg)

	case authEventMsg:
		cmd := a.handleAuthEvent(msg.event)
		return a, tea.Batch(cmd, a.listenAuthEvents())

	case authEventsClosedMsg:
		return a, nil
	}

	return a.updateAsync(msg)
}

func (a *App) handleAuthEvent(event model.AuthEvent) tea.Cmd {
	if !a.nav.HandleAuthEvent(event) {
		return nil
	}
	// The controller moved us to the reset-password page; rebuild its
	// model and invalidate whatever the previous page had in flight.
	a.gen++
	a.reset = newResetModel(a.gateway.HasRecoverySession())
	return nil
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, handled := a.navKey(msg); handled {
		return a, cmd
	}

	switch a.nav.Page() {
	case nav.PageHome:
		return a.updateHomeKey(msg)
	case nav.PageLogin:
		return a.updateLoginKey(msg)
	case nav.PageSignup:
		return a.updateSignupKey(msg)
	case nav.PageResetPassword:
		return a.updateResetKey(msg)
	case nav.PageDashboard:
		return a.updateDashboardKey(msg)
	case nav.PageTaskDetails:
		return a.updateDetailsKey(msg)
	case nav.PageMyTasks, nav.PageEmployees, nav.PageCalendar, nav.PageSettings:
		if msg.Type == tea.KeyEsc {
			return a, a.goTo(nav.PageDashboard, "")
		}
	}
	return a, nil
}

// navKey handles the sidebar shortcuts. They only apply on the
// signed-in pages, and never while a text field has focus.
func (a *App) navKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.nav.Page() {
	case nav.PageDashboard, nav.PageMyTasks, nav.PageEmployees,
		nav.PageCalendar, nav.PageSettings, nav.PageTaskDetails:
	default:
		return nil, false
	}
	if a.typing() {
		return nil, false
	}

	switch {
	case key.Matches(msg, a.keys.GoDashboard):
		return a.goTo(nav.PageDashboard, ""), true
	case key.Matches(msg, a.keys.GoMyTasks):
		return a.goTo(nav.PageMyTasks, ""), true
	case key.Matches(msg, a.keys.GoEmployees):
		return a.goTo(nav.PageEmployees, ""), true
	case key.Matches(msg, a.keys.GoCalendar):
		return a.goTo(nav.PageCalendar, ""), true
	case key.Matches(msg, a.keys.GoSettings):
		return a.goTo(nav.PageSettings, ""), true
	case key.Matches(msg, a.keys.SignOut):
		a.auth.SignOut()
		return a.goTo(nav.PageHome, ""), true
	}
	return nil, false
}

func (a *App) typing() bool {
	switch a.nav.Page() {
	case nav.PageLogin:
		return a.login.typing()
	case nav.PageSignup:
		return a.signup.typing()
	case nav.PageResetPassword:
		return a.reset.typing()
	case nav.PageDashboard:
		return a.dashboard.typing()
	case nav.PageTaskDetails:
		return a.details.typing()
	}
	return false
}

func (a *App) updateHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "l":
		return a, a.goTo(nav.PageLogin, "")
	case "s":
		return a, a.goTo(nav.PageSignup, "")
	case "d", "enter":
		if a.session.IsAuthenticated() {
			return a, a.goTo(nav.PageDashboard, "")
		}
	case "q":
		a.cancelEvents()
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) updateLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.ForgotPassword):
		a.login.enterResetMode()
		return a, nil

	case key.Matches(msg, a.keys.Back):
		if a.login.resetMode {
			a.login.leaveResetMode()
			return a, nil
		}
		return a, a.goTo(nav.PageHome, "")

	case key.Matches(msg, a.keys.Next):
		a.login.nextField()
		return a, nil

	case key.Matches(msg, a.keys.Submit):
		if a.login.busy {
			return a, nil
		}
		if a.login.resetMode {
			if a.login.resetSent {
				return a, nil
			}
			a.login.errMsg = ""
			a.login.busy = true
			return a, a.requestReset(a.gen, a.login.resetEmail.Value())
		}
		a.login.errMsg = ""
		a.login.busy = true
		return a, a.signIn(a.gen, a.login.email.Value(), a.login.password.Value())
	}

	var cmd tea.Cmd
	if a.login.resetMode {
		a.login.resetEmail, cmd = a.login.resetEmail.Update(msg)
	} else if a.login.focus == 0 {
		a.login.email, cmd = a.login.email.Update(msg)
	} else {
		a.login.password, cmd = a.login.password.Update(msg)
	}
	return a, cmd
}

func (a *App) updateSignupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		return a, a.goTo(nav.PageHome, "")

	case key.Matches(msg, a.keys.Next):
		a.signup.nextField()
		return a, nil

	case key.Matches(msg, a.keys.Submit):
		if a.signup.busy {
			return a, nil
		}
		a.signup.errMsg = ""
		a.signup.busy = true
		return a, a.signUp(a.gen,
			a.signup.email.Value(), a.signup.password.Value(), a.signup.name.Value())
	}

	var cmd tea.Cmd
	switch a.signup.focus {
	case 0:
		a.signup.name, cmd = a.signup.name.Update(msg)
	case 1:
		a.signup.email, cmd = a.signup.email.Update(msg)
	case 2:
		a.signup.password, cmd = a.signup.password.Update(msg)
	}
	return a, cmd
}

func (a *App) updateResetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !a.reset.sessionValid || a.reset.done {
		if key.Matches(msg, a.keys.Back) && !a.reset.done {
			return a, a.goTo(nav.PageLogin, "")
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Next):
		a.reset.nextField()
		return a, nil

	case key.Matches(msg, a.keys.Submit):
		if a.reset.busy {
			return a, nil
		}
		a.reset.errMsg = ""
		a.reset.busy = true
		return a, a.updatePassword(a.gen, a.reset.password.Value(), a.reset.confirm.Value())
	}

	var cmd tea.Cmd
	if a.reset.focus == 0 {
		a.reset.password, cmd = a.reset.password.Update(msg)
	} else {
		a.reset.confirm, cmd = a.reset.confirm.Update(msg)
	}
	return a, cmd
}

func (a *App) updateDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &a.dashboard

	if d.formOpen {
		switch {
		case key.Matches(msg, a.keys.Back):
			d.closeForm()
			return a, nil
		case key.Matches(msg, a.keys.Next):
			d.nextField()
			return a, nil
		case key.Matches(msg, a.keys.Up):
			if !d.typing() {
				d.cycleOption(-1)
				return a, nil
			}
		case key.Matches(msg, a.keys.Down):
			if !d.typing() {
				d.cycleOption(1)
				return a, nil
			}
		case key.Matches(msg, a.keys.Submit):
			if d.busy {
				return a, nil
			}
			d.formErr = ""
			d.busy = true
			return a, a.createTask(a.gen, d.formParams())
		}

		var cmd tea.Cmd
		switch d.focus {
		case fieldTitle:
			d.title, cmd = d.title.Update(msg)
		case fieldDescription:
			d.desc, cmd = d.desc.Update(msg)
		case fieldDueDate:
			d.due, cmd = d.due.Update(msg)
		}
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Up):
		d.moveCursor(-1)
	case key.Matches(msg, a.keys.Down):
		d.moveCursor(1)
	case key.Matches(msg, a.keys.NewTask):
		d.openForm()
	case key.Matches(msg, a.keys.Submit):
		if task, ok := d.selected(); ok {
			return a, a.goTo(nav.PageTaskDetails, task.ID)
		}
	}
	return a, nil
}

func (a *App) updateDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &a.details

	if d.commenting {
		switch {
		case key.Matches(msg, a.keys.Back):
			d.stopComment()
			return a, nil
		case key.Matches(msg, a.keys.Submit):
			if d.busy {
				return a, nil
			}
			d.busy = true
			return a, a.postComment(a.gen, d.details.Task.ID, d.comment.Value())
		}
		var cmd tea.Cmd
		d.comment, cmd = d.comment.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Back):
		return a, a.goTo(nav.PageDashboard, "")
	case key.Matches(msg, a.keys.Comment):
		d.startComment()
	case key.Matches(msg, a.keys.Up):
		d.moveAttachment(-1)
	case key.Matches(msg, a.keys.Down):
		d.moveAttachment(1)
	case key.Matches(msg, a.keys.SaveAttachment):
		if name, ok := d.selectedAttachment(); ok && !d.busy {
			d.busy = true
			return a, a.saveAttachment(a.gen, d.details.Task.ID, name)
		}
	}
	return a, nil
}

// updateAsync routes generation-stamped results and timers. Stale
// messages are logged and dropped.
func (a *App) updateAsync(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signInResultMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.login.busy = false
		if msg.err != nil {
			a.login.errMsg = loginErrorMessage(msg.err)
			return a, nil
		}
		return a, a.goTo(nav.PageDashboard, "")

	case signUpResultMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.signup.busy = false
		if msg.err != nil {
			a.signup.errMsg = signupErrorMessage(msg.err)
			return a, nil
		}
		return a, a.goTo(nav.PageDashboard, "")

	case resetRequestResultMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.login.busy = false
		if msg.err != nil {
			a.login.errMsg = loginErrorMessage(msg.err)
			return a, nil
		}
		a.login.resetSent = true
		gen := a.gen
		return a, tea.Tick(resetReturnDelay, func(time.Time) tea.Msg {
			return resetReturnMsg{gen: gen}
		})

	case resetReturnMsg:
		if msg.gen != a.gen {
			a.logger.Debug("ui: dropping stale reset-return timer")
			return a, nil
		}
		if a.nav.Page() == nav.PageLogin && a.login.resetMode {
			a.login.leaveResetMode()
		}
		return a, nil

	case passwordUpdateResultMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.reset.busy = false
		if msg.err != nil {
			a.reset.errMsg = resetErrorMessage(msg.err)
			return a, nil
		}
		a.reset.done = true
		gen := a.gen
		return a, tea.Tick(dashboardRedirectDelay, func(time.Time) tea.Msg {
			return dashboardRedirectMsg{gen: gen}
		})

	case dashboardRedirectMsg:
		if msg.gen != a.gen {
			a.logger.Debug("ui: dropping stale dashboard-redirect timer")
			return a, nil
		}
		return a, a.goTo(nav.PageDashboard, "")

	case boardLoadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.dashboard.loading = false
		if msg.err != nil {
			a.dashboard.errMsg = "Could not load your board. Please try again."
			return a, nil
		}
		a.dashboard.board = msg.board
		a.dashboard.employees = msg.employees
		return a, nil

	case taskCreatedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.dashboard.busy = false
		if msg.err != nil {
			a.dashboard.formErr = formErrorMessage(msg.err)
			return a, nil
		}
		a.dashboard.closeForm()
		return a, a.loadBoard(a.gen)

	case detailsLoadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.details.loading = false
		if msg.err != nil {
			a.details.errMsg = "Could not load this task."
			return a, nil
		}
		a.details.details = msg.details
		return a, nil

	case commentPostedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.details.busy = false
		if msg.err != nil {
			a.details.notice = ""
			a.details.errMsg = formErrorMessage(msg.err)
			return a, nil
		}
		a.details.details.Comments = append(a.details.details.Comments, msg.comment)
		a.details.stopComment()
		return a, nil

	case attachmentSavedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.details.busy = false
		if msg.err != nil {
			a.details.notice = ""
			a.details.errMsg = "Could not save the attachment."
			return a, nil
		}
		a.details.notice = "Saved to " + msg.path
		return a, nil

	case rosterLoadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		if msg.err != nil {
			a.rosterErr = "Could not load the team roster."
			return a, nil
		}
		a.roster = msg.employees
		return a, nil
	}

	return a, nil
}

func formErrorMessage(err error) string {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return "Something went wrong. Please try again."
}

// Commands. Each captures the gen current at dispatch.

func (a *App) signIn(gen int, email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := a.auth.SignIn(a.ctx, email, password)
		return signInResultMsg{gen: gen, user: user, err: err}
	}
}

func (a *App) signUp(gen int, email, password, name string) tea.Cmd {
	return func() tea.Msg {
		user, err := a.auth.SignUp(a.ctx, email, password, name)
		return signUpResultMsg{gen: gen, user: user, err: err}
	}
}

func (a *App) requestReset(gen int, email string) tea.Cmd {
	return func() tea.Msg {
		err := a.auth.RequestReset(a.ctx, email)
		return resetRequestResultMsg{gen: gen, err: err}
	}
}

func (a *App) updatePassword(gen int, newPassword, confirmPassword string) tea.Cmd {
	return func() tea.Msg {
		err := a.auth.UpdatePassword(a.ctx, newPassword, confirmPassword)
		return passwordUpdateResultMsg{gen: gen, err: err}
	}
}

func (a *App) loadBoard(gen int) tea.Cmd {
	return func() tea.Msg {
		board, err := a.tasks.Board(a.ctx)
		if err != nil {
			return boardLoadedMsg{gen: gen, err: err}
		}
		employees, err := a.tasks.Employees(a.ctx)
		return boardLoadedMsg{gen: gen, board: board, employees: employees, err: err}
	}
}

func (a *App) createTask(gen int, params model.CreateTaskParams) tea.Cmd {
	return func() tea.Msg {
		task, err := a.tasks.Create(a.ctx, params)
		return taskCreatedMsg{gen: gen, task: task, err: err}
	}
}

func (a *App) loadDetails(gen int, id string) tea.Cmd {
	return func() tea.Msg {
		details, err := a.tasks.Details(a.ctx, id)
		return detailsLoadedMsg{gen: gen, details: details, err: err}
	}
}

func (a *App) postComment(gen int, taskID, text string) tea.Cmd {
	author := ""
	if user := a.session.Get(); user != nil {
		author = user.Name
	}
	return func() tea.Msg {
		comment, err := a.tasks.Comment(a.ctx, taskID, author, text)
		return commentPostedMsg{gen: gen, comment: comment, err: err}
	}
}

func (a *App) saveAttachment(gen int, taskID, name string) tea.Cmd {
	return func() tea.Msg {
		path, err := a.tasks.SaveAttachment(a.ctx, taskID, name, a.downloadDir)
		return attachmentSavedMsg{gen: gen, path: path, err: err}
	}
}

func (a *App) loadRoster(gen int) tea.Cmd {
	return func() tea.Msg {
		employees, err := a.tasks.Employees(a.ctx)
		return rosterLoadedMsg{gen: gen, employees: employees, err: err}
	}
}
