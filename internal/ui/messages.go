package ui

import (
	"github.com/demandvibes/taskdesk/internal/model"
	"github.com/demandvibes/taskdesk/internal/service"
)

// Every asynchronous message carries the generation counter that was
// current when its command was dispatched. The root model bumps the
// counter on each page transition, so a result or timer that outlives
// the page it belongs to arrives stale and is dropped instead of
// mutating a view that no longer exists.

type authEventMsg struct {
	event model.AuthEvent
}

type authEventsClosedMsg struct{}

type signInResultMsg struct {
	gen  int
	user model.User
	err  error
}

type signUpResultMsg struct {
	gen  int
	user model.User
	err  error
}

type resetRequestResultMsg struct {
	gen int
	err error
}

// resetReturnMsg fires after the post-reset-request delay and returns
// the login page from the reset sub-view to the credential form.
type resetReturnMsg struct {
	gen int
}

type passwordUpdateResultMsg struct {
	gen int
	err error
}

// dashboardRedirectMsg fires after the post-password-update delay and
// moves from the reset-password page to the dashboard.
type dashboardRedirectMsg struct {
	gen int
}

type boardLoadedMsg struct {
	gen       int
	board     service.Board
	employees []model.Employee
	err       error
}

type taskCreatedMsg struct {
	gen  int
	task model.Task
	err  error
}

type detailsLoadedMsg struct {
	gen     int
	details service.Details
	err     error
}

type commentPostedMsg struct {
	gen     int
	comment model.Comment
	err     error
}

type attachmentSavedMsg struct {
	gen  int
	path string
	err  error
}

type rosterLoadedMsg struct {
	gen       int
	employees []model.Employee
	err       error
}
