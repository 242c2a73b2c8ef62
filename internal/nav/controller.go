// Package nav holds the page-routing state machine. It is driven by
// user intent and by auth-state-change events, and owns no timers:
// delayed auto-transitions belong to the view layer, where they can
// be cancelled with the view.
package nav

import (
	"github.com/demandvibes/taskdesk/internal/logger"
	"github.com/demandvibes/taskdesk/internal/model"
)

// Page enumerates every renderable page. The original dispatched on
// raw strings; a typed enum makes unknown pages unrepresentable at
// call sites and lets transitions be handled exhaustively.
type Page int

const (
	PageHome Page = iota
	PageLogin
	PageSignup
	PageResetPassword
	PageDashboard
	PageMyTasks
	PageEmployees
	PageCalendar
	PageSettings
	PageTaskDetails

	pageCount
)

var pageNames = [pageCount]string{
	PageHome:          "home",
	PageLogin:         "login",
	PageSignup:        "signup",
	PageResetPassword: "resetPassword",
	PageDashboard:     "dashboard",
	PageMyTasks:       "myTasks",
	PageEmployees:     "employees",
	PageCalendar:      "calendar",
	PageSettings:      "settings",
	PageTaskDetails:   "taskDetails",
}

func (p Page) String() string {
	if !p.valid() {
		return "unknown"
	}
	return pageNames[p]
}

func (p Page) valid() bool {
	return p >= PageHome && p < pageCount
}

// Controller is the single-threaded navigation state machine. It must
// only be touched from the UI loop.
type Controller struct {
	page     Page
	entityID string
	logger   *logger.Logger
}

// New creates a controller on the home page. When a recovery token
// was present at startup the initial page is forced to resetPassword,
// overriding anything dispatched concurrently.
func New(recoveryPending bool, logger *logger.Logger) *Controller {
	page := PageHome
	if recoveryPending {
		page = PageResetPassword
	}
	return &Controller{page: page, logger: logger}
}

// Page returns the current page.
func (c *Controller) Page() Page {
	return c.page
}

// EntityID returns the retained entity id, usually a task id.
func (c *Controller) EntityID() string {
	return c.entityID
}

// Navigate transitions to page. A non-empty entityID replaces the
// retained id; an empty one keeps the previous id in place, even
// across transitions that have no use for it. The id is sticky until
// replaced, never cleared implicitly — this mirrors the original's
// behaviour exactly.
//
// An out-of-range page is a no-op rather than a crash: nothing would
// know how to render it.
func (c *Controller) Navigate(page Page, entityID string) {
	if !page.valid() {
		c.logger.Warn("nav: ignoring navigation to unknown page")
		return
	}
	c.page = page
	if entityID != "" {
		c.entityID = entityID
	}

	c.logger.Debug("nav: navigated",
		"page", page.String(),
		"entity_id", c.entityID)
}

// HandleAuthEvent applies an auth-state-change notification. A
// recovery event forces the reset-password page from anywhere,
// overriding in-flight user navigation; every other event leaves
// routing alone. Reports whether the page changed.
func (c *Controller) HandleAuthEvent(event model.AuthEvent) bool {
	if event.Kind != model.EventPasswordRecovery {
		return false
	}
	if c.page == PageResetPassword {
		return false
	}

	c.logger.Info("nav: recovery event forces reset-password page",
		"from", c.page.String())

	c.page = PageResetPassword
	return true
}
