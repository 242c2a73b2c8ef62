package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/demandvibes/taskdesk/internal/model"
	"github.com/demandvibes/taskdesk/internal/testutil"
)

func newController(recovery bool) *Controller {
	return New(recovery, testutil.MakeNoopLogger())
}

func TestNew_StartsAtHome(t *testing.T) {
	c := newController(false)
	assert.Equal(t, PageHome, c.Page())
	assert.Empty(t, c.EntityID())
}

func TestNew_RecoveryForcesResetPassword(t *testing.T) {
	c := newController(true)
	assert.Equal(t, PageResetPassword, c.Page())
}

func TestNavigate_Basic(t *testing.T) {
	c := newController(false)

	c.Navigate(PageLogin, "")
	assert.Equal(t, PageLogin, c.Page())

	c.Navigate(PageDashboard, "")
	assert.Equal(t, PageDashboard, c.Page())
}

func TestNavigate_StickyEntityID(t *testing.T) {
	c := newController(false)

	c.Navigate(PageDashboard, "")
	c.Navigate(PageTaskDetails, "7")
	c.Navigate(PageEmployees, "")

	// The id survives transitions that have no use for it.
	assert.Equal(t, PageEmployees, c.Page())
	assert.Equal(t, "7", c.EntityID())

	// It is only ever replaced, never cleared.
	c.Navigate(PageTaskDetails, "12")
	assert.Equal(t, "12", c.EntityID())
}

func TestNavigate_UnknownPageIsNoOp(t *testing.T) {
	c := newController(false)
	c.Navigate(PageDashboard, "")

	c.Navigate(Page(99), "x")

	assert.Equal(t, PageDashboard, c.Page())
	assert.Empty(t, c.EntityID())
}

func TestHandleAuthEvent_RecoveryOverridesNavigation(t *testing.T) {
	c := newController(false)
	c.Navigate(PageDashboard, "")

	changed := c.HandleAuthEvent(model.AuthEvent{Kind: model.EventPasswordRecovery})

	assert.True(t, changed)
	assert.Equal(t, PageResetPassword, c.Page())

	// Already on resetPassword: no further change reported.
	assert.False(t, c.HandleAuthEvent(model.AuthEvent{Kind: model.EventPasswordRecovery}))
}

func TestHandleAuthEvent_OtherEventsIgnored(t *testing.T) {
	c := newController(false)
	c.Navigate(PageLogin, "")

	assert.False(t, c.HandleAuthEvent(model.AuthEvent{Kind: model.EventSignedIn}))
	assert.False(t, c.HandleAuthEvent(model.AuthEvent{Kind: model.EventSignedOut}))
	assert.Equal(t, PageLogin, c.Page())
}

func TestPageString(t *testing.T) {
	assert.Equal(t, "resetPassword", PageResetPassword.String())
	assert.Equal(t, "taskDetails", PageTaskDetails.String())
	assert.Equal(t, "unknown", Page(42).String())
}
