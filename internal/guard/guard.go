// Package guard contains the pure access-control decisions for protected
// views. Decisions are computed fresh from a session snapshot on every
// navigation attempt and are never cached; only the presentation layer
// turns a decision into navigation.
package guard

import "github.com/careerrise/careerctl/internal/session"

// Route identifies a navigable view.
type Route string

const (
	RouteSignin    Route = "/signin"
	RouteDashboard Route = "/dashboard"
	RouteAdmin     Route = "/admin"
)

// Decision is the outcome of a guard check: either the view may render,
// or the caller must navigate to Redirect instead.
type Decision struct {
	Allowed  bool
	Redirect Route
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirectTo(r Route) Decision {
	return Decision{Redirect: r}
}

// signedIn reports whether the snapshot holds a fully validated session.
// A validation still in flight gates exactly like logged out: protected
// content never renders on an unconfirmed token.
func signedIn(s session.Snapshot) bool {
	return s.State == session.StateValid && s.Token != "" && s.User != nil
}

// Member gates applicant-facing views. Admins never see them; they are
// sent to their own panel instead.
func Member(s session.Snapshot) Decision {
	if !signedIn(s) {
		return redirectTo(RouteSignin)
	}
	if s.User.Role.IsAdmin() {
		return redirectTo(RouteAdmin)
	}
	return allow()
}

// Admin gates the moderation panel.
func Admin(s session.Snapshot) Decision {
	if !signedIn(s) {
		return redirectTo(RouteSignin)
	}
	if !s.User.Role.IsAdmin() {
		return redirectTo(RouteDashboard)
	}
	return allow()
}

// Landing picks the view a user should arrive at after signing in.
func Landing(s session.Snapshot) Route {
	if !signedIn(s) {
		return RouteSignin
	}
	if s.User.Role.IsAdmin() {
		return RouteAdmin
	}
	return RouteDashboard
}
