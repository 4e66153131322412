package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/careerrise/careerctl/internal/models"
	"github.com/careerrise/careerctl/internal/session"
)

func loggedOut() session.Snapshot {
	return session.Snapshot{State: session.StateLoggedOut}
}

func validating() session.Snapshot {
	return session.Snapshot{State: session.StateValidating, Token: "T1"}
}

func validSession(role models.Role) session.Snapshot {
	return session.Snapshot{
		State: session.StateValid,
		Token: "T1",
		User:  &models.Profile{Email: "u@x.com", Role: role},
	}
}

func TestMember(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
		want Decision
	}{
		{"logged out redirects to signin", loggedOut(), Decision{Redirect: RouteSignin}},
		{"validating gates like logged out", validating(), Decision{Redirect: RouteSignin}},
		{"applicant allowed", validSession(models.RoleApplicant), Decision{Allowed: true}},
		{"admin redirected to admin panel", validSession(models.RoleAdmin), Decision{Redirect: RouteAdmin}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Member(tc.snap))
		})
	}
}

func TestAdmin(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
		want Decision
	}{
		{"logged out redirects to signin", loggedOut(), Decision{Redirect: RouteSignin}},
		{"validating gates like logged out", validating(), Decision{Redirect: RouteSignin}},
		{"applicant redirected to dashboard", validSession(models.RoleApplicant), Decision{Redirect: RouteDashboard}},
		{"admin allowed", validSession(models.RoleAdmin), Decision{Allowed: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Admin(tc.snap))
		})
	}
}

func TestLanding(t *testing.T) {
	assert.Equal(t, RouteSignin, Landing(loggedOut()))
	assert.Equal(t, RouteSignin, Landing(validating()))
	assert.Equal(t, RouteDashboard, Landing(validSession(models.RoleApplicant)))
	assert.Equal(t, RouteAdmin, Landing(validSession(models.RoleAdmin)))
}

func TestMember_MissingProfileNeverAllowed(t *testing.T) {
	// A token without a validated profile must gate closed even if the
	// state claims validity.
	snap := session.Snapshot{State: session.StateValid, Token: "T1"}
	assert.Equal(t, Decision{Redirect: RouteSignin}, Member(snap))
	assert.Equal(t, Decision{Redirect: RouteSignin}, Admin(snap))
}
