package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/careerrise/careerctl/internal/admin"
	"github.com/careerrise/careerctl/internal/api"
	"github.com/careerrise/careerctl/internal/guard"
)

// renderAdmin shows the moderation panel, subject to the admin guard.
// The local guard decision is re-verified with the server before the
// panel renders, so a stale or tampered local role never exposes it.
// A failed refresh keeps the previously loaded list on screen with the
// error underneath, matching the registry's semantics.
func (a *App) renderAdmin(ctx context.Context) {
	decision := guard.Admin(a.sess.Snapshot())
	if !decision.Allowed {
		a.redirect(ctx, decision.Redirect)
		return
	}

	if err := a.api.AdminCheck(ctx); err != nil {
		if isUnauthorized(err) {
			a.reportError(ctx, err, "")
		} else {
			fmt.Println(api.Reason(err, "Admin access could not be verified."))
		}
		return
	}

	if err := a.registry.Refresh(ctx); err != nil && isUnauthorized(err) {
		a.reportError(ctx, err, "")
		return
	}

	fmt.Println("--- Admin Panel - User Management ---")
	users := a.registry.Users()
	if !a.registry.Loaded() {
		fmt.Println("Could not load users.")
	} else if len(users) == 0 {
		fmt.Println("No users found.")
	} else {
		fmt.Printf("%-30s %-20s %-10s %-8s\n", "EMAIL", "NAME", "ROLE", "STATUS")
		for _, u := range users {
			status := "Active"
			if u.IsBlocked {
				status = "Blocked"
			}
			fmt.Printf("%-30s %-20s %-10s %-8s\n", u.Email, u.Name, u.Role, status)
		}
	}

	if msg := a.registry.Err(); msg != "" {
		fmt.Println("Error:", msg)
	}
}

// BlockUser asks the server to block a user; the local row changes only
// after the server confirms.
func (a *App) BlockUser(ctx context.Context, email string) error {
	return a.moderate(ctx, email, a.registry.Block, "blocked")
}

func (a *App) UnblockUser(ctx context.Context, email string) error {
	return a.moderate(ctx, email, a.registry.Unblock, "unblocked")
}

// RemoveUser deletes a user after interactive confirmation. Declining
// the confirmation sends nothing.
func (a *App) RemoveUser(ctx context.Context, email string) error {
	return a.moderate(ctx, email, a.registry.Remove, "removed")
}

func (a *App) moderate(ctx context.Context, email string, action func(context.Context, string) error, verb string) error {
	decision := guard.Admin(a.sess.Snapshot())
	if !decision.Allowed {
		a.redirect(ctx, decision.Redirect)
		return nil
	}

	if err := action(ctx, email); err != nil {
		if errors.Is(err, admin.ErrDeclined) {
			fmt.Println("Cancelled.")
			return nil
		}
		if isUnauthorized(err) {
			a.reportError(ctx, err, "")
		} else if msg := a.registry.Err(); msg != "" {
			fmt.Println("Error:", msg)
		} else {
			fmt.Println("Error:", err)
		}
		return err
	}

	fmt.Printf("User %s %s.\n", email, verb)
	return nil
}

func isUnauthorized(err error) bool {
	return errors.Is(err, api.ErrUnauthorized)
}
