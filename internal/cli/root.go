package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/careerrise/careerctl/internal/guard"
	"github.com/careerrise/careerctl/internal/session"
)

func (a *App) getStatus() string {
	snap := a.sess.Snapshot()
	if snap.User != nil {
		return fmt.Sprintf("(%s %s)", snap.User.Email, snap.User.Role)
	}
	if snap.State == session.StateValidating {
		return "(validating)"
	}
	return ""
}

// navigate renders the view behind a route, re-checking the matching
// guard on every attempt.
func (a *App) navigate(ctx context.Context, route guard.Route) {
	switch route {
	case guard.RouteDashboard:
		a.renderDashboard(ctx)
	case guard.RouteAdmin:
		a.renderAdmin(ctx)
	default:
		fmt.Println("Please sign in first (use 'signin' or 'signup').")
	}
}

// redirect reports a guard decision that denied the requested view and
// takes the user where the guard points instead.
func (a *App) redirect(ctx context.Context, route guard.Route) {
	switch route {
	case guard.RouteAdmin:
		fmt.Println("Admins use the admin panel instead.")
		a.renderAdmin(ctx)
	case guard.RouteDashboard:
		fmt.Println("Only admins can do that, back to your dashboard.")
		a.renderDashboard(ctx)
	default:
		fmt.Println("Please sign in first (use 'signin' or 'signup').")
	}
}

// Root runs the command loop.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to CareerRise (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	if a.isLoggedIn() {
		a.navigate(ctx, guard.Landing(a.sess.Snapshot()))
	}

	for {
		fmt.Printf("careerrise %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: home, dashboard, upload, update, admin, block <email>, unblock <email>, remove <email>, logout, exit")
			} else {
				fmt.Println("Available commands: signin, signup, exit")
			}

		case "signin":
			_ = a.SignIn(ctx)
		case "signup":
			_ = a.SignUp(ctx)
		case "home":
			a.navigate(ctx, guard.Landing(a.sess.Snapshot()))
		case "dashboard":
			a.renderDashboard(ctx)
		case "upload":
			_ = a.UploadResume(ctx)
		case "update":
			_ = a.UpdateProfile(ctx)
		case "admin", "users":
			a.renderAdmin(ctx)
		case "block":
			if len(args) == 0 {
				fmt.Println("Usage: block <email>")
				continue
			}
			_ = a.BlockUser(ctx, args[0])
		case "unblock":
			if len(args) == 0 {
				fmt.Println("Usage: unblock <email>")
				continue
			}
			_ = a.UnblockUser(ctx, args[0])
		case "remove":
			if len(args) == 0 {
				fmt.Println("Usage: remove <email>")
				continue
			}
			_ = a.RemoveUser(ctx, args[0])
		case "logout":
			_ = a.Logout(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
