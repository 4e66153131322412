package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/careerrise/careerctl/internal/api"
	"github.com/careerrise/careerctl/internal/guard"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped
// in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignIn prompts for credentials, exchanges them for a token, and lets
// the session store validate and install it. On success the user lands
// on the view their role calls for.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	token, err := a.api.SignIn(ctx, email, password)
	if err != nil {
		fmt.Println(api.Reason(err, signInFailureText(err)))
		return err
	}

	if err := a.sess.Adopt(ctx, token); err != nil {
		fmt.Println("Sign in failed: could not fetch your profile.")
		return err
	}

	fmt.Println("Signed in.")
	a.navigate(ctx, guard.Landing(a.sess.Snapshot()))
	return nil
}

func signInFailureText(err error) string {
	if errors.Is(err, api.ErrUnavailable) {
		return "Server unavailable, try again later."
	}
	return "Sign in failed."
}

// Logout clears the session and the persisted token.
func (a *App) Logout(ctx context.Context) error {
	a.sess.Logout(ctx)
	fmt.Println("Signed out.")
	return nil
}
