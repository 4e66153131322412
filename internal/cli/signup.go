package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/careerrise/careerctl/internal/api"
	"github.com/careerrise/careerctl/internal/validate"
)

// SignUp walks through the signup form, validates it locally, submits
// it, and signs the new account in.
func (a *App) SignUp(ctx context.Context) error {
	req := &api.SignupRequest{}

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Enter email", &req.Email},
		{"Enter your name", &req.Name},
		{"Tell us about yourself", &req.About},
		{"Education level (school/college/university)", &req.EducationLevel},
		{"Institution name", &req.InstitutionName},
		{"Major", &req.Major},
		{"Graduation month (e.g. June)", &req.GraduationMonth},
		{"Graduation year", &req.GraduationYear},
	}
	for _, p := range prompts {
		value, err := getSimpleText(a.reader, p.label, os.Stdout)
		if err != nil {
			return err
		}
		*p.dst = value
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)
	req.Password = string(password)

	// Local checks first: invalid input never reaches the network.
	if err := validate.Signup(req); err != nil {
		printFieldErrors(validate.Fields(err))
		return err
	}

	if err := a.api.SignUp(ctx, req); err != nil {
		var fields api.FieldErrors
		if errors.As(err, &fields) {
			printFieldErrors(fields)
		} else {
			fmt.Println(api.Reason(err, "Signup failed."))
		}
		return err
	}

	fmt.Println("Account created, signing you in...")

	token, err := a.api.SignIn(ctx, req.Email, []byte(req.Password))
	if err != nil {
		fmt.Println("Account created, but automatic sign in failed. Use 'signin'.")
		return err
	}
	if err := a.sess.Adopt(ctx, token); err != nil {
		fmt.Println("Account created, but automatic sign in failed. Use 'signin'.")
		return err
	}

	fmt.Println("Signed in.")
	a.renderDashboard(ctx)
	return nil
}

func printFieldErrors(fields map[string]string) {
	fmt.Println("Please fix the following fields:")
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %s\n", name, fields[name])
	}
}
