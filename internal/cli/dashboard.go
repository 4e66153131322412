package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/careerrise/careerctl/internal/api"
	"github.com/careerrise/careerctl/internal/guard"
	"github.com/careerrise/careerctl/internal/models"
)

// renderDashboard shows the applicant profile view, subject to the
// member guard.
func (a *App) renderDashboard(ctx context.Context) {
	decision := guard.Member(a.sess.Snapshot())
	if !decision.Allowed {
		a.redirect(ctx, decision.Redirect)
		return
	}

	user := a.sess.Snapshot().User

	fmt.Println("--- Dashboard ---")
	fmt.Printf("Name:        %s\n", user.Name)
	fmt.Printf("Email:       %s\n", user.Email)
	fmt.Printf("About:       %s\n", user.About)
	fmt.Printf("Education:   %s, %s (%s %s)\n", user.EducationLevel, user.InstitutionName, user.GraduationMonth, user.GraduationYear)
	fmt.Printf("Major:       %s\n", user.Major)
	if user.LastLogin != nil {
		fmt.Printf("Last login:  %s\n", user.LastLogin.Local().Format("2006-01-02 15:04"))
	}
	if user.HasResume() {
		fmt.Println("Resume:      on file")
	} else {
		fmt.Println("Resume:      not uploaded")
	}
	printChecklist(user)
}

// printChecklist mirrors the profile-completion hints from the web
// dashboard.
func printChecklist(user *models.Profile) {
	items := []struct {
		label string
		done  bool
	}{
		{"Name", user.Name != ""},
		{"About", user.About != ""},
		{"Institution", user.InstitutionName != ""},
		{"Major", user.Major != ""},
		{"Resume", user.HasResume()},
	}

	done := 0
	for _, item := range items {
		if item.done {
			done++
		}
	}
	fmt.Printf("Profile completion: %d/%d\n", done, len(items))
	for _, item := range items {
		mark := " "
		if item.done {
			mark = "x"
		}
		fmt.Printf("  [%s] %s\n", mark, item.label)
	}
}

// UploadResume sends a PDF resume for the signed-in applicant.
func (a *App) UploadResume(ctx context.Context) error {
	decision := guard.Member(a.sess.Snapshot())
	if !decision.Allowed {
		a.redirect(ctx, decision.Redirect)
		return nil
	}

	path, err := getSimpleText(a.reader, "Path to your resume (PDF)", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		fmt.Println("Only PDF files are allowed.")
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("Cannot open %s: %v\n", path, err)
		return err
	}
	defer f.Close()

	msg, err := a.api.UploadResume(ctx, filepath.Base(path), f)
	if err != nil {
		a.reportError(ctx, err, "Failed to upload resume.")
		return err
	}

	fmt.Println(msg)
	// Refetch so the dashboard reflects the uploaded document.
	return a.sess.Bootstrap(ctx)
}

// UpdateProfile prompts for the editable fields and applies a partial
// update; empty answers keep the current value.
func (a *App) UpdateProfile(ctx context.Context) error {
	decision := guard.Member(a.sess.Snapshot())
	if !decision.Allowed {
		a.redirect(ctx, decision.Redirect)
		return nil
	}

	upd := &models.ProfileUpdate{}
	prompts := []struct {
		label string
		dst   **string
	}{
		{"Name", &upd.Name},
		{"About", &upd.About},
		{"Education level (school/college/university)", &upd.EducationLevel},
		{"Institution name", &upd.InstitutionName},
		{"Major", &upd.Major},
		{"Graduation month", &upd.GraduationMonth},
		{"Graduation year", &upd.GraduationYear},
	}

	fmt.Println("Leave a field empty to keep its current value.")
	changed := false
	for _, p := range prompts {
		value, err := getSimpleText(a.reader, p.label, os.Stdout)
		if err != nil {
			return err
		}
		if value != "" {
			v := value
			*p.dst = &v
			changed = true
		}
	}

	if !changed {
		fmt.Println("Nothing to update.")
		return nil
	}

	msg, err := a.api.UpdateProfile(ctx, upd)
	if err != nil {
		a.reportError(ctx, err, "Failed to update profile.")
		return err
	}

	fmt.Println(msg)
	return a.sess.Bootstrap(ctx)
}

// reportError prints a user-facing failure message; a rejected token
// additionally tears the session down so the user is asked to sign in
// again.
func (a *App) reportError(ctx context.Context, err error, fallback string) {
	if err == nil {
		return
	}
	if isUnauthorized(err) {
		a.sess.Logout(ctx)
		fmt.Println("Your session has expired, please sign in again.")
		return
	}
	fmt.Println(api.Reason(err, fallback))
}
