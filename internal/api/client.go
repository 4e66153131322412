// Package api implements the HTTP client for the CareerRise platform.
// It owns two concerns: attaching the bearer token to authorized requests
// and normalizing response outcomes into the shared error taxonomy.
package api

import (
	"context"
	"io"

	"github.com/careerrise/careerctl/internal/models"
)

// SignupRequest is the JSON body of POST /signup. Field names match the
// server's form contract.
type SignupRequest struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	About           string `json:"about"`
	EducationLevel  string `json:"educationLevel"`
	InstitutionName string `json:"institutionName"`
	Major           string `json:"major"`
	GraduationMonth string `json:"graduationMonth"`
	GraduationYear  string `json:"graduationYear"`
	Password        string `json:"password"`
}

// Client defines the platform operations the rest of the application
// consumes. Implementations must classify failures into ErrUnauthorized,
// ErrUnavailable, *RequestError, or FieldErrors.
type Client interface {
	// SignIn exchanges credentials for a bearer token.
	SignIn(ctx context.Context, email string, password []byte) (string, error)

	// SignUp creates a new applicant account.
	SignUp(ctx context.Context, req *SignupRequest) error

	// Me fetches the profile of the user the current token belongs to.
	Me(ctx context.Context) (*models.Profile, error)

	// UpdateProfile applies a partial profile update.
	UpdateProfile(ctx context.Context, upd *models.ProfileUpdate) (string, error)

	// UploadResume uploads a PDF resume for the current user.
	UploadResume(ctx context.Context, filename string, r io.Reader) (string, error)

	// AdminCheck verifies with the server that the current token belongs
	// to an admin. Non-admins get a 403.
	AdminCheck(ctx context.Context) error

	// ListUsers fetches the full moderation list (admin only).
	ListUsers(ctx context.Context) ([]models.UserRecord, error)

	// BlockUser, UnblockUser, and RemoveUser apply moderation actions and
	// return the server's confirmation message.
	BlockUser(ctx context.Context, email string) (string, error)
	UnblockUser(ctx context.Context, email string) (string, error)
	RemoveUser(ctx context.Context, email string) (string, error)
}

// TokenSource supplies the bearer token for authorized requests.
// The session store is the production implementation.
type TokenSource interface {
	Token() string
}
