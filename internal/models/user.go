package models

import (
	"encoding/json"
	"time"
)

// Timestamp decodes the server's ISO-8601 timestamps. The server emits
// them without a timezone offset (e.g. "2026-09-01T10:20:30.123456");
// such values are implicitly UTC. Offsets are accepted when present.
type Timestamp struct {
	time.Time
}

const isoLayout = "2006-01-02T15:04:05"

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
		return nil
	}
	// time.Parse reads a fractional second after the seconds field even
	// when the layout carries none, and defaults the location to UTC.
	parsed, err := time.Parse(isoLayout, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Role is the server-assigned user role. The platform only knows two.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleAdmin     Role = "admin"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Profile is the signed-in user's own record as returned by GET /me.
// Field names follow the server's JSON contract (a mix of camelCase form
// fields and snake_case bookkeeping columns).
type Profile struct {
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	About           string     `json:"about"`
	EducationLevel  string     `json:"educationLevel"`
	InstitutionName string     `json:"institutionName"`
	Major           string     `json:"major"`
	GraduationMonth string     `json:"graduationMonth"`
	GraduationYear  string     `json:"graduationYear"`
	Role            Role       `json:"role"`
	IsBlocked       bool       `json:"is_blocked"`
	CreatedAt       Timestamp  `json:"created_at"`
	LastLogin       *Timestamp `json:"last_login"`
	// Resume holds the base64-encoded document when one has been uploaded.
	Resume string `json:"resume,omitempty"`
}

// HasResume reports whether a resume document is on file.
func (p *Profile) HasResume() bool {
	return p.Resume != ""
}

// UserRecord is a row in the admin moderation list. Email is the identity
// key; the server guarantees uniqueness.
type UserRecord struct {
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	IsBlocked bool       `json:"is_blocked"`
	CreatedAt Timestamp  `json:"created_at"`
	LastLogin *Timestamp `json:"last_login"`
}

// ProfileUpdate carries the optional fields accepted by PUT /me.
// Nil fields are omitted from the request.
type ProfileUpdate struct {
	Name            *string `json:"name,omitempty"`
	About           *string `json:"about,omitempty"`
	EducationLevel  *string `json:"educationLevel,omitempty"`
	InstitutionName *string `json:"institutionName,omitempty"`
	Major           *string `json:"major,omitempty"`
	GraduationMonth *string `json:"graduationMonth,omitempty"`
	GraduationYear  *string `json:"graduationYear,omitempty"`
}
