// Package validate performs client-side field checks mirroring the
// server's signup rules, so obviously bad input never reaches the
// network.
package validate

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/careerrise/careerctl/internal/api"
)

var graduationYearPattern = regexp.MustCompile(`^20[2-3][0-9]$`)

var educationLevels = []interface{}{"school", "college", "university"}

var graduationMonths = []interface{}{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Signup checks a signup request against the platform's field rules.
// The returned error, if any, is a validation.Errors map keyed by field.
func Signup(req *api.SignupRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.About, validation.Required, validation.Length(5, 500)),
		validation.Field(&req.EducationLevel, validation.Required, validation.In(educationLevels...)),
		validation.Field(&req.InstitutionName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Major, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.GraduationMonth, validation.Required, validation.In(graduationMonths...)),
		validation.Field(&req.GraduationYear, validation.Required, validation.Match(graduationYearPattern)),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 0)),
	)
}

// Fields flattens a validation error into displayable field messages.
func Fields(err error) map[string]string {
	errs, ok := err.(validation.Errors)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(errs))
	for field, ferr := range errs {
		out[field] = ferr.Error()
	}
	return out
}
