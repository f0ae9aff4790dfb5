package usecase

import (
	"strings"

	"memberhub/internal/accounts/domain/model"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// SignupForm is the typed, constrained record produced from the signup
// submission before any handler logic runs.
type SignupForm struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate runs the signup schema: alphanumeric name up to 20 characters,
// valid email up to 30, password up to 20, all required.
func (f SignupForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required,
			validation.Length(1, model.MaxNameLength),
			is.Alphanumeric,
		),
		validation.Field(&f.Email,
			validation.Required,
			validation.Length(1, model.MaxEmailLength),
			is.Email,
		),
		validation.Field(&f.Password,
			validation.Required,
			validation.Length(1, model.MaxPasswordLength),
		),
	)
}

// LoginForm is the typed record produced from the login submission. Same
// email and password shapes as signup, no name field.
type LoginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate runs the login schema.
func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email,
			validation.Required,
			validation.Length(1, model.MaxEmailLength),
			is.Email,
		),
		validation.Field(&f.Password,
			validation.Required,
			validation.Length(1, model.MaxPasswordLength),
		),
	)
}

// normalizeEmail canonicalizes an email for use as the directory key.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
