// Package validation holds the pure input validators for the auth flows.
// Every function is stateless and side-effect free; composite validators
// return a Result instead of an error so all problems surface at once.
package validation

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	// Optional "+" and 1-3 digit country code, then exactly 10 digits.
	phoneRe = regexp.MustCompile(`^(\+\d{1,3}[- ]?)?\d{10}$`)
)

const minPasswordLen = 6

func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

func ValidPassword(password string) bool {
	return len(password) >= minPasswordLen
}

func ValidName(name string) bool {
	return len(strings.TrimSpace(name)) >= 2
}

// Sanitize trims surrounding whitespace from a user-supplied string.
func Sanitize(s string) string {
	return strings.TrimSpace(s)
}

// Result is the outcome of a composite validation. Errors keeps the order in
// which the checks ran.
type Result struct {
	Valid  bool
	Errors []string
}

func (r Result) Message() string {
	return strings.Join(r.Errors, ", ")
}

// Registration carries the fields checked before creating an account.
type Registration struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

func ValidateRegistration(in Registration) Result {
	var errs []string

	if !ValidName(in.Name) {
		errs = append(errs, "Name must be at least 2 characters long")
	}
	errs = append(errs, identityErrors(in.Email, in.Phone)...)
	if !ValidPassword(in.Password) {
		errs = append(errs, "Password must be at least 6 characters long")
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Login carries the fields checked before authenticating.
type Login struct {
	Email    string
	Phone    string
	Password string
}

func ValidateLogin(in Login) Result {
	var errs []string

	errs = append(errs, identityErrors(in.Email, in.Phone)...)
	if in.Password == "" {
		errs = append(errs, "Password is required")
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func identityErrors(email, phone string) []string {
	var errs []string
	if email == "" && phone == "" {
		errs = append(errs, "Either email or phone number is required")
	}
	if email != "" && !ValidEmail(email) {
		errs = append(errs, "Please provide a valid email address")
	}
	if phone != "" && !ValidPhone(phone) {
		errs = append(errs, "Please provide a valid phone number")
	}
	return errs
}
