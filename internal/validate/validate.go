// Package validate holds the signup form's field validators.
//
// Validators are pure functions over the field's current text. Email and
// Password never trim or fold case before checking; what the user typed is
// what is checked.
package validate

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	EmailMessage    = "Please enter a valid email address"
	PasswordMessage = "Password is required"
)

// The local part and the domain are each one or more characters that are
// neither whitespace nor '@'. No dot is required in the domain. The class
// matches exactly the runes isSpace reports.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+$`)

// Result is the outcome of checking one field. Message is empty when OK.
type Result struct {
	OK      bool
	Message string
}

func Valid() Result { return Result{OK: true} }

func Invalid(message string) Result { return Result{Message: message} }

// Func checks a single field value.
type Func func(string) Result

func Email(s string) Result {
	if emailPattern.MatchString(s) {
		return Valid()
	}
	return Invalid(EmailMessage)
}

// Password only requires a non-empty value. Whitespace counts.
func Password(s string) Result {
	if len(s) > 0 {
		return Valid()
	}
	return Invalid(PasswordMessage)
}

// DisplayName trims raw and reports false when no display name was given,
// which covers nil, empty and whitespace-only input.
func DisplayName(raw *string) (string, bool) {
	if raw == nil {
		return "", false
	}
	s := strings.TrimFunc(*raw, isSpace)
	if s == "" {
		return "", false
	}
	return s, true
}

const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
)

var fields = map[string]Func{
	FieldEmail:    Email,
	FieldPassword: Password,
}

// Lookup returns the validator registered for a form field.
func Lookup(field string) (Func, bool) {
	fn, ok := fields[field]
	return fn, ok
}

// isSpace is the whitespace set shared by Email and DisplayName: ASCII
// \t \n \v \f \r and space, Unicode separators, and the U+FEFF byte order mark.
// U+0085 is not whitespace here.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Z, r)
}
