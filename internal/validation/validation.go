// Package validation implements field validation for registration and post
// input. Rules collect every violation before reporting so clients see the
// full list at once.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"waypost/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	MinPasswordLength = 6
	MinTitleLength    = 5
	MinContentLength  = 5
)

// ValidEmail reports whether s is a syntactically plausible email address.
func ValidEmail(s string) bool {
	return emailRegex.MatchString(strings.TrimSpace(s))
}

// UserInput collects all violations for a registration request.
func UserInput(email, password string) []models.FieldError {
	var errs []models.FieldError
	if !ValidEmail(email) {
		errs = append(errs, models.FieldError{Message: "Email is invalid."})
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs = append(errs, models.FieldError{Message: "Password too short!"})
	}
	return errs
}

// PostInput collects all violations for post creation or update.
func PostInput(title, content string) []models.FieldError {
	var errs []models.FieldError
	if utf8.RuneCountInString(strings.TrimSpace(title)) < MinTitleLength {
		errs = append(errs, models.FieldError{Message: "Title is invalid."})
	}
	if utf8.RuneCountInString(strings.TrimSpace(content)) < MinContentLength {
		errs = append(errs, models.FieldError{Message: "Content is invalid."})
	}
	return errs
}
