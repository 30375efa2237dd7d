// Package validate holds the pure input validators run before any credential
// reaches storage or bcrypt. Every function checks all fields independently
// and returns the aggregated field errors, so a caller surfaces every problem
// in one response instead of failing on the first.
package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/peanutblog/blog-api/internal/core/domain"
)

const (
	UsernameMinLength = 6
	UsernameMaxLength = 30
	EmailMaxLength    = 255
	PasswordMinLength = 8
	// PasswordMaxLength is bcrypt's hard input limit. Hashing anything
	// longer fails outright, so it is rejected here as a field error
	// instead. Measured in bytes, which is what bcrypt counts.
	PasswordMaxLength = 72
)

var valid = validator.New()

// Login checks a user login submission: both fields present and non-blank.
func Login(username, password string) domain.FieldErrors {
	errs := domain.FieldErrors{}

	if strings.TrimSpace(username) == "" {
		errs["username"] = "Username must not be empty"
	}
	if strings.TrimSpace(password) == "" {
		errs["password"] = "Password must not be empty"
	}

	return errs
}

// AdminCredentials checks the username/password pair submitted on admin
// login, creation and update.
func AdminCredentials(username, password string) domain.FieldErrors {
	errs := domain.FieldErrors{}

	if strings.TrimSpace(username) == "" {
		errs["username"] = "Username must not be empty"
	}
	if strings.TrimSpace(password) == "" {
		errs["password"] = "Password must not be empty"
	} else if len(password) > PasswordMaxLength {
		errs["password"] = fmt.Sprintf("Password must be at most %d characters long", PasswordMaxLength)
	}

	return errs
}

// Register checks a user registration submission.
func Register(username, password, confirmPassword, email string) domain.FieldErrors {
	errs := domain.FieldErrors{}

	if msg := usernameError(username); msg != "" {
		errs["username"] = msg
	}
	if msg := emailError(email); msg != "" {
		errs["email"] = msg
	}
	if msg := passwordError(password); msg != "" {
		errs["password"] = msg
	}

	if strings.TrimSpace(confirmPassword) == "" {
		errs["confirmPassword"] = "Confirmed password must not be empty"
	} else if password != "" && password != confirmPassword {
		errs["confirmPassword"] = "Passwords must match"
	}

	return errs
}

func usernameError(username string) string {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return "Username must not be empty"
	}
	switch n := utf8.RuneCountInString(trimmed); {
	case n < UsernameMinLength:
		return fmt.Sprintf("Username must be at least %d characters long", UsernameMinLength)
	case n > UsernameMaxLength:
		return fmt.Sprintf("Username must be at most %d characters long", UsernameMaxLength)
	}
	for _, r := range trimmed {
		if !asciiWordRune(r) {
			return "Username may only contain letters, digits and underscores"
		}
	}
	return ""
}

// asciiWordRune restricts usernames to the ASCII word characters. Unicode
// letter classes are deliberately not consulted: fullwidth and non-Latin
// digits or letters must not pass.
func asciiWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '_'
}

func emailError(email string) string {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "Email must not be empty"
	}
	if utf8.RuneCountInString(trimmed) > EmailMaxLength {
		return fmt.Sprintf("Email must be at most %d characters long", EmailMaxLength)
	}
	if err := valid.Var(trimmed, "email"); err != nil {
		return "Email must be a valid email address"
	}
	return ""
}

func passwordError(password string) string {
	if strings.TrimSpace(password) == "" {
		return "Password must not be empty"
	}
	if utf8.RuneCountInString(password) < PasswordMinLength {
		return fmt.Sprintf("Password must be at least %d characters long", PasswordMinLength)
	}
	if len(password) > PasswordMaxLength {
		return fmt.Sprintf("Password must be at most %d characters long", PasswordMaxLength)
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return "Password must contain lowercase, uppercase, digit and symbol characters"
	}
	return ""
}
