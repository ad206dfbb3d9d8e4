package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxEntryNameLength = 100

var (
	ErrNameEmpty   = errors.New("name cannot be empty")
	ErrNameTooLong = fmt.Errorf("name cannot exceed %d characters", maxEntryNameLength)
)

const forbiddenNameChars = `<>:"/\|?*`

// ValidateEntryName trims the candidate name and checks it against the
// rules the backend enforces for folders and renames. It returns the
// trimmed name so callers always send the canonical form.
func ValidateEntryName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrNameEmpty
	}
	if utf8.RuneCountInString(trimmed) > maxEntryNameLength {
		return "", ErrNameTooLong
	}
	if idx := strings.IndexAny(trimmed, forbiddenNameChars); idx >= 0 {
		return "", fmt.Errorf("name cannot contain %q", trimmed[idx])
	}
	return trimmed, nil
}

// ValidatePassword enforces the registration password policy: at least
// eight characters with an upper-case letter, a lower-case letter and a
// digit.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper {
		return errors.New("password must contain an uppercase letter")
	}
	if !hasLower {
		return errors.New("password must contain a lowercase letter")
	}
	if !hasDigit {
		return errors.New("password must contain a digit")
	}
	return nil
}

// ValidateEmail does a shape check only; the backend is the authority.
func ValidateEmail(email string) error {
	trimmed := strings.TrimSpace(email)
	at := strings.Index(trimmed, "@")
	if at < 1 || at == len(trimmed)-1 {
		return errors.New("invalid email address")
	}
	if !strings.Contains(trimmed[at+1:], ".") {
		return errors.New("invalid email address")
	}
	return nil
}
