package utils

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

var (
	usernameRegex = regexp.MustCompile(`^[\p{L}\p{N}_ .'-]{3,32}$`)
	dateRegex     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidateUsername validates username format
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len([]rune(username)) < 3 || len([]rune(username)) > 32 {
		return errors.New("username must be between 3 and 32 characters")
	}
	if !usernameRegex.MatchString(username) {
		return errors.New("username can only contain letters, numbers, spaces, and . _ ' -")
	}
	return nil
}

// ValidatePassword validates password format
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

// ValidateEmail validates a bare email address
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("please enter a valid email")
	}
	return nil
}

// ValidateDate validates a calendar date in YYYY-MM-DD format
func ValidateDate(date string) error {
	if !dateRegex.MatchString(date) {
		return errors.New("please enter a valid date in YYYY-MM-DD format")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return errors.New("please enter a valid date in YYYY-MM-DD format")
	}
	return nil
}

// CleanIDs trims ids and drops empty and repeated values, keeping order
func CleanIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
