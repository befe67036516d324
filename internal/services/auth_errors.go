package services

import "strings"

// AuthError is an authentication failure with a message fit for users
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// authMessages maps fragments of Firebase error messages (Admin SDK codes
// and Identity Toolkit REST codes) to friendly text. Order matters: the
// first matching fragment wins.
var authMessages = []struct {
	fragment string
	message  string
}{
	{"EMAIL_EXISTS", "This email is already in use"},
	{"email-already-exists", "This email is already in use"},
	{"email already exists", "This email is already in use"},
	{"INVALID_LOGIN_CREDENTIALS", "Invalid email or password"},
	{"EMAIL_NOT_FOUND", "Invalid email or password"},
	{"INVALID_PASSWORD", "Invalid email or password"},
	{"user-not-found", "Invalid email or password"},
	{"wrong-password", "Invalid email or password"},
	{"WEAK_PASSWORD", "Password should be at least 6 characters"},
	{"weak-password", "Password should be at least 6 characters"},
	{"INVALID_EMAIL", "Please enter a valid email"},
	{"invalid-email", "Please enter a valid email"},
	{"TOO_MANY_ATTEMPTS", "Too many attempts, please try again later"},
	{"USER_DISABLED", "This account has been disabled"},
	{"user-disabled", "This account has been disabled"},
	{"network", "Network error, please check your connection"},
}

// MapAuthError wraps err in an AuthError with a friendly message
func MapAuthError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, m := range authMessages {
		if strings.Contains(msg, m.fragment) {
			return &AuthError{Message: m.message, Err: err}
		}
	}
	return &AuthError{Message: "Authentication failed, please try again", Err: err}
}
