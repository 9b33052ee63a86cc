package session

import "strings"

// ValidationError is a form error shown to the user as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

const minPasswordLen = 6

// ValidateLogin checks the login form before any login is attempted.
// The password is required but never checked against anything.
func ValidateLogin(email, password string) error {
	if email == "" || password == "" {
		return &ValidationError{Message: "Please fill in all fields"}
	}
	if !strings.Contains(email, "@") {
		return &ValidationError{Message: "Please enter a valid email"}
	}
	return nil
}

// ValidateRegister checks the registration form. Registration then logs the
// user in with the email, exactly like login.
func ValidateRegister(name, email, password, confirm string) error {
	if name == "" || email == "" || password == "" || confirm == "" {
		return &ValidationError{Message: "Please fill in all fields"}
	}
	if !strings.Contains(email, "@") {
		return &ValidationError{Message: "Please enter a valid email"}
	}
	if len(password) < minPasswordLen {
		return &ValidationError{Message: "Password must be at least 6 characters"}
	}
	if password != confirm {
		return &ValidationError{Message: "Passwords do not match"}
	}
	return nil
}
