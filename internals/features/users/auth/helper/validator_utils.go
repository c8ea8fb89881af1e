package helpers

import (
	"errors"
	"regexp"
	"strings"
)

var (
	reLetter = regexp.MustCompile(`[A-Za-z]`)
	reNumber = regexp.MustCompile(`[0-9]`)
	reEmail  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

const MinPasswordLen = 8

func isAlphaNumeric(s string) bool {
	return reLetter.MatchString(s) && reNumber.MatchString(s)
}

func IsValidEmail(email string) bool {
	return reEmail.MatchString(strings.TrimSpace(email))
}

// ValidatePassword: at least 8 characters with letters and digits.
func ValidatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	if !isAlphaNumeric(pw) {
		return errors.New("password must contain letters and numbers")
	}
	return nil
}

func ValidateLoginInput(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return errors.New("email and password are required")
	}
	if !IsValidEmail(email) {
		return errors.New("invalid email format")
	}
	return nil
}

func ValidateRegisterSchoolInput(schoolName, adminName, email, password string) error {
	if strings.TrimSpace(schoolName) == "" || strings.TrimSpace(adminName) == "" {
		return errors.New("school name and admin name are required")
	}
	if !IsValidEmail(email) {
		return errors.New("invalid email format")
	}
	return ValidatePassword(password)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
