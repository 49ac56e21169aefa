package services

import (
	"regexp"
	"strings"
)

const passwordSymbols = "@$!%*?#&"

var (
	phonePattern    = regexp.MustCompile(`^\d{10}$`)
	passwordCharset = regexp.MustCompile(`^[A-Za-z\d@$!%*?#&]{8,72}$`)
	hasLower        = regexp.MustCompile(`[a-z]`)
	hasUpper        = regexp.MustCompile(`[A-Z]`)
	hasDigit        = regexp.MustCompile(`\d`)
)

func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// IsValidPassword requires 8 to 72 characters drawn from letters, digits
// and @$!%*?#&, with at least one of each class. 72 is the bcrypt input limit.
func IsValidPassword(password string) bool {
	return passwordCharset.MatchString(password) &&
		hasLower.MatchString(password) &&
		hasUpper.MatchString(password) &&
		hasDigit.MatchString(password) &&
		strings.ContainsAny(password, passwordSymbols)
}
