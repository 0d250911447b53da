package validation

import (
	"regexp"
	"strings"
)

// tokenPattern defines the valid share token format: base64url, no padding.
var tokenPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// emailPattern is a pragmatic email shape check, not an RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateToken checks if a token matches the expected share token shape.
// Tokens are 43 characters of base64url (32 random bytes), but older tokens
// may differ in length, so only the alphabet and a sane bound are enforced.
func ValidateToken(token string) bool {
	if len(token) < 16 || len(token) > 128 {
		return false
	}
	return tokenPattern.MatchString(token)
}

// ValidateEmail checks if an email address has a plausible shape.
func ValidateEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	return emailPattern.MatchString(email)
}

// NormalizeEmail lowercases and trims an email so stored client identities
// compare consistently.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateClientInfo checks a visitor-supplied name and email pair.
// Returns ok and a message describing the first problem found.
func ValidateClientInfo(name, email string) (bool, string) {
	if strings.TrimSpace(name) == "" {
		return false, "name is required"
	}
	if len(name) > 200 {
		return false, "name is too long"
	}
	if !ValidateEmail(email) {
		return false, "a valid email address is required"
	}
	return true, ""
}

// ValidateExpiryHours checks a requested share lifetime in hours.
// Zero means "use the default" and is allowed; negative values are not.
func ValidateExpiryHours(hours float64) bool {
	return hours >= 0
}

// ValidateAllowedViews checks a requested view cap. Nil (unlimited) is handled
// by the caller; an explicit cap must be positive.
func ValidateAllowedViews(views int) bool {
	return views > 0
}
