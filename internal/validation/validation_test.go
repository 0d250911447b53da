package validation

import (
	"strings"
	"testing"
)

func TestValidateToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"typical token", "Ab3dEf6hIj9kLm2nOp5qRs8tUv1wXy4zAb3dEf6hIj9", true},
		{"minimum length", strings.Repeat("a", 16), true},
		{"with url-safe symbols", "abc_def-123_456-789a", true},
		{"too short", "short", false},
		{"too long", strings.Repeat("a", 129), false},
		{"empty", "", false},
		{"standard base64 chars", "abcdef+ghijkl/mnop", false},
		{"path traversal", "../../etc/passwd-xx", false},
		{"whitespace", "abcdef ghijkl mnopqr", false},
		{"sql injection", "' OR '1'='1;DROP TABLE x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateToken(tt.token); got != tt.want {
				t.Errorf("ValidateToken(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"alice@example.com", true},
		{"a.b+tag@sub.example.co.uk", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
		{strings.Repeat("a", 250) + "@x.io", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ValidateEmail(tt.email); got != tt.want {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("NormalizeEmail() = %q, want alice@example.com", got)
	}
}

func TestValidateClientInfo(t *testing.T) {
	tests := []struct {
		name      string
		infoName  string
		infoEmail string
		wantOK    bool
	}{
		{"valid pair", "Alice", "alice@example.com", true},
		{"missing name", "", "alice@example.com", false},
		{"whitespace name", "   ", "alice@example.com", false},
		{"bad email", "Alice", "nope", false},
		{"overlong name", strings.Repeat("x", 201), "alice@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := ValidateClientInfo(tt.infoName, tt.infoEmail)
			if ok != tt.wantOK {
				t.Errorf("ValidateClientInfo(%q, %q) = %v (%q), want ok=%v",
					tt.infoName, tt.infoEmail, ok, msg, tt.wantOK)
			}
			if !ok && msg == "" {
				t.Error("ValidateClientInfo() rejected without a message")
			}
		})
	}
}

func TestValidateExpiryHours(t *testing.T) {
	for _, hours := range []float64{0, 1, 168, 720.5} {
		if !ValidateExpiryHours(hours) {
			t.Errorf("ValidateExpiryHours(%v) = false, want true", hours)
		}
	}
	if ValidateExpiryHours(-1) {
		t.Error("ValidateExpiryHours(-1) = true, want false")
	}
}

func TestValidateAllowedViews(t *testing.T) {
	if !ValidateAllowedViews(1) || !ValidateAllowedViews(100) {
		t.Error("ValidateAllowedViews() rejected a positive cap")
	}
	if ValidateAllowedViews(0) || ValidateAllowedViews(-5) {
		t.Error("ValidateAllowedViews() accepted a non-positive cap")
	}
}
