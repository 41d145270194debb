package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "GET %s", "/courses")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeParse, "test"),
			code:     ErrCodeParse,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeParse, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "outer code",
			err:      Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeNetwork,
			expected: true,
		},
		{
			name:     "inner code",
			err:      Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("listing: %w", New(ErrCodeHTTP, "GET /courses")),
			code:     ErrCodeHTTP,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeParse, "x")); got != ErrCodeParse {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeParse)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeParse, "bad course payload"), "bad course payload"},
		{"plain", errors.New("boom"), "boom"},
		{
			"http status",
			Wrap(ErrCodeHTTP, &HTTPError{StatusCode: 502, URL: "/courses"}, "GET /courses"),
			"GET /courses (502 Bad Gateway)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPError(t *testing.T) {
	err := Wrap(ErrCodeNotFound, &HTTPError{StatusCode: 404, URL: "/courses/XXX"}, "GET /courses/XXX")

	if !IsHTTP(err) {
		t.Error("IsHTTP() = false, want true")
	}
	if got := StatusCode(err); got != 404 {
		t.Errorf("StatusCode() = %d, want 404", got)
	}
	if IsHTTP(New(ErrCodeNetwork, "dial")) {
		t.Error("IsHTTP() should be false without HTTPError")
	}
	if got := StatusCode(errors.New("plain")); got != 0 {
		t.Errorf("StatusCode() = %d, want 0", got)
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"empty", "", false},
		{"department", "CMSC", false},
		{"course list", "CMSC216,MATH140", false},
		{"professor", "Jane Smith", false},
		{"control char", "CMSC\x00", true},
		{"slash", "CMSC/216", true},
		{"traversal", "..", true},
		{"query", "CMSC?x=1", true},
		{"too long", string(make([]byte, 201)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput("field", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInput(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateSemester(t *testing.T) {
	for _, ok := range []string{"", "202508", "202412"} {
		if err := ValidateSemester(ok); err != nil {
			t.Errorf("ValidateSemester(%q) = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"2025", "2025-08", "fall25", "2025080"} {
		if err := ValidateSemester(bad); !Is(err, ErrCodeInvalidSemester) {
			t.Errorf("ValidateSemester(%q) = %v, want INVALID_SEMESTER", bad, err)
		}
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://api.umd.io/v1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "ftp://x", "api.umd.io"} {
		if err := ValidateURL(bad); err == nil {
			t.Errorf("ValidateURL(%q) should fail", bad)
		}
	}
}
