package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("config file", "doctests.toml"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("timeout", "timeout must be positive"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("config file", "doctests.toml"),
			target:    ErrValidation,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	err := NotFound("config file", "doctests.toml")
	if got, want := err.Error(), "config file not found at doctests.toml"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	verr := ValidationFailed("unknown_language", `must be "skip" or "fail"`)
	if verr.Field != "unknown_language" {
		t.Errorf("Field = %q, want %q", verr.Field, "unknown_language")
	}
}
