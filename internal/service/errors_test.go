package service

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "times", Message: "Start and End times required"}

	got := err.Error()
	if !strings.Contains(got, "times") || !strings.Contains(got, "Start and End times required") {
		t.Errorf("Error() = %q, want field and message included", got)
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		msg     string
		wantNil bool
	}{
		{
			name: "wraps non-nil error",
			err:  ErrClipNotFound,
			msg:  "failed to fetch clip",
		},
		{
			name:    "nil error stays nil",
			err:     nil,
			msg:     "ignored",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.err, tt.msg)
			if tt.wantNil {
				if got != nil {
					t.Errorf("WrapError() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("WrapError() lost the wrapped error: %v", got)
			}
			if !strings.Contains(got.Error(), tt.msg) {
				t.Errorf("WrapError() = %q, want message %q included", got.Error(), tt.msg)
			}
		})
	}
}
