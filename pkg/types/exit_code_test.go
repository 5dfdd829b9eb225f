// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     ExitCode
		wantValid bool
	}{
		{name: "success", value: ExitSuccess, wantValid: true},
		{name: "failure", value: ExitFailure, wantValid: true},
		{name: "warnings", value: ExitWarnings, wantValid: true},
		{name: "255 is valid", value: 255, wantValid: true},
		{name: "negative is invalid", value: -1, wantValid: false},
		{name: "256 is invalid", value: 256, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err == nil) != tt.wantValid {
				t.Fatalf("ExitCode(%d).Validate() error = %v, wantValid %v", tt.value, err, tt.wantValid)
			}
			if !tt.wantValid && !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("error does not wrap ErrInvalidExitCode: %v", err)
			}
		})
	}
}

func TestExitCode_IsSuccessAndString(t *testing.T) {
	t.Parallel()

	if !ExitSuccess.IsSuccess() || ExitWarnings.IsSuccess() {
		t.Error("only ExitSuccess is a success")
	}
	if ExitWarnings.String() != "2" {
		t.Errorf("String() = %q, want 2", ExitWarnings.String())
	}
	var invalid *InvalidExitCodeError
	if !errors.As(ExitCode(300).Validate(), &invalid) || invalid.Value != 300 {
		t.Error("expected InvalidExitCodeError carrying the value")
	}
}
