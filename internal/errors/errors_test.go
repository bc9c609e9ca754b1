package errors

import (
	stderrors "errors"
	"testing"
)

func TestExitErrorMessage(t *testing.T) {
	err := NewExitError(New("boom"), ExitSystem)
	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "boom")
	}
	if err.Code != ExitSystem {
		t.Errorf("Code = %d, want %d", err.Code, ExitSystem)
	}
}

func TestExitErrorNilUnderlying(t *testing.T) {
	err := NewExitError(nil, ExitUser)
	if err.Error() != "exit code 1" {
		t.Errorf("Error() = %q, want %q", err.Error(), "exit code 1")
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	err := NewUserError(ErrInvalidConfig, "run: agentcfg validate")

	if !stderrors.Is(err, ErrInvalidConfig) {
		t.Error("errors.Is should find ErrInvalidConfig through ExitError")
	}

	var exitErr *ExitError
	if !stderrors.As(err, &exitErr) {
		t.Fatal("errors.As should extract *ExitError")
	}
	if exitErr.Suggestion != "run: agentcfg validate" {
		t.Errorf("Suggestion = %q", exitErr.Suggestion)
	}
}

func TestExitErrorWrappingChain(t *testing.T) {
	inner := Wrap(ErrNotFound, "loading config")
	err := NewExitErrorWithSuggestion(inner, ExitSystem, "check the path")

	if !stderrors.Is(err, ErrNotFound) {
		t.Error("errors.Is should find ErrNotFound through the chain")
	}
}

func TestExitCodesDistinct(t *testing.T) {
	codes := []int{ExitSuccess, ExitUser, ExitSystem, ExitParse,
		ExitValidation, ExitExpansion, ExitTransform, ExitPartial}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Fatalf("exit code %d assigned twice", c)
		}
		seen[c] = true
	}
}
