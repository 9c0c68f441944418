package apperr

import (
	"errors"
	"fmt"
	"testing"
)

var errCodeTest = NewErrorCode("test_kind", "Test kind", 1, 0)

func TestIsMatchesByCode(t *testing.T) {
	sentinel := errCodeTest.Err()
	err := fmt.Errorf("outer: %w", New(errCodeTest).WithMessage("custom"))
	if !errors.Is(err, sentinel) {
		t.Fatalf("errors.Is did not match by code")
	}
	if errors.Is(err, ErrorCodeInternal.Err()) {
		t.Fatalf("matched a different code")
	}
	if !HasCode(err, errCodeTest) {
		t.Fatalf("HasCode = false")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("socket closed")
	err := New(errCodeTest).Wrap(cause)
	if !errors.Is(err, cause) {
		t.Fatalf("cause not reachable")
	}
	if got := err.Error(); got != "Test kind: socket closed" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil) != nil {
		t.Fatalf("FromError(nil) != nil")
	}
	ae := New(errCodeTest).WithStatus(418)
	if got := FromError(fmt.Errorf("x: %w", ae)); got != ae {
		t.Fatalf("FromError did not unwrap")
	}
	if got := FromError(errors.New("plain")); got.Code != ErrorCodeInternal.Code() {
		t.Fatalf("plain error code = %s", got.Code)
	}
}

func TestSuggestions(t *testing.T) {
	ae := New(ErrorCodeValidationFail).AddSuggestion("timeout", "must be positive")
	if !ae.HasErrors() || len(ae.Suggestions) != 1 || ae.Suggestions[0].Field != "timeout" {
		t.Fatalf("suggestions = %+v", ae.Suggestions)
	}
	if HasError(&AppError{}) {
		t.Fatalf("empty AppError reported as error")
	}
}
