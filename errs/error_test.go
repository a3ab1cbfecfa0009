package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	if got := ErrorCode(nil); got != "" {
		t.Errorf("nil error: got %q, want empty code", got)
	}
	if got := ErrorCode(Errorf(ENOTFOUND, "gone")); got != ENOTFOUND {
		t.Errorf("got %q, want %q", got, ENOTFOUND)
	}
	if got := ErrorCode(errors.New("boom")); got != EINTERNAL {
		t.Errorf("plain error: got %q, want %q", got, EINTERNAL)
	}
	wrapped := fmt.Errorf("context: %w", Errorf(EINVALID, "bad input"))
	if got := ErrorCode(wrapped); got != EINVALID {
		t.Errorf("wrapped error: got %q, want %q", got, EINVALID)
	}
}

func TestErrorMessage(t *testing.T) {
	if got := ErrorMessage(nil); got != "" {
		t.Errorf("nil error: got %q, want empty message", got)
	}
	if got := ErrorMessage(Errorf(EINVALID, "field %s is bad", "text")); got != "field text is bad" {
		t.Errorf("got %q", got)
	}
	// Internals never leak to the user.
	if got := ErrorMessage(errors.New("pq: connection refused")); got != "An internal error has occurred." {
		t.Errorf("plain error: got %q", got)
	}
}
