package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotConfigured,
		ErrUnauthorized,
		ErrUnknownStatus,
		ErrOrderNotFound,
		ErrMentionMissing,
		ErrPlatformUnavailable,
	}

	for i, a := range sentinels {
		if a == nil {
			t.Fatalf("sentinel %d is nil", i)
		}
		for j, b := range sentinels {
			if i != j && stdErrors.Is(a, b) {
				t.Fatalf("sentinels %v and %v must not match", a, b)
			}
		}
	}
}

func TestWrappedSentinelMatches(t *testing.T) {
	wrapped := fmt.Errorf("%w: order 42", ErrOrderNotFound)
	if !stdErrors.Is(wrapped, ErrOrderNotFound) {
		t.Fatal("expected wrapped error to match sentinel")
	}
	if stdErrors.Is(wrapped, ErrUnauthorized) {
		t.Fatal("wrapped error must not match unrelated sentinel")
	}
}
