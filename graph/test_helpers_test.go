package graph_test

import (
	"errors"
	"testing"
)

// MustErrorNil fails the test immediately if err is non-nil.
func MustErrorNil(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: expected nil error, got %v", context, err)
	}
}

// MustErrorIs fails the test unless errors.Is(err, target) holds.
func MustErrorIs(t *testing.T, err error, target error, context string) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("%s: expected error wrapping %v, got %v", context, target, err)
	}
}
