// Package testkit holds assertions shared by package tests.
package testkit

import (
	"strings"
	"testing"
)

func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic, got none")
		}
	}()
	fn()
}

// MustContain fails with the whole output when needle is missing from it.
func MustContain(t *testing.T, output, needle string) {
	t.Helper()
	if !strings.Contains(output, needle) {
		t.Fatalf("output does not contain %q:\n%s", needle, output)
	}
}
