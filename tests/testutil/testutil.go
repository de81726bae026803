package testutil

import (
	"os"
	"testing"
)

// The suites run against in-memory sqlite, but config.Load picks its .env
// file by GO_ENV, so every suite pins GO_ENV=test first. That steers any
// config load inside a test run to .env.test instead of a developer's local
// database settings.

// MustSetTestEnvironment forces GO_ENV=test for the current process. Call it
// at the top of suite SetupSuite functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("could not set GO_ENV=test: %v", err)
	}
	RequireTestEnvironment(t)
}

// RequireTestEnvironment fails the test unless GO_ENV is "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Fatalf("tests must run with GO_ENV=test, got %q", env)
	}
}
