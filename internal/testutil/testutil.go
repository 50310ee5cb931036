// Package testutil provides shared helpers for tramp tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dgerlanc/tramp/internal/constants"
)

// WriteConfig writes content as dir/.tramp.toml and returns its path.
func WriteConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, constants.ConfigFileName)
	if err := os.WriteFile(path, []byte(content), constants.FileMode); err != nil {
		t.Fatal(err)
	}
	return path
}

// WriteScript writes an executable shell script into dir and returns its
// path.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

// IsolateUserConfig points the user config lookup at a path under the
// test's control so tests never read the real ~/.tramp.toml. The file is
// only created when content is non-empty. Returns the path.
func IsolateUserConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "user.tramp.toml")
	t.Setenv(constants.EnvUserConfig, path)
	if content != "" {
		if err := os.WriteFile(path, []byte(content), constants.FileMode); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

// BoundedConfig is a minimal config that stops the cascade at its own
// directory, keeping tests hermetic no matter where they run.
const BoundedConfig = "root = true\n"
