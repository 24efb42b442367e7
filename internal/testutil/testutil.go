// Package testutil holds helpers shared by package tests
package testutil

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"testing"

	"github.com/ayoisaiah/focusring/internal/osutil"
)

// CopyFile copies the fixture at src to dst.
func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination file: %w", err)
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return fmt.Errorf("copying file: %w", err)
	}

	return nil
}

// SkipOnWindows skips tests that depend on POSIX process behaviour.
func SkipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		t.Skip("skipping on Windows")
	}
}
