// Package osutil holds operating system constants
package osutil

const Windows = "windows"

// ExitCode is a process exit status.
type ExitCode int

const ExitError ExitCode = 1
