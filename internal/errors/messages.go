package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the relnotes CLI.

// InputNotFound creates an error for a missing releases file.
func InputNotFound(path string) *CLIError {
	return NewInputError(
		fmt.Sprintf("releases file not found: %s", path),
		"Pass the releases file as an argument: relnotes render releases.yaml",
		"Or set 'input' in .relnotes/config.yml",
		"Create an example file with: relnotes init",
	)
}

// InvalidInput creates an error for a releases document that fails to parse or validate.
func InvalidInput(err error) *CLIError {
	return WrapWithMessage(err, Input,
		"invalid releases document",
		"Run 'relnotes check' for details",
		"Release names must be unique and at most one release may be \"unreleased\"",
	)
}

// RemoteFetchFailed creates an error when a remote releases document cannot be fetched.
func RemoteFetchFailed(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"could not fetch remote input",
		"Check your network connection and the URL",
		"Increase the timeout: RELNOTES_REMOTE_TIMEOUT=30s",
	)
}

// ConfigInvalid creates an error for a config file that cannot be loaded.
func ConfigInvalid(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to load configuration",
		"Check .relnotes/config.yml for YAML syntax errors",
		"Show the effective values with: relnotes config show",
		"Reset to defaults with: relnotes init --force",
	)
}

// ReleaseNotFound creates an error when a named release doesn't exist.
func ReleaseNotFound(name string, available []string) *CLIError {
	remediation := []string{"Release names are matched without a leading 'v'"}
	if len(available) > 0 {
		remediation = append(remediation, "Available releases: "+strings.Join(available, ", "))
	}
	return NewArgumentError(fmt.Sprintf("release not found: %s", name), remediation...)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'relnotes <command> --help' to see valid options",
	)
}

// FileNotWritable creates an error when a file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}

// FileExists creates an error when init would overwrite an existing file.
func FileExists(path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("file already exists: %s", path),
		"Use --force to overwrite it",
	)
}
