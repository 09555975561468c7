package changelog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ErrMalformed marks input that is not a well-formed releases document.
var ErrMalformed = errors.New("malformed releases document")

// ValidationError represents a releases validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Warning is a non-fatal finding reported by Lint.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// Load reads and validates a releases file from the given path.
// Both YAML and JSON files are accepted.
func Load(path string) ([]Release, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening releases file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(f)
}

// LoadFromReader reads and validates releases from r. The document is either
// a mapping with a "releases" list or a bare list of releases.
func LoadFromReader(r io.Reader) ([]Release, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{Message: "releases document is empty"}
		}
		return nil, fmt.Errorf("parsing releases YAML: %w: %w", ErrMalformed, err)
	}

	releases, err := decodeReleases(&root)
	if err != nil {
		return nil, fmt.Errorf("parsing releases YAML: %w: %w", ErrMalformed, err)
	}

	if err := Validate(releases); err != nil {
		return nil, err
	}

	return releases, nil
}

// decodeReleases decodes either document shape.
func decodeReleases(root *yaml.Node) ([]Release, error) {
	node := root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	if node.Kind == yaml.SequenceNode {
		var releases []Release
		if err := node.Decode(&releases); err != nil {
			return nil, err
		}
		return releases, nil
	}

	var doc Document
	if err := node.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Releases, nil
}

// Validate checks the structural constraints of a release list.
// Returns nil if valid, or a ValidationError describing the first problem.
func Validate(releases []Release) error {
	unreleasedCount := 0
	seen := make(map[string]bool)

	for i, rel := range releases {
		if err := validateRelease(&rel, i); err != nil {
			return err
		}

		normalized := NormalizeVersion(rel.Name)
		if seen[normalized] {
			return &ValidationError{
				Field:   fmt.Sprintf("releases[%d].name", i),
				Message: fmt.Sprintf("duplicate release %q", rel.Name),
			}
		}
		seen[normalized] = true

		if rel.IsUnreleased() {
			unreleasedCount++
		}
	}

	if unreleasedCount > 1 {
		return &ValidationError{
			Field:   "releases",
			Message: "only one 'unreleased' release is allowed",
		}
	}

	return nil
}

// validateRelease checks a single release entry.
func validateRelease(rel *Release, index int) error {
	if strings.TrimSpace(rel.Name) == "" {
		return &ValidationError{
			Field:   fmt.Sprintf("releases[%d].name", index),
			Message: "required field is empty",
		}
	}

	if rel.Date != "" && !datePattern.MatchString(rel.Date) {
		return &ValidationError{
			Field:   fmt.Sprintf("releases[%d].date", index),
			Message: fmt.Sprintf("invalid date format %q (expected: YYYY-MM-DD)", rel.Date),
		}
	}

	for j, c := range rel.Commits {
		if c.GitHubIssue != nil && c.GitHubIssue.User.Login == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("releases[%d].commits[%d].githubIssue.user.login", index, j),
				Message: "required field is empty",
			}
		}
	}

	for j, c := range rel.Contributors {
		if c.Login == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("releases[%d].contributors[%d].login", index, j),
				Message: "required field is empty",
			}
		}
	}

	return nil
}

// Lint reports problems that do not prevent rendering but usually indicate
// a mistake upstream: release names that are not semantic versions, commits
// without categories, and commits without a linked issue.
func Lint(releases []Release) []Warning {
	var warnings []Warning

	for i, rel := range releases {
		if !rel.IsUnreleased() {
			if _, err := semver.NewVersion(rel.Name); err != nil {
				warnings = append(warnings, Warning{
					Field:   fmt.Sprintf("releases[%d].name", i),
					Message: fmt.Sprintf("%q is not a semantic version", rel.Name),
				})
			}
		}

		for j, c := range rel.Commits {
			field := fmt.Sprintf("releases[%d].commits[%d]", i, j)
			if len(c.Categories) == 0 {
				warnings = append(warnings, Warning{Field: field, Message: "no categories; commit is never rendered"})
			}
			if c.GitHubIssue == nil {
				warnings = append(warnings, Warning{Field: field, Message: "no linked issue; commit renders no line"})
			}
		}
	}

	return warnings
}

// NormalizeVersion normalizes a release name by lowercasing it and removing
// the "v" prefix, so "v0.6.0" and "0.6.0" compare equal.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(version), "v")
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
