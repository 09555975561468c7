package changelog

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Releases is an ordered release list with lookup helpers.
type Releases []Release

// ReleaseNotFoundError is returned when a requested release doesn't exist.
type ReleaseNotFoundError struct {
	Name      string
	Available []string
}

func (e *ReleaseNotFoundError) Error() string {
	return fmt.Sprintf("release %q not found (available: %s)",
		e.Name, strings.Join(e.Available, ", "))
}

// GetRelease retrieves a release by name. Names are compared after
// NormalizeVersion, and semantic versions compare by value, so "v1.2" finds
// "1.2.0". Returns ReleaseNotFoundError if nothing matches.
func (rs Releases) GetRelease(name string) (*Release, error) {
	normalized := NormalizeVersion(name)
	wanted, wantedErr := semver.NewVersion(name)

	for i := range rs {
		if NormalizeVersion(rs[i].Name) == normalized {
			return &rs[i], nil
		}
		if wantedErr != nil || rs[i].IsUnreleased() {
			continue
		}
		if v, err := semver.NewVersion(rs[i].Name); err == nil && v.Equal(wanted) {
			return &rs[i], nil
		}
	}

	return nil, &ReleaseNotFoundError{
		Name:      name,
		Available: rs.ListNames(),
	}
}

// GetUnreleased returns the unreleased release, or nil if there is none.
func (rs Releases) GetUnreleased() *Release {
	for i := range rs {
		if rs[i].IsUnreleased() {
			return &rs[i]
		}
	}
	return nil
}

// ListNames returns the release names in input order.
func (rs Releases) ListNames() []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}
	return names
}

// CommitCount returns the total number of commits across all releases.
func (rs Releases) CommitCount() int {
	count := 0
	for _, r := range rs {
		count += len(r.Commits)
	}
	return count
}

// CategoryCounts returns, for one release, how many commits fall into each
// of the given categories, in the given order.
func (r Release) CategoryCounts(categories []string) []CategoryCount {
	counts := make([]CategoryCount, len(categories))
	for i, name := range categories {
		counts[i].Category = name
		for _, c := range r.Commits {
			if c.HasCategory(name) {
				counts[i].Commits++
			}
		}
	}
	return counts
}

// CategoryCount is the number of commits in one category.
type CategoryCount struct {
	Category string
	Commits  int
}
