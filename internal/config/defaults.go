package config

import "github.com/ariel-frischer/relnotes/internal/source"

// DefaultCategories are the Keep a Changelog categories in rendering order.
var DefaultCategories = []string{"Added", "Changed", "Deprecated", "Removed", "Fixed", "Security"}

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# relnotes configuration
# Values can be overridden with RELNOTES_* environment variables
# (lists are comma-separated, e.g. RELNOTES_CATEGORIES=Added,Fixed).

# Category sections, in rendering order
categories:
  - Added
  - Changed
  - Deprecated
  - Removed
  - Fixed
  - Security

base_issue_url: ""                    # e.g. https://github.com/owner/repo/issues/ (empty = from git origin)
unreleased_name: Unreleased           # Heading for the "unreleased" release

input:                                # Releases files or URLs used when none are given
  - releases.yaml
output: ""                            # Output file (empty = stdout)
remote_timeout: 10s                   # Timeout for each remote input
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"categories":      append([]string(nil), DefaultCategories...),
		"base_issue_url":  "",
		"unreleased_name": "Unreleased",
		"input":           []string{"releases.yaml"},
		"output":          "",
		"remote_timeout":  source.DefaultRemoteTimeout.String(),
	}
}
