package changelog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromReader_Valid(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected []Release
	}{
		"mapping document": {
			input: `
releases:
  - name: "1.0.0"
    date: "2024-01-15"
    commits:
      - categories: [Fixed]
        githubIssue:
          number: 5
          title: "fix #5"
          user:
            login: al
            html_url: u
`,
			expected: []Release{
				{
					Name: "1.0.0",
					Date: "2024-01-15",
					Commits: []Commit{
						{
							Categories:  []string{"Fixed"},
							GitHubIssue: &Issue{Number: intPtr(5), Title: "fix #5", User: User{Login: "al", HTMLURL: "u"}},
						},
					},
				},
			},
		},
		"bare list": {
			input: `
- name: unreleased
  commits: []
- name: "0.1.0"
  date: "2024-01-01"
  commits: []
`,
			expected: []Release{
				{Name: "unreleased", Commits: []Commit{}},
				{Name: "0.1.0", Date: "2024-01-01", Commits: []Commit{}},
			},
		},
		"json document": {
			input: `{"releases": [{"name": "v2.0.0", "commits": [{"categories": ["Added"], "packages": ["api"],
  "githubIssue": {"title": "T", "user": {"login": "a", "html_url": "u"},
  "pull_request": {"html_url": "https://pr"},
  "parsed_body": [{"type": "table", "header": ["種別", "診断対象"], "cells": [["URL", "https://x"]]}]}}],
  "contributors": [{"login": "a", "html_url": "u", "name": "A"}]}]}`,
			expected: []Release{
				{
					Name: "v2.0.0",
					Commits: []Commit{
						{
							Categories: []string{"Added"},
							Packages:   []string{"api"},
							GitHubIssue: &Issue{
								Title:       "T",
								User:        User{Login: "a", HTMLURL: "u"},
								PullRequest: &PullRequest{HTMLURL: "https://pr"},
								ParsedBody: []Block{
									{Type: BlockTable, Header: []string{"種別", "診断対象"}, Cells: [][]string{{"URL", "https://x"}}},
								},
							},
						},
					},
					Contributors: []Contributor{{Login: "a", HTMLURL: "u", Name: "A"}},
				},
			},
		},
		"empty release list": {
			input:    "releases: []\n",
			expected: []Release{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := LoadFromReader(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLoadFromReader_Invalid(t *testing.T) {
	tests := map[string]struct {
		input      string
		wantErrMsg string
		validation bool
	}{
		"empty document": {
			input:      "",
			wantErrMsg: "releases document is empty",
			validation: true,
		},
		"malformed yaml": {
			input:      "releases: [",
			wantErrMsg: "parsing releases YAML",
		},
		"wrong shape": {
			input:      "releases: {name: x}",
			wantErrMsg: "parsing releases YAML",
		},
		"missing name": {
			input:      "releases:\n  - date: \"2024-01-01\"\n",
			wantErrMsg: "releases[0].name: required field is empty",
			validation: true,
		},
		"bad date": {
			input:      "releases:\n  - name: \"1.0.0\"\n    date: \"01/02/2024\"\n",
			wantErrMsg: "invalid date format",
			validation: true,
		},
		"duplicate names ignore v prefix": {
			input:      "releases:\n  - name: v1.0.0\n  - name: 1.0.0\n",
			wantErrMsg: "duplicate release \"1.0.0\"",
			validation: true,
		},
		"issue without login": {
			input: `
releases:
  - name: "1.0.0"
    commits:
      - githubIssue:
          title: x
`,
			wantErrMsg: "releases[0].commits[0].githubIssue.user.login",
			validation: true,
		},
		"contributor without login": {
			input:      "releases:\n  - name: \"1.0.0\"\n    contributors:\n      - name: Someone\n",
			wantErrMsg: "releases[0].contributors[0].login",
			validation: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFromReader(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrMsg)
			assert.Equal(t, tt.validation, IsValidationError(err))
			assert.Equal(t, !tt.validation, errors.Is(err, ErrMalformed))
		})
	}
}

func TestValidate_MultipleUnreleased(t *testing.T) {
	err := Validate([]Release{{Name: "unreleased"}, {Name: "1.0.0"}, {Name: "Unreleased"}})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestValidate_OneUnreleasedAllowed(t *testing.T) {
	err := Validate([]Release{{Name: UnreleasedVersion}, {Name: "1.0.0", Date: "2024-01-01"}})
	assert.NoError(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "releases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("releases:\n  - name: \"1.0.0\"\n"), 0o644))

	releases, err := Load(path)
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.Equal(t, "1.0.0", releases[0].Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening releases file")
}

func TestLint(t *testing.T) {
	releases := []Release{
		{Name: UnreleasedVersion, Commits: []Commit{{Categories: []string{"Added"}, GitHubIssue: testIssue(1, "A", "x")}}},
		{Name: "v1.2.0", Commits: []Commit{{GitHubIssue: testIssue(2, "B", "x")}}},
		{Name: "spring-release", Commits: []Commit{{Categories: []string{"Fixed"}}}},
	}

	warnings := Lint(releases)

	fields := make([]string, len(warnings))
	for i, w := range warnings {
		fields[i] = w.String()
	}
	assert.Equal(t, []string{
		"releases[1].commits[0]: no categories; commit is never rendered",
		"releases[2].name: \"spring-release\" is not a semantic version",
		"releases[2].commits[0]: no linked issue; commit renders no line",
	}, fields)
}

func TestNormalizeVersion(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"v prefix":   {input: "v1.2.3", want: "1.2.3"},
		"V prefix":   {input: "V1.2.3", want: "1.2.3"},
		"bare":       {input: "1.2.3", want: "1.2.3"},
		"unreleased": {input: "Unreleased", want: "unreleased"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeVersion(tt.input))
		})
	}
}
