package changelog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSummaryPlain(t *testing.T) {
	r := testRenderer("Added", "Fixed")
	var buf bytes.Buffer

	err := FormatSummary(sampleReleases(), r, &buf, FormatOptions{Plain: true, MaxWidth: 80})
	require.NoError(t, err)

	want := strings.Join([]string{
		"## Coming soon",
		"",
		"### Added (1)",
		"  - #3 C",
		"",
		"## 1.1.0 (2024-02-01)",
		"",
		"### Added (1)",
		"  - #2 B",
		"",
		"### Fixed (2)",
		"  - #2 B",
		"  - #1 A",
		"",
		"## v1.0.0 (2024-01-01)",
		"  (nothing to render)",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestFormatSummaryCommitWithoutIssue(t *testing.T) {
	r := testRenderer("Added")
	var buf bytes.Buffer

	releases := []Release{{Name: "1.0.0", Commits: []Commit{{Categories: []string{"Added"}}}}}
	require.NoError(t, FormatSummary(releases, r, &buf, FormatOptions{Plain: true}))
	assert.Contains(t, buf.String(), "  - (no linked issue)")
}

func TestFormatWarning(t *testing.T) {
	warn := Warning{Field: "releases[0].name", Message: "bad"}
	assert.Equal(t, "warning: releases[0].name: bad", FormatWarning(warn, FormatOptions{Plain: true}))
	assert.Contains(t, FormatWarning(warn, FormatOptions{}), "releases[0].name: bad")
}

func TestWrapText(t *testing.T) {
	tests := map[string]struct {
		text  string
		width int
		want  string
	}{
		"fits":         {text: "short", width: 10, want: "short"},
		"wraps":        {text: "one two three", width: 8, want: "one two\n    three"},
		"zero width":   {text: "anything goes", width: 0, want: "anything goes"},
		"no space cut": {text: "abcdefghij", width: 4, want: "abcd\n    efgh\n    ij"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.width, "    "))
		})
	}
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 10))
	assert.Equal(t, "abcdefg...", truncateText("abcdefghijklmnop", 10))
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, "⚡", styleFor("Fixed").Icon)
	assert.Equal(t, "⚡", styleFor("fixed").Icon)
	assert.Equal(t, defaultStyle.Icon, styleFor("Docs").Icon)
}
