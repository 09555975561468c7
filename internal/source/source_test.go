package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `releases:
  - name: "1.0.0"
    date: "2024-01-01"
    commits:
      - categories: [Fixed]
        githubIssue:
          number: 5
          title: "fix #5"
          user:
            login: al
            html_url: u
`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRemoteReleases(t *testing.T) {
	tests := map[string]struct {
		handler      http.HandlerFunc
		wantErr      bool
		wantErrMsg   string
		wantReleases int
	}{
		"successful fetch": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(validYAML))
			},
			wantReleases: 1,
		},
		"server error": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:    true,
			wantErrMsg: "unexpected status code: 500",
		},
		"not found": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr:    true,
			wantErrMsg: "unexpected status code: 404",
		},
		"invalid YAML": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("releases: [yaml"))
			},
			wantErr:    true,
			wantErrMsg: "parsing releases",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			releases, err := Remote{URL: server.URL}.Releases(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				var fetchErr *FetchError
				require.ErrorAs(t, err, &fetchErr)
				assert.Equal(t, server.URL, fetchErr.URL)
				return
			}

			require.NoError(t, err)
			assert.Len(t, releases, tt.wantReleases)
		})
	}
}

func TestRemoteReleasesTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	_, err := Remote{URL: server.URL, Timeout: 50 * time.Millisecond}.Releases(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "making request")
}

func TestResolve(t *testing.T) {
	assert.IsType(t, Remote{}, Resolve("https://example.com/releases.yaml", Options{}))
	assert.IsType(t, Remote{}, Resolve("http://example.com/releases.yaml", Options{}))
	assert.IsType(t, File{}, Resolve("releases.yaml", Options{}))
	assert.IsType(t, File{}, Resolve("./https-notes.yaml", Options{}))
}

func TestStatic(t *testing.T) {
	s := Static{{Name: "1.0.0"}}

	releases, err := s.Releases(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []changelog.Release{{Name: "1.0.0"}}, releases)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Releases(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	first := writeInput(t, dir, "a.yaml", "releases:\n  - name: unreleased\n")
	second := writeInput(t, dir, "b.json", `[{"name": "1.0.0"}, {"name": "0.9.0"}]`)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("- name: 0.1.0\n"))
	}))
	defer server.Close()

	releases, err := LoadAll(context.Background(), []string{first, server.URL, second}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"unreleased", "0.1.0", "1.0.0", "0.9.0"}, changelog.Releases(releases).ListNames())
}

func TestLoadAllErrors(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.yaml", "- name: 1.0.0\n")
	b := writeInput(t, dir, "b.yaml", "- name: v1.0.0\n")

	tests := map[string]struct {
		inputs     []string
		wantErrMsg string
	}{
		"no inputs": {
			inputs:     nil,
			wantErrMsg: "no input given",
		},
		"missing file": {
			inputs:     []string{a, filepath.Join(dir, "missing.yaml")},
			wantErrMsg: "missing.yaml",
		},
		"duplicate across inputs": {
			inputs:     []string{a, b},
			wantErrMsg: "combining inputs",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadAll(context.Background(), tt.inputs, Options{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrMsg)
		})
	}
}

func TestLoadAllParsesBodies(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, "r.yaml", `releases:
  - name: "1.0.0"
    commits:
      - categories: [Added]
        githubIssue:
          title: Harden API
          user: {login: al, html_url: u}
          body: |
            | 種別 | 診断対象 |
            | --- | --- |
            | URL | https://api.example.com |
`)

	releases, err := LoadAll(context.Background(), []string{path}, Options{})
	require.NoError(t, err)

	targets := changelog.ExtractSecurityTargets(releases[0].Commits)
	assert.Equal(t, []string{"https://api.example.com"}, targets.URLs)
}

func TestEnrich(t *testing.T) {
	withBody := &changelog.Issue{Title: "a", Body: "| 種別 | 診断対象 |\n|---|---|\n| Query | q |\n"}
	alreadyParsed := &changelog.Issue{
		Title:      "b",
		Body:       "| x | y |\n|---|---|\n| 1 | 2 |\n",
		ParsedBody: []changelog.Block{changelog.NewTableBlock([]string{"kept"}, nil)},
	}
	input := []changelog.Release{
		{Name: "2.0.0", Commits: []changelog.Commit{{GitHubIssue: withBody}, {GitHubIssue: alreadyParsed}, {}}},
		{Name: "1.0.0"},
	}

	out := Enrich(input)

	require.Len(t, out, 2)
	assert.Nil(t, withBody.ParsedBody, "input issue must not be modified")
	require.Len(t, out[0].Commits[0].GitHubIssue.ParsedBody, 1)
	assert.Equal(t, []string{"種別", "診断対象"}, out[0].Commits[0].GitHubIssue.ParsedBody[0].Header)
	assert.Same(t, alreadyParsed, out[0].Commits[1].GitHubIssue)
	assert.Nil(t, out[0].Commits[2].GitHubIssue)
	assert.Equal(t, input[1], out[1])
}
